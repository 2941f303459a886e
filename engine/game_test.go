package engine

import (
	"errors"
	"math/rand"
	"testing"
)

// firstBuildable builds the first affordable card in hand, else discards.
type firstBuildable struct {
	rng *rand.Rand
}

func (f firstBuildable) NextAction(player *Player, visible *VisibleGame) Action {
	for _, c := range player.Hand() {
		if a, ok := player.FirstOptionForCard(c, visible, f.rng); ok {
			return a
		}
	}
	return Discard(player.Hand()[0])
}

// alwaysIllegal never returns a playable action.
type alwaysIllegal struct{}

func (alwaysIllegal) NextAction(*Player, *VisibleGame) Action {
	return WonderStage(LumberYard, NoBorrowing())
}

func algorithms(n int) []Algorithm {
	out := make([]Algorithm, n)
	for i := range out {
		out[i] = firstBuildable{rng: rand.New(rand.NewSource(int64(i)))}
	}
	return out
}

func TestNewGamePlayerCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 2, 8} {
		if _, err := NewGame(algorithms(n), rng); !errors.Is(err, ErrPlayerCount) {
			t.Errorf("%d players: got %v", n, err)
		}
	}
	for n := MinPlayers; n <= MaxPlayers; n++ {
		g, err := NewGame(algorithms(n), rng)
		if err != nil {
			t.Fatalf("%d players: %v", n, err)
		}
		seen := map[WonderType]bool{}
		for i := 0; i < n; i++ {
			w := g.Player(i).Wonder()
			if seen[w.Type] || w.Side != SideA {
				t.Errorf("%d players: bad wonder assignment %v", n, w)
			}
			seen[w.Type] = true
			if g.Player(i).Coins() != StartingCoins {
				t.Errorf("seat %d starts with %d coins", i, g.Player(i).Coins())
			}
		}
	}
}

func TestAgeOf(t *testing.T) {
	tests := []struct {
		turn int
		want Age
	}{
		{0, AgeFirst}, {5, AgeFirst}, {6, AgeSecond}, {11, AgeSecond}, {12, AgeThird}, {17, AgeThird},
	}
	for _, tt := range tests {
		if got := AgeOf(tt.turn); got != tt.want {
			t.Errorf("AgeOf(%d) = %v, want %v", tt.turn, got, tt.want)
		}
	}
	for _, turn := range []int{-1, 18} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("AgeOf(%d) should panic", turn)
				}
			}()
			AgeOf(turn)
		}()
	}
}

func TestNeighboursAreDistinct(t *testing.T) {
	for n := MinPlayers; n <= MaxPlayers; n++ {
		g, err := NewGame(algorithms(n), rand.New(rand.NewSource(2)))
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < n; i++ {
			right, me, left := g.neighbours(i)
			if me != g.Player(i) || left != g.Player((i+1)%n) || right != g.Player((i-1+n)%n) {
				t.Errorf("n=%d seat %d: wrong neighbours", n, i)
			}
			if right == left || right == me || left == me {
				t.Errorf("n=%d seat %d: aliased seats", n, i)
			}
		}
	}
}

func TestAgeBoundary(t *testing.T) {
	g, err := NewGame(algorithms(3), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < TurnsPerAge; i++ {
		if err := g.DoTurn(); err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
	}
	for i := 0; i < 3; i++ {
		if len(g.Player(i).Hand()) != 1 {
			t.Fatalf("seat %d holds %d cards after six rounds", i, len(g.Player(i).Hand()))
		}
	}
	discarded := len(g.Discarded())

	// 7-card hands, six rounds: one leftover each
	g.deal()
	if len(g.Discarded()) != discarded+3 {
		t.Errorf("discard pile holds %d cards, want %d", len(g.Discarded()), discarded+3)
	}
	for i := 0; i < 3; i++ {
		hand := g.Player(i).Hand()
		if len(hand) != HandSize {
			t.Errorf("seat %d has %d cards after deal", i, len(hand))
		}
		for _, c := range hand {
			if c.Age() != AgeSecond {
				t.Errorf("seat %d dealt %v from age %v", i, c, c.Age())
			}
		}
	}
}

func TestAgeBoundaryAllDiscards(t *testing.T) {
	algs := []Algorithm{discardFirst{}, discardFirst{}, discardFirst{}}
	g, err := NewGame(algs, rand.New(rand.NewSource(6)))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < TurnsPerAge; i++ {
		if err := g.DoTurn(); err != nil {
			t.Fatal(err)
		}
	}
	if len(g.Discarded()) != 18 {
		t.Fatalf("expected 18 discards, got %d", len(g.Discarded()))
	}
	g.deal()
	if len(g.Discarded()) != 21 {
		t.Errorf("leftover hands should join the pile, got %d", len(g.Discarded()))
	}
	if g.Player(0).Coins() != StartingCoins+TurnsPerAge*DiscardCoins {
		t.Errorf("seat 0 has %d coins", g.Player(0).Coins())
	}
}

type discardFirst struct{}

func (discardFirst) NextAction(player *Player, _ *VisibleGame) Action {
	return Discard(player.Hand()[0])
}

func TestHandRotation(t *testing.T) {
	for _, turn := range []int{0, TurnsPerAge} {
		g, err := NewGame(algorithms(4), rand.New(rand.NewSource(4)))
		if err != nil {
			t.Fatal(err)
		}
		g.turn = turn
		g.deal()
		g.turn = turn + 1

		before := make([][]Card, 4)
		for i := range before {
			before[i] = append([]Card(nil), g.Player(i).Hand()...)
		}
		if err := g.DoTurn(); err != nil {
			t.Fatal(err)
		}

		step := 1
		if AgeOf(turn) == AgeSecond {
			step = 3
		}
		for i := range before {
			receiver := (i + step) % 4
			hand := g.Player(receiver).Hand()
			if len(hand) != len(before[i])-1 || !subset(hand, before[i]) {
				t.Errorf("age %v: seat %d should hold seat %d's hand minus one card", AgeOf(turn), receiver, i)
			}
		}
	}
}

// subset reports whether every card of a appears in b, counting copies.
func subset(a, b []Card) bool {
	counts := map[Card]int{}
	for _, c := range b {
		counts[c]++
	}
	for _, c := range a {
		if counts[c] == 0 {
			return false
		}
		counts[c]--
	}
	return true
}

func countCards(g *Game) int {
	n := len(g.Discarded())
	for i := 0; i < g.NumPlayers(); i++ {
		n += len(g.Player(i).Hand()) + len(g.Player(i).Built())
	}
	return n
}

func TestFullGame(t *testing.T) {
	for n := MinPlayers; n <= MaxPlayers; n++ {
		g, err := NewGame(algorithms(n), rand.New(rand.NewSource(int64(n))))
		if err != nil {
			t.Fatal(err)
		}
		for !g.Finished() {
			if err := g.DoTurn(); err != nil {
				t.Fatalf("n=%d turn %d: %v", n, g.Turn(), err)
			}
			age := AgeOf(g.Turn() - 1)
			if want := int(age) * HandSize * n; countCards(g) != want {
				t.Errorf("n=%d after turn %d: %d cards in play, want %d", n, g.Turn(), countCards(g), want)
			}
			for i := 0; i < n; i++ {
				if g.Player(i).Coins() < 0 {
					t.Errorf("n=%d seat %d has negative coins", n, i)
				}
			}
		}
		scores := g.Scores()
		if len(scores) != n {
			t.Errorf("expected %d scores, got %d", n, len(scores))
		}
		if err := g.DoTurn(); !errors.Is(err, ErrGameOver) {
			t.Errorf("DoTurn after the end: %v", err)
		}
	}
}

func TestPlayReturnsScores(t *testing.T) {
	g, err := NewGame(algorithms(3), rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatal(err)
	}
	scores, err := g.Play()
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range g.Breakdowns() {
		if b.Strength() != scores[i] {
			t.Errorf("seat %d: Play gave %d, breakdown %d", i, scores[i], b.Strength())
		}
	}
}

func TestIllegalAlgorithmFails(t *testing.T) {
	g, err := NewGame([]Algorithm{alwaysIllegal{}, alwaysIllegal{}, alwaysIllegal{}}, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.DoTurn(); !errors.Is(err, ErrNoLegalAction) {
		t.Errorf("expected ErrNoLegalAction, got %v", err)
	}
}

func TestResumedGameKeepsHands(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	deck := NewDeck(AgeFirst, 3, rng)
	players := make([]Player, 3)
	for i := range players {
		players[i] = NewPlayer(Wonder{Type: AllWonders()[i], Side: SideA}, deck[i*HandSize:(i+1)*HandSize])
	}

	// first round of age II, hands taken as dealt
	g, err := NewGameWithPlayers(players, algorithms(3), TurnsPerAge, rng)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.DoTurn(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		hand := g.Player(i).Hand()
		if len(hand) != HandSize-1 {
			t.Errorf("seat %d holds %d cards", i, len(hand))
		}
		for _, c := range hand {
			if c.Age() != AgeFirst {
				t.Errorf("seat %d was redealt %s", i, c)
			}
		}
	}
}

func TestStartRoundDealsOnce(t *testing.T) {
	g, err := NewGame(algorithms(3), rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatal(err)
	}
	for turn := 0; turn < TotalTurns; turn++ {
		g.StartRound()
		hands := make([][]Card, 3)
		for i := range hands {
			hands[i] = append([]Card(nil), g.Player(i).Hand()...)
			if len(hands[i]) != HandSize-turn%TurnsPerAge {
				t.Fatalf("turn %d seat %d holds %d cards", turn, i, len(hands[i]))
			}
			for _, c := range hands[i] {
				if c.Age() != AgeOf(turn) {
					t.Fatalf("turn %d seat %d holds %s from age %s", turn, i, c, c.Age())
				}
			}
		}

		// a second call and the turn itself keep the hands shown
		g.StartRound()
		for i := range hands {
			if got := g.Player(i).Hand(); len(got) != len(hands[i]) || got[0] != hands[i][0] {
				t.Fatalf("turn %d seat %d was redealt", turn, i)
			}
		}
		if err := g.DoTurn(); err != nil {
			t.Fatal(err)
		}
	}
}
