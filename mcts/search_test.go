package mcts

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/signalnine/wonders/algorithms"
	"github.com/signalnine/wonders/engine"
)

func threeSeats(me *engine.Player, left, right []engine.Card) *engine.VisibleGame {
	return &engine.VisibleGame{
		Players: []engine.PublicPlayer{
			me.Public(),
			{Wonder: engine.Wonder{Type: engine.Giza}, Built: left, Coins: engine.StartingCoins},
			{Wonder: engine.Wonder{Type: engine.Babylon}, Built: right, Coins: engine.StartingCoins},
		},
	}
}

func TestUCB1Unvisited(t *testing.T) {
	arm := Arm{}
	if v := arm.UCB1(10, DefaultExplorationParam); v < 1e300 {
		t.Errorf("unvisited arm should be infinite, got %f", v)
	}

	arm.Visits = 5
	arm.Wins = 5
	if v := arm.UCB1(10, 0); v != 1 {
		t.Errorf("exploitation only: expected 1, got %f", v)
	}
}

func TestRootSelectAndTally(t *testing.T) {
	root := GetRoot(3)
	defer PutRoot(root)
	rng := rand.New(rand.NewSource(1))

	seen := map[int]bool{}
	for !root.Expanded() {
		arm := root.Open(rng)
		if seen[arm.Index] {
			t.Fatalf("candidate %d opened twice", arm.Index)
		}
		seen[arm.Index] = true
	}
	if len(root.Arms) != 3 {
		t.Fatalf("expected 3 arms, got %d", len(root.Arms))
	}

	for i := range root.Arms {
		a := &root.Arms[i]
		visits := []int{10, 15, 5}[a.Index]
		for v := 0; v < visits; v++ {
			root.Record(a, 0.5)
		}
	}
	if root.Visits != 30 {
		t.Errorf("root visits = %d, want 30", root.Visits)
	}
	// equal win rates, lowest visits explores most
	if got := root.Select(DefaultExplorationParam).Index; got != 2 {
		t.Errorf("Select = %d, want 2", got)
	}

	visits, wins := root.Tally(3)
	if !reflect.DeepEqual(visits, []int{10, 15, 5}) {
		t.Errorf("visits = %v", visits)
	}
	if wins[1] != 7.5 {
		t.Errorf("wins[1] = %f, want 7.5", wins[1])
	}
}

func TestGetRootIsClean(t *testing.T) {
	root := GetRoot(2)
	root.Open(rand.New(rand.NewSource(2)))
	root.Record(&root.Arms[0], 1)
	PutRoot(root)

	root = GetRoot(4)
	defer PutRoot(root)
	if root.Visits != 0 || len(root.Arms) != 0 || len(root.Untried) != 4 {
		t.Errorf("reused root not reset: %+v", root)
	}
}

func TestCandidatesCheapestBuild(t *testing.T) {
	p := engine.NewPlayer(engine.Wonder{Type: engine.Rhodes}, []engine.Card{engine.Stockade, engine.Stockade, engine.Palace})
	// wood from the right costs 1 with the trading post, 2 from the left
	p = engine.NewPlayerFromPublic(engine.PublicPlayer{
		Wonder: engine.Wonder{Type: engine.Rhodes},
		Built:  []engine.Card{engine.EastTradingPost},
		Coins:  engine.StartingCoins,
	}, p.Hand())
	visible := threeSeats(&p, []engine.Card{engine.LumberYard}, []engine.Card{engine.LumberYard})

	got := Candidates(&p, visible)
	if len(got) != 3 {
		t.Fatalf("expected 1 build and 2 discards, got %v", got)
	}
	build := got[0]
	if build.Kind != engine.ActionBuild || build.Card != engine.Stockade {
		t.Fatalf("expected Stockade build first, got %v", build)
	}
	if cost := p.BorrowCost(build.Borrowing); cost != engine.DiscountPrice {
		t.Errorf("expected the discounted borrowing, cost %d", cost)
	}
	if !reflect.DeepEqual(got[1:], []engine.Action{engine.Discard(engine.Stockade), engine.Discard(engine.Palace)}) {
		t.Errorf("unexpected discards %v", got[1:])
	}
}

func TestSimulateReturnsResult(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g, err := engine.NewGame([]engine.Algorithm{
		algorithms.NewRandom(rng), algorithms.NewRandom(rng), algorithms.NewRandom(rng), algorithms.NewRandom(rng),
	}, rng)
	if err != nil {
		t.Fatal(err)
	}
	// play into age II so boards are populated
	for i := 0; i < 8; i++ {
		if err := g.DoTurn(); err != nil {
			t.Fatal(err)
		}
	}
	visible := g.Visible(0)
	player := g.Player(0)
	for i := 0; i < 20; i++ {
		r := simulate(player, visible, engine.Discard(player.Hand()[0]), rng)
		if r != 0 && r != 0.5 && r != 1 {
			t.Fatalf("unexpected result %f", r)
		}
	}
	if len(player.Hand()) != 5 {
		t.Errorf("rollouts must not touch the live seat, hand has %d cards", len(player.Hand()))
	}
}

func TestSearchReturnsLegalAction(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g, err := engine.NewGame([]engine.Algorithm{
		algorithms.NewRandom(rng), algorithms.NewRandom(rng), algorithms.NewRandom(rng),
	}, rng)
	if err != nil {
		t.Fatal(err)
	}
	for turn := 0; turn < 4; turn++ {
		if err := g.DoTurn(); err != nil {
			t.Fatal(err)
		}
	}
	params := SearchParams{Iterations: 60, Workers: 3, Seed: 1}
	visible := g.Visible(1)
	action := Search(g.Player(1), visible, params)
	if !g.Player(1).CanPlay(action, visible) {
		t.Errorf("search chose illegal action %v", action)
	}
}

func TestSearchDeterministic(t *testing.T) {
	p := engine.NewPlayer(engine.Wonder{Type: engine.Olympia}, []engine.Card{
		engine.LumberYard, engine.Altar, engine.Baths, engine.Apothecary, engine.Tavern, engine.Barracks, engine.ClayPool,
	})
	visible := threeSeats(&p, nil, nil)
	params := SearchParams{Iterations: 40, Workers: 2, Seed: 42}
	a := Search(&p, visible, params)
	b := Search(&p, visible, params)
	if a.Kind != b.Kind || a.Card != b.Card {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestMonteCarloPlaysFullGame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping search game in short mode")
	}
	rng := rand.New(rand.NewSource(3))
	algs := []engine.Algorithm{
		NewMonteCarlo(SearchParams{Iterations: 20, Workers: 2}, rand.New(rand.NewSource(4))),
		algorithms.NewRandom(rng),
		algorithms.NewRandom(rng),
	}
	g, err := engine.NewGame(algs, rng)
	if err != nil {
		t.Fatal(err)
	}
	scores, err := g.Play()
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 3 {
		t.Errorf("expected 3 scores, got %d", len(scores))
	}
}
