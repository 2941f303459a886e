package engine

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	MinPlayers  = 3
	MaxPlayers  = 7
	TurnsPerAge = 6
	TotalTurns  = 3 * TurnsPerAge
	MaxAttempts = 16 // NextAction calls per seat per round before giving up
)

var (
	ErrPlayerCount   = errors.New("7 wonders needs between 3 and 7 players")
	ErrNoLegalAction = errors.New("algorithm returned no legal action")
	ErrGameOver      = errors.New("game is over")
)

// Algorithm decides one action per round for a seat. Implementations may keep
// state between calls and may call the resolver on player.
type Algorithm interface {
	NextAction(player *Player, visible *VisibleGame) Action
}

// Logger is the logging surface the engine writes to. Nakama's runtime.Logger
// satisfies it.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}

// VisibleGame is the public snapshot every seat decides against in a round
type VisibleGame struct {
	Players     []PublicPlayer
	PlayerIndex int
	Turn        int
}

// Age returns the age of the snapshot's turn
func (v *VisibleGame) Age() Age {
	return AgeOf(v.Turn)
}

// Me returns the deciding seat's own snapshot
func (v *VisibleGame) Me() PublicPlayer {
	return v.Players[v.PlayerIndex]
}

// LeftNeighbourIndex is the clockwise neighbour, index+1
func (v *VisibleGame) LeftNeighbourIndex() int {
	return (v.PlayerIndex + 1) % len(v.Players)
}

// RightNeighbourIndex is the anticlockwise neighbour, index-1
func (v *VisibleGame) RightNeighbourIndex() int {
	return (v.PlayerIndex - 1 + len(v.Players)) % len(v.Players)
}

// LeftNeighbour returns the clockwise neighbour's snapshot
func (v *VisibleGame) LeftNeighbour() PublicPlayer {
	return v.Players[v.LeftNeighbourIndex()]
}

// RightNeighbour returns the anticlockwise neighbour's snapshot
func (v *VisibleGame) RightNeighbour() PublicPlayer {
	return v.Players[v.RightNeighbourIndex()]
}

// AgeOf maps a turn in 0..17 to its age. Any other turn is a caller bug.
func AgeOf(turn int) Age {
	switch {
	case turn >= 0 && turn < TurnsPerAge:
		return AgeFirst
	case turn >= TurnsPerAge && turn < 2*TurnsPerAge:
		return AgeSecond
	case turn >= 2*TurnsPerAge && turn < TotalTurns:
		return AgeThird
	}
	panic(fmt.Sprintf("no age for turn %d", turn))
}

// Game owns the seats, the turn counter and the discard pile
type Game struct {
	players    []Player
	algorithms []Algorithm
	turn       int
	discard    []Card
	rng        *rand.Rand
	logger     Logger
	dealt      bool // hands for the current turn are already in place
}

// NewGame seats one player per algorithm and assigns shuffled wonders, side A.
func NewGame(algorithms []Algorithm, rng *rand.Rand) (*Game, error) {
	n := len(algorithms)
	if n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, n)
	}

	types := AllWonders()
	rng.Shuffle(len(types), func(i, j int) { types[i], types[j] = types[j], types[i] })

	players := make([]Player, n)
	for i := range players {
		players[i] = NewPlayer(Wonder{Type: types[i], Side: SideA}, nil)
	}

	return &Game{
		players:    players,
		algorithms: append([]Algorithm(nil), algorithms...),
		rng:        rng,
		logger:     nopLogger{},
	}, nil
}

// NewGameWithPlayers resumes a game from existing seats at turn. Hands are
// taken as dealt, even at an age boundary; used for rollouts from a mid-game
// position.
func NewGameWithPlayers(players []Player, algorithms []Algorithm, turn int, rng *rand.Rand) (*Game, error) {
	n := len(players)
	if n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, n)
	}
	if len(algorithms) != n {
		return nil, fmt.Errorf("%d algorithms for %d players", len(algorithms), n)
	}
	if turn < 0 || turn > TotalTurns {
		return nil, fmt.Errorf("turn %d out of range", turn)
	}
	return &Game{
		players:    players,
		algorithms: append([]Algorithm(nil), algorithms...),
		turn:       turn,
		rng:        rng,
		logger:     nopLogger{},
		dealt:      true,
	}, nil
}

// SetLogger replaces the default no-op logger
func (g *Game) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	g.logger = l
}

// Turn returns the number of rounds played
func (g *Game) Turn() int { return g.turn }

// Finished reports whether all rounds have been played
func (g *Game) Finished() bool { return g.turn >= TotalTurns }

// Age returns the age of the current turn. Panics once the game is over.
func (g *Game) Age() Age { return AgeOf(g.turn) }

// NumPlayers returns the seat count
func (g *Game) NumPlayers() int { return len(g.players) }

// Player returns seat i
func (g *Game) Player(i int) *Player { return &g.players[i] }

// Discarded returns the discard pile. Callers must not modify it.
func (g *Game) Discarded() []Card { return g.discard }

// Visible snapshots every seat for the deciding seat index.
func (g *Game) Visible(index int) *VisibleGame {
	return &VisibleGame{Players: g.snapshot(), PlayerIndex: index, Turn: g.turn}
}

func (g *Game) snapshot() []PublicPlayer {
	out := make([]PublicPlayer, len(g.players))
	for i := range g.players {
		out[i] = g.players[i].Public()
	}
	return out
}

// neighbours returns (right, me, left) for seat i as three distinct seats.
func (g *Game) neighbours(i int) (right, me, left *Player) {
	n := len(g.players)
	switch i {
	case 0:
		right, me, left = &g.players[n-1], &g.players[0], &g.players[1]
	case n - 1:
		right, me, left = &g.players[n-2], &g.players[n-1], &g.players[0]
	default:
		before, rest := g.players[:i], g.players[i:]
		right, me, left = &before[i-1], &rest[0], &rest[1]
	}
	if right == me || left == me || left == right {
		panic(fmt.Sprintf("seat %d of %d aliases a neighbour", i, n))
	}
	return right, me, left
}

// StartRound deals the current age when the round opens one. Hands are
// dealt at most once per round, so callers that show hands before DoTurn
// may call it first.
func (g *Game) StartRound() {
	if g.Finished() || g.dealt || g.turn%TurnsPerAge != 0 {
		return
	}
	g.deal()
	g.dealt = true
}

// DoTurn plays one round: deal at an age boundary, snapshot, one action per
// seat in order, then pass hands.
func (g *Game) DoTurn() error {
	if g.Finished() {
		return ErrGameOver
	}

	// 1. Deal
	g.StartRound()
	g.dealt = false

	// 2. Snapshot
	public := g.snapshot()

	// 3. Decide and apply
	for i := range g.players {
		right, me, left := g.neighbours(i)
		visible := &VisibleGame{Players: public, PlayerIndex: i, Turn: g.turn}
		accepted := false
		for attempt := 0; attempt < MaxAttempts; attempt++ {
			action := g.algorithms[i].NextAction(me, visible)
			if me.DoAction(action, visible, left, right, &g.discard) {
				g.logger.Debug("turn %d seat %d: %s", g.turn, i, action)
				accepted = true
				break
			}
			g.logger.Debug("turn %d seat %d: refused %s", g.turn, i, action)
		}
		if !accepted {
			return fmt.Errorf("turn %d seat %d: %w", g.turn, i, ErrNoLegalAction)
		}
	}

	// 4. Pass hands
	g.passHands()
	g.turn++
	if g.Finished() {
		g.logger.Info("game over after %d turns", g.turn)
	}
	return nil
}

// Play runs the game to the end and returns each seat's strength in seating order.
func (g *Game) Play() ([]int, error) {
	for !g.Finished() {
		if err := g.DoTurn(); err != nil {
			return nil, err
		}
	}
	return g.Scores(), nil
}

// Scores returns each seat's strength in seating order
func (g *Game) Scores() []int {
	out := make([]int, len(g.players))
	for i, b := range g.Breakdowns() {
		out[i] = b.Strength()
	}
	return out
}

// Breakdowns returns each seat's per-colour score in seating order
func (g *Game) Breakdowns() []Breakdown {
	out := make([]Breakdown, len(g.players))
	for i := range g.players {
		right, me, left := g.neighbours(i)
		out[i] = Score(me.Public(), left.Public(), right.Public())
	}
	return out
}

// deal replaces every hand with a fresh hand from the current age's deck.
// Leftover cards go to the discard pile.
func (g *Game) deal() {
	age := g.Age()
	deck := NewDeck(age, len(g.players), g.rng)
	for i := range g.players {
		hand := append([]Card(nil), deck[i*HandSize:(i+1)*HandSize]...)
		g.discard = append(g.discard, g.players[i].SwapHand(hand)...)
	}
	g.logger.Info("dealt age %s to %d players", age, len(g.players))
}

// passHands rotates hands clockwise in ages I and III, anticlockwise in II.
func (g *Game) passHands() {
	n := len(g.players)
	step := 1
	if g.Age() == AgeSecond {
		step = n - 1
	}
	hands := make([][]Card, n)
	for i := range g.players {
		hands[i] = g.players[i].hand
	}
	for i := range g.players {
		g.players[(i+step)%n].hand = hands[i]
	}
}
