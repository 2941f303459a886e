package mcts

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/signalnine/wonders/algorithms"
	"github.com/signalnine/wonders/engine"
)

const (
	DefaultExplorationParam = 1.414 // sqrt(2)
	DefaultIterations       = 200
)

// SearchParams configures a search
type SearchParams struct {
	Iterations       int
	ExplorationParam float64
	Workers          int // independent roots, summed; 0 = NumCPU
	Seed             int64
}

// Candidates returns the actions worth searching: the cheapest way to build
// each affordable card and a discard of each distinct card.
func Candidates(player *engine.Player, visible *engine.VisibleGame) []engine.Action {
	var out []engine.Action
	seen := make(map[engine.Card]bool)
	for _, card := range player.Hand() {
		if seen[card] {
			continue
		}
		seen[card] = true
		options := player.OptionsForCard(card, visible)
		if !options.Possible() {
			continue
		}
		best := options.Actions[0]
		for _, a := range options.Actions[1:] {
			if player.BorrowCost(a.Borrowing) < player.BorrowCost(best.Borrowing) {
				best = a
			}
		}
		out = append(out, best)
	}
	seen = make(map[engine.Card]bool)
	for _, card := range player.Hand() {
		if !seen[card] {
			seen[card] = true
			out = append(out, engine.Discard(card))
		}
	}
	return out
}

// Search runs flat UCB1 over the candidate actions with random playouts and
// returns the most visited candidate. Workers play independent roots with
// their own random source; visit counts are summed at the root.
func Search(player *engine.Player, visible *engine.VisibleGame, params SearchParams) engine.Action {
	if params.ExplorationParam == 0 {
		params.ExplorationParam = DefaultExplorationParam
	}
	if params.Iterations <= 0 {
		params.Iterations = DefaultIterations
	}
	workers := params.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > params.Iterations {
		workers = params.Iterations
	}

	candidates := Candidates(player, visible)
	if len(candidates) == 1 {
		return candidates[0]
	}

	visits := make([]int, len(candidates))
	wins := make([]float64, len(candidates))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		iterations := params.Iterations / workers
		if w < params.Iterations%workers {
			iterations++
		}
		wg.Add(1)
		go func(seed int64, iterations int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			v, s := searchTree(player, visible, candidates, iterations, params.ExplorationParam, rng)
			mu.Lock()
			for i := range v {
				visits[i] += v[i]
				wins[i] += s[i]
			}
			mu.Unlock()
		}(params.Seed+int64(w), iterations)
	}
	wg.Wait()

	best := 0
	for i := range candidates {
		if visits[i] > visits[best] || (visits[i] == visits[best] && wins[i] > wins[best]) {
			best = i
		}
	}
	return candidates[best]
}

// searchTree runs one worker's playouts and reports visits and wins per
// candidate.
func searchTree(player *engine.Player, visible *engine.VisibleGame, candidates []engine.Action, iterations int, explorationParam float64, rng *rand.Rand) ([]int, []float64) {
	root := GetRoot(len(candidates))
	defer PutRoot(root)

	for i := 0; i < iterations; i++ {
		// 1. Selection
		var arm *Arm
		if !root.Expanded() {
			arm = root.Open(rng)
		} else {
			arm = root.Select(explorationParam)
		}

		// 2. Playout
		result := simulate(player, visible, candidates[arm.Index], rng)

		// 3. Update
		root.Record(arm, result)
	}
	return root.Tally(len(candidates))
}

// firstThen plays a fixed action on its first call and defers to Rest after.
type firstThen struct {
	first  engine.Action
	played bool
	rest   engine.Algorithm
}

func (f *firstThen) NextAction(player *engine.Player, visible *engine.VisibleGame) engine.Action {
	if !f.played {
		f.played = true
		return f.first
	}
	return f.rest.NextAction(player, visible)
}

// simulate deals the unseen cards to the opponents at random, plays action
// and then random moves to the end. Returns 1 for a win, 0.5 for a shared top
// score and 0 otherwise.
func simulate(player *engine.Player, visible *engine.VisibleGame, action engine.Action, rng *rand.Rand) float64 {
	n := len(visible.Players)
	me := visible.PlayerIndex
	handLen := len(player.Hand())

	// 1. Determinise hidden hands
	known := append([]engine.Card(nil), player.Hand()...)
	for _, pp := range visible.Players {
		known = append(known, pp.Built...)
	}
	pool := engine.NewDeckWithout(visible.Age(), n, known, rng)
	if need := (n - 1) * handLen; len(pool) < need {
		pool = append(pool, engine.NewDeck(visible.Age(), n, rng)...)
	}

	players := make([]engine.Player, n)
	algs := make([]engine.Algorithm, n)
	next := 0
	for i, pp := range visible.Players {
		if i == me {
			players[i] = player.Clone()
			algs[i] = &firstThen{first: action, rest: algorithms.NewRandom(rng)}
			continue
		}
		players[i] = engine.NewPlayerFromPublic(pp, pool[next:next+handLen])
		next += handLen
		algs[i] = algorithms.NewRandom(rng)
	}

	// 2. Playout
	g, err := engine.NewGameWithPlayers(players, algs, visible.Turn, rng)
	if err != nil {
		return 0
	}
	scores, err := g.Play()
	if err != nil {
		return 0
	}

	// 3. Result
	top, count := scores[0], 0
	for _, s := range scores {
		if s > top {
			top = s
		}
	}
	for _, s := range scores {
		if s == top {
			count++
		}
	}
	switch {
	case scores[me] < top:
		return 0
	case count == 1:
		return 1
	default:
		return 0.5
	}
}

// MonteCarlo is an engine.Algorithm that searches every decision
type MonteCarlo struct {
	Params SearchParams
	rng    *rand.Rand
}

// NewMonteCarlo returns a searching strategy; rng seeds each search.
func NewMonteCarlo(params SearchParams, rng *rand.Rand) *MonteCarlo {
	return &MonteCarlo{Params: params, rng: rng}
}

// NextAction implements engine.Algorithm
func (m *MonteCarlo) NextAction(player *engine.Player, visible *engine.VisibleGame) engine.Action {
	params := m.Params
	params.Seed = m.rng.Int63()
	return Search(player, visible, params)
}
