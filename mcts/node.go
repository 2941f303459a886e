package mcts

import (
	"math"
	"math/rand"
	"sync"
)

// Arm is the playout record of one candidate action at the root.
type Arm struct {
	Index  int // position in the candidate list
	Visits int
	Wins   float64
}

// UCB1 scores the arm against the root's total visits. An unplayed arm
// scores +Inf.
func (a *Arm) UCB1(total int, explorationParam float64) float64 {
	if a.Visits == 0 {
		return math.Inf(1)
	}
	mean := a.Wins / float64(a.Visits)
	return mean + explorationParam*math.Sqrt(math.Log(float64(total))/float64(a.Visits))
}

// Root is a one-level search: every playout starts with one of the deciding
// seat's candidates and is scored for that candidate alone.
type Root struct {
	Visits  int
	Arms    []Arm
	Untried []int // candidate indexes without an arm yet
}

var rootPool = sync.Pool{
	New: func() interface{} {
		return &Root{
			Arms:    make([]Arm, 0, 16),
			Untried: make([]int, 0, 16),
		}
	},
}

// GetRoot takes a root from the pool with n untried candidates.
func GetRoot(n int) *Root {
	r := rootPool.Get().(*Root)
	r.Visits = 0
	r.Arms = r.Arms[:0]
	r.Untried = r.Untried[:0]
	for i := 0; i < n; i++ {
		r.Untried = append(r.Untried, i)
	}
	return r
}

// PutRoot returns r to the pool. Arms taken from it are invalid afterwards.
func PutRoot(r *Root) {
	if r != nil {
		rootPool.Put(r)
	}
}

// Expanded reports whether every candidate has an arm.
func (r *Root) Expanded() bool { return len(r.Untried) == 0 }

// Open gives a random untried candidate its arm. The pointer is valid until
// the next Open.
func (r *Root) Open(rng *rand.Rand) *Arm {
	k := rng.Intn(len(r.Untried))
	index := r.Untried[k]
	last := len(r.Untried) - 1
	r.Untried[k] = r.Untried[last]
	r.Untried = r.Untried[:last]

	r.Arms = append(r.Arms, Arm{Index: index})
	return &r.Arms[len(r.Arms)-1]
}

// Select returns the arm with the highest UCB1 score, the earliest on ties.
func (r *Root) Select(explorationParam float64) *Arm {
	if len(r.Arms) == 0 {
		return nil
	}
	best := &r.Arms[0]
	bestValue := best.UCB1(r.Visits, explorationParam)
	for i := 1; i < len(r.Arms); i++ {
		if v := r.Arms[i].UCB1(r.Visits, explorationParam); v > bestValue {
			best, bestValue = &r.Arms[i], v
		}
	}
	return best
}

// Record adds one playout result to a and to the root.
func (r *Root) Record(a *Arm, result float64) {
	a.Visits++
	a.Wins += result
	r.Visits++
}

// Tally returns visits and wins indexed by candidate, n candidates in all.
func (r *Root) Tally(n int) ([]int, []float64) {
	visits := make([]int, n)
	wins := make([]float64, n)
	for _, a := range r.Arms {
		visits[a.Index] = a.Visits
		wins[a.Index] = a.Wins
	}
	return visits, wins
}
