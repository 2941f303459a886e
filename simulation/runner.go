package simulation

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/signalnine/wonders/algorithms"
	"github.com/signalnine/wonders/engine"
	"github.com/signalnine/wonders/mcts"
)

// Algorithm type names accepted by NewAlgorithm
const (
	TypeRandom     = "random"
	TypeMonteCarlo = "montecarlo"
	TypeLua        = "lua"
)

// ErrUnknownAlgorithm is returned for an AlgorithmSpec with an unknown Type
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// AlgorithmSpec describes one seat's decision strategy
type AlgorithmSpec struct {
	Type        string  `yaml:"type"`
	Iterations  int     `yaml:"iterations,omitempty"`
	Workers     int     `yaml:"workers,omitempty"`
	Exploration float64 `yaml:"exploration,omitempty"`
	Script      string  `yaml:"script,omitempty"` // path to a Lua strategy
}

// NewAlgorithm builds the strategy described by spec
func NewAlgorithm(spec AlgorithmSpec, rng *rand.Rand) (engine.Algorithm, error) {
	switch spec.Type {
	case TypeRandom, "":
		return algorithms.NewRandom(rng), nil
	case TypeMonteCarlo:
		return mcts.NewMonteCarlo(mcts.SearchParams{
			Iterations:       spec.Iterations,
			ExplorationParam: spec.Exploration,
			Workers:          spec.Workers,
		}, rng), nil
	case TypeLua:
		return algorithms.NewLuaFile(spec.Script, rng)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownAlgorithm, spec.Type)
}

// closer is implemented by strategies holding resources (Lua interpreters)
type closer interface {
	Close()
}

// GameResult holds the outcome of a single game
type GameResult struct {
	GameID     string
	Scores     []int
	WinnerID   int8 // -1 when the top score is shared
	Turns      uint32
	DurationNs uint64
	Error      string
}

// AggregatedStats summarizes multiple game results
type AggregatedStats struct {
	TotalGames         uint32
	Wins               []uint32 // per seat
	Draws              uint32
	AvgScores          []float32 // per seat
	MedianWinningScore uint32
	AvgDurationNs      uint64
	Errors             uint32
}

// RunBatch simulates numGames games with the same seating, one after another
func RunBatch(specs []AlgorithmSpec, numGames int, seed uint64) AggregatedStats {
	results := make([]GameResult, numGames)

	// Use seed for determinism
	rng := rand.New(rand.NewSource(int64(seed)))

	for i := 0; i < numGames; i++ {
		gameSeed := rng.Uint64()
		results[i] = RunSingleGame(specs, gameSeed)
	}

	return aggregateResults(results, len(specs))
}

// RunSingleGame plays one complete game to termination
func RunSingleGame(specs []AlgorithmSpec, seed uint64) GameResult {
	start := time.Now()
	result := GameResult{GameID: uuid.NewString(), WinnerID: -1}

	rng := rand.New(rand.NewSource(int64(seed)))

	algs := make([]engine.Algorithm, len(specs))
	for i, spec := range specs {
		alg, err := NewAlgorithm(spec, rand.New(rand.NewSource(rng.Int63())))
		if err != nil {
			result.Error = fmt.Sprintf("seat %d: %v", i, err)
			return finish(result, start)
		}
		if c, ok := alg.(closer); ok {
			defer c.Close()
		}
		algs[i] = alg
	}

	g, err := engine.NewGame(algs, rng)
	if err != nil {
		result.Error = err.Error()
		return finish(result, start)
	}

	scores, err := g.Play()
	result.Turns = uint32(g.Turn())
	if err != nil {
		result.Error = err.Error()
		return finish(result, start)
	}

	result.Scores = scores
	result.WinnerID = winner(scores)
	return finish(result, start)
}

func finish(result GameResult, start time.Time) GameResult {
	result.DurationNs = uint64(time.Since(start).Nanoseconds())
	return result
}

// winner returns the seat with the unique top score, or -1
func winner(scores []int) int8 {
	best := -1
	shared := false
	for i, s := range scores {
		switch {
		case best < 0 || s > scores[best]:
			best = i
			shared = false
		case s == scores[best]:
			shared = true
		}
	}
	if shared {
		return -1
	}
	return int8(best)
}

// aggregateResults computes summary statistics
func aggregateResults(results []GameResult, numPlayers int) AggregatedStats {
	stats := AggregatedStats{
		TotalGames: uint32(len(results)),
		Wins:       make([]uint32, numPlayers),
		AvgScores:  make([]float32, numPlayers),
	}

	sums := make([]int, numPlayers)
	winning := make([]int, 0, len(results))
	totalDuration := uint64(0)
	played := 0

	for _, result := range results {
		totalDuration += result.DurationNs
		if result.Error != "" {
			stats.Errors++
			continue
		}
		played++

		if result.WinnerID >= 0 && int(result.WinnerID) < numPlayers {
			stats.Wins[result.WinnerID]++
		} else {
			stats.Draws++
		}

		top := 0
		for i, s := range result.Scores {
			if i < numPlayers {
				sums[i] += s
			}
			if s > top {
				top = s
			}
		}
		winning = append(winning, top)
	}

	// Calculate averages
	if played > 0 {
		for i, sum := range sums {
			stats.AvgScores[i] = float32(sum) / float32(played)
		}
		stats.MedianWinningScore = uint32(median(winning))
	}

	if stats.TotalGames > 0 {
		stats.AvgDurationNs = totalDuration / uint64(stats.TotalGames)
	}

	return stats
}

// median calculates the median of a slice
func median(values []int) int {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
