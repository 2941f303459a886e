package simulation

import (
	"math/rand"
	"runtime"
	"sync"
)

// GameJob represents a single simulation job
type GameJob struct {
	SimID int
	Seed  uint64
}

// RunBatchParallel executes batch simulations using a worker pool. Game seeds
// are drawn up front from seed exactly as RunBatch draws them, so both produce
// the same statistics. numWorkers <= 0 uses every CPU.
func RunBatchParallel(specs []AlgorithmSpec, numGames int, seed uint64, numWorkers int) AggregatedStats {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	jobs := make(chan GameJob, numGames)
	results := make(chan GameResult, numGames)

	var wg sync.WaitGroup

	// Start workers
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go worker(&wg, jobs, results, specs)
	}

	// Use seed for deterministic game seeds (same as serial version)
	rng := rand.New(rand.NewSource(int64(seed)))

	// Queue all simulation jobs with deterministic seeds
	for i := 0; i < numGames; i++ {
		jobs <- GameJob{
			SimID: i,
			Seed:  rng.Uint64(),
		}
	}
	close(jobs)

	// Wait for all workers to complete, then close results
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect and aggregate results
	return aggregateParallelResults(results, numGames, len(specs))
}

// worker processes simulation jobs from the jobs channel
func worker(wg *sync.WaitGroup, jobs <-chan GameJob, results chan<- GameResult, specs []AlgorithmSpec) {
	defer wg.Done()

	for job := range jobs {
		results <- RunSingleGame(specs, job.Seed)
	}
}

// aggregateParallelResults collects all results and computes aggregate statistics
func aggregateParallelResults(results <-chan GameResult, numGames, numPlayers int) AggregatedStats {
	allResults := make([]GameResult, 0, numGames)

	for result := range results {
		allResults = append(allResults, result)
	}

	// Reuse existing aggregation logic
	return aggregateResults(allResults, numPlayers)
}
