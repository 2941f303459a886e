package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunBatchParallelMatchesSerial(t *testing.T) {
	specs := randomSeats(4)
	serial := RunBatch(specs, 20, 99)
	parallel := RunBatchParallel(specs, 20, 99, 4)

	assert.Equal(t, serial.TotalGames, parallel.TotalGames)
	assert.Equal(t, serial.Wins, parallel.Wins)
	assert.Equal(t, serial.Draws, parallel.Draws)
	assert.Equal(t, serial.AvgScores, parallel.AvgScores)
	assert.Equal(t, serial.MedianWinningScore, parallel.MedianWinningScore)
	assert.Zero(t, parallel.Errors)
}

func TestRunBatchParallelDefaultWorkers(t *testing.T) {
	stats := RunBatchParallel(randomSeats(3), 8, 1, 0)
	assert.Equal(t, uint32(8), stats.TotalGames)
	assert.Zero(t, stats.Errors)
}

func TestRunBatchParallelZeroGames(t *testing.T) {
	stats := RunBatchParallel(randomSeats(3), 0, 1, 2)
	assert.Zero(t, stats.TotalGames)
	assert.Equal(t, []uint32{0, 0, 0}, stats.Wins)
}

func TestRunBatchParallelCountsErrors(t *testing.T) {
	stats := RunBatchParallel([]AlgorithmSpec{{Type: "bad"}, {}, {}}, 5, 1, 2)
	assert.Equal(t, uint32(5), stats.Errors)
}
