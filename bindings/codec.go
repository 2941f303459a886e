// Package bindings serializes batch results as FlatBuffers so analysis
// tooling in other languages can read them without a Go dependency.
package bindings

import (
	"errors"
	"fmt"
	"os"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/signalnine/wonders/bindings/simstats"
	"github.com/signalnine/wonders/simulation"
)

// ErrCorrupt is returned when a buffer is not a valid stats table
var ErrCorrupt = errors.New("corrupt stats buffer")

// EncodeStats serializes stats into a finished FlatBuffers buffer
func EncodeStats(stats simulation.AggregatedStats) []byte {
	builder := flatbuffers.NewBuilder(256)

	// Vectors must be created before the table
	var winsOffset flatbuffers.UOffsetT
	if len(stats.Wins) > 0 {
		simstats.AggregatedStatsStartWinsVector(builder, len(stats.Wins))
		// Add in reverse order (FlatBuffers convention)
		for i := len(stats.Wins) - 1; i >= 0; i-- {
			builder.PrependUint32(stats.Wins[i])
		}
		winsOffset = builder.EndVector(len(stats.Wins))
	}

	var scoresOffset flatbuffers.UOffsetT
	if len(stats.AvgScores) > 0 {
		simstats.AggregatedStatsStartAvgScoresVector(builder, len(stats.AvgScores))
		for i := len(stats.AvgScores) - 1; i >= 0; i-- {
			builder.PrependFloat32(stats.AvgScores[i])
		}
		scoresOffset = builder.EndVector(len(stats.AvgScores))
	}

	simstats.AggregatedStatsStart(builder)
	simstats.AggregatedStatsAddTotalGames(builder, stats.TotalGames)
	simstats.AggregatedStatsAddDraws(builder, stats.Draws)
	simstats.AggregatedStatsAddErrors(builder, stats.Errors)
	simstats.AggregatedStatsAddAvgDurationNs(builder, stats.AvgDurationNs)
	simstats.AggregatedStatsAddMedianWinningScore(builder, stats.MedianWinningScore)
	if winsOffset > 0 {
		simstats.AggregatedStatsAddWins(builder, winsOffset)
	}
	if scoresOffset > 0 {
		simstats.AggregatedStatsAddAvgScores(builder, scoresOffset)
	}
	builder.Finish(simstats.AggregatedStatsEnd(builder))

	return builder.FinishedBytes()
}

// DecodeStats reads a buffer produced by EncodeStats
func DecodeStats(buf []byte) (stats simulation.AggregatedStats, err error) {
	if len(buf) < 8 {
		return stats, fmt.Errorf("%w: %d bytes", ErrCorrupt, len(buf))
	}
	// the table accessors index without bounds checks
	defer func() {
		if r := recover(); r != nil {
			stats = simulation.AggregatedStats{}
			err = fmt.Errorf("%w: %v", ErrCorrupt, r)
		}
	}()

	t := simstats.GetRootAsAggregatedStats(buf, 0)
	stats.TotalGames = t.TotalGames()
	stats.Draws = t.Draws()
	stats.Errors = t.Errors()
	stats.AvgDurationNs = t.AvgDurationNs()
	stats.MedianWinningScore = t.MedianWinningScore()

	stats.Wins = make([]uint32, t.WinsLength())
	for i := range stats.Wins {
		stats.Wins[i] = t.Wins(i)
	}
	stats.AvgScores = make([]float32, t.AvgScoresLength())
	for i := range stats.AvgScores {
		stats.AvgScores[i] = t.AvgScores(i)
	}
	return stats, nil
}

// WriteStatsFile encodes stats to path
func WriteStatsFile(path string, stats simulation.AggregatedStats) error {
	if err := os.WriteFile(path, EncodeStats(stats), 0o644); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// ReadStatsFile decodes the stats stored at path
func ReadStatsFile(path string) (simulation.AggregatedStats, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return simulation.AggregatedStats{}, fmt.Errorf("reading stats: %w", err)
	}
	return DecodeStats(buf)
}
