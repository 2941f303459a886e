package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/wonders/config"
	"github.com/signalnine/wonders/simulation"
)

func TestParseSeats(t *testing.T) {
	seats := parseSeats(" Human, random,,montecarlo ")
	require.Len(t, seats, 3)
	assert.Equal(t, "human", seats[0].Type)
	assert.Equal(t, simulation.TypeRandom, seats[1].Type)
	assert.Equal(t, simulation.TypeMonteCarlo, seats[2].Type)
}

func TestValidateAcceptsHuman(t *testing.T) {
	cfg := config.Default()
	cfg.Players = parseSeats("human,random,random")
	cfg.ApplyDefaults()
	assert.NoError(t, validate(cfg))
	assert.Equal(t, "human", cfg.Players[0].Type)

	cfg.Players = parseSeats("human,random")
	assert.ErrorIs(t, validate(cfg), config.ErrPlayers)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2m5s", formatDuration(125*time.Second))
	assert.Equal(t, "1h30m", formatDuration(90*time.Minute))
}

func TestPlayGameBots(t *testing.T) {
	cfg := config.Default()
	cfg.Players = parseSeats("random,random,random")
	cfg.Seed = 7
	cfg.ApplyDefaults()

	var out bytes.Buffer
	require.NoError(t, playGame(cfg, strings.NewReader(""), &out))
	text := out.String()
	assert.True(t, strings.Contains(text, "wins!") || strings.Contains(text, "draw!"))
	assert.Contains(t, text, "Player 3")
	assert.Contains(t, text, "Total")
}
