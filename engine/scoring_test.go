package engine

import (
	"math/rand"
	"testing"
)

func TestScienceScore(t *testing.T) {
	tests := []struct {
		counts [3]int
		want   int
	}{
		{[3]int{1, 1, 1}, 10},
		{[3]int{2, 0, 0}, 4},
		{[3]int{0, 0, 0}, 0},
		{[3]int{2, 2, 1}, 7 + 4 + 4 + 1},
		{[3]int{3, 3, 3}, 21 + 27},
	}
	for _, tt := range tests {
		if got := ScienceScore(tt.counts); got != tt.want {
			t.Errorf("ScienceScore(%v) = %d, want %d", tt.counts, got, tt.want)
		}
	}
}

func TestScoreByColour(t *testing.T) {
	me := board(Pawnshop, Baths, LumberYard, Tavern, Stockade, Apothecary, Workshop, Scriptorium)
	b := Score(me, board(), board())

	if b.Of(Blue) != 6 {
		t.Errorf("blue = %d, want 6", b.Of(Blue))
	}
	if b.Of(Green) != 10 {
		t.Errorf("green = %d, want 10", b.Of(Green))
	}
	for _, c := range []Colour{Brown, Yellow, Red} {
		if b.Of(c) != 0 {
			t.Errorf("%s should not score, got %d", c, b.Of(c))
		}
	}
	if b.Strength() != 16 {
		t.Errorf("strength = %d, want 16", b.Strength())
	}
}

func TestScientistsGuildPicksBestSymbol(t *testing.T) {
	me := board(Apothecary, Workshop, ScientistsGuild)
	if got := Score(me, board(), board()).Of(Green); got != 10 {
		t.Errorf("green = %d, want 10 (guild completes the set)", got)
	}

	me = board(Apothecary, Dispensary, ScientistsGuild)
	if got := Score(me, board(), board()).Of(Green); got != 9 {
		t.Errorf("green = %d, want 9 (three compasses)", got)
	}
}

func TestPerItemRewardPoints(t *testing.T) {
	left := board(LumberYard, StonePit, Loom1)
	right := board(ClayPool, Apothecary)

	tests := []struct {
		name   string
		card   Card
		colour Colour
		mine   []Card
		want   int
	}{
		{"workers guild counts neighbour brown", WorkersGuild, Purple, nil, 3},
		{"craftsmens guild 2 per neighbour grey", CraftsmensGuild, Purple, nil, 2},
		{"philosophers guild counts neighbour green", PhilosophersGuild, Purple, nil, 1},
		{"haven counts own brown", Haven, Yellow, []Card{OreVein, Mine}, 2},
		{"chamber of commerce 2 per own grey", ChamberOfCommerce, Yellow, []Card{Press1}, 2},
		{"shipowners counts own brown grey purple", ShipownersGuild, Purple, []Card{OreVein, Press1}, 3},
		{"builders guild with no stages", BuildersGuild, Purple, nil, 0},
		{"strategists without defeat tokens", StrategistsGuild, Purple, nil, 0},
	}
	for _, tt := range tests {
		me := board(append(tt.mine, tt.card)...)
		if got := Score(me, left, right).Of(tt.colour); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestGameScoresMatchBreakdowns(t *testing.T) {
	g, err := NewGame(algorithms(5), rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Play(); err != nil {
		t.Fatal(err)
	}
	for i, s := range g.Scores() {
		right, me, left := g.neighbours(i)
		if want := Score(me.Public(), left.Public(), right.Public()).Strength(); s != want {
			t.Errorf("seat %d: %d != %d", i, s, want)
		}
	}
}
