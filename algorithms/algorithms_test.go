package algorithms

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/wonders/engine"
)

func table(me *engine.Player, left, right []engine.Card) *engine.VisibleGame {
	return &engine.VisibleGame{
		Players: []engine.PublicPlayer{
			me.Public(),
			{Wonder: engine.Wonder{Type: engine.Giza}, Built: left},
			{Wonder: engine.Wonder{Type: engine.Babylon}, Built: right},
		},
	}
}

func TestRandomPlaysFullGames(t *testing.T) {
	for n := engine.MinPlayers; n <= engine.MaxPlayers; n++ {
		algs := make([]engine.Algorithm, n)
		for i := range algs {
			algs[i] = NewRandom(rand.New(rand.NewSource(int64(100 + i))))
		}
		g, err := engine.NewGame(algs, rand.New(rand.NewSource(int64(n))))
		require.NoError(t, err)
		scores, err := g.Play()
		require.NoError(t, err)
		assert.Len(t, scores, n)
	}
}

func TestRandomActionIsLegal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := engine.NewPlayer(engine.Wonder{Type: engine.Rhodes}, []engine.Card{engine.Palace, engine.Pantheon, engine.Senate})
	visible := table(&p, nil, nil)
	r := NewRandom(rng)
	for i := 0; i < 20; i++ {
		a := r.NextAction(&p, visible)
		assert.True(t, p.CanPlay(a, visible), "%v should be legal", a)
		assert.Equal(t, engine.ActionDiscard, a.Kind, "nothing is affordable")
	}
}

func TestRandomEmptyHandIsRefused(t *testing.T) {
	me := engine.NewPlayer(engine.Wonder{Type: engine.Olympia}, nil)
	visible := table(&me, nil, nil)
	action := NewRandom(rand.New(rand.NewSource(1))).NextAction(&me, visible)
	assert.False(t, me.CanPlay(action, visible))
}

func TestHumanDiscard(t *testing.T) {
	var out bytes.Buffer
	h := NewHuman(strings.NewReader("2\nd\n"), &out)
	p := engine.NewPlayer(engine.Wonder{Type: engine.Rhodes}, []engine.Card{engine.LumberYard, engine.Stockade})
	a := h.NextAction(&p, table(&p, nil, nil))
	assert.Equal(t, engine.Discard(engine.Stockade), a)
	assert.Contains(t, out.String(), "Lumber Yard")
}

func TestHumanBuildRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	// 9 is out of range, Palace is unaffordable, then a free Lumber Yard
	h := NewHuman(strings.NewReader("9\n2\nb\n1\nx\n1\nb\n"), &out)
	p := engine.NewPlayer(engine.Wonder{Type: engine.Rhodes}, []engine.Card{engine.LumberYard, engine.Palace})
	visible := table(&p, nil, nil)
	a := h.NextAction(&p, visible)
	assert.Equal(t, engine.ActionBuild, a.Kind)
	assert.Equal(t, engine.LumberYard, a.Card)
	assert.True(t, p.CanPlay(a, visible))
	assert.Contains(t, out.String(), "can't afford Palace")
	assert.Contains(t, out.String(), "Please answer b or d")
}

func TestHumanChoosesBorrowing(t *testing.T) {
	var out bytes.Buffer
	h := NewHuman(strings.NewReader("1\nb\n2\n"), &out)
	p := engine.NewPlayer(engine.Wonder{Type: engine.Rhodes}, []engine.Card{engine.Stockade})
	visible := table(&p, []engine.Card{engine.LumberYard}, []engine.Card{engine.LumberYard})

	a := h.NextAction(&p, visible)
	require.Equal(t, engine.ActionBuild, a.Kind)
	assert.Equal(t, 1, a.Borrowing.Count())
	assert.True(t, p.CanPlay(a, visible))
	assert.Contains(t, out.String(), "How do you want to pay?")
}

func TestHumanEOFDiscards(t *testing.T) {
	h := NewHuman(strings.NewReader(""), &bytes.Buffer{})
	p := engine.NewPlayer(engine.Wonder{Type: engine.Rhodes}, []engine.Card{engine.Altar, engine.Baths})
	assert.Equal(t, engine.Discard(engine.Altar), h.NextAction(&p, table(&p, nil, nil)))
}

func TestDescribeBorrowing(t *testing.T) {
	p := engine.NewPlayer(engine.Wonder{Type: engine.Rhodes}, nil)
	visible := table(&p, nil, nil)
	b := engine.Borrowing{
		Left:  []engine.Borrow{{Card: engine.LumberYard}},
		Right: []engine.Borrow{{Card: engine.ClayPool}},
	}
	assert.Equal(t, "Borrow Lumber Yard from player 2 and Clay Pool from player 3", DescribeBorrowing(b, visible))
	assert.Equal(t, "Use your own resources", DescribeBorrowing(engine.NoBorrowing(), visible))

	var out bytes.Buffer
	PrintBorrowingOptions(&out, []engine.Action{engine.Build(engine.Stockade, b)}, visible)
	assert.Equal(t, "  1) Borrow Lumber Yard from player 2 and Clay Pool from player 3\n", out.String())
}

const lastOption = `
function choose(options, state)
	assert(state.players == 3)
	return #options
end
`

func TestLuaChoosesIndex(t *testing.T) {
	s, err := NewLua(lastOption, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	defer s.Close()

	p := engine.NewPlayer(engine.Wonder{Type: engine.Rhodes}, []engine.Card{engine.LumberYard, engine.Altar})
	a := s.NextAction(&p, table(&p, nil, nil))
	assert.Equal(t, engine.Discard(engine.Altar), a)
}

func TestLuaPrefersCheapBuilds(t *testing.T) {
	script := `
function choose(options, state)
	for i, o in ipairs(options) do
		if o.kind == "Build" and o.cost == 0 then return i end
	end
	return 1
end`
	s, err := NewLua(script, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	defer s.Close()

	p := engine.NewPlayer(engine.Wonder{Type: engine.Rhodes}, []engine.Card{engine.Stockade, engine.TreeFarm, engine.Altar})
	visible := table(&p, []engine.Card{engine.LumberYard}, nil)
	a := s.NextAction(&p, visible)
	assert.Equal(t, engine.Build(engine.Altar, engine.NoBorrowing()), a)
}

func TestLuaFallsBack(t *testing.T) {
	for _, script := range []string{
		`function choose(options, state) return 99 end`,
		`function choose(options, state) return "x" end`,
		`function choose(options, state) error("boom") end`,
	} {
		s, err := NewLua(script, rand.New(rand.NewSource(3)))
		require.NoError(t, err)
		p := engine.NewPlayer(engine.Wonder{Type: engine.Rhodes}, []engine.Card{engine.LumberYard})
		visible := table(&p, nil, nil)
		assert.True(t, p.CanPlay(s.NextAction(&p, visible), visible), script)
		s.Close()
	}
}

func TestLuaLoadErrors(t *testing.T) {
	_, err := NewLua(`x = 1`, rand.New(rand.NewSource(4)))
	assert.True(t, errors.Is(err, ErrNoChooseFunction))

	_, err = NewLua(`function choose(`, rand.New(rand.NewSource(4)))
	assert.Error(t, err)
}

func TestCandidates(t *testing.T) {
	p := engine.NewPlayer(engine.Wonder{Type: engine.Rhodes}, []engine.Card{engine.LumberYard, engine.Palace})
	got := Candidates(&p, table(&p, nil, nil))
	assert.Equal(t, []engine.Action{
		engine.Build(engine.LumberYard, engine.NoBorrowing()),
		engine.Discard(engine.LumberYard),
		engine.Discard(engine.Palace),
	}, got)
}
