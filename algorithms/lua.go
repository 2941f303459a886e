package algorithms

import (
	"errors"
	"fmt"
	"math/rand"

	lua "github.com/yuin/gopher-lua"

	"github.com/signalnine/wonders/engine"
)

// ErrNoChooseFunction is returned when a strategy script does not define choose.
var ErrNoChooseFunction = errors.New("strategy script must define choose(options, state)")

// Lua runs a scripted strategy. The script defines
//
//	function choose(options, state) ... return index end
//
// where options is a 1-based array of tables {kind, card, colour, borrows,
// cost} and state holds {turn, age, seat, players, coins, built}. A result
// that is not a valid index falls back to a random choice.
type Lua struct {
	L        *lua.LState
	choose   lua.LValue
	fallback *Random
}

// NewLua compiles script and looks up its choose function
func NewLua(script string, rng *rand.Rand) (*Lua, error) {
	L := lua.NewState()
	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading strategy: %w", err)
	}
	return newLua(L, rng)
}

// NewLuaFile loads the strategy from a file
func NewLuaFile(path string, rng *rand.Rand) (*Lua, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading strategy %s: %w", path, err)
	}
	return newLua(L, rng)
}

func newLua(L *lua.LState, rng *rand.Rand) (*Lua, error) {
	fn := L.GetGlobal("choose")
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoChooseFunction
	}
	return &Lua{L: L, choose: fn, fallback: NewRandom(rng)}, nil
}

// Close releases the interpreter
func (s *Lua) Close() {
	s.L.Close()
}

// Candidates lists every build option of every card in hand followed by a
// discard of each card, in hand order.
func Candidates(player *engine.Player, visible *engine.VisibleGame) []engine.Action {
	var out []engine.Action
	for _, card := range player.Hand() {
		out = append(out, player.OptionsForCard(card, visible).Actions...)
	}
	for _, card := range player.Hand() {
		out = append(out, engine.Discard(card))
	}
	return out
}

// NextAction implements engine.Algorithm
func (s *Lua) NextAction(player *engine.Player, visible *engine.VisibleGame) engine.Action {
	candidates := Candidates(player, visible)

	options := s.L.NewTable()
	for _, a := range candidates {
		options.Append(s.actionTable(player, a))
	}

	if err := s.L.CallByParam(lua.P{Fn: s.choose, NRet: 1, Protect: true}, options, s.stateTable(player, visible)); err != nil {
		return s.fallback.NextAction(player, visible)
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok || int(n) < 1 || int(n) > len(candidates) {
		return s.fallback.NextAction(player, visible)
	}
	return candidates[int(n)-1]
}

func (s *Lua) actionTable(player *engine.Player, a engine.Action) *lua.LTable {
	t := s.L.NewTable()
	t.RawSetString("kind", lua.LString(a.Kind.String()))
	t.RawSetString("card", lua.LString(a.Card.Name()))
	t.RawSetString("colour", lua.LString(a.Card.Colour().String()))
	t.RawSetString("borrows", lua.LNumber(a.Borrowing.Count()))
	cost := 0
	if a.Kind == engine.ActionBuild {
		cost = a.Card.Cost()[engine.Coins] + player.BorrowCost(a.Borrowing)
	}
	t.RawSetString("cost", lua.LNumber(cost))
	return t
}

func (s *Lua) stateTable(player *engine.Player, visible *engine.VisibleGame) *lua.LTable {
	t := s.L.NewTable()
	t.RawSetString("turn", lua.LNumber(visible.Turn))
	t.RawSetString("age", lua.LNumber(visible.Age()))
	t.RawSetString("seat", lua.LNumber(visible.PlayerIndex+1))
	t.RawSetString("players", lua.LNumber(len(visible.Players)))
	t.RawSetString("coins", lua.LNumber(player.Coins()))
	built := s.L.NewTable()
	for _, c := range player.Built() {
		built.Append(lua.LString(c.Name()))
	}
	t.RawSetString("built", built)
	return t
}
