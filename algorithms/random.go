package algorithms

import (
	"math/rand"

	"github.com/signalnine/wonders/engine"
)

// Random builds a uniformly chosen affordable card, or discards at random
// when nothing in hand can be built.
type Random struct {
	Rng *rand.Rand
}

// NewRandom returns a random strategy drawing from rng
func NewRandom(rng *rand.Rand) *Random {
	return &Random{Rng: rng}
}

// NextAction implements engine.Algorithm. An empty hand yields the zero
// Action, which DoAction refuses.
func (r *Random) NextAction(player *engine.Player, visible *engine.VisibleGame) engine.Action {
	if len(player.Hand()) == 0 {
		return engine.Action{}
	}
	hand := append([]engine.Card(nil), player.Hand()...)
	r.Rng.Shuffle(len(hand), func(i, j int) { hand[i], hand[j] = hand[j], hand[i] })
	for _, card := range hand {
		if action, ok := player.FirstOptionForCard(card, visible, r.Rng); ok {
			return action
		}
	}
	return engine.Discard(hand[r.Rng.Intn(len(hand))])
}
