package engine

import "math/rand"

// HandSize is the number of cards dealt to each seat at the start of an age
const HandSize = 7

// NewDeck returns the shuffled deck for age at the given seat count. The
// third age draws players+2 guilds at random from the full catalogue.
func NewDeck(age Age, players int, rng *rand.Rand) []Card {
	return NewDeckWithout(age, players, nil, rng)
}

// NewDeckWithout returns the deck for age with one copy of every card in
// exclude removed. Excluded guilds are always part of the drawn guild set, so
// a rollout can rebuild the unseen part of a deck around the cards it knows.
// Excluded cards that are not in the deck are ignored.
func NewDeckWithout(age Age, players int, exclude []Card, rng *rand.Rand) []Card {
	deck := make([]Card, 0, HandSize*players)
	for c := Card(0); c < NumCards; c++ {
		if c.Age() != age || c.IsGuild() {
			continue
		}
		for _, needed := range c.PlayersNeeded() {
			if players >= needed {
				deck = append(deck, c)
			}
		}
	}

	if age == AgeThird {
		deck = append(deck, drawGuilds(players+2, exclude, rng)...)
	}

	remaining := make(map[Card]int, len(exclude))
	for _, c := range exclude {
		remaining[c]++
	}
	if len(remaining) > 0 {
		kept := deck[:0]
		for _, c := range deck {
			if remaining[c] > 0 {
				remaining[c]--
				continue
			}
			kept = append(kept, c)
		}
		deck = kept
	}

	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

func drawGuilds(n int, known []Card, rng *rand.Rand) []Card {
	out := make([]Card, 0, len(Guilds))
	taken := make(map[Card]bool)
	for _, c := range known {
		if c.IsGuild() && !taken[c] {
			taken[c] = true
			out = append(out, c)
		}
	}
	rest := make([]Card, 0, len(Guilds))
	for _, g := range Guilds {
		if !taken[g] {
			rest = append(rest, g)
		}
	}
	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	out = append(out, rest...)
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}
