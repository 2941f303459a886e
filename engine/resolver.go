package engine

import "math/rand"

// usable is one source of a unit that can go toward a cost: a mandatory
// choice on the seat's own board, or an optional unit on a neighbour's.
type usable struct {
	options []Resource
	own     bool
	left    bool
	card    Card
	index   int
	price   int
}

func (u usable) radix() int {
	if u.own {
		return len(u.options)
	}
	// digit 0 skips the unit
	return len(u.options) + 1
}

// OptionsForCard returns every distinct way to build card given the round
// snapshot. An empty result means the card is not currently buildable.
func (p *Player) OptionsForCard(card Card, visible *VisibleGame) ActionOptions {
	return ActionOptions{Actions: p.resolve(card, visible.LeftNeighbour(), visible.RightNeighbour(), nil, false)}
}

// FirstOptionForCard stops at the first way to pay for card. When rng is
// non-nil the search order is shuffled so repeated calls spread across the
// options.
func (p *Player) FirstOptionForCard(card Card, visible *VisibleGame, rng *rand.Rand) (Action, bool) {
	actions := p.resolve(card, visible.LeftNeighbour(), visible.RightNeighbour(), rng, true)
	if len(actions) == 0 {
		return Action{}, false
	}
	return actions[0], true
}

// CanPlay reports whether action is legal for this seat against the snapshot.
func (p *Player) CanPlay(action Action, visible *VisibleGame) bool {
	if !action.Card.Valid() || p.inHand(action.Card) < 0 {
		return false
	}
	switch action.Kind {
	case ActionDiscard:
		return true
	case ActionBuild:
		left, right := visible.LeftNeighbour(), visible.RightNeighbour()
		if !action.Borrowing.Valid(left, right) {
			return false
		}
		key := action.Borrowing.Key()
		for _, option := range p.resolve(action.Card, left, right, nil, false) {
			if option.Borrowing.Key() == key {
				return true
			}
		}
	}
	// wonder stages are not playable yet
	return false
}

// residual returns the cost of card left after coins, the wonder's starting
// resource and all fixed own production are applied.
func (p *Player) residual(card Card) Resources {
	cost := card.Cost()
	cost[Coins] -= p.coins
	cost = cost.SubOne(p.wonder.StartingResource())
	for _, c := range p.built {
		pw := c.Power()
		if pw.IsProducer() && pw.Production.Kind != ProduceChoice {
			cost = cost.Sub(pw.Production.Fixed())
		}
	}
	return cost
}

func (p *Player) resolve(card Card, left, right PublicPlayer, rng *rand.Rand, firstOnly bool) []Action {
	if p.ownsName(card) {
		return nil
	}
	if p.chained(card) {
		return []Action{Build(card, NoBorrowing())}
	}

	// 1. Fixed resources
	base := p.residual(card)
	if base.Satisfied() {
		return []Action{Build(card, NoBorrowing())}
	}
	if base[Coins] > 0 {
		return nil
	}

	// 2. Usable entries, own choices first so rejection depends only on a prefix
	own, borrowable := p.usableEntries(base, left, right)
	if rng != nil {
		rng.Shuffle(len(own), func(i, j int) { own[i], own[j] = own[j], own[i] })
		rng.Shuffle(len(borrowable), func(i, j int) { borrowable[i], borrowable[j] = borrowable[j], borrowable[i] })
	}
	entries := append(own, borrowable...)
	if len(entries) == 0 {
		return nil
	}

	// 3. Mixed-radix strides, entry 0 most significant
	strides := make([]int, len(entries))
	total := 1
	for k := len(entries) - 1; k >= 0; k-- {
		strides[k] = total
		total *= entries[k].radix()
	}

	// 4. Enumerate combinations
	var out []Action
	seen := make(map[string]bool)
	for idx := 0; idx < total; {
		residual := base
		var borrowing Borrowing
		rejected := -1
		rem := idx
		for k, e := range entries {
			d := rem / strides[k]
			rem %= strides[k]
			if e.own {
				residual = residual.SubOne(e.options[d])
				continue
			}
			if d == 0 {
				continue
			}
			kind := e.options[d-1]
			if !residual.Needs(kind) {
				rejected = k
				break
			}
			residual = residual.SubOne(kind)
			residual[Coins] += e.price
			if residual[Coins] > 0 {
				rejected = k
				break
			}
			b := Borrow{Card: e.card, Index: e.index}
			if e.left {
				borrowing.Left = append(borrowing.Left, b)
			} else {
				borrowing.Right = append(borrowing.Right, b)
			}
		}
		if rejected >= 0 {
			// every combination sharing this prefix fails the same way
			idx = (idx/strides[rejected] + 1) * strides[rejected]
			continue
		}
		if residual.Satisfied() {
			canonical := borrowing.Canonical()
			if key := canonical.Key(); !seen[key] {
				seen[key] = true
				out = append(out, Build(card, canonical))
				if firstOnly {
					return out
				}
			}
		}
		idx++
	}
	return out
}

func (p *Player) usableEntries(base Resources, left, right PublicPlayer) (own, borrowable []usable) {
	for _, c := range p.built {
		pw := c.Power()
		if !pw.IsProducer() || pw.Production.Kind != ProduceChoice {
			continue
		}
		if opts := needed(pw.Production.Options, base); len(opts) > 0 {
			own = append(own, usable{options: opts, own: true, card: c})
		}
	}
	for _, side := range []struct {
		board PublicPlayer
		left  bool
	}{{left, true}, {right, false}} {
		for _, c := range side.board.Built {
			pw := c.Power()
			if !pw.Borrowable() {
				continue
			}
			price := p.borrowPrice(c, side.left)
			for i, unit := range pw.Production.Units() {
				if opts := needed(unit, base); len(opts) > 0 {
					borrowable = append(borrowable, usable{options: opts, left: side.left, card: c, index: i, price: price})
				}
			}
		}
	}
	return own, borrowable
}

func needed(options []Resource, cost Resources) []Resource {
	var out []Resource
	for _, k := range options {
		if cost.Needs(k) {
			out = append(out, k)
		}
	}
	return out
}
