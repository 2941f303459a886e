package engine

const (
	StartingCoins = 3
	DiscardCoins  = 3
	BorrowPrice   = 2
	DiscountPrice = 1
)

// PublicPlayer is the immutable per-round snapshot of a seat
type PublicPlayer struct {
	Wonder Wonder
	Built  []Card
	Coins  int
	Stages int // completed wonder stages, always 0 until stages are playable
}

// HasBuilt reports whether this exact card is on the board
func (pp PublicPlayer) HasBuilt(card Card) bool {
	for _, c := range pp.Built {
		if c == card {
			return true
		}
	}
	return false
}

// Count returns how many built structures have colour c
func (pp PublicPlayer) Count(c Colour) int {
	n := 0
	for _, card := range pp.Built {
		if card.Colour() == c {
			n++
		}
	}
	return n
}

// Player is a seat's mutable board and hand
type Player struct {
	wonder Wonder
	built  []Card
	stages []Card
	coins  int
	hand   []Card
}

// NewPlayer creates a seat with an empty board and the starting coins
func NewPlayer(wonder Wonder, hand []Card) Player {
	return Player{
		wonder: wonder,
		coins:  StartingCoins,
		hand:   append([]Card(nil), hand...),
	}
}

// NewPlayerFromPublic rebuilds a seat from its snapshot and a (possibly
// guessed) hand. Used by rollouts.
func NewPlayerFromPublic(pp PublicPlayer, hand []Card) Player {
	return Player{
		wonder: pp.Wonder,
		built:  append([]Card(nil), pp.Built...),
		coins:  pp.Coins,
		hand:   append([]Card(nil), hand...),
	}
}

// Wonder returns the seat's board
func (p *Player) Wonder() Wonder { return p.wonder }

// Built returns the structures on the board. Callers must not modify it.
func (p *Player) Built() []Card { return p.built }

// Coins returns the coin balance
func (p *Player) Coins() int { return p.coins }

// Hand returns the current hand. Callers must not modify it.
func (p *Player) Hand() []Card { return p.hand }

// HasBuilt reports whether this exact card is on the board
func (p *Player) HasBuilt(card Card) bool {
	for _, c := range p.built {
		if c == card {
			return true
		}
	}
	return false
}

// SwapHand replaces the hand and returns the old one
func (p *Player) SwapHand(hand []Card) []Card {
	old := p.hand
	p.hand = hand
	return old
}

// Public snapshots the seat
func (p *Player) Public() PublicPlayer {
	return PublicPlayer{
		Wonder: p.wonder,
		Built:  append([]Card(nil), p.built...),
		Coins:  p.coins,
		Stages: len(p.stages),
	}
}

// Clone deep copies the seat
func (p *Player) Clone() Player {
	return Player{
		wonder: p.wonder,
		built:  append([]Card(nil), p.built...),
		stages: append([]Card(nil), p.stages...),
		coins:  p.coins,
		hand:   append([]Card(nil), p.hand...),
	}
}

func (p *Player) inHand(card Card) int {
	for i, c := range p.hand {
		if c == card {
			return i
		}
	}
	return -1
}

func (p *Player) removeFromHand(i int) Card {
	card := p.hand[i]
	p.hand = append(p.hand[:i:i], p.hand[i+1:]...)
	return card
}

// ownsName reports whether a card with the same printed name is built.
func (p *Player) ownsName(card Card) bool {
	for _, c := range p.built {
		if c.Name() == card.Name() {
			return true
		}
	}
	return false
}

// chained reports whether a built structure makes card free.
func (p *Player) chained(card Card) bool {
	for _, c := range p.built {
		for _, next := range c.ChainsTo() {
			if next == card {
				return true
			}
		}
	}
	return false
}

func (p *Player) hasPower(kind PowerKind) bool {
	for _, c := range p.built {
		if c.Power().Kind == kind {
			return true
		}
	}
	return false
}

// borrowPrice is what this seat pays for one unit of card bought from the
// left (clockwise) or right (anticlockwise) neighbour.
func (p *Player) borrowPrice(card Card, fromLeft bool) int {
	switch card.Colour() {
	case Brown:
		if fromLeft && p.hasPower(PowerBuyBrownClockwise) {
			return DiscountPrice
		}
		if !fromLeft && p.hasPower(PowerBuyBrownAntiClockwise) {
			return DiscountPrice
		}
	case Grey:
		if p.hasPower(PowerBuyGrey) {
			return DiscountPrice
		}
	}
	return BorrowPrice
}

// BorrowCost returns the coins this seat would pay its neighbours for b.
func (p *Player) BorrowCost(b Borrowing) int {
	total := 0
	for _, x := range b.Left {
		total += p.borrowPrice(x.Card, true)
	}
	for _, x := range b.Right {
		total += p.borrowPrice(x.Card, false)
	}
	return total
}

// DoAction validates and applies action. Coins for borrowed units go to the
// live neighbours; the snapshot in visible is only used for legality.
// Returns false and changes nothing if the action is illegal.
func (p *Player) DoAction(action Action, visible *VisibleGame, left, right *Player, discard *[]Card) bool {
	if !p.CanPlay(action, visible) {
		return false
	}
	i := p.inHand(action.Card)

	switch action.Kind {
	case ActionDiscard:
		*discard = append(*discard, p.removeFromHand(i))
		p.coins += DiscardCoins
		return true

	case ActionBuild:
		card := action.Card
		if !p.chained(card) {
			p.coins -= card.Cost()[Coins]
		}
		for _, b := range action.Borrowing.Left {
			price := p.borrowPrice(b.Card, true)
			p.coins -= price
			left.coins += price
		}
		for _, b := range action.Borrowing.Right {
			price := p.borrowPrice(b.Card, false)
			p.coins -= price
			right.coins += price
		}
		p.built = append(p.built, p.removeFromHand(i))
		p.coins += immediateCoins(card, p.Public(), left.Public(), right.Public())
		return true
	}
	return false
}

// immediateCoins is the coin income a structure grants when it is built,
// counted on the boards as they stand after building it.
func immediateCoins(card Card, me, left, right PublicPlayer) int {
	pw := card.Power()
	switch pw.Kind {
	case PowerCoins:
		return pw.Amount
	case PowerPerItemRewards:
		if pw.Reward.Coins == 0 {
			return 0
		}
		return pw.Reward.Coins * pw.Reward.Count(me, left, right)
	}
	return 0
}
