package engine

import "fmt"

// Colour groups structures for scoring and per-item rewards
type Colour uint8

const (
	Brown Colour = iota
	Grey
	Blue
	Yellow
	Red
	Green
	Purple
	numColours
)

// Colours lists every colour in scoring order.
var Colours = []Colour{Brown, Grey, Blue, Yellow, Red, Green, Purple}

var colourNames = [numColours]string{"brown", "grey", "blue", "yellow", "red", "green", "purple"}

func (c Colour) String() string {
	if c >= numColours {
		return fmt.Sprintf("colour(%d)", uint8(c))
	}
	return colourNames[c]
}

// ScienceItem is one of the three science symbols
type ScienceItem uint8

const (
	Compass ScienceItem = iota
	Cog
	Tablet
	numScienceItems
)

func (s ScienceItem) String() string {
	switch s {
	case Compass:
		return "compass"
	case Cog:
		return "cog"
	case Tablet:
		return "tablet"
	}
	return fmt.Sprintf("science(%d)", uint8(s))
}

// PowerKind tags the effect a structure has once built
type PowerKind uint8

const (
	PowerProducer PowerKind = iota
	PowerVictoryPoints
	PowerCoins
	PowerBuyBrownAntiClockwise // brown from the right neighbour at 1 coin
	PowerBuyBrownClockwise     // brown from the left neighbour at 1 coin
	PowerBuyGrey               // grey from either neighbour at 1 coin
	PowerScience
	PowerShields
	PowerPerItemRewards
)

// ItemKind is what a per-item reward counts
type ItemKind uint8

const (
	ItemCard ItemKind = iota
	ItemWonderStage
	ItemDefeatToken
)

// PerItemReward pays coins when built and points at the end of the game for
// every matching item in the selected scope.
type PerItemReward struct {
	Item       ItemKind
	Colours    []Colour // only for ItemCard
	Me         bool
	Neighbours bool
	Coins      int
	Points     int
}

// Count returns how many items match across the boards in scope.
func (r PerItemReward) Count(me, left, right PublicPlayer) int {
	n := 0
	if r.Me {
		n += r.countOn(me)
	}
	if r.Neighbours {
		n += r.countOn(left) + r.countOn(right)
	}
	return n
}

func (r PerItemReward) countOn(p PublicPlayer) int {
	switch r.Item {
	case ItemCard:
		n := 0
		for _, c := range p.Built {
			for _, col := range r.Colours {
				if c.Colour() == col {
					n++
					break
				}
			}
		}
		return n
	case ItemWonderStage:
		return p.Stages
	}
	// defeat tokens are not tracked
	return 0
}

// Power is the closed set of effects a structure can have.
type Power struct {
	Kind PowerKind

	// PowerProducer
	Production  Production
	Purchasable bool

	// PowerVictoryPoints, PowerCoins, PowerShields
	Amount int

	// PowerScience: one entry is a fixed symbol, more is a choice made at scoring
	Science []ScienceItem

	// PowerPerItemRewards
	Reward PerItemReward
}

// IsProducer reports whether the power yields resources.
func (p Power) IsProducer() bool {
	return p.Kind == PowerProducer
}

// Borrowable reports whether a neighbour may buy from this power.
func (p Power) Borrowable() bool {
	return p.Kind == PowerProducer && p.Purchasable
}

func produce(p Production) Power {
	return Power{Kind: PowerProducer, Production: p, Purchasable: true}
}

func ownOnly(p Production) Power {
	return Power{Kind: PowerProducer, Production: p}
}

func points(n int) Power {
	return Power{Kind: PowerVictoryPoints, Amount: n}
}

func coins(n int) Power {
	return Power{Kind: PowerCoins, Amount: n}
}

func shields(n int) Power {
	return Power{Kind: PowerShields, Amount: n}
}

func science(items ...ScienceItem) Power {
	return Power{Kind: PowerScience, Science: items}
}

func reward(r PerItemReward) Power {
	return Power{Kind: PowerPerItemRewards, Reward: r}
}

func trade(kind PowerKind) Power {
	return Power{Kind: kind}
}

func (p Power) String() string {
	switch p.Kind {
	case PowerProducer:
		if p.Purchasable {
			return "produces " + p.Production.String()
		}
		return "produces " + p.Production.String() + " (owner only)"
	case PowerVictoryPoints:
		return fmt.Sprintf("%d VP", p.Amount)
	case PowerCoins:
		return fmt.Sprintf("%d coins", p.Amount)
	case PowerBuyBrownAntiClockwise:
		return "brown from right for 1 coin"
	case PowerBuyBrownClockwise:
		return "brown from left for 1 coin"
	case PowerBuyGrey:
		return "grey from neighbours for 1 coin"
	case PowerScience:
		if len(p.Science) == 1 {
			return p.Science[0].String()
		}
		return fmt.Sprintf("any of %v", p.Science)
	case PowerShields:
		return fmt.Sprintf("%d shields", p.Amount)
	case PowerPerItemRewards:
		return fmt.Sprintf("%d coins, %d VP per item", p.Reward.Coins, p.Reward.Points)
	}
	return "unknown power"
}
