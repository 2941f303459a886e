package engine

import "fmt"

// Age is one of the three six-round phases of a game
type Age uint8

const (
	AgeFirst Age = iota + 1
	AgeSecond
	AgeThird
)

func (a Age) String() string {
	switch a {
	case AgeFirst:
		return "I"
	case AgeSecond:
		return "II"
	case AgeThird:
		return "III"
	}
	return fmt.Sprintf("age(%d)", uint8(a))
}

// Card identifies one structure of the base game (1 byte)
type Card uint8

const (
	// Age I
	LumberYard Card = iota
	StonePit
	ClayPool
	OreVein
	TreeFarm
	Excavation
	ClayPit
	TimberYard
	ForestCave
	Mine
	Loom1
	Glassworks1
	Press1
	Pawnshop
	Baths
	Altar
	Theater
	Tavern
	EastTradingPost
	WestTradingPost
	Marketplace
	Stockade
	Barracks
	GuardTower
	Apothecary
	Workshop
	Scriptorium

	// Age II
	Sawmill
	Quarry
	Brickyard
	Foundry
	Loom2
	Glassworks2
	Press2
	Aqueduct
	Temple
	Statue
	Courthouse
	Forum
	Caravansery
	Vineyard
	Bazar
	Walls
	TrainingGround
	Stables
	ArcheryRange
	Dispensary
	Laboratory
	Library
	School

	// Age III
	Pantheon
	Gardens
	TownHall
	Palace
	Senate
	Haven
	Lighthouse
	ChamberOfCommerce
	Arena
	Fortifications
	Circus
	Arsenal
	SiegeWorkshop
	Lodge
	Observatory
	University
	Academy
	Study

	// Guilds
	WorkersGuild
	CraftsmensGuild
	TradersGuild
	PhilosophersGuild
	SpiesGuild
	StrategistsGuild
	ShipownersGuild
	ScientistsGuild
	MagistratesGuild
	BuildersGuild

	NumCards
)

type cardInfo struct {
	name    string
	age     Age
	players []int // one copy enters the deck per listed seat count reached
	cost    Resources
	colour  Colour
	power   Power
	chains  []Card
}

var catalogue = [NumCards]cardInfo{
	LumberYard: {"Lumber Yard", AgeFirst, []int{3, 4}, Free(), Brown, produce(Single(Wood)), nil},
	StonePit:   {"Stone Pit", AgeFirst, []int{3, 5}, Free(), Brown, produce(Single(Stone)), nil},
	ClayPool:   {"Clay Pool", AgeFirst, []int{3, 5}, Free(), Brown, produce(Single(Clay)), nil},
	OreVein:    {"Ore Vein", AgeFirst, []int{3, 4}, Free(), Brown, produce(Single(Ore)), nil},
	TreeFarm:   {"Tree Farm", AgeFirst, []int{6}, Of(Coins, 1), Brown, produce(Choice(Wood, Clay)), nil},
	Excavation: {"Excavation", AgeFirst, []int{4}, Of(Coins, 1), Brown, produce(Choice(Stone, Clay)), nil},
	ClayPit:    {"Clay Pit", AgeFirst, []int{3}, Of(Coins, 1), Brown, produce(Choice(Clay, Ore)), nil},
	TimberYard: {"Timber Yard", AgeFirst, []int{3}, Of(Coins, 1), Brown, produce(Choice(Stone, Wood)), nil},
	ForestCave: {"Forest Cave", AgeFirst, []int{5}, Of(Coins, 1), Brown, produce(Choice(Wood, Ore)), nil},
	Mine:       {"Mine", AgeFirst, []int{6}, Of(Coins, 1), Brown, produce(Choice(Stone, Ore)), nil},

	Loom1:       {"Loom", AgeFirst, []int{3, 6}, Free(), Grey, produce(Single(Loom)), nil},
	Glassworks1: {"Glassworks", AgeFirst, []int{3, 6}, Free(), Grey, produce(Single(Glass)), nil},
	Press1:      {"Press", AgeFirst, []int{3, 6}, Free(), Grey, produce(Single(Papyrus)), nil},

	Pawnshop: {"Pawnshop", AgeFirst, []int{4, 7}, Free(), Blue, points(3), nil},
	Baths:    {"Baths", AgeFirst, []int{3, 7}, Cost(Stone), Blue, points(3), []Card{Aqueduct}},
	Altar:    {"Altar", AgeFirst, []int{3, 5}, Free(), Blue, points(2), []Card{Temple}},
	Theater:  {"Theater", AgeFirst, []int{3, 6}, Free(), Blue, points(2), []Card{Statue}},

	Tavern:          {"Tavern", AgeFirst, []int{4, 5, 7}, Free(), Yellow, coins(5), nil},
	EastTradingPost: {"East Trading Post", AgeFirst, []int{3, 7}, Free(), Yellow, trade(PowerBuyBrownAntiClockwise), []Card{Forum}},
	WestTradingPost: {"West Trading Post", AgeFirst, []int{3, 7}, Free(), Yellow, trade(PowerBuyBrownClockwise), []Card{Forum}},
	Marketplace:     {"Marketplace", AgeFirst, []int{3, 6}, Free(), Yellow, trade(PowerBuyGrey), []Card{Caravansery}},

	Stockade:   {"Stockade", AgeFirst, []int{3, 7}, Cost(Wood), Red, shields(1), nil},
	Barracks:   {"Barracks", AgeFirst, []int{3, 5}, Cost(Ore), Red, shields(1), nil},
	GuardTower: {"Guard Tower", AgeFirst, []int{3, 4}, Cost(Clay), Red, shields(1), nil},

	Apothecary:  {"Apothecary", AgeFirst, []int{3, 5}, Cost(Loom), Green, science(Compass), []Card{Stables, Dispensary}},
	Workshop:    {"Workshop", AgeFirst, []int{3, 7}, Cost(Glass), Green, science(Cog), []Card{ArcheryRange, Laboratory}},
	Scriptorium: {"Scriptorium", AgeFirst, []int{3, 4}, Cost(Papyrus), Green, science(Tablet), []Card{Courthouse, Library}},

	Sawmill:   {"Sawmill", AgeSecond, []int{3, 4}, Of(Coins, 1), Brown, produce(Double(Wood)), nil},
	Quarry:    {"Quarry", AgeSecond, []int{3, 4}, Of(Coins, 1), Brown, produce(Double(Stone)), nil},
	Brickyard: {"Brickyard", AgeSecond, []int{3, 4}, Of(Coins, 1), Brown, produce(Double(Clay)), nil},
	Foundry:   {"Foundry", AgeSecond, []int{3, 4}, Of(Coins, 1), Brown, produce(Double(Ore)), nil},

	Loom2:       {"Loom", AgeSecond, []int{3, 5}, Free(), Grey, produce(Single(Loom)), nil},
	Glassworks2: {"Glassworks", AgeSecond, []int{3, 5}, Free(), Grey, produce(Single(Glass)), nil},
	Press2:      {"Press", AgeSecond, []int{3, 5}, Free(), Grey, produce(Single(Papyrus)), nil},

	Aqueduct:   {"Aqueduct", AgeSecond, []int{3, 7}, Cost(Stone, Stone, Stone), Blue, points(5), nil},
	Temple:     {"Temple", AgeSecond, []int{3, 6}, Cost(Wood, Clay, Glass), Blue, points(3), []Card{Pantheon}},
	Statue:     {"Statue", AgeSecond, []int{3, 7}, Cost(Ore, Ore, Wood), Blue, points(4), []Card{Gardens}},
	Courthouse: {"Courthouse", AgeSecond, []int{3, 5}, Cost(Clay, Clay, Loom), Blue, points(4), nil},

	Forum:       {"Forum", AgeSecond, []int{3, 6, 7}, Cost(Clay, Clay), Yellow, ownOnly(Choice(Glass, Loom, Papyrus)), []Card{Haven}},
	Caravansery: {"Caravansery", AgeSecond, []int{3, 5, 6}, Cost(Wood, Wood), Yellow, ownOnly(Choice(Wood, Stone, Ore, Clay)), []Card{Lighthouse}},
	Vineyard: {"Vineyard", AgeSecond, []int{3, 6}, Free(), Yellow,
		reward(PerItemReward{Item: ItemCard, Colours: []Colour{Brown}, Me: true, Neighbours: true, Coins: 1}), nil},
	Bazar: {"Bazar", AgeSecond, []int{4, 7}, Free(), Yellow,
		reward(PerItemReward{Item: ItemCard, Colours: []Colour{Grey}, Me: true, Neighbours: true, Coins: 2}), nil},

	Walls:          {"Walls", AgeSecond, []int{3, 7}, Cost(Stone, Stone, Stone), Red, shields(2), []Card{Fortifications}},
	TrainingGround: {"Training Ground", AgeSecond, []int{4, 6, 7}, Cost(Ore, Ore, Wood), Red, shields(2), []Card{Circus}},
	Stables:        {"Stables", AgeSecond, []int{3, 5}, Cost(Ore, Clay, Wood), Red, shields(2), nil},
	ArcheryRange:   {"Archery Range", AgeSecond, []int{3, 6}, Cost(Wood, Wood, Ore), Red, shields(2), nil},

	Dispensary: {"Dispensary", AgeSecond, []int{3, 4}, Cost(Ore, Ore, Glass), Green, science(Compass), []Card{Arena, Lodge}},
	Laboratory: {"Laboratory", AgeSecond, []int{3, 5}, Cost(Clay, Clay, Papyrus), Green, science(Cog), []Card{SiegeWorkshop, Observatory}},
	Library:    {"Library", AgeSecond, []int{3, 6}, Cost(Stone, Stone, Loom), Green, science(Tablet), []Card{Senate, University}},
	School:     {"School", AgeSecond, []int{3, 7}, Cost(Wood, Papyrus), Green, science(Tablet), []Card{Academy, Study}},

	Pantheon: {"Pantheon", AgeThird, []int{3, 6}, Cost(Clay, Clay, Ore, Glass, Papyrus, Loom), Blue, points(7), nil},
	Gardens:  {"Gardens", AgeThird, []int{3, 4}, Cost(Clay, Clay, Wood), Blue, points(5), nil},
	TownHall: {"Town Hall", AgeThird, []int{3, 5, 6}, Cost(Stone, Stone, Ore, Glass), Blue, points(6), nil},
	Palace:   {"Palace", AgeThird, []int{3, 7}, Cost(Wood, Stone, Ore, Clay, Glass, Loom, Papyrus), Blue, points(8), nil},
	Senate:   {"Senate", AgeThird, []int{3, 5}, Cost(Wood, Wood, Stone, Ore), Blue, points(6), nil},

	Haven: {"Haven", AgeThird, []int{3, 4}, Cost(Wood, Ore, Loom), Yellow,
		reward(PerItemReward{Item: ItemCard, Colours: []Colour{Brown}, Me: true, Coins: 1, Points: 1}), nil},
	Lighthouse: {"Lighthouse", AgeThird, []int{3, 6}, Cost(Stone, Glass), Yellow,
		reward(PerItemReward{Item: ItemCard, Colours: []Colour{Yellow}, Me: true, Coins: 1, Points: 1}), nil},
	ChamberOfCommerce: {"Chamber of Commerce", AgeThird, []int{4, 6}, Cost(Clay, Clay, Papyrus), Yellow,
		reward(PerItemReward{Item: ItemCard, Colours: []Colour{Grey}, Me: true, Coins: 2, Points: 2}), nil},
	Arena: {"Arena", AgeThird, []int{3, 5, 7}, Cost(Stone, Stone, Ore), Yellow,
		reward(PerItemReward{Item: ItemWonderStage, Me: true, Coins: 3, Points: 1}), nil},

	Fortifications: {"Fortifications", AgeThird, []int{3, 7}, Cost(Ore, Ore, Ore, Stone), Red, shields(3), nil},
	Circus:         {"Circus", AgeThird, []int{4, 5, 6}, Cost(Stone, Stone, Stone, Ore), Red, shields(3), nil},
	Arsenal:        {"Arsenal", AgeThird, []int{3, 4, 7}, Cost(Wood, Wood, Ore, Loom), Red, shields(3), nil},
	SiegeWorkshop:  {"Siege Workshop", AgeThird, []int{3, 5}, Cost(Clay, Clay, Clay, Wood), Red, shields(3), nil},

	Lodge:       {"Lodge", AgeThird, []int{3, 6}, Cost(Clay, Clay, Loom, Papyrus), Green, science(Compass), nil},
	Observatory: {"Observatory", AgeThird, []int{3, 7}, Cost(Ore, Ore, Glass, Loom), Green, science(Cog), nil},
	University:  {"University", AgeThird, []int{3, 4}, Cost(Wood, Wood, Papyrus, Glass), Green, science(Tablet), nil},
	Academy:     {"Academy", AgeThird, []int{3, 7}, Cost(Stone, Stone, Stone, Glass), Green, science(Compass), nil},
	Study:       {"Study", AgeThird, []int{3, 5}, Cost(Wood, Papyrus, Loom), Green, science(Cog), nil},

	WorkersGuild: {"Workers Guild", AgeThird, nil, Cost(Ore, Ore, Clay, Stone, Wood), Purple,
		reward(PerItemReward{Item: ItemCard, Colours: []Colour{Brown}, Neighbours: true, Points: 1}), nil},
	CraftsmensGuild: {"Craftsmens Guild", AgeThird, nil, Cost(Ore, Ore, Stone, Stone), Purple,
		reward(PerItemReward{Item: ItemCard, Colours: []Colour{Grey}, Neighbours: true, Points: 2}), nil},
	TradersGuild: {"Traders Guild", AgeThird, nil, Cost(Loom, Papyrus, Glass), Purple,
		reward(PerItemReward{Item: ItemCard, Colours: []Colour{Yellow}, Neighbours: true, Points: 1}), nil},
	PhilosophersGuild: {"Philosophers Guild", AgeThird, nil, Cost(Clay, Clay, Clay, Loom, Papyrus), Purple,
		reward(PerItemReward{Item: ItemCard, Colours: []Colour{Green}, Neighbours: true, Points: 1}), nil},
	SpiesGuild: {"Spies Guild", AgeThird, nil, Cost(Clay, Clay, Clay, Glass), Purple,
		reward(PerItemReward{Item: ItemCard, Colours: []Colour{Red}, Neighbours: true, Points: 1}), nil},
	StrategistsGuild: {"Strategists Guild", AgeThird, nil, Cost(Ore, Ore, Stone, Loom), Purple,
		reward(PerItemReward{Item: ItemDefeatToken, Neighbours: true, Points: 1}), nil},
	ShipownersGuild: {"Shipowners Guild", AgeThird, nil, Cost(Wood, Wood, Wood, Glass, Papyrus), Purple,
		reward(PerItemReward{Item: ItemCard, Colours: []Colour{Brown, Grey, Purple}, Me: true, Points: 1}), nil},
	ScientistsGuild: {"Scientists Guild", AgeThird, nil, Cost(Wood, Wood, Ore, Ore, Papyrus), Purple,
		science(Compass, Cog, Tablet), nil},
	MagistratesGuild: {"Magistrates Guild", AgeThird, nil, Cost(Wood, Wood, Wood, Stone, Loom), Purple,
		reward(PerItemReward{Item: ItemCard, Colours: []Colour{Blue}, Neighbours: true, Points: 1}), nil},
	BuildersGuild: {"Builders Guild", AgeThird, nil, Cost(Stone, Stone, Clay, Clay, Glass), Purple,
		reward(PerItemReward{Item: ItemWonderStage, Me: true, Neighbours: true, Points: 1}), nil},
}

// Guilds is the full purple catalogue a third-age deck draws from.
var Guilds = []Card{
	WorkersGuild, CraftsmensGuild, TradersGuild, PhilosophersGuild, SpiesGuild,
	StrategistsGuild, ShipownersGuild, ScientistsGuild, MagistratesGuild, BuildersGuild,
}

// Name returns the printed card name. Per-age copies of the grey cards share a name.
func (c Card) Name() string { return c.info().name }

// Age returns the age whose deck contains the card
func (c Card) Age() Age { return c.info().age }

// PlayersNeeded lists the seat counts at which a copy enters the deck
func (c Card) PlayersNeeded() []int { return c.info().players }

// Cost returns the card's coin and material price
func (c Card) Cost() Resources { return c.info().cost }

// Colour returns the card colour
func (c Card) Colour() Colour { return c.info().colour }

// Power returns the card's effect
func (c Card) Power() Power { return c.info().power }

// ChainsTo lists the structures this card lets its owner build for free
func (c Card) ChainsTo() []Card { return c.info().chains }

// IsGuild reports whether the card belongs to the purple catalogue
func (c Card) IsGuild() bool { return c.Colour() == Purple }

// Valid reports whether c names a catalogue entry
func (c Card) Valid() bool { return c < NumCards }

func (c Card) info() *cardInfo {
	if c >= NumCards {
		panic(fmt.Sprintf("unknown card %d", uint8(c)))
	}
	return &catalogue[c]
}

func (c Card) String() string {
	if c >= NumCards {
		return fmt.Sprintf("card(%d)", uint8(c))
	}
	return c.Name()
}

// MarshalText encodes the card as "<name>" or "<name>@<age>" for the
// grey cards that repeat across ages.
func (c Card) MarshalText() ([]byte, error) {
	if c >= NumCards {
		return nil, fmt.Errorf("unknown card %d", uint8(c))
	}
	return []byte(c.key()), nil
}

// UnmarshalText is the inverse of MarshalText
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Card) key() string {
	switch c {
	case Loom2, Glassworks2, Press2:
		return c.Name() + "@II"
	}
	return c.Name()
}

// ParseCard looks a card up by its text key
func ParseCard(s string) (Card, error) {
	for i := Card(0); i < NumCards; i++ {
		if i.key() == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown card %q", s)
}
