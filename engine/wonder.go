package engine

import "fmt"

// WonderType identifies one of the seven wonder boards
type WonderType uint8

const (
	Rhodes WonderType = iota
	Alexandria
	Ephesus
	Babylon
	Olympia
	Halicarnassus
	Giza
	numWonders
)

// WonderSide is the face of the board in use
type WonderSide uint8

const (
	SideA WonderSide = iota
	SideB
)

func (s WonderSide) String() string {
	if s == SideB {
		return "B"
	}
	return "A"
}

// Wonder is a board assigned to a seat for the whole game
type Wonder struct {
	Type WonderType
	Side WonderSide
}

type wonderInfo struct {
	name     string
	resource Resource
	stages   [2][]Resources // indexed by side
}

var wonders = [numWonders]wonderInfo{
	Rhodes: {"The Colossus of Rhodes", Ore, [2][]Resources{
		{Cost(Wood, Wood), Cost(Clay, Clay, Clay), Cost(Ore, Ore, Ore, Ore)},
		{Cost(Stone, Stone, Stone), Cost(Ore, Ore, Ore, Ore)},
	}},
	Alexandria: {"The Lighthouse of Alexandria", Glass, [2][]Resources{
		{Cost(Stone, Stone), Cost(Ore, Ore), Cost(Glass, Glass)},
		{Cost(Clay, Clay), Cost(Wood, Wood), Cost(Stone, Stone, Stone)},
	}},
	Ephesus: {"The Temple of Artemis in Ephesus", Papyrus, [2][]Resources{
		{Cost(Stone, Stone), Cost(Wood, Wood), Cost(Papyrus, Papyrus)},
		{Cost(Stone, Stone), Cost(Wood, Wood), Cost(Papyrus, Loom, Glass)},
	}},
	Babylon: {"The Hanging Gardens of Babylon", Clay, [2][]Resources{
		{Cost(Clay, Clay), Cost(Wood, Wood, Wood), Cost(Clay, Clay, Clay, Clay)},
		{Cost(Clay, Loom), Cost(Wood, Wood, Glass), Cost(Clay, Clay, Clay, Papyrus)},
	}},
	Olympia: {"The Statue of Zeus in Olympia", Wood, [2][]Resources{
		{Cost(Wood, Wood), Cost(Stone, Stone), Cost(Ore, Ore)},
		{Cost(Wood, Wood), Cost(Stone, Stone), Cost(Ore, Ore, Loom)},
	}},
	Halicarnassus: {"The Mausoleum of Halicarnassus", Loom, [2][]Resources{
		{Cost(Clay, Clay), Cost(Ore, Ore, Ore), Cost(Loom, Loom)},
		{Cost(Ore, Ore), Cost(Clay, Clay, Clay), Cost(Glass, Papyrus, Loom)},
	}},
	Giza: {"The Pyramids of Giza", Stone, [2][]Resources{
		{Cost(Stone, Stone), Cost(Wood, Wood, Wood), Cost(Stone, Stone, Stone, Stone)},
		{Cost(Wood, Wood), Cost(Stone, Stone, Stone), Cost(Clay, Clay, Clay), Cost(Stone, Stone, Stone, Stone, Papyrus)},
	}},
}

// AllWonders lists the wonder catalogue in a fixed order.
func AllWonders() []WonderType {
	out := make([]WonderType, numWonders)
	for i := range out {
		out[i] = WonderType(i)
	}
	return out
}

// Name returns the full board name
func (w Wonder) Name() string {
	return w.info().name
}

// StartingResource is the single unit the board always produces
func (w Wonder) StartingResource() Resource {
	return w.info().resource
}

// Stages returns the cost of each stage on the board's side
func (w Wonder) Stages() []Resources {
	return w.info().stages[w.Side]
}

// StageCost returns the cost of stage i on the current side.
func (w Wonder) StageCost(i int) (Resources, error) {
	stages := w.Stages()
	if i < 0 || i >= len(stages) {
		return Resources{}, fmt.Errorf("%s side %s has no stage %d", w.Name(), w.Side, i)
	}
	return stages[i], nil
}

func (w Wonder) info() *wonderInfo {
	if w.Type >= numWonders {
		panic(fmt.Sprintf("unknown wonder %d", uint8(w.Type)))
	}
	return &wonders[w.Type]
}

func (w Wonder) String() string {
	return fmt.Sprintf("%s (%s)", w.Name(), w.Side)
}
