package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrBorrowIndex is returned for a unit index a structure does not produce.
var ErrBorrowIndex = errors.New("borrow index out of range")

// ActionKind enum
type ActionKind uint8

const (
	ActionBuild ActionKind = iota
	ActionWonder
	ActionDiscard
)

func (k ActionKind) String() string {
	switch k {
	case ActionBuild:
		return "Build"
	case ActionWonder:
		return "Wonder"
	case ActionDiscard:
		return "Discard"
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// Borrow takes one produced unit from a structure on a neighbour's board.
// Index is 0, or 1 for the second unit of a double producer.
type Borrow struct {
	Card  Card
	Index int
}

// NewBorrow validates the unit index against the card's production
func NewBorrow(card Card, index int) (Borrow, error) {
	if !card.Valid() {
		return Borrow{}, fmt.Errorf("unknown card %d", uint8(card))
	}
	if index < 0 || index >= unitCount(card) {
		return Borrow{}, fmt.Errorf("%s unit %d: %w", card.Name(), index, ErrBorrowIndex)
	}
	return Borrow{Card: card, Index: index}, nil
}

func unitCount(card Card) int {
	p := card.Power()
	if !p.IsProducer() {
		return 0
	}
	return len(p.Production.Units())
}

// Borrowing bundles the borrows of a single action
type Borrowing struct {
	Left  []Borrow
	Right []Borrow
}

// NoBorrowing is the empty borrowing
func NoBorrowing() Borrowing {
	return Borrowing{}
}

// HasBorrowing reports whether anything is taken from a neighbour.
func (b Borrowing) HasBorrowing() bool {
	return len(b.Left) > 0 || len(b.Right) > 0
}

// Count returns the total number of borrowed units
func (b Borrowing) Count() int {
	return len(b.Left) + len(b.Right)
}

// Canonical sorts each side and renumbers the units of every card from zero,
// so borrowings that take the same units compare equal.
func (b Borrowing) Canonical() Borrowing {
	return Borrowing{Left: canonicalSide(b.Left), Right: canonicalSide(b.Right)}
}

func canonicalSide(in []Borrow) []Borrow {
	if len(in) == 0 {
		return nil
	}
	out := make([]Borrow, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Card != out[j].Card {
			return out[i].Card < out[j].Card
		}
		return out[i].Index < out[j].Index
	})
	next := 0
	for i := range out {
		if i > 0 && out[i].Card == out[i-1].Card {
			next++
		} else {
			next = 0
		}
		out[i].Index = next
	}
	return out
}

// Key returns a stable identity for the canonical borrowing
func (b Borrowing) Key() string {
	c := b.Canonical()
	var sb strings.Builder
	sb.WriteString("L")
	for _, x := range c.Left {
		fmt.Fprintf(&sb, ":%d.%d", x.Card, x.Index)
	}
	sb.WriteString("|R")
	for _, x := range c.Right {
		fmt.Fprintf(&sb, ":%d.%d", x.Card, x.Index)
	}
	return sb.String()
}

// Equal compares canonical forms
func (b Borrowing) Equal(o Borrowing) bool {
	return b.Key() == o.Key()
}

// Valid checks every borrow names a purchasable structure actually built by
// the neighbour on that side, with no unit taken twice.
func (b Borrowing) Valid(left, right PublicPlayer) bool {
	return validSide(b.Left, left) && validSide(b.Right, right)
}

func validSide(borrows []Borrow, owner PublicPlayer) bool {
	seen := make(map[Borrow]bool, len(borrows))
	for _, x := range borrows {
		if !owner.HasBuilt(x.Card) || !x.Card.Power().Borrowable() {
			return false
		}
		if x.Index < 0 || x.Index >= unitCount(x.Card) {
			return false
		}
		if seen[x] {
			return false
		}
		seen[x] = true
	}
	return true
}

func (b Borrowing) String() string {
	if !b.HasBorrowing() {
		return "no borrowing"
	}
	var parts []string
	for _, x := range b.Left {
		parts = append(parts, x.Card.Name()+" from left")
	}
	for _, x := range b.Right {
		parts = append(parts, x.Card.Name()+" from right")
	}
	return "borrow " + strings.Join(parts, " and ")
}

// Action is one seat's decision for a round
type Action struct {
	Kind      ActionKind
	Card      Card
	Borrowing Borrowing
}

// Build moves card to the board paying for it
func Build(card Card, b Borrowing) Action {
	return Action{Kind: ActionBuild, Card: card, Borrowing: b}
}

// WonderStage uses card to build the next stage. Reserved, never legal.
func WonderStage(card Card, b Borrowing) Action {
	return Action{Kind: ActionWonder, Card: card, Borrowing: b}
}

// Discard throws card away for coins
func Discard(card Card) Action {
	return Action{Kind: ActionDiscard, Card: card}
}

func (a Action) String() string {
	if a.Kind == ActionBuild && a.Borrowing.HasBorrowing() {
		return fmt.Sprintf("%s %s (%s)", a.Kind, a.Card.Name(), a.Borrowing)
	}
	return fmt.Sprintf("%s %s", a.Kind, a.Card.Name())
}

// ActionOptions is the resolver's answer for a single card
type ActionOptions struct {
	Actions []Action
}

// Possible reports whether the card can be built at all
func (o ActionOptions) Possible() bool {
	return len(o.Actions) > 0
}

// OwnCardsOnly reports whether the card is affordable without borrowing.
func (o ActionOptions) OwnCardsOnly() bool {
	return len(o.Actions) == 1 && !o.Actions[0].Borrowing.HasBorrowing()
}
