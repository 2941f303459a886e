package engine

import (
	"fmt"
	"strings"
)

// Resource is one of the seven material kinds or coins
type Resource uint8

const (
	Coins Resource = iota
	Wood
	Stone
	Ore
	Clay
	Glass
	Loom
	Papyrus
	numResources
)

// Materials lists every tangible resource kind in display order.
var Materials = []Resource{Wood, Stone, Ore, Clay, Glass, Loom, Papyrus}

var resourceNames = [numResources]string{"coins", "wood", "stone", "ore", "clay", "glass", "loom", "papyrus"}

func (r Resource) String() string {
	if r >= numResources {
		return fmt.Sprintf("resource(%d)", uint8(r))
	}
	return resourceNames[r]
}

// ParseResource maps a lowercase resource name back to its kind.
func ParseResource(s string) (Resource, error) {
	for i, name := range resourceNames {
		if name == s {
			return Resource(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource %q", s)
}

// Resources is a signed count per resource kind. Positive fields are still
// owed; a basket is satisfied when nothing is owed.
type Resources [numResources]int

// Free returns the empty basket
func Free() Resources {
	return Resources{}
}

// Of returns a basket with n units of a single kind
func Of(kind Resource, n int) Resources {
	var r Resources
	r[kind] = n
	return r
}

// Cost builds a basket with one unit per listed kind, e.g. Cost(Wood, Wood, Ore).
func Cost(kinds ...Resource) Resources {
	var r Resources
	for _, k := range kinds {
		r[k]++
	}
	return r
}

// Add returns the field-wise sum
func (r Resources) Add(o Resources) Resources {
	for i := range r {
		r[i] += o[i]
	}
	return r
}

// Sub returns the field-wise difference
func (r Resources) Sub(o Resources) Resources {
	for i := range r {
		r[i] -= o[i]
	}
	return r
}

// SubOne removes a single unit of kind
func (r Resources) SubOne(kind Resource) Resources {
	r[kind]--
	return r
}

// Needs reports whether kind is still owed
func (r Resources) Needs(kind Resource) bool {
	return r[kind] > 0
}

// Satisfied reports whether every field is <= 0
func (r Resources) Satisfied() bool {
	for _, n := range r {
		if n > 0 {
			return false
		}
	}
	return true
}

// Max returns the largest material count, ignoring coins.
func (r Resources) Max() int {
	best := 0
	for _, k := range Materials {
		if r[k] > best {
			best = r[k]
		}
	}
	return best
}

// Split halves every material field. A double producer split this way
// yields its two single-unit halves.
func (r Resources) Split() (Resources, Resources) {
	var a, b Resources
	for _, k := range Materials {
		a[k] = r[k] / 2
		b[k] = r[k] - a[k]
	}
	return a, b
}

// Total returns the number of material units in the basket.
func (r Resources) Total() int {
	n := 0
	for _, k := range Materials {
		n += r[k]
	}
	return n
}

func (r Resources) String() string {
	var parts []string
	if r[Coins] != 0 {
		parts = append(parts, fmt.Sprintf("%d coins", r[Coins]))
	}
	for _, k := range Materials {
		if r[k] != 0 {
			parts = append(parts, fmt.Sprintf("%d %s", r[k], k))
		}
	}
	if len(parts) == 0 {
		return "free"
	}
	return strings.Join(parts, ", ")
}

// ProductionKind discriminates how a structure yields resources
type ProductionKind uint8

const (
	ProduceSingle ProductionKind = iota
	ProduceDouble
	ProduceChoice
)

// Production is the yield of a producing structure
type Production struct {
	Kind    ProductionKind
	Options []Resource // one entry for Single/Double, 2+ for Choice
}

// Single yields one unit of kind
func Single(kind Resource) Production {
	return Production{Kind: ProduceSingle, Options: []Resource{kind}}
}

// Double yields two units of kind, usable as 0, 1 or 2
func Double(kind Resource) Production {
	return Production{Kind: ProduceDouble, Options: []Resource{kind}}
}

// Choice yields one unit of exactly one of kinds, decided when paying
func Choice(kinds ...Resource) Production {
	return Production{Kind: ProduceChoice, Options: kinds}
}

// Fixed returns the unconditional basket a non-choice producer yields.
func (p Production) Fixed() Resources {
	switch p.Kind {
	case ProduceSingle:
		return Of(p.Options[0], 1)
	case ProduceDouble:
		return Of(p.Options[0], 2)
	}
	return Free()
}

// Units returns the option list for each separately borrowable unit.
func (p Production) Units() [][]Resource {
	switch p.Kind {
	case ProduceDouble:
		a, b := p.Fixed().Split()
		return [][]Resource{kindsOf(a), kindsOf(b)}
	default:
		return [][]Resource{p.Options}
	}
}

func kindsOf(r Resources) []Resource {
	var out []Resource
	for _, k := range Materials {
		for i := 0; i < r[k]; i++ {
			out = append(out, k)
		}
	}
	return out
}

func (p Production) String() string {
	parts := make([]string, len(p.Options))
	for i, k := range p.Options {
		parts[i] = k.String()
	}
	switch p.Kind {
	case ProduceDouble:
		return "2 " + parts[0]
	case ProduceChoice:
		return strings.Join(parts, "/")
	}
	return parts[0]
}
