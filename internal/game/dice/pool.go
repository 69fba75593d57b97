// Package dice models elemental dice inventories, costs and payment selection.
package dice

import (
	"fmt"
	"strings"

	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// Kind is a die face: Omni or one of the seven elements.
type Kind uint8

const (
	Omni Kind = iota
	// KindCount is the number of distinct die faces.
	KindCount = 1 + rules.ElementCount
)

// MaxDice is the most dice a player may hold; extra dice are discarded.
const MaxDice = 16

// KindOf returns the die face of the given element.
func KindOf(e rules.Element) Kind { return Kind(e) + 1 }

// Element returns the element of a non-omni face.
func (k Kind) Element() (rules.Element, bool) {
	if k == Omni || k >= KindCount {
		return 0, false
	}
	return rules.Element(k - 1), true
}

func (k Kind) String() string {
	if k == Omni {
		return "Omni"
	}
	if e, ok := k.Element(); ok {
		return e.String()
	}
	return fmt.Sprintf("DIE_%d", int(k))
}

// Counter is a dice inventory: the number of dice held per face.
type Counter [KindCount]uint8

// OmniDice returns a counter holding n omni dice.
func OmniDice(n uint8) Counter {
	var c Counter
	c[Omni] = n
	return c
}

// Get returns the number of dice of a face.
func (c Counter) Get(k Kind) uint8 { return c[k] }

// Total returns the number of dice held.
func (c Counter) Total() int {
	total := 0
	for _, n := range c {
		total += int(n)
	}
	return total
}

// IsEmpty reports whether no dice are held.
func (c Counter) IsEmpty() bool { return c.Total() == 0 }

// Add returns the inventory with n more dice of a face.
func (c Counter) Add(k Kind, n uint8) Counter {
	c[k] += n
	return c
}

// Plus returns the sum of two inventories, keeping at most MaxDice dice.
// Dice past the limit are dropped starting from the highest face.
func (c Counter) Plus(o Counter) Counter {
	room := MaxDice - c.Total()
	for k := Kind(0); k < KindCount && room > 0; k++ {
		n := int(o[k])
		if n > room {
			n = room
		}
		c[k] += uint8(n)
		room -= n
	}
	return c
}

// Minus subtracts o from c. It reports false if c does not hold every die in o.
func (c Counter) Minus(o Counter) (Counter, bool) {
	for k := range c {
		if c[k] < o[k] {
			return c, false
		}
		c[k] -= o[k]
	}
	return c, true
}

// Contains reports whether every die in o is held by c.
func (c Counter) Contains(o Counter) bool {
	_, ok := c.Minus(o)
	return ok
}

func (c Counter) String() string {
	var parts []string
	for k := Kind(0); k < KindCount; k++ {
		if c[k] > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", k, c[k]))
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}
