package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// Cost is the dice and energy price of a skill, card or switch.
type Cost struct {
	// Element is the element of the elemental portion.
	Element rules.Element
	// Elemental dice must match Element (or be omni).
	Elemental uint8
	// Aligned dice must all share one face.
	Aligned uint8
	// Unaligned dice may be anything.
	Unaligned uint8
	// Energy is paid from the active character.
	Energy uint8
}

var costSymbol = regexp.MustCompile(`\{(\d*)\s*([A-Za-z]*)\}`)

// ParseCost parses a cost string such as "{3Pyro}", "{2A}", "{1}" or "{3Cryo}{3E}".
// Supports:
// - Elemental: {Pyro}, {3Hydro}
// - Aligned: {A}, {2A}
// - Unaligned: {1}, {3}
// - Energy: {E}, {2E}
func ParseCost(costStr string) (Cost, error) {
	var cost Cost
	if strings.TrimSpace(costStr) == "" {
		return cost, nil
	}

	matches := costSymbol.FindAllStringSubmatch(costStr, -1)
	if len(matches) == 0 {
		return cost, fmt.Errorf("invalid cost: %q", costStr)
	}

	hasElement := false
	for _, match := range matches {
		count := 1
		if match[1] != "" {
			n, err := strconv.Atoi(match[1])
			if err != nil {
				return cost, fmt.Errorf("invalid count in %s: %w", match[0], err)
			}
			count = n
		}
		if count < 0 || count > 255 {
			return cost, fmt.Errorf("count out of range in %s", match[0])
		}
		n := uint8(count)

		switch symbol := strings.ToUpper(match[2]); symbol {
		case "":
			if match[1] == "" {
				return cost, fmt.Errorf("empty cost symbol %s", match[0])
			}
			cost.Unaligned += n
		case "A":
			cost.Aligned += n
		case "E":
			cost.Energy += n
		default:
			e, err := rules.ParseElement(match[2])
			if err != nil {
				return cost, fmt.Errorf("unknown cost symbol %s: %w", match[0], err)
			}
			if hasElement && e != cost.Element {
				return cost, fmt.Errorf("cost mixes elements %s and %s", cost.Element, e)
			}
			hasElement = true
			cost.Element = e
			cost.Elemental += n
		}
	}

	return cost, nil
}

// MustParseCost is ParseCost for static content declarations. It panics on error.
func MustParseCost(costStr string) Cost {
	cost, err := ParseCost(costStr)
	if err != nil {
		panic(fmt.Sprintf("dice: %v", err))
	}
	return cost
}

// DiceTotal returns the number of dice the cost requires.
func (c Cost) DiceTotal() int {
	return int(c.Elemental) + int(c.Aligned) + int(c.Unaligned)
}

// IsZero reports whether the cost requires nothing.
func (c Cost) IsZero() bool {
	return c.DiceTotal() == 0 && c.Energy == 0
}

func (c Cost) String() string {
	var parts []string
	if c.Elemental > 0 {
		parts = append(parts, fmt.Sprintf("{%d%s}", c.Elemental, c.Element))
	}
	if c.Aligned > 0 {
		parts = append(parts, fmt.Sprintf("{%dA}", c.Aligned))
	}
	if c.Unaligned > 0 {
		parts = append(parts, fmt.Sprintf("{%d}", c.Unaligned))
	}
	if c.Energy > 0 {
		parts = append(parts, fmt.Sprintf("{%dE}", c.Energy))
	}
	if len(parts) == 0 {
		return "{0}"
	}
	return strings.Join(parts, "")
}
