package rules

import "fmt"

// Reaction is the elemental reaction triggered when an element meets an applied one.
type Reaction uint8

const (
	ReactionNone Reaction = iota
	Melt
	Vaporize
	Overloaded
	Superconduct
	ElectroCharged
	Frozen
	Swirl
	Crystallize
	Bloom
	Burning
	Quicken
)

var reactionNames = map[Reaction]string{
	ReactionNone:   "None",
	Melt:           "Melt",
	Vaporize:       "Vaporize",
	Overloaded:     "Overloaded",
	Superconduct:   "Superconduct",
	ElectroCharged: "ElectroCharged",
	Frozen:         "Frozen",
	Swirl:          "Swirl",
	Crystallize:    "Crystallize",
	Bloom:          "Bloom",
	Burning:        "Burning",
	Quicken:        "Quicken",
}

func (r Reaction) String() string {
	if name, ok := reactionNames[r]; ok {
		return name
	}
	return fmt.Sprintf("REACTION_%d", int(r))
}

// ReactionResult describes what happens when an element lands on a character.
type ReactionResult struct {
	Reaction Reaction
	// Applied is the character's applied element set after the element lands.
	Applied ElementSet
	// Bonus is the additive damage bonus granted by the reaction.
	Bonus uint8
	// PiercingOthers is the piercing damage dealt to every other character.
	PiercingOthers uint8
	// Consumed is the applied element the reaction used up. Swirl and
	// Crystallize carry it forward as the swirled or crystallized element.
	Consumed Element
}

var reactionBonus = map[Reaction]uint8{
	Melt:           2,
	Vaporize:       2,
	Overloaded:     2,
	Superconduct:   1,
	ElectroCharged: 1,
	Frozen:         1,
	Crystallize:    1,
	Bloom:          1,
	Burning:        1,
	Quicken:        1,
}

// pairReaction returns the reaction between an applied element and an incoming one.
func pairReaction(applied, incoming Element) Reaction {
	if applied == incoming {
		return ReactionNone
	}
	switch incoming {
	case Anemo:
		if applied != Dendro {
			return Swirl
		}
	case Geo:
		if applied != Dendro {
			return Crystallize
		}
	}
	switch pairKey(applied, incoming) {
	case pairKey(Cryo, Pyro):
		return Melt
	case pairKey(Hydro, Pyro):
		return Vaporize
	case pairKey(Electro, Pyro):
		return Overloaded
	case pairKey(Cryo, Electro):
		return Superconduct
	case pairKey(Electro, Hydro):
		return ElectroCharged
	case pairKey(Cryo, Hydro):
		return Frozen
	case pairKey(Dendro, Hydro):
		return Bloom
	case pairKey(Dendro, Pyro):
		return Burning
	case pairKey(Dendro, Electro):
		return Quicken
	}
	return ReactionNone
}

func pairKey(a, b Element) uint8 {
	if a > b {
		a, b = b, a
	}
	return uint8(a)<<4 | uint8(b)
}

// reactionPriority is the order applied elements are checked against an incoming one.
var reactionPriority = [...]Element{Cryo, Hydro, Pyro, Electro, Dendro}

// React resolves an incoming element against the applied set.
// Only the reacting element is consumed; Cryo and Dendro may coexist.
func React(applied ElementSet, incoming Element) ReactionResult {
	for _, a := range reactionPriority {
		if !applied.Has(a) {
			continue
		}
		r := pairReaction(a, incoming)
		if r == ReactionNone {
			continue
		}
		res := ReactionResult{
			Reaction: r,
			Applied:  applied.Without(a),
			Bonus:    reactionBonus[r],
			Consumed: a,
		}
		if r == Superconduct || r == ElectroCharged {
			res.PiercingOthers = 1
		}
		return res
	}
	if !incoming.IsAuraForming() {
		return ReactionResult{Applied: applied}
	}
	if applied.IsEmpty() || applied.Has(incoming) {
		return ReactionResult{Applied: applied.With(incoming)}
	}
	// Only Cryo and Dendro can sit together without reacting.
	if applied.Union(ElementSetOf(incoming)) == ElementSetOf(Cryo, Dendro) {
		return ReactionResult{Applied: applied.With(incoming)}
	}
	return ReactionResult{Applied: ElementSetOf(incoming)}
}

// Union returns the combined set.
func (s ElementSet) Union(o ElementSet) ElementSet { return s | o }
