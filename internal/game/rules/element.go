package rules

import (
	"fmt"
	"strings"
)

// Element is one of the seven elements a character, die or damage instance can carry.
type Element uint8

const (
	Cryo Element = iota
	Hydro
	Pyro
	Electro
	Dendro
	Anemo
	Geo
)

// ElementCount is the number of distinct elements.
const ElementCount = 7

var elementNames = [ElementCount]string{
	Cryo:    "Cryo",
	Hydro:   "Hydro",
	Pyro:    "Pyro",
	Electro: "Electro",
	Dendro:  "Dendro",
	Anemo:   "Anemo",
	Geo:     "Geo",
}

func (e Element) String() string {
	if int(e) < len(elementNames) {
		return elementNames[e]
	}
	return fmt.Sprintf("ELEMENT_%d", int(e))
}

// ParseElement resolves an element by case-insensitive name.
func ParseElement(name string) (Element, error) {
	name = strings.TrimSpace(name)
	for i, n := range elementNames {
		if strings.EqualFold(n, name) {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("unknown element: %q", name)
}

// IsAuraForming reports whether the element can remain applied to a character.
// Anemo and Geo never stay applied.
func (e Element) IsAuraForming() bool {
	return e != Anemo && e != Geo
}

// ElementSet is a bitset of applied elements.
type ElementSet uint8

// ElementSetOf builds a set from the given elements.
func ElementSetOf(elems ...Element) ElementSet {
	var s ElementSet
	for _, e := range elems {
		s = s.With(e)
	}
	return s
}

func (s ElementSet) Has(e Element) bool                { return s&(1<<e) != 0 }
func (s ElementSet) With(e Element) ElementSet         { return s | 1<<e }
func (s ElementSet) Without(e Element) ElementSet      { return s &^ (1 << e) }
func (s ElementSet) IsEmpty() bool                     { return s == 0 }
func (s ElementSet) Contains(o ElementSet) bool        { return s&o == o }
func (s ElementSet) Intersect(o ElementSet) ElementSet { return s & o }

// Elements lists the members of the set in element order.
func (s ElementSet) Elements() []Element {
	out := make([]Element, 0, 2)
	for e := Element(0); e < ElementCount; e++ {
		if s.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s ElementSet) String() string {
	if s.IsEmpty() {
		return "[]"
	}
	parts := make([]string, 0, 2)
	for _, e := range s.Elements() {
		parts = append(parts, e.String())
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// DamageType is Physical, Piercing or one of the elements.
type DamageType uint8

const (
	DamagePhysical DamageType = iota
	DamagePiercing
	DamageCryo
	DamageHydro
	DamagePyro
	DamageElectro
	DamageDendro
	DamageAnemo
	DamageGeo
)

// ElementalDamage returns the damage type carrying the given element.
func ElementalDamage(e Element) DamageType {
	return DamageCryo + DamageType(e)
}

// Element returns the element carried by the damage type, if any.
func (d DamageType) Element() (Element, bool) {
	if d < DamageCryo || d > DamageGeo {
		return 0, false
	}
	return Element(d - DamageCryo), true
}

// IsElemental reports whether the damage carries an element.
func (d DamageType) IsElemental() bool {
	_, ok := d.Element()
	return ok
}

func (d DamageType) String() string {
	switch d {
	case DamagePhysical:
		return "Physical"
	case DamagePiercing:
		return "Piercing"
	}
	if e, ok := d.Element(); ok {
		return e.String()
	}
	return fmt.Sprintf("DAMAGE_%d", int(d))
}

// SkillType classifies a character skill.
type SkillType uint8

const (
	NormalAttack SkillType = iota
	ElementalSkill
	ElementalBurst
)

var skillTypeNames = map[SkillType]string{
	NormalAttack:   "NORMAL_ATTACK",
	ElementalSkill: "ELEMENTAL_SKILL",
	ElementalBurst: "ELEMENTAL_BURST",
}

func (s SkillType) String() string {
	if name, ok := skillTypeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SKILL_TYPE_%d", int(s))
}

// EventMask returns the "what" bit for events raised by this skill type.
func (s SkillType) EventMask() EventMask {
	switch s {
	case NormalAttack:
		return EventNormalAttack
	case ElementalSkill:
		return EventElementalSkill
	default:
		return EventElementalBurst
	}
}

// WeaponType is the weapon class a character wields.
type WeaponType uint8

const (
	WeaponOther WeaponType = iota
	WeaponSword
	WeaponClaymore
	WeaponBow
	WeaponCatalyst
	WeaponPolearm
)
