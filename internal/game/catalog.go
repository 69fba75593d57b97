package game

import (
	"fmt"
	"strings"

	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
	"github.com/tcgsim/tcgsim/internal/game/targeting"
)

// Content ids. Each space is assigned sequentially from 1 at registration.
type (
	CharID    uint16
	SkillID   uint16
	CardID    uint16
	StatusID  uint16
	SummonID  uint16
	SupportID uint16
	PoolID    uint16
)

// CharacterDesc is the static declaration of a character.
type CharacterDesc struct {
	Name      string
	Element   rules.Element
	Weapon    rules.WeaponType
	MaxHealth uint8
	MaxEnergy uint8
	Skills    []SkillID
}

// SkillDesc is the static declaration of a skill. Casting runs Commands in
// order, followed by whatever Build returns for the current state.
type SkillDesc struct {
	Name     string
	Type     rules.SkillType
	Cost     dice.Cost
	Commands []Command
	Build    func(v *GameState, player rules.PlayerID, char uint8) []Command
}

// CardType classifies action cards.
type CardType uint8

const (
	CardEvent CardType = iota
	CardFood
	CardSupport
	CardWeapon
	CardArtifact
	CardTalent
)

var cardTypeNames = map[CardType]string{
	CardEvent:    "EVENT",
	CardFood:     "FOOD",
	CardSupport:  "SUPPORT",
	CardWeapon:   "WEAPON",
	CardArtifact: "ARTIFACT",
	CardTalent:   "TALENT",
}

func (t CardType) String() string {
	if name, ok := cardTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CARD_TYPE_%d", int(t))
}

// CardDesc is the static declaration of an action card.
type CardDesc struct {
	Name   string
	Type   CardType
	Cost   dice.Cost
	Target targeting.TargetRequirement
	// CanPlay adds card-specific conditions on top of cost and target checks.
	CanPlay  func(v *GameState, player rules.PlayerID, target *targeting.Target) bool
	Commands []Command
	Build    func(v *GameState, player rules.PlayerID, target *targeting.Target) []Command
}

// StatusDesc is the static declaration of a status, summon or support
// together with its hook implementation.
type StatusDesc struct {
	effects.Spec
	Impl StatusImpl
}

type catalog struct {
	chars    []CharacterDesc
	skills   []SkillDesc
	cards    []CardDesc
	statuses []StatusDesc
	summons  []StatusDesc
	supports []StatusDesc
	pools    [][]SummonID

	charNames    map[string]CharID
	cardNames    map[string]CardID
	statusNames  map[string]StatusID
	summonNames  map[string]SummonID
	supportNames map[string]SupportID
}

var registry = &catalog{
	charNames:    make(map[string]CharID),
	cardNames:    make(map[string]CardID),
	statusNames:  make(map[string]StatusID),
	summonNames:  make(map[string]SummonID),
	supportNames: make(map[string]SupportID),
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RegisterSkill adds a skill to the catalog. Registration happens at init
// time and panics on invalid declarations.
func RegisterSkill(desc SkillDesc) SkillID {
	if desc.Name == "" {
		panic("game: skill declared without a name")
	}
	registry.skills = append(registry.skills, desc)
	return SkillID(len(registry.skills))
}

// RegisterCharacter adds a character to the catalog.
func RegisterCharacter(desc CharacterDesc) CharID {
	if desc.Name == "" || desc.MaxHealth == 0 {
		panic(fmt.Sprintf("game: invalid character declaration %q", desc.Name))
	}
	if len(desc.Skills) == 0 {
		panic(fmt.Sprintf("game: character %s has no skills", desc.Name))
	}
	for _, s := range desc.Skills {
		Skill(s)
	}
	if _, dup := registry.charNames[nameKey(desc.Name)]; dup {
		panic(fmt.Sprintf("game: duplicate character %s", desc.Name))
	}
	registry.chars = append(registry.chars, desc)
	id := CharID(len(registry.chars))
	registry.charNames[nameKey(desc.Name)] = id
	return id
}

// RegisterCard adds an action card to the catalog.
func RegisterCard(desc CardDesc) CardID {
	if desc.Name == "" {
		panic("game: card declared without a name")
	}
	if _, dup := registry.cardNames[nameKey(desc.Name)]; dup {
		panic(fmt.Sprintf("game: duplicate card %s", desc.Name))
	}
	registry.cards = append(registry.cards, desc)
	id := CardID(len(registry.cards))
	registry.cardNames[nameKey(desc.Name)] = id
	return id
}

func prepareStatus(desc *StatusDesc, allowed ...effects.AttachKind) {
	if err := desc.Spec.Validate(); err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
	ok := false
	for _, a := range allowed {
		ok = ok || desc.Attach == a
	}
	if !ok {
		panic(fmt.Sprintf("game: status %s cannot attach as %s", desc.Name, desc.Attach))
	}
	if desc.Impl == nil {
		desc.Impl = BaseStatus{}
	}
}

// RegisterStatus adds a team, character or equipment status to the catalog.
func RegisterStatus(desc StatusDesc) StatusID {
	prepareStatus(&desc, effects.AttachTeam, effects.AttachCharacter, effects.AttachEquipment)
	if _, dup := registry.statusNames[nameKey(desc.Name)]; dup {
		panic(fmt.Sprintf("game: duplicate status %s", desc.Name))
	}
	registry.statuses = append(registry.statuses, desc)
	id := StatusID(len(registry.statuses))
	registry.statusNames[nameKey(desc.Name)] = id
	return id
}

// RegisterSummon adds a summon to the catalog.
func RegisterSummon(desc StatusDesc) SummonID {
	desc.Attach = effects.AttachSummon
	prepareStatus(&desc, effects.AttachSummon)
	if _, dup := registry.summonNames[nameKey(desc.Name)]; dup {
		panic(fmt.Sprintf("game: duplicate summon %s", desc.Name))
	}
	registry.summons = append(registry.summons, desc)
	id := SummonID(len(registry.summons))
	registry.summonNames[nameKey(desc.Name)] = id
	return id
}

// RegisterSupport adds a support to the catalog.
func RegisterSupport(desc StatusDesc) SupportID {
	desc.Attach = effects.AttachSupport
	prepareStatus(&desc, effects.AttachSupport)
	if _, dup := registry.supportNames[nameKey(desc.Name)]; dup {
		panic(fmt.Sprintf("game: duplicate support %s", desc.Name))
	}
	registry.supports = append(registry.supports, desc)
	id := SupportID(len(registry.supports))
	registry.supportNames[nameKey(desc.Name)] = id
	return id
}

// RegisterSummonPool declares a set of summons one is drawn from at random.
func RegisterSummonPool(summons ...SummonID) PoolID {
	if len(summons) == 0 {
		panic("game: empty summon pool")
	}
	for _, s := range summons {
		Summon(s)
	}
	registry.pools = append(registry.pools, append([]SummonID(nil), summons...))
	return PoolID(len(registry.pools))
}

// Character returns the declaration of a character. Unknown ids panic.
func Character(id CharID) *CharacterDesc {
	if id == 0 || int(id) > len(registry.chars) {
		panic(fmt.Sprintf("game: unknown character id %d", id))
	}
	return &registry.chars[id-1]
}

// Skill returns the declaration of a skill.
func Skill(id SkillID) *SkillDesc {
	if id == 0 || int(id) > len(registry.skills) {
		panic(fmt.Sprintf("game: unknown skill id %d", id))
	}
	return &registry.skills[id-1]
}

// Card returns the declaration of a card.
func Card(id CardID) *CardDesc {
	if id == 0 || int(id) > len(registry.cards) {
		panic(fmt.Sprintf("game: unknown card id %d", id))
	}
	return &registry.cards[id-1]
}

// Status returns the declaration of a status.
func Status(id StatusID) *StatusDesc {
	if id == 0 || int(id) > len(registry.statuses) {
		panic(fmt.Sprintf("game: unknown status id %d", id))
	}
	return &registry.statuses[id-1]
}

// Summon returns the declaration of a summon.
func Summon(id SummonID) *StatusDesc {
	if id == 0 || int(id) > len(registry.summons) {
		panic(fmt.Sprintf("game: unknown summon id %d", id))
	}
	return &registry.summons[id-1]
}

// Support returns the declaration of a support.
func Support(id SupportID) *StatusDesc {
	if id == 0 || int(id) > len(registry.supports) {
		panic(fmt.Sprintf("game: unknown support id %d", id))
	}
	return &registry.supports[id-1]
}

// Pool returns the summons of a pool.
func Pool(id PoolID) []SummonID {
	if id == 0 || int(id) > len(registry.pools) {
		panic(fmt.Sprintf("game: unknown summon pool id %d", id))
	}
	return registry.pools[id-1]
}

// StatusForKey returns the declaration behind a registry key.
func StatusForKey(k effects.Key) *StatusDesc {
	switch k.Kind {
	case effects.AttachSummon:
		return Summon(SummonID(k.ID))
	case effects.AttachSupport:
		return Support(SupportID(k.ID))
	}
	return Status(StatusID(k.ID))
}

// CharacterByName looks up a character id by case-insensitive name.
func CharacterByName(name string) (CharID, bool) {
	id, ok := registry.charNames[nameKey(name)]
	return id, ok
}

// CardByName looks up a card id by case-insensitive name.
func CardByName(name string) (CardID, bool) {
	id, ok := registry.cardNames[nameKey(name)]
	return id, ok
}

// StatusByName looks up a status id by case-insensitive name.
func StatusByName(name string) (StatusID, bool) {
	id, ok := registry.statusNames[nameKey(name)]
	return id, ok
}

// SummonByName looks up a summon id by case-insensitive name.
func SummonByName(name string) (SummonID, bool) {
	id, ok := registry.summonNames[nameKey(name)]
	return id, ok
}

// SupportByName looks up a support id by case-insensitive name.
func SupportByName(name string) (SupportID, bool) {
	id, ok := registry.supportNames[nameKey(name)]
	return id, ok
}

// CardCount returns the number of registered cards.
func CardCount() int { return len(registry.cards) }

// CharacterCount returns the number of registered characters.
func CharacterCount() int { return len(registry.chars) }
