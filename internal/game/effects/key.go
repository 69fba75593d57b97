// Package effects describes applied statuses: where they attach, which hooks
// they respond to, and how a hook result changes their bookkeeping.
package effects

import "fmt"

// AttachKind is the site a status is attached to.
type AttachKind uint8

const (
	AttachTeam AttachKind = iota
	AttachCharacter
	AttachEquipment
	AttachSummon
	AttachSupport
)

var attachNames = map[AttachKind]string{
	AttachTeam:      "TEAM",
	AttachCharacter: "CHARACTER",
	AttachEquipment: "EQUIPMENT",
	AttachSummon:    "SUMMON",
	AttachSupport:   "SUPPORT",
}

func (a AttachKind) String() string {
	if name, ok := attachNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ATTACH_%d", int(a))
}

// EquipSlot is the equipment slot on a character.
type EquipSlot uint8

const (
	SlotWeapon EquipSlot = iota
	SlotArtifact
	SlotTalent
)

var slotNames = map[EquipSlot]string{
	SlotWeapon:   "WEAPON",
	SlotArtifact: "ARTIFACT",
	SlotTalent:   "TALENT",
}

func (s EquipSlot) String() string {
	if name, ok := slotNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SLOT_%d", int(s))
}

// Key identifies one applied status within a player's registry. It is the
// only identity a status instance has. Char and Slot refer to positions in
// the owning player's arrays by index.
type Key struct {
	Kind AttachKind
	Char uint8
	Slot uint8
	ID   uint16
}

// TeamKey is a status attached to the whole team.
func TeamKey(id uint16) Key { return Key{Kind: AttachTeam, ID: id} }

// CharacterKey is a status attached to one character.
func CharacterKey(char uint8, id uint16) Key {
	return Key{Kind: AttachCharacter, Char: char, ID: id}
}

// EquipmentKey is a status occupying an equipment slot on a character.
func EquipmentKey(char uint8, slot EquipSlot, id uint16) Key {
	return Key{Kind: AttachEquipment, Char: char, Slot: uint8(slot), ID: id}
}

// SummonKey is a summon on the player's side.
func SummonKey(id uint16) Key { return Key{Kind: AttachSummon, ID: id} }

// SupportKey is a support card in a support slot.
func SupportKey(slot uint8, id uint16) Key {
	return Key{Kind: AttachSupport, Slot: slot, ID: id}
}

// CharIndex returns the character the status is attached to.
func (k Key) CharIndex() (uint8, bool) {
	switch k.Kind {
	case AttachCharacter, AttachEquipment:
		return k.Char, true
	}
	return 0, false
}

// EquipSlot returns the equipment slot of an equipment key.
func (k Key) EquipSlot() EquipSlot { return EquipSlot(k.Slot) }

// Pack encodes the key into a single integer for hashing.
func (k Key) Pack() uint64 {
	return uint64(k.Kind)<<32 | uint64(k.Char)<<24 | uint64(k.Slot)<<16 | uint64(k.ID)
}

func (k Key) String() string {
	switch k.Kind {
	case AttachCharacter:
		return fmt.Sprintf("%s[%d]#%d", k.Kind, k.Char, k.ID)
	case AttachEquipment:
		return fmt.Sprintf("%s[%d/%s]#%d", k.Kind, k.Char, k.EquipSlot(), k.ID)
	case AttachSupport:
		return fmt.Sprintf("%s[%d]#%d", k.Kind, k.Slot, k.ID)
	}
	return fmt.Sprintf("%s#%d", k.Kind, k.ID)
}
