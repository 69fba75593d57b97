package game

import (
	"fmt"

	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// CommandKind is one instruction of the engine.
type CommandKind uint8

const (
	CmdTriggerEvent CommandKind = iota
	CmdCastSkill
	CmdSkillCastEvent
	CmdSwitchCharacter
	CmdSwitchPrevious
	CmdSwitchNext
	CmdSwitchNextForTarget
	CmdSwitchPreviousForTarget
	CmdApplyElementToTarget
	CmdApplyElementToSelf
	CmdDealDamage
	CmdTakeDamage
	CmdHeal
	CmdHealAll
	CmdAddEnergy
	CmdAddEnergyToNonActive
	CmdSetEnergyForActive
	CmdAddStatus
	CmdAddCharacterStatus
	CmdAddCharacterStatusToActive
	CmdAddCharacterStatusToTarget
	CmdAddEquipment
	CmdDeleteStatus
	CmdDeleteStatusForTarget
	CmdIncreaseStatusUsages
	CmdSummon
	CmdSummonRandom
	CmdAddSupport
	CmdAddDice
	CmdSubtractDice
	CmdAddCardToHand
	CmdRemoveCardFromHand
	CmdDrawCards
	CmdDrawCardsBoth
	CmdRollDiceBoth
	CmdHandOverPlayer
	CmdDeclareEndOfRound
	CmdSetPlayerFlag
	CmdClearPlayerFlag
	CmdEnterActionPhase
	CmdEnterEndPhase
	CmdStartNextRound
)

var commandNames = map[CommandKind]string{
	CmdTriggerEvent:               "TRIGGER_EVENT",
	CmdCastSkill:                  "CAST_SKILL",
	CmdSkillCastEvent:             "SKILL_CAST_EVENT",
	CmdSwitchCharacter:            "SWITCH_CHARACTER",
	CmdSwitchPrevious:             "SWITCH_PREVIOUS",
	CmdSwitchNext:                 "SWITCH_NEXT",
	CmdSwitchNextForTarget:        "SWITCH_NEXT_FOR_TARGET",
	CmdSwitchPreviousForTarget:    "SWITCH_PREVIOUS_FOR_TARGET",
	CmdApplyElementToTarget:       "APPLY_ELEMENT_TO_TARGET",
	CmdApplyElementToSelf:         "APPLY_ELEMENT_TO_SELF",
	CmdDealDamage:                 "DEAL_DAMAGE",
	CmdTakeDamage:                 "TAKE_DAMAGE",
	CmdHeal:                       "HEAL",
	CmdHealAll:                    "HEAL_ALL",
	CmdAddEnergy:                  "ADD_ENERGY",
	CmdAddEnergyToNonActive:       "ADD_ENERGY_TO_NON_ACTIVE",
	CmdSetEnergyForActive:         "SET_ENERGY_FOR_ACTIVE",
	CmdAddStatus:                  "ADD_STATUS",
	CmdAddCharacterStatus:         "ADD_CHARACTER_STATUS",
	CmdAddCharacterStatusToActive: "ADD_CHARACTER_STATUS_TO_ACTIVE",
	CmdAddCharacterStatusToTarget: "ADD_CHARACTER_STATUS_TO_TARGET",
	CmdAddEquipment:               "ADD_EQUIPMENT",
	CmdDeleteStatus:               "DELETE_STATUS",
	CmdDeleteStatusForTarget:      "DELETE_STATUS_FOR_TARGET",
	CmdIncreaseStatusUsages:       "INCREASE_STATUS_USAGES",
	CmdSummon:                     "SUMMON",
	CmdSummonRandom:               "SUMMON_RANDOM",
	CmdAddSupport:                 "ADD_SUPPORT",
	CmdAddDice:                    "ADD_DICE",
	CmdSubtractDice:               "SUBTRACT_DICE",
	CmdAddCardToHand:              "ADD_CARD_TO_HAND",
	CmdRemoveCardFromHand:         "REMOVE_CARD_FROM_HAND",
	CmdDrawCards:                  "DRAW_CARDS",
	CmdDrawCardsBoth:              "DRAW_CARDS_BOTH",
	CmdRollDiceBoth:               "ROLL_DICE_BOTH",
	CmdHandOverPlayer:             "HAND_OVER_PLAYER",
	CmdDeclareEndOfRound:          "DECLARE_END_OF_ROUND",
	CmdSetPlayerFlag:              "SET_PLAYER_FLAG",
	CmdClearPlayerFlag:            "CLEAR_PLAYER_FLAG",
	CmdEnterActionPhase:           "ENTER_ACTION_PHASE",
	CmdEnterEndPhase:              "ENTER_END_PHASE",
	CmdStartNextRound:             "START_NEXT_ROUND",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("COMMAND_%d", int(k))
}

// DamageSpec describes one damage instance before modifiers.
type DamageSpec struct {
	Type   rules.DamageType
	Amount uint8
	// PiercingOthers is piercing damage dealt to every other character of the target's side.
	PiercingOthers uint8
}

// Command is an immutable engine instruction. Only the fields relevant to
// Kind are meaningful.
type Command struct {
	Kind    CommandKind
	Damage  DamageSpec
	Element rules.Element
	Amount  uint8
	CharIdx uint8
	Status  StatusID
	Summon  SummonID
	Support SupportID
	Card    CardID
	Skill   SkillID
	Pool    PoolID
	Slot    effects.EquipSlot
	Key     effects.Key
	Trigger rules.Trigger
	Dice    dice.Counter
	Flag    PlayerFlags
}

func (c Command) String() string {
	switch c.Kind {
	case CmdDealDamage, CmdTakeDamage:
		return fmt.Sprintf("%s(%s %d)", c.Kind, c.Damage.Type, c.Damage.Amount)
	case CmdTriggerEvent:
		return fmt.Sprintf("%s(%s)", c.Kind, c.Trigger)
	case CmdSwitchCharacter:
		return fmt.Sprintf("%s(%d)", c.Kind, c.CharIdx)
	}
	return c.Kind.String()
}

// SourceKind is what issued a command.
type SourceKind uint8

const (
	SourceEvent SourceKind = iota
	SourceSkill
	SourceCard
	SourceSwitch
	SourceCharacter
	SourceSummon
)

// CommandSource addresses the origin of a command.
type CommandSource struct {
	Kind    SourceKind
	CharIdx uint8
	Skill   SkillID
	Card    CardID
	Summon  SummonID
	From    uint8
	To      uint8
}

// HasCharacter reports whether the source is tied to a character of the source player.
func (s CommandSource) HasCharacter() bool {
	return s.Kind == SourceSkill || s.Kind == SourceCharacter
}

// CommandTarget addresses a character on either side.
type CommandTarget struct {
	Player  rules.PlayerID
	CharIdx uint8
}

// CommandContext is attached to every queued command.
type CommandContext struct {
	Player    rules.PlayerID
	Source    CommandSource
	Target    CommandTarget
	HasTarget bool
}

// EventContext is a context with a plain event source.
func EventContext(player rules.PlayerID) CommandContext {
	return CommandContext{Player: player}
}

// WithTarget returns the context addressed at a character.
func (c CommandContext) WithTarget(player rules.PlayerID, char uint8) CommandContext {
	c.Target = CommandTarget{Player: player, CharIdx: char}
	c.HasTarget = true
	return c
}

// Transpose flips every player reference in the context. An unset target
// is left zeroed so it hashes the same on both seats.
func (c CommandContext) Transpose() CommandContext {
	c.Player = c.Player.Opposite()
	if c.HasTarget {
		c.Target.Player = c.Target.Player.Opposite()
	}
	return c
}

// CommandEntry is a command with its context, as held in the queue.
type CommandEntry struct {
	Ctx CommandContext
	Cmd Command
}

// Entry pairs a command with a context.
func Entry(ctx CommandContext, cmd Command) CommandEntry {
	return CommandEntry{Ctx: ctx, Cmd: cmd}
}

// PlayerFlags is a small per-player flag set.
type PlayerFlags uint8

const (
	FlagDiedThisRound PlayerFlags = 1 << iota
	FlagChargedAttack
	FlagPlungingAttack
)

// Command constructors used by content declarations.

func DealDamage(t rules.DamageType, amount uint8) Command {
	return Command{Kind: CmdDealDamage, Damage: DamageSpec{Type: t, Amount: amount}}
}

func DealDamagePiercing(t rules.DamageType, amount, piercing uint8) Command {
	return Command{Kind: CmdDealDamage, Damage: DamageSpec{Type: t, Amount: amount, PiercingOthers: piercing}}
}

func TakeDamage(t rules.DamageType, amount uint8) Command {
	return Command{Kind: CmdTakeDamage, Damage: DamageSpec{Type: t, Amount: amount}}
}

func ApplyElementToSelf(e rules.Element) Command {
	return Command{Kind: CmdApplyElementToSelf, Element: e}
}

func ApplyElementToTarget(e rules.Element) Command {
	return Command{Kind: CmdApplyElementToTarget, Element: e}
}

func Heal(amount uint8) Command    { return Command{Kind: CmdHeal, Amount: amount} }
func HealAll(amount uint8) Command { return Command{Kind: CmdHealAll, Amount: amount} }

func AddEnergy(amount uint8) Command { return Command{Kind: CmdAddEnergy, Amount: amount} }

func AddEnergyToNonActive(amount uint8) Command {
	return Command{Kind: CmdAddEnergyToNonActive, Amount: amount}
}

func SetEnergyForActive(amount uint8) Command {
	return Command{Kind: CmdSetEnergyForActive, Amount: amount}
}

func AddStatus(id StatusID) Command { return Command{Kind: CmdAddStatus, Status: id} }

func AddCharacterStatus(char uint8, id StatusID) Command {
	return Command{Kind: CmdAddCharacterStatus, CharIdx: char, Status: id}
}

func AddCharacterStatusToActive(id StatusID) Command {
	return Command{Kind: CmdAddCharacterStatusToActive, Status: id}
}

func AddCharacterStatusToTarget(id StatusID) Command {
	return Command{Kind: CmdAddCharacterStatusToTarget, Status: id}
}

func AddEquipment(char uint8, slot effects.EquipSlot, id StatusID) Command {
	return Command{Kind: CmdAddEquipment, CharIdx: char, Slot: slot, Status: id}
}

func DeleteStatus(key effects.Key) Command { return Command{Kind: CmdDeleteStatus, Key: key} }

func DeleteStatusForTarget(key effects.Key) Command {
	return Command{Kind: CmdDeleteStatusForTarget, Key: key}
}

func IncreaseStatusUsages(key effects.Key, amount uint8) Command {
	return Command{Kind: CmdIncreaseStatusUsages, Key: key, Amount: amount}
}

func AddSummon(id SummonID) Command { return Command{Kind: CmdSummon, Summon: id} }

func SummonRandom(pool PoolID, count uint8) Command {
	return Command{Kind: CmdSummonRandom, Pool: pool, Amount: count}
}

func AddSupport(id SupportID) Command { return Command{Kind: CmdAddSupport, Support: id} }

func AddDice(d dice.Counter) Command      { return Command{Kind: CmdAddDice, Dice: d} }
func SubtractDice(d dice.Counter) Command { return Command{Kind: CmdSubtractDice, Dice: d} }

func AddCardToHand(card CardID) Command { return Command{Kind: CmdAddCardToHand, Card: card} }

func RemoveCardFromHand(card CardID) Command {
	return Command{Kind: CmdRemoveCardFromHand, Card: card}
}

func DrawCards(n uint8) Command { return Command{Kind: CmdDrawCards, Amount: n} }

func SwitchCharacter(char uint8) Command { return Command{Kind: CmdSwitchCharacter, CharIdx: char} }

func SwitchNext() Command              { return Command{Kind: CmdSwitchNext} }
func SwitchPrevious() Command          { return Command{Kind: CmdSwitchPrevious} }
func SwitchNextForTarget() Command     { return Command{Kind: CmdSwitchNextForTarget} }
func SwitchPreviousForTarget() Command { return Command{Kind: CmdSwitchPreviousForTarget} }

func TriggerEvent(t rules.Trigger) Command { return Command{Kind: CmdTriggerEvent, Trigger: t} }

func SetPlayerFlag(f PlayerFlags) Command   { return Command{Kind: CmdSetPlayerFlag, Flag: f} }
func ClearPlayerFlag(f PlayerFlags) Command { return Command{Kind: CmdClearPlayerFlag, Flag: f} }
