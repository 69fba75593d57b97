package content

import (
	"github.com/tcgsim/tcgsim/internal/game"
	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
	"github.com/tcgsim/tcgsim/internal/game/targeting"
)

// Cards.
var (
	Paimon              game.CardID
	DawnWinery          game.CardID
	Strategize          game.CardID
	ChangingShiftsCard  game.CardID
	LeaveItToMeCard     game.CardID
	SweetMadame         game.CardID
	Starsigns           game.CardID
	TravelersHandyBlade game.CardID
	FerventFlamesCard   game.CardID
)

var ownCharacter = targeting.TargetRequirement{Type: targeting.TargetOwnCharacter}

func registerCards() {
	Paimon = game.RegisterCard(game.CardDesc{
		Name:     "Paimon",
		Type:     game.CardSupport,
		Cost:     dice.MustParseCost("{3A}"),
		Commands: []game.Command{game.AddSupport(PaimonSupport)},
	})
	DawnWinery = game.RegisterCard(game.CardDesc{
		Name:     "Dawn Winery",
		Type:     game.CardSupport,
		Cost:     dice.MustParseCost("{2}"),
		Commands: []game.Command{game.AddSupport(DawnWinerySupport)},
	})
	Strategize = game.RegisterCard(game.CardDesc{
		Name:     "Strategize",
		Type:     game.CardEvent,
		Cost:     dice.MustParseCost("{1}"),
		Commands: []game.Command{game.DrawCards(2)},
	})
	ChangingShiftsCard = game.RegisterCard(game.CardDesc{
		Name:     "Changing Shifts",
		Type:     game.CardEvent,
		Commands: []game.Command{game.AddStatus(ChangingShifts)},
	})
	LeaveItToMeCard = game.RegisterCard(game.CardDesc{
		Name:     "Leave It to Me!",
		Type:     game.CardEvent,
		Commands: []game.Command{game.AddStatus(LeaveItToMe)},
	})
	SweetMadame = game.RegisterCard(game.CardDesc{
		Name:   "Sweet Madame",
		Type:   game.CardFood,
		Target: ownCharacter,
		CanPlay: func(v *game.GameState, p rules.PlayerID, t *targeting.Target) bool {
			return !v.Player(p).Statuses().Has(effects.CharacterKey(t.CharIdx, uint16(Satiated)))
		},
		Commands: []game.Command{
			game.Heal(1),
			game.AddCharacterStatusToTarget(Satiated),
		},
	})
	Starsigns = game.RegisterCard(game.CardDesc{
		Name: "Starsigns",
		Type: game.CardEvent,
		Cost: dice.MustParseCost("{2A}"),
		CanPlay: func(v *game.GameState, p rules.PlayerID, _ *targeting.Target) bool {
			return !v.Player(p).Active().HasFullEnergy()
		},
		Commands: []game.Command{game.AddEnergy(1)},
	})
	TravelersHandyBlade = game.RegisterCard(game.CardDesc{
		Name:   "Traveler's Handy Sword",
		Type:   game.CardWeapon,
		Cost:   dice.MustParseCost("{2}"),
		Target: ownCharacter,
		CanPlay: func(v *game.GameState, p rules.PlayerID, t *targeting.Target) bool {
			return v.Player(p).Character(t.CharIdx).Desc().Weapon == rules.WeaponSword
		},
		Build: func(_ *game.GameState, _ rules.PlayerID, t *targeting.Target) []game.Command {
			return []game.Command{game.AddEquipment(t.CharIdx, effects.SlotWeapon, TravelersHandySword)}
		},
	})
	FerventFlamesCard = game.RegisterCard(game.CardDesc{
		Name:     "Elemental Resonance: Fervent Flames",
		Type:     game.CardEvent,
		Cost:     dice.MustParseCost("{1Pyro}"),
		Commands: []game.Command{game.AddStatus(FerventFlames)},
	})
}
