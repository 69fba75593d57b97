package content

import (
	"github.com/tcgsim/tcgsim/internal/game"
	"github.com/tcgsim/tcgsim/internal/game/dice"
	"github.com/tcgsim/tcgsim/internal/game/effects"
	"github.com/tcgsim/tcgsim/internal/game/rules"
)

// Characters.
var (
	Diluc   game.CharID
	Xingqiu game.CharID
	Fischl  game.CharID
	Kaeya   game.CharID
	Noelle  game.CharID
	Sucrose game.CharID
	Collei  game.CharID
	Mona    game.CharID
	Rhodeia game.CharID
)

func elemental(e rules.Element) rules.DamageType { return rules.ElementalDamage(e) }

func normalAttack(name string, e rules.Element, dmg rules.DamageType, amount uint8) game.SkillID {
	return game.RegisterSkill(game.SkillDesc{
		Name:     name,
		Type:     rules.NormalAttack,
		Cost:     dice.Cost{Element: e, Elemental: 1, Unaligned: 2},
		Commands: []game.Command{game.DealDamage(dmg, amount)},
	})
}

func skill(name string, t rules.SkillType, cost string, cmds ...game.Command) game.SkillID {
	return game.RegisterSkill(game.SkillDesc{
		Name:     name,
		Type:     t,
		Cost:     dice.MustParseCost(cost),
		Commands: cmds,
	})
}

func registerCharacters() {
	Diluc = game.RegisterCharacter(game.CharacterDesc{
		Name: "Diluc", Element: rules.Pyro, Weapon: rules.WeaponClaymore, MaxHealth: 10, MaxEnergy: 3,
		Skills: []game.SkillID{
			normalAttack("Tempered Sword", rules.Pyro, rules.DamagePhysical, 2),
			skill("Searing Onslaught", rules.ElementalSkill, "{3Pyro}",
				game.DealDamage(elemental(rules.Pyro), 3)),
			skill("Dawn", rules.ElementalBurst, "{4Pyro}{3E}",
				game.DealDamage(elemental(rules.Pyro), 8),
				game.AddCharacterStatusToActive(PyroInfusion)),
		},
	})
	Xingqiu = game.RegisterCharacter(game.CharacterDesc{
		Name: "Xingqiu", Element: rules.Hydro, Weapon: rules.WeaponSword, MaxHealth: 10, MaxEnergy: 2,
		Skills: []game.SkillID{
			normalAttack("Guhua Style", rules.Hydro, rules.DamagePhysical, 2),
			skill("Fatal Rainscreen", rules.ElementalSkill, "{3Hydro}",
				game.DealDamage(elemental(rules.Hydro), 2),
				game.ApplyElementToSelf(rules.Hydro),
				game.AddStatus(RainSword)),
			skill("Raincutter", rules.ElementalBurst, "{3Hydro}{2E}",
				game.DealDamage(elemental(rules.Hydro), 1),
				game.ApplyElementToSelf(rules.Hydro),
				game.AddStatus(RainbowBladework)),
		},
	})
	Fischl = game.RegisterCharacter(game.CharacterDesc{
		Name: "Fischl", Element: rules.Electro, Weapon: rules.WeaponBow, MaxHealth: 10, MaxEnergy: 3,
		Skills: []game.SkillID{
			normalAttack("Bolts of Downfall", rules.Electro, rules.DamagePhysical, 2),
			skill("Nightrider", rules.ElementalSkill, "{3Electro}",
				game.DealDamage(elemental(rules.Electro), 1),
				game.AddSummon(Oz)),
			skill("Midnight Phantasmagoria", rules.ElementalBurst, "{3Electro}{3E}",
				game.DealDamagePiercing(elemental(rules.Electro), 4, 2)),
		},
	})
	Kaeya = game.RegisterCharacter(game.CharacterDesc{
		Name: "Kaeya", Element: rules.Cryo, Weapon: rules.WeaponSword, MaxHealth: 10, MaxEnergy: 2,
		Skills: []game.SkillID{
			normalAttack("Ceremonial Bladework", rules.Cryo, rules.DamagePhysical, 2),
			skill("Frostgnaw", rules.ElementalSkill, "{3Cryo}",
				game.DealDamage(elemental(rules.Cryo), 3)),
			skill("Glacial Waltz", rules.ElementalBurst, "{4Cryo}{2E}",
				game.DealDamage(elemental(rules.Cryo), 1),
				game.AddStatus(Icicle)),
		},
	})
	Noelle = game.RegisterCharacter(game.CharacterDesc{
		Name: "Noelle", Element: rules.Geo, Weapon: rules.WeaponClaymore, MaxHealth: 10, MaxEnergy: 2,
		Skills: []game.SkillID{
			normalAttack("Favonius Bladework - Maid", rules.Geo, rules.DamagePhysical, 2),
			skill("Breastplate", rules.ElementalSkill, "{3Geo}",
				game.DealDamage(elemental(rules.Geo), 1),
				game.AddStatus(FullPlate)),
			skill("Sweeping Time", rules.ElementalBurst, "{4Geo}{2E}",
				game.DealDamage(elemental(rules.Geo), 4),
				game.AddCharacterStatusToActive(SweepingTime)),
		},
	})
	Sucrose = game.RegisterCharacter(game.CharacterDesc{
		Name: "Sucrose", Element: rules.Anemo, Weapon: rules.WeaponCatalyst, MaxHealth: 10, MaxEnergy: 2,
		Skills: []game.SkillID{
			normalAttack("Wind Spirit Creation", rules.Anemo, elemental(rules.Anemo), 1),
			skill("Astable Anemohypostasis Creation-6308", rules.ElementalSkill, "{3Anemo}",
				game.DealDamage(elemental(rules.Anemo), 3),
				game.SwitchPreviousForTarget()),
			skill("Forbidden Creation-Isomer 75 / Type II", rules.ElementalBurst, "{3Anemo}{2E}",
				game.DealDamage(elemental(rules.Anemo), 1),
				game.AddSummon(LargeWindSpirit)),
		},
	})
	Collei = game.RegisterCharacter(game.CharacterDesc{
		Name: "Collei", Element: rules.Dendro, Weapon: rules.WeaponBow, MaxHealth: 10, MaxEnergy: 2,
		Skills: []game.SkillID{
			normalAttack("Supplicant's Bowmanship", rules.Dendro, rules.DamagePhysical, 2),
			skill("Floral Brush", rules.ElementalSkill, "{3Dendro}",
				game.DealDamage(elemental(rules.Dendro), 3)),
			skill("Trump-Card Kitty", rules.ElementalBurst, "{3Dendro}{2E}",
				game.DealDamage(elemental(rules.Dendro), 2),
				game.AddSummon(CuileinAnbar)),
		},
	})
	Mona = game.RegisterCharacter(game.CharacterDesc{
		Name: "Mona", Element: rules.Hydro, Weapon: rules.WeaponCatalyst, MaxHealth: 10, MaxEnergy: 3,
		Skills: []game.SkillID{
			normalAttack("Ripple of Fate", rules.Hydro, elemental(rules.Hydro), 1),
			skill("Mirror Reflection of Doom", rules.ElementalSkill, "{3Hydro}",
				game.DealDamage(elemental(rules.Hydro), 1),
				game.AddSummon(Reflection)),
			skill("Stellaris Phantasm", rules.ElementalBurst, "{3Hydro}{3E}",
				game.DealDamage(elemental(rules.Hydro), 4),
				game.AddStatus(IllusoryBubble)),
		},
	})
	Rhodeia = game.RegisterCharacter(game.CharacterDesc{
		Name: "Rhodeia of Loch", Element: rules.Hydro, Weapon: rules.WeaponOther, MaxHealth: 10, MaxEnergy: 2,
		Skills: []game.SkillID{
			normalAttack("Surge", rules.Hydro, elemental(rules.Hydro), 1),
			skill("Oceanid Mimic Summoning", rules.ElementalSkill, "{3Hydro}",
				game.SummonRandom(OceanidPool, 1)),
			skill("The Myriad Wilds", rules.ElementalSkill, "{5Hydro}",
				game.SummonRandom(OceanidPool, 2)),
			game.RegisterSkill(game.SkillDesc{
				Name: "Tide and Torrent",
				Type: rules.ElementalBurst,
				Cost: dice.MustParseCost("{3Hydro}{2E}"),
				// 2 Hydro damage plus 2 for each of the caster's summons.
				Build: func(v *game.GameState, p rules.PlayerID, _ uint8) []game.Command {
					n := v.Player(p).Statuses().Count(effects.AttachSummon)
					return []game.Command{game.DealDamage(elemental(rules.Hydro), uint8(2+2*n))}
				},
			}),
		},
	})
}
