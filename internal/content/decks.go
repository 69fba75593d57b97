package content

import "github.com/tcgsim/tcgsim/internal/game"

// DemoTeams returns the character lineups used by the demo playout and the
// server's default game.
func DemoTeams() [2][]game.CharID {
	return [2][]game.CharID{
		{Diluc, Xingqiu, Fischl},
		{Kaeya, Noelle, Sucrose},
	}
}

// AltTeams exercises summons, pools and Dendro reactions.
func AltTeams() [2][]game.CharID {
	return [2][]game.CharID{
		{Collei, Rhodeia, Mona},
		{Xingqiu, Diluc, Kaeya},
	}
}

// DemoDeck returns a deck with a few copies of every registered card.
func DemoDeck() []game.CardID {
	copies := map[game.CardID]int{
		Paimon:              2,
		DawnWinery:          2,
		Strategize:          4,
		ChangingShiftsCard:  4,
		LeaveItToMeCard:     4,
		SweetMadame:         4,
		Starsigns:           4,
		TravelersHandyBlade: 2,
		FerventFlamesCard:   4,
	}
	deck := make([]game.CardID, 0, 30)
	for id := game.CardID(1); int(id) <= game.CardCount(); id++ {
		for i := 0; i < copies[id]; i++ {
			deck = append(deck, id)
		}
	}
	return deck
}

// DemoDecks returns a copy of the demo deck for each player.
func DemoDecks() [2][]game.CardID {
	return [2][]game.CardID{DemoDeck(), DemoDeck()}
}

// DemoSetup builds a setup with the demo teams and empty starting hands.
func DemoSetup() game.Setup {
	return game.Setup{Characters: DemoTeams(), LogEvents: true}
}
