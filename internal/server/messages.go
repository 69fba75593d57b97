package server

import "github.com/tcgsim/tcgsim/internal/game"

// NewGameRequest starts a hosted game.
type NewGameRequest struct {
	Lineup        string `json:"lineup,omitempty"`
	Seed          uint64 `json:"seed,omitempty"`
	Deterministic bool   `json:"deterministic,omitempty"`
	IgnoreCosts   bool   `json:"ignore_costs,omitempty"`
}

// GameRequest addresses an existing game.
type GameRequest struct {
	GameID string `json:"game_id"`
}

// Target is a character reference on the wire.
type Target struct {
	Player  uint8 `json:"player"`
	CharIdx uint8 `json:"char_idx"`
}

// Action is a player input on the wire. Kind is an ActionKind name such as
// CAST_SKILL; only the fields that kind uses are read.
type Action struct {
	Player  uint8   `json:"player"`
	Kind    string  `json:"kind"`
	Card    uint16  `json:"card,omitempty"`
	Skill   uint16  `json:"skill,omitempty"`
	CharIdx uint8   `json:"char_idx,omitempty"`
	Target  *Target `json:"target,omitempty"`
	// Label is a readable rendering, filled in responses only.
	Label string `json:"label,omitempty"`
}

// AdvanceRequest submits one player input.
type AdvanceRequest struct {
	GameID string `json:"game_id"`
	Action Action `json:"action"`
}

// Expected tells the client whose turn it is, or who won.
type Expected struct {
	Kind   string `json:"kind"`
	Player uint8  `json:"player"`
}

// GameResponse is the state of a game after a call.
type GameResponse struct {
	GameID    string        `json:"game_id"`
	Lifecycle string        `json:"lifecycle"`
	Steps     int           `json:"steps"`
	Expected  Expected      `json:"expected"`
	State     *game.Summary `json:"state,omitempty"`
}

// ActionsResponse lists every legal input for the player expected to act.
type ActionsResponse struct {
	GameID   string   `json:"game_id"`
	Expected Expected `json:"expected"`
	Actions  []Action `json:"actions"`
}

// DeleteGameResponse confirms a removed game.
type DeleteGameResponse struct {
	GameID string `json:"game_id"`
}
