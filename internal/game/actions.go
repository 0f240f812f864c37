package game

// ActionType is the closed union of everything the dispatch surface
// accepts. Unknown types are rejected with an UnknownActionError, never
// silently ignored.
type ActionType string

const (
	ActionSetCurrentHole  ActionType = "SET_CURRENT_HOLE"
	ActionUpdateScore     ActionType = "UPDATE_SCORE"
	ActionSetScores       ActionType = "SET_SCORES"
	ActionTogglePlayer    ActionType = "TOGGLE_PLAYER_TEAM"
	ActionSetCaptain      ActionType = "SET_CAPTAIN"
	ActionLoadHoleForEdit ActionType = "LOAD_HOLE_FOR_EDIT"

	ActionOfferDouble   ActionType = "offer_double"
	ActionAcceptDouble  ActionType = "accept_double"
	ActionDeclineDouble ActionType = "decline_double"
	ActionInvokeFloat   ActionType = "invoke_float"
	ActionToggleOption  ActionType = "toggle_option"
	ActionTurnOffOption ActionType = "turn_off_option"
	ActionAnnounceDunc  ActionType = "announce_duncan"
	ActionGoSolo        ActionType = "go_solo"

	ActionRequestPartner ActionType = "request_partner"
	ActionAcceptPartner  ActionType = "accept_partner"
	ActionDeclinePartner ActionType = "decline_partner"

	ActionRequestAardvark ActionType = "request_aardvark"
	ActionTossAardvark    ActionType = "toss_aardvark"
	ActionInvokeTunkarri  ActionType = "invoke_tunkarri"
	ActionTossGhost       ActionType = "toss_invisible_aardvark"

	ActionInvokeJoesSpecial  ActionType = "invoke_joes_special"
	ActionSelectGoatPosition ActionType = "select_goat_position"
	ActionConcedeHole        ActionType = "concede_hole"
	ActionNextHole           ActionType = "next_hole"
)

// Action is a single dispatched command. Only the fields relevant to the
// type need to be set.
type Action struct {
	Type     ActionType         `json:"type"`
	PlayerID string             `json:"playerId,omitempty"`
	TargetID string             `json:"targetId,omitempty"`
	Hole     int                `json:"hole,omitempty"`
	Score    int                `json:"score,omitempty"`
	Scores   map[string]int     `json:"scores,omitempty"`
	Quarters map[string]float64 `json:"quarters,omitempty"`
	Team     int                `json:"team,omitempty"`
	Amount   int                `json:"amount,omitempty"`
	Position int                `json:"position,omitempty"`
}
