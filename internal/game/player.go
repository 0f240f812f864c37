package game

// Player is immutable reference data supplied by the caller at round start.
type Player struct {
	ID       string
	Name     string
	Handicap float64
	TeeOrder int
}

// Standing is a player's cumulative position in the round. It is always
// derived by folding the hole history, never patched incrementally.
type Standing struct {
	PlayerID    string  `json:"playerId"`
	Quarters    float64 `json:"quarters"`
	SoloCount   int     `json:"soloCount"`
	FloatCount  int     `json:"floatCount"`
	OptionCount int     `json:"optionCount"`
}
