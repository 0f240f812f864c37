package game

import "sort"

// TeamMode discriminates how the hole's sides were formed.
type TeamMode int

const (
	ModePending TeamMode = iota
	ModePartners
	ModeSolo
)

func (m TeamMode) String() string {
	return [...]string{"pending", "partners", "solo"}[m]
}

// AardvarkState tracks the fifth (or sixth) player who asks to join a team
// after the teams form. In four-player games the "invisible" aardvark is
// implicit and only its tossed flag lives on Teams.
type AardvarkState struct {
	PlayerID      string `json:"playerId"`
	RequestedTeam int    `json:"requestedTeam"` // 1 or 2
	Tossed        bool   `json:"tossed"`
	Solo          bool   `json:"solo"` // the Tunkarri: aardvark plays alone against both teams
}

// Teams assembles the hole's sides from the captain's choices. Team two is
// never stored: it is always the complement of team one over the player set,
// which makes the partition invariant unbreakable by construction.
type Teams struct {
	Mode      TeamMode
	CaptainID string

	players []string
	team1   map[string]bool

	Aardvark                *AardvarkState
	InvisibleAardvarkTossed bool
}

// NewTeams creates an unformed team state over the given player ids.
func NewTeams(players []string, captainID string) *Teams {
	ids := make([]string, len(players))
	copy(ids, players)
	return &Teams{
		Mode:      ModePending,
		CaptainID: captainID,
		players:   ids,
		team1:     map[string]bool{},
	}
}

// ToggleTeam1Member adds or removes a player from team one and switches the
// hole into partners mode.
func (t *Teams) ToggleTeam1Member(playerID string) {
	t.Mode = ModePartners
	if t.team1[playerID] {
		delete(t.team1, playerID)
	} else {
		t.team1[playerID] = true
	}
}

// FormPartnership puts the captain and the accepted partner on team one.
func (t *Teams) FormPartnership(captainID, partnerID string) {
	t.Mode = ModePartners
	t.CaptainID = captainID
	t.team1 = map[string]bool{captainID: true, partnerID: true}
}

// SetSoloCaptain puts the captain alone against everyone else.
func (t *Teams) SetSoloCaptain(playerID string) {
	t.Mode = ModeSolo
	t.CaptainID = playerID
	t.team1 = map[string]bool{playerID: true}
}

// Team1 returns the members of team one in stable order.
func (t *Teams) Team1() []string {
	var members []string
	for _, id := range t.players {
		if t.team1[id] {
			members = append(members, id)
		}
	}
	return members
}

// Team2 returns the complement of team one. In solo mode these are the
// opponents of the captain.
func (t *Teams) Team2() []string {
	var members []string
	for _, id := range t.players {
		if !t.team1[id] {
			members = append(members, id)
		}
	}
	return members
}

// TeamOf returns 1 or 2 for the side the player is on, or 0 for an aardvark
// playing the Tunkarri.
func (t *Teams) TeamOf(playerID string) int {
	if t.Aardvark != nil && t.Aardvark.Solo && t.Aardvark.PlayerID == playerID {
		return 0
	}
	if t.team1[playerID] {
		return 1
	}
	return 2
}

// RequestAardvarkTeam records which side the aardvark asks to join. The
// request stands unless the team tosses them.
func (t *Teams) RequestAardvarkTeam(playerID string, team int) {
	t.Aardvark = &AardvarkState{PlayerID: playerID, RequestedTeam: team}
	if team == 1 {
		t.team1[playerID] = true
	} else {
		delete(t.team1, playerID)
	}
}

// TossAardvark rejects the aardvark's request: they join the other team.
// The wager doubling that comes with a toss belongs to the ledger, the
// engine applies it alongside this call.
func (t *Teams) TossAardvark() error {
	if t.Aardvark == nil {
		return ErrNoAardvark
	}
	t.Aardvark.Tossed = true
	if t.Aardvark.RequestedTeam == 1 {
		delete(t.team1, t.Aardvark.PlayerID)
		t.Aardvark.RequestedTeam = 2
	} else {
		t.team1[t.Aardvark.PlayerID] = true
		t.Aardvark.RequestedTeam = 1
	}
	return nil
}

// InvokeTunkarri puts the aardvark fully solo against both teams for a
// 3-for-2 payout instead of 1:1.
func (t *Teams) InvokeTunkarri() error {
	if t.Aardvark == nil {
		return ErrNoAardvark
	}
	t.Aardvark.Solo = true
	delete(t.team1, t.Aardvark.PlayerID)
	return nil
}

// TossInvisibleAardvark rejects the implicit fifth member of team two in a
// four-player game. The engine doubles the wager and switches that team's
// payout to 3-for-2.
func (t *Teams) TossInvisibleAardvark() {
	t.InvisibleAardvarkTossed = true
}

// Snapshot captures the formed teams for a hole record.
type TeamsSnapshot struct {
	Mode                    string         `json:"mode"`
	CaptainID               string         `json:"captainId"`
	Team1                   []string       `json:"team1"`
	Team2                   []string       `json:"team2"`
	Aardvark                *AardvarkState `json:"aardvark,omitempty"`
	InvisibleAardvarkTossed bool           `json:"invisibleAardvarkTossed,omitempty"`
}

// Snapshot returns a copy of the current team assignment.
func (t *Teams) Snapshot() TeamsSnapshot {
	snap := TeamsSnapshot{
		Mode:                    t.Mode.String(),
		CaptainID:               t.CaptainID,
		Team1:                   t.Team1(),
		Team2:                   t.Team2(),
		InvisibleAardvarkTossed: t.InvisibleAardvarkTossed,
	}
	sort.Strings(snap.Team1)
	sort.Strings(snap.Team2)
	if t.Aardvark != nil {
		a := *t.Aardvark
		snap.Aardvark = &a
	}
	return snap
}
