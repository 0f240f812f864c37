package game

import "math"

// zeroSumTolerance is the absolute tolerance on the quarters sum. Quarters
// are entered in halves at most, so anything past 1e-3 is a real mistake.
const zeroSumTolerance = 1e-3

// Betting log kinds folded into standings and persisted per hole.
const (
	BetFloat         = "float"
	BetDoubleOffered = "double_offered"
	BetDoubleAccept  = "double_accepted"
	BetDoubleDecline = "double_declined"
	BetDuncan        = "duncan"
	BetOptionOn      = "option_on"
	BetOptionOff     = "option_off"
	BetJoesSpecial   = "joes_special"
	BetGoSolo        = "go_solo"
	BetAardvarkToss  = "aardvark_tossed"
	BetTunkarri      = "tunkarri"
	BetGhostToss     = "invisible_aardvark_tossed"
	BetCarryOver     = "carry_over"
	BetConcede       = "concede"
)

// ValidateQuarters checks that every player has a numeric entry and that
// the transfers sum to zero. Violations come back as an ImbalanceError
// carrying the discrepancy; nothing is ever auto-corrected.
func ValidateQuarters(quarters map[string]float64, players []Player) error {
	var missing []string
	for _, p := range players {
		if _, ok := quarters[p.ID]; !ok {
			missing = append(missing, p.ID)
		}
	}
	if len(missing) > 0 {
		return &ImbalanceError{Missing: missing}
	}

	sum := 0.0
	for _, q := range quarters {
		sum += q
	}
	if math.Abs(sum) > zeroSumTolerance {
		return &ImbalanceError{Imbalance: sum}
	}
	return nil
}

// FoldStandings recomputes standings from scratch over the whole history.
// Folding is a pure function of the ledger: edits to any hole trigger a full
// refold rather than an incremental patch, which keeps standings consistent
// even after out-of-order edits.
func FoldStandings(records []*HoleRecord, players []Player) map[string]*Standing {
	standings := make(map[string]*Standing, len(players))
	for _, p := range players {
		standings[p.ID] = &Standing{PlayerID: p.ID}
	}

	for _, rec := range records {
		for id, q := range rec.Quarters {
			if s, ok := standings[id]; ok {
				s.Quarters += q
			}
		}

		if rec.Teams.Mode == ModeSolo.String() {
			if s, ok := standings[rec.Teams.CaptainID]; ok {
				s.SoloCount++
			}
		}
		if rec.Teams.Aardvark != nil && rec.Teams.Aardvark.Solo {
			if s, ok := standings[rec.Teams.Aardvark.PlayerID]; ok {
				s.SoloCount++
			}
		}

		for _, ev := range rec.Events {
			s, ok := standings[ev.ActorID]
			if !ok {
				continue
			}
			switch ev.Kind {
			case BetFloat:
				s.FloatCount++
			case BetOptionOn:
				s.OptionCount++
			}
		}
	}

	return standings
}

// NetBestBall compares the two teams' best net balls on a hole. The winner
// is 1 or 2, or 0 on a push. Players missing a gross score are skipped,
// which matches how a picked-up ball scores in practice.
func NetBestBall(gross map[string]int, credits map[string]float64, team1, team2 []string) (best1, best2 float64, winner int) {
	best := func(team []string) (float64, bool) {
		bestNet := math.Inf(1)
		found := false
		for _, id := range team {
			g, ok := gross[id]
			if !ok {
				continue
			}
			net := NetScore(g, credits[id])
			if net < bestNet {
				bestNet = net
				found = true
			}
		}
		return bestNet, found
	}

	best1, ok1 := best(team1)
	best2, ok2 := best(team2)

	switch {
	case ok1 && ok2 && best1 < best2:
		winner = 1
	case ok1 && ok2 && best2 < best1:
		winner = 2
	case ok1 && !ok2:
		winner = 1
	case ok2 && !ok1:
		winner = 2
	}
	return best1, best2, winner
}
