package game

import "fmt"

// Phase represents the betting phase of the round
type Phase int

const (
	PhaseNormal Phase = iota
	PhaseVinniesVariation
	PhaseHoepfinger
)

func (p Phase) String() string {
	return [...]string{"normal", "vinnies_variation", "hoepfinger"}[p]
}

// DetectPhase returns the phase for a hole number given the player count.
// Thresholds follow the standard game: four players play Vinnie's Variation
// on 13-16 and enter Hoepfinger on 17, five players enter Hoepfinger on 16,
// six players on 13.
func DetectPhase(playerCount, holeNumber int) Phase {
	switch {
	case playerCount <= 4:
		if holeNumber >= 17 {
			return PhaseHoepfinger
		}
		if holeNumber >= 13 {
			return PhaseVinniesVariation
		}
	case playerCount == 5:
		if holeNumber >= 16 {
			return PhaseHoepfinger
		}
	default: // 6 players
		if holeNumber >= 13 {
			return PhaseHoepfinger
		}
	}
	return PhaseNormal
}

// Rotation holds the hitting order for the current hole. The captain is the
// first hitter; outside Hoepfinger the captain pointer advances modulo the
// player count each hole.
type Rotation struct {
	Order        []string `json:"order"`
	CaptainIndex int      `json:"captainIndex"`
	Phase        Phase    `json:"phase"`
	GoatID       string   `json:"goatId,omitempty"` // set only during hoepfinger
}

// NewRotation creates a rotation from the initial hitting order.
func NewRotation(order []string) *Rotation {
	o := make([]string, len(order))
	copy(o, order)
	return &Rotation{Order: o}
}

// Captain returns the id of the current captain.
func (r *Rotation) Captain() string {
	return r.Order[r.CaptainIndex]
}

// AdvanceCaptain moves the captaincy to the next player in order.
func (r *Rotation) AdvanceCaptain() {
	r.CaptainIndex = (r.CaptainIndex + 1) % len(r.Order)
}

// EnterHoepfinger records the goat for the phase. The goat then picks their
// hitting slot via SelectGoatPosition.
func (r *Rotation) EnterHoepfinger(goatID string) {
	r.Phase = PhaseHoepfinger
	r.GoatID = goatID
}

// SelectGoatPosition swaps the goat into the chosen slot of the hitting
// order. The captain pointer resets to the first hitter of the new order.
func (r *Rotation) SelectGoatPosition(chosenIndex int) error {
	if r.Phase != PhaseHoepfinger {
		return ErrHoepfingerOnly
	}
	if chosenIndex < 0 || chosenIndex >= len(r.Order) {
		return fmt.Errorf("position %d out of range for %d players", chosenIndex, len(r.Order))
	}

	goatIndex := -1
	for i, id := range r.Order {
		if id == r.GoatID {
			goatIndex = i
			break
		}
	}
	if goatIndex == -1 {
		return fmt.Errorf("goat %s not in rotation", r.GoatID)
	}

	r.Order[goatIndex], r.Order[chosenIndex] = r.Order[chosenIndex], r.Order[goatIndex]
	r.CaptainIndex = 0
	return nil
}

// snapshot returns a copy safe to hand out of the engine.
func (r *Rotation) snapshot() Rotation {
	order := make([]string, len(r.Order))
	copy(order, r.Order)
	return Rotation{Order: order, CaptainIndex: r.CaptainIndex, Phase: r.Phase, GoatID: r.GoatID}
}
