package game

// JoesSpecialMenu is the fixed set of opening wagers the goat may pick from
// during the Hoepfinger phase.
var JoesSpecialMenu = []int{2, 4, 8}

// Wager tracks the hole's live stake and the multipliers feeding it.
// Current only ever increases through defined actions and resets to
// NextHole at the start of each hole.
type Wager struct {
	Base     int
	NextHole int
	Current  int

	CarryOver        bool
	carryCount       int
	MaxCarryOvers    int
	VinniesVariation bool
	OptionActive     bool
	OptionOff        bool
	DuncanInvoked    bool
	JoesSpecial      int // 0 means no override
}

// NewWager creates the round ledger. maxCarryOvers caps how many consecutive
// tied holes compound the carry-over; course rules vary, so it is
// configuration, not a constant.
func NewWager(base, maxCarryOvers int) *Wager {
	return &Wager{
		Base:          base,
		NextHole:      base,
		Current:       base,
		MaxCarryOvers: maxCarryOvers,
	}
}

// StartHole composes the hole's opening wager: the carried stake, doubled if
// a carry-over is pending, doubled again while Vinnie's Variation is on, and
// doubled once more when the option is active and has not been turned off.
// A Joe's Special selection overrides the carry-over and variation
// multipliers entirely.
func (w *Wager) StartHole(optionActive, vinniesVariation bool) {
	w.OptionActive = optionActive
	w.OptionOff = false
	w.DuncanInvoked = false
	w.VinniesVariation = vinniesVariation

	if w.JoesSpecial > 0 {
		w.Current = w.JoesSpecial
		if w.OptionActive {
			w.Current *= 2
		}
		return
	}

	w.Current = w.NextHole
	if w.CarryOver {
		w.Current *= 2
	}
	if w.VinniesVariation {
		w.Current *= 2
	}
	if w.OptionActive {
		w.Current *= 2
	}
}

// Double doubles the live stake. Called when a double offer is accepted, a
// captain floats, an aardvark is tossed, or the captain goes solo.
func (w *Wager) Double() {
	w.Current *= 2
}

// TurnOffOption halves the stake back toward the base, available only while
// the option is active and not yet turned off.
func (w *Wager) TurnOffOption() error {
	if !w.OptionActive {
		return ErrOptionNotActive
	}
	if w.OptionOff {
		return ErrOptionTurnedOff
	}
	w.OptionOff = true
	w.Current /= 2
	if w.Current < w.NextHole {
		w.Current = w.NextHole
	}
	return nil
}

// SetJoesSpecial records the goat's opening wager for the next hole.
func (w *Wager) SetJoesSpecial(quarters int) error {
	for _, q := range JoesSpecialMenu {
		if quarters == q {
			w.JoesSpecial = quarters
			return nil
		}
	}
	return &InvalidWagerError{Requested: quarters, Allowed: JoesSpecialMenu}
}

// RecordTie marks the hole fully tied so the next hole's opening wager
// doubles, subject to the carry-over cap.
func (w *Wager) RecordTie() {
	if w.carryCount >= w.MaxCarryOvers {
		w.CarryOver = false
		return
	}
	w.CarryOver = true
	w.carryCount++
}

// ResetForNextHole clears hole-scoped state. A decided hole resets the
// carry-over chain.
func (w *Wager) ResetForNextHole(tied bool) {
	if !tied {
		w.CarryOver = false
		w.carryCount = 0
	}
	w.JoesSpecial = 0
	w.NextHole = w.Base
}

// WagerSnapshot is the betting state handed out with engine snapshots.
type WagerSnapshot struct {
	Base             int    `json:"base"`
	NextHole         int    `json:"nextHole"`
	Current          int    `json:"current"`
	CarryOver        bool   `json:"carryOver"`
	VinniesVariation bool   `json:"vinniesVariation"`
	OptionActive     bool   `json:"optionActive"`
	OptionOff        bool   `json:"optionOff"`
	DuncanInvoked    bool   `json:"duncanInvoked"`
	JoesSpecial      int    `json:"joesSpecial,omitempty"`
	PayoutNum        int    `json:"payoutNum"`
	PayoutDen        int    `json:"payoutDen"`
	PendingOffer     *Offer `json:"pendingOffer,omitempty"`
}
