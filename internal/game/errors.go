package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Protocol errors. These are rejected actions, never silent no-ops.
var (
	ErrOfferPending     = errors.New("an offer is already pending")
	ErrNoPendingOffer   = errors.New("no pending offer to resolve")
	ErrFloatAlreadyUsed = errors.New("float already used this round")
	ErrNotCaptain       = errors.New("only the captain may do that")
	ErrOptionNotActive  = errors.New("the option is not active")
	ErrOptionTurnedOff  = errors.New("the option has already been turned off")
	ErrDuncanNeedsSolo  = errors.New("the duncan can only be announced when playing solo")
	ErrHoepfingerOnly   = errors.New("only available during the hoepfinger phase")
	ErrGoatOnly         = errors.New("only the goat may do that")
	ErrJoesSpecialLate  = errors.New("joe's special sets the opening wager and must precede any betting on the hole")
	ErrNoAardvark       = errors.New("no aardvark in this game")
	ErrRoundComplete    = errors.New("all 18 holes have been recorded")
)

// UnknownActionError is returned when an action type outside the closed
// union reaches the dispatcher.
type UnknownActionError struct {
	Type ActionType
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action type %q", string(e.Type))
}

// ImbalanceError reports a zero-sum violation when validating quarters.
// It carries the numeric discrepancy and any players missing an entry so the
// caller can show exactly what is wrong instead of a bare "invalid".
type ImbalanceError struct {
	Imbalance float64
	Missing   []string
}

func (e *ImbalanceError) Error() string {
	if len(e.Missing) > 0 {
		missing := append([]string(nil), e.Missing...)
		sort.Strings(missing)
		return fmt.Sprintf("missing quarters for: %s", strings.Join(missing, ", "))
	}
	return fmt.Sprintf("quarters must sum to zero, off by %+.3f", e.Imbalance)
}

// InvalidWagerError reports a Joe's Special selection outside the menu.
type InvalidWagerError struct {
	Requested int
	Allowed   []int
}

func (e *InvalidWagerError) Error() string {
	return fmt.Sprintf("wager %d not allowed, choose from %v", e.Requested, e.Allowed)
}
