package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OfferType enumerates what is being proposed.
type OfferType string

const (
	OfferDouble      OfferType = "double"
	OfferPartnership OfferType = "partnership"
)

// OfferStatus is the lifecycle state of an offer.
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferDeclined OfferStatus = "declined"
)

// Offer is a proposal requiring the other side's response, unlike the
// unilateral announcements (float, duncan) which bypass this protocol.
type Offer struct {
	ID          string      `json:"id"`
	Type        OfferType   `json:"type"`
	OfferedBy   string      `json:"offeredBy"`
	Target      string      `json:"target,omitempty"`
	WagerBefore int         `json:"wagerBefore"`
	WagerAfter  int         `json:"wagerAfter"`
	Status      OfferStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// OfferProtocol is the per-hole state machine
// Idle -> OfferPending -> {Accepted | Declined} -> Idle.
// Only Idle permits a new offer: offers never stack.
type OfferProtocol struct {
	pending *Offer
}

// NewOfferProtocol returns an idle protocol.
func NewOfferProtocol() *OfferProtocol {
	return &OfferProtocol{}
}

// Pending returns the open offer, or nil when idle.
func (p *OfferProtocol) Pending() *Offer {
	return p.pending
}

// Propose opens an offer. Fails if one is already pending.
func (p *OfferProtocol) Propose(typ OfferType, offeredBy, target string, wagerBefore, wagerAfter int, at time.Time) (*Offer, error) {
	if p.pending != nil {
		return nil, ErrOfferPending
	}
	p.pending = &Offer{
		ID:          uuid.NewString(),
		Type:        typ,
		OfferedBy:   offeredBy,
		Target:      target,
		WagerBefore: wagerBefore,
		WagerAfter:  wagerAfter,
		Status:      OfferPending,
		CreatedAt:   at,
	}
	return p.pending, nil
}

// Accept resolves the pending offer in favour of the escalation and returns
// it. The caller applies the wager change.
func (p *OfferProtocol) Accept() (*Offer, error) {
	return p.resolve(OfferAccepted)
}

// Decline resolves the pending offer without changing the wager. Declining
// cancels the escalation only; whether the hole is then conceded is a table
// decision settled when quarters are entered.
func (p *OfferProtocol) Decline() (*Offer, error) {
	return p.resolve(OfferDeclined)
}

func (p *OfferProtocol) resolve(status OfferStatus) (*Offer, error) {
	if p.pending == nil {
		return nil, ErrNoPendingOffer
	}
	offer := p.pending
	offer.Status = status
	p.pending = nil
	return offer, nil
}

// Reset discards any pending offer at hole boundaries.
func (p *OfferProtocol) Reset() {
	p.pending = nil
}

func (o *Offer) String() string {
	return fmt.Sprintf("%s by %s (%d -> %d, %s)", o.Type, o.OfferedBy, o.WagerBefore, o.WagerAfter, o.Status)
}
