package game

import "time"

// EventType identifies a game event with type safety.
type EventType string

const (
	EventTypeHoleStart     EventType = "hole_start"
	EventTypeHoleEnd       EventType = "hole_end"
	EventTypePhaseChange   EventType = "phase_change"
	EventTypeTeamsFormed   EventType = "teams_formed"
	EventTypeWagerChange   EventType = "wager_change"
	EventTypeOfferMade     EventType = "offer_made"
	EventTypeOfferResolved EventType = "offer_resolved"
)

func (et EventType) String() string { return string(et) }

// GameEvent is anything that happens during a round worth observing.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// HoleStartEvent is published when a hole opens for play.
type HoleStartEvent struct {
	Hole         int
	CaptainID    string
	Phase        Phase
	OpeningWager int
	timestamp    time.Time
}

func (e HoleStartEvent) EventType() EventType { return EventTypeHoleStart }
func (e HoleStartEvent) Timestamp() time.Time { return e.timestamp }

// HoleEndEvent is published when a hole record is submitted.
type HoleEndEvent struct {
	Hole      int
	Wager     int
	Quarters  map[string]float64
	Tied      bool
	timestamp time.Time
}

func (e HoleEndEvent) EventType() EventType { return EventTypeHoleEnd }
func (e HoleEndEvent) Timestamp() time.Time { return e.timestamp }

// PhaseChangeEvent is published when the round moves between normal play,
// Vinnie's Variation and the Hoepfinger.
type PhaseChangeEvent struct {
	Hole      int
	Phase     Phase
	GoatID    string
	timestamp time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.timestamp }

// TeamsFormedEvent is published when the hole's sides settle.
type TeamsFormedEvent struct {
	Hole      int
	Teams     TeamsSnapshot
	timestamp time.Time
}

func (e TeamsFormedEvent) EventType() EventType { return EventTypeTeamsFormed }
func (e TeamsFormedEvent) Timestamp() time.Time { return e.timestamp }

// WagerChangeEvent is published whenever the live stake moves.
type WagerChangeEvent struct {
	Hole      int
	Before    int
	After     int
	Cause     string
	ActorID   string
	timestamp time.Time
}

func (e WagerChangeEvent) EventType() EventType { return EventTypeWagerChange }
func (e WagerChangeEvent) Timestamp() time.Time { return e.timestamp }

// OfferEvent is published when an offer is made or resolved.
type OfferEvent struct {
	Hole      int
	Offer     Offer
	timestamp time.Time
}

func (e OfferEvent) EventType() EventType {
	if e.Offer.Status == OfferPending {
		return EventTypeOfferMade
	}
	return EventTypeOfferResolved
}
func (e OfferEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives game events.
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus.
func NewEventBus() EventBus {
	return &SimpleEventBus{subscribers: make([]EventSubscriber, 0)}
}

// Subscribe adds a subscriber to receive events.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers.
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// BettingEvent is one line of the per-hole betting log that is persisted
// inside the hole record.
type BettingEvent struct {
	Kind        string    `json:"kind"`
	ActorID     string    `json:"actorId,omitempty"`
	WagerBefore int       `json:"wagerBefore,omitempty"`
	WagerAfter  int       `json:"wagerAfter,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	At          time.Time `json:"at"`
}
