package game

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/stuagano/wolf-goat-pig-sub000/internal/course"
)

// Recorder receives hole records for durable storage. Implementations are
// expected to write asynchronously and to collect failures for Warnings;
// the engine applies state optimistically and never rolls back on a failed
// write.
type Recorder interface {
	RecordHole(roundID string, rec *HoleRecord)
	RoundComplete(roundID string)
	Warnings() []string
}

// AchievementChecker is notified after every hole submit, fire-and-forget.
// Failures are collected and surfaced as warnings, never blocking play.
type AchievementChecker interface {
	HoleSubmitted(roundID string, hole int, playerIDs []string)
	Warnings() []string
}

type noopRecorder struct{}

func (noopRecorder) RecordHole(string, *HoleRecord) {}
func (noopRecorder) RoundComplete(string)           {}
func (noopRecorder) Warnings() []string             { return nil }

type noopChecker struct{}

func (noopChecker) HoleSubmitted(string, int, []string) {}
func (noopChecker) Warnings() []string                  { return nil }

// Config carries the round constants.
type Config struct {
	RoundID       string
	BaseWager     int
	MaxCarryOvers int
}

// Engine is the rules orchestrator. Every lifecycle action goes through
// Dispatch; each call returns the full updated state snapshot.
type Engine struct {
	logger *log.Logger
	clock  quartz.Clock
	cfg    Config

	players  []Player
	byID     map[string]Player
	teeRank  map[string]int
	credits  map[string]map[int]float64
	warnings []string // course data warnings, fixed for the round

	rotation  *Rotation
	teams     *Teams
	wager     *Wager
	offers    *OfferProtocol
	history   *History
	standings map[string]*Standing

	hole       int
	complete   bool
	editHole   int
	gross      map[string]int
	liveGross  map[string]int // stashed while editing a past hole
	floatUsed  map[string]bool
	holeEvents []BettingEvent

	bus          EventBus
	recorder     Recorder
	achievements AchievementChecker
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects a clock, primarily for tests.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithRecorder attaches durable storage for hole records.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithAchievements attaches the achievement checker.
func WithAchievements(c AchievementChecker) Option {
	return func(e *Engine) { e.achievements = c }
}

// WithEventBus replaces the default in-memory bus.
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// NewEngine creates an engine for one 18-hole round. Players hit in the
// given order on hole one; stroke credits are allocated up front from the
// course table.
func NewEngine(cfg Config, players []Player, holes []course.Hole, logger *log.Logger, opts ...Option) (*Engine, error) {
	if len(players) < 4 || len(players) > 6 {
		return nil, fmt.Errorf("wolf goat pig takes 4-6 players, got %d", len(players))
	}
	if cfg.BaseWager <= 0 {
		cfg.BaseWager = 1
	}
	if cfg.MaxCarryOvers <= 0 {
		cfg.MaxCarryOvers = 1
	}

	credits, courseWarnings := AllocateStrokes(players, holes)

	order := make([]Player, len(players))
	copy(order, players)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].TeeOrder != order[j].TeeOrder {
			return order[i].TeeOrder < order[j].TeeOrder
		}
		return false
	})

	e := &Engine{
		logger:       logger.WithPrefix("engine"),
		clock:        quartz.NewReal(),
		cfg:          cfg,
		players:      order,
		byID:         map[string]Player{},
		teeRank:      map[string]int{},
		credits:      credits,
		warnings:     courseWarnings,
		offers:       NewOfferProtocol(),
		history:      NewHistory(),
		wager:        NewWager(cfg.BaseWager, cfg.MaxCarryOvers),
		hole:         1,
		floatUsed:    map[string]bool{},
		bus:          NewEventBus(),
		recorder:     noopRecorder{},
		achievements: noopChecker{},
	}

	ids := make([]string, len(order))
	for i, p := range order {
		ids[i] = p.ID
		e.byID[p.ID] = p
		e.teeRank[p.ID] = i
	}
	e.rotation = NewRotation(ids)
	e.standings = FoldStandings(nil, order)

	for _, opt := range opts {
		opt(e)
	}

	e.rotation.Phase = DetectPhase(len(order), e.hole)
	e.startHole()
	return e, nil
}

// EventBus exposes the bus for subscribers.
func (e *Engine) EventBus() EventBus { return e.bus }

// StrokeCredit returns the stroke credit for a player on a hole.
func (e *Engine) StrokeCredit(playerID string, hole int) float64 {
	return e.credits[playerID][hole]
}

// Dispatch applies one action and returns the updated state snapshot. A
// rejected action leaves state untouched and returns the error.
func (e *Engine) Dispatch(a Action) (*Snapshot, error) {
	if e.complete && e.editHole == 0 && a.Type != ActionLoadHoleForEdit {
		return nil, ErrRoundComplete
	}

	var err error
	switch a.Type {
	case ActionSetCurrentHole:
		err = e.setCurrentHole(a.Hole)
	case ActionUpdateScore:
		err = e.updateScore(a.PlayerID, a.Score)
	case ActionSetScores:
		err = e.setScores(a.Scores)
	case ActionTogglePlayer:
		err = e.togglePlayerTeam(a.PlayerID)
	case ActionSetCaptain:
		err = e.setCaptain(a.PlayerID)
	case ActionGoSolo:
		err = e.goSolo(a.PlayerID)
	case ActionRequestPartner:
		err = e.requestPartner(a.PlayerID, a.TargetID)
	case ActionAcceptPartner:
		err = e.resolvePartner(true)
	case ActionDeclinePartner:
		err = e.resolvePartner(false)
	case ActionOfferDouble:
		err = e.offerDouble(a.PlayerID)
	case ActionAcceptDouble:
		err = e.resolveDouble(true)
	case ActionDeclineDouble:
		err = e.resolveDouble(false)
	case ActionInvokeFloat:
		err = e.invokeFloat(a.PlayerID)
	case ActionToggleOption:
		err = e.toggleOption()
	case ActionTurnOffOption:
		err = e.turnOffOption()
	case ActionAnnounceDunc:
		err = e.announceDuncan(a.PlayerID)
	case ActionRequestAardvark:
		err = e.requestAardvark(a.PlayerID, a.Team)
	case ActionTossAardvark:
		err = e.tossAardvark()
	case ActionInvokeTunkarri:
		err = e.invokeTunkarri()
	case ActionTossGhost:
		err = e.tossInvisibleAardvark()
	case ActionInvokeJoesSpecial:
		err = e.invokeJoesSpecial(a.PlayerID, a.Amount)
	case ActionSelectGoatPosition:
		err = e.selectGoatPosition(a.PlayerID, a.Position)
	case ActionConcedeHole:
		err = e.concedeHole(a.Team)
	case ActionNextHole:
		err = e.submitHole(a.Quarters)
	case ActionLoadHoleForEdit:
		err = e.loadHoleForEdit(a.Hole)
	default:
		err = &UnknownActionError{Type: a.Type}
	}

	if err != nil {
		e.logger.Warn("action rejected", "type", a.Type, "error", err)
		return nil, err
	}
	return e.snapshot(), nil
}

func (e *Engine) requirePlayer(id string) error {
	if _, ok := e.byID[id]; !ok {
		return fmt.Errorf("unknown player %q", id)
	}
	return nil
}

func (e *Engine) logBet(kind, actor string, before, after int, detail string) {
	e.holeEvents = append(e.holeEvents, BettingEvent{
		Kind:        kind,
		ActorID:     actor,
		WagerBefore: before,
		WagerAfter:  after,
		Detail:      detail,
		At:          e.clock.Now(),
	})
}

// currentGoat is the player furthest behind: lowest cumulative quarters,
// ties broken by earliest tee order in the original rotation.
func (e *Engine) currentGoat() string {
	goat := ""
	best := math.Inf(1)
	for _, p := range e.players {
		q := e.standings[p.ID].Quarters
		if q < best || (q == best && goat != "" && e.teeRank[p.ID] < e.teeRank[goat]) {
			best = q
			goat = p.ID
		}
	}
	return goat
}

// captainHoldsOption reports whether the captain is strictly furthest
// behind, which activates the option at hole start.
func (e *Engine) captainHoldsOption() bool {
	if e.hole == 1 {
		return false
	}
	captain := e.rotation.Captain()
	cq := e.standings[captain].Quarters
	for _, p := range e.players {
		if p.ID == captain {
			continue
		}
		if e.standings[p.ID].Quarters <= cq {
			return false
		}
	}
	return true
}

func (e *Engine) startHole() {
	captain := e.rotation.Captain()
	e.teams = NewTeams(e.rotation.Order, captain)
	e.offers.Reset()
	e.gross = map[string]int{}
	e.holeEvents = nil

	option := e.captainHoldsOption()
	e.wager.StartHole(option, e.rotation.Phase == PhaseVinniesVariation)

	if e.wager.CarryOver && e.wager.JoesSpecial == 0 {
		e.logBet(BetCarryOver, "", e.wager.NextHole, e.wager.Current, "previous hole tied")
	}
	if option {
		e.logBet(BetOptionOn, captain, e.wager.Current/2, e.wager.Current, "captain is the goat")
	}

	e.logger.Debug("hole started",
		"hole", e.hole, "captain", captain,
		"phase", e.rotation.Phase, "wager", e.wager.Current)

	e.bus.Publish(HoleStartEvent{
		Hole:         e.hole,
		CaptainID:    captain,
		Phase:        e.rotation.Phase,
		OpeningWager: e.wager.Current,
		timestamp:    e.clock.Now(),
	})
}

func (e *Engine) updatePhase() {
	phase := DetectPhase(len(e.players), e.hole)
	if phase == e.rotation.Phase {
		return
	}
	if phase == PhaseHoepfinger {
		goat := e.currentGoat()
		e.rotation.EnterHoepfinger(goat)
		e.logger.Info("entering hoepfinger", "hole", e.hole, "goat", goat)
	} else {
		// Jumping back out of hoepfinger drops the goat claim with it.
		e.rotation.Phase = phase
		e.rotation.GoatID = ""
	}
	e.bus.Publish(PhaseChangeEvent{
		Hole:      e.hole,
		Phase:     e.rotation.Phase,
		GoatID:    e.rotation.GoatID,
		timestamp: e.clock.Now(),
	})
}

func (e *Engine) setCurrentHole(hole int) error {
	if hole < 1 || hole > 18 {
		return fmt.Errorf("hole %d out of range", hole)
	}
	e.hole = hole
	e.updatePhase()
	e.startHole()
	return nil
}

func (e *Engine) updateScore(playerID string, score int) error {
	if err := e.requirePlayer(playerID); err != nil {
		return err
	}
	e.gross[playerID] = score
	return nil
}

func (e *Engine) setScores(scores map[string]int) error {
	for id := range scores {
		if err := e.requirePlayer(id); err != nil {
			return err
		}
	}
	for id, s := range scores {
		e.gross[id] = s
	}
	return nil
}

func (e *Engine) togglePlayerTeam(playerID string) error {
	if err := e.requirePlayer(playerID); err != nil {
		return err
	}
	e.teams.ToggleTeam1Member(playerID)
	return nil
}

func (e *Engine) setCaptain(playerID string) error {
	if err := e.requirePlayer(playerID); err != nil {
		return err
	}
	e.teams.SetSoloCaptain(playerID)
	return nil
}

// goSolo is the captain announcing the Pig: alone against the field, wager
// doubled.
func (e *Engine) goSolo(playerID string) error {
	if playerID != e.rotation.Captain() {
		return ErrNotCaptain
	}
	e.teams.SetSoloCaptain(playerID)
	before := e.wager.Current
	e.wager.Double()
	e.logBet(BetGoSolo, playerID, before, e.wager.Current, "")
	e.publishWagerChange(before, "go_solo", playerID)
	e.bus.Publish(TeamsFormedEvent{Hole: e.hole, Teams: e.teams.Snapshot(), timestamp: e.clock.Now()})
	return nil
}

func (e *Engine) requestPartner(playerID, targetID string) error {
	if playerID != e.rotation.Captain() {
		return ErrNotCaptain
	}
	if err := e.requirePlayer(targetID); err != nil {
		return err
	}
	offer, err := e.offers.Propose(OfferPartnership, playerID, targetID, e.wager.Current, e.wager.Current, e.clock.Now())
	if err != nil {
		return err
	}
	e.bus.Publish(OfferEvent{Hole: e.hole, Offer: *offer, timestamp: e.clock.Now()})
	return nil
}

func (e *Engine) resolvePartner(accepted bool) error {
	pending := e.offers.Pending()
	if pending == nil || pending.Type != OfferPartnership {
		return ErrNoPendingOffer
	}
	var offer *Offer
	var err error
	if accepted {
		offer, err = e.offers.Accept()
		if err != nil {
			return err
		}
		e.teams.FormPartnership(offer.OfferedBy, offer.Target)
		e.bus.Publish(TeamsFormedEvent{Hole: e.hole, Teams: e.teams.Snapshot(), timestamp: e.clock.Now()})
	} else {
		offer, err = e.offers.Decline()
		if err != nil {
			return err
		}
		// A declined partner leaves the captain on the pig.
		e.teams.SetSoloCaptain(offer.OfferedBy)
		before := e.wager.Current
		e.wager.Double()
		e.logBet(BetGoSolo, offer.OfferedBy, before, e.wager.Current, "partner declined")
		e.publishWagerChange(before, "partner_declined", offer.OfferedBy)
	}
	e.bus.Publish(OfferEvent{Hole: e.hole, Offer: *offer, timestamp: e.clock.Now()})
	return nil
}

func (e *Engine) offerDouble(playerID string) error {
	if err := e.requirePlayer(playerID); err != nil {
		return err
	}
	before := e.wager.Current
	offer, err := e.offers.Propose(OfferDouble, playerID, "", before, before*2, e.clock.Now())
	if err != nil {
		return err
	}
	e.logBet(BetDoubleOffered, playerID, before, before*2, "")
	e.bus.Publish(OfferEvent{Hole: e.hole, Offer: *offer, timestamp: e.clock.Now()})
	return nil
}

func (e *Engine) resolveDouble(accepted bool) error {
	pending := e.offers.Pending()
	if pending == nil || pending.Type != OfferDouble {
		return ErrNoPendingOffer
	}
	var offer *Offer
	var err error
	if accepted {
		offer, err = e.offers.Accept()
		if err != nil {
			return err
		}
		// The offer records the stake it was proposed at, but unilateral
		// announcements (float, aardvark toss) may escalate the hole while
		// it is pending. Acceptance doubles the live stake, so the wager
		// never moves backwards.
		before := e.wager.Current
		e.wager.Double()
		offer.WagerAfter = e.wager.Current
		e.logBet(BetDoubleAccept, offer.OfferedBy, before, e.wager.Current, "")
		e.publishWagerChange(before, "double_accepted", offer.OfferedBy)
	} else {
		offer, err = e.offers.Decline()
		if err != nil {
			return err
		}
		e.logBet(BetDoubleDecline, offer.OfferedBy, e.wager.Current, e.wager.Current, "escalation cancelled")
	}
	e.bus.Publish(OfferEvent{Hole: e.hole, Offer: *offer, timestamp: e.clock.Now()})
	return nil
}

// invokeFloat doubles the wager unilaterally. Unlike a double it needs no
// acceptance; that asymmetry is the game, not a bug. Once per player per
// round.
func (e *Engine) invokeFloat(playerID string) error {
	if playerID != e.rotation.Captain() {
		return ErrNotCaptain
	}
	if e.floatUsed[playerID] {
		return ErrFloatAlreadyUsed
	}
	e.floatUsed[playerID] = true
	before := e.wager.Current
	e.wager.Double()
	e.logBet(BetFloat, playerID, before, e.wager.Current, "")
	e.publishWagerChange(before, "float", playerID)
	return nil
}

func (e *Engine) toggleOption() error {
	if e.wager.OptionActive {
		return e.turnOffOption()
	}
	if e.wager.OptionOff {
		return ErrOptionTurnedOff
	}
	captain := e.rotation.Captain()
	e.wager.OptionActive = true
	before := e.wager.Current
	e.wager.Double()
	e.logBet(BetOptionOn, captain, before, e.wager.Current, "")
	e.publishWagerChange(before, "option_on", captain)
	return nil
}

func (e *Engine) turnOffOption() error {
	before := e.wager.Current
	if err := e.wager.TurnOffOption(); err != nil {
		return err
	}
	e.logBet(BetOptionOff, e.rotation.Captain(), before, e.wager.Current, "")
	e.publishWagerChange(before, "option_off", e.rotation.Captain())
	return nil
}

// announceDuncan switches the hole to a 3-for-2 payout; the wager itself is
// untouched. Solo mode only, declared before anyone hits.
func (e *Engine) announceDuncan(playerID string) error {
	if e.teams.Mode != ModeSolo {
		return ErrDuncanNeedsSolo
	}
	if playerID != e.teams.CaptainID {
		return ErrNotCaptain
	}
	e.wager.DuncanInvoked = true
	e.logBet(BetDuncan, playerID, e.wager.Current, e.wager.Current, "3-for-2 payout")
	return nil
}

func (e *Engine) requestAardvark(playerID string, team int) error {
	if len(e.players) < 5 {
		return ErrNoAardvark
	}
	if err := e.requirePlayer(playerID); err != nil {
		return err
	}
	if team != 1 && team != 2 {
		return fmt.Errorf("aardvark must request team 1 or 2, got %d", team)
	}
	e.teams.RequestAardvarkTeam(playerID, team)
	return nil
}

func (e *Engine) tossAardvark() error {
	if err := e.teams.TossAardvark(); err != nil {
		return err
	}
	before := e.wager.Current
	e.wager.Double()
	e.logBet(BetAardvarkToss, e.teams.Aardvark.PlayerID, before, e.wager.Current, "")
	e.publishWagerChange(before, "aardvark_tossed", e.teams.Aardvark.PlayerID)
	return nil
}

func (e *Engine) invokeTunkarri() error {
	if err := e.teams.InvokeTunkarri(); err != nil {
		return err
	}
	e.logBet(BetTunkarri, e.teams.Aardvark.PlayerID, e.wager.Current, e.wager.Current, "aardvark solo, 3-for-2")
	return nil
}

func (e *Engine) tossInvisibleAardvark() error {
	if len(e.players) != 4 {
		return fmt.Errorf("the invisible aardvark only plays in four-player games")
	}
	e.teams.TossInvisibleAardvark()
	before := e.wager.Current
	e.wager.Double()
	e.logBet(BetGhostToss, "", before, e.wager.Current, "team two pays 3-for-2")
	e.publishWagerChange(before, "invisible_aardvark_tossed", "")
	return nil
}

// invokeJoesSpecial lets the goat open the hole at a fixed wager from the
// menu, overriding carry-over and variation multipliers. It is an opening
// selection: once any betting has happened on the hole it is too late,
// since recomposing the wager would erase a consumed float or an announced
// duncan.
func (e *Engine) invokeJoesSpecial(playerID string, quarters int) error {
	if e.rotation.Phase != PhaseHoepfinger {
		return ErrHoepfingerOnly
	}
	if playerID != e.rotation.GoatID {
		return ErrGoatOnly
	}
	for _, ev := range e.holeEvents {
		if ev.Kind != BetCarryOver && ev.Kind != BetOptionOn {
			return ErrJoesSpecialLate
		}
	}
	if err := e.wager.SetJoesSpecial(quarters); err != nil {
		return err
	}
	before := e.wager.Current
	e.wager.StartHole(e.wager.OptionActive, e.wager.VinniesVariation)
	e.logBet(BetJoesSpecial, playerID, before, e.wager.Current, "")
	e.publishWagerChange(before, "joes_special", playerID)
	return nil
}

func (e *Engine) selectGoatPosition(playerID string, position int) error {
	if playerID != e.rotation.GoatID {
		return ErrGoatOnly
	}
	if err := e.rotation.SelectGoatPosition(position); err != nil {
		return err
	}
	e.startHole()
	return nil
}

// payoutFactor is 1.5 when the declaring side of a duncan, Tunkarri, or
// invisible-aardvark toss wins, 1.0 otherwise.
func (e *Engine) payoutFactor(winners []string) float64 {
	contains := func(ids []string, id string) bool {
		for _, x := range ids {
			if x == id {
				return true
			}
		}
		return false
	}
	if e.wager.DuncanInvoked && contains(winners, e.teams.CaptainID) {
		return 1.5
	}
	if e.teams.Aardvark != nil && e.teams.Aardvark.Solo && contains(winners, e.teams.Aardvark.PlayerID) {
		return 1.5
	}
	if e.teams.InvisibleAardvarkTossed {
		for _, id := range e.teams.Team2() {
			if contains(winners, id) {
				return 1.5
			}
		}
	}
	return 1.0
}

// concedeHole settles the hole at the current wager with the conceding side
// paying. Quarters are derived, so the zero-sum invariant holds by
// construction.
func (e *Engine) concedeHole(concedingTeam int) error {
	if concedingTeam != 1 && concedingTeam != 2 {
		return fmt.Errorf("conceding team must be 1 or 2, got %d", concedingTeam)
	}
	var winners, losers []string
	if concedingTeam == 1 {
		winners, losers = e.teams.Team2(), e.teams.Team1()
	} else {
		winners, losers = e.teams.Team1(), e.teams.Team2()
	}
	if len(winners) == 0 || len(losers) == 0 {
		return fmt.Errorf("both sides need players before a hole can be conceded")
	}

	perLoser := float64(e.wager.Current) * e.payoutFactor(winners)
	pot := perLoser * float64(len(losers))
	quarters := make(map[string]float64, len(e.players))
	for _, id := range losers {
		quarters[id] = -perLoser
	}
	for _, id := range winners {
		quarters[id] = pot / float64(len(winners))
	}

	e.logBet(BetConcede, "", e.wager.Current, e.wager.Current, fmt.Sprintf("team %d concedes", concedingTeam))
	return e.submitHole(quarters)
}

// submitHole validates quarters, writes the hole record, refolds standings,
// kicks off persistence and achievement checks, and advances to the next
// hole (or finishes an edit).
func (e *Engine) submitHole(quarters map[string]float64) error {
	if err := ValidateQuarters(quarters, e.players); err != nil {
		return err
	}

	q := make(map[string]float64, len(quarters))
	for id, v := range quarters {
		q[id] = v
	}
	gross := make(map[string]int, len(e.gross))
	for id, g := range e.gross {
		gross[id] = g
	}

	editing := e.editHole != 0
	var rec *HoleRecord
	if editing {
		prev := e.history.Get(e.editHole)
		rec = &HoleRecord{
			Hole:         prev.Hole,
			Teams:        prev.Teams,
			GrossScores:  gross,
			Quarters:     q,
			Wager:        prev.Wager,
			Phase:        prev.Phase,
			Order:        prev.Order,
			CaptainIndex: prev.CaptainIndex,
			Events:       prev.Events,
		}
	} else {
		order := make([]string, len(e.rotation.Order))
		copy(order, e.rotation.Order)
		rec = &HoleRecord{
			Hole:         e.hole,
			Teams:        e.teams.Snapshot(),
			GrossScores:  gross,
			Quarters:     q,
			Wager:        e.wager.Current,
			Phase:        e.rotation.Phase.String(),
			Order:        order,
			CaptainIndex: e.rotation.CaptainIndex,
			Events:       e.holeEvents,
		}
	}

	e.history.Submit(rec)
	e.standings = FoldStandings(e.history.Records(), e.players)
	e.recorder.RecordHole(e.cfg.RoundID, rec)

	ids := make([]string, len(e.players))
	for i, p := range e.players {
		ids[i] = p.ID
	}
	e.achievements.HoleSubmitted(e.cfg.RoundID, rec.Hole, ids)

	e.bus.Publish(HoleEndEvent{
		Hole:      rec.Hole,
		Wager:     rec.Wager,
		Quarters:  q,
		Tied:      rec.Tied(),
		timestamp: e.clock.Now(),
	})

	if editing {
		e.editHole = 0
		e.gross = e.liveGross
		e.liveGross = nil
		if e.history.Complete() {
			e.recorder.RoundComplete(e.cfg.RoundID)
		}
		return nil
	}

	tied := rec.Tied()
	if tied {
		e.wager.RecordTie()
	}
	e.wager.ResetForNextHole(tied)

	if e.hole >= 18 {
		e.complete = true
		e.recorder.RoundComplete(e.cfg.RoundID)
		e.logger.Info("round complete", "round", e.cfg.RoundID)
		return nil
	}

	e.hole++
	e.rotation.AdvanceCaptain()
	e.updatePhase()
	e.startHole()
	return nil
}

func (e *Engine) loadHoleForEdit(hole int) error {
	rec := e.history.Get(hole)
	if rec == nil {
		return fmt.Errorf("hole %d has not been recorded", hole)
	}
	if e.editHole == 0 {
		e.liveGross = e.gross
	}
	e.editHole = hole
	e.gross = make(map[string]int, len(rec.GrossScores))
	for id, g := range rec.GrossScores {
		e.gross[id] = g
	}
	return nil
}

func (e *Engine) publishWagerChange(before int, cause, actorID string) {
	e.bus.Publish(WagerChangeEvent{
		Hole:      e.hole,
		Before:    before,
		After:     e.wager.Current,
		Cause:     cause,
		ActorID:   actorID,
		timestamp: e.clock.Now(),
	})
}

// Snapshot is the full state returned from every dispatch.
type Snapshot struct {
	RoundID     string             `json:"roundId"`
	Hole        int                `json:"hole"`
	Complete    bool               `json:"complete"`
	EditingHole int                `json:"editingHole,omitempty"`
	Rotation    Rotation           `json:"rotation"`
	Teams       TeamsSnapshot      `json:"teams"`
	Betting     WagerSnapshot      `json:"betting"`
	Aardvark    *AardvarkState     `json:"aardvark,omitempty"`
	GrossScores map[string]int     `json:"grossScores"`
	Standings   []Standing         `json:"standings"`
	History     []*HoleRecord      `json:"history"`
	Events      []BettingEvent     `json:"events"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// Snapshot returns the current state without dispatching an action.
func (e *Engine) Snapshot() *Snapshot { return e.snapshot() }

func (e *Engine) snapshot() *Snapshot {
	teams := e.teams.Snapshot()

	standings := make([]Standing, 0, len(e.players))
	for _, p := range e.players {
		standings = append(standings, *e.standings[p.ID])
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Quarters > standings[j].Quarters
	})

	gross := make(map[string]int, len(e.gross))
	for id, g := range e.gross {
		gross[id] = g
	}

	num, den := 1, 1
	if e.wager.DuncanInvoked || e.teams.InvisibleAardvarkTossed ||
		(e.teams.Aardvark != nil && e.teams.Aardvark.Solo) {
		num, den = 3, 2
	}

	warnings := append([]string(nil), e.warnings...)
	warnings = append(warnings, e.recorder.Warnings()...)
	warnings = append(warnings, e.achievements.Warnings()...)

	return &Snapshot{
		RoundID:     e.cfg.RoundID,
		Hole:        e.hole,
		Complete:    e.complete,
		EditingHole: e.editHole,
		Rotation:    e.rotation.snapshot(),
		Teams:       teams,
		Betting: WagerSnapshot{
			Base:             e.wager.Base,
			NextHole:         e.wager.NextHole,
			Current:          e.wager.Current,
			CarryOver:        e.wager.CarryOver,
			VinniesVariation: e.wager.VinniesVariation,
			OptionActive:     e.wager.OptionActive,
			OptionOff:        e.wager.OptionOff,
			DuncanInvoked:    e.wager.DuncanInvoked,
			JoesSpecial:      e.wager.JoesSpecial,
			PayoutNum:        num,
			PayoutDen:        den,
			PendingOffer:     e.offers.Pending(),
		},
		Aardvark:    teams.Aardvark,
		GrossScores: gross,
		Standings:   standings,
		History:     e.history.Records(),
		Events:      append([]BettingEvent(nil), e.holeEvents...),
		Warnings:    warnings,
	}
}
