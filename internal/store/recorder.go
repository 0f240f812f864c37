package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/stuagano/wolf-goat-pig-sub000/internal/game"
)

const commandBuffer = 64

// writeTimeout bounds a single store write so one stuck write cannot wedge
// the drain loop.
const writeTimeout = 10 * time.Second

type commandKind int

const (
	cmdSaveHole commandKind = iota
	cmdMarkComplete
)

type command struct {
	kind    commandKind
	roundID string
	rec     *game.HoleRecord
	at      time.Time
}

// AsyncRecorder implements game.Recorder over a Store. Writes are applied
// optimistically by the engine; the recorder drains a command log in the
// background and collects failures as warnings. Nothing is retried and
// nothing rolls back; reconciliation belongs to the operator.
type AsyncRecorder struct {
	store  Store
	logger *log.Logger
	clock  quartz.Clock

	commands chan command
	group    *errgroup.Group

	mu       sync.Mutex
	failures []string
}

// NewAsyncRecorder starts the background drain worker.
func NewAsyncRecorder(s Store, logger *log.Logger, clock quartz.Clock) *AsyncRecorder {
	r := &AsyncRecorder{
		store:    s,
		logger:   logger.WithPrefix("store"),
		clock:    clock,
		commands: make(chan command, commandBuffer),
		group:    &errgroup.Group{},
	}
	r.group.Go(r.drain)
	return r
}

func (r *AsyncRecorder) drain() error {
	for cmd := range r.commands {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		var err error
		switch cmd.kind {
		case cmdSaveHole:
			err = r.store.SaveHole(ctx, cmd.roundID, cmd.rec)
		case cmdMarkComplete:
			err = r.store.MarkComplete(ctx, cmd.roundID)
		}
		cancel()

		if err != nil {
			r.recordFailure(cmd, err)
		}
	}
	return nil
}

func (r *AsyncRecorder) recordFailure(cmd command, err error) {
	var msg string
	if cmd.kind == cmdSaveHole {
		msg = fmt.Sprintf("failed to persist hole %d: %v", cmd.rec.Hole, err)
	} else {
		msg = fmt.Sprintf("failed to mark round %s complete: %v", cmd.roundID, err)
	}
	r.logger.Error("persistence failure", "round", cmd.roundID, "error", err)

	r.mu.Lock()
	r.failures = append(r.failures, msg)
	r.mu.Unlock()
}

// RecordHole enqueues a hole write without blocking play.
func (r *AsyncRecorder) RecordHole(roundID string, rec *game.HoleRecord) {
	r.enqueue(command{kind: cmdSaveHole, roundID: roundID, rec: rec, at: r.clock.Now()})
}

// RoundComplete enqueues the completion flag write.
func (r *AsyncRecorder) RoundComplete(roundID string) {
	r.enqueue(command{kind: cmdMarkComplete, roundID: roundID, at: r.clock.Now()})
}

func (r *AsyncRecorder) enqueue(cmd command) {
	select {
	case r.commands <- cmd:
	default:
		// Dropping is preferable to blocking the rules engine; the drop is
		// still surfaced as a warning.
		r.recordFailure(cmd, fmt.Errorf("command log full"))
	}
}

// Warnings returns the accumulated persistence failures.
func (r *AsyncRecorder) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failures...)
}

// Close drains outstanding commands and stops the worker.
func (r *AsyncRecorder) Close() error {
	close(r.commands)
	return r.group.Wait()
}
