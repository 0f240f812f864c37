// Package achieve notifies an external achievement service after each hole
// submit. Calls are fire-and-forget: failures become warnings on the next
// snapshot and never block play.
package achieve

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Webhook posts one check per player per submitted hole.
type Webhook struct {
	url    string
	client *http.Client
	logger *log.Logger

	wg sync.WaitGroup

	mu       sync.Mutex
	failures []string
}

type checkPayload struct {
	RoundID  string `json:"roundId"`
	PlayerID string `json:"playerId"`
	Hole     int    `json:"hole"`
}

// NewWebhook creates a checker posting to url.
func NewWebhook(url string, logger *log.Logger) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		logger: logger.WithPrefix("achieve"),
	}
}

// HoleSubmitted fires one check per player and returns immediately.
func (w *Webhook) HoleSubmitted(roundID string, hole int, playerIDs []string) {
	for _, playerID := range playerIDs {
		w.wg.Add(1)
		go func(playerID string) {
			defer w.wg.Done()
			if err := w.post(checkPayload{RoundID: roundID, PlayerID: playerID, Hole: hole}); err != nil {
				w.logger.Warn("achievement check failed", "player", playerID, "hole", hole, "error", err)
				w.mu.Lock()
				w.failures = append(w.failures, fmt.Sprintf("achievement check failed for %s on hole %d: %v", playerID, hole, err))
				w.mu.Unlock()
			}
		}(playerID)
	}
}

func (w *Webhook) post(payload checkPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := w.client.Post(w.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Warnings returns the accumulated non-fatal failures.
func (w *Webhook) Warnings() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.failures...)
}

// Wait blocks until in-flight checks finish. Used in tests and shutdown.
func (w *Webhook) Wait() {
	w.wg.Wait()
}
