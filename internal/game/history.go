package game

import "sort"

// HoleRecord is the durable result of one hole. Records are created on
// submit, replaced in place on edit, and never deleted.
type HoleRecord struct {
	Hole         int                `json:"hole"`
	Teams        TeamsSnapshot      `json:"teams"`
	GrossScores  map[string]int     `json:"grossScores"`
	Quarters     map[string]float64 `json:"quarters"`
	Wager        int                `json:"wager"`
	Phase        string             `json:"phase"`
	Order        []string           `json:"order"`
	CaptainIndex int                `json:"captainIndex"`
	Events       []BettingEvent     `json:"events"`
}

// Tied reports whether the hole ended with no quarters changing hands.
func (r *HoleRecord) Tied() bool {
	for _, q := range r.Quarters {
		if q != 0 {
			return false
		}
	}
	return true
}

// History is the append/edit-in-place ledger of completed holes and the
// single source of truth standings are recomputed from.
type History struct {
	records map[int]*HoleRecord
}

// NewHistory creates an empty ledger.
func NewHistory() *History {
	return &History{records: map[int]*HoleRecord{}}
}

// Submit appends a record, or replaces the existing record for the same
// hole when editing.
func (h *History) Submit(rec *HoleRecord) {
	h.records[rec.Hole] = rec
}

// Get returns the record for a hole, or nil.
func (h *History) Get(hole int) *HoleRecord {
	return h.records[hole]
}

// Records returns all records ordered by hole number.
func (h *History) Records() []*HoleRecord {
	out := make([]*HoleRecord, 0, len(h.records))
	for _, rec := range h.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hole < out[j].Hole })
	return out
}

// Len returns the number of recorded holes.
func (h *History) Len() int {
	return len(h.records)
}

// Complete reports whether all 18 holes are recorded.
func (h *History) Complete() bool {
	for n := 1; n <= 18; n++ {
		if h.records[n] == nil {
			return false
		}
	}
	return true
}
