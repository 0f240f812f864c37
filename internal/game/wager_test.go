package game

import "testing"

func TestWager_StartHoleComposition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		carryOver bool
		variation bool
		option    bool
		want      int
	}{
		{"plain", false, false, false, 1},
		{"carry-over", true, false, false, 2},
		{"variation", false, true, false, 2},
		{"option", false, false, true, 2},
		{"carry-over and variation", true, true, false, 4},
		{"all three", true, true, true, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWager(1, 1)
			if tt.carryOver {
				w.RecordTie()
			}
			w.StartHole(tt.option, tt.variation)
			if w.Current != tt.want {
				t.Errorf("expected opening wager %d, got %d", tt.want, w.Current)
			}
		})
	}
}

func TestWager_JoesSpecialOverridesMultipliers(t *testing.T) {
	t.Parallel()

	w := NewWager(1, 1)
	w.RecordTie()
	if err := w.SetJoesSpecial(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Carry-over and variation are overridden; the option still doubles.
	w.StartHole(false, true)
	if w.Current != 4 {
		t.Errorf("expected 4, got %d", w.Current)
	}
	w.StartHole(true, true)
	if w.Current != 8 {
		t.Errorf("expected 8 with the option, got %d", w.Current)
	}
}

func TestWager_JoesSpecialMenu(t *testing.T) {
	t.Parallel()

	w := NewWager(1, 1)
	for _, q := range JoesSpecialMenu {
		if err := w.SetJoesSpecial(q); err != nil {
			t.Errorf("menu value %d rejected: %v", q, err)
		}
	}

	err := w.SetJoesSpecial(3)
	werr, ok := err.(*InvalidWagerError)
	if !ok {
		t.Fatalf("expected InvalidWagerError, got %v", err)
	}
	if werr.Requested != 3 {
		t.Errorf("expected requested 3, got %d", werr.Requested)
	}
}

func TestWager_TurnOffOption(t *testing.T) {
	t.Parallel()

	w := NewWager(1, 1)
	w.StartHole(false, false)
	if err := w.TurnOffOption(); err != ErrOptionNotActive {
		t.Fatalf("expected ErrOptionNotActive, got %v", err)
	}

	w.StartHole(true, false)
	if w.Current != 2 {
		t.Fatalf("expected 2 with the option on, got %d", w.Current)
	}
	if err := w.TurnOffOption(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Current != 1 {
		t.Errorf("expected the stake back to 1, got %d", w.Current)
	}
	if err := w.TurnOffOption(); err != ErrOptionTurnedOff {
		t.Errorf("expected ErrOptionTurnedOff on the second call, got %v", err)
	}
}

func TestWager_CarryOverCap(t *testing.T) {
	t.Parallel()

	w := NewWager(1, 1)

	// First tie carries.
	w.RecordTie()
	w.ResetForNextHole(true)
	w.StartHole(false, false)
	if w.Current != 2 {
		t.Fatalf("expected the carried hole at 2, got %d", w.Current)
	}

	// Second consecutive tie hits the cap: no further compounding.
	w.RecordTie()
	w.ResetForNextHole(true)
	w.StartHole(false, false)
	if w.Current != 1 {
		t.Errorf("expected the cap to stop compounding, got %d", w.Current)
	}

	// A decided hole resets the chain, so the next tie carries again.
	w.ResetForNextHole(false)
	w.RecordTie()
	w.ResetForNextHole(true)
	w.StartHole(false, false)
	if w.Current != 2 {
		t.Errorf("expected a fresh carry-over after a decided hole, got %d", w.Current)
	}
}

func TestWager_DoubleAndReset(t *testing.T) {
	t.Parallel()

	w := NewWager(2, 1)
	w.StartHole(false, false)
	w.Double()
	w.Double()
	if w.Current != 8 {
		t.Fatalf("expected 8 after two doubles, got %d", w.Current)
	}

	w.ResetForNextHole(false)
	w.StartHole(false, false)
	if w.Current != 2 {
		t.Errorf("expected the base back on the next hole, got %d", w.Current)
	}
}
