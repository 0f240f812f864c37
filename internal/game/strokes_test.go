package game

import (
	"testing"

	"github.com/stuagano/wolf-goat-pig-sub000/internal/course"
)

// testHoles returns 18 holes where the stroke index equals the hole number,
// so hole 1 is the hardest and hole 18 the easiest.
func testHoles() []course.Hole {
	holes := make([]course.Hole, 18)
	for i := range holes {
		holes[i] = course.Hole{Number: i + 1, Par: 4, StrokeIndex: i + 1}
	}
	return holes
}

func fourPlayers(handicaps ...float64) []Player {
	names := []string{"ann", "bob", "cat", "dee", "eli", "fay"}
	players := make([]Player, len(handicaps))
	for i, h := range handicaps {
		players[i] = Player{ID: names[i], Name: names[i], Handicap: h, TeeOrder: i + 1}
	}
	return players
}

func TestAllocateStrokes_EqualHandicaps(t *testing.T) {
	t.Parallel()

	credits, warnings := AllocateStrokes(fourPlayers(10, 10, 10, 10), testHoles())
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	for id, perHole := range credits {
		for hole, credit := range perHole {
			if credit != 0 {
				t.Errorf("%s hole %d: expected 0 strokes, got %.1f", id, hole, credit)
			}
		}
	}
}

func TestAllocateStrokes_MixedGroup(t *testing.T) {
	t.Parallel()

	// Nets against the scratch player: 0, 8, 15, 24.
	credits, warnings := AllocateStrokes(fourPlayers(0, 8, 15, 24), testHoles())
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	for hole := 1; hole <= 18; hole++ {
		if c := credits["ann"][hole]; c != 0 {
			t.Errorf("scratch player hole %d: expected 0, got %.1f", hole, c)
		}
	}

	// Net 8: full strokes on the hardest two, halves on the next six.
	for hole := 1; hole <= 18; hole++ {
		want := 0.0
		switch {
		case hole <= 2:
			want = 1.0
		case hole <= 8:
			want = 0.5
		}
		if c := credits["bob"][hole]; c != want {
			t.Errorf("net 8 hole %d: expected %.1f, got %.1f", hole, want, c)
		}
	}

	// Net 15: full strokes on the hardest nine, halves on the easiest six of
	// the allocated fifteen.
	for hole := 1; hole <= 18; hole++ {
		want := 0.0
		switch {
		case hole <= 9:
			want = 1.0
		case hole <= 15:
			want = 0.5
		}
		if c := credits["cat"][hole]; c != want {
			t.Errorf("net 15 hole %d: expected %.1f, got %.1f", hole, want, c)
		}
	}

	// Net 24: base layer of 1.0 on the hardest twelve and 0.5 on the easiest
	// six, then six extra half strokes raise the hardest six to 1.5.
	for hole := 1; hole <= 18; hole++ {
		want := 0.5
		switch {
		case hole <= 6:
			want = 1.5
		case hole <= 12:
			want = 1.0
		}
		if c := credits["dee"][hole]; c != want {
			t.Errorf("net 24 hole %d: expected %.1f, got %.1f", hole, want, c)
		}
	}
	for hole := 1; hole <= 12; hole++ {
		if c := credits["dee"][hole]; c < 1.0 {
			t.Errorf("net 24 hole %d: hardest twelve must hold at least 1.0, got %.1f", hole, c)
		}
	}
}

func TestAllocateStrokes_HalfRemainder(t *testing.T) {
	t.Parallel()

	credits, _ := AllocateStrokes(fourPlayers(0, 4.5, 0, 0), testHoles())
	for hole := 1; hole <= 18; hole++ {
		want := 0.0
		if hole <= 5 {
			want = 0.5
		}
		if c := credits["bob"][hole]; c != want {
			t.Errorf("net 4.5 hole %d: expected %.1f, got %.1f", hole, want, c)
		}
	}
}

func TestAllocateStrokes_Cap(t *testing.T) {
	t.Parallel()

	// A net of 54 would push past the cap; no hole may exceed 2.0.
	credits, _ := AllocateStrokes(fourPlayers(0, 54, 0, 0), testHoles())
	for hole := 1; hole <= 18; hole++ {
		if c := credits["bob"][hole]; c > maxStrokesPerHole {
			t.Errorf("hole %d exceeds cap: %.1f", hole, c)
		}
	}
}

func TestAllocateStrokes_MissingStrokeIndex(t *testing.T) {
	t.Parallel()

	holes := testHoles()
	holes[6].StrokeIndex = 0

	credits, warnings := AllocateStrokes(fourPlayers(0, 18, 0, 0), holes)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if c := credits["bob"][7]; c != 0 {
		t.Errorf("hole without stroke index must allocate 0, got %.1f", c)
	}
}

func TestNetScore(t *testing.T) {
	t.Parallel()

	if got := NetScore(5, 1.5); got != 3.5 {
		t.Errorf("expected 3.5, got %.1f", got)
	}
	if got := NetScore(4, 0); got != 4.0 {
		t.Errorf("expected 4.0, got %.1f", got)
	}
}
