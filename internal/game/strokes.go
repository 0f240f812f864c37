package game

import (
	"fmt"
	"sort"

	"github.com/stuagano/wolf-goat-pig-sub000/internal/course"
)

// maxStrokesPerHole caps what any player can receive on one hole.
const maxStrokesPerHole = 2.0

// AllocateStrokes computes per-player, per-hole stroke credits using the
// Creecher Feature. Handicaps are first netted against the lowest handicap
// in the group, then:
//
//   - net <= 6: the net-many hardest holes each get a half stroke
//   - 6 < net <= 18: the net-many hardest holes get a full stroke, except
//     the easiest six of the allocated set, which get half
//   - net > 18: the hardest twelve get 1.0 and the easiest six 0.5, and
//     each net stroke beyond 18 adds a half-stroke increment, filling the
//     hardest twelve to 1.5 before spilling to the easiest six, capped at
//     2.0 per hole
//
// A fractional net remainder of at least 0.5 adds one more half stroke to
// the next unallocated hole in difficulty order.
//
// Holes without usable stroke-index data receive 0 for everyone; they are
// reported in the returned warnings rather than failing the allocation.
func AllocateStrokes(players []Player, holes []course.Hole) (map[string]map[int]float64, []string) {
	var warnings []string

	// Difficulty order over holes with a valid stroke index.
	var order []course.Hole
	for _, h := range holes {
		if h.StrokeIndex < 1 || h.StrokeIndex > 18 {
			warnings = append(warnings, fmt.Sprintf("hole %d has no usable stroke index, allocating 0 strokes", h.Number))
			continue
		}
		order = append(order, h)
	}
	sort.Slice(order, func(i, j int) bool { return order[i].StrokeIndex < order[j].StrokeIndex })

	minHandicap := 0.0
	for i, p := range players {
		if i == 0 || p.Handicap < minHandicap {
			minHandicap = p.Handicap
		}
	}

	credits := make(map[string]map[int]float64, len(players))
	for _, p := range players {
		perHole := make(map[int]float64, len(holes))
		for _, h := range holes {
			perHole[h.Number] = 0
		}
		allocateForNet(p.Handicap-minHandicap, order, perHole)
		credits[p.ID] = perHole
	}

	return credits, warnings
}

func allocateForNet(net float64, order []course.Hole, perHole map[int]float64) {
	if net <= 0 || len(order) == 0 {
		return
	}

	whole := int(net)
	halfRemainder := net-float64(whole) >= 0.5

	switch {
	case net <= 6:
		for i := 0; i < whole && i < len(order); i++ {
			perHole[order[i].Number] = 0.5
		}
		if halfRemainder && whole < len(order) {
			perHole[order[whole].Number] = 0.5
		}

	case net <= 18:
		for i := 0; i < whole && i < len(order); i++ {
			if i < whole-6 {
				perHole[order[i].Number] = 1.0
			} else {
				perHole[order[i].Number] = 0.5
			}
		}
		if halfRemainder && whole < len(order) {
			perHole[order[whole].Number] = 0.5
		}

	default:
		for i, h := range order {
			if i < 12 {
				perHole[h.Number] = 1.0
			} else {
				perHole[h.Number] = 0.5
			}
		}

		increments := whole - 18
		if halfRemainder {
			increments++
		}
		applyExtraIncrements(increments, order, perHole)
	}
}

// applyExtraIncrements distributes half-stroke increments beyond a net of
// 18: the hardest twelve fill to 1.5 first, then the easiest six to 1.0,
// then everything up to the 2.0 cap in difficulty order.
func applyExtraIncrements(increments int, order []course.Hole, perHole map[int]float64) {
	hard := order
	if len(order) > 12 {
		hard = order[:12]
	}
	var easy []course.Hole
	if len(order) > 12 {
		easy = order[12:]
	}

	stages := []struct {
		holes []course.Hole
		limit float64
	}{
		{hard, 1.5},
		{easy, 1.0},
		{hard, maxStrokesPerHole},
		{easy, maxStrokesPerHole},
	}

	for _, stage := range stages {
		for _, h := range stage.holes {
			if increments <= 0 {
				return
			}
			if perHole[h.Number] < stage.limit {
				perHole[h.Number] += 0.5
				increments--
			}
		}
	}
}

// NetScore subtracts a player's stroke credit on a hole from their gross
// score.
func NetScore(gross int, credit float64) float64 {
	return float64(gross) - credit
}
