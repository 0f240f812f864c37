// Package course loads course data files and exposes the per-hole stroke
// index table the stroke allocator consumes.
package course

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Hole describes a single hole of a course. StrokeIndex ranks difficulty,
// 1 being the hardest hole on the course.
type Hole struct {
	Number      int `hcl:"number"`
	Par         int `hcl:"par"`
	StrokeIndex int `hcl:"stroke_index"`
	Yards       int `hcl:"yards,optional"`
}

// Course is an 18-hole course definition.
type Course struct {
	Name  string `hcl:"name,label"`
	Holes []Hole `hcl:"hole,block"`
}

type courseFile struct {
	Courses []Course `hcl:"course,block"`
}

// Load reads the first course block from an HCL course file. Validation
// problems are returned as warnings, not errors: a course with gaps is
// still playable, the allocator just credits no strokes on the bad holes.
func Load(filename string) (*Course, []string, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, nil, fmt.Errorf("course file %s: %w", filename, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to parse course file: %s", diags.Error())
	}

	var cf courseFile
	diags = gohcl.DecodeBody(file.Body, nil, &cf)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to decode course file: %s", diags.Error())
	}
	if len(cf.Courses) == 0 {
		return nil, nil, fmt.Errorf("course file %s contains no course block", filename)
	}

	c := cf.Courses[0]
	return &c, c.Validate(), nil
}

// Hole returns the hole with the given number.
func (c *Course) Hole(number int) (Hole, bool) {
	for _, h := range c.Holes {
		if h.Number == number {
			return h, true
		}
	}
	return Hole{}, false
}

// Validate checks the course for completeness. Stroke indexes should form a
// permutation of 1..18; anything else is reported as a warning per hole so
// the caller can surface it without refusing to start the round.
func (c *Course) Validate() []string {
	var warnings []string

	seen := map[int]int{} // stroke index -> hole number
	byNumber := map[int]bool{}

	for _, h := range c.Holes {
		if byNumber[h.Number] {
			warnings = append(warnings, fmt.Sprintf("course %s: duplicate hole %d", c.Name, h.Number))
		}
		byNumber[h.Number] = true

		if h.StrokeIndex < 1 || h.StrokeIndex > 18 {
			warnings = append(warnings, fmt.Sprintf("course %s: hole %d has invalid stroke index %d", c.Name, h.Number, h.StrokeIndex))
			continue
		}
		if prev, dup := seen[h.StrokeIndex]; dup {
			warnings = append(warnings, fmt.Sprintf("course %s: holes %d and %d share stroke index %d", c.Name, prev, h.Number, h.StrokeIndex))
		}
		seen[h.StrokeIndex] = h.Number
	}

	var missing []int
	for n := 1; n <= 18; n++ {
		if !byNumber[n] {
			missing = append(missing, n)
		}
	}
	sort.Ints(missing)
	for _, n := range missing {
		warnings = append(warnings, fmt.Sprintf("course %s: hole %d missing, no strokes will be allocated for it", c.Name, n))
	}

	return warnings
}
