package course

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCourseFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "course.hcl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write course file: %v", err)
	}
	return path
}

func fullCourse() string {
	var b strings.Builder
	b.WriteString("course \"wing-point\" {\n")
	for n := 1; n <= 18; n++ {
		fmt.Fprintf(&b, "  hole {\n    number = %d\n    par = 4\n    stroke_index = %d\n  }\n", n, 19-n)
	}
	b.WriteString("}\n")
	return b.String()
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeCourseFile(t, fullCourse())
	c, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if c.Name != "wing-point" {
		t.Errorf("expected wing-point, got %s", c.Name)
	}
	if len(c.Holes) != 18 {
		t.Fatalf("expected 18 holes, got %d", len(c.Holes))
	}

	h, ok := c.Hole(1)
	if !ok {
		t.Fatal("hole 1 missing")
	}
	if h.StrokeIndex != 18 {
		t.Errorf("expected hole 1 stroke index 18, got %d", h.StrokeIndex)
	}
	if _, ok := c.Hole(19); ok {
		t.Error("hole 19 should not exist")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.hcl")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoad_NoCourseBlock(t *testing.T) {
	t.Parallel()

	path := writeCourseFile(t, "")
	if _, _, err := Load(path); err == nil {
		t.Error("expected an error for an empty course file")
	}
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	c := &Course{
		Name: "broken",
		Holes: []Hole{
			{Number: 1, Par: 4, StrokeIndex: 1},
			{Number: 1, Par: 4, StrokeIndex: 1},
			{Number: 2, Par: 3, StrokeIndex: 99},
		},
	}

	warnings := c.Validate()

	var dupHole, dupIndex, badIndex, missing bool
	for _, w := range warnings {
		switch {
		case strings.Contains(w, "duplicate hole 1"):
			dupHole = true
		case strings.Contains(w, "share stroke index 1"):
			dupIndex = true
		case strings.Contains(w, "invalid stroke index 99"):
			badIndex = true
		case strings.Contains(w, "hole 3 missing"):
			missing = true
		}
	}
	if !dupHole {
		t.Error("expected a duplicate-hole warning")
	}
	if !dupIndex {
		t.Error("expected a shared stroke index warning")
	}
	if !badIndex {
		t.Error("expected an invalid stroke index warning")
	}
	if !missing {
		t.Error("expected a missing-hole warning")
	}
}

func TestValidate_FailSoft(t *testing.T) {
	t.Parallel()

	// A course with gaps still loads; it only warns.
	content := `course "nine" {
  hole {
    number = 1
    par = 4
    stroke_index = 1
  }
}`
	path := writeCourseFile(t, content)
	c, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == nil || len(c.Holes) != 1 {
		t.Fatal("expected the course to load despite gaps")
	}
	if len(warnings) != 17 {
		t.Errorf("expected 17 missing-hole warnings, got %d: %v", len(warnings), warnings)
	}
}
