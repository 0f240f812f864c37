package server

import (
	"os"
	"path/filepath"
	"testing"
)

const validConfig = `
server {
  address = "0.0.0.0"
  port    = 9000
}

game {
  course_file = "course.hcl"
  base_wager  = 2
}

player "ann" {
  name     = "Ann"
  handicap = 4.5
}

player "bob" {
  name     = "Bob"
  handicap = 12
}

player "cat" {
  name     = "Cat"
  handicap = 18
}

player "dee" {
  name      = "Dee"
  handicap  = 24
  tee_order = 1
}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wgp.hcl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.ListenAddress() != "0.0.0.0:9000" {
		t.Errorf("unexpected listen address %s", cfg.ListenAddress())
	}

	// Defaults fill in what the file omits.
	if cfg.Server.LogLevel != "info" {
		t.Errorf("expected default log level, got %s", cfg.Server.LogLevel)
	}
	if cfg.Game.MaxCarryOvers != 1 {
		t.Errorf("expected default max carry-overs 1, got %d", cfg.Game.MaxCarryOvers)
	}
	if cfg.Game.Database != "wgp.db" {
		t.Errorf("expected default database, got %s", cfg.Game.Database)
	}
	if cfg.EffectiveBaseWager() != 2 {
		t.Errorf("expected base wager 2, got %d", cfg.EffectiveBaseWager())
	}
	cfg.Game.DoublePointsRound = true
	if cfg.EffectiveBaseWager() != 4 {
		t.Errorf("expected a double-points round to double the base, got %d", cfg.EffectiveBaseWager())
	}
	cfg.Game.DoublePointsRound = false

	// Tee order defaults to file order where unset; explicit values stand.
	if cfg.Players[0].TeeOrder != 1 || cfg.Players[1].TeeOrder != 2 {
		t.Error("expected tee order to default to file order")
	}
	if cfg.Players[3].TeeOrder != 1 {
		t.Errorf("explicit tee order overridden: %d", cfg.Players[3].TeeOrder)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl")); err == nil {
		t.Error("expected an error for a missing config")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	base := func() *Config {
		cfg, err := LoadConfig(writeConfig(t, validConfig))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"too few players", func(c *Config) { c.Players = c.Players[:2] }},
		{"missing name", func(c *Config) { c.Players[0].Name = "" }},
		{"handicap out of range", func(c *Config) { c.Players[1].Handicap = 80 }},
		{"duplicate id", func(c *Config) { c.Players[1].ID = c.Players[0].ID }},
		{"negative base wager", func(c *Config) { c.Game.BaseWager = -1 }},
		{"missing course file", func(c *Config) { c.Game.CourseFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
