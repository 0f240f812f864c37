package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete server configuration.
type Config struct {
	Server  ServerSettings `hcl:"server,block"`
	Game    GameSettings   `hcl:"game,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings carries the round constants and collaborator endpoints.
// DoublePointsRound doubles the base wager for the whole round, the way
// groups play designated big days.
type GameSettings struct {
	BaseWager         int    `hcl:"base_wager,optional"`
	MaxCarryOvers     int    `hcl:"max_carry_overs,optional"`
	DoublePointsRound bool   `hcl:"double_points_round,optional"`
	CourseFile        string `hcl:"course_file"`
	Database          string `hcl:"database,optional"`
	AchievementURL    string `hcl:"achievement_url,optional"`
}

// PlayerConfig defines one player of the round.
type PlayerConfig struct {
	ID       string  `hcl:"id,label"`
	Name     string  `hcl:"name"`
	Handicap float64 `hcl:"handicap"`
	TeeOrder int     `hcl:"tee_order,optional"`
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: GameSettings{
			BaseWager:     1,
			MaxCarryOvers: 1,
			Database:      "wgp.db",
		},
	}
}

// LoadConfig loads configuration from an HCL file.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %s does not exist", filename)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values.
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Game.BaseWager == 0 {
		config.Game.BaseWager = 1
	}
	if config.Game.MaxCarryOvers == 0 {
		config.Game.MaxCarryOvers = 1
	}
	if config.Game.Database == "" {
		config.Game.Database = "wgp.db"
	}
	for i := range config.Players {
		if config.Players[i].TeeOrder == 0 {
			config.Players[i].TeeOrder = i + 1
		}
	}

	return &config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if len(c.Players) < 4 || len(c.Players) > 6 {
		return fmt.Errorf("wolf goat pig takes 4-6 players, got %d", len(c.Players))
	}
	seen := map[string]bool{}
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player %s: name is required", p.ID)
		}
		if p.Handicap < 0 || p.Handicap > 54 {
			return fmt.Errorf("player %s: handicap %.1f out of range", p.ID, p.Handicap)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate player id %s", p.ID)
		}
		seen[p.ID] = true
	}
	if c.Game.BaseWager <= 0 {
		return fmt.Errorf("base wager must be positive, got %d", c.Game.BaseWager)
	}
	if c.Game.CourseFile == "" {
		return fmt.Errorf("course_file is required")
	}
	return nil
}

// EffectiveBaseWager returns the base wager with the double-points-round
// multiplier applied.
func (c *Config) EffectiveBaseWager() int {
	if c.Game.DoublePointsRound {
		return c.Game.BaseWager * 2
	}
	return c.Game.BaseWager
}

// ListenAddress returns the full listen address.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
