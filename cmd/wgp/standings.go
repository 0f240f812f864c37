package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/stuagano/wolf-goat-pig-sub000/internal/game"
	"github.com/stuagano/wolf-goat-pig-sub000/internal/roundid"
	"github.com/stuagano/wolf-goat-pig-sub000/internal/server"
	"github.com/stuagano/wolf-goat-pig-sub000/internal/store"
)

// StandingsCmd refolds a stored round from the hole ledger and prints
// standings. Standings are always recomputed from history, never read back
// from a cached total.
type StandingsCmd struct {
	Config string `short:"c" default:"wgp.hcl" help:"Path to the HCL config file"`
	Round  string `arg:"" help:"Round id to fold"`
	Export string `help:"Also write the full hole history as JSON to this path"`
}

func (cmd *StandingsCmd) Run() error {
	if err := roundid.Validate(cmd.Round); err != nil {
		return err
	}

	cfg, err := server.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := store.OpenSQLite(cfg.Game.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.LoadRound(context.Background(), cmd.Round)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no holes recorded for round %s", cmd.Round)
	}

	players := make([]game.Player, len(cfg.Players))
	for i, p := range cfg.Players {
		players[i] = game.Player{ID: p.ID, Name: p.Name, Handicap: p.Handicap, TeeOrder: p.TeeOrder}
	}
	byID := map[string]game.Player{}
	for _, p := range players {
		byID[p.ID] = p
	}

	standings := game.FoldStandings(records, players)

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-12s %9s %6s %7s %7s", "Player", "Quarters", "Solos", "Floats", "Options")))
	for _, p := range players {
		s := standings[p.ID]
		line := fmt.Sprintf("%-12s %+9.2f %6d %7d %7d", byID[s.PlayerID].Name, s.Quarters, s.SoloCount, s.FloatCount, s.OptionCount)
		if s.Quarters < 0 {
			fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(line))
		} else {
			fmt.Println(line)
		}
	}
	fmt.Printf("%d of 18 holes recorded\n", len(records))

	if cmd.Export != "" {
		if err := store.WriteRoundExport(cmd.Export, cmd.Round, records); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", cmd.Export)
	}
	return nil
}
