package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stuagano/wolf-goat-pig-sub000/internal/course"
	"github.com/stuagano/wolf-goat-pig-sub000/internal/game"
	"github.com/stuagano/wolf-goat-pig-sub000/internal/server"
)

// StrokesCmd prints the Creecher allocation for the configured group.
type StrokesCmd struct {
	Config string `short:"c" default:"wgp.hcl" help:"Path to the HCL config file"`
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	creditStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func (cmd *StrokesCmd) Run() error {
	cfg, err := server.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	crs, warnings, err := course.Load(cfg.Game.CourseFile)
	if err != nil {
		return err
	}

	players := make([]game.Player, len(cfg.Players))
	for i, p := range cfg.Players {
		players[i] = game.Player{ID: p.ID, Name: p.Name, Handicap: p.Handicap, TeeOrder: p.TeeOrder}
	}

	credits, allocWarnings := game.AllocateStrokes(players, crs.Holes)
	warnings = append(warnings, allocWarnings...)

	holes := append([]course.Hole(nil), crs.Holes...)
	sort.Slice(holes, func(i, j int) bool { return holes[i].Number < holes[j].Number })

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-4s", "Hole", "SI")))
	for _, p := range players {
		b.WriteString(headerStyle.Render(fmt.Sprintf(" %10s", p.Name)))
	}
	b.WriteString("\n")

	for _, h := range holes {
		b.WriteString(fmt.Sprintf("%-6d %-4d", h.Number, h.StrokeIndex))
		for _, p := range players {
			credit := credits[p.ID][h.Number]
			cell := fmt.Sprintf(" %10.1f", credit)
			if credit > 0 {
				b.WriteString(creditStyle.Render(cell))
			} else {
				b.WriteString(dimStyle.Render(cell))
			}
		}
		b.WriteString("\n")
	}

	fmt.Print(b.String())

	for _, w := range warnings {
		fmt.Println(dimStyle.Render("warning: " + w))
	}
	return nil
}
