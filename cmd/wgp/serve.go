package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"

	"github.com/stuagano/wolf-goat-pig-sub000/cmd/wgp/shared"
	"github.com/stuagano/wolf-goat-pig-sub000/internal/achieve"
	"github.com/stuagano/wolf-goat-pig-sub000/internal/course"
	"github.com/stuagano/wolf-goat-pig-sub000/internal/game"
	"github.com/stuagano/wolf-goat-pig-sub000/internal/roundid"
	"github.com/stuagano/wolf-goat-pig-sub000/internal/server"
	"github.com/stuagano/wolf-goat-pig-sub000/internal/store"
)

// ServeCmd runs one round behind the websocket dispatch surface.
type ServeCmd struct {
	Config string `short:"c" default:"wgp.hcl" help:"Path to the HCL config file"`
	Round  string `help:"Resume an existing round id instead of starting a new one"`
	Debug  bool   `short:"d" help:"Enable debug logging"`
}

func (cmd *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.Server.LogLevel
	if cmd.Debug {
		level = "debug"
	}
	logger := shared.SetupLogger(level)

	crs, courseWarnings, err := course.Load(cfg.Game.CourseFile)
	if err != nil {
		return err
	}
	for _, w := range courseWarnings {
		logger.Warn("course data", "warning", w)
	}

	players := make([]game.Player, len(cfg.Players))
	for i, p := range cfg.Players {
		players[i] = game.Player{ID: p.ID, Name: p.Name, Handicap: p.Handicap, TeeOrder: p.TeeOrder}
	}

	db, err := store.OpenSQLite(cfg.Game.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	recorder := store.NewAsyncRecorder(db, logger, quartz.NewReal())
	defer recorder.Close()

	opts := []game.Option{game.WithRecorder(recorder)}
	if cfg.Game.AchievementURL != "" {
		opts = append(opts, game.WithAchievements(achieve.NewWebhook(cfg.Game.AchievementURL, logger)))
	}

	id := cmd.Round
	if id == "" {
		id = roundid.New()
	} else if err := roundid.Validate(id); err != nil {
		return err
	}

	engine, err := game.NewEngine(game.Config{
		RoundID:       id,
		BaseWager:     cfg.EffectiveBaseWager(),
		MaxCarryOvers: cfg.Game.MaxCarryOvers,
	}, players, crs.Holes, logger, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(id, engine, logger).ListenAndServe(ctx, cfg.ListenAddress())
}
