package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// @title VibeTrack API
// @version 1.0
// @description Daily energy journal: entries, streaks, heatmap, trends and AI comments.

// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("vibetrack failed")
	}
}

func newApp() *cli.App {
	rt := &state{}
	return &cli.App{
		Name:  "vibetrack",
		Usage: "daily energy journal server and tools",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.env",
				Usage:   "env file to load before reading the environment",
				EnvVars: []string{"VIBETRACK_CONFIG"},
			},
		},
		Before:         rt.load,
		After:          rt.close,
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(rt),
			migrateCommand(rt),
			exportCommand(rt),
			heatmapCommand(rt),
			trendsCommand(rt),
			streakCommand(rt),
		},
	}
}
