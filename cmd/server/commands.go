package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/aebalz/vibetrack/docs"
	"github.com/aebalz/vibetrack/internal/analytics"
	"github.com/aebalz/vibetrack/internal/app"
	"github.com/aebalz/vibetrack/internal/config"
	"github.com/aebalz/vibetrack/internal/logger"
	"github.com/aebalz/vibetrack/internal/render"
	"github.com/aebalz/vibetrack/internal/service"
	"github.com/aebalz/vibetrack/pkg/database"
	fiberserver "github.com/aebalz/vibetrack/pkg/fiber"
	ginserver "github.com/aebalz/vibetrack/pkg/gin"
)

// state is what the commands share: the configuration, the logger and a
// lazily opened database.
type state struct {
	cfg *config.AppConfig
	log zerolog.Logger
	db  *gorm.DB
	out io.Writer
}

func (s *state) load(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	s.cfg = cfg
	s.log = logger.New(cfg.LogLevel, cfg.AppEnv, os.Stderr)
	zlog.Logger = s.log
	if s.out == nil {
		s.out = c.App.Writer
	}

	docs.SwaggerInfo.Host = cfg.SwaggerHost
	docs.SwaggerInfo.BasePath = cfg.SwaggerBasePath
	docs.SwaggerInfo.Schemes = cfg.SwaggerSchemes
	docs.SwaggerInfo.Title = cfg.AppName + " API"
	return nil
}

func (s *state) open() (*gorm.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := database.ConnectDB(s.cfg, s.log)
	if err != nil {
		return nil, err
	}
	s.db = db
	return db, nil
}

func (s *state) close(*cli.Context) error {
	if s.db == nil {
		return nil
	}
	if err := database.CloseDB(s.db); err != nil {
		s.log.Error().Err(err).Msg("error closing database")
		return err
	}
	s.log.Info().Msg("database connection closed")
	return nil
}

// wire opens the database and builds the application graph.
func (s *state) wire(c *cli.Context) (*app.App, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	return app.New(c.Context, s.cfg, db, s.log)
}

func serveCommand(s *state) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "skip-migrations", Usage: "do not apply pending migrations on start"},
		},
		Action: func(c *cli.Context) error {
			db, err := s.open()
			if err != nil {
				return err
			}
			if !c.Bool("skip-migrations") {
				if err := database.Migrate(c.Context, db, "up"); err != nil {
					return err
				}
			}

			a, err := app.New(c.Context, s.cfg, db, s.log)
			if err != nil {
				return err
			}
			go a.Limiter.Run(c.Context)

			s.log.Info().Str("framework", s.cfg.ServerFramework).Str("env", s.cfg.AppEnv).Msg("starting server")
			switch s.cfg.ServerFramework {
			case "gin":
				router := ginserver.NewGinServer(s.cfg, a.Handler, a.Limiter, s.log)
				err = ginserver.Run(c.Context, router, s.cfg, s.log)
			default:
				fiberApp := fiberserver.NewFiberServer(s.cfg, a.Handler, a.Limiter, s.log)
				err = fiberserver.Run(c.Context, fiberApp, s.cfg, s.log)
			}
			if err != nil {
				return err
			}
			s.log.Info().Msg("server gracefully stopped")
			return nil
		},
	}
}

func migrateCommand(s *state) *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "run database migrations",
		ArgsUsage: "[up|down|status|version|redo|reset] [args...]",
		Action: func(c *cli.Context) error {
			command := "up"
			var args []string
			if c.Args().Present() {
				command = c.Args().First()
				args = c.Args().Tail()
			}
			db, err := s.open()
			if err != nil {
				return err
			}
			if err := database.Migrate(c.Context, db, command, args...); err != nil {
				return err
			}
			s.log.Info().Str("command", command).Msg("migrations done")
			return nil
		},
	}
}

func exportCommand(s *state) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write every entry as csv or json",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "csv", Usage: "csv or json"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "-", Usage: "output file, - for stdout"},
		},
		Action: func(c *cli.Context) error {
			a, err := s.wire(c)
			if err != nil {
				return err
			}
			data, _, err := a.Entries.Export(c.Context, c.String("format"))
			if err != nil {
				return err
			}

			if path := c.String("out"); path != "-" {
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				s.log.Info().Str("file", path).Int("bytes", len(data)).Msg("entries exported")
				return nil
			}
			_, err = s.out.Write(data)
			return err
		},
	}
}

func heatmapCommand(s *state) *cli.Command {
	return &cli.Command{
		Name:  "heatmap",
		Usage: "draw the yearly energy heatmap",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Usage: "year to draw, defaults to the current one"},
		},
		Action: func(c *cli.Context) error {
			year := c.Int("year")
			if year == 0 {
				year = time.Now().Year()
			}

			hm := analytics.BinYear(year, nil)
			if a, err := s.wire(c); err != nil {
				s.log.Error().Err(err).Msg("failed to load entries")
			} else if hm, err = loadOrEmpty(s, hm, func() (analytics.Heatmap, error) {
				return a.Analytics.Heatmap(c.Context, year)
			}); err != nil {
				return err
			}

			_, err := fmt.Fprintln(s.out, render.New(s.out).Heatmap(hm))
			return err
		},
	}
}

func trendsCommand(s *state) *cli.Command {
	return &cli.Command{
		Name:  "trends",
		Usage: "draw the energy trend of a week, month or year",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "timeframe", Aliases: []string{"t"}, Value: "week", Usage: "week, month or year"},
			&cli.StringFlag{Name: "ref", Usage: "reference day, defaults to today"},
			&cli.IntFlag{Name: "step", Usage: "windows to move from ref, negative is back"},
			&cli.IntFlag{Name: "width", Value: render.DefaultBarWidth, Usage: "width of a full bar"},
		},
		Action: func(c *cli.Context) error {
			tf, err := analytics.ParseTimeframe(c.String("timeframe"))
			if err != nil {
				return err
			}
			empty, err := analytics.Aggregate(tf, time.Now(), nil)
			if err != nil {
				return err
			}

			tr := empty
			if a, err := s.wire(c); err != nil {
				s.log.Error().Err(err).Msg("failed to load entries")
			} else if tr, err = loadOrEmpty(s, empty, func() (analytics.Trend, error) {
				return a.Analytics.Trend(c.Context, c.String("timeframe"), c.String("ref"), c.Int("step"))
			}); err != nil {
				return err
			}

			_, err = fmt.Fprintln(s.out, render.New(s.out).Trend(tr, c.Int("width")))
			return err
		},
	}
}

func streakCommand(s *state) *cli.Command {
	return &cli.Command{
		Name:  "streak",
		Usage: "show the current and longest streak",
		Action: func(c *cli.Context) error {
			var stats analytics.Stats
			if a, err := s.wire(c); err != nil {
				s.log.Error().Err(err).Msg("failed to load entries")
			} else if stats, err = loadOrEmpty(s, stats, func() (analytics.Stats, error) {
				return a.Analytics.Stats(c.Context)
			}); err != nil {
				return err
			}

			_, err := fmt.Fprintln(s.out, render.New(s.out).Stats(stats))
			return err
		},
	}
}

// loadOrEmpty runs load. Invalid input is returned to the caller; any other
// failure is logged and the empty view is drawn instead.
func loadOrEmpty[T any](s *state, empty T, load func() (T, error)) (T, error) {
	v, err := load()
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, service.ErrValidation):
		return empty, err
	default:
		s.log.Error().Err(err).Msg("failed to load entries")
		return empty, nil
	}
}
