package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GomokuArena/internal/agent"
	"github.com/mitchelldurbincs/GomokuArena/internal/config"
	"github.com/mitchelldurbincs/GomokuArena/internal/game"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/events"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/events/subscribers"
)

// cliFlags holds the command line. Sentinel values (-1, "") leave the
// config value alone.
type cliFlags struct {
	configPath string
	games      int
	size       int
	streak     int
	black      string
	white      string
	seed       int64
	logLevel   string
	quiet      bool
	watch      bool
}

func parseFlags(args []string) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("arena", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "Path to config file")
	fs.IntVar(&f.games, "games", -1, "Number of games to play (-1 to use config default)")
	fs.IntVar(&f.size, "size", -1, "Board size (-1 to use config default)")
	fs.IntVar(&f.streak, "streak", -1, "Stones in a row needed to win (-1 to use config default)")
	fs.StringVar(&f.black, "black", "", "Black agent kind: random, greedy or smart (empty to use config default)")
	fs.StringVar(&f.white, "white", "", "White agent kind: random, greedy or smart (empty to use config default)")
	fs.Int64Var(&f.seed, "seed", -1, "RNG seed, 0 for time-based (-1 to use config default)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	fs.BoolVar(&f.quiet, "quiet", false, "Only print final boards and the tally")
	fs.BoolVar(&f.watch, "watch", false, "Reload agent settings from the config file between games")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	return f, nil
}

// overrides maps the flags that were set onto config keys.
func (f cliFlags) overrides() map[string]interface{} {
	out := map[string]interface{}{}
	if f.games != -1 {
		out["arena.games"] = f.games
	}
	if f.size != -1 {
		out["game.board_size"] = f.size
	}
	if f.streak != -1 {
		out["game.win_streak"] = f.streak
	}
	if f.black != "" {
		out["agents.black.kind"] = f.black
	}
	if f.white != "" {
		out["agents.white.kind"] = f.white
	}
	if f.seed != -1 {
		out["agents.seed"] = f.seed
	}
	if f.logLevel != "" {
		out["logging.level"] = f.logLevel
	}
	if f.quiet {
		out["arena.render"] = false
	}
	return out
}

// loadConfig initializes config and applies every flag override in one
// validated step.
func loadConfig(f cliFlags) error {
	if err := config.Init(f.configPath); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}
	if overrides := f.overrides(); len(overrides) > 0 {
		if err := config.SetAll(overrides); err != nil {
			return fmt.Errorf("apply flags: %w", err)
		}
	}
	return nil
}

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if err := loadConfig(flags); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	cfg := config.Get()
	setupLogging(cfg.Logging)

	if flags.watch && config.ConfigFilePath() == "" {
		log.Warn().Msg("No config file loaded, --watch ignored")
	} else if flags.watch {
		config.WatchConfig(func(c *config.Config) {
			log.Info().
				Str("black", c.Agents.Black.Kind).
				Str("white", c.Agents.White.Kind).
				Msg("Config reloaded, agent settings apply from the next game")
		}, func(err error) {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewEventBus(log.Logger)
	bus.Subscribe(newEventLogger(cfg.Logging))

	arenaCfg := game.ArenaConfig{
		BoardSize: cfg.Game.BoardSize,
		WinStreak: cfg.Game.WinStreak,
		MaxMoves:  cfg.Game.MaxMoves,
		MoveDelay: cfg.MoveDelay(),
		Logger:    log.Logger,
		EventBus:  bus,
	}
	if cfg.Arena.Render {
		arenaCfg.OnMove = func(r game.MoveRecord, board *core.Board) {
			fmt.Printf("Move %d: %s (%s) plays (%d,%d)\n%s\n",
				r.Number, r.Agent, r.Player, r.Row, r.Col, game.RenderBoardWithLast(board, r.Move))
		}
	}

	series, err := game.NewSeries(cfg.Arena.Games, pairing(cfg.Game.WinStreak), arenaCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up series")
	}

	log.Info().
		Int("games", cfg.Arena.Games).
		Int("board_size", cfg.Game.BoardSize).
		Int("win_streak", cfg.Game.WinStreak).
		Str("black", cfg.Agents.Black.Kind).
		Str("white", cfg.Agents.White.Kind).
		Msg("Starting arena")

	tally, err := series.Play(ctx, func(n int, r game.MatchResult) {
		fmt.Printf("Game %d: %s\n", n+1, game.RenderResult(r))
		if !cfg.Arena.Render {
			fmt.Println(game.RenderBoard(r.Board))
		}
	})
	fmt.Printf("Tally: %s\n", tally)
	for name, wins := range tally.Wins {
		fmt.Printf("  %s: %d\n", name, wins)
	}
	if err != nil {
		log.Error().Err(err).Msg("Arena stopped")
		stop()
		os.Exit(1)
	}
}

// pairing builds fresh agents for every game from the current config, so a
// watched file can swap agents mid-series. The board rules stay fixed.
func pairing(winStreak int) game.Pairing {
	return func(n int) (agent.Agent, agent.Agent, error) {
		cfg := config.Get()
		build := func(p core.Player, offset uint64) (agent.Agent, error) {
			settings := cfg.AgentSettings(p)
			settings.WinStreak = winStreak

			var rngSeed uint64
			if cfg.Agents.Seed != 0 {
				rngSeed = cfg.Agents.Seed + uint64(2*n) + offset
			}
			opts := append(cfg.SmartOptions(),
				agent.WithRand(agent.NewRand(rngSeed)),
				agent.WithLogger(log.Logger),
			)
			return agent.New(settings, opts...)
		}

		b, err := build(core.PlayerBlack, 0)
		if err != nil {
			return nil, nil, err
		}
		w, err := build(core.PlayerWhite, 1)
		if err != nil {
			return nil, nil, err
		}
		return b, w, nil
	}
}

func newEventLogger(lc config.LoggingConfig) *subscribers.LoggerSubscriber {
	// Per-move events only show up at debug level.
	if strings.EqualFold(lc.Level, "debug") {
		sub := subscribers.NewLoggerSubscriber("arena-events", log.Logger, zerolog.DebugLevel)
		sub.SetDevMode(lc.DevMode)
		return sub
	}
	sub := subscribers.NewLoggerSubscriber("arena-events", log.Logger, zerolog.InfoLevel)
	sub.SetEventFilter([]string{events.TypeMatchStarted, events.TypeMatchEnded, events.TypeMoveRejected})
	sub.SetDevMode(lc.DevMode)
	return sub
}

func setupLogging(lc config.LoggingConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(lc.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if lc.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
