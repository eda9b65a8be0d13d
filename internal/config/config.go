package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/GomokuArena/internal/agent"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/rules"
)

// Config holds all configuration for the arena
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Agents  AgentsConfig  `mapstructure:"agents"`
	Smart   SmartConfig   `mapstructure:"smart"`
	Arena   ArenaConfig   `mapstructure:"arena"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GameConfig holds the board rules
type GameConfig struct {
	BoardSize int `mapstructure:"board_size"`
	WinStreak int `mapstructure:"win_streak"`
	// MaxMoves is a safety ceiling; 0 means board_size²
	MaxMoves int `mapstructure:"max_moves"`
}

// AgentsConfig selects the two players
type AgentsConfig struct {
	Black AgentConfig `mapstructure:"black"`
	White AgentConfig `mapstructure:"white"`
	// Seed drives every agent's RNG; 0 seeds from the clock
	Seed uint64 `mapstructure:"seed"`
}

type AgentConfig struct {
	Kind string `mapstructure:"kind"`
	Name string `mapstructure:"name"`
}

// SmartConfig tunes the pattern-scoring agent
type SmartConfig struct {
	DefenseWeight       float64       `mapstructure:"defense_weight"`
	TieBreakProbability float64       `mapstructure:"tie_break_probability"`
	Weights             WeightsConfig `mapstructure:"weights"`
}

type WeightsConfig struct {
	Five  float64 `mapstructure:"five"`
	Four  float64 `mapstructure:"four"`
	Three float64 `mapstructure:"three"`
	Two   float64 `mapstructure:"two"`
	One   float64 `mapstructure:"one"`
}

// ArenaConfig holds driver settings
type ArenaConfig struct {
	Games       int  `mapstructure:"games"`
	MoveDelayMs int  `mapstructure:"move_delay_ms"`
	Render      bool `mapstructure:"render"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	DevMode bool   `mapstructure:"dev_mode"`
}

var (
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.board_size", 9)
	v.SetDefault("game.win_streak", 5)
	v.SetDefault("game.max_moves", 0)

	v.SetDefault("agents.black.kind", string(agent.KindSmart))
	v.SetDefault("agents.black.name", "AI_Black")
	v.SetDefault("agents.white.kind", string(agent.KindSmart))
	v.SetDefault("agents.white.name", "AI_White")
	v.SetDefault("agents.seed", 0)

	w := agent.DefaultPatternWeights()
	v.SetDefault("smart.defense_weight", agent.DefaultDefenseWeight)
	v.SetDefault("smart.tie_break_probability", agent.DefaultTieBreakProbability)
	v.SetDefault("smart.weights.five", w.Five)
	v.SetDefault("smart.weights.four", w.Four)
	v.SetDefault("smart.weights.three", w.Three)
	v.SetDefault("smart.weights.two", w.Two)
	v.SetDefault("smart.weights.one", w.One)

	v.SetDefault("arena.games", 1)
	v.SetDefault("arena.move_delay_ms", 0)
	v.SetDefault("arena.render", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.dev_mode", false)
}

// Init loads configuration from configPath, or from config.yaml in the usual
// locations when configPath is empty. A missing file leaves the defaults in place.
func Init(configPath string) error {
	nv := viper.New()
	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("/etc/gomoku-arena")
	}

	nv.SetEnvPrefix("GOMOKU")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case configPath != "" && isMissingFile(err):
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	loaded, err := decode(nv)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	v, cfg = nv, loaded
	return nil
}

func decode(src *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := src.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// Get returns the current configuration, loading defaults on first use.
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set overrides one key at runtime. The change is rejected if the result does not validate.
func Set(key string, value interface{}) error {
	return SetAll(map[string]interface{}{key: value})
}

// SetAll overrides several keys and validates the result once, so keys that
// depend on each other (board size and win streak) can change together.
// If validation fails every key is restored.
func SetAll(values map[string]interface{}) error {
	mu.Lock()
	defer mu.Unlock()

	prev := make(map[string]interface{}, len(values))
	for key, value := range values {
		prev[key] = v.Get(key)
		v.Set(key, value)
	}
	next, err := decode(v)
	if err != nil {
		for key, value := range prev {
			v.Set(key, value)
		}
		return err
	}
	cfg = next
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return GetViper().ConfigFileUsed()
}

// WatchConfig reloads the config file whenever it changes. A file that fails
// validation is reported through onError and the previous config is kept.
func WatchConfig(onChange func(*Config), onError func(error)) {
	wv := GetViper()
	wv.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		mu.Lock()
		next, err := decode(wv)
		if err == nil {
			cfg = next
		}
		mu.Unlock()

		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		if onChange != nil {
			onChange(next)
		}
	})
	wv.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), core.ErrInvalidConfiguration)
	}

	if err := rules.ValidateConfig(c.Game.BoardSize, c.Game.WinStreak); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if c.Game.MaxMoves < 0 {
		return invalid("game.max_moves must be non-negative")
	}

	for color, a := range map[string]AgentConfig{"black": c.Agents.Black, "white": c.Agents.White} {
		if _, err := agent.ParseKind(a.Kind); err != nil {
			return fmt.Errorf("agents.%s.kind: %w", color, err)
		}
	}

	if c.Smart.DefenseWeight < 0 {
		return invalid("smart.defense_weight must be non-negative")
	}
	if c.Smart.TieBreakProbability < 0 || c.Smart.TieBreakProbability > 1 {
		return invalid("smart.tie_break_probability must be between 0 and 1")
	}
	if err := c.Smart.Weights.PatternWeights().Validate(); err != nil {
		return fmt.Errorf("smart.weights: %w", err)
	}

	if c.Arena.Games <= 0 {
		return invalid("arena.games must be positive")
	}
	if c.Arena.MoveDelayMs < 0 {
		return invalid("arena.move_delay_ms must be non-negative")
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return invalid("logging.level %q: %v", c.Logging.Level, err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return invalid("logging.format must be console or json, got %q", c.Logging.Format)
	}

	return nil
}

func (w WeightsConfig) PatternWeights() agent.PatternWeights {
	return agent.PatternWeights{Five: w.Five, Four: w.Four, Three: w.Three, Two: w.Two, One: w.One}
}

// AgentSettings returns the factory settings for the given color.
func (c *Config) AgentSettings(p core.Player) agent.Settings {
	a := c.Agents.Black
	if p == core.PlayerWhite {
		a = c.Agents.White
	}
	return agent.Settings{Kind: agent.Kind(a.Kind), Name: a.Name, WinStreak: c.Game.WinStreak}
}

// SmartOptions carries the smart.* section into agent options.
func (c *Config) SmartOptions() []agent.Option {
	return []agent.Option{
		agent.WithPatternWeights(c.Smart.Weights.PatternWeights()),
		agent.WithDefenseWeight(c.Smart.DefenseWeight),
		agent.WithTieBreakProbability(c.Smart.TieBreakProbability),
	}
}

func (c *Config) MoveDelay() time.Duration {
	return time.Duration(c.Arena.MoveDelayMs) * time.Millisecond
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
