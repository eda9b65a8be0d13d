package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GomokuArena/internal/agent"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

func resetGlobals() {
	mu.Lock()
	defer mu.Unlock()
	cfg = nil
	v = nil
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitWithDefaults(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(filepath.Join(t.TempDir(), "missing.yaml")))

	c := Get()
	assert.Equal(t, 9, c.Game.BoardSize)
	assert.Equal(t, 5, c.Game.WinStreak)
	assert.Equal(t, 0, c.Game.MaxMoves)
	assert.Equal(t, "smart", c.Agents.Black.Kind)
	assert.Equal(t, "AI_Black", c.Agents.Black.Name)
	assert.Equal(t, "AI_White", c.Agents.White.Name)
	assert.Equal(t, uint64(0), c.Agents.Seed)
	assert.Equal(t, 0.9, c.Smart.DefenseWeight)
	assert.Equal(t, 0.1, c.Smart.TieBreakProbability)
	assert.Equal(t, agent.DefaultPatternWeights(), c.Smart.Weights.PatternWeights())
	assert.Equal(t, 1, c.Arena.Games)
	assert.True(t, c.Arena.Render)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "console", c.Logging.Format)
}

func TestInitFromFile(t *testing.T) {
	resetGlobals()
	path := writeConfig(t, t.TempDir(), `
game:
  board_size: 15
  win_streak: 5
agents:
  black:
    kind: greedy
    name: Greedy
  white:
    kind: random
  seed: 42
smart:
  tie_break_probability: 0.25
arena:
  games: 3
  move_delay_ms: 250
logging:
  format: json
`)
	require.NoError(t, Init(path))

	c := Get()
	assert.Equal(t, 15, c.Game.BoardSize)
	assert.Equal(t, "greedy", c.Agents.Black.Kind)
	assert.Equal(t, "random", c.Agents.White.Kind)
	assert.Equal(t, "AI_White", c.Agents.White.Name)
	assert.Equal(t, uint64(42), c.Agents.Seed)
	assert.Equal(t, 0.25, c.Smart.TieBreakProbability)
	assert.Equal(t, 3, c.Arena.Games)
	assert.Equal(t, 250*time.Millisecond, c.MoveDelay())
	assert.Equal(t, "json", c.Logging.Format)
	assert.Equal(t, path, ConfigFilePath())

	black := c.AgentSettings(core.PlayerBlack)
	assert.Equal(t, agent.Settings{Kind: agent.KindGreedy, Name: "Greedy", WinStreak: 5}, black)
	white := c.AgentSettings(core.PlayerWhite)
	assert.Equal(t, agent.KindRandom, white.Kind)
	assert.Len(t, c.SmartOptions(), 3)
}

func TestEnvironmentVariables(t *testing.T) {
	resetGlobals()
	t.Setenv("GOMOKU_GAME_BOARD_SIZE", "11")
	t.Setenv("GOMOKU_AGENTS_WHITE_KIND", "greedy")
	t.Setenv("GOMOKU_AGENTS_SEED", "7")

	require.NoError(t, Init(filepath.Join(t.TempDir(), "missing.yaml")))

	c := Get()
	assert.Equal(t, 11, c.Game.BoardSize)
	assert.Equal(t, "greedy", c.Agents.White.Kind)
	assert.Equal(t, uint64(7), c.Agents.Seed)
}

func TestInitRejectsInvalidFile(t *testing.T) {
	resetGlobals()
	path := writeConfig(t, t.TempDir(), `
game:
  board_size: 4
  win_streak: 5
`)
	err := Init(path)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}

func TestSet(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(filepath.Join(t.TempDir(), "missing.yaml")))

	require.NoError(t, Set("game.board_size", 13))
	assert.Equal(t, 13, Get().Game.BoardSize)

	err := Set("game.win_streak", 20)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
	assert.Equal(t, 5, Get().Game.WinStreak)
}

func TestSetAll(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]interface{}
		wantErr bool
	}{
		{"small board with matching streak", map[string]interface{}{"game.board_size": 3, "game.win_streak": 3}, false},
		{"four by four", map[string]interface{}{"game.win_streak": 4, "game.board_size": 4}, false},
		{"streak still too long", map[string]interface{}{"game.board_size": 3, "game.win_streak": 4}, true},
		{"one bad key among good ones", map[string]interface{}{"game.board_size": 3, "game.win_streak": 3, "agents.black.kind": "minimax"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobals()
			require.NoError(t, Init(filepath.Join(t.TempDir(), "missing.yaml")))

			// Map order is random; repeat so every ordering gets a chance.
			for i := 0; i < 20; i++ {
				err := SetAll(tt.values)
				if tt.wantErr {
					require.ErrorIs(t, err, core.ErrInvalidConfiguration)
					assert.Equal(t, 9, Get().Game.BoardSize)
					assert.Equal(t, 5, Get().Game.WinStreak)
					assert.Equal(t, "smart", Get().Agents.Black.Kind)
					assert.Equal(t, 9, GetViper().GetInt("game.board_size"))
					continue
				}
				require.NoError(t, err)
				assert.Equal(t, tt.values["game.board_size"], Get().Game.BoardSize)
				assert.Equal(t, tt.values["game.win_streak"], Get().Game.WinStreak)
			}
		})
	}
}

func TestSet_DependentKeysOneAtATime(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(filepath.Join(t.TempDir(), "missing.yaml")))

	// Shrinking the board first leaves the default streak of 5 too long.
	assert.ErrorIs(t, Set("game.board_size", 3), core.ErrInvalidConfiguration)
	assert.Equal(t, 9, Get().Game.BoardSize)
	require.NoError(t, SetAll(map[string]interface{}{"game.board_size": 3, "game.win_streak": 3}))
}

func TestValidate(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(filepath.Join(t.TempDir(), "missing.yaml")))
	base := *Get()
	valid := func() *Config {
		c := base
		return &c
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero board", func(c *Config) { c.Game.BoardSize = 0 }},
		{"zero streak", func(c *Config) { c.Game.WinStreak = 0 }},
		{"streak over size", func(c *Config) { c.Game.BoardSize, c.Game.WinStreak = 3, 5 }},
		{"negative max moves", func(c *Config) { c.Game.MaxMoves = -1 }},
		{"unknown agent", func(c *Config) { c.Agents.White.Kind = "minimax" }},
		{"negative defense", func(c *Config) { c.Smart.DefenseWeight = -0.1 }},
		{"probability above one", func(c *Config) { c.Smart.TieBreakProbability = 1.5 }},
		{"unordered weights", func(c *Config) { c.Smart.Weights.Three = c.Smart.Weights.Four }},
		{"no games", func(c *Config) { c.Arena.Games = 0 }},
		{"negative delay", func(c *Config) { c.Arena.MoveDelayMs = -5 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	assert.NoError(t, Validate(valid()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorIs(t, Validate(c), core.ErrInvalidConfiguration)
		})
	}
}

func TestWatchConfig(t *testing.T) {
	resetGlobals()
	dir := t.TempDir()
	path := writeConfig(t, dir, "arena:\n  games: 2\n")
	require.NoError(t, Init(path))
	require.Equal(t, 2, Get().Arena.Games)

	var (
		lock    sync.Mutex
		changed *Config
		failed  error
	)
	WatchConfig(func(c *Config) {
		lock.Lock()
		defer lock.Unlock()
		changed = c
	}, func(err error) {
		lock.Lock()
		defer lock.Unlock()
		failed = err
	})

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("arena:\n  games: 6\n"), 0o644))

	require.Eventually(t, func() bool {
		lock.Lock()
		defer lock.Unlock()
		return changed != nil && changed.Arena.Games == 6
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, 6, Get().Arena.Games)

	require.NoError(t, os.WriteFile(path, []byte("arena:\n  games: -1\n"), 0o644))
	require.Eventually(t, func() bool {
		lock.Lock()
		defer lock.Unlock()
		return failed != nil
	}, 5*time.Second, 20*time.Millisecond)
	lock.Lock()
	defer lock.Unlock()
	assert.ErrorIs(t, failed, core.ErrInvalidConfiguration)
	assert.GreaterOrEqual(t, Get().Arena.Games, 1)
}
