package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GomokuArena/internal/agent"
	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

// Pairing supplies the agents for game n (zero-based) of a series. It is
// called before every game so settings may change between games.
type Pairing func(game int) (black, white agent.Agent, err error)

// FixedPairing plays the same two agents in every game.
func FixedPairing(black, white agent.Agent) Pairing {
	return func(int) (agent.Agent, agent.Agent, error) {
		return black, white, nil
	}
}

// Tally counts series outcomes by color and by agent name.
type Tally struct {
	Games     int            `json:"games"`
	BlackWins int            `json:"black_wins"`
	WhiteWins int            `json:"white_wins"`
	Draws     int            `json:"draws"`
	Wins      map[string]int `json:"wins"`
}

func NewTally() *Tally {
	return &Tally{Wins: make(map[string]int)}
}

// Record adds a terminal result. Unfinished results are ignored.
func (t *Tally) Record(r MatchResult) {
	if !r.Outcome.IsTerminal() {
		return
	}
	t.Games++
	switch r.Outcome {
	case core.OutcomeBlackWins:
		t.BlackWins++
	case core.OutcomeWhiteWins:
		t.WhiteWins++
	case core.OutcomeDraw:
		t.Draws++
	}
	if r.Winner != "" {
		t.Wins[r.Winner]++
	}
}

func (t *Tally) String() string {
	return fmt.Sprintf("games=%d black=%d white=%d draws=%d", t.Games, t.BlackWins, t.WhiteWins, t.Draws)
}

// Series plays a fixed number of matches back to back.
type Series struct {
	games   int
	pairing Pairing
	config  ArenaConfig
	logger  zerolog.Logger
}

func NewSeries(games int, pairing Pairing, cfg ArenaConfig) (*Series, error) {
	if games <= 0 {
		return nil, fmt.Errorf("series needs at least one game, got %d: %w", games, core.ErrInvalidConfiguration)
	}
	if pairing == nil {
		return nil, fmt.Errorf("series needs a pairing: %w", core.ErrInvalidConfiguration)
	}
	return &Series{
		games:   games,
		pairing: pairing,
		config:  cfg,
		logger:  cfg.Logger.With().Str("component", "Series").Logger(),
	}, nil
}

// Play runs every game in order, calling onResult (if set) after each one.
// It stops at the first error and returns the tally so far.
func (s *Series) Play(ctx context.Context, onResult func(game int, r MatchResult)) (*Tally, error) {
	tally := NewTally()
	for game := 0; game < s.games; game++ {
		black, white, err := s.pairing(game)
		if err != nil {
			return tally, fmt.Errorf("pairing for game %d: %w", game+1, err)
		}
		arena, err := NewArena(black, white, s.config)
		if err != nil {
			return tally, err
		}

		res, err := arena.Play(ctx)
		if err != nil {
			return tally, fmt.Errorf("game %d: %w", game+1, err)
		}
		tally.Record(res)
		if onResult != nil {
			onResult(game, res)
		}
	}

	s.logger.Info().
		Int("games", tally.Games).
		Int("black_wins", tally.BlackWins).
		Int("white_wins", tally.WhiteWins).
		Int("draws", tally.Draws).
		Msg("Series complete")
	return tally, nil
}
