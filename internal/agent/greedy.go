package agent

import (
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

// Greedy plays one-ply tactics: win if possible, otherwise block, otherwise
// take the center, otherwise play randomly.
type Greedy struct {
	name      string
	winStreak int
	rng       *rand.Rand
	logger    zerolog.Logger
}

func NewGreedy(name string, winStreak int, opts ...Option) *Greedy {
	o := buildOptions(opts)
	return &Greedy{
		name:      name,
		winStreak: winStreak,
		rng:       o.rng,
		logger:    o.logger.With().Str("component", "GreedyAgent").Str("agent", name).Logger(),
	}
}

func (g *Greedy) Name() string { return g.name }

func (g *Greedy) ChooseAction(board *core.Board, legal []int) int {
	if len(legal) == 0 {
		return core.NoMove
	}
	me := InferPlayer(board)

	if move, blocking, ok := FindTacticalMove(board, legal, me, g.winStreak); ok {
		g.logger.Debug().Int("move", move).Bool("blocking", blocking).Str("player", me.String()).Msg("Tactical move")
		return move
	}

	center := board.Size() / 2
	if move := board.Idx(center, center); slices.Contains(legal, move) {
		return move
	}
	return legal[g.rng.Intn(len(legal))]
}
