package agent

import (
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

const (
	// DefaultDefenseWeight scales the opponent's score so offense is slightly favored.
	DefaultDefenseWeight = 0.9
	// DefaultTieBreakProbability is the chance of switching to a later candidate with an equal score.
	DefaultTieBreakProbability = 0.1
)

// ScoredMove is one candidate ranked by Smart.
type ScoredMove struct {
	Move    int
	Attack  float64
	Defense float64
	Score   float64
}

// Smart ranks every legal move by line patterns and then lets an immediate
// win or block override the ranking.
type Smart struct {
	name                string
	winStreak           int
	scorer              PatternScorer
	defenseWeight       float64
	tieBreakProbability float64
	rng                 *rand.Rand
	logger              zerolog.Logger
}

func NewSmart(name string, winStreak int, opts ...Option) *Smart {
	o := buildOptions(opts)
	return &Smart{
		name:                name,
		winStreak:           winStreak,
		scorer:              NewPatternScorer(o.weights, winStreak),
		defenseWeight:       o.defenseWeight,
		tieBreakProbability: o.tieBreakProbability,
		rng:                 o.rng,
		logger:              o.logger.With().Str("component", "SmartAgent").Str("agent", name).Logger(),
	}
}

func (s *Smart) Name() string { return s.name }

// Rank scores each legal move for me in the order given. Attack is my pattern
// total with my stone on the cell; Defense is the opponent's total with their
// stone on it. Score = Attack - defenseWeight*Defense.
func (s *Smart) Rank(board *core.Board, legal []int, me core.Player) []ScoredMove {
	opp := me.Opponent()
	ranked := make([]ScoredMove, 0, len(legal))
	for _, move := range legal {
		sm := ScoredMove{Move: move}
		if err := board.Simulate(move, me.Cell(), func() {
			sm.Attack = s.scorer.Evaluate(board, me)
		}); err != nil {
			continue
		}
		if err := board.Simulate(move, opp.Cell(), func() {
			sm.Defense = s.scorer.Evaluate(board, opp)
		}); err != nil {
			continue
		}
		sm.Score = sm.Attack - s.defenseWeight*sm.Defense
		ranked = append(ranked, sm)
	}
	return ranked
}

// best returns the highest scoring candidate. An equal score replaces the
// current pick with probability tieBreakProbability, so later candidates are
// favored over a uniform choice.
func (s *Smart) best(ranked []ScoredMove) (ScoredMove, bool) {
	best := ScoredMove{Move: core.NoMove, Score: math.Inf(-1)}
	found := false
	for _, sm := range ranked {
		switch {
		case !found || sm.Score > best.Score:
			best, found = sm, true
		case sm.Score == best.Score && s.rng.Float64() < s.tieBreakProbability:
			best = sm
		}
	}
	return best, found
}

func (s *Smart) ChooseAction(board *core.Board, legal []int) int {
	if len(legal) == 0 {
		return core.NoMove
	}
	me := InferPlayer(board)

	choice, found := s.best(s.Rank(board, legal, me))

	if move, blocking, ok := FindTacticalMove(board, legal, me, s.winStreak); ok {
		s.logger.Debug().
			Int("move", move).
			Bool("blocking", blocking).
			Int("heuristic_move", choice.Move).
			Msg("Tactical move overrides heuristic")
		return move
	}
	if !found {
		return legal[s.rng.Intn(len(legal))]
	}

	s.logger.Debug().
		Int("move", choice.Move).
		Float64("score", choice.Score).
		Float64("attack", choice.Attack).
		Float64("defense", choice.Defense).
		Str("player", me.String()).
		Msg("Heuristic move")
	return choice.Move
}
