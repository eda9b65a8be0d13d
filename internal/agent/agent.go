package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

// Agent picks a move for the side to play.
type Agent interface {
	// Name is the display name used in logs and match results.
	Name() string
	// ChooseAction returns an element of legal, or core.NoMove when legal is
	// empty. The board must be left exactly as it was received.
	ChooseAction(board *core.Board, legal []int) int
}

// Kind selects an agent implementation.
type Kind string

const (
	KindRandom Kind = "random"
	KindGreedy Kind = "greedy"
	KindSmart  Kind = "smart"
)

// Kinds lists every supported agent kind.
var Kinds = []Kind{KindRandom, KindGreedy, KindSmart}

// ParseKind converts a case-insensitive name into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown agent kind %q: %w", s, core.ErrInvalidConfiguration)
}

// NewRand returns a PCG-backed generator. A zero seed is replaced with the current time.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

type options struct {
	rng                 *rand.Rand
	logger              zerolog.Logger
	weights             PatternWeights
	defenseWeight       float64
	tieBreakProbability float64
}

func defaultOptions() options {
	return options{
		logger:              zerolog.Nop(),
		weights:             DefaultPatternWeights(),
		defenseWeight:       DefaultDefenseWeight,
		tieBreakProbability: DefaultTieBreakProbability,
	}
}

// Option configures an agent.
type Option func(*options)

func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPatternWeights is ignored unless w is strictly ordered.
func WithPatternWeights(w PatternWeights) Option {
	return func(o *options) {
		if w.Validate() == nil {
			o.weights = w
		}
	}
}

func WithDefenseWeight(weight float64) Option {
	return func(o *options) {
		if weight >= 0 {
			o.defenseWeight = weight
		}
	}
}

func WithTieBreakProbability(p float64) Option {
	return func(o *options) {
		if p >= 0 && p <= 1 {
			o.tieBreakProbability = p
		}
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewRand(0)
	}
	return o
}
