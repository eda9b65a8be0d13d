package agent

import (
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

// Random picks a uniformly random legal move.
type Random struct {
	name string
	rng  *rand.Rand
}

func NewRandom(name string, opts ...Option) *Random {
	o := buildOptions(opts)
	return &Random{name: name, rng: o.rng}
}

func (r *Random) Name() string { return r.name }

func (r *Random) ChooseAction(_ *core.Board, legal []int) int {
	if len(legal) == 0 {
		return core.NoMove
	}
	return legal[r.rng.Intn(len(legal))]
}
