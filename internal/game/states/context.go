package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/core"
)

// MatchContext is the data states read and update while a match runs.
type MatchContext struct {
	MatchID string
	Logger  zerolog.Logger

	// StartTime is set on entering PhaseInProgress.
	StartTime time.Time
	// EndTime is set on entering PhaseTerminated.
	EndTime time.Time

	Outcome   core.Outcome
	MoveCount int
}

func NewMatchContext(matchID string, logger zerolog.Logger) *MatchContext {
	return &MatchContext{
		MatchID: matchID,
		Logger:  logger.With().Str("match_id", matchID).Logger(),
	}
}

// Elapsed is the running time of the match, frozen once it has ended.
func (mc *MatchContext) Elapsed() time.Duration {
	if mc.StartTime.IsZero() {
		return 0
	}
	if !mc.EndTime.IsZero() {
		return mc.EndTime.Sub(mc.StartTime)
	}
	return time.Since(mc.StartTime)
}

func (mc *MatchContext) clear() {
	mc.StartTime = time.Time{}
	mc.EndTime = time.Time{}
	mc.Outcome = core.OutcomeNone
	mc.MoveCount = 0
}

// Rebind points the context at a new match ID, deriving a fresh logger from base.
func (mc *MatchContext) Rebind(matchID string, base zerolog.Logger) {
	mc.MatchID = matchID
	mc.Logger = base.With().Str("match_id", matchID).Logger()
}
