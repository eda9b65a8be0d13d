package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GomokuArena/internal/game/events"
)

// LoggerSubscriber writes match events to a zerolog logger.
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // nil means every type
	devMode         bool            // attach the full event as JSON
}

func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter restricts logging to the given types. An empty list logs everything.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.level(event)).
		Str("event_type", event.Type()).
		Str("match_id", event.MatchID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.MatchStartedEvent:
		logEvent.
			Int("board_size", e.BoardSize).
			Int("win_streak", e.WinStreak).
			Str("black", e.Black).
			Str("white", e.White)

	case *events.MoveAppliedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Str("agent", e.Agent).
			Int("move", e.Move).
			Int("row", e.Row).
			Int("col", e.Col).
			Int("move_number", e.MoveNumber)

	case *events.MoveRejectedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Str("agent", e.Agent).
			Int("move", e.Move).
			Str("reason", e.Reason)

	case *events.MatchEndedEvent:
		logEvent.
			Str("outcome", e.Outcome.String()).
			Str("winner", e.Winner).
			Int("moves", e.Moves).
			Dur("duration", e.Duration)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if data, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", data)
		}
	}

	logEvent.Msg("Match event")
}

// level raises rejected moves to at least warn.
func (ls *LoggerSubscriber) level(event events.Event) zerolog.Level {
	switch ls.logLevel {
	case zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
	default:
		return zerolog.InfoLevel
	}
	if event.Type() == events.TypeMoveRejected && ls.logLevel < zerolog.WarnLevel {
		return zerolog.WarnLevel
	}
	return ls.logLevel
}
