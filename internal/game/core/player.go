package core

import "fmt"

// Player identifies one of the two sides. Black always moves first.
type Player int

const (
	PlayerNone Player = iota
	PlayerBlack
	PlayerWhite
)

func (p Player) IsValid() bool { return p == PlayerBlack || p == PlayerWhite }

// Cell returns the stone this player places.
func (p Player) Cell() Cell {
	switch p {
	case PlayerBlack:
		return CellBlack
	case PlayerWhite:
		return CellWhite
	default:
		return CellEmpty
	}
}

// Opponent returns the other side. PlayerNone has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case PlayerBlack:
		return PlayerWhite
	case PlayerWhite:
		return PlayerBlack
	default:
		return PlayerNone
	}
}

func (p Player) String() string {
	switch p {
	case PlayerNone:
		return "none"
	case PlayerBlack:
		return "black"
	case PlayerWhite:
		return "white"
	default:
		return fmt.Sprintf("Player(%d)", int(p))
	}
}

// Outcome is the result of a match. OutcomeNone means the match is still running.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeBlackWins
	OutcomeWhiteWins
	OutcomeDraw
)

// WinFor returns the outcome in which p wins.
func WinFor(p Player) Outcome {
	switch p {
	case PlayerBlack:
		return OutcomeBlackWins
	case PlayerWhite:
		return OutcomeWhiteWins
	default:
		return OutcomeNone
	}
}

func (o Outcome) IsTerminal() bool { return o != OutcomeNone }

// Winner returns the winning player, or false for draws and running matches.
func (o Outcome) Winner() (Player, bool) {
	switch o {
	case OutcomeBlackWins:
		return PlayerBlack, true
	case OutcomeWhiteWins:
		return PlayerWhite, true
	default:
		return PlayerNone, false
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "InProgress"
	case OutcomeBlackWins:
		return "BlackWins"
	case OutcomeWhiteWins:
		return "WhiteWins"
	case OutcomeDraw:
		return "Draw"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}
