package game

import (
	"errors"

	"github.com/lox/holdem-engine/poker"
)

var (
	// ErrIllegalAction is returned when an action is not legal for the seat
	// at that moment. State is never modified when it is returned.
	ErrIllegalAction = errors.New("illegal action")

	// ErrInsufficientPlayers is returned when fewer than two seats have chips.
	ErrInsufficientPlayers = errors.New("insufficient players")

	// ErrNoContenders signals a pot layer with nobody eligible to win it.
	ErrNoContenders = errors.New("no contenders for pot")

	// ErrDeckEmpty signals a draw past the end of the deck.
	ErrDeckEmpty = poker.ErrDeckEmpty

	// ErrHandComplete is returned when acting on a finished hand.
	ErrHandComplete = errors.New("hand complete")

	// ErrHandInProgress is returned by table operations that need the
	// current hand to be finished first.
	ErrHandInProgress = errors.New("hand in progress")
)

var (
	ErrInvalidSeat  = errors.New("invalid seat")
	ErrSeatOccupied = errors.New("seat occupied")
	ErrSeatEmpty    = errors.New("seat empty")
)
