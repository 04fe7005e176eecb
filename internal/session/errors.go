package session

import (
	"errors"
	"fmt"
)

// ErrGameOver is returned by commands that need a running session after it
// has reached PhaseGameEnd.
var ErrGameOver = errors.New("game is over")

// ErrNotOffered is returned when acquiring a skill that is not in the
// current day-end offer.
var ErrNotOffered = errors.New("skill not in current offer")

// ConfigError reports content or tunables the session cannot run with.
// The session halts in its current phase until it is rebuilt.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
