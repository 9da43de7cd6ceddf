package catmatch

import (
	"errors"
	"fmt"
)

// Rejections returned to the caller. Engine state is unchanged whenever one is returned.
var (
	// ErrOutOfBounds means a position lies outside the grid.
	ErrOutOfBounds = errors.New("catmatch: position out of bounds")

	// ErrNotAdjacent means a swap was requested between cells that do not share an edge.
	ErrNotAdjacent = errors.New("catmatch: positions are not adjacent")

	// ErrInactiveSession means the countdown has expired and input is no longer accepted.
	ErrInactiveSession = errors.New("catmatch: session is inactive")

	// ErrNoMatch means a swap produced no match and was reverted (strict rules only).
	ErrNoMatch = errors.New("catmatch: swap produces no match")
)

// InvariantError reports corrupted engine state. It is raised with panic,
// never returned: play cannot continue once it happens.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "catmatch: invariant violated: " + e.Msg
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}
