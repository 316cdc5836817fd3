package league

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName       = errors.New("player name is required")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrSamePlayers     = errors.New("select different players")
	ErrMatchNotFound   = errors.New("match not found")
	ErrFixtureNotFound = errors.New("fixture not found")
)

type DuplicatePlayerError struct {
	Name string
}

func (e *DuplicatePlayerError) Error() string {
	return fmt.Sprintf("player %q already exists", e.Name)
}

// ImportSchemaError rejects an import payload whose top-level shape is wrong.
type ImportSchemaError struct {
	Reason string
}

func (e *ImportSchemaError) Error() string {
	return "invalid import format: " + e.Reason
}
