package report

import (
	"errors"
	"fmt"
)

var (
	// ErrTeamNotFound matches any *TeamNotFoundError via errors.Is.
	ErrTeamNotFound  = errors.New("team not found")
	ErrEntryNotFound = errors.New("entry not found")
	ErrEmptyText     = errors.New("text is required")
	ErrEmptyName     = errors.New("team name is required")
)

// TeamNotFoundError names the missing team.
type TeamNotFoundError struct {
	ID string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("team %q not found", e.ID)
}

func (e *TeamNotFoundError) Is(target error) bool {
	return target == ErrTeamNotFound
}
