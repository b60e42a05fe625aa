package types

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Season represents an NFL season year
type Season int

// String returns the string representation
func (s Season) String() string {
	return strconv.Itoa(int(s))
}

// Int returns the int representation
func (s Season) Int() int {
	return int(s)
}

// ParseSeason parses a season year. The value is not checked against the
// season catalog; unknown seasons fail later when their snapshot is loaded.
func ParseSeason(s string) (Season, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, goerr.Wrap(err, "invalid season", goerr.V("season", s))
	}
	if v <= 0 {
		return 0, goerr.New("season must be positive", goerr.V("season", s))
	}
	return Season(v), nil
}

// TeamCode represents a 2-3 letter NFL team abbreviation (e.g. "KC")
type TeamCode string

// String returns the string representation
func (c TeamCode) String() string {
	return string(c)
}

// Normalize returns the upper-cased, trimmed team code
func (c TeamCode) Normalize() TeamCode {
	return TeamCode(strings.ToUpper(strings.TrimSpace(string(c))))
}

// WorkspaceID identifies a browser workspace holding per-session UI state
type WorkspaceID string

// String returns the string representation
func (id WorkspaceID) String() string {
	return string(id)
}

// NewWorkspaceID creates a new WorkspaceID using UUID v7
func NewWorkspaceID() (WorkspaceID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return WorkspaceID(id.String()), nil
}

// Validate checks that the ID is a well-formed UUID
func (id WorkspaceID) Validate() error {
	if id == "" {
		return goerr.New("workspace ID is empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "invalid workspace ID", goerr.V("id", string(id)))
	}
	return nil
}
