package reconcile

import (
	"strings"

	"github.com/agentstation/partnermap/pkg/errors"
)

// KeyMode selects how solutions are attached to partners.
type KeyMode string

const (
	// ModeName joins on normalized display names.
	ModeName KeyMode = "name"
	// ModeID joins on stringified partner identifiers.
	ModeID KeyMode = "id"
)

// DefaultMode is used when no mode is configured.
const DefaultMode = ModeID

// Modes lists the supported key modes.
func Modes() []KeyMode {
	return []KeyMode{ModeID, ModeName}
}

// String returns the mode name.
func (m KeyMode) String() string {
	return string(m)
}

// Valid reports whether m is a supported mode.
func (m KeyMode) Valid() bool {
	return m == ModeName || m == ModeID
}

// ParseKeyMode converts a configuration value into a KeyMode. The empty
// string selects DefaultMode.
func ParseKeyMode(s string) (KeyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultMode, nil
	case "name", "names":
		return ModeName, nil
	case "id", "ids":
		return ModeID, nil
	default:
		return "", &errors.ValidationError{
			Field:   "mode",
			Value:   s,
			Message: "must be one of: id, name",
		}
	}
}
