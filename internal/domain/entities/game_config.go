package entities

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// BumpType selects which semver component a release increments.
type BumpType string

const (
	BumpMajor BumpType = "major"
	BumpMinor BumpType = "minor"
	BumpPatch BumpType = "patch"
)

// ReleaseNote is one released version recorded in the game config.
type ReleaseNote struct {
	Version     string `json:"version"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// GameConfig is the release metadata file of the data repository. Only the
// version and the release changelog are interpreted here; every other field
// is carried through untouched so a load/save round trip never loses data.
type GameConfig struct {
	Version   string
	Changelog []ReleaseNote
	Extra     map[string]json.RawMessage
}

// UnmarshalJSON extracts the interpreted fields and keeps the rest raw.
func (c *GameConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if encoded, ok := raw["version"]; ok {
		if err := json.Unmarshal(encoded, &c.Version); err != nil {
			return fmt.Errorf("invalid version field: %w", err)
		}
		delete(raw, "version")
	}
	if encoded, ok := raw["changelog"]; ok {
		if err := json.Unmarshal(encoded, &c.Changelog); err != nil {
			return fmt.Errorf("invalid changelog field: %w", err)
		}
		delete(raw, "changelog")
	}

	c.Extra = raw
	return nil
}

// MarshalJSON merges the interpreted fields back into the raw remainder.
func (c GameConfig) MarshalJSON() ([]byte, error) {
	merged := make(map[string]json.RawMessage, len(c.Extra)+2)
	for key, value := range c.Extra {
		merged[key] = value
	}

	version, err := json.Marshal(c.Version)
	if err != nil {
		return nil, err
	}
	merged["version"] = version

	if c.Changelog != nil {
		changelog, marshalErr := json.Marshal(c.Changelog)
		if marshalErr != nil {
			return nil, marshalErr
		}
		merged["changelog"] = changelog
	}

	return json.Marshal(merged)
}

// CurrentVersion returns the configured version, defaulting to 0.0.1 when
// the field is missing.
func (c GameConfig) CurrentVersion() string {
	if c.Version == "" {
		return "0.0.1"
	}
	return c.Version
}

// PrependRelease records a new release note at the front of the changelog
// and moves the version forward.
func (c *GameConfig) PrependRelease(note ReleaseNote) {
	c.Version = note.Version
	c.Changelog = append([]ReleaseNote{note}, c.Changelog...)
}

// BumpVersion increments one component of an X.Y.Z version string.
// A malformed current version restarts from zero before bumping.
func BumpVersion(current string, bump BumpType) (string, error) {
	var major, minor, patch int
	if semver.IsValid("v" + current) {
		parts := strings.SplitN(semver.Canonical("v"+current)[1:], ".", 3)
		major, _ = strconv.Atoi(parts[0])
		minor, _ = strconv.Atoi(parts[1])
		patch, _ = strconv.Atoi(parts[2])
	}

	switch bump {
	case BumpMajor:
		return fmt.Sprintf("%d.0.0", major+1), nil
	case BumpMinor:
		return fmt.Sprintf("%d.%d.0", major, minor+1), nil
	case BumpPatch:
		return fmt.Sprintf("%d.%d.%d", major, minor, patch+1), nil
	default:
		return "", fmt.Errorf("invalid bump type %q", bump)
	}
}
