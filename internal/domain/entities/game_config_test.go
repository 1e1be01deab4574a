//go:build unit

package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

func TestGameConfigJSON(t *testing.T) {
	t.Parallel()

	t.Run("should preserve unknown fields through a round trip", func(t *testing.T) {
		t.Parallel()

		// given
		raw := []byte(`{"version":"1.2.0","title":"Spellcasters","balance":{"drop_rate":0.1},` +
			`"changelog":[{"version":"1.2.0","date":"2026-01-01","description":"Balance pass"}]}`)

		// when
		var config entities.GameConfig
		require.NoError(t, json.Unmarshal(raw, &config))
		encoded, err := json.Marshal(config)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.2.0", config.Version)
		require.Len(t, config.Changelog, 1)
		assert.JSONEq(t, string(raw), string(encoded))
	})

	t.Run("should tolerate a config without version or changelog", func(t *testing.T) {
		t.Parallel()

		// when
		var config entities.GameConfig
		require.NoError(t, json.Unmarshal([]byte(`{"title":"Spellcasters"}`), &config))

		// then
		assert.Equal(t, "0.0.1", config.CurrentVersion())
		assert.Nil(t, config.Changelog)
	})
}

func TestPrependRelease(t *testing.T) {
	t.Parallel()

	t.Run("should record the note newest first and move the version", func(t *testing.T) {
		t.Parallel()

		// given
		config := entities.GameConfig{
			Version:   "1.0.0",
			Changelog: []entities.ReleaseNote{{Version: "1.0.0", Date: "2026-01-01"}},
		}

		// when
		config.PrependRelease(entities.ReleaseNote{Version: "1.1.0", Date: "2026-02-01", Description: "Buffs"})

		// then
		assert.Equal(t, "1.1.0", config.Version)
		require.Len(t, config.Changelog, 2)
		assert.Equal(t, "1.1.0", config.Changelog[0].Version)
	})
}

func TestBumpVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		current  string
		bump     entities.BumpType
		expected string
	}{
		{"should bump the patch component", "1.2.3", entities.BumpPatch, "1.2.4"},
		{"should bump minor and reset patch", "1.2.3", entities.BumpMinor, "1.3.0"},
		{"should bump major and reset the rest", "1.2.3", entities.BumpMajor, "2.0.0"},
		{"should restart from zero on a malformed version", "not-a-version", entities.BumpPatch, "0.0.1"},
		{"should canonicalize a short version before bumping", "1.2", entities.BumpPatch, "1.2.1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			// when
			bumped, err := entities.BumpVersion(test.current, test.bump)

			// then
			require.NoError(t, err)
			assert.Equal(t, test.expected, bumped)
		})
	}

	t.Run("should reject an unknown bump type", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.BumpVersion("1.0.0", "huge")

		// then
		assert.Error(t, err)
	})
}
