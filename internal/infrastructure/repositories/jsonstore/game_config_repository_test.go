//go:build unit

package jsonstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
	"github.com/arcanum-gg/patchforge/internal/infrastructure/repositories/jsonstore"
)

func TestGameConfigRepository(t *testing.T) {
	t.Parallel()

	t.Run("should preserve unknown fields through save and load", func(t *testing.T) {
		t.Parallel()

		// given
		repository := jsonstore.NewGameConfigRepository()
		path := filepath.Join(t.TempDir(), "game_config.json")
		raw := `{"version":"1.0.0","title":"Spellcasters","balance":{"drop_rate":0.1}}`
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
		ctx := context.Background()

		// when
		config, err := repository.Load(ctx, path)
		require.NoError(t, err)
		config.PrependRelease(entities.ReleaseNote{
			Version: "1.0.1", Date: "2026-01-01T00:00:00Z", Description: "Fixes",
		})
		require.NoError(t, repository.Save(ctx, path, config))

		// then
		reloaded, err := repository.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "1.0.1", reloaded.Version)
		require.Len(t, reloaded.Changelog, 1)
		assert.JSONEq(t, `"Spellcasters"`, string(reloaded.Extra["title"]))
		assert.JSONEq(t, `{"drop_rate":0.1}`, string(reloaded.Extra["balance"]))
	})

	t.Run("should fail when the config file is missing", func(t *testing.T) {
		t.Parallel()

		// given
		repository := jsonstore.NewGameConfigRepository()

		// when
		_, err := repository.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))

		// then
		assert.Error(t, err)
	})
}

func TestChangelogFileRepository(t *testing.T) {
	t.Parallel()

	t.Run("should read a missing changelog as empty", func(t *testing.T) {
		t.Parallel()

		// given
		repository := jsonstore.NewChangelogFileRepository()

		// when
		content, err := repository.Read(context.Background(), filepath.Join(t.TempDir(), "CHANGELOG.md"))

		// then
		require.NoError(t, err)
		assert.Equal(t, "", content)
	})

	t.Run("should round-trip the changelog content", func(t *testing.T) {
		t.Parallel()

		// given
		repository := jsonstore.NewChangelogFileRepository()
		path := filepath.Join(t.TempDir(), "CHANGELOG.md")
		ctx := context.Background()

		// when
		require.NoError(t, repository.Write(ctx, path, "# Changelog\n"))
		content, err := repository.Read(ctx, path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "# Changelog\n", content)
	})
}
