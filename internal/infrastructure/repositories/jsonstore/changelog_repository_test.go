//go:build unit

package jsonstore_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
	"github.com/arcanum-gg/patchforge/internal/infrastructure/repositories/jsonstore"
	"github.com/arcanum-gg/patchforge/test/domain/entitybuilders"
)

func TestChangelogRepository(t *testing.T) {
	t.Parallel()

	t.Run("should write the pages, the latest pointer and the index", func(t *testing.T) {
		t.Parallel()

		// given
		repository := jsonstore.NewChangelogRepository()
		dir := t.TempDir()
		patches := []entities.Patch{
			entitybuilders.NewPatchBuilder().WithVersion("1.1.0").WithDate("2026-02-01T00:00:00Z").BuildPatch(),
			entitybuilders.NewPatchBuilder().WithVersion("1.0.0").WithDate("2026-01-01T00:00:00Z").BuildPatch(),
		}
		changelog, err := entities.BuildChangelog(patches, 1)
		require.NoError(t, err)

		// when
		require.NoError(t, repository.Write(context.Background(), dir, changelog))

		// then
		var page []entities.Patch
		readJSON(t, filepath.Join(dir, "changelog_page_1.json"), &page)
		require.Len(t, page, 1)
		assert.Equal(t, "patch_1_1_0", page[0].ID)

		var latest entities.Patch
		readJSON(t, filepath.Join(dir, "changelog_latest.json"), &latest)
		assert.Equal(t, "patch_1_1_0", latest.ID)

		var index entities.ChangelogIndex
		readJSON(t, filepath.Join(dir, "changelog_index.json"), &index)
		assert.Equal(t, 2, index.TotalPatches)
		assert.Equal(t, []string{"changelog_page_1.json", "changelog_page_2.json"}, index.Pages)
	})

	t.Run("should write latest as an explicit null for an empty store", func(t *testing.T) {
		t.Parallel()

		// given
		repository := jsonstore.NewChangelogRepository()
		dir := t.TempDir()
		changelog, err := entities.BuildChangelog(nil, 50)
		require.NoError(t, err)

		// when
		require.NoError(t, repository.Write(context.Background(), dir, changelog))

		// then
		data, readErr := os.ReadFile(filepath.Join(dir, "changelog_latest.json"))
		require.NoError(t, readErr)
		assert.Equal(t, "null\n", string(data))

		var index entities.ChangelogIndex
		readJSON(t, filepath.Join(dir, "changelog_index.json"), &index)
		assert.Equal(t, 0, index.TotalPages)
	})

	t.Run("should rewrite identical bytes on a republish", func(t *testing.T) {
		t.Parallel()

		// given
		repository := jsonstore.NewChangelogRepository()
		dir := t.TempDir()
		changelog, err := entities.BuildChangelog([]entities.Patch{
			entitybuilders.NewPatchBuilder().BuildPatch(),
		}, 50)
		require.NoError(t, err)
		require.NoError(t, repository.Write(context.Background(), dir, changelog))
		first, err := os.ReadFile(filepath.Join(dir, "changelog_page_1.json"))
		require.NoError(t, err)

		// when
		require.NoError(t, repository.Write(context.Background(), dir, changelog))

		// then
		second, err := os.ReadFile(filepath.Join(dir, "changelog_page_1.json"))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func readJSON(t *testing.T, path string, target any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, target))
}
