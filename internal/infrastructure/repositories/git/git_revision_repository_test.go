//go:build unit

package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
	"github.com/arcanum-gg/patchforge/internal/domain/repositories"
	gitrepo "github.com/arcanum-gg/patchforge/internal/infrastructure/repositories/git"
)

// dataRepo is a throwaway git repository seeded with entity data files.
type dataRepo struct {
	t    *testing.T
	root string
	repo *gogit.Repository
}

func newDataRepo(t *testing.T) *dataRepo {
	t.Helper()
	root := t.TempDir()
	repo, err := gogit.PlainInit(root, false)
	require.NoError(t, err)
	return &dataRepo{t: t, root: root, repo: repo}
}

func (r *dataRepo) write(relPath, content string) {
	r.t.Helper()
	full := filepath.Join(r.root, filepath.FromSlash(relPath))
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0o644))
}

func (r *dataRepo) remove(relPath string) {
	r.t.Helper()
	require.NoError(r.t, os.Remove(filepath.Join(r.root, filepath.FromSlash(relPath))))
}

func (r *dataRepo) commit(message, author string) string {
	r.t.Helper()
	worktree, err := r.repo.Worktree()
	require.NoError(r.t, err)
	require.NoError(r.t, worktree.AddWithOptions(&gogit.AddOptions{All: true}))
	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		All: true,
		Author: &object.Signature{
			Name:  author,
			Email: author + "@arcanum.gg",
			When:  time.Now(),
		},
	})
	require.NoError(r.t, err)
	return hash.String()
}

func (r *dataRepo) query(before, after string) repositories.RevisionQuery {
	return repositories.RevisionQuery{
		RepoRoot:    r.root,
		DataDir:     "data",
		PatchesFile: "data/patches.json",
		Before:      before,
		After:       after,
	}
}

func TestGitRevisionRepositoryChangedEntities(t *testing.T) {
	t.Parallel()

	t.Run("should classify added, modified and deleted data files", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDataRepo(t)
		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp","stats":{"health":100}}`)
		fixture.write("data/units/frost_wisp.json", `{"name":"Frost Wisp"}`)
		base := fixture.commit("seed", "alice")

		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp","stats":{"health":120}}`)
		fixture.write("data/spells/fireball.json", `{"name":"Fireball"}`)
		fixture.remove("data/units/frost_wisp.json")
		head := fixture.commit("balance pass", "alice")

		// when
		changeSet, err := gitrepo.NewGitRevisionRepository().
			ChangedEntities(context.Background(), fixture.query(base, head))

		// then
		require.NoError(t, err)
		assert.Equal(t, base, changeSet.Before)
		assert.Equal(t, head, changeSet.After)

		byPath := map[string]entities.ChangeStatus{}
		for _, file := range changeSet.Files {
			byPath[file.Path] = file.Status
		}
		assert.Equal(t, map[string]entities.ChangeStatus{
			"data/units/fire_imp.json":   entities.StatusModified,
			"data/spells/fireball.json":  entities.StatusAdded,
			"data/units/frost_wisp.json": entities.StatusDeleted,
		}, byPath)
	})

	t.Run("should ignore files outside the data directory", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDataRepo(t)
		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp"}`)
		base := fixture.commit("seed", "alice")
		fixture.write("README.md", "# Game data")
		fixture.write("data/notes.txt", "not an entity")
		head := fixture.commit("docs", "alice")

		// when
		changeSet, err := gitrepo.NewGitRevisionRepository().
			ChangedEntities(context.Background(), fixture.query(base, head))

		// then
		require.NoError(t, err)
		assert.Empty(t, changeSet.Files)
	})

	t.Run("should default the before marker to the last patch store commit", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDataRepo(t)
		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp","stats":{"health":100}}`)
		fixture.write("data/patches.json", "[]")
		processed := fixture.commit("processed build", "bot")

		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp","stats":{"health":110}}`)
		fixture.commit("first balance commit", "alice")
		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp","stats":{"health":120}}`)
		fixture.commit("second balance commit", "alice")

		// when
		changeSet, err := gitrepo.NewGitRevisionRepository().
			ChangedEntities(context.Background(), fixture.query("", ""))

		// then
		require.NoError(t, err)
		assert.Equal(t, processed, changeSet.Before)
		require.Len(t, changeSet.Files, 1)
		assert.Equal(t, "data/units/fire_imp.json", changeSet.Files[0].Path)
		assert.Equal(t, entities.StatusModified, changeSet.Files[0].Status)
	})

	t.Run("should treat an all-zero before marker as unset", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDataRepo(t)
		fixture.write("data/patches.json", "[]")
		processed := fixture.commit("processed build", "bot")
		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp"}`)
		fixture.commit("add imp", "alice")

		// when
		changeSet, err := gitrepo.NewGitRevisionRepository().ChangedEntities(
			context.Background(),
			fixture.query("0000000000000000000000000000000000000000", ""),
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, processed, changeSet.Before)
	})

	t.Run("should report every data file as added when history is unavailable", func(t *testing.T) {
		t.Parallel()

		// given: a single commit, so HEAD~1 cannot be resolved
		fixture := newDataRepo(t)
		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp"}`)
		fixture.write("data/units/frost_wisp.json", `{"name":"Frost Wisp"}`)
		fixture.commit("initial import", "alice")

		// when
		changeSet, err := gitrepo.NewGitRevisionRepository().
			ChangedEntities(context.Background(), fixture.query("", ""))

		// then
		require.NoError(t, err)
		assert.Equal(t, "", changeSet.Before)
		require.Len(t, changeSet.Files, 2)
		for _, file := range changeSet.Files {
			assert.Equal(t, entities.StatusAdded, file.Status)
		}
	})

	t.Run("should fail when the after marker cannot be resolved", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDataRepo(t)
		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp"}`)
		fixture.commit("seed", "alice")

		// when
		_, err := gitrepo.NewGitRevisionRepository().
			ChangedEntities(context.Background(), fixture.query("", "no-such-marker"))

		// then
		assert.Error(t, err)
	})

	t.Run("should fail when the directory is not a git repository", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := gitrepo.NewGitRevisionRepository().ChangedEntities(
			context.Background(),
			repositories.RevisionQuery{RepoRoot: t.TempDir(), DataDir: "data", PatchesFile: "data/patches.json"},
		)

		// then
		assert.Error(t, err)
	})
}

func TestGitRevisionRepositoryContentAt(t *testing.T) {
	t.Parallel()

	t.Run("should parse the file content at a marker", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDataRepo(t)
		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp","stats":{"health":100}}`)
		base := fixture.commit("seed", "alice")
		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp","stats":{"health":120}}`)
		fixture.commit("buff", "alice")

		// when
		value, err := gitrepo.NewGitRevisionRepository().
			ContentAt(context.Background(), fixture.root, base, "data/units/fire_imp.json")

		// then
		require.NoError(t, err)
		assert.Equal(t, float64(100), value.Field("stats").Field("health").Scalar)
	})

	t.Run("should yield absent for a file missing at the marker", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDataRepo(t)
		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp"}`)
		head := fixture.commit("seed", "alice")

		// when
		value, err := gitrepo.NewGitRevisionRepository().
			ContentAt(context.Background(), fixture.root, head, "data/units/ghost.json")

		// then
		require.NoError(t, err)
		assert.True(t, value.IsAbsent())
	})

	t.Run("should report malformed JSON as an invalid entity state", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDataRepo(t)
		fixture.write("data/units/broken.json", `{"name": "Broken`)
		head := fixture.commit("seed", "alice")

		// when
		_, err := gitrepo.NewGitRevisionRepository().
			ContentAt(context.Background(), fixture.root, head, "data/units/broken.json")

		// then
		assert.ErrorIs(t, err, entities.ErrInvalidEntityState)
	})
}

func TestGitRevisionRepositoryHeadAuthor(t *testing.T) {
	t.Parallel()

	t.Run("should return the author of the newest commit", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newDataRepo(t)
		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp"}`)
		fixture.commit("seed", "alice")
		fixture.write("data/units/fire_imp.json", `{"name":"Fire Imp","stats":{}}`)
		fixture.commit("tweak", "bob")

		// when
		author, err := gitrepo.NewGitRevisionRepository().HeadAuthor(context.Background(), fixture.root)

		// then
		require.NoError(t, err)
		assert.Equal(t, "bob", author)
	})
}
