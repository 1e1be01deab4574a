package repositories

import (
	"context"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

// RevisionQuery identifies the comparison a revision lookup runs over.
type RevisionQuery struct {
	// RepoRoot is the data repository to inspect.
	RepoRoot string
	// DataDir is the entity data directory relative to RepoRoot.
	DataDir string
	// PatchesFile (repo-relative) anchors the default before marker: the
	// last commit that touched the patch store is the last processed state.
	PatchesFile string
	// Before and After are revision markers. Empty selects the defaults
	// (last processed state and current state respectively).
	Before string
	After  string
}

// RevisionRepository abstracts the version-control history of the data
// repository behind the narrow operations the engine needs, so the diff,
// merge and publish logic stays testable with in-memory fixtures.
//
// The repository is read-only against history.
type RevisionRepository interface {
	// ChangedEntities resolves the query's markers and lists the entity
	// data files whose content differs between them.
	//
	// When the before marker cannot be resolved (first-ever build), the
	// condition is recovered locally rather than surfaced: every data file
	// present at after is reported as added and the returned ChangeSet
	// carries an empty Before.
	ChangedEntities(ctx context.Context, query RevisionQuery) (*entities.ChangeSet, error)

	// ContentAt fetches an entity's parsed content at a marker.
	// A file missing at that marker yields Absent, not an error.
	ContentAt(ctx context.Context, repoRoot, marker, path string) (entities.Value, error)

	// HeadAuthor returns the author name of the newest commit, used for
	// contributor attribution tags. An empty name means unknown.
	HeadAuthor(ctx context.Context, repoRoot string) (string, error)
}
