package repositories

import (
	"context"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

// PatchRepository persists the patch store: every closed patch plus the
// currently open one. The store is the single source of truth; timelines and
// published changelog documents are derived from it.
//
// Implementations must detect concurrent modification: Save fails with
// entities.ErrStoreConflict when the store at path changed on disk since it
// was loaded, and writes must be staged and committed atomically.
type PatchRepository interface {
	Load(ctx context.Context, path string) ([]entities.Patch, error)
	Save(ctx context.Context, path string, patches []entities.Patch) error
}
