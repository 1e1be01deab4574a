package repositories

import (
	"context"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

// ChangelogRepository writes the published changelog documents into an
// output directory: the index, the pages and the latest pointer. Writes are
// atomic per file and byte deterministic for an unchanged changelog, so
// republishing an unchanged patch store is cache friendly.
type ChangelogRepository interface {
	Write(ctx context.Context, outputDir string, changelog entities.Changelog) error
}
