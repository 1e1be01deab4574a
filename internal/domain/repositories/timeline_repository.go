package repositories

import (
	"context"
	"iter"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

// TimelineRepository maintains the per-entity append-only snapshot history
// under a timeline directory, one file per entity.
type TimelineRepository interface {
	// Record appends a snapshot to an entity's timeline. A re-run with a
	// version already present is silently skipped. Nothing is ever recorded
	// for deletes: the timeline simply stops growing, preserving the last
	// known state as the final historical record.
	Record(ctx context.Context, dir, entityID string, entry entities.TimelineEntry) error

	// History returns the entity's snapshots oldest-first as a restartable
	// sequence. An entity with no timeline yields an empty sequence.
	History(ctx context.Context, dir, entityID string) (iter.Seq[entities.TimelineEntry], error)
}
