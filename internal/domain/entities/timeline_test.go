//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

func snapshot(health float64) entities.Value {
	return entities.FromAny(map[string]any{
		"name":  "Fire Imp",
		"stats": map[string]any{"health": health},
	})
}

func TestAppendSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("should append a snapshot for a new version", func(t *testing.T) {
		t.Parallel()

		// given
		timeline := []entities.TimelineEntry{
			{Version: "1.0.0", Date: "2026-01-01", Snapshot: snapshot(100)},
		}

		// when
		updated, appended := entities.AppendSnapshot(timeline, entities.TimelineEntry{
			Version: "1.1.0", Date: "2026-02-01", Snapshot: snapshot(120),
		})

		// then
		assert.True(t, appended)
		assert.Len(t, updated, 2)
	})

	t.Run("should skip a version already recorded", func(t *testing.T) {
		t.Parallel()

		// given
		timeline := []entities.TimelineEntry{
			{Version: "1.0.0", Date: "2026-01-01", Snapshot: snapshot(100)},
		}

		// when
		updated, appended := entities.AppendSnapshot(timeline, entities.TimelineEntry{
			Version: "1.0.0", Date: "2026-01-02", Snapshot: snapshot(999),
		})

		// then
		assert.False(t, appended)
		require.Len(t, updated, 1)
		assert.Equal(t, "2026-01-01", updated[0].Date)
	})
}

func TestBaselineBefore(t *testing.T) {
	t.Parallel()

	t.Run("should return the last snapshot of a different version", func(t *testing.T) {
		t.Parallel()

		// given
		timeline := []entities.TimelineEntry{
			{Version: "1.0.0", Snapshot: snapshot(100)},
			{Version: "1.1.0", Snapshot: snapshot(120)},
		}

		// when
		baseline, ok := entities.BaselineBefore(timeline, "1.2.0")

		// then
		require.True(t, ok)
		assert.Equal(t, float64(120), baseline.Field("stats").Field("health").Scalar)
	})

	t.Run("should skip snapshots of the version being built", func(t *testing.T) {
		t.Parallel()

		// given
		timeline := []entities.TimelineEntry{
			{Version: "1.0.0", Snapshot: snapshot(100)},
			{Version: "1.1.0", Snapshot: snapshot(120)},
		}

		// when
		baseline, ok := entities.BaselineBefore(timeline, "1.1.0")

		// then
		require.True(t, ok)
		assert.Equal(t, float64(100), baseline.Field("stats").Field("health").Scalar)
	})

	t.Run("should report no baseline for an empty or same-version timeline", func(t *testing.T) {
		t.Parallel()

		// when
		_, okEmpty := entities.BaselineBefore(nil, "1.0.0")
		_, okSame := entities.BaselineBefore([]entities.TimelineEntry{
			{Version: "1.0.0", Snapshot: snapshot(100)},
		}, "1.0.0")

		// then
		assert.False(t, okEmpty)
		assert.False(t, okSame)
	})
}

func TestStatChanges(t *testing.T) {
	t.Parallel()

	t.Run("should report tracked field changes per version", func(t *testing.T) {
		t.Parallel()

		// given
		timeline := []entities.TimelineEntry{
			{Version: "1.0.0", Date: "2026-01-01", Snapshot: snapshot(100)},
			{Version: "1.1.0", Date: "2026-02-01", Snapshot: snapshot(120)},
			{Version: "1.2.0", Date: "2026-03-01", Snapshot: snapshot(120)},
		}

		// when
		changes := entities.StatChanges(timeline, []string{"stats.health", "stats.armor"})

		// then
		require.Len(t, changes, 1)
		assert.Equal(t, "1.1.0", changes[0].Version)
		require.Len(t, changes[0].Changes, 1)
		assert.Equal(t, "stats.health", changes[0].Changes[0].Field)
		assert.Equal(t, float64(100), changes[0].Changes[0].Old)
		assert.Equal(t, float64(120), changes[0].Changes[0].New)
	})

	t.Run("should return nothing for a single-snapshot timeline", func(t *testing.T) {
		t.Parallel()

		// given
		timeline := []entities.TimelineEntry{
			{Version: "1.0.0", Snapshot: snapshot(100)},
		}

		// when / then
		assert.Nil(t, entities.StatChanges(timeline, []string{"stats.health"}))
	})

	t.Run("should report a tracked field appearing for the first time", func(t *testing.T) {
		t.Parallel()

		// given
		timeline := []entities.TimelineEntry{
			{Version: "1.0.0", Snapshot: entities.FromAny(map[string]any{"name": "Fire Imp"})},
			{Version: "1.1.0", Snapshot: snapshot(100)},
		}

		// when
		changes := entities.StatChanges(timeline, []string{"stats.health"})

		// then
		require.Len(t, changes, 1)
		assert.Nil(t, changes[0].Changes[0].Old)
		assert.Equal(t, float64(100), changes[0].Changes[0].New)
	})
}
