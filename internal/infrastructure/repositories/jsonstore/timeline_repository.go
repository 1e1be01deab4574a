package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

// TimelineRepository persists per-entity snapshot timelines, one JSON array
// file per entity, oldest-first.
type TimelineRepository struct{}

// NewTimelineRepository creates a new TimelineRepository.
func NewTimelineRepository() *TimelineRepository {
	return &TimelineRepository{}
}

// Record appends a snapshot to the entity's timeline file. A version already
// present in the timeline is skipped silently so build re-runs stay
// idempotent.
func (it *TimelineRepository) Record(
	_ context.Context,
	dir, entityID string,
	entry entities.TimelineEntry,
) error {
	timeline, err := readTimeline(timelinePath(dir, entityID))
	if err != nil {
		return err
	}

	updated, appended := entities.AppendSnapshot(timeline, entry)
	if !appended {
		logger.Debugf("Timeline already has %s for %s, skipping.", entry.Version, entityID)
		return nil
	}

	return writeJSONAtomic(timelinePath(dir, entityID), updated)
}

// History returns the entity's snapshots as a restartable sequence.
func (it *TimelineRepository) History(
	_ context.Context,
	dir, entityID string,
) (iter.Seq[entities.TimelineEntry], error) {
	timeline, err := readTimeline(timelinePath(dir, entityID))
	if err != nil {
		return nil, err
	}

	return func(yield func(entities.TimelineEntry) bool) {
		for _, entry := range timeline {
			if !yield(entry) {
				return
			}
		}
	}, nil
}

func readTimeline(path string) ([]entities.TimelineEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read timeline %q: %w", path, err)
	}

	var timeline []entities.TimelineEntry
	if unmarshalErr := json.Unmarshal(data, &timeline); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse timeline %q: %w", path, unmarshalErr)
	}
	return timeline, nil
}

func timelinePath(dir, entityID string) string {
	return filepath.Join(dir, entityID+".json")
}
