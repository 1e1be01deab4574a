package entities

// TimelineEntry is one historical snapshot of an entity: the full state it
// had once a version was applied. The snapshot tree is opaque to the engine.
type TimelineEntry struct {
	Version  string `json:"version"`
	Date     string `json:"date"`
	Snapshot Value  `json:"snapshot"`
}

// AppendSnapshot appends an entry to an entity timeline unless the tail
// already carries the same version, which makes build re-runs idempotent.
// Timelines are ordered oldest-first; the first entry corresponds to the
// build in which the entity was first observed.
func AppendSnapshot(timeline []TimelineEntry, entry TimelineEntry) ([]TimelineEntry, bool) {
	for _, existing := range timeline {
		if existing.Version == entry.Version {
			return timeline, false
		}
	}
	return append(timeline, entry), true
}

// BaselineBefore returns the most recent snapshot whose version differs from
// the given one, or false when no such snapshot exists. Snapshots represent
// the state after a version is applied, so diffing against the snapshot
// preceding the current version yields a cumulative diff for that version
// even across several incremental commits.
func BaselineBefore(timeline []TimelineEntry, version string) (Value, bool) {
	for i := len(timeline) - 1; i >= 0; i-- {
		if timeline[i].Version != version {
			return timeline[i].Snapshot, true
		}
	}
	return Absent(), false
}

// StatChange is one tracked-field difference between consecutive snapshots.
type StatChange struct {
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

// VersionStatChanges groups the tracked-field changes introduced by one
// version of an entity.
type VersionStatChanges struct {
	Version string       `json:"version"`
	Date    string       `json:"date"`
	Changes []StatChange `json:"changes"`
}

// StatChanges walks consecutive snapshot pairs of a timeline and reports,
// per version, which of the tracked dotted field paths changed. Versions
// with no tracked change are omitted, as are timelines with fewer than two
// snapshots.
func StatChanges(timeline []TimelineEntry, trackedFields []string) []VersionStatChanges {
	if len(timeline) < 2 {
		return nil
	}

	var result []VersionStatChanges
	for i := 1; i < len(timeline); i++ {
		old := timeline[i-1].Snapshot
		current := timeline[i].Snapshot

		var changes []StatChange
		for _, field := range trackedFields {
			oldVal := extractPath(old, field)
			newVal := extractPath(current, field)
			if !oldVal.Equal(newVal) {
				changes = append(changes, StatChange{
					Field: field,
					Old:   oldVal.ToAny(),
					New:   newVal.ToAny(),
				})
			}
		}

		if len(changes) > 0 {
			result = append(result, VersionStatChanges{
				Version: timeline[i].Version,
				Date:    timeline[i].Date,
				Changes: changes,
			})
		}
	}
	return result
}

// extractPath resolves a dotted path like "abilities.primary.damage" inside
// a snapshot, returning Absent when any step is missing.
func extractPath(snapshot Value, dotted string) Value {
	current := snapshot
	start := 0
	for i := 0; i <= len(dotted); i++ {
		if i == len(dotted) || dotted[i] == '.' {
			current = current.Field(dotted[start:i])
			start = i + 1
		}
	}
	return current
}
