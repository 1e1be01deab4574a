// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations, no mock frameworks.
package testdoubles

import (
	"context"
	"iter"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
	"github.com/arcanum-gg/patchforge/internal/domain/repositories"
)

// ---------------------------------------------------------------------------
// SpyRevisionRepository
// ---------------------------------------------------------------------------

// SpyRevisionRepository implements repositories.RevisionRepository as a
// configurable spy. Configure the response fields for the methods your test
// exercises, then inspect the call-tracking fields to verify behavior.
type SpyRevisionRepository struct {
	// --- ChangedEntities ---
	ChangeSet  *entities.ChangeSet
	ChangedErr error
	// spy: queries received
	Queries []repositories.RevisionQuery

	// --- ContentAt ---
	// Contents maps "<marker>:<path>" to the state at that revision.
	// Paths without an entry resolve to Absent.
	Contents   map[string]entities.Value
	ContentErr map[string]error

	// --- HeadAuthor ---
	Author    string
	AuthorErr error
}

var _ repositories.RevisionRepository = (*SpyRevisionRepository)(nil)

func (r *SpyRevisionRepository) ChangedEntities(
	_ context.Context,
	query repositories.RevisionQuery,
) (*entities.ChangeSet, error) {
	r.Queries = append(r.Queries, query)
	if r.ChangedErr != nil {
		return nil, r.ChangedErr
	}
	if r.ChangeSet != nil {
		return r.ChangeSet, nil
	}
	return &entities.ChangeSet{Before: "base", After: "head"}, nil
}

func (r *SpyRevisionRepository) ContentAt(
	_ context.Context,
	_, marker, path string,
) (entities.Value, error) {
	key := marker + ":" + path
	if err, ok := r.ContentErr[key]; ok {
		return entities.Absent(), err
	}
	if content, ok := r.Contents[key]; ok {
		return content, nil
	}
	return entities.Absent(), nil
}

func (r *SpyRevisionRepository) HeadAuthor(_ context.Context, _ string) (string, error) {
	return r.Author, r.AuthorErr
}

// ---------------------------------------------------------------------------
// SpyPatchRepository
// ---------------------------------------------------------------------------

// SpyPatchRepository implements repositories.PatchRepository in memory.
type SpyPatchRepository struct {
	Patches []entities.Patch
	LoadErr error
	SaveErr error
	// spy: saves received
	Saved [][]entities.Patch
}

var _ repositories.PatchRepository = (*SpyPatchRepository)(nil)

func (r *SpyPatchRepository) Load(_ context.Context, _ string) ([]entities.Patch, error) {
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	return r.Patches, nil
}

func (r *SpyPatchRepository) Save(_ context.Context, _ string, patches []entities.Patch) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Saved = append(r.Saved, patches)
	r.Patches = patches
	return nil
}

// ---------------------------------------------------------------------------
// SpyTimelineRepository
// ---------------------------------------------------------------------------

// SpyTimelineRepository implements repositories.TimelineRepository in memory.
type SpyTimelineRepository struct {
	Timelines  map[string][]entities.TimelineEntry
	RecordErr  error
	HistoryErr error
	// spy: entity ids recorded
	RecordedIDs []string
}

var _ repositories.TimelineRepository = (*SpyTimelineRepository)(nil)

func (r *SpyTimelineRepository) Record(
	_ context.Context,
	_, entityID string,
	entry entities.TimelineEntry,
) error {
	if r.RecordErr != nil {
		return r.RecordErr
	}
	if r.Timelines == nil {
		r.Timelines = map[string][]entities.TimelineEntry{}
	}
	updated, appended := entities.AppendSnapshot(r.Timelines[entityID], entry)
	if appended {
		r.Timelines[entityID] = updated
		r.RecordedIDs = append(r.RecordedIDs, entityID)
	}
	return nil
}

func (r *SpyTimelineRepository) History(
	_ context.Context,
	_, entityID string,
) (iter.Seq[entities.TimelineEntry], error) {
	if r.HistoryErr != nil {
		return nil, r.HistoryErr
	}
	timeline := r.Timelines[entityID]
	return func(yield func(entities.TimelineEntry) bool) {
		for _, entry := range timeline {
			if !yield(entry) {
				return
			}
		}
	}, nil
}

// ---------------------------------------------------------------------------
// SpyChangelogRepository
// ---------------------------------------------------------------------------

// SpyChangelogRepository implements repositories.ChangelogRepository as a spy.
type SpyChangelogRepository struct {
	WriteErr error
	// spy: changelogs written
	Written []entities.Changelog
}

var _ repositories.ChangelogRepository = (*SpyChangelogRepository)(nil)

func (r *SpyChangelogRepository) Write(
	_ context.Context,
	_ string,
	changelog entities.Changelog,
) error {
	if r.WriteErr != nil {
		return r.WriteErr
	}
	r.Written = append(r.Written, changelog)
	return nil
}

// ---------------------------------------------------------------------------
// SpyGameConfigRepository
// ---------------------------------------------------------------------------

// SpyGameConfigRepository implements repositories.GameConfigRepository in memory.
type SpyGameConfigRepository struct {
	Config  *entities.GameConfig
	LoadErr error
	SaveErr error
	// spy: configs saved
	Saved []*entities.GameConfig
}

var _ repositories.GameConfigRepository = (*SpyGameConfigRepository)(nil)

func (r *SpyGameConfigRepository) Load(_ context.Context, _ string) (*entities.GameConfig, error) {
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	if r.Config != nil {
		return r.Config, nil
	}
	return &entities.GameConfig{Version: "0.0.1"}, nil
}

func (r *SpyGameConfigRepository) Save(
	_ context.Context,
	_ string,
	config *entities.GameConfig,
) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Saved = append(r.Saved, config)
	r.Config = config
	return nil
}

// ---------------------------------------------------------------------------
// SpyChangelogFileRepository
// ---------------------------------------------------------------------------

// SpyChangelogFileRepository implements repositories.ChangelogFileRepository
// in memory.
type SpyChangelogFileRepository struct {
	Content  string
	ReadErr  error
	WriteErr error
	// spy: contents written
	Written []string
}

var _ repositories.ChangelogFileRepository = (*SpyChangelogFileRepository)(nil)

func (r *SpyChangelogFileRepository) Read(_ context.Context, _ string) (string, error) {
	if r.ReadErr != nil {
		return "", r.ReadErr
	}
	return r.Content, nil
}

func (r *SpyChangelogFileRepository) Write(_ context.Context, _ string, content string) error {
	if r.WriteErr != nil {
		return r.WriteErr
	}
	r.Written = append(r.Written, content)
	r.Content = content
	return nil
}

// ---------------------------------------------------------------------------
// StubPublish
// ---------------------------------------------------------------------------

// StubPublish implements commands.Publish-compatible behavior as a spy.
// It lives here instead of a commanddoubles package because the publish
// contract is a single method.
type StubPublish struct {
	Err error
	// spy: invocation count
	Calls int
}

func (p *StubPublish) Execute(_ context.Context, _ *entities.Settings) error {
	p.Calls++
	return p.Err
}
