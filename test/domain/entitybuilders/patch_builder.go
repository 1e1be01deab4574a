//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/arcanum-gg/patchforge/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PatchBuilder helps create test patches with a fluent interface.
type PatchBuilder struct {
	*testkit.BaseBuilder
	version  string
	date     string
	category entities.PatchCategory
	title    string
	tags     []string
	changes  []entities.ChangeEntry
}

// NewPatchBuilder creates a new patch builder with sensible defaults.
func NewPatchBuilder() *PatchBuilder {
	return &PatchBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		version:     "1.0.0",
		date:        "2026-01-01T00:00:00Z",
		category:    entities.PatchCategoryContent,
		title:       "Update 1.0.0",
		changes: []entities.ChangeEntry{{
			TargetID:   "fire_imp",
			Name:       "Fire Imp",
			Field:      "stats",
			ChangeType: entities.ChangeTypeEdit,
			Category:   "units",
			Diffs: []entities.DiffRecord{{
				Path:   "stats.health",
				Kind:   entities.DiffKindEdited,
				Before: float64(100),
				After:  float64(120),
			}},
		}},
	}
}

// WithVersion sets the patch version (and with it the derived id).
func (b *PatchBuilder) WithVersion(version string) *PatchBuilder {
	b.version = version
	return b
}

// WithDate sets the publication date.
func (b *PatchBuilder) WithDate(date string) *PatchBuilder {
	b.date = date
	return b
}

// WithCategory sets the patch category.
func (b *PatchBuilder) WithCategory(category entities.PatchCategory) *PatchBuilder {
	b.category = category
	return b
}

// WithTitle sets the patch title.
func (b *PatchBuilder) WithTitle(title string) *PatchBuilder {
	b.title = title
	return b
}

// WithTags sets the patch tags.
func (b *PatchBuilder) WithTags(tags ...string) *PatchBuilder {
	b.tags = tags
	return b
}

// WithChanges sets the change entries.
func (b *PatchBuilder) WithChanges(changes ...entities.ChangeEntry) *PatchBuilder {
	b.changes = changes
	return b
}

// Build creates the patch (satisfies testkit.Builder interface).
func (b *PatchBuilder) Build() interface{} {
	return b.BuildPatch()
}

// BuildPatch creates the patch with a concrete return type.
func (b *PatchBuilder) BuildPatch() entities.Patch {
	return entities.Patch{
		ID:       entities.NewPatchID(b.version),
		Version:  b.version,
		Category: b.category,
		Title:    b.title,
		Date:     b.date,
		Tags:     b.tags,
		Changes:  b.changes,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PatchBuilder) Reset() testkit.Builder {
	fresh := NewPatchBuilder()
	b.BaseBuilder.Reset()
	b.version = fresh.version
	b.date = fresh.date
	b.category = fresh.category
	b.title = fresh.title
	b.tags = nil
	b.changes = fresh.changes
	return b
}

// Clone creates a deep copy of the PatchBuilder.
func (b *PatchBuilder) Clone() testkit.Builder {
	return &PatchBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		version:     b.version,
		date:        b.date,
		category:    b.category,
		title:       b.title,
		tags:        append([]string(nil), b.tags...),
		changes:     append([]entities.ChangeEntry(nil), b.changes...),
	}
}
