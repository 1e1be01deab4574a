package entities

import (
	"fmt"
	"sort"
	"strings"
)

// PatchCategory classifies a published patch.
type PatchCategory string

const (
	PatchCategoryPatch   PatchCategory = "Patch"
	PatchCategoryHotfix  PatchCategory = "Hotfix"
	PatchCategoryContent PatchCategory = "Content"
)

// ContributorTagPrefix marks tags that attribute a change to a commit author.
const ContributorTagPrefix = "contributor:"

// ChangeEntry is a single entity's classified change within a Patch.
type ChangeEntry struct {
	TargetID   string       `json:"target_id"`
	Name       string       `json:"name"`
	Field      string       `json:"field"`
	ChangeType ChangeType   `json:"change_type"`
	Category   string       `json:"category"`
	Diffs      []DiffRecord `json:"diffs"`
}

// Patch is one unit of published change history. A patch stays open (keeps
// absorbing changes for its version) until a release closes it; closed
// patches are immutable and part of the permanent changelog.
type Patch struct {
	ID       string        `json:"id"`
	Version  string        `json:"version"`
	Category PatchCategory `json:"type"`
	Title    string        `json:"title"`
	Date     string        `json:"date"`
	Tags     []string      `json:"tags,omitempty"`
	Changes  []ChangeEntry `json:"changes"`
}

// PatchMeta carries the release context used when a merge has to open a new
// patch: the data version being built, the moment of the build and the
// commit author for contributor attribution.
type PatchMeta struct {
	Version     string
	Date        string
	Category    PatchCategory
	Title       string
	Contributor string
}

// NewPatchID derives the stable patch identifier from a version string.
// The derivation is deterministic so repeated builds of the same version
// reuse the same id.
func NewPatchID(version string) string {
	return "patch_" + strings.ReplaceAll(version, ".", "_")
}

// NewPatch opens a patch for the given release context.
func NewPatch(meta PatchMeta) *Patch {
	category := meta.Category
	if category == "" {
		category = PatchCategoryContent
	}
	title := meta.Title
	if title == "" {
		title = "Update " + meta.Version
	}
	return &Patch{
		ID:       NewPatchID(meta.Version),
		Version:  meta.Version,
		Category: category,
		Title:    title,
		Date:     meta.Date,
		Changes:  []ChangeEntry{},
	}
}

// MergeChange merges one freshly computed entity change into the open patch,
// opening a new patch when none exists. The open patch is threaded through
// explicitly; there is no process-wide current patch.
//
// Semantics:
//   - an entry with zero diffs is a no-op (the diff engine reported
//     "no change"), never an error;
//   - at most one ChangeEntry exists per target id: a prior entry for the
//     same entity is replaced wholesale (last computed wins), so re-running
//     the build over the same commit range cannot duplicate history.
func MergeChange(open *Patch, meta PatchMeta, entry ChangeEntry) (*Patch, error) {
	if len(entry.Diffs) == 0 {
		return open, nil
	}
	if entry.TargetID == "" {
		return open, fmt.Errorf("change entry for %q has no target id", entry.Name)
	}

	if open == nil {
		open = NewPatch(meta)
	}

	replaced := false
	for i := range open.Changes {
		if open.Changes[i].TargetID == entry.TargetID {
			open.Changes[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		open.Changes = append(open.Changes, entry)
	}

	open.Date = meta.Date
	if meta.Contributor != "" {
		open.Tags = addTag(open.Tags, ContributorTagPrefix+meta.Contributor)
	}
	return open, nil
}

// Finalize validates that the patch can be closed and published.
// A patch with zero changes must stay open.
func (p *Patch) Finalize() error {
	if len(p.Changes) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyPatchPublish, p.ID)
	}
	return nil
}

// addTag inserts a tag keeping the list sorted and free of duplicates.
func addTag(tags []string, tag string) []string {
	for _, existing := range tags {
		if existing == tag {
			return tags
		}
	}
	tags = append(tags, tag)
	sort.Strings(tags)
	return tags
}
