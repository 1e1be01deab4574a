package entities

import (
	"fmt"
	"sort"
)

// DefaultPageSize is the number of patches per changelog page.
const DefaultPageSize = 50

// ChangelogIndex is the pagination manifest published alongside the pages.
type ChangelogIndex struct {
	TotalPatches int      `json:"total_patches"`
	PageSize     int      `json:"page_size"`
	TotalPages   int      `json:"total_pages"`
	Pages        []string `json:"pages"`
}

// Changelog is the full set of consumer-facing changelog documents derived
// from the patch store. Pages are newest-first, page files are named from 1
// with the newest page first. Latest is nil when no patch has been published
// yet; the writer serializes that as an explicit null.
type Changelog struct {
	Pages     [][]Patch
	PageFiles []string
	Latest    *Patch
	Index     ChangelogIndex
}

// BuildChangelog orders, partitions and indexes the closed patches.
// It is a pure function: the same patch store always yields the same
// documents byte for byte. Patches with zero changes are still open and are
// not published.
func BuildChangelog(patches []Patch, pageSize int) (Changelog, error) {
	if pageSize <= 0 {
		return Changelog{}, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	published := make([]Patch, 0, len(patches))
	for _, patch := range patches {
		if len(patch.Changes) == 0 {
			continue
		}
		published = append(published, patch)
	}

	// Newest first by date; equal dates break ties on id descending so the
	// publication order is fully deterministic.
	sort.SliceStable(published, func(i, j int) bool {
		if published[i].Date != published[j].Date {
			return published[i].Date > published[j].Date
		}
		return published[i].ID > published[j].ID
	})

	total := len(published)
	totalPages := (total + pageSize - 1) / pageSize

	pages := make([][]Patch, 0, totalPages)
	pageFiles := make([]string, 0, totalPages)
	for page := 0; page < totalPages; page++ {
		start := page * pageSize
		end := min(start+pageSize, total)
		pages = append(pages, published[start:end])
		pageFiles = append(pageFiles, fmt.Sprintf("changelog_page_%d.json", page+1))
	}

	var latest *Patch
	if total > 0 {
		latest = &published[0]
	}

	return Changelog{
		Pages:     pages,
		PageFiles: pageFiles,
		Latest:    latest,
		Index: ChangelogIndex{
			TotalPatches: total,
			PageSize:     pageSize,
			TotalPages:   totalPages,
			Pages:        pageFiles,
		},
	}, nil
}
