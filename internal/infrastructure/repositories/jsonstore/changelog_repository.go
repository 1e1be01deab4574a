package jsonstore

import (
	"context"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

// Published file names.
const (
	indexFile  = "changelog_index.json"
	latestFile = "changelog_latest.json"
)

// ChangelogRepository writes the published changelog documents. Each file is
// written atomically; the bytes depend only on the changelog contents, so a
// republish of an unchanged store rewrites identical files.
type ChangelogRepository struct{}

// NewChangelogRepository creates a new ChangelogRepository.
func NewChangelogRepository() *ChangelogRepository {
	return &ChangelogRepository{}
}

// Write writes the index, every page and the latest pointer.
func (it *ChangelogRepository) Write(
	_ context.Context,
	outputDir string,
	changelog entities.Changelog,
) error {
	for i, page := range changelog.Pages {
		pagePath := filepath.Join(outputDir, changelog.PageFiles[i])
		if err := writeJSONAtomic(pagePath, page); err != nil {
			return err
		}
		logger.Debugf("Generated %s (%d patches)", changelog.PageFiles[i], len(page))
	}

	// Latest is an explicit null when nothing has been published yet.
	var latest any
	if changelog.Latest != nil {
		latest = changelog.Latest
	}
	if err := writeJSONAtomic(filepath.Join(outputDir, latestFile), latest); err != nil {
		return err
	}

	if err := writeJSONAtomic(filepath.Join(outputDir, indexFile), changelog.Index); err != nil {
		return err
	}

	logger.Debugf("Generated %s and %s", latestFile, indexFile)
	return nil
}
