package jsonstore

import (
	"context"
	"fmt"
	"os"
)

// ChangelogFileRepository reads and writes CHANGELOG.md.
type ChangelogFileRepository struct{}

// NewChangelogFileRepository creates a new ChangelogFileRepository.
func NewChangelogFileRepository() *ChangelogFileRepository {
	return &ChangelogFileRepository{}
}

// Read returns the changelog content; a missing file reads as empty.
func (it *ChangelogFileRepository) Read(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read changelog %q: %w", path, err)
	}
	return string(data), nil
}

// Write atomically replaces the changelog content.
func (it *ChangelogFileRepository) Write(_ context.Context, path, content string) error {
	return writeFileAtomic(path, []byte(content))
}
