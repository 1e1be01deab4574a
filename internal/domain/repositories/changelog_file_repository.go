package repositories

import "context"

// ChangelogFileRepository reads and writes the human-readable CHANGELOG.md.
// A missing file reads as empty content.
type ChangelogFileRepository interface {
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path, content string) error
}
