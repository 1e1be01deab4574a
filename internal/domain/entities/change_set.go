package entities

import (
	"path/filepath"
	"strings"
)

// ChangeStatus is the version-control status of one changed file.
type ChangeStatus string

const (
	StatusAdded    ChangeStatus = "A"
	StatusModified ChangeStatus = "M"
	StatusDeleted  ChangeStatus = "D"
)

// ChangedFile is one entity data file whose content differs between the two
// revision markers of a build.
type ChangedFile struct {
	// Path is repo-relative, e.g. "data/units/fire_imp.json".
	Path   string
	Status ChangeStatus
}

// TargetID derives the entity's stable identifier from its file name.
func (f ChangedFile) TargetID() string {
	base := filepath.Base(f.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Category derives the entity collection from the path segment under the
// data directory ("data/units/x.json" -> "units"). Files directly under the
// data directory have no collection and return "".
func (f ChangedFile) Category() string {
	parts := strings.Split(filepath.ToSlash(f.Path), "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[len(parts)-2]
}

// ChangeSet is the resolved output of the revision resolver: the two markers
// actually compared and the entity files that differ between them.
type ChangeSet struct {
	Before string
	After  string
	Files  []ChangedFile
}
