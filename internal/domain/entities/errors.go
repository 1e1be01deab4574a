package entities

import "errors"

// Error taxonomy for the patch-history engine. Per-entity failures
// (ErrInvalidEntityState) are collected as warnings and do not abort a build;
// store-level failures (ErrStoreConflict) abort the whole step.
var (
	// ErrHistoryUnavailable means the "before" revision marker cannot be
	// resolved (first-ever build, shallow clone). Callers recover by treating
	// every entity present at "after" as newly added.
	ErrHistoryUnavailable = errors.New("revision history unavailable")

	// ErrInvalidEntityState means an entity's state is not a JSON object at
	// the top level. Processing of that single entity is skipped.
	ErrInvalidEntityState = errors.New("invalid entity state")

	// ErrStoreConflict means the patch store changed on disk between load and
	// save. The build must not overwrite the concurrent write.
	ErrStoreConflict = errors.New("patch store modified concurrently")

	// ErrEmptyPatchPublish means an attempt was made to close a patch that
	// has no changes. The patch stays open.
	ErrEmptyPatchPublish = errors.New("cannot publish a patch with zero changes")
)
