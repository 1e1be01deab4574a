package jsonstore

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/arcanum-gg/patchforge/internal/domain/entities"
)

// PatchRepository persists the patch store as one JSON array file.
//
// Load records a fingerprint of the bytes it read; Save refuses to overwrite
// a store whose on-disk content no longer matches that fingerprint, so two
// builds racing on the same store fail loudly instead of silently losing one
// build's history.
type PatchRepository struct {
	mu           sync.Mutex
	fingerprints map[string][32]byte
}

// NewPatchRepository creates a new PatchRepository.
func NewPatchRepository() *PatchRepository {
	return &PatchRepository{fingerprints: map[string][32]byte{}}
}

var absentFingerprint = [32]byte{}

// Load reads the patch store. A missing file is an empty store.
func (it *PatchRepository) Load(_ context.Context, path string) ([]entities.Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			it.remember(path, absentFingerprint)
			return []entities.Patch{}, nil
		}
		return nil, fmt.Errorf("failed to read patch store %q: %w", path, err)
	}

	var patches []entities.Patch
	if unmarshalErr := json.Unmarshal(data, &patches); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse patch store %q: %w", path, unmarshalErr)
	}

	it.remember(path, sha256.Sum256(data))
	return patches, nil
}

// Save atomically replaces the patch store after verifying that no other
// process modified it since Load.
func (it *PatchRepository) Save(_ context.Context, path string, patches []entities.Patch) error {
	if err := it.checkConflict(path); err != nil {
		return err
	}

	if err := writeJSONAtomic(path, patches); err != nil {
		return err
	}

	data, err := encodeJSON(patches)
	if err != nil {
		return err
	}
	it.remember(path, sha256.Sum256(data))
	return nil
}

func (it *PatchRepository) checkConflict(path string) error {
	it.mu.Lock()
	loaded, seen := it.fingerprints[path]
	it.mu.Unlock()
	if !seen {
		// Save without a prior Load: nothing to compare against.
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if loaded == absentFingerprint {
				return nil
			}
			return fmt.Errorf("%w: %q was removed since it was loaded", entities.ErrStoreConflict, path)
		}
		return fmt.Errorf("failed to re-read patch store %q: %w", path, err)
	}

	if loaded == absentFingerprint {
		return fmt.Errorf("%w: %q was created since it was loaded", entities.ErrStoreConflict, path)
	}
	if sha256.Sum256(data) != loaded {
		return fmt.Errorf("%w: %q changed since it was loaded", entities.ErrStoreConflict, path)
	}
	return nil
}

func (it *PatchRepository) remember(path string, fingerprint [32]byte) {
	it.mu.Lock()
	it.fingerprints[path] = fingerprint
	it.mu.Unlock()
}
