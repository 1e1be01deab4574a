package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// encodeJSON serializes a document the way every published artifact is
// written: two-space indentation and a trailing newline. encoding/json sorts
// map keys, so equal inputs always produce identical bytes.
func encodeJSON(document any) ([]byte, error) {
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// writeFileAtomic stages the content in a temp file next to the target and
// commits it with a rename, so a failed build never leaves a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to stage write for %q: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, writeErr := tmp.Write(data); writeErr != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to stage write for %q: %w", path, writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to stage write for %q: %w", path, closeErr)
	}

	if chmodErr := os.Chmod(tmpName, filePerm); chmodErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to stage write for %q: %w", path, chmodErr)
	}

	if renameErr := os.Rename(tmpName, path); renameErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to commit write for %q: %w", path, renameErr)
	}
	return nil
}

// writeJSONAtomic encodes and atomically writes one document.
func writeJSONAtomic(path string, document any) error {
	data, err := encodeJSON(document)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}
