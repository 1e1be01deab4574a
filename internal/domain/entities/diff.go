package entities

import (
	"fmt"
	"sort"
	"strings"
)

// ChangeType classifies how an entity changed between two revisions.
type ChangeType string

const (
	ChangeTypeAdd    ChangeType = "add"
	ChangeTypeEdit   ChangeType = "edit"
	ChangeTypeDelete ChangeType = "delete"
)

// DiffKind classifies a single path-level difference.
type DiffKind string

const (
	DiffKindAdded   DiffKind = "added"
	DiffKindRemoved DiffKind = "removed"
	DiffKindEdited  DiffKind = "edited"
)

// Field labels used for whole-entity changes.
const (
	FieldNewEntity = "(new entity)"
	FieldRemoved   = "(removed)"
	fieldFallback  = "entity"
)

// DiffRecord is one path-level difference between two entity states.
// Path is dotted ("stats.health"); an empty path addresses the whole entity.
type DiffRecord struct {
	Path   string   `json:"path"`
	Kind   DiffKind `json:"kind"`
	Before any      `json:"before,omitempty"`
	After  any      `json:"after,omitempty"`
}

// Diff computes the classified set of differences between two entity states.
//
// Shape rules:
//   - absent -> present: add, with a single record carrying the whole entity;
//   - present -> absent: delete, with a single record noting the removal;
//   - present -> present: edit, with a structural walk over the union of
//     object keys (see diffObjects).
//
// An empty record slice means the states are deep-equal and the caller must
// not create a ChangeEntry. Present states must be objects at the top level,
// otherwise ErrInvalidEntityState is returned.
func Diff(before, after Value) (ChangeType, []DiffRecord, error) {
	if before.IsAbsent() && after.IsAbsent() {
		return ChangeTypeEdit, nil, nil
	}

	if before.IsAbsent() {
		if after.Kind != KindObject {
			return "", nil, fmt.Errorf("%w: new state is not an object", ErrInvalidEntityState)
		}
		return ChangeTypeAdd, []DiffRecord{
			{Path: "", Kind: DiffKindAdded, After: after.ToAny()},
		}, nil
	}

	if after.IsAbsent() {
		if before.Kind != KindObject {
			return "", nil, fmt.Errorf("%w: prior state is not an object", ErrInvalidEntityState)
		}
		return ChangeTypeDelete, []DiffRecord{
			{Path: "", Kind: DiffKindRemoved, Before: before.ToAny()},
		}, nil
	}

	if before.Kind != KindObject || after.Kind != KindObject {
		return "", nil, fmt.Errorf("%w: top-level state is not an object", ErrInvalidEntityState)
	}

	records := diffObjects("", before, after)
	return ChangeTypeEdit, records, nil
}

// diffObjects walks the union of keys of two object values in sorted order
// and appends one record per differing path. Nested objects recurse;
// sequences are compared wholesale because entity arrays carry no stable
// identity to align elements on.
func diffObjects(path string, before, after Value) []DiffRecord {
	keys := unionKeys(before.Object, after.Object)

	var records []DiffRecord
	for _, key := range keys {
		childPath := key
		if path != "" {
			childPath = path + "." + key
		}

		prior, inBefore := before.Object[key]
		current, inAfter := after.Object[key]

		switch {
		case !inBefore:
			records = append(records, DiffRecord{
				Path: childPath, Kind: DiffKindAdded, After: current.ToAny(),
			})
		case !inAfter:
			records = append(records, DiffRecord{
				Path: childPath, Kind: DiffKindRemoved, Before: prior.ToAny(),
			})
		default:
			records = append(records, diffValues(childPath, prior, current)...)
		}
	}
	return records
}

// diffValues compares two present values at one path.
func diffValues(path string, before, after Value) []DiffRecord {
	if before.Kind != after.Kind {
		return []DiffRecord{edited(path, before, after)}
	}

	switch before.Kind {
	case KindObject:
		return diffObjects(path, before, after)
	case KindSequence:
		if before.Equal(after) {
			return nil
		}
		// No element-wise addressing: the whole sequence is the unit of change.
		return []DiffRecord{edited(path, before, after)}
	case KindScalar:
		if before.Scalar == after.Scalar {
			return nil
		}
		return []DiffRecord{edited(path, before, after)}
	default:
		return nil
	}
}

func edited(path string, before, after Value) DiffRecord {
	return DiffRecord{
		Path:   path,
		Kind:   DiffKindEdited,
		Before: before.ToAny(),
		After:  after.ToAny(),
	}
}

func unionKeys(before, after map[string]Value) []string {
	seen := make(map[string]struct{}, len(before)+len(after))
	for key := range before {
		seen[key] = struct{}{}
	}
	for key := range after {
		seen[key] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FieldLabel summarizes which aspect of the entity a change touched, for the
// human-readable "field" column of a ChangeEntry. Whole-entity changes use
// the fixed labels; edits list the distinct top-level keys involved.
func FieldLabel(changeType ChangeType, diffs []DiffRecord) string {
	switch changeType {
	case ChangeTypeAdd:
		return FieldNewEntity
	case ChangeTypeDelete:
		return FieldRemoved
	}

	seen := map[string]struct{}{}
	var tops []string
	for _, record := range diffs {
		top, _, _ := strings.Cut(record.Path, ".")
		if top == "" {
			continue
		}
		if _, dup := seen[top]; dup {
			continue
		}
		seen[top] = struct{}{}
		tops = append(tops, top)
	}
	if len(tops) == 0 {
		return fieldFallback
	}
	sort.Strings(tops)
	return strings.Join(tops, ", ")
}
