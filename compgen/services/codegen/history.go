// compgen/services/codegen/history.go
package codegen

import "compgen/compgen/sources/psql/models"

// History is a linear version history over code snapshots with a cursor
// marking the currently displayed one. Undo and redo only move the cursor;
// the one destructive operation is Append, which drops everything after
// the cursor before adding the new snapshot.
//
// Invariants: the snapshot slice is never empty and 0 <= cursor < len.
type History struct {
	snapshots []models.CodeSnapshot
	cursor    int
}

// LoadFrom builds a History from a persisted snapshot sequence, cursor on
// the last entry. An empty sequence becomes a single empty snapshot.
func LoadFrom(snapshots []models.CodeSnapshot) History {
	if len(snapshots) == 0 {
		return History{snapshots: []models.CodeSnapshot{{}}, cursor: 0}
	}
	copied := make([]models.CodeSnapshot, len(snapshots))
	copy(copied, snapshots)
	return History{snapshots: copied, cursor: len(copied) - 1}
}

// Seek moves the cursor to idx, clamped into the valid range.
func (h *History) Seek(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(h.snapshots)-1 {
		idx = len(h.snapshots) - 1
	}
	h.cursor = idx
}

// Current returns the snapshot under the cursor.
func (h *History) Current() models.CodeSnapshot {
	if len(h.snapshots) == 0 {
		return models.CodeSnapshot{}
	}
	return h.snapshots[h.cursor]
}

// Append truncates everything after the cursor, adds snap, and moves the
// cursor onto it. Appending after an undo discards the redo branch.
func (h *History) Append(snap models.CodeSnapshot) {
	h.snapshots = append(h.snapshots[:h.cursor+1], snap)
	h.cursor = len(h.snapshots) - 1
}

// Undo steps the cursor back one snapshot. Returns false at the lower
// bound, where it is a no-op.
func (h *History) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}

// Redo steps the cursor forward one snapshot. Returns false at the upper
// bound, where it is a no-op.
func (h *History) Redo() bool {
	if h.cursor >= len(h.snapshots)-1 {
		return false
	}
	h.cursor++
	return true
}

// Snapshots returns a copy of the snapshot sequence for persistence.
func (h *History) Snapshots() models.CodeHistory {
	out := make(models.CodeHistory, len(h.snapshots))
	copy(out, h.snapshots)
	return out
}

func (h *History) Cursor() int { return h.cursor }

func (h *History) Len() int { return len(h.snapshots) }
