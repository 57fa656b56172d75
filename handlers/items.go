package handlers

import (
	"github.com/google/uuid"
)

// itemDiff is the result of reconciling submitted item lines against
// the rows already stored for a parent record.
type itemDiff[T any] struct {
	toUpdate []T
	toInsert []T
	toDelete []uuid.UUID
}

// diffItems partitions submitted items: a line whose id matches an
// existing row is an update, a line with no id (or an id the parent
// does not own) is an insert, and every existing row not resubmitted
// is a delete. The caller applies all three sets in one transaction
// so the reconciliation is atomic.
func diffItems[T any](existingIDs []uuid.UUID, submitted []T, id func(T) uuid.UUID) itemDiff[T] {
	existing := make(map[uuid.UUID]bool, len(existingIDs))
	for _, eid := range existingIDs {
		existing[eid] = true
	}

	var diff itemDiff[T]
	seen := make(map[uuid.UUID]bool, len(submitted))
	for _, item := range submitted {
		itemID := id(item)
		if itemID != uuid.Nil && existing[itemID] {
			diff.toUpdate = append(diff.toUpdate, item)
			seen[itemID] = true
		} else {
			diff.toInsert = append(diff.toInsert, item)
		}
	}
	for _, eid := range existingIDs {
		if !seen[eid] {
			diff.toDelete = append(diff.toDelete, eid)
		}
	}
	return diff
}
