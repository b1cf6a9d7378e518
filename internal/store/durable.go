package store

import (
	"context"

	"repair-backend/internal/models"
)

// DurableStore is the crash-surviving backing store behind the in-memory
// working set. Save replaces the entire stored snapshot; Load restores it.
// Implementations must not leave a half-written snapshot visible: a Save
// either fully completes or fails with the previous snapshot intact.
type DurableStore interface {
	Load(ctx context.Context) (models.Snapshot, error)
	Save(ctx context.Context, snap models.Snapshot) error
}
