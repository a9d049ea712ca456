package docsystem

import (
	"context"

	"fitconsole/internal/domain/models/docsystem"
)

// SnapshotRepository fetches the complete folder/file/report snapshot of a company
type SnapshotRepository interface {
	// GetSnapshot returns a full point-in-time snapshot
	GetSnapshot(ctx context.Context, companyID string) (*docsystem.Snapshot, error)
}
