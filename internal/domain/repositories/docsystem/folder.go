package docsystem

import (
	"context"

	"fitconsole/internal/domain/models/docsystem"
)

// FolderRepository defines backend operations for folders
type FolderRepository interface {
	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id, companyID string) (*docsystem.Folder, error)

	// Create creates a new folder; ID and timestamps are filled in from the backend
	Create(ctx context.Context, folder *docsystem.Folder) error

	// Update replaces a folder with the given full record
	Update(ctx context.Context, folder *docsystem.Folder) error

	// Delete deletes a folder
	Delete(ctx context.Context, id, companyID string) error
}
