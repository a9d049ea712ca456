package docsystem

import (
	"context"
	"fmt"

	models "fitconsole/internal/domain/models/docsystem"
	docsysRepo "fitconsole/internal/domain/repositories/docsystem"
)

// ResourceValidator checks that referenced folders exist before a mutation
// is sent to the backend. The company's cached snapshot answers first; the
// backend is asked only on a cache miss.
type ResourceValidator struct {
	folderRepo docsysRepo.FolderRepository
	cache      *SnapshotCache
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(folderRepo docsysRepo.FolderRepository, cache *SnapshotCache) *ResourceValidator {
	return &ResourceValidator{folderRepo: folderRepo, cache: cache}
}

// ValidateFolder ensures a folder exists for the company.
// Returns nil if folderID is empty (root is always valid).
// Returns domain.ErrNotFound if the folder doesn't exist.
func (v *ResourceValidator) ValidateFolder(ctx context.Context, folderID, companyID string) error {
	if folderID == "" {
		return nil
	}
	if _, err := v.LoadFolder(ctx, folderID, companyID); err != nil {
		return fmt.Errorf("invalid folder: %w", err)
	}
	return nil
}

// LoadFolder returns a copy of the folder the caller may modify, taken from
// the cached snapshot when present and fetched from the backend otherwise.
func (v *ResourceValidator) LoadFolder(ctx context.Context, folderID, companyID string) (*models.Folder, error) {
	if v.cache != nil {
		if snap, ok := v.cache.Peek(companyID); ok {
			if cached := snap.FindFolder(folderID); cached != nil {
				return detachFolder(cached, companyID), nil
			}
		}
	}
	return v.folderRepo.GetByID(ctx, folderID, companyID)
}

// detachFolder copies a folder out of a shared snapshot.
func detachFolder(f *models.Folder, companyID string) *models.Folder {
	out := *f
	out.Files = append([]string(nil), f.Files...)
	out.Subfolders = append([]string(nil), f.Subfolders...)
	if out.IsRoot() {
		out.ParentID = nil
	} else {
		parent := *f.ParentID
		out.ParentID = &parent
	}
	if out.CompanyID == "" {
		out.CompanyID = companyID
	}
	return &out
}
