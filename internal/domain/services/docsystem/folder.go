package docsystem

import (
	"context"

	"fitconsole/internal/domain/models/docsystem"
	"fitconsole/internal/httputil"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*docsystem.Folder, error)

	// GetFolder retrieves a folder by ID
	GetFolder(ctx context.Context, companyID, folderID string) (*docsystem.Folder, error)

	// RenameFolder changes a folder's name and/or description; id and parent are stable
	RenameFolder(ctx context.Context, folderID string, req *RenameFolderRequest) (*docsystem.Folder, error)

	// DeleteFolder deletes a folder; descendant folders go with it
	DeleteFolder(ctx context.Context, companyID, folderID string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	CompanyID   string  `json:"-"` // Set by handler from session, not from request body
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"` // null or "" for root
}

// RenameFolderRequest represents a folder rename request
type RenameFolderRequest struct {
	CompanyID   string                  `json:"-"`
	Name        string                  `json:"name"`
	Description httputil.OptionalString `json:"description"` // absent = keep, null = clear
}
