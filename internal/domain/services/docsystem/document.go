package docsystem

import (
	"context"

	"fitconsole/internal/domain/models/docsystem"
	"fitconsole/internal/session"
)

// ViewService projects the document library for a session's navigation state
type ViewService interface {
	// GetView returns the listing for the session's current location
	GetView(ctx context.Context, sess *session.Session) (*docsystem.View, error)

	// OpenFolder makes folderID the open folder and returns the new view
	OpenFolder(ctx context.Context, sess *session.Session, folderID string) (*docsystem.View, error)

	// CloseFolder returns to root and returns the new view
	CloseFolder(ctx context.Context, sess *session.Session) (*docsystem.View, error)

	// Preview returns one entry with its payload resolved
	Preview(ctx context.Context, companyID, entryID string) (*docsystem.DocumentEntry, error)
}

// RelocationService moves files between folders
type RelocationService interface {
	// MoveFile places a file entry into a folder
	MoveFile(ctx context.Context, req *MoveFileRequest) error
}

// MoveFileRequest represents a file move request
type MoveFileRequest struct {
	CompanyID string `json:"-"`
	FileID    string `json:"file_id"`
	FolderID  string `json:"folder_id"`
}
