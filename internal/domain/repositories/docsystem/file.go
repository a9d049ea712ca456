package docsystem

import "context"

// FileRepository defines backend operations on uploaded files and reports
type FileRepository interface {
	// Move places a file into a folder
	Move(ctx context.Context, companyID, fileID, folderID string) error
}

// Backend bundles everything the document library needs from a storage backend
type Backend interface {
	SnapshotRepository
	FolderRepository
	FileRepository
}
