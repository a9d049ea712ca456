package docsystem

import (
	"time"
)

type Folder struct {
	ID          string    `json:"id" db:"id"`
	CompanyID   string    `json:"company_id" db:"company_id"`
	ParentID    *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Files       []string  `json:"files"`      // ids of files placed in this folder, when the backend reports them
	Subfolders  []string  `json:"subfolders"` // ids of direct children, when the backend reports them
	CreatedAt   time.Time `json:"created_at,omitzero" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitzero" db:"updated_at"`
}

// IsRoot reports whether the folder sits at the top level.
// Backends are inconsistent about root: both null and "" are accepted.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil || *f.ParentID == ""
}

// FolderNode is the normalized folder shape used by the projector.
type FolderNode struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ParentID *string  `json:"parent_id"`
	Files    []string `json:"-"`
}

// FolderOption is a "Move to..." destination.
type FolderOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
