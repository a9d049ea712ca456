package docsystem

import "time"

// EntryKind distinguishes folders from files/reports in a listing.
type EntryKind string

const (
	KindFolder EntryKind = "folder"
	KindFile   EntryKind = "file"
)

// DocumentEntry is a display-ready item: a folder or a file/report.
// Entries are derived per resolver pass and never persisted; synthetic ids
// are only unique within the pass that produced them.
type DocumentEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      EntryKind `json:"type"`
	Category  string    `json:"category,omitempty"`  // source category key; empty for folders
	Synthetic bool      `json:"synthetic,omitempty"` // id generated at ingestion, not stable across fetches
	ParentID  *string   `json:"parent_id,omitempty"` // folders only
	Payload   *string   `json:"payload,omitempty"`   // set only by preview
}

// IsFolder reports whether the entry is a folder.
func (e DocumentEntry) IsFolder() bool {
	return e.Kind == KindFolder
}

// Location is the breadcrumb of a view.
type Location struct {
	FolderID   *string `json:"folder_id"` // nil at root
	FolderName string  `json:"folder_name,omitempty"`
}

// View is the projected Documents listing for one navigation state.
type View struct {
	Location     Location        `json:"location"`
	Entries      []DocumentEntry `json:"entries"`
	Destinations []FolderOption  `json:"destinations"` // "Move to..." targets
	FetchedAt    time.Time       `json:"fetched_at,omitzero"`
}
