package docsystem

import "time"

// CompanyRef identifies the company a snapshot belongs to.
type CompanyRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// FileCollections holds the raw uploaded file collections.
type FileCollections struct {
	EmployeeFiles []SourceRecord `json:"employee_files"`
	CompanyFiles  []SourceRecord `json:"company_files"`
}

// Snapshot is one full backend response for a company at fetch time.
// It always replaces any previous snapshot; it is never merged.
type Snapshot struct {
	Company   CompanyRef                `json:"company"`
	Folders   []Folder                  `json:"folders"`
	Files     FileCollections           `json:"files"`
	Reports   map[string][]SourceRecord `json:"reports"`
	FetchedAt time.Time                 `json:"fetched_at,omitzero"`
}

// FindFolder returns the folder with the given id, or nil.
func (s *Snapshot) FindFolder(id string) *Folder {
	for i := range s.Folders {
		if s.Folders[i].ID == id {
			return &s.Folders[i]
		}
	}
	return nil
}

// Collection returns the source records for a category key.
// The two file collections live under "files"; everything else under "reports".
func (s *Snapshot) Collection(key string) []SourceRecord {
	switch key {
	case CategoryEmployeeFiles:
		return s.Files.EmployeeFiles
	case CategoryCompanyFiles:
		return s.Files.CompanyFiles
	default:
		return s.Reports[key]
	}
}

// Category keys of the two uploaded-file collections.
const (
	CategoryEmployeeFiles = "employee_files"
	CategoryCompanyFiles  = "company_files"
)
