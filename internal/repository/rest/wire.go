package rest

import (
	"bytes"
	"encoding/json"
	"time"

	models "fitconsole/internal/domain/models/docsystem"
)

// folderWire is a folder as the API sends it. Timestamps arrive in several
// formats and are parsed leniently; parent "" means root.
type folderWire struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	ParentID    *string `json:"parent_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Files       idList  `json:"files"`
	Subfolders  idList  `json:"subfolders"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (w folderWire) toModel() models.Folder {
	f := models.Folder{
		ID:         w.ID,
		CompanyID:  w.CompanyID,
		ParentID:   w.ParentID,
		Name:       w.Name,
		Files:      w.Files,
		Subfolders: w.Subfolders,
	}
	if w.Description != nil {
		f.Description = *w.Description
	}
	if f.IsRoot() {
		f.ParentID = nil
	}
	if t := models.ParseTimestamp(w.CreatedAt); t != nil {
		f.CreatedAt = *t
	}
	if t := models.ParseTimestamp(w.UpdatedAt); t != nil {
		f.UpdatedAt = *t
	}
	return f
}

// idList accepts ["id", ...] or [{"id": "..."}, ...].
type idList []string

func (l *idList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '{' {
			var obj struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal(item, &obj); err != nil {
				return err
			}
			if obj.ID != "" {
				ids = append(ids, obj.ID)
			}
			continue
		}
		var id string
		if err := json.Unmarshal(item, &id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	*l = ids
	return nil
}

// snapshotWire is the data of GET /company-files/{id}/complete-files.
type snapshotWire struct {
	Company models.CompanyRef                `json:"company"`
	Folders []folderWire                     `json:"folders"`
	Files   models.FileCollections           `json:"files"`
	Reports map[string][]models.SourceRecord `json:"reports"`
}

func (w snapshotWire) toModel(fetchedAt time.Time) *models.Snapshot {
	snap := &models.Snapshot{
		Company:   w.Company,
		Folders:   make([]models.Folder, 0, len(w.Folders)),
		Files:     w.Files,
		Reports:   w.Reports,
		FetchedAt: fetchedAt,
	}
	if snap.Reports == nil {
		snap.Reports = map[string][]models.SourceRecord{}
	}
	for _, f := range w.Folders {
		snap.Folders = append(snap.Folders, f.toModel())
	}
	return snap
}

// folderBody is sent on create and update. Update sends the full folder.
type folderBody struct {
	ID          string   `json:"id,omitempty"`
	CompanyID   string   `json:"company_id"`
	ParentID    *string  `json:"parent_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Files       []string `json:"files,omitempty"`
	Subfolders  []string `json:"subfolders,omitempty"`
}

func newFolderBody(f *models.Folder) folderBody {
	return folderBody{
		ID:          f.ID,
		CompanyID:   f.CompanyID,
		ParentID:    f.ParentID,
		Name:        f.Name,
		Description: f.Description,
		Files:       f.Files,
		Subfolders:  f.Subfolders,
	}
}
