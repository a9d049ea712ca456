// Package memory is an in-process document library backend for local
// development and tests. It enforces the same rules as the PostgreSQL store:
// parents belong to the same company, sibling names are unique, the folder
// graph stays acyclic, deleting a folder removes its subfolders and releases
// the files placed in them back to root.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fitconsole/internal/domain"
	models "fitconsole/internal/domain/models/docsystem"
	docsysRepo "fitconsole/internal/domain/repositories/docsystem"

	"github.com/google/uuid"
)

type companyData struct {
	company   models.CompanyRef
	folders   []*models.Folder // creation order
	files     models.FileCollections
	reports   map[string][]models.SourceRecord
	placement map[string]string // file id -> folder id
}

// Store implements docsystem.Backend in memory.
type Store struct {
	mu        sync.RWMutex
	companies map[string]*companyData
	now       func() time.Time
	logger    *slog.Logger
}

var _ docsysRepo.Backend = (*Store)(nil)

// New creates an empty store.
func New(logger *slog.Logger) *Store {
	return &Store{
		companies: make(map[string]*companyData),
		now:       time.Now,
		logger:    logger,
	}
}

// Load replaces a company's data with the contents of snap.
// Folder ids, parents and "files" placement lists are taken as given.
func (s *Store) Load(snap *models.Snapshot) {
	data := &companyData{
		company:   snap.Company,
		files:     copyCollections(snap.Files),
		reports:   copyReports(snap.Reports),
		placement: make(map[string]string),
	}
	for i := range snap.Folders {
		f := copyFolder(&snap.Folders[i])
		f.CompanyID = snap.Company.ID
		if f.IsRoot() {
			f.ParentID = nil
		}
		for _, fileID := range f.Files {
			data.placement[fileID] = f.ID
		}
		f.Files, f.Subfolders = nil, nil
		data.folders = append(data.folders, f)
	}

	s.mu.Lock()
	s.companies[snap.Company.ID] = data
	s.mu.Unlock()

	s.logger.Debug("company loaded",
		"company_id", snap.Company.ID,
		"folders", len(data.folders),
	)
}

// GetSnapshot returns a copy of everything stored for the company.
func (s *Store) GetSnapshot(ctx context.Context, companyID string) (*models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.company(companyID)
	if err != nil {
		return nil, err
	}

	snap := &models.Snapshot{
		Company:   data.company,
		Folders:   make([]models.Folder, 0, len(data.folders)),
		Files:     copyCollections(data.files),
		Reports:   copyReports(data.reports),
		FetchedAt: s.now(),
	}
	for _, f := range data.folders {
		out := *copyFolder(f)
		out.Files = data.filesIn(f.ID)
		out.Subfolders = data.childIDs(f.ID)
		snap.Folders = append(snap.Folders, out)
	}
	return snap, nil
}

// GetByID retrieves a folder by ID.
func (s *Store) GetByID(ctx context.Context, id, companyID string) (*models.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.company(companyID)
	if err != nil {
		return nil, err
	}
	f := data.folder(id)
	if f == nil {
		return nil, folderNotFound(id)
	}
	out := copyFolder(f)
	out.Files = data.filesIn(id)
	out.Subfolders = data.childIDs(id)
	return out, nil
}

// Create stores a new folder and fills in its id and timestamps.
func (s *Store) Create(ctx context.Context, folder *models.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.company(folder.CompanyID)
	if err != nil {
		return err
	}
	if folder.IsRoot() {
		folder.ParentID = nil
	} else if data.folder(*folder.ParentID) == nil {
		return folderNotFound(*folder.ParentID)
	}
	if err := data.checkSiblingName(folder.ParentID, folder.Name, ""); err != nil {
		return err
	}

	now := s.now()
	folder.ID = uuid.NewString()
	folder.CreatedAt = now
	folder.UpdatedAt = now
	folder.Files, folder.Subfolders = nil, nil

	data.folders = append(data.folders, copyFolder(folder))
	return nil
}

// Update replaces the stored folder's name, description and parent.
func (s *Store) Update(ctx context.Context, folder *models.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.company(folder.CompanyID)
	if err != nil {
		return err
	}
	stored := data.folder(folder.ID)
	if stored == nil {
		return folderNotFound(folder.ID)
	}

	var parent *string
	if !folder.IsRoot() {
		p := *folder.ParentID
		if data.folder(p) == nil {
			return folderNotFound(p)
		}
		if err := data.checkNoCycle(folder.ID, p); err != nil {
			return err
		}
		parent = &p
	}
	if err := data.checkSiblingName(parent, folder.Name, folder.ID); err != nil {
		return err
	}

	stored.Name = folder.Name
	stored.Description = folder.Description
	stored.ParentID = parent
	stored.UpdatedAt = s.now()

	folder.ParentID = parent
	folder.UpdatedAt = stored.UpdatedAt
	folder.CreatedAt = stored.CreatedAt
	return nil
}

// Delete removes a folder and its descendants. Files placed in any removed
// folder go back to root.
func (s *Store) Delete(ctx context.Context, id, companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.company(companyID)
	if err != nil {
		return err
	}
	if data.folder(id) == nil {
		return folderNotFound(id)
	}

	doomed := map[string]bool{id: true}
	for changed := true; changed; {
		changed = false
		for _, f := range data.folders {
			if !doomed[f.ID] && f.ParentID != nil && doomed[*f.ParentID] {
				doomed[f.ID] = true
				changed = true
			}
		}
	}

	kept := data.folders[:0]
	for _, f := range data.folders {
		if !doomed[f.ID] {
			kept = append(kept, f)
		}
	}
	data.folders = kept

	released := 0
	for fileID, folderID := range data.placement {
		if doomed[folderID] {
			delete(data.placement, fileID)
			released++
		}
	}

	s.logger.Debug("folder tree deleted",
		"id", id,
		"folders", len(doomed),
		"files_released", released,
	)
	return nil
}

// Move places a file with a persistent id into a folder.
func (s *Store) Move(ctx context.Context, companyID, fileID, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.company(companyID)
	if err != nil {
		return err
	}
	if data.folder(folderID) == nil {
		return folderNotFound(folderID)
	}
	if !data.hasFile(fileID) {
		return &domain.NotFoundError{Message: fmt.Sprintf("file %s not found", fileID)}
	}

	data.placement[fileID] = folderID
	return nil
}

func (s *Store) company(companyID string) (*companyData, error) {
	data, ok := s.companies[companyID]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("company %s not found", companyID)}
	}
	return data, nil
}

func (d *companyData) folder(id string) *models.Folder {
	for _, f := range d.folders {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (d *companyData) childIDs(parentID string) []string {
	ids := []string{}
	for _, f := range d.folders {
		if f.ParentID != nil && *f.ParentID == parentID {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// filesIn lists placed file ids in source order.
func (d *companyData) filesIn(folderID string) []string {
	ids := []string{}
	d.eachFileID(func(id string) {
		if d.placement[id] == folderID {
			ids = append(ids, id)
		}
	})
	return ids
}

func (d *companyData) hasFile(fileID string) bool {
	found := false
	d.eachFileID(func(id string) {
		if id == fileID {
			found = true
		}
	})
	return found
}

// eachFileID visits the natural ids of structured records.
func (d *companyData) eachFileID(visit func(string)) {
	collections := [][]models.SourceRecord{d.files.EmployeeFiles, d.files.CompanyFiles}
	for _, recs := range d.reports {
		collections = append(collections, recs)
	}
	for _, recs := range collections {
		for _, r := range recs {
			if r.Shape == models.ShapeStructured && r.ID != "" {
				visit(r.ID)
			}
		}
	}
}

func (d *companyData) checkSiblingName(parentID *string, name, selfID string) error {
	for _, f := range d.folders {
		if f.ID == selfID || f.Name != name {
			continue
		}
		if (f.ParentID == nil && parentID == nil) || (f.ParentID != nil && parentID != nil && *f.ParentID == *parentID) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
				ResourceType: "folder",
				ResourceID:   f.ID,
			}
		}
	}
	return nil
}

// checkNoCycle rejects making newParentID an ancestor-or-self of folderID.
func (d *companyData) checkNoCycle(folderID, newParentID string) error {
	for current, steps := &newParentID, 0; current != nil && steps <= len(d.folders); steps++ {
		if *current == folderID {
			return &domain.ValidationError{Message: "cannot move folder into itself or its descendants"}
		}
		parent := d.folder(*current)
		if parent == nil {
			return nil
		}
		current = parent.ParentID
	}
	return nil
}

func folderNotFound(id string) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
}

func copyFolder(f *models.Folder) *models.Folder {
	out := *f
	if f.ParentID != nil {
		p := *f.ParentID
		out.ParentID = &p
	}
	out.Files = append([]string(nil), f.Files...)
	out.Subfolders = append([]string(nil), f.Subfolders...)
	return &out
}

func copyCollections(c models.FileCollections) models.FileCollections {
	return models.FileCollections{
		EmployeeFiles: append([]models.SourceRecord(nil), c.EmployeeFiles...),
		CompanyFiles:  append([]models.SourceRecord(nil), c.CompanyFiles...),
	}
}

func copyReports(reports map[string][]models.SourceRecord) map[string][]models.SourceRecord {
	out := make(map[string][]models.SourceRecord, len(reports))
	for k, v := range reports {
		out[k] = append([]models.SourceRecord(nil), v...)
	}
	return out
}
