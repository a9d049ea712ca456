package seed

import (
	"context"
	"fmt"
	"log/slog"

	models "fitconsole/internal/domain/models/docsystem"
)

// Target is a writable store that can hold a whole company.
type Target interface {
	SaveCompany(ctx context.Context, company models.CompanyRef) error
	DeleteCompany(ctx context.Context, companyID string) error
	ReplaceRecords(ctx context.Context, companyID, category string, records []models.SourceRecord) error
	Create(ctx context.Context, folder *models.Folder) error
	Move(ctx context.Context, companyID, fileID, folderID string) error
}

// Seeder writes a snapshot into a Target
type Seeder struct {
	target Target
	logger *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(target Target, logger *slog.Logger) *Seeder {
	return &Seeder{target: target, logger: logger}
}

// Seed writes company, records, folders and placements. Folder ids are
// assigned by the target, so parents and placements are remapped. Folders
// must be listed parents first.
func (s *Seeder) Seed(ctx context.Context, snap *models.Snapshot) error {
	companyID := snap.Company.ID

	if err := s.target.SaveCompany(ctx, snap.Company); err != nil {
		return fmt.Errorf("save company: %w", err)
	}

	collections := map[string][]models.SourceRecord{
		models.CategoryEmployeeFiles: snap.Files.EmployeeFiles,
		models.CategoryCompanyFiles:  snap.Files.CompanyFiles,
	}
	for key, records := range snap.Reports {
		collections[key] = records
	}
	for category, records := range collections {
		if err := s.target.ReplaceRecords(ctx, companyID, category, records); err != nil {
			return fmt.Errorf("seed %s: %w", category, err)
		}
		s.logger.Info("records seeded", "category", category, "count", len(records))
	}

	ids := make(map[string]string, len(snap.Folders))
	for _, f := range snap.Folders {
		folder := models.Folder{
			CompanyID:   companyID,
			Name:        f.Name,
			Description: f.Description,
		}
		if !f.IsRoot() {
			parent, ok := ids[*f.ParentID]
			if !ok {
				return fmt.Errorf("folder %s: parent %s not seeded yet", f.ID, *f.ParentID)
			}
			folder.ParentID = &parent
		}
		if err := s.target.Create(ctx, &folder); err != nil {
			return fmt.Errorf("create folder %s: %w", f.Name, err)
		}
		ids[f.ID] = folder.ID
		s.logger.Info("folder seeded", "name", f.Name, "id", folder.ID)

		for _, fileID := range f.Files {
			if err := s.target.Move(ctx, companyID, fileID, folder.ID); err != nil {
				return fmt.Errorf("place %s in %s: %w", fileID, f.Name, err)
			}
		}
	}

	return nil
}

// Reset removes the company and everything it owns
func (s *Seeder) Reset(ctx context.Context, companyID string) error {
	if err := s.target.DeleteCompany(ctx, companyID); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	s.logger.Info("company cleared", "company_id", companyID)
	return nil
}
