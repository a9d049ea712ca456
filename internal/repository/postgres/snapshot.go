package postgres

import (
	"context"
	"fmt"
	"time"

	"fitconsole/internal/domain"
	models "fitconsole/internal/domain/models/docsystem"

	"github.com/Masterminds/squirrel"
)

const (
	shapeStructured = "structured"
	shapeBare       = "bare"
)

var recordColumns = []string{
	"category",
	"shape",
	"natural_id",
	"file_name",
	"file_data",
	"summary",
	"score",
	"body",
	"created_at",
}

// GetSnapshot reads company, folders and records in one transaction so the
// result is a consistent point-in-time view.
func (s *Store) GetSnapshot(ctx context.Context, companyID string) (*models.Snapshot, error) {
	snap := &models.Snapshot{
		Reports: map[string][]models.SourceRecord{},
	}

	err := s.execTx(ctx, func(ctx context.Context) error {
		company, err := s.getCompany(ctx, companyID)
		if err != nil {
			return err
		}
		snap.Company = *company

		if snap.Folders, err = s.listFolders(ctx, companyID); err != nil {
			return err
		}
		return s.loadRecords(ctx, companyID, snap)
	})
	if err != nil {
		return nil, err
	}

	snap.FetchedAt = s.now()
	return snap, nil
}

func (s *Store) getCompany(ctx context.Context, companyID string) (*models.CompanyRef, error) {
	query, args, err := psql.Select("id", "name", "email").
		From(tableCompanies).
		Where(squirrel.Eq{"id": companyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c models.CompanyRef
	if err := s.executor(ctx).QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Email); err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("company %s: %w", companyID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// loadRecords fills the file collections and report categories in position order.
func (s *Store) loadRecords(ctx context.Context, companyID string, snap *models.Snapshot) error {
	query, args, err := psql.Select(recordColumns...).
		From(tableRecords).
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("category", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	rows, err := s.executor(ctx).Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			category, shape string
			naturalID       *string
			createdAt       *time.Time
			rec             models.SourceRecord
			body            string
		)
		err := rows.Scan(
			&category,
			&shape,
			&naturalID,
			&rec.FileName,
			&rec.FileData,
			&rec.Summary,
			&rec.Score,
			&body,
			&createdAt,
		)
		if err != nil {
			return fmt.Errorf("scan record: %w", err)
		}

		if shape == shapeBare {
			rec = models.Bare(body)
		} else {
			if naturalID != nil {
				rec.ID = *naturalID
			}
			rec.CreatedAt = createdAt
		}

		switch category {
		case models.CategoryEmployeeFiles:
			snap.Files.EmployeeFiles = append(snap.Files.EmployeeFiles, rec)
		case models.CategoryCompanyFiles:
			snap.Files.CompanyFiles = append(snap.Files.CompanyFiles, rec)
		default:
			snap.Reports[category] = append(snap.Reports[category], rec)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate records: %w", err)
	}
	return nil
}
