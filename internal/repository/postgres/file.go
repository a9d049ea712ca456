package postgres

import (
	"context"
	"fmt"

	"fitconsole/internal/domain"
	models "fitconsole/internal/domain/models/docsystem"

	"github.com/Masterminds/squirrel"
)

// Move places a file with a persistent id into a folder of the same company
func (s *Store) Move(ctx context.Context, companyID, fileID, folderID string) error {
	return s.execTx(ctx, func(ctx context.Context) error {
		if err := s.requireFolder(ctx, folderID, companyID); err != nil {
			return err
		}

		query, args, err := psql.Update(tableRecords).
			Set("folder_id", folderID).
			Where(squirrel.Eq{"company_id": companyID}).
			Where(squirrel.Eq{"natural_id": fileID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}

		result, err := s.executor(ctx).Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("move file: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
		}

		s.logger.Debug("file placed", "file_id", fileID, "folder_id", folderID)
		return nil
	})
}

// SaveCompany inserts or renames a company
func (s *Store) SaveCompany(ctx context.Context, company models.CompanyRef) error {
	query, args, err := psql.Insert(tableCompanies).
		Columns("id", "name", "email").
		Values(company.ID, company.Name, company.Email).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := s.executor(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save company: %w", err)
	}
	return nil
}

// ReplaceRecords replaces every record of one category for a company.
// Positions follow slice order; placements of replaced records are lost.
func (s *Store) ReplaceRecords(ctx context.Context, companyID, category string, records []models.SourceRecord) error {
	return s.execTx(ctx, func(ctx context.Context) error {
		query, args, err := psql.Delete(tableRecords).
			Where(squirrel.Eq{"company_id": companyID}).
			Where(squirrel.Eq{"category": category}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		if _, err := s.executor(ctx).Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("clear records: %w", err)
		}

		if len(records) == 0 {
			return nil
		}

		insert := psql.Insert(tableRecords).
			Columns("company_id", "category", "position", "shape", "natural_id",
				"file_name", "file_data", "summary", "score", "body", "created_at")
		for i, r := range records {
			if r.Shape == models.ShapeBare {
				insert = insert.Values(companyID, category, i, shapeBare, nil, "", "", "", "", r.Text, nil)
				continue
			}
			var naturalID *string
			if r.ID != "" {
				id := r.ID
				naturalID = &id
			}
			insert = insert.Values(companyID, category, i, shapeStructured, naturalID,
				r.FileName, r.FileData, r.Summary, r.Score, "", r.CreatedAt)
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		if _, err := s.executor(ctx).Exec(ctx, query, args...); err != nil {
			if isPgDuplicateError(err) {
				return &domain.ConflictError{Message: "duplicate record id in " + category, ResourceType: "file"}
			}
			if isPgForeignKeyError(err) {
				return fmt.Errorf("company %s: %w", companyID, domain.ErrNotFound)
			}
			return fmt.Errorf("insert records: %w", err)
		}
		return nil
	})
}

// DeleteCompany removes a company; folders and records cascade
func (s *Store) DeleteCompany(ctx context.Context, companyID string) error {
	query, args, err := psql.Delete(tableCompanies).
		Where(squirrel.Eq{"id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := s.executor(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}
