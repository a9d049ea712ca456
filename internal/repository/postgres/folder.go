package postgres

import (
	"context"
	"fmt"

	"fitconsole/internal/domain"
	models "fitconsole/internal/domain/models/docsystem"

	"github.com/Masterminds/squirrel"
)

// folderColumns selects a folder with its placed file ids and child folder ids.
var folderColumns = []string{
	"f.id",
	"f.company_id",
	"f.parent_id",
	"f.name",
	"f.description",
	"f.created_at",
	"f.updated_at",
	"COALESCE((SELECT array_agg(r.natural_id ORDER BY r.category, r.position) FROM " + tableRecords +
		" r WHERE r.folder_id = f.id AND r.natural_id IS NOT NULL), '{}') AS files",
	"COALESCE((SELECT array_agg(c.id ORDER BY c.created_at, c.id) FROM " + tableFolders +
		" c WHERE c.parent_id = f.id), '{}') AS subfolders",
}

// ancestorCheckSQL reports whether $2 is $1 or one of its ancestors.
const ancestorCheckSQL = `
	WITH RECURSIVE ancestors AS (
		SELECT id, parent_id FROM ` + tableFolders + ` WHERE id = $1
		UNION
		SELECT f.id, f.parent_id FROM ` + tableFolders + ` f JOIN ancestors a ON f.id = a.parent_id
	)
	SELECT EXISTS (SELECT 1 FROM ancestors WHERE id = $2)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (models.Folder, error) {
	var f models.Folder
	err := row.Scan(
		&f.ID,
		&f.CompanyID,
		&f.ParentID,
		&f.Name,
		&f.Description,
		&f.CreatedAt,
		&f.UpdatedAt,
		&f.Files,
		&f.Subfolders,
	)
	return f, err
}

// GetByID retrieves a folder by ID
func (s *Store) GetByID(ctx context.Context, id, companyID string) (*models.Folder, error) {
	query, args, err := psql.Select(folderColumns...).
		From(tableFolders + " f").
		Where(squirrel.Eq{"f.id": id}).
		Where(squirrel.Eq{"f.company_id": companyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	folder, err := scanFolder(s.executor(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return &folder, nil
}

// listFolders returns all folders of a company in creation order
func (s *Store) listFolders(ctx context.Context, companyID string) ([]models.Folder, error) {
	query, args, err := psql.Select(folderColumns...).
		From(tableFolders + " f").
		Where(squirrel.Eq{"f.company_id": companyID}).
		OrderBy("f.created_at", "f.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.executor(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return folders, nil
}

// Create creates a new folder
func (s *Store) Create(ctx context.Context, folder *models.Folder) error {
	if folder.IsRoot() {
		folder.ParentID = nil
	}

	return s.execTx(ctx, func(ctx context.Context) error {
		if folder.ParentID != nil {
			if err := s.requireFolder(ctx, *folder.ParentID, folder.CompanyID); err != nil {
				return err
			}
		}

		now := s.now()
		id := s.newID()
		query, args, err := psql.Insert(tableFolders).
			Columns("id", "company_id", "parent_id", "name", "description", "created_at", "updated_at").
			Values(id, folder.CompanyID, folder.ParentID, folder.Name, folder.Description, now, now).
			Suffix("RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}

		err = s.executor(ctx).QueryRow(ctx, query, args...).Scan(&folder.CreatedAt, &folder.UpdatedAt)
		if err != nil {
			switch {
			case isPgDuplicateError(err):
				return &domain.ConflictError{
					Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
					ResourceType: "folder",
				}
			case isPgForeignKeyError(err):
				return fmt.Errorf("company %s: %w", folder.CompanyID, domain.ErrNotFound)
			}
			return fmt.Errorf("create folder: %w", err)
		}

		folder.ID = id
		s.logger.Debug("folder inserted", "id", id, "company_id", folder.CompanyID)
		return nil
	})
}

// Update writes name, description and parent. Moving a folder under itself
// or one of its descendants is rejected.
func (s *Store) Update(ctx context.Context, folder *models.Folder) error {
	if folder.IsRoot() {
		folder.ParentID = nil
	}

	return s.execTx(ctx, func(ctx context.Context) error {
		if folder.ParentID != nil {
			if err := s.requireFolder(ctx, *folder.ParentID, folder.CompanyID); err != nil {
				return err
			}

			var cycle bool
			err := s.executor(ctx).QueryRow(ctx, ancestorCheckSQL, *folder.ParentID, folder.ID).Scan(&cycle)
			if err != nil {
				return fmt.Errorf("check folder ancestry: %w", err)
			}
			if cycle {
				return &domain.ValidationError{Message: "cannot move folder into itself or its descendants"}
			}
		}

		query, args, err := psql.Update(tableFolders).
			Set("name", folder.Name).
			Set("description", folder.Description).
			Set("parent_id", folder.ParentID).
			Set("updated_at", s.now()).
			Where(squirrel.Eq{"id": folder.ID}).
			Where(squirrel.Eq{"company_id": folder.CompanyID}).
			Suffix("RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}

		err = s.executor(ctx).QueryRow(ctx, query, args...).Scan(&folder.CreatedAt, &folder.UpdatedAt)
		if err != nil {
			switch {
			case isPgNoRowsError(err):
				return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
			case isPgDuplicateError(err):
				return &domain.ConflictError{
					Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
					ResourceType: "folder",
				}
			case isPgCheckError(err):
				return &domain.ValidationError{Message: "folder cannot be its own parent"}
			}
			return fmt.Errorf("update folder: %w", err)
		}
		return nil
	})
}

// Delete deletes a folder. The schema cascades to subfolders and releases
// placed files to root.
func (s *Store) Delete(ctx context.Context, id, companyID string) error {
	query, args, err := psql.Delete(tableFolders).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"company_id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	result, err := s.executor(ctx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// requireFolder fails with ErrNotFound unless the folder exists in the company
func (s *Store) requireFolder(ctx context.Context, id, companyID string) error {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(tableFolders).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"company_id": companyID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	var exists bool
	if err := s.executor(ctx).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return fmt.Errorf("check folder: %w", err)
	}
	if !exists {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
