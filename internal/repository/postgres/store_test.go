package postgres

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"fitconsole/internal/domain"
	models "fitconsole/internal/domain/models/docsystem"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var folderRowColumns = []string{"id", "company_id", "parent_id", "name", "description", "created_at", "updated_at", "files", "subfolders"}

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	s := NewStore(mock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	fixed := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	s.newID = func() string { return "new-id" }
	return s, mock
}

func q(sql string) string { return regexp.QuoteMeta(sql) }

func nilString() *string { return nil }

func TestStore_GetByID(t *testing.T) {
	now := time.Now()
	parent := "f1"

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
		check   func(t *testing.T, f *models.Folder)
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(folderRowColumns).
					AddRow("f2", "c1", &parent, "2024", "", now, now, []string{"e1"}, []string{"f3"})
				mock.ExpectQuery(q("FROM folders f WHERE f.id = $1 AND f.company_id = $2")).
					WithArgs("f2", "c1").
					WillReturnRows(rows)
			},
			check: func(t *testing.T, f *models.Folder) {
				assert.Equal(t, "2024", f.Name)
				require.NotNil(t, f.ParentID)
				assert.Equal(t, "f1", *f.ParentID)
				assert.Equal(t, []string{"e1"}, f.Files)
				assert.Equal(t, []string{"f3"}, f.Subfolders)
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(q("FROM folders f")).
					WithArgs("f2", "c1").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			tt.setup(mock)

			folder, err := s.GetByID(context.Background(), "f2", "c1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				tt.check(t, folder)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_Create(t *testing.T) {
	created := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		folder  models.Folder
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name:   "root folder",
			folder: models.Folder{CompanyID: "c1", Name: "Contracts", ParentID: func() *string { s := ""; return &s }()},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("INSERT INTO folders (id,company_id,parent_id,name,description,created_at,updated_at)")).
					WithArgs("new-id", "c1", nilString(), "Contracts", "", created, created).
					WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))
				mock.ExpectCommit()
			},
		},
		{
			name:   "child folder",
			folder: models.Folder{CompanyID: "c1", Name: "Offers", ParentID: func() *string { s := "f1"; return &s }()},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("SELECT EXISTS ( SELECT 1 FROM folders WHERE id = $1 AND company_id = $2 )")).
					WithArgs("f1", "c1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectQuery(q("INSERT INTO folders")).
					WithArgs("new-id", "c1", pgxmock.AnyArg(), "Offers", "", created, created).
					WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))
				mock.ExpectCommit()
			},
		},
		{
			name:   "unknown parent",
			folder: models.Folder{CompanyID: "c1", Name: "Offers", ParentID: func() *string { s := "gone"; return &s }()},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("SELECT EXISTS")).
					WithArgs("gone", "c1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:   "duplicate sibling",
			folder: models.Folder{CompanyID: "c1", Name: "Hiring"},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("INSERT INTO folders")).
					WithArgs("new-id", "c1", nilString(), "Hiring", "", created, created).
					WillReturnError(&pgconn.PgError{Code: "23505"})
				mock.ExpectRollback()
			},
			wantErr: domain.ErrConflict,
		},
		{
			name:   "unknown company",
			folder: models.Folder{CompanyID: "c9", Name: "Hiring"},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("INSERT INTO folders")).
					WithArgs("new-id", "c9", nilString(), "Hiring", "", created, created).
					WillReturnError(&pgconn.PgError{Code: "23503"})
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			tt.setup(mock)
			folder := tt.folder

			err := s.Create(context.Background(), &folder)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "new-id", folder.ID)
				assert.Equal(t, created, folder.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_Update(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	parent := "f3"

	tests := []struct {
		name    string
		folder  models.Folder
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name:   "rename at root",
			folder: models.Folder{ID: "f1", CompanyID: "c1", Name: "Recruiting"},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("UPDATE folders SET name = $1, description = $2, parent_id = $3, updated_at = $4 WHERE id = $5 AND company_id = $6 RETURNING created_at, updated_at")).
					WithArgs("Recruiting", "", nilString(), now, "f1", "c1").
					WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
				mock.ExpectCommit()
			},
		},
		{
			name:   "move under descendant",
			folder: models.Folder{ID: "f1", CompanyID: "c1", Name: "Hiring", ParentID: &parent},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("SELECT EXISTS")).
					WithArgs("f3", "c1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectQuery(q("WITH RECURSIVE ancestors")).
					WithArgs("f3", "f1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:   "unknown folder",
			folder: models.Folder{ID: "zz", CompanyID: "c1", Name: "X"},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("UPDATE folders")).
					WithArgs("X", "", nilString(), now, "zz", "c1").
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:   "sibling clash",
			folder: models.Folder{ID: "f3", CompanyID: "c1", Name: "Hiring"},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("UPDATE folders")).
					WithArgs("Hiring", "", nilString(), now, "f3", "c1").
					WillReturnError(&pgconn.PgError{Code: "23505"})
				mock.ExpectRollback()
			},
			wantErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			tt.setup(mock)
			folder := tt.folder

			err := s.Update(context.Background(), &folder)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "not found", affected: 0, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			mock.ExpectExec(q("DELETE FROM folders WHERE id = $1 AND company_id = $2")).
				WithArgs("f1", "c1").
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			err := s.Delete(context.Background(), "f1", "c1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_Move(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "moved",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("SELECT EXISTS")).
					WithArgs("f2", "c1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectExec(q("UPDATE source_records SET folder_id = $1 WHERE company_id = $2 AND natural_id = $3")).
					WithArgs("f2", "c1", "e1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "unknown file",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("SELECT EXISTS")).
					WithArgs("f2", "c1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectExec(q("UPDATE source_records")).
					WithArgs("f2", "c1", "e1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "unknown folder",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(q("SELECT EXISTS")).
					WithArgs("f2", "c1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			tt.setup(mock)

			err := s.Move(context.Background(), "c1", "e1", "f2")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_GetSnapshot(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	parent := "f1"
	e1 := "e1"

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id, name, email FROM companies WHERE id = $1")).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email"}).AddRow("c1", "Acme", "hr@acme.test"))
	mock.ExpectQuery(q("FROM folders f WHERE f.company_id = $1 ORDER BY f.created_at, f.id")).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows(folderRowColumns).
			AddRow("f1", "c1", nilString(), "Hiring", "", now, now, []string{}, []string{"f2"}).
			AddRow("f2", "c1", &parent, "2024", "", now, now, []string{"e1"}, []string{}))
	mock.ExpectQuery(q("FROM source_records WHERE company_id = $1 ORDER BY category, position")).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows(recordColumns).
			AddRow("company_files", shapeBare, nilString(), "", "", "", "", "legacy.pdf", (*time.Time)(nil)).
			AddRow("employee_files", shapeStructured, &e1, "cv.pdf", "text", "", "", "", &now).
			AddRow("final_reports", shapeStructured, nilString(), "", "", "done", "87", "", (*time.Time)(nil)))
	mock.ExpectCommit()

	snap, err := s.GetSnapshot(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "Acme", snap.Company.Name)
	require.Len(t, snap.Folders, 2)
	assert.Nil(t, snap.Folders[0].ParentID)
	assert.Equal(t, []string{"e1"}, snap.Folders[1].Files)

	require.Len(t, snap.Files.CompanyFiles, 1)
	assert.Equal(t, models.Bare("legacy.pdf"), snap.Files.CompanyFiles[0])
	require.Len(t, snap.Files.EmployeeFiles, 1)
	assert.Equal(t, "e1", snap.Files.EmployeeFiles[0].ID)
	require.NotNil(t, snap.Files.EmployeeFiles[0].CreatedAt)
	assert.Equal(t, "87", snap.Reports["final_reports"][0].Score)
	assert.Equal(t, now, snap.FetchedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetSnapshotUnknownCompany(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM companies")).
		WithArgs("c9").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := s.GetSnapshot(context.Background(), "c9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ReplaceRecords(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM source_records WHERE company_id = $1 AND category = $2")).
		WithArgs("c1", "final_reports").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(q("INSERT INTO source_records")).
		WithArgs(
			"c1", "final_reports", 0, shapeStructured, pgxmock.AnyArg(), "", "", "summary", "", "", pgxmock.AnyArg(),
			"c1", "final_reports", 1, shapeBare, pgxmock.AnyArg(), "", "", "", "", "legacy", pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	err := s.ReplaceRecords(context.Background(), "c1", "final_reports", []models.SourceRecord{
		{ID: "r1", Summary: "summary"},
		models.Bare("legacy"),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
