package memory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"fitconsole/internal/domain"
	models "fitconsole/internal/domain/models/docsystem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Load(&models.Snapshot{
		Company: models.CompanyRef{ID: "c1", Name: "Acme"},
		Folders: []models.Folder{
			{ID: "f1", Name: "Hiring", ParentID: strPtr("")},
			{ID: "f2", Name: "2024", ParentID: strPtr("f1"), Files: []string{"e1"}},
			{ID: "f3", Name: "Q1", ParentID: strPtr("f2")},
		},
		Files: models.FileCollections{
			EmployeeFiles: []models.SourceRecord{{ID: "e1", FileName: "cv.pdf", FileData: "text"}},
			CompanyFiles:  []models.SourceRecord{{ID: "c9", FileName: "handbook.pdf", FileData: "rules"}},
		},
		Reports: map[string][]models.SourceRecord{
			"final_reports": {{Summary: "no id"}, {ID: "r7", Summary: "final"}},
		},
	})
	return s
}

func TestStore_GetSnapshot(t *testing.T) {
	s := newTestStore(t)

	snap, err := s.GetSnapshot(context.Background(), "c1")
	require.NoError(t, err)

	require.Len(t, snap.Folders, 3)
	assert.Nil(t, snap.Folders[0].ParentID, "empty parent normalized to root")
	assert.Equal(t, []string{"f2"}, snap.Folders[0].Subfolders)
	assert.Equal(t, []string{"e1"}, snap.Folders[1].Files)
	assert.False(t, snap.FetchedAt.IsZero())

	// Returned snapshot is a copy
	snap.Folders[0].Name = "changed"
	again, err := s.GetSnapshot(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Hiring", again.Folders[0].Name)

	_, err = s.GetSnapshot(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		folder  models.Folder
		wantErr error
	}{
		{name: "root folder", folder: models.Folder{CompanyID: "c1", Name: "Contracts"}},
		{name: "empty parent is root", folder: models.Folder{CompanyID: "c1", Name: "Contracts", ParentID: strPtr("")}},
		{name: "child folder", folder: models.Folder{CompanyID: "c1", Name: "Offers", ParentID: strPtr("f1")}},
		{name: "same name elsewhere", folder: models.Folder{CompanyID: "c1", Name: "2024"}},
		{name: "duplicate sibling", folder: models.Folder{CompanyID: "c1", Name: "Hiring"}, wantErr: domain.ErrConflict},
		{name: "unknown parent", folder: models.Folder{CompanyID: "c1", Name: "X", ParentID: strPtr("gone")}, wantErr: domain.ErrNotFound},
		{name: "unknown company", folder: models.Folder{CompanyID: "c2", Name: "X"}, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			f := tt.folder

			err := s.Create(ctx, &f)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, f.ID)
			assert.False(t, f.CreatedAt.IsZero())

			got, err := s.GetByID(ctx, f.ID, "c1")
			require.NoError(t, err)
			assert.Equal(t, f.Name, got.Name)
		})
	}
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		folder  models.Folder
		wantErr error
	}{
		{name: "rename", folder: models.Folder{ID: "f3", CompanyID: "c1", Name: "Q2", ParentID: strPtr("f2")}},
		{name: "move to root", folder: models.Folder{ID: "f3", CompanyID: "c1", Name: "Q1"}},
		{name: "into own descendant", folder: models.Folder{ID: "f1", CompanyID: "c1", Name: "Hiring", ParentID: strPtr("f3")}, wantErr: domain.ErrValidation},
		{name: "into itself", folder: models.Folder{ID: "f2", CompanyID: "c1", Name: "2024", ParentID: strPtr("f2")}, wantErr: domain.ErrValidation},
		{name: "sibling clash", folder: models.Folder{ID: "f3", CompanyID: "c1", Name: "Hiring"}, wantErr: domain.ErrConflict},
		{name: "unknown folder", folder: models.Folder{ID: "zz", CompanyID: "c1", Name: "X"}, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			f := tt.folder

			err := s.Update(ctx, &f)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got, err := s.GetByID(ctx, f.ID, "c1")
			require.NoError(t, err)
			assert.Equal(t, f.Name, got.Name)
			assert.Equal(t, f.ParentID, got.ParentID)
		})
	}
}

func TestStore_DeleteCascadesAndReleasesFiles(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Delete(ctx, "f1", "c1"))

	snap, err := s.GetSnapshot(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, snap.Folders, "descendants deleted with the folder")
	assert.Len(t, snap.Files.EmployeeFiles, 1, "files are never deleted")

	// e1 is back at root: moving it again works and lists it once
	require.NoError(t, s.Create(ctx, &models.Folder{CompanyID: "c1", Name: "New"}))
	snap, err = s.GetSnapshot(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, snap.Folders[0].Files)

	err = s.Delete(ctx, "f1", "c1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_Move(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		fileID   string
		folderID string
		wantErr  error
	}{
		{name: "employee file", fileID: "e1", folderID: "f3"},
		{name: "report with id", fileID: "r7", folderID: "f1"},
		{name: "synthetic id has no record", fileID: "final-0", folderID: "f1", wantErr: domain.ErrNotFound},
		{name: "folder is not a file", fileID: "f2", folderID: "f1", wantErr: domain.ErrNotFound},
		{name: "unknown folder", fileID: "e1", folderID: "gone", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)

			err := s.Move(ctx, "c1", tt.fileID, tt.folderID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got, err := s.GetByID(ctx, tt.folderID, "c1")
			require.NoError(t, err)
			assert.Contains(t, got.Files, tt.fileID)
		})
	}
}
