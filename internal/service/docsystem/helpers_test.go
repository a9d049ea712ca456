package docsystem

import (
	"io"
	"log/slog"
	"testing"
	"time"

	models "fitconsole/internal/domain/models/docsystem"
	docsysSvc "fitconsole/internal/domain/services/docsystem"
	"fitconsole/internal/repository/memory"
	"fitconsole/internal/session"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	reg, err := NewCategoryRegistry()
	require.NoError(t, err)
	return NewResolver(reg, "")
}

// sampleSnapshot is a company with one folder tree and a record in most categories.
func sampleSnapshot() *models.Snapshot {
	created := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	return &models.Snapshot{
		Company: models.CompanyRef{ID: "c1", Name: "Acme"},
		Folders: []models.Folder{
			{ID: "f1", Name: "Hiring", ParentID: strPtr("")},
			{ID: "f2", Name: "2024", ParentID: strPtr("f1"), Files: []string{"e1"}},
			{ID: "f3", Name: "Archive"},
		},
		Files: models.FileCollections{
			EmployeeFiles: []models.SourceRecord{
				{ID: "e1", FileName: "cv.pdf", FileData: "extracted text"},
			},
			CompanyFiles: []models.SourceRecord{
				{ID: "c1f", FileName: "empty.pdf"},
				models.Bare("legacy.pdf"),
			},
		},
		Reports: map[string][]models.SourceRecord{
			"employee_culture_fit_reports": {
				{ID: "ecf1", Summary: "fit", CreatedAt: timePtr(created)},
			},
			"candidate_culture_reports": {
				{Summary: "no date"},
			},
			"final_reports": {
				{Summary: "final summary"},
			},
			"candidate_and_role_model_reports": {
				{Summary: "cand role summary"},
				models.Bare("A bare report"),
			},
		},
	}
}

// fixture wires the services over an in-memory backend loaded with sampleSnapshot.
type fixture struct {
	store   *memory.Store
	cache   *SnapshotCache
	views   docsysSvc.ViewService
	folders docsysSvc.FolderService
	moves   docsysSvc.RelocationService
	sess    *session.Session
}

func newFixture(t *testing.T, placement FilePlacement) *fixture {
	t.Helper()
	logger := testLogger()

	store := memory.New(logger)
	store.Load(sampleSnapshot())

	resolver := testResolver(t)
	cache := NewSnapshotCache(store, 0, logger)

	return &fixture{
		store:   store,
		cache:   cache,
		views:   NewViewService(cache, resolver, placement, logger),
		folders: NewFolderService(store, NewResourceValidator(store, cache), cache, logger),
		moves:   NewRelocationService(store, cache, resolver, logger),
		sess:    session.New("s1", "u1", "c1", "token"),
	}
}
