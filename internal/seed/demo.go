// Package seed provides the demo company used for local development: the
// memory backend loads it at startup and cmd/seed writes it to PostgreSQL.
package seed

import (
	"time"

	models "fitconsole/internal/domain/models/docsystem"
)

func stringPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// DemoSnapshot returns a company with a small folder tree and at least one
// record in each kind of source category, including legacy bare strings and
// records without ids.
func DemoSnapshot(companyID string) *models.Snapshot {
	jan := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)

	return &models.Snapshot{
		Company: models.CompanyRef{ID: companyID, Name: "Acme Robotics", Email: "hr@acme.example"},
		Folders: []models.Folder{
			{ID: "demo-hiring", Name: "Hiring", Description: "Open roles and candidate material"},
			{ID: "demo-hiring-2024", Name: "2024", ParentID: stringPtr("demo-hiring"), Files: []string{"emp-cv-alex"}},
			{ID: "demo-policies", Name: "Policies", Files: []string{"co-handbook"}},
			{ID: "demo-archive", Name: "Archive"},
		},
		Files: models.FileCollections{
			EmployeeFiles: []models.SourceRecord{
				{ID: "emp-cv-alex", FileName: "alex-cv.pdf", FileData: "Alex Moreno. Senior engineer, 8 years in robotics.", CreatedAt: timePtr(jan)},
				{ID: "emp-review-sam", FileName: "sam-review.docx", FileData: "Sam Lee annual review: exceeds expectations.", CreatedAt: timePtr(mar)},
				{ID: "emp-empty", FileName: "scan-pending.pdf"},
			},
			CompanyFiles: []models.SourceRecord{
				{ID: "co-handbook", FileName: "handbook.pdf", FileData: "Our values: ownership, candour, craft.", CreatedAt: timePtr(jan)},
				{ID: "co-values", FileData: "Mission statement draft.", CreatedAt: timePtr(mar)},
				models.Bare("Legacy onboarding checklist"),
			},
		},
		Reports: map[string][]models.SourceRecord{
			"company_files_reports": {
				{ID: "rep-handbook", Summary: "Handbook emphasises autonomy and written communication.", CreatedAt: timePtr(mar)},
			},
			"employee_culture_fit_reports": {
				{ID: "rep-fit-alex", Summary: "Alex aligns strongly with ownership and craft.", Score: "87", CreatedAt: timePtr(mar)},
			},
			"candidate_culture_reports": {
				{Summary: "Candidate values collaboration over autonomy.", Score: "64"},
			},
			"candidate_chat_reports": {
				{Summary: "Chat shows curiosity and clear communication.", CreatedAt: timePtr(mar)},
			},
			"role_model_employee_chat_reports": {
				{Summary: "Role model stresses mentoring and code review."},
			},
			"company_employee_role_model_chat_reports": {
				{Summary: "Company-wide role model traits: pragmatic, candid."},
			},
			"final_reports": {
				{Summary: "Recommend hire: strong values match, coach on autonomy.", Score: "82"},
			},
			"candidate_and_role_model_reports": {
				{Summary: "Candidate mirrors the role model in mentoring focus."},
				models.Bare("Candidate and role model comparison pending review"),
			},
		},
	}
}
