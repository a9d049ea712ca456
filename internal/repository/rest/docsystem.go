package rest

import (
	"context"
	"net/http"
	"net/url"
	"time"

	models "fitconsole/internal/domain/models/docsystem"
)

// GetSnapshot fetches the complete folder/file/report listing of a company.
func (c *Client) GetSnapshot(ctx context.Context, companyID string) (*models.Snapshot, error) {
	var data snapshotWire
	path := "/company-files/" + url.PathEscape(companyID) + "/complete-files"
	if err := c.do(ctx, "GET /company-files/{id}/complete-files", http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return data.toModel(time.Now()), nil
}

// GetByID retrieves a folder by ID.
func (c *Client) GetByID(ctx context.Context, id, companyID string) (*models.Folder, error) {
	var data folderWire
	if err := c.do(ctx, "GET /folder/{id}", http.MethodGet, "/folder/"+url.PathEscape(id), nil, &data); err != nil {
		return nil, err
	}
	folder := data.toModel()
	if folder.CompanyID == "" {
		folder.CompanyID = companyID
	}
	return &folder, nil
}

// Create creates a folder; the API assigns its id.
func (c *Client) Create(ctx context.Context, folder *models.Folder) error {
	var data folderWire
	if err := c.do(ctx, "POST /folder/", http.MethodPost, "/folder/", newFolderBody(folder), &data); err != nil {
		return err
	}
	created := data.toModel()
	if created.CompanyID == "" {
		created.CompanyID = folder.CompanyID
	}
	*folder = created
	return nil
}

// Update replaces a folder with the given full record.
func (c *Client) Update(ctx context.Context, folder *models.Folder) error {
	path := "/folder/" + url.PathEscape(folder.ID)
	return c.do(ctx, "PUT /folder/{id}", http.MethodPut, path, newFolderBody(folder), nil)
}

// Delete deletes a folder.
func (c *Client) Delete(ctx context.Context, id, companyID string) error {
	return c.do(ctx, "DELETE /folder/{id}", http.MethodDelete, "/folder/"+url.PathEscape(id), nil, nil)
}

// Move places a file into a folder.
func (c *Client) Move(ctx context.Context, companyID, fileID, folderID string) error {
	path := "/folder/" + url.PathEscape(folderID) + "/file/" + url.PathEscape(fileID) + "/move"
	return c.do(ctx, "PUT /folder/{id}/file/{file_id}/move", http.MethodPut, path, nil, nil)
}
