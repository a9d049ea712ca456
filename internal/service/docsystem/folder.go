package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"fitconsole/internal/config"
	"fitconsole/internal/domain"
	models "fitconsole/internal/domain/models/docsystem"
	docsysRepo "fitconsole/internal/domain/repositories/docsystem"
	docsysSvc "fitconsole/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo docsysRepo.FolderRepository
	validator  *ResourceValidator
	cache      *SnapshotCache
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo docsysRepo.FolderRepository,
	validator *ResourceValidator,
	cache *SnapshotCache,
	logger *slog.Logger,
) docsysSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		validator:  validator,
		cache:      cache,
		logger:     logger,
	}
}

// CreateFolder creates a folder at root or under ParentID
func (s *folderService) CreateFolder(ctx context.Context, req *docsysSvc.CreateFolderRequest) (*models.Folder, error) {
	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	if req.ParentID != nil {
		if err := s.validator.ValidateFolder(ctx, *req.ParentID, req.CompanyID); err != nil {
			return nil, err
		}
	}

	folder := &models.Folder{
		CompanyID:   req.CompanyID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}
	s.cache.Invalidate(req.CompanyID)

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"company_id", req.CompanyID,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves a folder by ID
func (s *folderService) GetFolder(ctx context.Context, companyID, folderID string) (*models.Folder, error) {
	if folderID == "" {
		return nil, &domain.ValidationError{Message: "folder id is required"}
	}
	return s.folderRepo.GetByID(ctx, folderID, companyID)
}

// RenameFolder sends the full updated folder to the backend. The current
// folder comes from the cached snapshot when possible, so a rename is one
// round trip. A request that changes nothing returns the folder without a write.
func (s *folderService) RenameFolder(ctx context.Context, folderID string, req *docsysSvc.RenameFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validateRenameRequest(folderID, req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	folder, err := s.validator.LoadFolder(ctx, folderID, req.CompanyID)
	if err != nil {
		return nil, err
	}

	description := req.Description.Or(folder.Description)

	if folder.Name == req.Name && folder.Description == description {
		s.logger.Debug("folder rename is a no-op", "id", folderID)
		return folder, nil
	}

	oldName := folder.Name
	folder.Name = req.Name
	folder.Description = description

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}
	s.cache.Invalidate(req.CompanyID)

	s.logger.Info("folder renamed",
		"id", folder.ID,
		"old_name", oldName,
		"name", folder.Name,
		"company_id", req.CompanyID,
	)

	return folder, nil
}

// DeleteFolder deletes a folder. Backends remove descendant folders with it
// and release placed files back to root.
func (s *folderService) DeleteFolder(ctx context.Context, companyID, folderID string) error {
	if folderID == "" {
		return &domain.ValidationError{Message: "folder id is required"}
	}

	if err := s.folderRepo.Delete(ctx, folderID, companyID); err != nil {
		return err
	}
	s.cache.Invalidate(companyID)

	s.logger.Info("folder deleted",
		"id", folderID,
		"company_id", companyID,
	)

	return nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *docsysSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.Name, folderNameRules()...),
		validation.Field(&req.Description, validation.Length(0, config.MaxFolderDescriptionLength)),
	)
}

// validateRenameRequest validates a folder rename request
func (s *folderService) validateRenameRequest(folderID string, req *docsysSvc.RenameFolderRequest) error {
	if folderID == "" {
		return fmt.Errorf("folder id is required")
	}
	return validation.Errors{
		"company_id":  validation.Validate(req.CompanyID, validation.Required),
		"name":        validation.Validate(req.Name, folderNameRules()...),
		"description": validation.Validate(req.Description.Or(""), validation.Length(0, config.MaxFolderDescriptionLength)),
	}.Filter()
}

func folderNameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(1, config.MaxFolderNameLength),
		validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
	}
}
