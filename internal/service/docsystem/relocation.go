package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"fitconsole/internal/domain"
	docsysRepo "fitconsole/internal/domain/repositories/docsystem"
	docsysSvc "fitconsole/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type relocationService struct {
	fileRepo docsysRepo.FileRepository
	cache    *SnapshotCache
	resolver *Resolver
	logger   *slog.Logger
}

// NewRelocationService creates the file relocation service
func NewRelocationService(
	fileRepo docsysRepo.FileRepository,
	cache *SnapshotCache,
	resolver *Resolver,
	logger *slog.Logger,
) docsysSvc.RelocationService {
	return &relocationService{
		fileRepo: fileRepo,
		cache:    cache,
		resolver: resolver,
		logger:   logger,
	}
}

// MoveFile places a file into a folder. The listing does not change until
// the next fetch; the snapshot is invalidated on success so that fetch is fresh.
// Cycle and ownership checks are left to the backend.
func (s *relocationService) MoveFile(ctx context.Context, req *docsysSvc.MoveFileRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.FileID, validation.Required),
		validation.Field(&req.FolderID, validation.Required),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}

	snap, err := s.cache.Get(ctx, req.CompanyID)
	if err != nil {
		return err
	}
	if snap.FindFolder(req.FileID) != nil {
		return &domain.ValidationError{Message: fmt.Sprintf("%s is a folder, only files can be moved", req.FileID)}
	}
	if entry, _, ok := s.resolver.LookupPayload(snap, req.FileID); ok && entry.Synthetic {
		return &domain.ValidationError{Message: fmt.Sprintf("%s has no persistent id and cannot be moved", req.FileID)}
	}

	if err := s.fileRepo.Move(ctx, req.CompanyID, req.FileID, req.FolderID); err != nil {
		return err
	}
	s.cache.Invalidate(req.CompanyID)

	s.logger.Info("file moved",
		"file_id", req.FileID,
		"folder_id", req.FolderID,
		"company_id", req.CompanyID,
	)

	return nil
}
