package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"fitconsole/internal/domain"
	models "fitconsole/internal/domain/models/docsystem"
	docsysSvc "fitconsole/internal/domain/services/docsystem"
	"fitconsole/internal/session"
)

const unknownFolderName = "Folder"

type viewService struct {
	cache     *SnapshotCache
	resolver  *Resolver
	placement FilePlacement
	logger    *slog.Logger
}

// NewViewService creates the Documents view projector
func NewViewService(
	cache *SnapshotCache,
	resolver *Resolver,
	placement FilePlacement,
	logger *slog.Logger,
) docsysSvc.ViewService {
	return &viewService{
		cache:     cache,
		resolver:  resolver,
		placement: placement,
		logger:    logger,
	}
}

// GetView projects the session's current location
func (s *viewService) GetView(ctx context.Context, sess *session.Session) (*models.View, error) {
	snap, err := s.cache.Get(ctx, sess.CompanyID)
	if err != nil {
		return nil, err
	}
	return s.project(sess, snap), nil
}

// OpenFolder opens folderID if it exists in the current snapshot
func (s *viewService) OpenFolder(ctx context.Context, sess *session.Session, folderID string) (*models.View, error) {
	if folderID == "" {
		return s.CloseFolder(ctx, sess)
	}

	snap, err := s.cache.Get(ctx, sess.CompanyID)
	if err != nil {
		return nil, err
	}
	if snap.FindFolder(folderID) == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folderID)}
	}

	nav := sess.OpenFolder(folderID)
	s.logger.Debug("folder opened", "session_id", sess.ID, "navigation", nav.String())

	return s.project(sess, snap), nil
}

// CloseFolder returns to root. Closing at root is a no-op
func (s *viewService) CloseFolder(ctx context.Context, sess *session.Session) (*models.View, error) {
	sess.CloseFolder()

	snap, err := s.cache.Get(ctx, sess.CompanyID)
	if err != nil {
		return nil, err
	}
	return s.project(sess, snap), nil
}

// Preview resolves one entry with its content. Folders have no content.
func (s *viewService) Preview(ctx context.Context, companyID, entryID string) (*models.DocumentEntry, error) {
	snap, err := s.cache.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}

	entry, payload, ok := s.resolver.LookupPayload(snap, entryID)
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %s unavailable", entryID)}
	}
	entry.Payload = &payload
	return &entry, nil
}

// project builds the view for the session's navigation against snap.
// An open folder missing from snap sends the session back to root first.
func (s *viewService) project(sess *session.Session, snap *models.Snapshot) *models.View {
	nav := sess.Navigation()

	var open *models.Folder
	if id := nav.FolderID(); id != nil {
		open = snap.FindFolder(*id)
		if open == nil {
			if sess.CloseFolderIf(*id) {
				s.logger.Info("open folder no longer exists, returning to root",
					"session_id", sess.ID,
					"folder_id", *id,
				)
			}
			nav = models.AtRoot()
		}
	}

	folders := s.resolver.NormalizeFolders(snap)
	files := s.resolver.Resolve(snap)

	view := &models.View{
		Entries:      Project(folders, files, nav, s.placement),
		Destinations: Destinations(folders),
		FetchedAt:    snap.FetchedAt,
	}
	if open != nil {
		view.Location.FolderID = nav.FolderID()
		view.Location.FolderName = open.Name
		if view.Location.FolderName == "" {
			view.Location.FolderName = unknownFolderName
		}
	}
	return view
}
