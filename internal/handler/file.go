package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "fitconsole/internal/domain/services/docsystem"
	"fitconsole/internal/httputil"
)

// FileHandler handles file relocation requests
type FileHandler struct {
	relocationService docsysSvc.RelocationService
	logger            *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(relocationService docsysSvc.RelocationService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		relocationService: relocationService,
		logger:            logger,
	}
}

// MoveFile places a file into a folder. The next listing fetch reflects it.
// PUT /api/folders/{id}/files/{fileID}/move
func (h *FileHandler) MoveFile(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	req := docsysSvc.MoveFileRequest{
		CompanyID: sess.CompanyID,
		FileID:    r.PathValue("fileID"),
		FolderID:  r.PathValue("id"),
	}
	if err := h.relocationService.MoveFile(r.Context(), &req); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondNoContent(w)
}
