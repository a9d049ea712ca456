package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "fitconsole/internal/domain/services/docsystem"
	"fitconsole/internal/httputil"
)

// DocumentHandler serves the Documents view and its navigation
type DocumentHandler struct {
	viewService docsysSvc.ViewService
	logger      *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(viewService docsysSvc.ViewService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		viewService: viewService,
		logger:      logger,
	}
}

// ListDocuments returns the listing for the session's current location
// GET /api/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	view, err := h.viewService.GetView(r.Context(), sess)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// GetDocument returns one entry with its payload
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	entry, err := h.viewService.Preview(r.Context(), sess.CompanyID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entry)
}

// OpenFolder opens a folder and returns its listing
// POST /api/navigation/folders/{id}
func (h *DocumentHandler) OpenFolder(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	view, err := h.viewService.OpenFolder(r.Context(), sess, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// CloseFolder returns to root and returns the root listing
// DELETE /api/navigation/folder
func (h *DocumentHandler) CloseFolder(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	view, err := h.viewService.CloseFolder(r.Context(), sess)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}
