package handler

import (
	"log/slog"
	"net/http"
	"time"

	"fitconsole/internal/httputil"
	"fitconsole/internal/session"
)

// SessionHandler exposes the caller's session
type SessionHandler struct {
	sessions *session.Store
	logger   *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Store, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

type sessionResponse struct {
	UserID       string    `json:"user_id"`
	CompanyID    string    `json:"company_id"`
	OpenFolderID *string   `json:"open_folder_id"`
	StartedAt    time.Time `json:"started_at"`
}

// GetSession returns the current session
// GET /api/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sessionResponse{
		UserID:       sess.UserID,
		CompanyID:    sess.CompanyID,
		OpenFolderID: sess.Navigation().FolderID(),
		StartedAt:    sess.CreatedAt,
	})
}

// EndSession clears the session (logout)
// DELETE /api/session
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	h.sessions.End(sess.ID)
	httputil.RespondNoContent(w)
}

// HealthCheck is a simple health check endpoint
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
