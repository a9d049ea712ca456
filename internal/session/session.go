// Package session holds the per-login application context: who is signed in,
// which company they act for, the bearer token forwarded to the backend and
// the Documents navigation state. A session is created when a verified token
// is first seen and cleared at logout; nothing here is process-global.
package session

import (
	"context"
	"sync"
	"time"

	"fitconsole/internal/domain/models/docsystem"
)

// Session is one signed-in user's application context.
type Session struct {
	ID        string
	UserID    string
	CompanyID string
	CreatedAt time.Time

	mu         sync.RWMutex
	token      string
	navigation docsystem.Navigation
}

// New creates a session at root navigation.
func New(id, userID, companyID, token string) *Session {
	return &Session{
		ID:        id,
		UserID:    userID,
		CompanyID: companyID,
		CreatedAt: time.Now(),
		token:     token,
	}
}

// Token returns the bearer token forwarded to the backend.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the bearer token (refreshed tokens keep the same session).
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Navigation returns the current navigation state.
func (s *Session) Navigation() docsystem.Navigation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.navigation
}

// OpenFolder replaces the open folder.
func (s *Session) OpenFolder(folderID string) docsystem.Navigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigation = s.navigation.Open(folderID)
	return s.navigation
}

// CloseFolder returns to root.
func (s *Session) CloseFolder() docsystem.Navigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigation = s.navigation.Close()
	return s.navigation
}

// CloseFolderIf returns to root only if folderID is still the open folder.
// Used when reconciling against a snapshot, so a concurrent Open is not undone.
func (s *Session) CloseFolderIf(folderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.navigation.FolderID()
	if current == nil || *current != folderID {
		return false
	}
	s.navigation = s.navigation.Close()
	return true
}

type contextKey struct{}

// WithSession stores the session in the context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session in the context, or nil.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(contextKey{}).(*Session)
	return sess
}

// TokenFromContext returns the bearer token of the session in ctx, if any.
func TokenFromContext(ctx context.Context) string {
	if sess := FromContext(ctx); sess != nil {
		return sess.Token()
	}
	return ""
}
