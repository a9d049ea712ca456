package docsystem

import (
	"context"
	"errors"
	"testing"

	"fitconsole/internal/domain"
	models "fitconsole/internal/domain/models/docsystem"
	"fitconsole/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewService_GetViewAtRoot(t *testing.T) {
	f := newFixture(t, PlacementRoot)

	view, err := f.views.GetView(context.Background(), f.sess)
	require.NoError(t, err)

	assert.Nil(t, view.Location.FolderID)
	assert.Equal(t, []string{"f1", "f3", "e1", "ecf1", "cand-culture-0", "final-0", "cand-role-0", "cand-role-1"}, entryIDs(view.Entries))
	assert.Len(t, view.Destinations, 3)
	assert.False(t, view.FetchedAt.IsZero())
}

func TestViewService_OpenFolder(t *testing.T) {
	f := newFixture(t, PlacementRoot)
	ctx := context.Background()

	view, err := f.views.OpenFolder(ctx, f.sess, "f1")
	require.NoError(t, err)
	require.NotNil(t, view.Location.FolderID)
	assert.Equal(t, "f1", *view.Location.FolderID)
	assert.Equal(t, "Hiring", view.Location.FolderName)
	assert.Equal(t, []string{"f2"}, entryIDs(view.Entries))

	// Opening the same folder again is idempotent
	again, err := f.views.OpenFolder(ctx, f.sess, "f1")
	require.NoError(t, err)
	assert.Equal(t, view, again)
	assert.Equal(t, models.InFolder("f1"), f.sess.Navigation())

	// Opening replaces, it does not nest
	_, err = f.views.OpenFolder(ctx, f.sess, "f3")
	require.NoError(t, err)
	assert.Equal(t, models.InFolder("f3"), f.sess.Navigation())
}

func TestViewService_OpenUnknownFolder(t *testing.T) {
	f := newFixture(t, PlacementRoot)
	f.sess.OpenFolder("f1")

	_, err := f.views.OpenFolder(context.Background(), f.sess, "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, models.InFolder("f1"), f.sess.Navigation(), "navigation unchanged on failure")
}

func TestViewService_CloseFolder(t *testing.T) {
	tests := []struct {
		name  string
		start models.Navigation
	}{
		{name: "from folder", start: models.InFolder("f2")},
		{name: "at root", start: models.AtRoot()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, PlacementRoot)
			if id := tt.start.FolderID(); id != nil {
				f.sess.OpenFolder(*id)
			}

			view, err := f.views.CloseFolder(context.Background(), f.sess)
			require.NoError(t, err)
			assert.True(t, f.sess.Navigation().IsRoot())
			assert.Nil(t, view.Location.FolderID)
			assert.Contains(t, entryIDs(view.Entries), "e1")
		})
	}
}

func TestViewService_OpenEmptyIDCloses(t *testing.T) {
	f := newFixture(t, PlacementRoot)
	f.sess.OpenFolder("f1")

	_, err := f.views.OpenFolder(context.Background(), f.sess, "")
	require.NoError(t, err)
	assert.True(t, f.sess.Navigation().IsRoot())
}

func TestViewService_ReconcilesDeletedOpenFolder(t *testing.T) {
	f := newFixture(t, PlacementRoot)
	ctx := context.Background()

	_, err := f.views.OpenFolder(ctx, f.sess, "f2")
	require.NoError(t, err)

	// Another client deletes the parent; f2 goes with it
	require.NoError(t, f.store.Delete(ctx, "f1", "c1"))
	f.cache.Invalidate("c1")

	view, err := f.views.GetView(ctx, f.sess)
	require.NoError(t, err)

	assert.True(t, f.sess.Navigation().IsRoot())
	assert.Nil(t, view.Location.FolderID)
	assert.Equal(t, "f3", view.Entries[0].ID)
}

func TestViewService_MembershipPlacement(t *testing.T) {
	f := newFixture(t, PlacementMembership)

	view, err := f.views.OpenFolder(context.Background(), f.sess, "f2")
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, entryIDs(view.Entries))
}

func TestViewService_ReadFailureKeepsNavigation(t *testing.T) {
	repo := &fakeSnapshots{err: &domain.NetworkError{Op: "get snapshot", Err: errors.New("timeout")}}
	views := NewViewService(NewSnapshotCache(repo, 0, testLogger()), testResolver(t), PlacementRoot, testLogger())
	sess := session.New("s1", "u1", "c1", "token")
	sess.OpenFolder("f1")

	_, err := views.GetView(context.Background(), sess)

	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, models.InFolder("f1"), sess.Navigation())
}

func TestViewService_Preview(t *testing.T) {
	f := newFixture(t, PlacementRoot)
	ctx := context.Background()

	entry, err := f.views.Preview(ctx, "c1", "final-0")
	require.NoError(t, err)
	require.NotNil(t, entry.Payload)
	assert.Equal(t, "final summary", *entry.Payload)
	assert.Equal(t, "Final Report 1", entry.Name)

	_, err = f.views.Preview(ctx, "c1", "c1f")
	assert.ErrorIs(t, err, domain.ErrNotFound, "records without content are unavailable")
}
