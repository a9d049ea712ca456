package docsystem

import (
	"testing"

	models "fitconsole/internal/domain/models/docsystem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryIDs(entries []models.DocumentEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestProject(t *testing.T) {
	r := testResolver(t)
	snap := sampleSnapshot()
	folders := r.NormalizeFolders(snap)
	files := r.Resolve(snap)

	tests := []struct {
		name      string
		nav       models.Navigation
		placement FilePlacement
		want      []string
	}{
		{
			name:      "root lists root folders then every file",
			nav:       models.AtRoot(),
			placement: PlacementRoot,
			want:      []string{"f1", "f3", "e1", "ecf1", "cand-culture-0", "final-0", "cand-role-0", "cand-role-1"},
		},
		{
			name:      "folder lists only its children",
			nav:       models.InFolder("f1"),
			placement: PlacementRoot,
			want:      []string{"f2"},
		},
		{
			name:      "leaf folder is empty under root placement",
			nav:       models.InFolder("f2"),
			placement: PlacementRoot,
			want:      []string{},
		},
		{
			name:      "membership lists files named by the folder",
			nav:       models.InFolder("f2"),
			placement: PlacementMembership,
			want:      []string{"e1"},
		},
		{
			name:      "membership at root still lists every file",
			nav:       models.AtRoot(),
			placement: PlacementMembership,
			want:      []string{"f1", "f3", "e1", "ecf1", "cand-culture-0", "final-0", "cand-role-0", "cand-role-1"},
		},
		{
			name:      "unknown folder lists nothing",
			nav:       models.InFolder("gone"),
			placement: PlacementMembership,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(folders, files, tt.nav, tt.placement)
			assert.Equal(t, tt.want, entryIDs(got))
		})
	}
}

func TestProject_FoldersFirstWithKind(t *testing.T) {
	r := testResolver(t)
	snap := sampleSnapshot()

	got := Project(r.NormalizeFolders(snap), r.Resolve(snap), models.AtRoot(), PlacementRoot)

	require.NotEmpty(t, got)
	seenFile := false
	for _, e := range got {
		if e.IsFolder() {
			assert.False(t, seenFile, "folder %s listed after a file", e.ID)
			assert.Empty(t, e.Category)
		} else {
			seenFile = true
		}
	}
}

func TestProject_MembershipSkipsSyntheticIDs(t *testing.T) {
	folders := []models.FolderNode{{ID: "f1", Name: "A", Files: []string{"final-0", "r1"}}}
	files := []models.DocumentEntry{
		{ID: "final-0", Kind: models.KindFile, Synthetic: true},
		{ID: "r1", Kind: models.KindFile},
	}

	got := Project(folders, files, models.InFolder("f1"), PlacementMembership)
	assert.Equal(t, []string{"r1"}, entryIDs(got))
}

func TestDestinations(t *testing.T) {
	r := testResolver(t)

	got := Destinations(r.NormalizeFolders(sampleSnapshot()))
	assert.Equal(t, []models.FolderOption{
		{ID: "f1", Name: "Hiring"},
		{ID: "f2", Name: "2024"},
		{ID: "f3", Name: "Archive"},
	}, got)
}

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		in      string
		want    FilePlacement
		wantErr bool
	}{
		{in: "", want: PlacementRoot},
		{in: "root", want: PlacementRoot},
		{in: "membership", want: PlacementMembership},
		{in: "everywhere", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlacement(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
