package docsystem

import (
	"fmt"

	"fitconsole/internal/config"
	models "fitconsole/internal/domain/models/docsystem"
)

// FilePlacement decides which file entries are listed inside an open folder.
type FilePlacement string

const (
	// PlacementRoot lists files only at root; folders show only subfolders.
	PlacementRoot FilePlacement = config.PlacementRoot
	// PlacementMembership lists, inside a folder, the files named by its "files" array.
	PlacementMembership FilePlacement = config.PlacementMembership
)

// ParsePlacement validates a FILE_PLACEMENT value. Empty is PlacementRoot.
func ParsePlacement(s string) (FilePlacement, error) {
	switch FilePlacement(s) {
	case "", PlacementRoot:
		return PlacementRoot, nil
	case PlacementMembership:
		return PlacementMembership, nil
	default:
		return "", fmt.Errorf("unknown file placement %q (want %s or %s)", s, PlacementRoot, PlacementMembership)
	}
}

// Project filters folders and resolved files down to what is visible at nav.
// Folders come first in snapshot order, then files in resolver order.
func Project(folders []models.FolderNode, files []models.DocumentEntry, nav models.Navigation, placement FilePlacement) []models.DocumentEntry {
	open := nav.FolderID()
	entries := make([]models.DocumentEntry, 0, len(folders)+len(files))

	var current *models.FolderNode
	for i := range folders {
		f := &folders[i]
		if open != nil && f.ID == *open {
			current = f
		}
		if !sameParent(f.ParentID, open) {
			continue
		}
		entries = append(entries, models.DocumentEntry{
			ID:       f.ID,
			Name:     f.Name,
			Kind:     models.KindFolder,
			ParentID: f.ParentID,
		})
	}

	switch {
	case open == nil:
		entries = append(entries, files...)
	case placement == PlacementMembership && current != nil && len(current.Files) > 0:
		members := make(map[string]struct{}, len(current.Files))
		for _, id := range current.Files {
			members[id] = struct{}{}
		}
		for _, e := range files {
			if _, ok := members[e.ID]; ok && !e.Synthetic {
				entries = append(entries, e)
			}
		}
	}

	return entries
}

// Destinations lists every folder as a "Move to..." target, in snapshot order.
func Destinations(folders []models.FolderNode) []models.FolderOption {
	out := make([]models.FolderOption, 0, len(folders))
	for _, f := range folders {
		out = append(out, models.FolderOption{ID: f.ID, Name: f.Name})
	}
	return out
}

func sameParent(parent, open *string) bool {
	if parent == nil || open == nil {
		return parent == nil && open == nil
	}
	return *parent == *open
}
