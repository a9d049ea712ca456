package docsystem

// Navigation tracks which folder is open. The zero value is AtRoot.
//
// There are exactly two states, AtRoot and InFolder(id). Open always replaces
// the open folder (no nesting, no back stack) and Close always returns to root.
type Navigation struct {
	folderID string
}

// AtRoot returns the initial navigation state.
func AtRoot() Navigation {
	return Navigation{}
}

// InFolder returns the state with folderID open. An empty id is root.
func InFolder(folderID string) Navigation {
	return Navigation{folderID: folderID}
}

// Open moves to InFolder(folderID) from any state.
// Opening "" is the same as Close.
func (n Navigation) Open(folderID string) Navigation {
	return Navigation{folderID: folderID}
}

// Close moves to AtRoot from any state.
func (n Navigation) Close() Navigation {
	return Navigation{}
}

// IsRoot reports whether no folder is open.
func (n Navigation) IsRoot() bool {
	return n.folderID == ""
}

// FolderID returns the open folder id, or nil at root.
func (n Navigation) FolderID() *string {
	if n.folderID == "" {
		return nil
	}
	id := n.folderID
	return &id
}

// String is "root" or "folder:<id>".
func (n Navigation) String() string {
	if n.IsRoot() {
		return "root"
	}
	return "folder:" + n.folderID
}
