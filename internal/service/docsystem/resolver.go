package docsystem

import (
	"fmt"
	"time"

	models "fitconsole/internal/domain/models/docsystem"
)

// DefaultDateLayout formats report creation dates in synthesized names.
const DefaultDateLayout = "1/2/2006"

const missingDate = "N/A"

// Resolver merges a snapshot's heterogeneous source collections into one
// ordered sequence of file entries. It holds no state besides its
// configuration; every method is a pure function of the snapshot.
type Resolver struct {
	registry   *CategoryRegistry
	dateLayout string
}

// NewResolver creates a resolver. An empty layout uses DefaultDateLayout.
func NewResolver(registry *CategoryRegistry, dateLayout string) *Resolver {
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return &Resolver{registry: registry, dateLayout: dateLayout}
}

// resolved is an entry together with the content it points at.
type resolved struct {
	entry   models.DocumentEntry
	payload string
}

// NormalizeFolders reduces folders to {id, name, parent}. An empty parent id is root.
func (r *Resolver) NormalizeFolders(snap *models.Snapshot) []models.FolderNode {
	nodes := make([]models.FolderNode, 0, len(snap.Folders))
	for _, f := range snap.Folders {
		var parent *string
		if !f.IsRoot() {
			p := *f.ParentID
			parent = &p
		}
		nodes = append(nodes, models.FolderNode{
			ID:       f.ID,
			Name:     f.Name,
			ParentID: parent,
			Files:    f.Files,
		})
	}
	return nodes
}

// Resolve returns every listable file entry: category order, then source order.
// Records without content are skipped.
func (r *Resolver) Resolve(snap *models.Snapshot) []models.DocumentEntry {
	var entries []models.DocumentEntry
	r.walk(snap, func(res resolved) bool {
		entries = append(entries, res.entry)
		return true
	})
	if entries == nil {
		entries = []models.DocumentEntry{}
	}
	return entries
}

// LookupPayload finds the entry with the given id and returns it with its
// content. Lookup is linear over all records in resolver order, so the first
// match wins when a natural id repeats across categories.
func (r *Resolver) LookupPayload(snap *models.Snapshot, id string) (models.DocumentEntry, string, bool) {
	var (
		found resolved
		ok    bool
	)
	r.walk(snap, func(res resolved) bool {
		if res.entry.ID == id {
			found, ok = res, true
			return false
		}
		return true
	})
	return found.entry, found.payload, ok
}

// walk visits resolved records until visit returns false.
func (r *Resolver) walk(snap *models.Snapshot, visit func(resolved) bool) {
	for _, cat := range r.registry.ForSnapshot(snap) {
		for i, rec := range cat.Records(snap) {
			res, ok := r.resolveRecord(cat, i, rec)
			if !ok {
				continue
			}
			if !visit(res) {
				return
			}
		}
	}
}

func (r *Resolver) resolveRecord(cat Category, index int, rec models.SourceRecord) (resolved, bool) {
	payload := cat.PayloadOf(rec)
	if payload == "" {
		return resolved{}, false
	}

	entry := models.DocumentEntry{
		Kind:     models.KindFile,
		Category: cat.Key,
	}

	if rec.Shape == models.ShapeStructured && rec.ID != "" {
		entry.ID = rec.ID
	} else {
		entry.ID = cat.SyntheticID(index)
		entry.Synthetic = true
	}

	switch {
	case rec.Shape == models.ShapeBare:
		entry.Name = rec.Text
	case rec.FileName != "":
		entry.Name = rec.FileName
	case cat.Synthesize == SynthesizeIndex:
		entry.Name = fmt.Sprintf("%s %d", cat.Label, index+1)
	default:
		entry.Name = fmt.Sprintf("%s - %s", cat.Label, r.formatDate(rec.CreatedAt))
	}

	return resolved{entry: entry, payload: payload}, true
}

func (r *Resolver) formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return missingDate
	}
	return t.UTC().Format(r.dateLayout)
}
