package docsystem

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	models "fitconsole/internal/domain/models/docsystem"

	"gopkg.in/yaml.v3"
)

//go:embed config/categories.yaml
var categoryFiles embed.FS

// Category groups
const (
	GroupFiles   = "files"
	GroupReports = "reports"
)

// UnknownReportPrefix namespaces the synthetic ids of report categories the
// registry does not know. Registered prefixes may not start with it.
const UnknownReportPrefix = "report-"

// Name synthesis rules for records without a file name
const (
	SynthesizeDate  = "date"
	SynthesizeIndex = "index"
)

// Category describes how one source collection is normalized.
type Category struct {
	Key        string `yaml:"key"`
	Group      string `yaml:"group"`
	Label      string `yaml:"label"`
	IDPrefix   string `yaml:"id_prefix"`
	Synthesize string `yaml:"synthesize"`
}

// PayloadOf returns the record's content for this category: file_data for
// files, summary for reports, the text itself for bare report strings.
// Bare file records carry no content.
func (c Category) PayloadOf(rec models.SourceRecord) string {
	switch rec.Shape {
	case models.ShapeBare:
		if c.Group == GroupReports {
			return rec.Text
		}
		return ""
	default:
		if c.Group == GroupFiles {
			return rec.FileData
		}
		return rec.Summary
	}
}

// Records returns the category's source collection. Report categories always
// read snap.Reports, even when the key names a file collection.
func (c Category) Records(snap *models.Snapshot) []models.SourceRecord {
	if c.Group == GroupFiles {
		return snap.Collection(c.Key)
	}
	return snap.Reports[c.Key]
}

// SyntheticID builds the per-category id of a record without a natural id.
func (c Category) SyntheticID(index int) string {
	return fmt.Sprintf("%s-%d", c.IDPrefix, index)
}

type categoryFile struct {
	Categories []Category `yaml:"categories"`
}

// CategoryRegistry holds the known source categories in listing order.
type CategoryRegistry struct {
	categories []Category
	byKey      map[string]int
}

// NewCategoryRegistry loads the embedded category table.
func NewCategoryRegistry() (*CategoryRegistry, error) {
	data, err := categoryFiles.ReadFile("config/categories.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return ParseCategoryRegistry(data)
}

// ParseCategoryRegistry builds a registry from YAML.
// Keys and id prefixes must be unique so synthetic ids never collide across categories.
func ParseCategoryRegistry(data []byte) (*CategoryRegistry, error) {
	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}

	r := &CategoryRegistry{byKey: make(map[string]int, len(file.Categories))}
	prefixes := make(map[string]string, len(file.Categories))

	for _, c := range file.Categories {
		switch {
		case c.Key == "":
			return nil, fmt.Errorf("category without key")
		case c.Group != GroupFiles && c.Group != GroupReports:
			return nil, fmt.Errorf("category %s: unknown group %q", c.Key, c.Group)
		case c.Synthesize != SynthesizeDate && c.Synthesize != SynthesizeIndex:
			return nil, fmt.Errorf("category %s: unknown synthesize rule %q", c.Key, c.Synthesize)
		case c.IDPrefix == "":
			return nil, fmt.Errorf("category %s: empty id_prefix", c.Key)
		case strings.HasPrefix(c.IDPrefix, UnknownReportPrefix):
			return nil, fmt.Errorf("category %s: id_prefix %q uses the reserved %q namespace", c.Key, c.IDPrefix, UnknownReportPrefix)
		}
		if _, dup := r.byKey[c.Key]; dup {
			return nil, fmt.Errorf("duplicate category %s", c.Key)
		}
		if other, dup := prefixes[c.IDPrefix]; dup {
			return nil, fmt.Errorf("categories %s and %s share id_prefix %q", other, c.Key, c.IDPrefix)
		}

		prefixes[c.IDPrefix] = c.Key
		r.byKey[c.Key] = len(r.categories)
		r.categories = append(r.categories, c)
	}

	return r, nil
}

// Get returns a known category by key.
func (r *CategoryRegistry) Get(key string) (Category, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Category{}, false
	}
	return r.categories[i], true
}

// Known returns the registered categories in listing order.
func (r *CategoryRegistry) Known() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// ForSnapshot returns the categories to resolve for a snapshot: every known
// category, then report categories the registry does not know, sorted by key.
// A report key that names a file category counts as unknown.
//
// Unknown categories get the id prefix "report-<key>". A synthetic id is
// "<prefix>-<index>" and the index has no dash, so distinct prefixes never
// produce the same id.
func (r *CategoryRegistry) ForSnapshot(snap *models.Snapshot) []Category {
	out := r.Known()

	var unknown []string
	for key := range snap.Reports {
		if c, ok := r.Get(key); !ok || c.Group != GroupReports {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	for _, key := range unknown {
		out = append(out, Category{
			Key:        key,
			Group:      GroupReports,
			Label:      humanize(key),
			IDPrefix:   UnknownReportPrefix + key,
			Synthesize: SynthesizeIndex,
		})
	}
	return out
}

// humanize turns "cumulative_culture_reports" into "Cumulative Culture Report".
func humanize(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	if n := len(words); n > 0 && words[n-1] == "reports" {
		words[n-1] = "report"
	}
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + w[size:]
	}
	return strings.Join(words, " ")
}
