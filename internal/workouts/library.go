package workouts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	validCategories = []string{"Bike", "Run", "Swim"}
	validMetrics    = []string{"HR", "Power", "Pace", "Meters"}
)

// copyrightPrefix marks the licensing notice files shipped alongside the
// workout documents; they are never listed as workouts.
const copyrightPrefix = "Copyright_"

// NotFoundError reports an empty result (unknown sub-category, empty
// directory) as distinct from invalid input, so the tool layer can render
// it as an informational message rather than an error.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// FileSummary is one catalog entry returned by List. Err is set when the
// backing file could not be read or parsed; sibling entries are
// unaffected.
type FileSummary struct {
	Filename        string
	Description     string
	DurationMinutes int
	Target          string
	Err             error
}

// Library serves workout documents from a directory tree with one
// subdirectory per (category, metric) pair. Derived entirely at query
// time by directory listing; nothing is cached or persisted.
type Library struct {
	root string
}

func NewLibrary(root string) *Library {
	return &Library{root: root}
}

func validateMetric(metric string) error {
	for _, m := range validMetrics {
		if metric == m {
			return nil
		}
	}
	return fmt.Errorf("Invalid metric '%s'. Valid options are: %s", metric, strings.Join(validMetrics, ", "))
}

func validateCategory(category string) error {
	for _, c := range validCategories {
		if category == c {
			return nil
		}
	}
	return fmt.Errorf("Invalid category '%s'. Valid options are: %s", category, strings.Join(validCategories, ", "))
}

// dirFor resolves the on-disk directory for a (category, metric) pair via
// the collection's fixed naming template.
func (l *Library) dirFor(category, metric string) string {
	return filepath.Join(l.root, fmt.Sprintf("80_20_%s_%s_80_20_Endurance_", category, metric))
}

// subCategoryKeys returns the sorted sub-category keys for a sport.
func subCategoryKeys(category string) []string {
	table := subCategoryTables[category]
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// matchSubCategory returns the filename prefixes selected by a free-text
// sub-category. Matching is bidirectional substring containment,
// case-insensitive: "aero" matches "aerobic" and "aerobic intervals"
// matches "aerobic". Loose on purpose; callers get every table entry the
// input plausibly names.
func matchSubCategory(category, subCategory string) []string {
	sub := strings.ToLower(subCategory)
	table := subCategoryTables[category]

	var prefixes []string
	for _, key := range subCategoryKeys(category) {
		if strings.Contains(key, sub) || strings.Contains(sub, key) {
			prefixes = append(prefixes, table[key]...)
		}
	}
	return prefixes
}

// List returns up to limit workout file summaries for a category/metric
// pair, optionally narrowed by sub-category. Individual file failures are
// reported per entry and never abort the batch.
func (l *Library) List(category, subCategory, metric string, limit int) ([]FileSummary, error) {
	if err := validateMetric(metric); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	dir := l.dirFor(category, metric)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("Workout directory not found for %s with %s metric.", category, metric)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, copyrightPrefix) {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, &NotFoundError{Message: fmt.Sprintf("No workout files found for %s with %s metric.", category, metric)}
	}

	if subCategory != "" {
		prefixes := matchSubCategory(category, subCategory)
		if len(prefixes) == 0 {
			return nil, &NotFoundError{Message: fmt.Sprintf(
				"No workout files found for %s with %s metric and sub-category '%s'. Available sub-categories: %s",
				category, metric, subCategory, strings.Join(subCategoryKeys(category), ", "))}
		}
		var filtered []string
		for _, name := range names {
			for _, prefix := range prefixes {
				if strings.HasPrefix(name, prefix) {
					filtered = append(filtered, name)
					break
				}
			}
		}
		if len(filtered) == 0 {
			return nil, &NotFoundError{Message: fmt.Sprintf(
				"No workout files found for %s with %s metric and sub-category '%s'.",
				category, metric, subCategory)}
		}
		names = filtered
	}

	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}

	summaries := make([]FileSummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, l.summarize(dir, name))
	}
	return summaries, nil
}

func (l *Library) summarize(dir, name string) FileSummary {
	s := FileSummary{Filename: name}

	doc, err := loadDoc(filepath.Join(dir, name))
	if err != nil {
		s.Err = err
		return s
	}

	s.Description = truncateDescription(doc.Description, 200)
	s.DurationMinutes = doc.Duration.Int() / 60
	s.Target = doc.Target
	if s.Target == "" {
		s.Target = "Unknown"
	}
	if s.Description == "" {
		s.Description = "No description available"
	}
	return s
}

func truncateDescription(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// Content returns the full pretty-printed JSON of a single workout file.
// The .json extension is appended when missing.
func (l *Library) Content(category, metric, filename string) (string, error) {
	_, raw, err := l.load(category, metric, filename)
	if err != nil {
		return "", err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return "", fmt.Errorf("format workout file %q: %w", filename, err)
	}
	return pretty.String(), nil
}

// Readable loads a workout file and renders it as step-by-step text.
func (l *Library) Readable(category, metric, filename string) (string, error) {
	doc, _, err := l.load(category, metric, filename)
	if err != nil {
		return "", err
	}
	return Render(doc, category, filename), nil
}

func (l *Library) load(category, metric, filename string) (*Doc, []byte, error) {
	if err := validateMetric(metric); err != nil {
		return nil, nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, nil, err
	}
	if filename == "" {
		return nil, nil, fmt.Errorf("filename parameter is required")
	}
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	path := filepath.Join(l.dirFor(category, metric), filename)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &NotFoundError{Message: fmt.Sprintf(
				"Workout file '%s' not found in %s (%s) directory.", filename, category, metric)}
		}
		return nil, nil, fmt.Errorf("read workout file %q: %w", filename, err)
	}

	var doc Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse workout file %q: %w", filename, err)
	}
	return &doc, raw, nil
}

func loadDoc(path string) (*Doc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var doc Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return &doc, nil
}

// CatalogEntry describes one populated (category, metric) directory.
type CatalogEntry struct {
	Category      string   `json:"category"`
	Metric        string   `json:"metric"`
	FileCount     int      `json:"file_count"`
	SubCategories []string `json:"sub_categories"`
}

// Catalog scans every (category, metric) combination and reports the ones
// that exist on disk, with workout counts and the sub-category keys
// available for the sport.
func (l *Library) Catalog() []CatalogEntry {
	var catalog []CatalogEntry
	for _, category := range validCategories {
		for _, metric := range validMetrics {
			entries, err := os.ReadDir(l.dirFor(category, metric))
			if err != nil {
				continue
			}
			count := 0
			for _, entry := range entries {
				name := entry.Name()
				if !entry.IsDir() && strings.HasSuffix(name, ".json") && !strings.HasPrefix(name, copyrightPrefix) {
					count++
				}
			}
			catalog = append(catalog, CatalogEntry{
				Category:      category,
				Metric:        metric,
				FileCount:     count,
				SubCategories: subCategoryKeys(category),
			})
		}
	}
	return catalog
}
