package factory

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/warp/labor-engine/generic"
	"github.com/warp/labor-engine/labor"
	"github.com/warp/labor-engine/logging"
)

//go:embed tables/*.yaml
var embedded embed.FS

// =============================================================================
// REGISTRY - Rule books by effective year
// =============================================================================

// Registry holds one validated RuleBook per year. Later loads replace
// earlier ones for the same year, so the order is embedded, directory, store.
//
// Books from the embedded tables and the rules directory are the base layer.
// Stored and published books sit on top of it: when a stored year disappears
// from the store, the base book for that year (if any) is served again.
type Registry struct {
	mu      sync.RWMutex
	books   map[int]*generic.RuleBook
	sources map[int]string
	base    map[int]*generic.RuleBook
	factory *RuleBookFactory
	store   generic.RuleSetStore
	logger  *slog.Logger
}

// Book sources.
const (
	sourceStore   = "store"
	sourcePublish = "publish"
)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithStore makes Publish and Remove persist documents.
func WithStore(s generic.RuleSetStore) RegistryOption {
	return func(r *Registry) { r.store = s }
}

// WithLogger sets the registry logger.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry creates an empty registry. Every book it accepts must pass
// labor.CheckRuleBook.
func NewRegistry(opts ...RegistryOption) *Registry {
	f := NewRuleBookFactory()
	f.Validate = labor.CheckRuleBook
	r := &Registry{
		books:   make(map[int]*generic.RuleBook),
		sources: make(map[int]string),
		base:    make(map[int]*generic.RuleBook),
		factory: f,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default returns a registry loaded with the embedded tables.
func Default() (*Registry, error) {
	r := NewRegistry()
	if err := r.LoadEmbedded(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustDefault panics if the embedded tables do not load.
func MustDefault() *Registry {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}

// Factory returns the validating factory the registry builds with.
func (r *Registry) Factory() *RuleBookFactory {
	return r.factory
}

// LoadEmbedded registers the tables compiled into the binary.
func (r *Registry) LoadEmbedded() error {
	return r.loadFS(embedded, "tables")
}

// LoadDir registers every *.yaml, *.yml and *.json file in dir.
func (r *Registry) LoadDir(dir string) error {
	return r.loadFS(os.DirFS(dir), ".")
}

func (r *Registry) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read rule tables: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		format, ok := formatFor(e.Name())
		if !ok {
			continue
		}
		path := filepath.ToSlash(filepath.Join(dir, e.Name()))
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		book, err := r.factory.Parse(data, format)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		r.register(book, e.Name())
	}
	return nil
}

// LoadStore makes the registry match the store: every stored document is
// registered, and stored years no longer in the store fall back to their
// base book or are dropped. A stored document that fails validation aborts
// the load before anything changes.
func (r *Registry) LoadStore(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	records, err := r.store.ListRuleSets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rule sets: %w", err)
	}
	books := make([]*generic.RuleBook, 0, len(records))
	for _, rec := range records {
		book, err := r.factory.Parse([]byte(rec.Document), rec.Format)
		if err != nil {
			return fmt.Errorf("stored rule set %d: %w", rec.Year, err)
		}
		if book.Year != rec.Year {
			return fmt.Errorf("stored rule set %d declares year %d: %w", rec.Year, book.Year, generic.ErrInvalidInput)
		}
		books = append(books, book)
	}

	stored := make(map[int]bool, len(books))
	for _, book := range books {
		stored[book.Year] = true
		r.register(book, sourceStore)
	}
	for _, year := range r.Years() {
		if stored[year] {
			continue
		}
		r.mu.RLock()
		src := r.sources[year]
		r.mu.RUnlock()
		if src == sourceStore || src == sourcePublish {
			r.unregister(year)
		}
	}
	return nil
}

// Publish validates a document, persists it when a store is configured,
// and makes it the book for its year. The returned record carries the
// stored version.
func (r *Registry) Publish(ctx context.Context, data []byte, format generic.DocumentFormat) (*generic.RuleSetRecord, error) {
	book, err := r.factory.Parse(data, format)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = generic.FormatYAML
	}
	rec := &generic.RuleSetRecord{
		Year:        book.Year,
		Description: book.Description,
		Format:      format,
		Document:    string(data),
	}
	if r.store != nil {
		if err := r.store.SaveRuleSet(ctx, *rec); err != nil {
			return nil, fmt.Errorf("failed to save rule set %d: %w", book.Year, err)
		}
		saved, err := r.store.GetRuleSet(ctx, book.Year)
		if err != nil {
			return nil, err
		}
		if saved != nil {
			rec = saved
		}
	}
	r.register(book, sourcePublish)
	return rec, nil
}

// Remove drops the book for year and deletes its stored document.
func (r *Registry) Remove(ctx context.Context, year int) error {
	r.mu.Lock()
	_, ok := r.books[year]
	delete(r.books, year)
	delete(r.sources, year)
	delete(r.base, year)
	r.mu.Unlock()
	if !ok {
		return &generic.LookupError{Year: year, Kind: generic.ErrUnknownYear}
	}
	if r.store != nil {
		if err := r.store.DeleteRuleSet(ctx, year); err != nil {
			return fmt.Errorf("failed to delete rule set %d: %w", year, err)
		}
	}
	r.logger.Info("rule book removed", "year", year)
	return nil
}

func (r *Registry) register(book *generic.RuleBook, source string) {
	r.mu.Lock()
	r.books[book.Year] = book
	r.sources[book.Year] = source
	if source != sourceStore && source != sourcePublish {
		r.base[book.Year] = book
	}
	r.mu.Unlock()
	r.logger.Info("rule book loaded", "year", book.Year, "source", source)
}

// unregister drops a stored year, restoring its base book when there is one.
func (r *Registry) unregister(year int) {
	r.mu.Lock()
	base, ok := r.base[year]
	if ok {
		r.books[year] = base
		r.sources[year] = "base"
	} else {
		delete(r.books, year)
		delete(r.sources, year)
	}
	r.mu.Unlock()
	r.logger.Info("stored rule book gone", "year", year, "restored_base", ok)
}

// =============================================================================
// LOOKUP
// =============================================================================

// ForYear returns the book for exactly year.
func (r *Registry) ForYear(year int) (*generic.RuleBook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	book, ok := r.books[year]
	if !ok {
		return nil, &generic.LookupError{Year: year, Kind: generic.ErrUnknownYear}
	}
	return book, nil
}

// Latest returns the book with the highest year.
func (r *Registry) Latest() (*generic.RuleBook, error) {
	years := r.Years()
	if len(years) == 0 {
		return nil, fmt.Errorf("registry is empty: %w", generic.ErrUnknownYear)
	}
	return r.ForYear(years[len(years)-1])
}

// Resolve returns the book for year, or the latest when year is zero.
func (r *Registry) Resolve(year int) (*generic.RuleBook, error) {
	if year == 0 {
		return r.Latest()
	}
	return r.ForYear(year)
}

// Years lists the loaded years in ascending order.
func (r *Registry) Years() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int, 0, len(r.books))
	for y := range r.books {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

func formatFor(name string) (generic.DocumentFormat, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return generic.FormatYAML, true
	case ".json":
		return generic.FormatJSON, true
	}
	return "", false
}
