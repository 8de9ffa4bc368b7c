package registry

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type category struct {
	entries map[string]*FunctionEntry
	order   []string
}

func newCategory() *category {
	return &category{entries: make(map[string]*FunctionEntry)}
}

func (c *category) put(entry *FunctionEntry) {
	if _, ok := c.entries[entry.Name]; !ok {
		c.order = append(c.order, entry.Name)
	}

	c.entries[entry.Name] = entry
}

func (c *category) remove(name string) {
	if _, ok := c.entries[name]; !ok {
		return
	}

	delete(c.entries, name)

	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)

			break
		}
	}
}

func (c *category) holds(id uintptr) bool {
	for _, entry := range c.entries {
		if entry.id == id {
			return true
		}
	}

	return false
}

func (c *category) list() []*FunctionEntry {
	res := make([]*FunctionEntry, 0, len(c.order))
	for _, name := range c.order {
		res = append(res, c.entries[name])
	}

	return res
}

// Registry holds the categories of one project and the functions tagged in them.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	categories map[string]*category
	order      []string
	// tags maps a function identifier to its category.
	tags   map[uintptr]string
	logger *zap.Logger
	report io.Writer
}

// Option configures a Registry.
type Option func(r *Registry)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithReportWriter sets where lookup misses are reported.
func WithReportWriter(w io.Writer) Option {
	return func(r *Registry) {
		r.report = w
	}
}

// New creates a registry seeded with the given categories.
func New(categories []string, opts ...Option) *Registry {
	reg := &Registry{
		categories: make(map[string]*category),
		tags:       make(map[uintptr]string),
		logger:     zap.NewNop(),
		report:     io.Discard,
	}
	for _, opt := range opts {
		opt(reg)
	}

	for _, name := range categories {
		reg.CreateCategory(name)
	}

	return reg
}

// CreateCategory adds an empty category. It returns false, leaving the existing
// category untouched, when the name is already known.
func (r *Registry) CreateCategory(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[name]; ok {
		r.logger.Info("category already exists", zap.String("category", name))

		return false
	}

	r.categories[name] = newCategory()
	r.order = append(r.order, name)
	r.logger.Debug("category created", zap.String("category", name))

	return true
}

// IsValidCategory reports whether name is a known category.
func (r *Registry) IsValidCategory(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.categories[name]

	return ok
}

// Categories returns the category names in creation order.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Decorator tags a function with the category it was created for.
type Decorator func(fn any, opts ...EntryOption) error

// RegisterFunction returns a decorator tagging functions with category and comment.
// The category must exist when the decorator is applied.
func (r *Registry) RegisterFunction(categoryName, comment string) Decorator {
	return func(fn any, opts ...EntryOption) error {
		return r.register(categoryName, comment, fn, opts...)
	}
}

// Tag applies dec to fn and hands fn back untouched.
func Tag[F any](dec Decorator, fn F, opts ...EntryOption) (F, error) {
	return fn, dec(fn, opts...)
}

func (r *Registry) register(categoryName, comment string, fn any, opts ...EntryOption) error {
	id, err := FuncID(fn)
	if err != nil {
		return errors.Wrapf(err, "unable to register function in %s", categoryName)
	}

	entry := &FunctionEntry{
		Name:     FuncName(fn),
		Category: categoryName,
		Comment:  comment,
		Func:     fn,
		id:       id,
	}
	for _, opt := range opts {
		opt(entry)
	}

	if entry.Name == "" {
		return errors.Wrapf(ErrNotAFunction, "unable to name function registered in %s", categoryName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cat, ok := r.categories[categoryName]
	if !ok {
		return errors.Wrapf(ErrInvalidCategory, "category %q does not exist", categoryName)
	}

	// A callable carries a single tag, so an earlier registration elsewhere is dropped.
	if previous, tagged := r.tags[id]; tagged && previous != categoryName {
		if prevCat, exists := r.categories[previous]; exists {
			for _, e := range prevCat.list() {
				if e.id == id {
					prevCat.remove(e.Name)
				}
			}
		}
	}

	replaced, exists := cat.entries[entry.Name]

	r.tags[id] = categoryName
	cat.put(entry)

	// The overwritten callable loses its tag once no entry refers to it.
	if exists && replaced.id != id && !cat.holds(replaced.id) {
		delete(r.tags, replaced.id)
	}

	r.logger.Debug("function registered",
		zap.String("category", categoryName),
		zap.String("function", entry.Name),
	)

	return nil
}

// CategoryOf returns the category fn is tagged with.
func (r *Registry) CategoryOf(fn any) (string, bool) {
	id, err := FuncID(fn)
	if err != nil {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.tags[id]

	return name, ok
}

// NameOf returns the name fn was registered under.
func (r *Registry) NameOf(fn any) (string, bool) {
	id, err := FuncID(fn)
	if err != nil {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cat, ok := r.categories[r.tags[id]]
	if !ok {
		return "", false
	}

	for _, entry := range cat.entries {
		if entry.id == id {
			return entry.Name, true
		}
	}

	return "", false
}

// GetFunctionsByCategory returns the functions of a category in registration order.
// An unknown category yields an empty slice.
func (r *Registry) GetFunctionsByCategory(name string) []*FunctionEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cat, ok := r.categories[name]
	if !ok {
		return []*FunctionEntry{}
	}

	return cat.list()
}

// Function returns a single entry.
func (r *Registry) Function(categoryName, name string) (*FunctionEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cat, ok := r.categories[categoryName]
	if !ok {
		return nil, false
	}

	entry, ok := cat.entries[name]

	return entry, ok
}
