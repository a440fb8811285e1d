package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// EntityResolver resolves supplier and brand names to catalog identifiers,
// creating missing entities on first use. A resolver instance is scoped to one
// run: the name→id cache is consulted before any fetch, which makes the
// at-most-one-creation-per-name guarantee structural instead of depending on
// callers invoking resolution exactly once.
//
// Lookup is case-insensitive after trimming whitespace, exact match only.
type EntityResolver struct {
	reader CatalogReader
	writer CatalogWriter
	log    *logrus.Logger

	mu        sync.Mutex
	suppliers map[string]string
	brands    map[string]string
}

// NewEntityResolver creates a resolver for a single run
func NewEntityResolver(reader CatalogReader, writer CatalogWriter, log *logrus.Logger) *EntityResolver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &EntityResolver{
		reader:    reader,
		writer:    writer,
		log:       log,
		suppliers: make(map[string]string),
		brands:    make(map[string]string),
	}
}

// ResolveSupplier returns the id of the supplier with the given name, creating
// it when absent. A fetch or create failure yields an error and no id; callers
// that depend on the id must fail closed.
func (r *EntityResolver) ResolveSupplier(ctx context.Context, name string) (string, error) {
	return r.resolve(ctx, name, r.suppliers, r.lookupSupplier, func(ctx context.Context, name string) (string, error) {
		return r.writer.CreateSupplier(ctx, name, "")
	})
}

// ResolveBrand returns the id of the brand with the given name, creating it
// when absent.
func (r *EntityResolver) ResolveBrand(ctx context.Context, name string) (string, error) {
	return r.resolve(ctx, name, r.brands, r.lookupBrand, r.writer.CreateBrand)
}

type lookupFunc func(ctx context.Context, normalized string) (string, bool, error)
type createFunc func(ctx context.Context, name string) (string, error)

// resolve implements cache → fetch-and-scan → create. Resolution is
// serialized: concurrent callers for the same kind wait, so two goroutines can
// never both miss and create.
func (r *EntityResolver) resolve(ctx context.Context, name string, cache map[string]string, lookup lookupFunc, create createFunc) (string, error) {
	normalized := normalizeName(name)
	if normalized == "" {
		return "", fmt.Errorf("entity name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := cache[normalized]; ok {
		return id, nil
	}

	id, found, err := lookup(ctx, normalized)
	if err != nil {
		// A partial listing cannot prove absence; creating here could
		// duplicate an entity that lives on an unfetched page.
		return "", fmt.Errorf("resolving %q: %w", name, err)
	}
	if found {
		cache[normalized] = id
		return id, nil
	}

	id, err = create(ctx, name)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", name, err)
	}
	cache[normalized] = id
	return id, nil
}

func (r *EntityResolver) lookupSupplier(ctx context.Context, normalized string) (string, bool, error) {
	suppliers, err := r.reader.FetchAllSuppliers(ctx)
	if err != nil {
		return "", false, err
	}
	for _, s := range suppliers {
		if normalizeName(s.Name) == normalized {
			return s.ID, true, nil
		}
	}
	return "", false, nil
}

func (r *EntityResolver) lookupBrand(ctx context.Context, normalized string) (string, bool, error) {
	brands, err := r.reader.FetchAllBrands(ctx)
	if err != nil {
		return "", false, err
	}
	for _, b := range brands {
		if normalizeName(b.Name) == normalized {
			return b.ID, true, nil
		}
	}
	return "", false, nil
}
