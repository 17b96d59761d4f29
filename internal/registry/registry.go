package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/doccat-labs/doccat/internal/catalog"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of parsed catalogs kept in memory.
const DefaultCacheSize = 16

// Opener opens catalog sources and reports a version stamp for each. An empty
// stamp marks a source that cannot be cached (e.g. standard input).
type Opener interface {
	Open(ctx context.Context, spec string) (io.ReadCloser, error)
	Stamp(ctx context.Context, spec string) (string, error)
}

// cachedCatalog is a parsed catalog together with the source stamp it was
// loaded at.
type cachedCatalog struct {
	Root     *catalog.Root
	Stamp    string
	LoadedAt time.Time
}

// Registry loads catalogs through an Opener and caches the parsed result per
// source until the source's stamp changes. It is safe for concurrent use.
type Registry struct {
	opener Opener
	cache  *lru.Cache[string, cachedCatalog]
	logf   func(format string, args ...any)
}

// New returns a Registry caching up to size catalogs. A size <= 0 uses
// DefaultCacheSize.
func New(opener Opener, size int) (*Registry, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, cachedCatalog](size)
	if err != nil {
		return nil, fmt.Errorf("creating catalog cache: %w", err)
	}
	return &Registry{
		opener: opener,
		cache:  cache,
		logf:   func(string, ...any) {},
	}, nil
}

// SetLogger routes progress messages to logf.
func (r *Registry) SetLogger(logf func(format string, args ...any)) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	r.logf = logf
}

// Load returns the catalog at spec, from cache when its stamp is unchanged.
func (r *Registry) Load(ctx context.Context, spec string) (*catalog.Root, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stamp, err := r.opener.Stamp(ctx, spec)
	if err != nil {
		return nil, err
	}
	if stamp != "" {
		if cached, ok := r.cache.Get(spec); ok && cached.Stamp == stamp {
			r.logf("catalog %s: cached (loaded %s)", spec, cached.LoadedAt.Format(time.RFC3339))
			return cached.Root, nil
		}
	}

	rc, err := r.opener.Open(ctx, spec)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	root, err := catalog.Load(rc)
	if err != nil {
		var pe *catalog.ParseError
		if errors.As(err, &pe) {
			pe.Source = spec
			return nil, pe
		}
		return nil, fmt.Errorf("loading %s: %w", spec, err)
	}
	r.logf("catalog %s: loaded %d types in %d packages", spec, root.Len(), len(root.Packages()))

	if stamp != "" {
		r.cache.Add(spec, cachedCatalog{Root: root, Stamp: stamp, LoadedAt: time.Now()})
	}
	return root, nil
}

// All loads every source and merges them into one catalog.
func (r *Registry) All(ctx context.Context, specs []string) (*catalog.Root, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no catalog sources configured")
	}
	roots := make([]*catalog.Root, 0, len(specs))
	for _, spec := range specs {
		root, err := r.Load(ctx, spec)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}
	if len(roots) == 1 {
		return roots[0], nil
	}
	return Merge(roots...)
}

// Invalidate drops spec from the cache.
func (r *Registry) Invalidate(spec string) {
	r.cache.Remove(spec)
}

// Len returns the number of cached catalogs.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Merge combines catalogs in order. Docs and modules are concatenated. A
// package already declared by an earlier catalog is dropped; repeats within
// one catalog are kept so Check still reports them. A type declared in more
// than one catalog yields catalog.ErrDuplicateType.
func Merge(roots ...*catalog.Root) (*catalog.Root, error) {
	var (
		docs     []any
		modules  []any
		packages []string
		types    []catalog.TypeDescriptor
		seen     = make(map[string]bool)
	)
	for _, root := range roots {
		docs = append(docs, root.Docs()...)
		modules = append(modules, root.Modules()...)
		own := root.Packages()
		for _, p := range own {
			if !seen[p] {
				packages = append(packages, p)
			}
		}
		for _, p := range own {
			seen[p] = true
		}
		types = append(types, root.Types()...)
	}
	merged, err := catalog.New(docs, modules, packages, types)
	if err != nil {
		return nil, fmt.Errorf("merging catalogs: %w", err)
	}
	return merged, nil
}
