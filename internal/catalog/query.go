package catalog

import (
	"fmt"
	"strings"
)

// LookupType returns the descriptor for packageName.name. The error wraps
// ErrTypeNotFound when there is none.
func (r *Root) LookupType(packageName, name string) (TypeDescriptor, error) {
	i, ok := r.byKey[typeKey{pkg: packageName, name: name}]
	if !ok {
		return TypeDescriptor{}, fmt.Errorf("%w: %s.%s", ErrTypeNotFound, packageName, name)
	}
	return r.types[i].clone(), nil
}

// TypesInPackage returns the descriptors owned by packageName in catalog
// order. It returns nil for an unknown package.
func (r *Root) TypesInPackage(packageName string) []TypeDescriptor {
	idx := r.byPackage[packageName]
	if len(idx) == 0 {
		return nil
	}
	out := make([]TypeDescriptor, len(idx))
	for i, j := range idx {
		out[i] = r.types[j].clone()
	}
	return out
}

// HasPackage reports whether packageName is declared in the packages list.
func (r *Root) HasPackage(packageName string) bool {
	for _, p := range r.packages {
		if p == packageName {
			return true
		}
	}
	return false
}

// Query filters descriptors in Search. Empty fields match everything.
type Query struct {
	Text    string // case-insensitive substring of name or qualified name
	Kind    Kind
	Package string // exact package name
}

// Search returns the descriptors matching every non-empty field of q, in
// catalog order.
func (r *Root) Search(q Query) []TypeDescriptor {
	text := strings.ToLower(q.Text)
	var out []TypeDescriptor
	for _, t := range r.types {
		if q.Kind != "" && t.Kind != q.Kind {
			continue
		}
		if q.Package != "" && t.PackageName != q.Package {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(t.Name), text) &&
			!strings.Contains(strings.ToLower(t.QualifiedName()), text) {
			continue
		}
		out = append(out, t.clone())
	}
	return out
}

// Stats summarizes a catalog.
type Stats struct {
	Types     int
	Packages  int // distinct declared package names
	ByKind    map[Kind]int
	ByPackage map[string]int
}

// Stats counts descriptors per kind and per owning package.
func (r *Root) Stats() Stats {
	distinct := make(map[string]struct{}, len(r.packages))
	for _, p := range r.packages {
		distinct[p] = struct{}{}
	}
	s := Stats{
		Types:     len(r.types),
		Packages:  len(distinct),
		ByKind:    make(map[Kind]int),
		ByPackage: make(map[string]int),
	}
	for _, t := range r.types {
		s.ByKind[t.Kind]++
		s.ByPackage[t.PackageName]++
	}
	return s
}
