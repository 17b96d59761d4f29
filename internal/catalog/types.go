package catalog

import "maps"

// Kind is the declaration kind of a catalogued type.
type Kind string

// Kind values as they appear in the "type" field.
const (
	KindClass         Kind = "Class"
	KindAbstractClass Kind = "AbstractClass"
)

// ValidKinds contains all accepted Kind values.
var ValidKinds = []Kind{
	KindClass,
	KindAbstractClass,
}

// Valid reports whether k is one of ValidKinds.
func (k Kind) Valid() bool {
	for _, v := range ValidKinds {
		if k == v {
			return true
		}
	}
	return false
}

// implementationTagKey is the modifiers key the generator uses to record the
// collection type the modifier set was serialized from.
const implementationTagKey = "#"

// TypeDescriptor describes one declared type and its owning package.
type TypeDescriptor struct {
	Name        string         `json:"name" yaml:"name"`
	PackageName string         `json:"packageName" yaml:"packageName"`
	Kind        Kind           `json:"type" yaml:"type"`
	Modifiers   map[string]any `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

// QualifiedName returns "<packageName>.<name>".
func (t TypeDescriptor) QualifiedName() string {
	return t.PackageName + "." + t.Name
}

// ImplementationTag returns the modifiers "#" entry, or "" when absent.
func (t TypeDescriptor) ImplementationTag() string {
	s, _ := t.Modifiers[implementationTagKey].(string)
	return s
}

func (t TypeDescriptor) clone() TypeDescriptor {
	t.Modifiers = maps.Clone(t.Modifiers)
	return t
}

// document is the wire shape of a catalog. Field names are fixed by the
// generator and must not change.
type document struct {
	Docs     []any            `json:"docs" yaml:"docs"`
	Modules  []any            `json:"modules" yaml:"modules"`
	Packages []string         `json:"packages" yaml:"packages"`
	Types    []TypeDescriptor `json:"types" yaml:"types"`
}

type typeKey struct {
	pkg  string
	name string
}

// Root is a loaded catalog. It is immutable: accessors return copies.
type Root struct {
	docs     []any
	modules  []any
	packages []string
	types    []TypeDescriptor

	byKey     map[typeKey]int
	byPackage map[string][]int
}

// Docs returns the document references in catalog order.
func (r *Root) Docs() []any { return cloneSlice(r.docs) }

// Modules returns the module references in catalog order.
func (r *Root) Modules() []any { return cloneSlice(r.modules) }

// Packages returns the declared package names in catalog order.
func (r *Root) Packages() []string { return cloneSlice(r.packages) }

// Types returns every type descriptor in catalog order.
func (r *Root) Types() []TypeDescriptor {
	out := make([]TypeDescriptor, len(r.types))
	for i, t := range r.types {
		out[i] = t.clone()
	}
	return out
}

// Len returns the number of type descriptors.
func (r *Root) Len() int { return len(r.types) }

func (r *Root) document() document {
	return document{
		Docs:     r.Docs(),
		Modules:  r.Modules(),
		Packages: r.Packages(),
		Types:    r.Types(),
	}
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
