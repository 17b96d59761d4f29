// Package catalog loads and queries documentation type catalogs: the root
// index a documentation generator emits, enumerating the docs, modules,
// packages and declared types (classes and abstract classes) of a code base.
//
// A catalog is decoded from JSON, YAML or the generator's native script form
// (`const root = {...}`), validated against an embedded JSON Schema, and
// exposed as an immutable Root that answers lookups by package and name.
package catalog
