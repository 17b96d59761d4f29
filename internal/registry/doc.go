// Package registry loads catalogs from one or more sources, keeps parsed
// catalogs in an LRU cache that is invalidated when a source's stamp changes,
// and merges several catalogs into a single queryable view.
package registry
