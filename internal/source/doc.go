// Package source resolves catalog source strings to readers. A source is
// "-" for standard input, an s3://bucket/key URL for an object in an
// S3-compatible store, or a local file path.
package source
