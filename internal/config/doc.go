// Package config manages user-level settings stored at ~/.doccat/config.yaml,
// overridable through DOCCAT_* environment variables and .env files. Settings
// cover the catalog sources to load, the S3 endpoint for s3:// sources, and
// the size of the in-memory catalog cache.
package config
