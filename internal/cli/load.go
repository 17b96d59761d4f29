package cli

import (
	"fmt"

	"github.com/doccat-labs/doccat/internal/catalog"
	"github.com/doccat-labs/doccat/internal/config"
	"github.com/doccat-labs/doccat/internal/registry"
	"github.com/doccat-labs/doccat/internal/source"
	"github.com/spf13/cobra"
)

// selectedSources returns the --catalog flags, or the configured sources.
func selectedSources() []string {
	if len(catalogSources) > 0 {
		return catalogSources
	}
	return config.Catalogs()
}

// newRegistry builds a catalog registry from the loaded configuration.
func newRegistry(cmd *cobra.Command) (*registry.Registry, error) {
	s3 := config.S3Settings()
	opener := source.NewOpener(source.S3Config{
		Endpoint:  s3.Endpoint,
		Region:    s3.Region,
		AccessKey: s3.AccessKey,
		SecretKey: s3.SecretKey,
		UseSSL:    s3.UseSSL,
	})
	opener.Stdin = cmd.InOrStdin()

	reg, err := registry.New(opener, config.CacheSize())
	if err != nil {
		return nil, err
	}
	reg.SetLogger(logger.Printf)
	return reg, nil
}

// loadCatalog loads and merges every selected source.
func loadCatalog(cmd *cobra.Command) (*catalog.Root, error) {
	reg, err := newRegistry(cmd)
	if err != nil {
		return nil, err
	}
	sources := selectedSources()
	logger.Printf("loading %d catalog source(s)", len(sources))
	root, err := reg.All(cmd.Context(), sources)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return root, nil
}
