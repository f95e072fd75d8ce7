package infrastructure

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"elyseeWeb/internal/modules/content/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// DecodeCatalog parses a YAML catalog document and validates it.
func DecodeCatalog(data []byte) (*domain.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var catalog domain.Catalog
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return &catalog, nil
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() (*domain.Catalog, error) {
	return DecodeCatalog(defaultCatalog)
}

// LoadCatalog reads path, or the embedded catalog when path is empty.
func LoadCatalog(path string) (*domain.Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return DecodeCatalog(data)
}
