package repository

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"course-promo/models"
)

//go:embed data/courses.yaml
var embeddedCatalog []byte

// catalogFile is the on-disk shape of the catalog
type catalogFile struct {
	Offerings []models.Offering `yaml:"offerings"`
}

// CatalogRepository serves the static course catalog
type CatalogRepository struct {
	catalog models.Catalog
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// NewCatalogRepository loads the catalog from path, or from the embedded copy when path is empty
func NewCatalogRepository(path string) (*CatalogRepository, error) {
	data := embeddedCatalog
	source := "embedded"
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		data = fileData
		source = path
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s catalog: %w", source, err)
	}

	log.Printf("✅ CatalogRepository: loaded %d offerings from %s catalog", catalog.Len(), source)
	return &CatalogRepository{catalog: catalog}, nil
}

// NewCatalogRepositoryFrom wraps an already built catalog
func NewCatalogRepositoryFrom(catalog models.Catalog) *CatalogRepository {
	return &CatalogRepository{catalog: catalog}
}

// GetCatalog returns the catalog
func (r *CatalogRepository) GetCatalog() models.Catalog {
	return r.catalog
}

// ParseCatalog decodes and validates catalog YAML
func ParseCatalog(data []byte) (models.Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return models.Catalog{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(file.Offerings) == 0 {
		return models.Catalog{}, fmt.Errorf("catalog has no offerings")
	}

	for i, o := range file.Offerings {
		if strings.TrimSpace(o.Name) == "" {
			return models.Catalog{}, fmt.Errorf("offering %d (%s): name is required", i, o.ID)
		}
		if strings.TrimSpace(o.Theme.Gradient) == "" {
			log.Printf("⚠️  Catalog: offering %s has no gradient tint, it will not tint the poster", o.ID)
		}
	}

	return models.NewCatalog(file.Offerings)
}
