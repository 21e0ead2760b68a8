package categories

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the YAML seed document for both category kinds.
//
//	bias:
//	  - name: Political
//	    description: Score -1 for strong left lean ...
//	news:
//	  - name: sports
//	  - name: politics
//	    enabled: false
type Catalog struct {
	Bias []CatalogBias `yaml:"bias"`
	News []CatalogNews `yaml:"news"`
}

// CatalogBias is one bias category entry.
type CatalogBias struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// CatalogNews is one news category entry. Enabled defaults to true when omitted.
type CatalogNews struct {
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled"`
}

// IsEnabled reports the effective enabled flag.
func (n CatalogNews) IsEnabled() bool {
	return n.Enabled == nil || *n.Enabled
}

// LoadCatalog reads and validates a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates YAML catalog data.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate trims names and rejects empty catalogs, blank names, and
// case-insensitive duplicates within a kind.
func (c *Catalog) Validate() error {
	if len(c.Bias) == 0 && len(c.News) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]bool)
	for i := range c.Bias {
		c.Bias[i].Name = strings.TrimSpace(c.Bias[i].Name)
		if err := checkName(seen, "bias", c.Bias[i].Name); err != nil {
			return err
		}
		if strings.TrimSpace(c.Bias[i].Description) == "" {
			return fmt.Errorf("%w: bias %q has no description", ErrInvalidEntry, c.Bias[i].Name)
		}
	}

	seen = make(map[string]bool)
	for i := range c.News {
		c.News[i].Name = strings.ToLower(strings.TrimSpace(c.News[i].Name))
		if err := checkName(seen, "news", c.News[i].Name); err != nil {
			return err
		}
	}

	return nil
}

func checkName(seen map[string]bool, kind, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s entry with empty name", ErrInvalidEntry, kind)
	}
	key := strings.ToLower(name)
	if seen[key] {
		return fmt.Errorf("%w: duplicate %s name %q", ErrInvalidEntry, kind, name)
	}
	seen[key] = true
	return nil
}
