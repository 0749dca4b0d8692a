// Package catalog loads the static menu artifact that backs every menu query.
// The catalog is read once at start-up and treated as immutable afterwards.
package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/menu"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/models"
)

var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrEmptySource    = errors.New("no catalog source provided")
)

// Loader reads and validates catalogs from local files or http(s) URLs
type Loader struct {
	client *http.Client
	schema *gojsonschema.Schema
}

// NewLoader compiles the catalog schema and prepares an HTTP client for remote sources
func NewLoader(timeout time.Duration) (*Loader, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(catalogSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile catalog schema: %w", err)
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Loader{
		client: &http.Client{Timeout: timeout},
		schema: schema,
	}, nil
}

// Load reads the catalog at source. A ".gz" suffix means the content is gzipped;
// ".yaml" or ".yml" (before any ".gz") selects YAML, anything else is JSON.
func (l *Loader) Load(ctx context.Context, source string) (*models.Catalog, error) {
	if source == "" {
		return nil, ErrEmptySource
	}

	rc, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	name := strings.ToLower(source)
	if strings.HasSuffix(name, ".gz") {
		gzReader, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
		name = strings.TrimSuffix(name, ".gz")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	switch path.Ext(name) {
	case ".yaml", ".yml":
		return l.ParseYAML(data)
	default:
		return l.ParseJSON(data)
	}
}

// open returns the raw content of a local file or remote URL
func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download catalog: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// ParseJSON validates and decodes a JSON catalog
func (l *Loader) ParseJSON(data []byte) (*models.Catalog, error) {
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %v", ErrInvalidCatalog, err)
	}

	if err := l.validate(doc); err != nil {
		return nil, err
	}

	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if err := checkIntegrity(&catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// ParseYAML validates and decodes a YAML catalog
func (l *Loader) ParseYAML(data []byte) (*models.Catalog, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: malformed YAML: %v", ErrInvalidCatalog, err)
	}

	if err := l.validate(doc); err != nil {
		return nil, err
	}

	var catalog models.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if err := checkIntegrity(&catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// validate checks a decoded document against the catalog schema
func (l *Loader) validate(doc interface{}) error {
	result, err := l.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: schema validation error: %v", ErrInvalidCatalog, err)
	}

	if !result.Valid() {
		errs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(errs, "; "))
	}

	return nil
}

// checkIntegrity enforces the rules the schema cannot express
func checkIntegrity(c *models.Catalog) error {
	categoryIDs := make(map[string]bool, len(c.Categories))
	dishIDs := make(map[int64]string)

	for _, cat := range c.Categories {
		if cat.ID == menu.AllCategories {
			return fmt.Errorf("%w: category id %q is reserved", ErrInvalidCatalog, cat.ID)
		}
		if categoryIDs[cat.ID] {
			return fmt.Errorf("%w: duplicate category id %q", ErrInvalidCatalog, cat.ID)
		}
		categoryIDs[cat.ID] = true

		for _, dish := range cat.Dishes {
			if other, exists := dishIDs[dish.ID]; exists {
				return fmt.Errorf("%w: duplicate dish id %d in %q and %q", ErrInvalidCatalog, dish.ID, other, cat.ID)
			}
			dishIDs[dish.ID] = cat.ID
		}
	}

	return nil
}
