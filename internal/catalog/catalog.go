package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/funildigital/prelander/internal/models"
	"github.com/funildigital/prelander/pkg/logger"
)

var (
	// ErrModelNotFound means no descriptor file exists for the slug.
	ErrModelNotFound = errors.New("model not found")

	// ErrInvalidSlug means the slug failed the safe-pattern check and no
	// filesystem lookup was attempted.
	ErrInvalidSlug = errors.New("invalid slug")
)

// slugPattern is the only shape of slug that ever reaches the filesystem.
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Catalog loads model descriptors from per-slug JSON files under the
// public modelos directory. Files are re-read on every request so
// operators can edit them live.
type Catalog struct {
	logger *logger.Logger

	dir string
}

// New creates a catalog rooted at the public assets directory.
func New(publicDir string, logger *logger.Logger) models.Catalog {
	return &Catalog{
		dir:    filepath.Join(publicDir, "modelos"),
		logger: logger,
	}
}

// Load reads and parses the descriptor for the slug.
func (c *Catalog) Load(slug string) (*models.Descriptor, error) {
	if !slugPattern.MatchString(slug) {
		c.logger.Debug("Rejected slug outside safe pattern: ", slug)
		return nil, ErrInvalidSlug
	}

	data, err := os.ReadFile(filepath.Join(c.dir, slug+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to read descriptor for %s: %s", slug, err)
	}

	var descriptor models.Descriptor
	if err := json.Unmarshal(data, &descriptor); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor for %s: %s", slug, err)
	}

	return &descriptor, nil
}
