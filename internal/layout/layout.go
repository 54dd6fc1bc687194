// Package layout loads device layouts.
//
// Layouts resolve in this order:
//  1. User layouts directory ($XDG_CONFIG_HOME/padprofile/layouts/)
//  2. Built-in layouts
//
// User files are matched on the id they declare, whatever the file is
// called. A user layout with the same id as a built-in one overrides it.
package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/padprofile/internal/model"
)

var (
	// ErrNotFound is returned when no layout has the requested id.
	ErrNotFound = errors.New("layout not found")
	// ErrInvalidID is returned for ids containing path separators or "..".
	ErrInvalidID = errors.New("invalid layout id")
)

// Source tells where a layout was loaded from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceUser    Source = "user"
)

// Info describes an available layout.
type Info struct {
	ID      string
	Name    string
	Buttons int
	Source  Source
	Path    string // Empty for built-in layouts
}

// Dir returns the user layouts directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, "padprofile", "layouts")
}

// Parse decodes and validates a YAML layout.
func Parse(data []byte) (*model.Layout, error) {
	var l model.Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Catalog resolves layouts from a user directory and the built-ins.
type Catalog struct {
	dir    string
	logger *slog.Logger
}

// NewCatalog creates a catalog reading user layouts from dir.
// An empty dir disables user layouts.
func NewCatalog(dir string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{dir: dir, logger: logger}
}

// Load returns the layout with the given id. User layouts are matched on
// the id they declare, not their file name. A user layout that fails to
// parse is skipped in favour of the built-in one.
func (c *Catalog) Load(id string) (*model.Layout, error) {
	if id == "" {
		id = DefaultLayoutID
	}
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	if u, ok := c.userLayouts()[id]; ok {
		c.logger.Debug("loaded user layout", "id", id, "path", u.path)
		return u.layout, nil
	}

	if l, ok := GetEmbeddedLayout(id); ok {
		c.logger.Debug("loaded built-in layout", "id", id)
		return l, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// List returns every available layout sorted by id.
func (c *Catalog) List() []Info {
	byID := make(map[string]Info)

	for _, id := range ListEmbeddedLayouts() {
		l, ok := GetEmbeddedLayout(id)
		if !ok {
			continue
		}
		byID[l.ID] = Info{ID: l.ID, Name: l.Name, Buttons: len(l.Buttons), Source: SourceBuiltin}
	}

	for id, u := range c.userLayouts() {
		byID[id] = Info{ID: id, Name: u.layout.Name, Buttons: len(u.layout.Buttons), Source: SourceUser, Path: u.path}
	}

	result := make([]Info, 0, len(byID))
	for _, info := range byID {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// ValidateID rejects ids that could not name a layout file.
func ValidateID(id string) error {
	if id == "" || id == "." || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

type userLayout struct {
	layout *model.Layout
	path   string
}

// userLayouts parses every *.yaml file in the user directory, keyed by the
// id each file declares. Files are read in name order so the last one wins
// when two declare the same id.
func (c *Catalog) userLayouts() map[string]userLayout {
	byID := make(map[string]userLayout)
	if c.dir == "" {
		return byID
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Warn("failed to read layouts directory", "dir", c.dir, "error", err)
		}
		return byID
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(c.dir, entry.Name())
		l, err := loadFile(path)
		if err != nil {
			c.logger.Warn("skipping invalid layout", "path", path, "error", err)
			continue
		}
		if err := ValidateID(l.ID); err != nil {
			c.logger.Warn("skipping layout with invalid id", "path", path, "error", err)
			continue
		}
		if prev, ok := byID[l.ID]; ok {
			c.logger.Warn("duplicate layout id", "id", l.ID, "path", path, "shadows", prev.path)
		}
		byID[l.ID] = userLayout{layout: l, path: path}
	}
	return byID
}

// Load returns a layout from the default catalog.
func Load(id string) (*model.Layout, error) {
	return NewCatalog(Dir(), nil).Load(id)
}

// List lists the layouts of the default catalog.
func List() []Info {
	return NewCatalog(Dir(), nil).List()
}

func loadFile(path string) (*model.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
