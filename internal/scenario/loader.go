package scenario

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Loader handles loading scenarios from a directory.
type Loader struct {
	Root   string
	logger *log.Logger
}

// NewLoader creates a new scenario loader.
func NewLoader(root string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{Root: root, logger: logger}
}

// LoadAll recursively scans and loads all scenario files.
// Invalid files are logged and skipped. Returns scenarios sorted by ID.
func (l *Loader) LoadAll() ([]Scenario, error) {
	var scenarios []Scenario

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		s, err := l.LoadFile(path)
		if err != nil {
			l.logger.Warn("skipping invalid scenario", "path", path, "err", err)
			return nil
		}
		scenarios = append(scenarios, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ID < scenarios[j].ID
	})
	return scenarios, nil
}

// LoadFile loads a single scenario file.
func (l *Loader) LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	s, err := Parse(data, l.logger)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	s.FilePath = path
	return s, nil
}

// LoadByID loads a specific scenario by ID.
func (l *Loader) LoadByID(id string) (Scenario, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return Scenario{}, err
	}
	for _, s := range scenarios {
		if s.ID == id {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("scenario not found: %s", id)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
