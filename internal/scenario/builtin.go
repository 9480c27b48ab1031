package scenario

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hex-tactics/internal/registry"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtins parses the embedded scenarios into a registry keyed by ID.
func Builtins(logger *log.Logger) (*registry.Registry[Scenario], error) {
	reg := registry.New[Scenario]("scenario")

	paths, err := fs.Glob(builtinFS, "builtin/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("scenario: listing built-ins: %w", err)
	}
	for _, path := range paths {
		data, err := builtinFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("scenario: reading %s: %w", path, err)
		}
		s, err := Parse(data, logger)
		if err != nil {
			return nil, fmt.Errorf("scenario: parsing %s: %w", path, err)
		}
		reg.Register(s.ID, s)
	}
	return reg, nil
}

// Title returns the display name of a scenario, for registry listings.
func Title(s Scenario) string {
	return s.Name
}
