package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// SourceSuffix is the fixed file-name suffix selecting files to scan.
const SourceSuffix = ".py"

// defaultExcludes are path fragments that never hold first-party sources
// worth rewriting.
var defaultExcludes = []string{
	"__pycache__/",
	".pytest_cache/",
	".tox/",
	".git/",
	"venv/",
	".venv/",
	"site-packages/",
	"build/",
	"dist/",
}

// Walker discovers Python source files under a directory tree.
type Walker struct {
	exclude []string
}

// New creates a Walker; extra path fragments are excluded in addition to the
// defaults.
func New(extra []string) *Walker {
	return &Walker{exclude: append(append([]string{}, defaultExcludes...), extra...)}
}

// Walk returns the paths of all eligible source files under root, which must
// be an existing directory. Unreadable subtrees are logged and skipped.
func (w *Walker) Walk(root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var paths []string

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, SourceSuffix) {
			return nil
		}
		if w.excluded(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(paths)).Str("root", root).Msg("Discovered files")
	return paths, nil
}

func (w *Walker) excluded(path string) bool {
	normalized := strings.ToLower(filepath.ToSlash(path))
	for _, pattern := range w.exclude {
		if strings.Contains(normalized, pattern) {
			return true
		}
	}
	return false
}
