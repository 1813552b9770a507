package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))
}

func TestWalkFiltersBySuffix(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py")
	writeFile(t, root, "pkg/views.py")
	writeFile(t, root, "README.md")
	writeFile(t, root, "script.sh")

	paths, err := New(nil).Walk(root)
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Contains(t, paths[0]+paths[1], "app.py")
	assert.Contains(t, paths[0]+paths[1], "views.py")
}

func TestWalkDefaultExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py")
	writeFile(t, root, "__pycache__/app.py")
	writeFile(t, root, ".venv/lib/site.py")
	writeFile(t, root, "dist/pkg/module.py")

	paths, err := New(nil).Walk(root)
	require.NoError(t, err)

	require.Len(t, paths, 1)
	assert.Equal(t, "app.py", filepath.Base(paths[0]))
}

func TestWalkExtraExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py")
	writeFile(t, root, "generated/schema.py")

	paths, err := New([]string{"generated/"}).Walk(root)
	require.NoError(t, err)

	require.Len(t, paths, 1)
	assert.Equal(t, "app.py", filepath.Base(paths[0]))
}

func TestWalkRejectsFileRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py")

	_, err := New(nil).Walk(filepath.Join(root, "app.py"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := New(nil).Walk(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
