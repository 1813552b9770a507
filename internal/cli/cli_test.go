package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMissingPath(t *testing.T) {
	err := run(context.Background(), filepath.Join(t.TempDir(), "missing"), "", 1, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestRunRewritesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.py")
	input := `from invenio_i18n import gettext as _

msg = _("Hello {name}")
`
	require.NoError(t, os.WriteFile(path, []byte(input), 0644))

	require.NoError(t, run(context.Background(), dir, "", 1, false))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := `from invenio_i18n import gettext as _

msg = _("Hello %(name)s")
`
	assert.Equal(t, expected, string(out))
}

func TestRunSkipsUnparsableFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.py")
	good := filepath.Join(dir, "good.py")
	require.NoError(t, os.WriteFile(bad, []byte("def broken(:\n"), 0644))
	goodInput := `from invenio_i18n import gettext as _

msg = _("Hi {who}")
`
	require.NoError(t, os.WriteFile(good, []byte(goodInput), 0644))

	// A malformed file never aborts the run or blocks its siblings.
	require.NoError(t, run(context.Background(), dir, "", 2, false))

	badOut, err := os.ReadFile(bad)
	require.NoError(t, err)
	assert.Equal(t, "def broken(:\n", string(badOut))

	goodOut, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Contains(t, string(goodOut), "%(who)s")
}

func TestRunDiffModeLeavesFilesAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.py")
	input := `from invenio_i18n import gettext as _

msg = _("Hello {name}")
`
	require.NoError(t, os.WriteFile(path, []byte(input), 0644))

	require.NoError(t, run(context.Background(), dir, "", 1, true))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}
