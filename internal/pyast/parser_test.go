package pyast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserParse(t *testing.T) {
	parser, err := NewParser()
	require.NoError(t, err)

	src := []byte(`from invenio_i18n import gettext as _

def greet(name):
    return _("Hello {name}").format(name=name)
`)
	tree, err := parser.Parse(src)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "module", root.Kind())
	assert.False(t, root.HasError())
}

func TestParserSyntaxError(t *testing.T) {
	parser, err := NewParser()
	require.NoError(t, err)

	tests := []struct {
		name string
		src  string
	}{
		{"unclosed paren", "def broken(:\n"},
		{"stray operator", "x = = 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestParserReuse(t *testing.T) {
	parser, err := NewParser()
	require.NoError(t, err)

	// A failed parse must not poison the next one.
	_, err = parser.Parse([]byte("def broken(:\n"))
	require.Error(t, err)

	tree, err := parser.Parse([]byte("x = 1\n"))
	require.NoError(t, err)
	tree.Close()
}
