package rewrite

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// The fixed source module and the translation-marking functions it exports.
const targetModule = "invenio_i18n"

var targetFunctions = map[string]bool{
	"gettext":      true,
	"lazy_gettext": true,
}

const importQueryText = `(import_from_statement) @import`

// collectAliases walks every from-import in the tree and records the local
// names bound to the recognized translation functions. Only import-style
// bindings are resolved; assignments and attribute access on the module are
// not.
func collectAliases(q *sitter.Query, root *sitter.Node, src []byte) map[string]bool {
	aliases := make(map[string]bool)

	qc := sitter.NewQueryCursor()
	matches := qc.Matches(q, root, src)

	for {
		m := matches.Next()
		if m == nil {
			break
		}
		for _, c := range m.Captures {
			stmt := c.Node
			recordImportAliases(&stmt, src, aliases)
		}
	}

	return aliases
}

func recordImportAliases(stmt *sitter.Node, src []byte, aliases map[string]bool) {
	module := stmt.ChildByFieldName("module_name")
	if module == nil || module.Utf8Text(src) != targetModule {
		return
	}

	for i := uint(0); i < stmt.ChildCount(); i++ {
		child := stmt.Child(i)
		if child == nil {
			continue
		}
		// The module path is itself a dotted_name child; skip it by span.
		if child.StartByte() == module.StartByte() && child.EndByte() == module.EndByte() {
			continue
		}

		switch child.Kind() {
		case "dotted_name":
			name := child.Utf8Text(src)
			if targetFunctions[name] {
				aliases[name] = true
			}
		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			aliasNode := child.ChildByFieldName("alias")
			if nameNode == nil || aliasNode == nil {
				continue
			}
			if targetFunctions[nameNode.Utf8Text(src)] {
				aliases[aliasNode.Utf8Text(src)] = true
			}
		}
	}
}
