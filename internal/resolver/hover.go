package resolver

import (
	"strings"

	"slice-language-server/internal/ast"
	"slice-language-server/internal/source"
)

// HoverText renders a plain-text summary of the entity under the cursor.
// A cursor over a reference describes the referenced entity; a cursor over a
// declaration's own name describes the declaration. Returns "" when nothing
// is under the cursor.
func HoverText(file *ast.File, loc source.Location) string {
	entity := referenceAt(file, loc)
	if entity == nil {
		entity = declarationAt(file, loc)
	}
	if entity == nil {
		return ""
	}
	return renderEntity(entity)
}

// declarationAt finds the declaration whose identifier span contains the
// cursor.
func declarationAt(file *ast.File, loc source.Location) ast.Entity {
	var found ast.Entity
	ast.Walk(file, func(entity ast.Entity) bool {
		if entity.Identifier().Span.Contains(loc) {
			found = entity
			return true
		}
		return false
	})
	return found
}

func renderEntity(entity ast.Entity) string {
	var b strings.Builder
	b.WriteString(string(entity.Kind()))
	b.WriteByte(' ')
	b.WriteString(entity.ScopedName())
	if doc := entity.Doc(); doc != nil {
		if overview := renderMessage(doc.Overview); overview != "" {
			b.WriteString("\n\n")
			b.WriteString(overview)
		}
	}
	return b.String()
}

func renderMessage(message []ast.MessageComponent) string {
	var b strings.Builder
	for _, component := range message {
		b.WriteString(component.Text)
	}
	return strings.TrimSpace(b.String())
}
