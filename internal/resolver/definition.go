// Package resolver answers cursor-position queries against a compiled tree:
// which entity does this position refer to, and where is it declared.
package resolver

import (
	"slice-language-server/internal/ast"
	"slice-language-server/internal/source"
)

// DefinitionSpan returns the identifier span of the entity referenced at
// loc, or nil when the cursor is not over a resolvable reference. Resolution
// is a pre-order, depth-first walk over the file's declarations; the first
// reference whose span contains the cursor wins.
func DefinitionSpan(file *ast.File, loc source.Location) *source.Span {
	target := referenceAt(file, loc)
	if target == nil {
		return nil
	}
	span := target.Identifier().Span
	return &span
}

// referenceAt finds the entity named by the reference under the cursor.
// Each declaration is checked in three stages, mirroring where references
// can appear: doc-comment links, explicit supertype references, and type
// references in signatures. Unresolved references never match.
func referenceAt(file *ast.File, loc source.Location) ast.Entity {
	var found ast.Entity
	ast.Walk(file, func(entity ast.Entity) bool {
		if target := checkDeclaration(entity, loc); target != nil {
			found = target
			return true
		}
		return false
	})
	return found
}

func checkDeclaration(entity ast.Entity, loc source.Location) ast.Entity {
	if target := checkComment(entity.Doc(), loc); target != nil {
		return target
	}

	switch decl := entity.(type) {
	case *ast.Class:
		if target := checkTypeRef(decl.Base, loc); target != nil {
			return target
		}
	case *ast.Exception:
		if target := checkTypeRef(decl.Base, loc); target != nil {
			return target
		}
	case *ast.Interface:
		for _, base := range decl.Bases {
			if target := checkTypeRef(base, loc); target != nil {
				return target
			}
		}
	case *ast.Operation:
		for _, thrown := range decl.Throws {
			if target := checkTypeRef(thrown, loc); target != nil {
				return target
			}
		}
		for _, param := range decl.Parameters {
			if target := checkTypeRef(param.Type, loc); target != nil {
				return target
			}
		}
		for _, ret := range decl.ReturnMembers {
			if target := checkTypeRef(ret.Type, loc); target != nil {
				return target
			}
		}
	case *ast.Field:
		if target := checkTypeRef(decl.Type, loc); target != nil {
			return target
		}
	case *ast.TypeAlias:
		if target := checkTypeRef(decl.Underlying, loc); target != nil {
			return target
		}
	}
	return nil
}

// checkComment scans every cross-reference embedded in a doc comment: links
// in the overview, returns, params and throws messages, plus the see and
// throws tags themselves.
func checkComment(doc *ast.DocComment, loc source.Location) ast.Entity {
	if doc == nil {
		return nil
	}
	if target := checkMessage(doc.Overview, loc); target != nil {
		return target
	}
	for _, returns := range doc.Returns {
		if target := checkMessage(returns.Message, loc); target != nil {
			return target
		}
	}
	for _, param := range doc.Params {
		if target := checkMessage(param.Message, loc); target != nil {
			return target
		}
	}
	for i := range doc.See {
		if target := checkLink(&doc.See[i].Link, loc); target != nil {
			return target
		}
	}
	for _, throws := range doc.Throws {
		if target := checkMessage(throws.Message, loc); target != nil {
			return target
		}
		if target := checkLink(throws.Thrown, loc); target != nil {
			return target
		}
	}
	return nil
}

func checkMessage(message []ast.MessageComponent, loc source.Location) ast.Entity {
	for _, component := range message {
		if target := checkLink(component.Link, loc); target != nil {
			return target
		}
	}
	return nil
}

// checkLink matches the cursor against the span of the link text and yields
// the linked entity when the link resolved.
func checkLink(link *ast.Link, loc source.Location) ast.Entity {
	if link == nil || link.Target == nil {
		return nil
	}
	if link.Span.Contains(loc) {
		return link.Target
	}
	return nil
}

// checkTypeRef matches the cursor against the span of a type reference.
// Primitive and collection types have no target and never resolve.
func checkTypeRef(ref *ast.TypeRef, loc source.Location) ast.Entity {
	if ref == nil || ref.Target == nil {
		return nil
	}
	if ref.Span.Contains(loc) {
		return ref.Target
	}
	return nil
}
