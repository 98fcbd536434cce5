// Package ast holds the compiled-tree data model handed back by the external
// Slice compiler. The language server never builds these trees itself; it
// decodes them from compiler output and walks them to answer cursor queries.
package ast

import "slice-language-server/internal/source"

// Kind identifies the declaration kind of an entity.
type Kind string

const (
	KindModule     Kind = "module"
	KindStruct     Kind = "struct"
	KindClass      Kind = "class"
	KindException  Kind = "exception"
	KindInterface  Kind = "interface"
	KindEnum       Kind = "enum"
	KindEnumerator Kind = "enumerator"
	KindOperation  Kind = "operation"
	KindField      Kind = "field"
	KindParameter  Kind = "parameter"
	KindCustomType Kind = "customType"
	KindTypeAlias  Kind = "typeAlias"
)

// Identifier is the name token of a declaration. Its span is the range that
// goto-definition jumps to.
type Identifier struct {
	Value string
	Span  source.Span
}

// Entity is implemented by every named declaration in a compiled tree.
type Entity interface {
	Kind() Kind
	Name() string
	// ScopedName returns the module-qualified name, or the plain name when
	// the compiler did not report one.
	ScopedName() string
	Identifier() *Identifier
	Doc() *DocComment
}

// TypeRef is a use of a type name inside a declaration signature. Target is
// nil for primitive and collection types, which have no declaration to jump
// to, and for references the compiler could not resolve.
type TypeRef struct {
	Name   string
	Span   source.Span
	Target Entity
}

// Link is a resolved cross-reference inside a doc comment. The span covers
// the link text, not the target declaration.
type Link struct {
	Span   source.Span
	Target Entity
}

// MessageComponent is one piece of doc-comment text. Link is set when the
// component is an inline cross-reference; Text always carries the rendered
// form.
type MessageComponent struct {
	Text string
	Link *Link
}

// ParamTag documents a single operation parameter.
type ParamTag struct {
	Name    string
	Message []MessageComponent
}

// ReturnsTag documents an operation return value.
type ReturnsTag struct {
	Message []MessageComponent
}

// ThrowsTag documents an exception an operation can throw. Thrown points at
// the exception named by the tag itself.
type ThrowsTag struct {
	Thrown  *Link
	Message []MessageComponent
}

// SeeTag is a "see also" cross-reference.
type SeeTag struct {
	Link
}

// DocComment is the structured documentation comment attached to a
// declaration.
type DocComment struct {
	Overview []MessageComponent
	Params   []ParamTag
	Returns  []ReturnsTag
	Throws   []ThrowsTag
	See      []SeeTag
}

// named carries the pieces shared by every declaration.
type named struct {
	Ident   Identifier
	Scoped  string
	Comment *DocComment
}

func (n *named) Name() string            { return n.Ident.Value }
func (n *named) Identifier() *Identifier { return &n.Ident }
func (n *named) Doc() *DocComment        { return n.Comment }

func (n *named) ScopedName() string {
	if n.Scoped != "" {
		return n.Scoped
	}
	return n.Ident.Value
}

// NewNamed builds the common declaration parts. It exists so other packages
// can construct entities; the fields themselves stay unexported to keep the
// Entity surface uniform.
func NewNamed(ident Identifier, scoped string, doc *DocComment) Named {
	return Named{named{Ident: ident, Scoped: scoped, Comment: doc}}
}

// Named is the embeddable implementation of the non-kind parts of Entity.
type Named struct {
	named
}

// Module is a Slice module; it contains every other declaration kind.
type Module struct {
	Named
	Contents []Entity
}

func (*Module) Kind() Kind { return KindModule }

type Struct struct {
	Named
	Fields []*Field
}

func (*Struct) Kind() Kind { return KindStruct }

type Class struct {
	Named
	Base   *TypeRef
	Fields []*Field
}

func (*Class) Kind() Kind { return KindClass }

type Exception struct {
	Named
	Base   *TypeRef
	Fields []*Field
}

func (*Exception) Kind() Kind { return KindException }

type Interface struct {
	Named
	Bases      []*TypeRef
	Operations []*Operation
}

func (*Interface) Kind() Kind { return KindInterface }

type Enum struct {
	Named
	Enumerators []*Enumerator
}

func (*Enum) Kind() Kind { return KindEnum }

type Enumerator struct {
	Named
}

func (*Enumerator) Kind() Kind { return KindEnumerator }

// Operation is an interface operation. ReturnMembers holds the declared
// return elements; Throws is the declared exception specification.
type Operation struct {
	Named
	Parameters    []*Parameter
	ReturnMembers []*Parameter
	Throws        []*TypeRef
}

func (*Operation) Kind() Kind { return KindOperation }

type Field struct {
	Named
	Type *TypeRef
}

func (*Field) Kind() Kind { return KindField }

type Parameter struct {
	Named
	Type *TypeRef
}

func (*Parameter) Kind() Kind { return KindParameter }

type CustomType struct {
	Named
}

func (*CustomType) Kind() Kind { return KindCustomType }

type TypeAlias struct {
	Named
	Underlying *TypeRef
}

func (*TypeAlias) Kind() Kind { return KindTypeAlias }

// File is one compiled Slice file.
type File struct {
	// Path is the absolute path of the file on disk.
	Path string
	// Modules are the top-level module declarations in the file.
	Modules []*Module
}
