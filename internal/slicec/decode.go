package slicec

import (
	"encoding/json"
	"fmt"

	"slice-language-server/internal/ast"
	"slice-language-server/internal/diag"
	"slice-language-server/internal/source"
)

// The compiler's --dump-json output. Cross-references (type refs, doc links)
// name their targets by module-scoped identifier; decoding is two-pass:
// build every entity first, then patch references through a symbol index.

type wireDump struct {
	Files       []wireFile       `json:"files"`
	Diagnostics []wireDiagnostic `json:"diagnostics"`
}

type wireFile struct {
	Path    string     `json:"path"`
	Modules []wireDecl `json:"modules"`
}

type wireLocation struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

type wireSpan struct {
	File  string       `json:"file,omitempty"`
	Start wireLocation `json:"start"`
	End   wireLocation `json:"end"`
}

type wireIdentifier struct {
	Value string   `json:"value"`
	Span  wireSpan `json:"span"`
}

type wireTypeRef struct {
	Name   string   `json:"name"`
	Span   wireSpan `json:"span"`
	Target string   `json:"target,omitempty"`
}

type wireLink struct {
	Text   string   `json:"text,omitempty"`
	Span   wireSpan `json:"span"`
	Target string   `json:"target,omitempty"`
}

type wireMessageComponent struct {
	Text string    `json:"text,omitempty"`
	Link *wireLink `json:"link,omitempty"`
}

type wireParamTag struct {
	Name    string                 `json:"name"`
	Message []wireMessageComponent `json:"message"`
}

type wireReturnsTag struct {
	Message []wireMessageComponent `json:"message"`
}

type wireThrowsTag struct {
	Thrown  *wireLink              `json:"thrown,omitempty"`
	Message []wireMessageComponent `json:"message"`
}

type wireComment struct {
	Overview []wireMessageComponent `json:"overview,omitempty"`
	Params   []wireParamTag         `json:"params,omitempty"`
	Returns  []wireReturnsTag       `json:"returns,omitempty"`
	Throws   []wireThrowsTag        `json:"throws,omitempty"`
	See      []wireLink             `json:"see,omitempty"`
}

type wireDecl struct {
	Kind       string       `json:"kind"`
	Identifier wireIdentifier `json:"identifier"`
	Scoped     string       `json:"scoped,omitempty"`
	Comment    *wireComment `json:"comment,omitempty"`

	Contents    []wireDecl    `json:"contents,omitempty"`
	Fields      []wireDecl    `json:"fields,omitempty"`
	Operations  []wireDecl    `json:"operations,omitempty"`
	Enumerators []wireDecl    `json:"enumerators,omitempty"`
	Parameters  []wireDecl    `json:"parameters,omitempty"`
	Returns     []wireDecl    `json:"returns,omitempty"`
	Base        *wireTypeRef  `json:"base,omitempty"`
	Bases       []wireTypeRef `json:"bases,omitempty"`
	Throws      []wireTypeRef `json:"throws,omitempty"`
	Type        *wireTypeRef  `json:"type,omitempty"`
	Underlying  *wireTypeRef  `json:"underlying,omitempty"`
}

type wireDiagnostic struct {
	Severity string    `json:"severity"`
	Code     string    `json:"code,omitempty"`
	Message  string    `json:"message"`
	Span     *wireSpan `json:"span,omitempty"`
}

// DecodeCompilationState decodes a compiler dump and resolves every
// cross-reference against the declared entities.
func DecodeCompilationState(data []byte) (*CompilationState, error) {
	var dump wireDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, err
	}

	dec := &decoder{index: make(map[string]ast.Entity)}
	files := make(map[string]*ast.File, len(dump.Files))
	for _, wf := range dump.Files {
		file := &ast.File{Path: wf.Path}
		for _, wm := range wf.Modules {
			entity, err := dec.decl(wm)
			if err != nil {
				return nil, err
			}
			module, ok := entity.(*ast.Module)
			if !ok {
				return nil, fmt.Errorf("top-level declaration %q in %s is not a module", wm.Identifier.Value, wf.Path)
			}
			file.Modules = append(file.Modules, module)
		}
		files[wf.Path] = file
	}
	dec.patch()

	diags := make([]diag.Diagnostic, 0, len(dump.Diagnostics))
	for _, wd := range dump.Diagnostics {
		diags = append(diags, decodeDiagnostic(wd))
	}
	return &CompilationState{Files: files, Diagnostics: diags}, nil
}

// decoder accumulates declared entities and the references that still need
// their targets patched in.
type decoder struct {
	index    map[string]ast.Entity
	typeRefs []pendingTypeRef
	links    []pendingLink
}

type pendingTypeRef struct {
	ref    *ast.TypeRef
	target string
}

type pendingLink struct {
	link   *ast.Link
	target string
}

func (d *decoder) decl(w wireDecl) (ast.Entity, error) {
	named := ast.NewNamed(decodeIdentifier(w.Identifier), w.Scoped, d.comment(w.Comment))

	var entity ast.Entity
	switch ast.Kind(w.Kind) {
	case ast.KindModule:
		module := &ast.Module{Named: named}
		for _, nested := range w.Contents {
			child, err := d.decl(nested)
			if err != nil {
				return nil, err
			}
			module.Contents = append(module.Contents, child)
		}
		entity = module
	case ast.KindStruct:
		fields, err := d.fields(w.Fields)
		if err != nil {
			return nil, err
		}
		entity = &ast.Struct{Named: named, Fields: fields}
	case ast.KindClass:
		fields, err := d.fields(w.Fields)
		if err != nil {
			return nil, err
		}
		entity = &ast.Class{Named: named, Base: d.typeRef(w.Base), Fields: fields}
	case ast.KindException:
		fields, err := d.fields(w.Fields)
		if err != nil {
			return nil, err
		}
		entity = &ast.Exception{Named: named, Base: d.typeRef(w.Base), Fields: fields}
	case ast.KindInterface:
		iface := &ast.Interface{Named: named, Bases: d.typeRefs2(w.Bases)}
		for _, wop := range w.Operations {
			op, err := d.decl(wop)
			if err != nil {
				return nil, err
			}
			operation, ok := op.(*ast.Operation)
			if !ok {
				return nil, fmt.Errorf("interface %q contains non-operation %q", w.Identifier.Value, wop.Identifier.Value)
			}
			iface.Operations = append(iface.Operations, operation)
		}
		entity = iface
	case ast.KindEnum:
		enum := &ast.Enum{Named: named}
		for _, we := range w.Enumerators {
			child, err := d.decl(we)
			if err != nil {
				return nil, err
			}
			enumerator, ok := child.(*ast.Enumerator)
			if !ok {
				return nil, fmt.Errorf("enum %q contains non-enumerator %q", w.Identifier.Value, we.Identifier.Value)
			}
			enum.Enumerators = append(enum.Enumerators, enumerator)
		}
		entity = enum
	case ast.KindOperation:
		params, err := d.parameters(w.Parameters)
		if err != nil {
			return nil, err
		}
		returns, err := d.parameters(w.Returns)
		if err != nil {
			return nil, err
		}
		entity = &ast.Operation{Named: named, Parameters: params, ReturnMembers: returns, Throws: d.typeRefs2(w.Throws)}
	case ast.KindField:
		entity = &ast.Field{Named: named, Type: d.typeRef(w.Type)}
	case ast.KindParameter:
		entity = &ast.Parameter{Named: named, Type: d.typeRef(w.Type)}
	case ast.KindCustomType:
		entity = &ast.CustomType{Named: named}
	case ast.KindTypeAlias:
		entity = &ast.TypeAlias{Named: named, Underlying: d.typeRef(w.Underlying)}
	default:
		return nil, fmt.Errorf("unknown declaration kind %q", w.Kind)
	}

	d.register(w.Scoped, entity)
	return entity, nil
}

func (d *decoder) register(scoped string, entity ast.Entity) {
	if scoped != "" {
		d.index[scoped] = entity
	}
}

func (d *decoder) fields(ws []wireDecl) ([]*ast.Field, error) {
	fields := make([]*ast.Field, 0, len(ws))
	for _, w := range ws {
		entity, err := d.decl(w)
		if err != nil {
			return nil, err
		}
		field, ok := entity.(*ast.Field)
		if !ok {
			return nil, fmt.Errorf("expected field, got %q for %q", w.Kind, w.Identifier.Value)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func (d *decoder) parameters(ws []wireDecl) ([]*ast.Parameter, error) {
	params := make([]*ast.Parameter, 0, len(ws))
	for _, w := range ws {
		entity, err := d.decl(w)
		if err != nil {
			return nil, err
		}
		param, ok := entity.(*ast.Parameter)
		if !ok {
			return nil, fmt.Errorf("expected parameter, got %q for %q", w.Kind, w.Identifier.Value)
		}
		params = append(params, param)
	}
	return params, nil
}

func (d *decoder) typeRef(w *wireTypeRef) *ast.TypeRef {
	if w == nil {
		return nil
	}
	ref := &ast.TypeRef{Name: w.Name, Span: decodeSpan(w.Span)}
	if w.Target != "" {
		d.typeRefs = append(d.typeRefs, pendingTypeRef{ref: ref, target: w.Target})
	}
	return ref
}

func (d *decoder) typeRefs2(ws []wireTypeRef) []*ast.TypeRef {
	if len(ws) == 0 {
		return nil
	}
	refs := make([]*ast.TypeRef, 0, len(ws))
	for i := range ws {
		refs = append(refs, d.typeRef(&ws[i]))
	}
	return refs
}

func (d *decoder) link(w *wireLink) *ast.Link {
	if w == nil {
		return nil
	}
	link := &ast.Link{Span: decodeSpan(w.Span)}
	if w.Target != "" {
		d.links = append(d.links, pendingLink{link: link, target: w.Target})
	}
	return link
}

func (d *decoder) message(ws []wireMessageComponent) []ast.MessageComponent {
	if len(ws) == 0 {
		return nil
	}
	message := make([]ast.MessageComponent, 0, len(ws))
	for _, w := range ws {
		component := ast.MessageComponent{Text: w.Text}
		if w.Link != nil {
			component.Link = d.link(w.Link)
			if component.Text == "" {
				component.Text = w.Link.Text
			}
		}
		message = append(message, component)
	}
	return message
}

func (d *decoder) comment(w *wireComment) *ast.DocComment {
	if w == nil {
		return nil
	}
	doc := &ast.DocComment{Overview: d.message(w.Overview)}
	for _, wp := range w.Params {
		doc.Params = append(doc.Params, ast.ParamTag{Name: wp.Name, Message: d.message(wp.Message)})
	}
	for _, wr := range w.Returns {
		doc.Returns = append(doc.Returns, ast.ReturnsTag{Message: d.message(wr.Message)})
	}
	for _, wt := range w.Throws {
		doc.Throws = append(doc.Throws, ast.ThrowsTag{Thrown: d.link(wt.Thrown), Message: d.message(wt.Message)})
	}
	for i := range w.See {
		if link := d.link(&w.See[i]); link != nil {
			doc.See = append(doc.See, ast.SeeTag{Link: *link})
		}
	}
	return doc
}

// patch resolves every pending reference against the entity index.
// References naming an unknown entity stay unresolved; the resolver treats
// them as not jumpable.
func (d *decoder) patch() {
	for _, pending := range d.typeRefs {
		pending.ref.Target = d.index[pending.target]
	}
	for _, pending := range d.links {
		pending.link.Target = d.index[pending.target]
	}
}

func decodeIdentifier(w wireIdentifier) ast.Identifier {
	return ast.Identifier{Value: w.Value, Span: decodeSpan(w.Span)}
}

func decodeSpan(w wireSpan) source.Span {
	return source.Span{
		Start: source.Location{Line: w.Start.Line, Col: w.Start.Col},
		End:   source.Location{Line: w.End.Line, Col: w.End.Col},
	}
}

func decodeDiagnostic(w wireDiagnostic) diag.Diagnostic {
	d := diag.Diagnostic{Code: w.Code, Message: w.Message}
	switch w.Severity {
	case "error":
		d.Severity = diag.SeverityError
	case "warning":
		d.Severity = diag.SeverityWarning
	default:
		d.Severity = diag.SeverityNote
	}
	if w.Span != nil {
		d.Span = &source.FileSpan{
			File: w.Span.File,
			Span: decodeSpan(*w.Span),
		}
	}
	return d
}
