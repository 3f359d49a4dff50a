package graphql

import (
	"context"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// ImplicitSourceName marks AST nodes synthesized during lenient schema
// generation. Printers exclude nodes carrying this source from SDL output.
const ImplicitSourceName = "implicit.graphqls"

// FieldResolver produces the value of a single field. source is the parent
// object value, args are the coerced field arguments.
type FieldResolver func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error)

// TypeResolution is the outcome of resolving the concrete type of an abstract
// (union or interface) value. Exactly one of TypeName or Type is set; a nil
// *TypeResolution means the resolver could not determine the type.
type TypeResolution struct {
	TypeName string
	Type     *Type
}

// ResolveTypeFunc determines which concrete object type a union/interface
// value belongs to. It is invoked per request during execution and must be
// safe for concurrent use.
type ResolveTypeFunc func(ctx context.Context, value interface{}) (*TypeResolution, error)

// ScalarImpl carries the coercion behavior of a custom scalar.
type ScalarImpl struct {
	Serialize    func(v interface{}) (interface{}, error)
	ParseValue   func(v interface{}) (interface{}, error)
	ParseLiteral func(v *ast.Value) (interface{}, error)
}

func (s *ScalarImpl) clone() *ScalarImpl {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}

// Field is the runtime state attached to a single field definition.
type Field struct {
	// Definition is the AST node this field was declared by.
	Definition *ast.FieldDefinition
	Resolve    FieldResolver
	Extensions map[string]interface{}
}

func (f *Field) Clone() *Field {
	if f == nil {
		return nil
	}
	copied := *f
	copied.Extensions = copyExtensions(f.Extensions)
	return &copied
}

// Type is the runtime state attached to a named type. Which members are
// populated depends on the type kind: Fields for objects/input objects,
// ResolveType for unions/interfaces, Scalar for scalars.
type Type struct {
	Definition  *ast.Definition
	Extensions  map[string]interface{}
	Fields      map[string]*Field
	ResolveType ResolveTypeFunc
	Scalar      *ScalarImpl

	// ResolveReference resolves an entity representation back into a full
	// object value. Used by the subgraph's _entities field.
	ResolveReference FieldResolver
}

// Name reports the type's declared name.
func (t *Type) Name() string {
	if t == nil || t.Definition == nil {
		return ""
	}
	return t.Definition.Name
}

// Kind reports the type's definition kind (object, union, enum, ...).
func (t *Type) Kind() ast.DefinitionKind {
	if t == nil || t.Definition == nil {
		return ""
	}
	return t.Definition.Kind
}

// Clone returns a copy of the type whose maps are independent of the
// original. AST nodes are shared; they are treated as read-only.
func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	copied := *t
	copied.Extensions = copyExtensions(t.Extensions)
	copied.Scalar = t.Scalar.clone()
	if t.Fields != nil {
		copied.Fields = make(map[string]*Field, len(t.Fields))
		for name, field := range t.Fields {
			copied.Fields[name] = field.Clone()
		}
	}
	return &copied
}

// Field looks up a field's runtime state by name.
func (t *Type) Field(name string) *Field {
	if t == nil {
		return nil
	}
	return t.Fields[name]
}

func copyExtensions(extensions map[string]interface{}) map[string]interface{} {
	if extensions == nil {
		return nil
	}
	copied := make(map[string]interface{}, len(extensions))
	for k, v := range extensions {
		copied[k] = v
	}
	return copied
}

// ExecutableSchema pairs a validated schema with the runtime behavior
// (resolvers, type resolvers, scalar coercion, extensions) of its named
// types. The Document is the schema document the Schema was validated from
// and is kept so the schema can be reprinted or merged later.
type ExecutableSchema struct {
	Schema   *ast.Schema
	Document *ast.SchemaDocument
	Types    map[string]*Type
}

// NewExecutableSchema builds the runtime state for every non-built-in named
// type of schema. Field entries are created eagerly so callers can attach
// resolvers and extensions without nil checks.
//
// The validator appends the __schema/__type introspection fields to the query
// root in place; they are removed again here so the paired document stays fit
// for reprinting and revalidation.
func NewExecutableSchema(schema *ast.Schema, document *ast.SchemaDocument) *ExecutableSchema {
	stripIntrospectionFields(schema.Query)

	es := &ExecutableSchema{
		Schema:   schema,
		Document: document,
		Types:    make(map[string]*Type),
	}
	for name, def := range schema.Types {
		if def.BuiltIn {
			continue
		}
		typ := &Type{
			Definition: def,
			Fields:     make(map[string]*Field, len(def.Fields)),
		}
		for _, fieldDef := range def.Fields {
			typ.Fields[fieldDef.Name] = &Field{Definition: fieldDef}
		}
		es.Types[name] = typ
	}
	return es
}

func stripIntrospectionFields(def *ast.Definition) {
	if def == nil {
		return
	}
	fields := make(ast.FieldList, 0, len(def.Fields))
	for _, fieldDef := range def.Fields {
		if strings.HasPrefix(fieldDef.Name, "__") {
			continue
		}
		fields = append(fields, fieldDef)
	}
	def.Fields = fields
}

// Type looks up a named type's runtime state.
func (es *ExecutableSchema) Type(name string) *Type {
	if es == nil {
		return nil
	}
	return es.Types[name]
}

// WithSchema returns a new executable schema bound to schema/document,
// carrying over the runtime state of every type (and field) that still
// exists, matched by name. Types absent from the new schema are dropped;
// types new to it get fresh runtime entries.
func (es *ExecutableSchema) WithSchema(schema *ast.Schema, document *ast.SchemaDocument) *ExecutableSchema {
	next := NewExecutableSchema(schema, document)
	for name, typ := range next.Types {
		prev := es.Type(name)
		if prev == nil {
			continue
		}
		typ.Extensions = copyExtensions(prev.Extensions)
		typ.ResolveType = prev.ResolveType
		typ.ResolveReference = prev.ResolveReference
		typ.Scalar = prev.Scalar.clone()
		for fieldName, field := range typ.Fields {
			prevField := prev.Field(fieldName)
			if prevField == nil {
				continue
			}
			field.Resolve = prevField.Resolve
			field.Extensions = copyExtensions(prevField.Extensions)
		}
	}
	return next
}

// SubgraphBuilder turns printed SDL plus runtime behavior into a
// federation-ready executable schema. Implementations are selected by
// federation spec version; the zero value of a composition without a builder
// is a construction-time error, never a silent fallback.
type SubgraphBuilder interface {
	PrintSchema(es *ExecutableSchema) (string, error)
	BuildSubgraphSchema(ctx context.Context, sdl string, resolvers ResolverMap, scalars map[string]*ScalarImpl) (*ExecutableSchema, error)
}
