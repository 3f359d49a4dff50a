// Package override merges runtime behavior originating in the auto-generated
// (code-first) schema into the federated schema: field resolvers, abstract
// type resolution, scalar coercion, extensions and AST nodes. The federated
// schema is built from printed SDL and therefore lacks everything that only
// exists in code.
package override

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/g59/graphql"
	"github.com/g59/graphql/internal/federation"
	"github.com/g59/graphql/internal/log"
)

// ExtendSchema walks every named type of the federated schema and imports
// behavior from the same-named type of the auto-generated schema. Neither
// input is modified; the result is a rebuilt executable schema. Types with
// no same-named counterpart are carried over unchanged.
//
// Running the pass twice over the same pair yields a schema with identical
// behavior: the generated type resolvers always delegate to the
// auto-generated schema's resolver, never to a previous wrapper.
func ExtendSchema(ctx context.Context, federated, auto *graphql.ExecutableSchema) *graphql.ExecutableSchema {
	logger := log.FromContext(ctx)

	extended := &graphql.ExecutableSchema{
		Document: federated.Document,
		Types:    make(map[string]*graphql.Type, len(federated.Types)),
	}

	for name, fedType := range federated.Types {
		extended.Types[name] = overrideType(extended, fedType, auto.Type(name))
	}

	extended.Schema = rebuildSchema(federated.Schema, extended.Types)
	extended.Document = rebuildDocument(federated.Document, extended.Types)

	logger.V(1).Info("extended federated schema from auto-generated schema",
		"types", len(extended.Types))

	return extended
}

// overrideType rebuilds one federated type. extended is the schema under
// construction; generated type resolvers look concrete types up in it so
// they hand back instances carrying federation metadata.
func overrideType(extended *graphql.ExecutableSchema, fedType, autoType *graphql.Type) *graphql.Type {
	if autoType == nil {
		return fedType.Clone()
	}

	switch fedType.Kind() {
	case ast.Union:
		if fedType.Name() == federation.EntityUnionName {
			// The entity union is owned by the subgraph machinery.
			return fedType.Clone()
		}
		return overrideAbstractType(extended, fedType, autoType)

	case ast.Interface:
		return overrideAbstractType(extended, fedType, autoType)

	case ast.Enum:
		// The federated declaration may be value-less; the code-first type
		// is authoritative, AST node included.
		return autoType.Clone()

	case ast.InputObject:
		return overrideInputObjectType(fedType, autoType)

	case ast.Object:
		return overrideObjectType(fedType, autoType)

	case ast.Scalar:
		if fedType.Name() == graphql.DateTimeTypeName {
			return overrideDateTimeScalar(fedType, autoType)
		}
		return fedType.Clone()

	default:
		return fedType.Clone()
	}
}

// overrideAbstractType wraps the auto-generated resolveType. When it
// resolves to a concrete type instance, the same-named type of the federated
// schema is preferred: the code-first instance lacks the federation metadata
// the gateway requires. Name-only results pass through as-is.
func overrideAbstractType(extended *graphql.ExecutableSchema, fedType, autoType *graphql.Type) *graphql.Type {
	result := fedType.Clone()

	autoResolve := autoType.ResolveType
	if autoResolve == nil {
		return result
	}

	result.ResolveType = func(ctx context.Context, value interface{}) (*graphql.TypeResolution, error) {
		resolution, err := autoResolve(ctx, value)
		if err != nil || resolution == nil {
			return resolution, err
		}
		if resolution.TypeName != "" {
			return resolution, nil
		}
		if resolution.Type != nil {
			if match := extended.Type(resolution.Type.Name()); match != nil {
				return &graphql.TypeResolution{Type: match}, nil
			}
		}
		return resolution, nil
	}

	return result
}

func overrideInputObjectType(fedType, autoType *graphql.Type) *graphql.Type {
	result := fedType.Clone()

	for name, field := range result.Fields {
		autoField := autoType.Field(name)
		if autoField == nil {
			continue
		}
		field.Extensions = mergeExtensions(nil, autoField.Extensions)
		if autoField.Definition != nil {
			field.Definition = autoField.Definition
		}
	}

	result.Extensions = mergeExtensions(nil, autoType.Extensions)

	return result
}

func overrideObjectType(fedType, autoType *graphql.Type) *graphql.Type {
	result := fedType.Clone()

	for name, field := range result.Fields {
		autoField := autoType.Field(name)
		if autoField == nil {
			continue
		}
		field.Extensions = mergeExtensions(nil, autoField.Extensions)
		if autoField.Definition != nil {
			field.Definition = autoField.Definition
		}
		// A resolver present on the federated field is user-authored and
		// takes precedence; only absent resolvers are filled in.
		if field.Resolve == nil {
			field.Resolve = autoField.Resolve
		}
	}

	if autoType.Definition != nil {
		result.Definition = mergeObjectDefinitions(fedType.Definition, autoType.Definition)
	}
	result.Extensions = mergeExtensions(fedType.Extensions, autoType.Extensions)

	return result
}

// mergeObjectDefinitions overlays the code-first AST node onto the federated
// one. Fields declared by both take the code-first node; fields only the
// federated schema declares (the injected _service/_entities machinery) stay.
// Neither input definition is modified.
func mergeObjectDefinitions(fed, auto *ast.Definition) *ast.Definition {
	if fed == nil {
		return auto
	}

	merged := *auto

	merged.Fields = make(ast.FieldList, 0, len(fed.Fields))
	for _, fieldDef := range fed.Fields {
		if autoField := auto.Fields.ForName(fieldDef.Name); autoField != nil {
			merged.Fields = append(merged.Fields, autoField)
			continue
		}
		merged.Fields = append(merged.Fields, fieldDef)
	}

	merged.Directives = append(ast.DirectiveList{}, fed.Directives...)
	for _, directive := range auto.Directives {
		if len(fed.Directives.ForNames(directive.Name)) == 0 {
			merged.Directives = append(merged.Directives, directive)
		}
	}

	return &merged
}

// overrideDateTimeScalar imports the code-first coercion behavior; the
// SDL-built scalar has none of its own.
func overrideDateTimeScalar(fedType, autoType *graphql.Type) *graphql.Type {
	result := fedType.Clone()

	if autoType.Scalar == nil {
		return result
	}
	if result.Scalar == nil {
		result.Scalar = &graphql.ScalarImpl{}
	}
	result.Scalar.ParseValue = autoType.Scalar.ParseValue
	result.Scalar.ParseLiteral = autoType.Scalar.ParseLiteral
	if result.Scalar.Serialize == nil {
		result.Scalar.Serialize = autoType.Scalar.Serialize
	}

	return result
}

// mergeExtensions shallow-merges overlay over base into a fresh map. Overlay
// values win on key collision. Returns nil when both inputs are empty.
func mergeExtensions(base, overlay map[string]interface{}) map[string]interface{} {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	merged := make(map[string]interface{}, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// rebuildSchema produces a new ast.Schema whose type map points at the
// (possibly replaced) definitions of the rebuilt runtime types. The input
// schema is left untouched.
func rebuildSchema(schema *ast.Schema, types map[string]*graphql.Type) *ast.Schema {
	copied := *schema
	copied.Types = make(map[string]*ast.Definition, len(schema.Types))
	for name, def := range schema.Types {
		copied.Types[name] = def
	}
	for name, typ := range types {
		if typ.Definition != nil {
			copied.Types[name] = typ.Definition
		}
	}
	if copied.Query != nil {
		copied.Query = copied.Types[copied.Query.Name]
	}
	if copied.Mutation != nil {
		copied.Mutation = copied.Types[copied.Mutation.Name]
	}
	if copied.Subscription != nil {
		copied.Subscription = copied.Types[copied.Subscription.Name]
	}
	return &copied
}

// rebuildDocument keeps the source document in step with wholesale type
// replacements (enums), so reprinted SDL matches the runtime schema.
func rebuildDocument(document *ast.SchemaDocument, types map[string]*graphql.Type) *ast.SchemaDocument {
	if document == nil {
		return nil
	}
	copied := *document
	copied.Definitions = make(ast.DefinitionList, 0, len(document.Definitions))
	for _, def := range document.Definitions {
		if typ := types[def.Name]; typ != nil && typ.Definition != nil {
			copied.Definitions = append(copied.Definitions, typ.Definition)
			continue
		}
		copied.Definitions = append(copied.Definitions, def)
	}
	return &copied
}
