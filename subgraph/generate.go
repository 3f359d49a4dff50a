package subgraph

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/g59/graphql"
	"github.com/g59/graphql/internal/federation"
	"github.com/g59/graphql/internal/log"
)

type generateOptions struct {
	directives ast.DirectiveDefinitionList
	scalars    map[string]*graphql.ScalarImpl
	resolvers  graphql.ResolverMap
	// skipCheck relaxes full-document validation: orphan type extensions are
	// promoted to definitions, a missing Query type is synthesized, and
	// undeclared directives get implicit definitions. A subgraph schema is
	// intentionally incomplete and would otherwise fail a full validation
	// pass.
	skipCheck  bool
	sortSchema bool
	transform  func(*graphql.ExecutableSchema) (*graphql.ExecutableSchema, error)
}

// generateSchema builds the auto-generated (non-federated) executable schema
// from the registry's SDL fragments. Any failure is logged with its error
// detail payload and returned; generation failure is fatal to composition.
func generateSchema(ctx context.Context, typeDefs []string, o generateOptions) (*graphql.ExecutableSchema, error) {
	logger := log.FromContext(ctx)

	doc := &ast.SchemaDocument{}
	for i, sdl := range typeDefs {
		parsed, gErr := parser.ParseSchema(&ast.Source{
			Name:  fmt.Sprintf("typedefs%02d.graphqls", i),
			Input: sdl,
		})
		if gErr != nil {
			logGenerationError(logger, gErr)
			return nil, gErr
		}
		doc.Merge(parsed)
	}

	declared := make(map[string]bool, len(doc.Directives))
	for _, def := range doc.Directives {
		declared[def.Name] = true
	}
	for _, def := range o.directives {
		if declared[def.Name] {
			continue
		}
		doc.Directives = append(doc.Directives, def)
		declared[def.Name] = true
	}

	if o.skipCheck {
		promoteOrphanExtensions(doc)
		ensureQueryType(doc)
		declareImplicitDirectives(doc)
		ensureDirectiveArgumentTypes(doc)
	}

	full, err := federation.WithPrelude(doc)
	if err != nil {
		logGenerationError(logger, err)
		return nil, err
	}

	schema, vErr := validator.ValidateSchemaDocument(full)
	if vErr != nil {
		logGenerationError(logger, vErr)
		return nil, vErr
	}

	if o.sortSchema {
		graphql.LexicographicSortSchema(schema)
	}

	es := graphql.NewExecutableSchema(schema, full)
	es.ApplyScalars(o.scalars)
	es.ApplyResolvers(o.resolvers)

	if o.transform != nil {
		es, err = o.transform(es)
		if err != nil {
			logGenerationError(logger, err)
			return nil, err
		}
	}

	return es, nil
}

// logGenerationError surfaces the error detail payload when the failure is
// GraphQL-shaped.
func logGenerationError(logger logr.Logger, err error) {
	var list gqlerror.List
	if errors.As(err, &list) {
		for _, gErr := range list {
			logger.Error(gErr, "schema generation failed",
				"locations", gErr.Locations, "rule", gErr.Rule)
		}
		return
	}
	var gErr *gqlerror.Error
	if errors.As(err, &gErr) {
		logger.Error(gErr, "schema generation failed",
			"locations", gErr.Locations, "rule", gErr.Rule)
		return
	}
	logger.Error(err, "schema generation failed")
}

// promoteOrphanExtensions turns `extend type X` without a local base
// definition into a plain definition. Subgraphs routinely extend types owned
// by another service.
func promoteOrphanExtensions(doc *ast.SchemaDocument) {
	defined := make(map[string]bool, len(doc.Definitions))
	for _, def := range doc.Definitions {
		defined[def.Name] = true
	}

	kept := make(ast.DefinitionList, 0, len(doc.Extensions))
	for _, ext := range doc.Extensions {
		if defined[ext.Name] {
			kept = append(kept, ext)
			continue
		}
		promoted := *ext
		doc.Definitions = append(doc.Definitions, &promoted)
		defined[ext.Name] = true
	}
	doc.Extensions = kept
}

var implicitPos = &ast.Position{
	Src: &ast.Source{
		Name: graphql.ImplicitSourceName,
	},
}

// ensureQueryType synthesizes a placeholder Query when the document has
// none. An entity-only subgraph is legal, but a validated schema needs a
// query root. The placeholder field reuses the reserved _service name so the
// subgraph printer strips it again.
func ensureQueryType(doc *ast.SchemaDocument) {
	for _, def := range doc.Definitions {
		if def.Kind == ast.Object && def.Name == "Query" {
			return
		}
	}
	doc.Definitions = append(doc.Definitions, &ast.Definition{
		Kind: ast.Object,
		Name: "Query",
		Fields: ast.FieldList{
			&ast.FieldDefinition{
				Name:     federation.ServiceFieldName,
				Type:     &ast.Type{NamedType: "String"},
				Position: implicitPos,
			},
		},
		Position: implicitPos,
	})
}

// declareImplicitDirectives synthesizes a definition for every directive the
// document uses but never declares, with argument types inferred from the
// first usage. The definitions carry the implicit source marker so printers
// drop them again.
func declareImplicitDirectives(doc *ast.SchemaDocument) {
	implicit := make(map[string]*ast.DirectiveDefinition)
	declared := make(map[string]bool)
	for _, def := range doc.Directives {
		declared[def.Name] = true
	}
	for _, def := range graphql.SpecifiedDirectives {
		declared[def.Name] = true
	}

	record := func(directives ast.DirectiveList, location ast.DirectiveLocation) {
		for _, directive := range directives {
			if declared[directive.Name] {
				continue
			}
			def, ok := implicit[directive.Name]
			if !ok {
				def = &ast.DirectiveDefinition{
					Name:         directive.Name,
					Arguments:    implicitArguments(directive),
					IsRepeatable: true,
					Position:     implicitPos,
				}
				implicit[directive.Name] = def
				doc.Directives = append(doc.Directives, def)
			}
			var hasLocation bool
			for _, loc := range def.Locations {
				if loc == location {
					hasLocation = true
					break
				}
			}
			if !hasLocation {
				def.Locations = append(def.Locations, location)
			}
		}
	}

	recordDefs := func(defs ast.DefinitionList) {
		for _, def := range defs {
			record(def.Directives, directiveLocationForKind(def.Kind))
			fieldLocation := ast.LocationFieldDefinition
			if def.Kind == ast.InputObject {
				fieldLocation = ast.LocationInputFieldDefinition
			}
			for _, fieldDef := range def.Fields {
				record(fieldDef.Directives, fieldLocation)
				for _, argDef := range fieldDef.Arguments {
					record(argDef.Directives, ast.LocationArgumentDefinition)
				}
			}
			for _, enumValue := range def.EnumValues {
				record(enumValue.Directives, ast.LocationEnumValue)
			}
		}
	}
	recordDefs(doc.Definitions)
	recordDefs(doc.Extensions)

	for _, schemaDef := range doc.Schema {
		record(schemaDef.Directives, ast.LocationSchema)
	}
	for _, schemaDef := range doc.SchemaExtension {
		record(schemaDef.Directives, ast.LocationSchema)
	}
}

// ensureDirectiveArgumentTypes declares a scalar for every type a directive
// definition's arguments reference but the document never defines. The v1
// federation directives reference _FieldSet, which only the federated build
// step injects.
func ensureDirectiveArgumentTypes(doc *ast.SchemaDocument) {
	defined := make(map[string]bool, len(doc.Definitions))
	for _, def := range doc.Definitions {
		defined[def.Name] = true
	}
	for _, def := range graphql.SpecifiedScalarTypes {
		defined[def.Name] = true
	}

	for _, def := range doc.Directives {
		for _, argDef := range def.Arguments {
			name := argDef.Type.Name()
			if name == "" || defined[name] {
				continue
			}
			doc.Definitions = append(doc.Definitions, &ast.Definition{
				Kind:     ast.Scalar,
				Name:     name,
				Position: implicitPos,
			})
			defined[name] = true
		}
	}
}

func directiveLocationForKind(kind ast.DefinitionKind) ast.DirectiveLocation {
	switch kind {
	case ast.Object:
		return ast.LocationObject
	case ast.Interface:
		return ast.LocationInterface
	case ast.Union:
		return ast.LocationUnion
	case ast.Enum:
		return ast.LocationEnum
	case ast.InputObject:
		return ast.LocationInputObject
	case ast.Scalar:
		return ast.LocationScalar
	default:
		return ast.LocationObject
	}
}

func implicitArguments(directive *ast.Directive) ast.ArgumentDefinitionList {
	args := make(ast.ArgumentDefinitionList, 0, len(directive.Arguments))
	for _, arg := range directive.Arguments {
		args = append(args, &ast.ArgumentDefinition{
			Name:     arg.Name,
			Type:     inferValueType(arg.Value),
			Position: implicitPos,
		})
	}
	return args
}

func inferValueType(value *ast.Value) *ast.Type {
	if value == nil {
		return &ast.Type{NamedType: "String"}
	}
	switch value.Kind {
	case ast.IntValue:
		return &ast.Type{NamedType: "Int"}
	case ast.FloatValue:
		return &ast.Type{NamedType: "Float"}
	case ast.BooleanValue:
		return &ast.Type{NamedType: "Boolean"}
	case ast.ListValue:
		if len(value.Children) != 0 {
			return &ast.Type{Elem: inferValueType(value.Children[0].Value)}
		}
		return &ast.Type{Elem: &ast.Type{NamedType: "String"}}
	default:
		return &ast.Type{NamedType: "String"}
	}
}
