package federation

import (
	"context"
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/g59/graphql"
	"github.com/g59/graphql/internal/log"
)

var _ graphql.SubgraphBuilder = (*subgraphBuilder)(nil)

// NewBuilder returns the subgraph builder for the given federation spec
// version. Unsupported versions are a construction-time error.
func NewBuilder(version Version, config *Config) (graphql.SubgraphBuilder, error) {
	switch version {
	case Version1, Version2:
		return &subgraphBuilder{
			version: version,
			config:  config,
		}, nil
	default:
		return nil, fmt.Errorf("federation: unsupported federation version %d", version)
	}
}

type subgraphBuilder struct {
	version Version
	config  *Config
}

func (b *subgraphBuilder) PrintSchema(es *graphql.ExecutableSchema) (string, error) {
	return PrintSubgraphSchema(es, b.version)
}

// BuildSubgraphSchema parses the (possibly decorated) SDL, injects the
// federation machinery, and binds the merged resolver map. The returned
// schema is the canonical federated schema.
func (b *subgraphBuilder) BuildSubgraphSchema(ctx context.Context, sdl string, resolvers graphql.ResolverMap, scalars map[string]*graphql.ScalarImpl) (*graphql.ExecutableSchema, error) {
	logger := log.FromContext(ctx)

	doc, gErr := parser.ParseSchema(&ast.Source{
		Name:  "subgraph.graphqls",
		Input: sdl,
	})
	if gErr != nil {
		return nil, gErr
	}

	b.injectMachinery(doc)

	full, err := WithPrelude(doc)
	if err != nil {
		return nil, err
	}

	schema, vErr := validator.ValidateSchemaDocument(full)
	if vErr != nil {
		return nil, vErr
	}

	es := graphql.NewExecutableSchema(schema, full)
	es.ApplyScalars(scalars)
	es.ApplyResolvers(resolvers)
	b.attachServiceResolvers(es, sdl)

	logger.V(1).Info("built federated subgraph schema",
		"federationVersion", int(b.version), "types", len(es.Types))

	return es, nil
}

// WithPrelude returns a new document combining the GraphQL prelude (built-in
// scalars and directives) with doc.
func WithPrelude(doc *ast.SchemaDocument) (*ast.SchemaDocument, error) {
	prelude, gErr := parser.ParseSchema(validator.Prelude)
	if gErr != nil {
		return nil, gErr
	}

	merged := &ast.SchemaDocument{}
	merged.Merge(prelude)
	merged.Merge(doc)
	return merged, nil
}

// injectMachinery adds the federation directive definitions and the subgraph
// machinery (_Any, _FieldSet, _Service, the _Entity union over @key types,
// and the Query._service/_entities fields) to the document. Definitions the
// document already carries are left alone.
func (b *subgraphBuilder) injectMachinery(doc *ast.SchemaDocument) {
	declaredDirectives := make(map[string]bool, len(doc.Directives))
	for _, def := range doc.Directives {
		declaredDirectives[def.Name] = true
	}
	for _, def := range DirectivesForVersion(b.version) {
		if declaredDirectives[def.Name] {
			continue
		}
		doc.Directives = append(doc.Directives, def)
	}

	declaredTypes := make(map[string]bool, len(doc.Definitions))
	for _, def := range doc.Definitions {
		declaredTypes[def.Name] = true
	}

	for _, def := range machineryTypes() {
		if declaredTypes[def.Name] {
			continue
		}
		doc.Definitions = append(doc.Definitions, def)
	}
	if b.version == Version2 {
		for _, def := range linkSupportTypes() {
			if declaredTypes[def.Name] {
				continue
			}
			doc.Definitions = append(doc.Definitions, def)
		}
	}

	entities := collectEntityNames(doc)
	if len(entities) != 0 && !declaredTypes[EntityUnionName] {
		doc.Definitions = append(doc.Definitions, &ast.Definition{
			Kind:     ast.Union,
			Name:     EntityUnionName,
			Types:    entities,
			Position: blankPos,
		})
	}

	b.extendQuery(doc, len(entities) != 0)
}

// collectEntityNames gathers the names of all object types carrying @key,
// sorted for stable union membership.
func collectEntityNames(doc *ast.SchemaDocument) []string {
	seen := make(map[string]bool)
	var names []string

	collect := func(defs ast.DefinitionList) {
		for _, def := range defs {
			if def.Kind != ast.Object {
				continue
			}
			if len(def.Directives.ForNames("key")) == 0 {
				continue
			}
			if !seen[def.Name] {
				seen[def.Name] = true
				names = append(names, def.Name)
			}
		}
	}
	collect(doc.Definitions)
	collect(doc.Extensions)

	sort.Strings(names)
	return names
}

func (b *subgraphBuilder) extendQuery(doc *ast.SchemaDocument, hasEntities bool) {
	var query *ast.Definition
	for _, def := range doc.Definitions {
		if def.Kind == ast.Object && def.Name == "Query" {
			query = def
			break
		}
	}
	if query == nil {
		query = &ast.Definition{
			Kind:     ast.Object,
			Name:     "Query",
			Position: blankPos,
		}
		doc.Definitions = append(doc.Definitions, query)
	}

	if hasEntities && query.Fields.ForName(EntitiesFieldName) == nil {
		query.Fields = append(query.Fields, &ast.FieldDefinition{
			Name: EntitiesFieldName,
			Arguments: ast.ArgumentDefinitionList{
				&ast.ArgumentDefinition{
					Name: "representations",
					Type: &ast.Type{
						Elem: &ast.Type{
							NamedType: AnyScalarName,
							NonNull:   true,
						},
						NonNull: true,
					},
				},
			},
			Type: &ast.Type{
				Elem:    &ast.Type{NamedType: EntityUnionName},
				NonNull: true,
			},
			Position: blankPos,
		})
	}
	if query.Fields.ForName(ServiceFieldName) == nil {
		query.Fields = append(query.Fields, &ast.FieldDefinition{
			Name: ServiceFieldName,
			Type: &ast.Type{
				NamedType: ServiceTypeName,
				NonNull:   true,
			},
			Position: blankPos,
		})
	}
}

// attachServiceResolvers wires the _service and _entities fields. sdl is the
// schema text the builder was given, which is exactly what a gateway should
// see when it asks for { _service { sdl } }.
func (b *subgraphBuilder) attachServiceResolvers(es *graphql.ExecutableSchema, sdl string) {
	query := es.Type("Query")
	if query == nil {
		return
	}

	if field := query.Field(ServiceFieldName); field != nil && field.Resolve == nil {
		field.Resolve = func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return map[string]interface{}{"sdl": sdl}, nil
		}
	}

	if field := query.Field(EntitiesFieldName); field != nil && field.Resolve == nil {
		field.Resolve = resolveEntities(es)
	}
}

// resolveEntities dispatches each representation to the named type's
// reference resolver. Types without one pass the representation through
// untouched.
func resolveEntities(es *graphql.ExecutableSchema) graphql.FieldResolver {
	return func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		representations, _ := args["representations"].([]interface{})

		results := make([]interface{}, 0, len(representations))
		for _, representation := range representations {
			rep, ok := representation.(map[string]interface{})
			if !ok {
				return nil, gqlerror.Errorf("_entities representation must be an object, got %T", representation)
			}
			typeName, _ := rep["__typename"].(string)
			typ := es.Type(typeName)
			if typ == nil {
				return nil, gqlerror.Errorf("_entities representation names unknown type %q", typeName)
			}
			if typ.ResolveReference == nil {
				results = append(results, rep)
				continue
			}
			resolved, err := typ.ResolveReference(ctx, rep, nil)
			if err != nil {
				return nil, err
			}
			results = append(results, resolved)
		}
		return results, nil
	}
}
