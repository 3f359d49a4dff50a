package subgraph

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/g59/graphql"
	"github.com/g59/graphql/internal/federation"
	"github.com/g59/graphql/internal/log"
	"github.com/g59/graphql/internal/override"
)

// Compose builds the application's federation-ready subgraph schema and
// returns the handle the rest of the application reads it through. It runs
// once at startup; any error aborts startup.
//
// The pipeline: resolve the federation version, generate the code-first
// schema, print and decorate its SDL, build the federated schema from the
// SDL plus the merged resolver map, graft the code-first runtime behavior
// onto the federated schema, then merge any hand-written type definitions.
func Compose(ctx context.Context, registry *Registry, opts Options) (*SchemaHost, error) {
	logger := log.FromContext(ctx)

	version, fedConfig := federation.ResolveVersion(opts.AutoSchema)

	builder := opts.Builder
	if builder == nil {
		var err error
		builder, err = federation.NewBuilder(version, fedConfig)
		if err != nil {
			return nil, err
		}
	}

	if opts.Schema != nil {
		return composePrebuilt(ctx, builder, version, opts)
	}

	resolvers := registry.collectResolvers(opts.Resolvers)
	scalars := registry.Scalars()

	directives := make(ast.DirectiveDefinitionList, 0, len(opts.BuildSchemaOptions.Directives))
	if version == federation.Version1 {
		// Federation 2 provides its directives through @link during the
		// federated build; only v1 needs them declared while generating.
		directives = append(directives, federation.DirectivesForVersion(federation.Version1)...)
	}
	directives = append(directives, opts.BuildSchemaOptions.Directives...)

	var autoTransform func(*graphql.ExecutableSchema) (*graphql.ExecutableSchema, error)
	if opts.TransformAutoSchemaFile {
		autoTransform = opts.TransformSchema
	}

	auto, err := generateSchema(ctx, registry.TypeDefs(), generateOptions{
		directives: directives,
		scalars:    scalars,
		resolvers:  resolvers,
		skipCheck:  true,
		sortSchema: opts.SortSchema,
		transform:  autoTransform,
	})
	if err != nil {
		return nil, err
	}

	sdl, err := builder.PrintSchema(auto)
	if err != nil {
		return nil, err
	}
	sdl = federation.DecorateTypeDefs(version, fedConfig, sdl)

	federated, err := builder.BuildSubgraphSchema(ctx, sdl, resolvers, scalars)
	if err != nil {
		return nil, err
	}

	federated = override.ExtendSchema(ctx, federated, auto)

	if opts.TypeDefs != "" {
		federated, err = mergeTypeDefs(federated, opts.TypeDefs)
		if err != nil {
			return nil, err
		}
	}

	if opts.TransformSchema != nil {
		federated, err = opts.TransformSchema(federated)
		if err != nil {
			return nil, err
		}
	}

	finalSDL, err := builder.PrintSchema(federated)
	if err != nil {
		return nil, err
	}

	logger.Info("composed subgraph schema",
		"federationVersion", int(version), "types", len(federated.Types))

	return newSchemaHost(federated, finalSDL, version, opts), nil
}

func composePrebuilt(ctx context.Context, builder graphql.SubgraphBuilder, version federation.Version, opts Options) (*SchemaHost, error) {
	schema := opts.Schema

	if opts.TransformSchema != nil {
		var err error
		schema, err = opts.TransformSchema(schema)
		if err != nil {
			return nil, err
		}
	}

	var sdl string
	if schema.Document != nil {
		var err error
		sdl, err = builder.PrintSchema(schema)
		if err != nil {
			return nil, err
		}
	}

	return newSchemaHost(schema, sdl, version, opts), nil
}

// mergeTypeDefs merges a hand-written SDL document into the composed schema.
// Hand-written definitions take precedence; the merged document is validated
// again and the runtime state rebound by name.
func mergeTypeDefs(es *graphql.ExecutableSchema, typeDefs string) (*graphql.ExecutableSchema, error) {
	doc, gErr := parser.ParseSchema(&ast.Source{
		Name:  "typedefs.graphqls",
		Input: typeDefs,
	})
	if gErr != nil {
		return nil, gErr
	}

	merged := graphql.MergeSchemaDocuments(es.Document, doc)
	schema, vErr := validator.ValidateSchemaDocument(merged)
	if vErr != nil {
		return nil, vErr
	}

	return es.WithSchema(schema, merged), nil
}
