// Package subgraph composes an application's code-first resolver
// declarations and SDL into a federation-compatible subgraph schema.
package subgraph

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/g59/graphql"
)

// BuildSchemaOptions tunes code-first schema generation.
type BuildSchemaOptions struct {
	// Directives are appended to the directive definitions available while
	// generating the code-first schema.
	Directives []*ast.DirectiveDefinition
}

// Options configures a composition run.
type Options struct {
	// AutoSchema is the auto-schema configuration value. A settings map may
	// carry a "federation" entry holding either a bare version number or a
	// nested settings map with a "version" key. Malformed or absent values
	// silently select federation version 1.
	AutoSchema interface{}

	// TypeDefs is an optional hand-written SDL document merged into the
	// composed schema last. Its conflicting definitions take precedence.
	TypeDefs string

	// Resolvers are caller-supplied resolver maps, merged after the
	// registry's auto-discovered resolvers and scalar resolvers. Later
	// entries win on key collision.
	Resolvers []graphql.ResolverMap

	// Schema short-circuits composition with a pre-built schema. Generation,
	// federation building and the override pass are skipped; TransformSchema
	// still applies.
	Schema *graphql.ExecutableSchema

	// TransformSchema is applied to the final composed schema, and — when
	// TransformAutoSchemaFile is set — to the auto-generated schema as well.
	TransformSchema func(*graphql.ExecutableSchema) (*graphql.ExecutableSchema, error)

	// TransformAutoSchemaFile gates applying TransformSchema during
	// auto-generation.
	TransformAutoSchemaFile bool

	// SortSchema sorts the generated schema lexicographically.
	SortSchema bool

	BuildSchemaOptions BuildSchemaOptions

	// Builder overrides the federation subgraph builder. When nil, a builder
	// matching the resolved federation version is constructed; an unknown
	// version is a construction-time error.
	Builder graphql.SubgraphBuilder
}
