package subgraph

import (
	"github.com/g59/graphql"
	"github.com/g59/graphql/internal/federation"
)

// SchemaHost is the handle Compose returns. The host application threads it
// to whichever components need the composed schema for introspection or
// execution. It is created once at startup and read-only thereafter, so it
// is safe for concurrent reads.
type SchemaHost struct {
	schema  *graphql.ExecutableSchema
	sdl     string
	version federation.Version
	options Options
}

func newSchemaHost(schema *graphql.ExecutableSchema, sdl string, version federation.Version, opts Options) *SchemaHost {
	// The hand-written SDL is folded into the schema by now; the published
	// options no longer carry it.
	opts.TypeDefs = ""

	return &SchemaHost{
		schema:  schema,
		sdl:     sdl,
		version: version,
		options: opts,
	}
}

// Schema reports the composed executable schema.
func (h *SchemaHost) Schema() *graphql.ExecutableSchema {
	return h.schema
}

// SDL reports the composed schema's printed subgraph SDL.
func (h *SchemaHost) SDL() string {
	return h.sdl
}

// FederationVersion reports the resolved federation spec version.
func (h *SchemaHost) FederationVersion() int {
	return int(h.version)
}

// Options reports the composition options, with TypeDefs cleared.
func (h *SchemaHost) Options() Options {
	return h.options
}
