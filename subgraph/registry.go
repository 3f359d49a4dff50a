package subgraph

import (
	"github.com/g59/graphql"
)

// Registry gathers the host application's schema constructs before
// composition: SDL type definitions, resolver map fragments and custom
// scalar implementations. It is not safe for concurrent registration;
// registration happens during application wiring, before Compose.
type Registry struct {
	typeDefs        []string
	resolvers       []graphql.ResolverMap
	scalarResolvers []graphql.ResolverMap
	scalars         map[string]*graphql.ScalarImpl
}

func NewRegistry() *Registry {
	return &Registry{
		scalars: make(map[string]*graphql.ScalarImpl),
	}
}

// RegisterTypeDefs contributes an SDL fragment to the code-first schema.
func (r *Registry) RegisterTypeDefs(sdl string) {
	r.typeDefs = append(r.typeDefs, sdl)
}

// RegisterResolvers contributes a resolver map fragment. Fragments merge in
// registration order; later fragments win on key collision.
func (r *Registry) RegisterResolvers(resolvers graphql.ResolverMap) {
	r.resolvers = append(r.resolvers, resolvers)
}

// RegisterScalar contributes a custom scalar implementation. The scalar also
// joins the resolver merge through its reserved resolver-map entries, after
// all plain resolver fragments.
func (r *Registry) RegisterScalar(name string, impl *graphql.ScalarImpl) {
	r.scalars[name] = impl
	r.scalarResolvers = append(r.scalarResolvers, graphql.ScalarResolvers(name, impl))
}

// TypeDefs reports the registered SDL fragments in registration order.
func (r *Registry) TypeDefs() []string {
	return append([]string{}, r.typeDefs...)
}

// Scalars reports a copy of the registered scalar implementations.
func (r *Registry) Scalars() map[string]*graphql.ScalarImpl {
	scalars := make(map[string]*graphql.ScalarImpl, len(r.scalars))
	for name, impl := range r.scalars {
		scalars[name] = impl
	}
	return scalars
}

// collectResolvers assembles the final resolver map: auto-discovered
// resolver fragments, then scalar resolver fragments, then caller-supplied
// maps. The later source wins on collision.
func (r *Registry) collectResolvers(callerResolvers []graphql.ResolverMap) graphql.ResolverMap {
	maps := make([]graphql.ResolverMap, 0, len(r.resolvers)+len(r.scalarResolvers)+len(callerResolvers))
	maps = append(maps, r.resolvers...)
	maps = append(maps, r.scalarResolvers...)
	maps = append(maps, callerResolvers...)
	return graphql.MergeResolverMaps(maps...)
}
