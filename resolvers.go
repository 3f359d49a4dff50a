package graphql

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/vektah/gqlparser/v2/ast"
)

// Reserved pseudo-field names understood by ApplyResolvers. They let
// non-field behavior (abstract type resolution, entity reference resolution,
// scalar coercion) travel through the same ordered resolver-map merge as
// plain field resolvers.
const (
	ResolveTypeField      = "__resolveType"
	ResolveReferenceField = "__resolveReference"
	ScalarSerializeField  = "__serialize"
	ScalarParseValueField = "__parseValue"
	ScalarParseLitField   = "__parseLiteral"
)

type FieldResolverMap map[string]FieldResolver

// ResolverMap maps type name to field name to resolver.
type ResolverMap map[string]FieldResolverMap

// MergeResolverMaps shallow-merges maps in order. On a type/field key
// collision the later map wins.
func MergeResolverMaps(maps ...ResolverMap) ResolverMap {
	merged := make(ResolverMap)
	for _, m := range maps {
		for typeName, fields := range m {
			merged[typeName] = lo.Assign(merged[typeName], fields)
		}
	}
	return merged
}

// ScalarResolvers exposes a scalar implementation as resolver-map entries
// under the reserved scalar field names, so scalar behavior participates in
// the ordered resolver merge like any other resolver fragment.
func ScalarResolvers(name string, impl *ScalarImpl) ResolverMap {
	fields := make(FieldResolverMap, 3)
	if impl.Serialize != nil {
		serialize := impl.Serialize
		fields[ScalarSerializeField] = func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return serialize(source)
		}
	}
	if impl.ParseValue != nil {
		parseValue := impl.ParseValue
		fields[ScalarParseValueField] = func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return parseValue(source)
		}
	}
	if impl.ParseLiteral != nil {
		parseLiteral := impl.ParseLiteral
		fields[ScalarParseLitField] = func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			literal, ok := source.(*ast.Value)
			if !ok {
				return nil, fmt.Errorf("graphql: scalar %s literal must be *ast.Value, got %T", name, source)
			}
			return parseLiteral(literal)
		}
	}
	return ResolverMap{name: fields}
}

// ApplyScalars attaches scalar implementations to same-named scalar types.
// Names without a matching type are ignored.
func (es *ExecutableSchema) ApplyScalars(scalars map[string]*ScalarImpl) {
	for name, impl := range scalars {
		typ := es.Type(name)
		if typ == nil || typ.Kind() != ast.Scalar {
			continue
		}
		typ.Scalar = impl.clone()
	}
}

// ApplyResolvers attaches a merged resolver map to the schema's types.
// Entries naming a type or field the schema doesn't declare are ignored;
// the map may legitimately carry resolvers for types that only exist in a
// sibling schema.
func (es *ExecutableSchema) ApplyResolvers(resolvers ResolverMap) {
	for typeName, fields := range resolvers {
		typ := es.Type(typeName)
		if typ == nil {
			continue
		}
		for fieldName, resolver := range fields {
			// The scalar-hook closures below outlive the iteration.
			resolver := resolver
			switch fieldName {
			case ResolveTypeField:
				typ.ResolveType = typeResolverFromFieldResolver(resolver)
			case ResolveReferenceField:
				typ.ResolveReference = resolver
			case ScalarSerializeField:
				ensureScalar(typ).Serialize = func(v interface{}) (interface{}, error) {
					return resolver(context.Background(), v, nil)
				}
			case ScalarParseValueField:
				ensureScalar(typ).ParseValue = func(v interface{}) (interface{}, error) {
					return resolver(context.Background(), v, nil)
				}
			case ScalarParseLitField:
				ensureScalar(typ).ParseLiteral = func(v *ast.Value) (interface{}, error) {
					return resolver(context.Background(), v, nil)
				}
			default:
				field := typ.Field(fieldName)
				if field == nil {
					continue
				}
				field.Resolve = resolver
			}
		}
	}
}

func ensureScalar(typ *Type) *ScalarImpl {
	if typ.Scalar == nil {
		typ.Scalar = &ScalarImpl{}
	}
	return typ.Scalar
}

// typeResolverFromFieldResolver adapts a resolver-map __resolveType entry.
// The underlying function may return a type name or a *Type instance.
func typeResolverFromFieldResolver(resolver FieldResolver) ResolveTypeFunc {
	return func(ctx context.Context, value interface{}) (*TypeResolution, error) {
		result, err := resolver(ctx, value, nil)
		if err != nil || result == nil {
			return nil, err
		}
		switch result := result.(type) {
		case string:
			if result == "" {
				return nil, nil
			}
			return &TypeResolution{TypeName: result}, nil
		case *Type:
			return &TypeResolution{Type: result}, nil
		case *TypeResolution:
			return result, nil
		default:
			return nil, fmt.Errorf("graphql: __resolveType must return a type name or *Type, got %T", result)
		}
	}
}
