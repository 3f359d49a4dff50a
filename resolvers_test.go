package graphql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func namedResolver(name string) FieldResolver {
	return func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
		return name, nil
	}
}

func resolverName(t *testing.T, resolver FieldResolver) string {
	t.Helper()
	require.NotNil(t, resolver)
	v, err := resolver(context.Background(), nil, nil)
	require.NoError(t, err)
	return v.(string)
}

func TestMergeResolverMaps_laterSourceWins(t *testing.T) {
	t.Parallel()

	discovered := ResolverMap{
		"Query": {
			"hello": namedResolver("discovered"),
			"world": namedResolver("discovered"),
		},
	}
	scalarDerived := ResolverMap{
		"Query": {
			"hello": namedResolver("scalar"),
		},
		"DateTime": {
			ScalarParseValueField: namedResolver("scalar"),
		},
	}
	caller := ResolverMap{
		"Query": {
			"hello": namedResolver("caller"),
		},
	}

	merged := MergeResolverMaps(discovered, scalarDerived, caller)

	assert.Equal(t, "caller", resolverName(t, merged["Query"]["hello"]))
	assert.Equal(t, "discovered", resolverName(t, merged["Query"]["world"]))
	assert.Equal(t, "scalar", resolverName(t, merged["DateTime"][ScalarParseValueField]))
}

func TestMergeResolverMaps_doesNotMutateInputs(t *testing.T) {
	t.Parallel()

	first := ResolverMap{"Query": {"hello": namedResolver("first")}}
	second := ResolverMap{"Query": {"hello": namedResolver("second")}}

	merged := MergeResolverMaps(first, second)
	merged["Query"]["extra"] = namedResolver("extra")

	assert.Len(t, first["Query"], 1)
	assert.Len(t, second["Query"], 1)
	assert.Equal(t, "first", resolverName(t, first["Query"]["hello"]))
}

func TestApplyResolvers_bindsEachReservedHookSeparately(t *testing.T) {
	t.Parallel()

	es := buildExecutable(t, `
		scalar DateTime

		type A { id: ID! }
		type B { id: ID! }

		union Thing = A | B

		type Query { thing: Thing }
	`)

	es.ApplyResolvers(ResolverMap{
		"DateTime": {
			ScalarSerializeField:  namedResolver("serialize"),
			ScalarParseValueField: namedResolver("parseValue"),
			ScalarParseLitField:   namedResolver("parseLiteral"),
		},
		"A": {
			ResolveReferenceField: namedResolver("reference"),
		},
		"Thing": {
			ResolveTypeField: namedResolver("A"),
		},
	})

	scalar := es.Type("DateTime").Scalar
	require.NotNil(t, scalar)

	v, err := scalar.Serialize(nil)
	require.NoError(t, err)
	assert.Equal(t, "serialize", v)

	v, err = scalar.ParseValue(nil)
	require.NoError(t, err)
	assert.Equal(t, "parseValue", v)

	v, err = scalar.ParseLiteral(&ast.Value{Kind: ast.StringValue, Raw: "x"})
	require.NoError(t, err)
	assert.Equal(t, "parseLiteral", v)

	assert.Equal(t, "reference", resolverName(t, es.Type("A").ResolveReference))

	resolution, err := es.Type("Thing").ResolveType(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "A", resolution.TypeName)
}

func TestScalarResolvers_roundTrip(t *testing.T) {
	t.Parallel()

	impl := DateTimeScalar()
	resolvers := ScalarResolvers("DateTime", impl)

	require.Contains(t, resolvers, "DateTime")
	fields := resolvers["DateTime"]
	assert.Contains(t, fields, ScalarSerializeField)
	assert.Contains(t, fields, ScalarParseValueField)
	assert.Contains(t, fields, ScalarParseLitField)

	parsed, err := fields[ScalarParseLitField](context.Background(), &ast.Value{
		Kind: ast.StringValue,
		Raw:  "2023-04-05T06:07:08Z",
	}, nil)
	require.NoError(t, err)
	assert.NotNil(t, parsed)

	_, err = fields[ScalarParseLitField](context.Background(), "not a literal", nil)
	assert.Error(t, err)
}
