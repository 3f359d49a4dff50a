package subgraph

import (
	"context"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/g59/graphql"
	"github.com/g59/graphql/internal/federation"
)

func TestGenerateSchema_promotesOrphanExtensions(t *testing.T) {
	t.Parallel()

	// A subgraph routinely extends a type owned by another service without
	// declaring a local base definition.
	es, err := generateSchema(testContext(t), []string{heredoc.Doc(`
		extend type User @key(fields: "id") {
			id: ID! @external
			reviews: [Review]
		}

		type Review {
			id: ID!
			body: String
		}
	`)}, generateOptions{
		directives: directivesV1(),
		skipCheck:  true,
	})
	if err != nil {
		t.Fatal(err)
	}

	user := es.Type("User")
	if user == nil {
		t.Fatal("orphan extension should be promoted to a definition")
	}
	if user.Field("reviews") == nil {
		t.Error("promoted definition should keep the extension's fields")
	}
}

func TestGenerateSchema_synthesizesQueryRoot(t *testing.T) {
	t.Parallel()

	es, err := generateSchema(testContext(t), []string{heredoc.Doc(`
		type Product @key(fields: "upc") {
			upc: String!
		}
	`)}, generateOptions{
		directives: directivesV1(),
		skipCheck:  true,
	})
	if err != nil {
		t.Fatal(err)
	}

	query := es.Type("Query")
	if query == nil {
		t.Fatal("an entity-only schema should still validate with a synthesized query root")
	}
	if query.Definition.Position.Src.Name != graphql.ImplicitSourceName {
		t.Error("the synthesized query root should carry the implicit source marker")
	}
}

func TestGenerateSchema_declaresImplicitDirectives(t *testing.T) {
	t.Parallel()

	es, err := generateSchema(testContext(t), []string{heredoc.Doc(`
		type Query {
			items(limit: Int): [String] @cost(complexity: 5)
		}

		type Item @audited {
			id: ID!
		}
	`)}, generateOptions{skipCheck: true})
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"cost", "audited"} {
		def := es.Schema.Directives[name]
		if def == nil {
			t.Fatalf("directive @%s used without declaration should get an implicit definition", name)
		}
		if def.Position.Src.Name != graphql.ImplicitSourceName {
			t.Errorf("implicit directive @%s should carry the implicit source marker", name)
		}
	}

	costArg := es.Schema.Directives["cost"].Arguments.ForName("complexity")
	if costArg == nil || costArg.Type.Name() != "Int" {
		t.Errorf("implicit argument type should be inferred from usage, got %v", costArg)
	}
}

func TestGenerateSchema_withoutSkipCheckStaysStrict(t *testing.T) {
	t.Parallel()

	_, err := generateSchema(testContext(t), []string{heredoc.Doc(`
		type Product {
			upc: String! @unknown
		}

		type Query {
			product: Product
		}
	`)}, generateOptions{})
	if err == nil {
		t.Error("undeclared directives should fail strict generation")
	}
}

func TestGenerateSchema_parseFailureIsFatal(t *testing.T) {
	t.Parallel()

	_, err := generateSchema(testContext(t), []string{`type {`}, generateOptions{skipCheck: true})
	if err == nil {
		t.Error("unparsable SDL should abort generation")
	}
}

func TestGenerateSchema_validationFailureIsFatal(t *testing.T) {
	t.Parallel()

	_, err := generateSchema(testContext(t), []string{heredoc.Doc(`
		type Query {
			product: Missing
		}
	`)}, generateOptions{skipCheck: true})
	if err == nil {
		t.Error("a reference to an undefined type should abort generation")
	}
	if err != nil && !strings.Contains(err.Error(), "Missing") {
		t.Errorf("error should name the undefined type, got %v", err)
	}
}

func TestGenerateSchema_appliesScalarsAndResolvers(t *testing.T) {
	t.Parallel()

	called := false
	es, err := generateSchema(testContext(t), []string{heredoc.Doc(`
		scalar DateTime

		type Query {
			now: DateTime
		}
	`)}, generateOptions{
		skipCheck: true,
		scalars: map[string]*graphql.ScalarImpl{
			graphql.DateTimeTypeName: graphql.DateTimeScalar(),
		},
		resolvers: graphql.ResolverMap{
			"Query": {
				"now": func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
					called = true
					return nil, nil
				},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if es.Type(graphql.DateTimeTypeName).Scalar == nil {
		t.Error("scalar implementation should be attached")
	}
	resolve := es.Type("Query").Field("now").Resolve
	if resolve == nil {
		t.Fatal("resolver should be attached")
	}
	if _, err := resolve(testContext(t), nil, nil); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("attached resolver should be the registered one")
	}
}

func directivesV1() ast.DirectiveDefinitionList {
	return federation.DirectivesForVersion(federation.Version1)
}
