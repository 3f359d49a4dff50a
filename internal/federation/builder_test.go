package federation

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-logr/logr/testr"

	"github.com/g59/graphql"
	"github.com/g59/graphql/internal/log"
)

func TestNewBuilder(t *testing.T) {
	t.Parallel()

	for _, version := range []Version{Version1, Version2} {
		builder, err := NewBuilder(version, nil)
		if err != nil {
			t.Fatal(err)
		}
		if builder == nil {
			t.Fatalf("no builder for version %d", version)
		}
	}

	_, err := NewBuilder(Version(3), nil)
	if err == nil {
		t.Error("unsupported version should be a construction-time error")
	}
}

func TestBuildSubgraphSchema(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctx = log.WithLogger(ctx, testr.New(t))

	sdl := heredoc.Doc(`
		type Product @key(fields: "upc") {
			upc: String!
			name: String!
		}

		type Review @key(fields: "id") {
			id: ID!
			body: String
		}

		type Query {
			topProducts: [Product]
		}
	`)

	builder, err := NewBuilder(Version1, nil)
	if err != nil {
		t.Fatal(err)
	}

	resolvers := graphql.ResolverMap{
		"Product": {
			graphql.ResolveReferenceField: func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
				rep := source.(map[string]interface{})
				return map[string]interface{}{
					"upc":  rep["upc"],
					"name": "resolved",
				}, nil
			},
		},
	}

	es, err := builder.BuildSubgraphSchema(ctx, sdl, resolvers, nil)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("entityUnion", func(t *testing.T) {
		entity := es.Type(EntityUnionName)
		if entity == nil {
			t.Fatal("_Entity union is missing")
		}
		if got := entity.Definition.Types; !reflect.DeepEqual(got, []string{"Product", "Review"}) {
			t.Errorf("unexpected entity union members: %v", got)
		}
	})

	t.Run("queryMachineryFields", func(t *testing.T) {
		query := es.Type("Query")
		if query == nil {
			t.Fatal("Query type is missing")
		}
		if query.Field(ServiceFieldName) == nil {
			t.Error("Query._service is missing")
		}
		if query.Field(EntitiesFieldName) == nil {
			t.Error("Query._entities is missing")
		}
		if query.Field("topProducts") == nil {
			t.Error("user-declared Query field is missing")
		}
	})

	t.Run("serviceSDL", func(t *testing.T) {
		resolve := es.Type("Query").Field(ServiceFieldName).Resolve
		if resolve == nil {
			t.Fatal("_service has no resolver")
		}
		result, err := resolve(ctx, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		service := result.(map[string]interface{})
		if service["sdl"] != sdl {
			t.Errorf("unexpected _service sdl: %v", service["sdl"])
		}
	})

	t.Run("entitiesDispatch", func(t *testing.T) {
		resolve := es.Type("Query").Field(EntitiesFieldName).Resolve
		if resolve == nil {
			t.Fatal("_entities has no resolver")
		}
		result, err := resolve(ctx, nil, map[string]interface{}{
			"representations": []interface{}{
				map[string]interface{}{"__typename": "Product", "upc": "1"},
				map[string]interface{}{"__typename": "Review", "id": "r1"},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		entities := result.([]interface{})
		if len(entities) != 2 {
			t.Fatalf("unexpected entity count: %d", len(entities))
		}
		product := entities[0].(map[string]interface{})
		if product["name"] != "resolved" {
			t.Errorf("Product reference resolver should run, got %v", product)
		}
		// Review has no reference resolver; its representation passes through.
		review := entities[1].(map[string]interface{})
		if review["id"] != "r1" {
			t.Errorf("Review representation should pass through, got %v", review)
		}
	})

	t.Run("unknownRepresentationType", func(t *testing.T) {
		resolve := es.Type("Query").Field(EntitiesFieldName).Resolve
		_, err := resolve(ctx, nil, map[string]interface{}{
			"representations": []interface{}{
				map[string]interface{}{"__typename": "Ghost"},
			},
		})
		if err == nil {
			t.Error("unknown representation type should error")
		}
	})
}

func TestPrintSubgraphSchema_stripsMachinery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctx = log.WithLogger(ctx, testr.New(t))

	sdl := heredoc.Doc(`
		type Product @key(fields: "upc") {
			upc: String!
		}

		type Query {
			topProducts: [Product]
		}
	`)

	builder, err := NewBuilder(Version1, nil)
	if err != nil {
		t.Fatal(err)
	}
	es, err := builder.BuildSubgraphSchema(ctx, sdl, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	printed, err := builder.PrintSchema(es)
	if err != nil {
		t.Fatal(err)
	}

	for _, forbidden := range []string{
		"_Entity", "_Service", "_Any", "_FieldSet", "_service", "_entities",
		"directive @key", "__schema",
	} {
		if strings.Contains(printed, forbidden) {
			t.Errorf("printed SDL should not contain %q:\n%s", forbidden, printed)
		}
	}
	if !strings.Contains(printed, "@key") {
		t.Errorf("printed SDL should preserve @key usage:\n%s", printed)
	}
	if !strings.Contains(printed, "topProducts") {
		t.Errorf("printed SDL should keep user fields:\n%s", printed)
	}
}
