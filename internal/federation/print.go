package federation

import (
	"bytes"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/g59/graphql"
)

// PrintSubgraphSchema prints the schema's SDL the way a federation gateway
// expects to receive it: federation directive usage is preserved, while the
// machinery a subgraph library injects (federation directive definitions,
// _Any, _FieldSet, _Entity, _Service, Query._service, Query._entities) is
// stripped again. Generally there's no need to include the federation
// primitives, but it's more difficult to exclude them at build time.
func PrintSubgraphSchema(es *graphql.ExecutableSchema, version Version) (string, error) {
	if es == nil || es.Document == nil {
		return "", fmt.Errorf("federation: schema has no source document to print")
	}

	doc := stripSubgraphPrimitives(es.Document, version)

	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(doc)
	return buf.String(), nil
}

func stripSubgraphPrimitives(document *ast.SchemaDocument, version Version) *ast.SchemaDocument {
	stripped := &ast.SchemaDocument{
		Schema:          document.Schema,
		SchemaExtension: document.SchemaExtension,
		Position:        document.Position,
	}

	// Remove directive definitions the subgraph machinery owns: the
	// version's federation set, spec-defined directives (the prelude carries
	// those), and definitions synthesized during lenient generation.
	for _, node := range document.Directives {
		if isBuiltInNode(node.Position) {
			continue
		}
		if IsFederationDirective(version, node.Name) {
			continue
		}
		if graphql.IsSpecifiedDirective(node.Name) {
			continue
		}
		if isImplicitNode(node.Position) {
			continue
		}
		stripped.Directives = append(stripped.Directives, node)
	}

	stripped.Definitions = stripDefinitionList(document.Definitions)
	stripped.Extensions = stripDefinitionList(document.Extensions)

	return stripped
}

func stripDefinitionList(defs ast.DefinitionList) ast.DefinitionList {
	result := make(ast.DefinitionList, 0, len(defs))
	for _, node := range defs {
		if node.BuiltIn || isBuiltInNode(node.Position) {
			continue
		}
		if isImplicitNode(node.Position) {
			continue
		}

		switch node.Kind {
		case ast.Object:
			if node.Name == "Query" {
				node = stripServiceFields(node)
				// If the Query type is now empty just remove it.
				if len(node.Fields) == 0 {
					continue
				}
			}
			if node.Name == ServiceTypeName {
				continue
			}

		case ast.Scalar:
			switch node.Name {
			case AnyScalarName, FieldSetScalarName, "link__Import":
				continue
			}

		case ast.Union:
			if node.Name == EntityUnionName {
				continue
			}

		case ast.Enum:
			if node.Name == "link__Purpose" {
				continue
			}
		}

		result = append(result, node)
	}
	return result
}

func stripServiceFields(node *ast.Definition) *ast.Definition {
	copied := *node
	copied.Fields = make(ast.FieldList, 0, len(node.Fields))
	for _, fieldDef := range node.Fields {
		switch fieldDef.Name {
		case ServiceFieldName, EntitiesFieldName:
			// ignore
		default:
			copied.Fields = append(copied.Fields, fieldDef)
		}
	}
	return &copied
}

func isBuiltInNode(pos *ast.Position) bool {
	return pos != nil && pos.Src != nil && pos.Src.BuiltIn
}

func isImplicitNode(pos *ast.Position) bool {
	return pos != nil && pos.Src != nil && pos.Src.Name == graphql.ImplicitSourceName
}
