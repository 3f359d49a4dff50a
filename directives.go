package graphql

import "github.com/vektah/gqlparser/v2/ast"

// Used to conditionally include fields or fragments.
var IncludeDirective = &ast.DirectiveDefinition{
	Description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
	Name:        "include",
	Arguments: ast.ArgumentDefinitionList{
		&ast.ArgumentDefinition{
			Description: "Included when true.",
			Name:        "if",
			Type: &ast.Type{
				NamedType: "Boolean",
				NonNull:   true,
			},
		},
	},
	Locations: []ast.DirectiveLocation{
		ast.LocationField,
		ast.LocationFragmentSpread,
		ast.LocationInlineFragment,
	},
	Position: blankBuiltInPos,
}

// Used to conditionally skip (exclude) fields or fragments.
var SkipDirective = &ast.DirectiveDefinition{
	Description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
	Name:        "skip",
	Arguments: ast.ArgumentDefinitionList{
		&ast.ArgumentDefinition{
			Description: "Skipped when true.",
			Name:        "if",
			Type: &ast.Type{
				NamedType: "Boolean",
				NonNull:   true,
			},
		},
	},
	Locations: []ast.DirectiveLocation{
		ast.LocationField,
		ast.LocationFragmentSpread,
		ast.LocationInlineFragment,
	},
	Position: blankBuiltInPos,
}

// Used to declare an element of a GraphQL schema as deprecated.
var DeprecatedDirective = &ast.DirectiveDefinition{
	Description: "Marks an element of a GraphQL schema as no longer supported.",
	Name:        "deprecated",
	Arguments: ast.ArgumentDefinitionList{
		&ast.ArgumentDefinition{
			Description: "Explains why this element was deprecated.",
			Name:        "reason",
			DefaultValue: &ast.Value{
				Raw:  "No longer supported",
				Kind: ast.StringValue,
			},
			Type: &ast.Type{
				NamedType: "String",
			},
		},
	},
	Locations: []ast.DirectiveLocation{
		ast.LocationFieldDefinition,
		ast.LocationArgumentDefinition,
		ast.LocationInputFieldDefinition,
		ast.LocationEnumValue,
	},
	Position: blankBuiltInPos,
}

// Used to provide a URL for specifying the behaviour of custom scalar definitions.
var SpecifiedByDirective = &ast.DirectiveDefinition{
	Description: "Exposes a URL that specifies the behaviour of this scalar.",
	Name:        "specifiedBy",
	Arguments: ast.ArgumentDefinitionList{
		&ast.ArgumentDefinition{
			Description: "The URL that specifies the behaviour of this scalar.",
			Name:        "url",
			Type: &ast.Type{
				NamedType: "String",
				NonNull:   true,
			},
		},
	},
	Locations: []ast.DirectiveLocation{
		ast.LocationScalar,
	},
	Position: blankBuiltInPos,
}

// SpecifiedDirectives is the full list of directives defined by the GraphQL
// specification.
var SpecifiedDirectives = ast.DirectiveDefinitionList{
	IncludeDirective,
	SkipDirective,
	DeprecatedDirective,
	SpecifiedByDirective,
}

// IsSpecifiedDirective reports whether name is a specification-defined
// directive.
func IsSpecifiedDirective(name string) bool {
	for _, def := range SpecifiedDirectives {
		if def.Name == name {
			return true
		}
	}
	return false
}
