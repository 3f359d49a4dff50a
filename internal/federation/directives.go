package federation

import "github.com/vektah/gqlparser/v2/ast"

// Reserved names of the subgraph machinery.
const (
	ServiceTypeName    = "_Service"
	EntityUnionName    = "_Entity"
	AnyScalarName      = "_Any"
	FieldSetScalarName = "_FieldSet"
	ServiceFieldName   = "_service"
	EntitiesFieldName  = "_entities"
)

// for formatter
var blankPos = &ast.Position{
	Src: &ast.Source{
		BuiltIn: false,
	},
}

func fieldSetArgument() *ast.ArgumentDefinition {
	return &ast.ArgumentDefinition{
		Name: "fields",
		Type: &ast.Type{
			NamedType: FieldSetScalarName,
			NonNull:   true,
		},
	}
}

var keyDirective = &ast.DirectiveDefinition{
	Name: "key",
	Arguments: ast.ArgumentDefinitionList{
		fieldSetArgument(),
		&ast.ArgumentDefinition{
			Name: "resolvable",
			Type: &ast.Type{NamedType: "Boolean"},
			DefaultValue: &ast.Value{
				Raw:  "true",
				Kind: ast.BooleanValue,
			},
		},
	},
	Locations: []ast.DirectiveLocation{
		ast.LocationObject,
		ast.LocationInterface,
	},
	IsRepeatable: true,
	Position:     blankPos,
}

var extendsDirective = &ast.DirectiveDefinition{
	Name: "extends",
	Locations: []ast.DirectiveLocation{
		ast.LocationObject,
		ast.LocationInterface,
	},
	Position: blankPos,
}

var externalDirective = &ast.DirectiveDefinition{
	Name: "external",
	Locations: []ast.DirectiveLocation{
		ast.LocationObject,
		ast.LocationFieldDefinition,
	},
	Position: blankPos,
}

var requiresDirective = &ast.DirectiveDefinition{
	Name: "requires",
	Arguments: ast.ArgumentDefinitionList{
		fieldSetArgument(),
	},
	Locations: []ast.DirectiveLocation{
		ast.LocationFieldDefinition,
	},
	Position: blankPos,
}

var providesDirective = &ast.DirectiveDefinition{
	Name: "provides",
	Arguments: ast.ArgumentDefinitionList{
		fieldSetArgument(),
	},
	Locations: []ast.DirectiveLocation{
		ast.LocationFieldDefinition,
	},
	Position: blankPos,
}

var tagDirective = &ast.DirectiveDefinition{
	Name: "tag",
	Arguments: ast.ArgumentDefinitionList{
		&ast.ArgumentDefinition{
			Name: "name",
			Type: &ast.Type{
				NamedType: "String",
				NonNull:   true,
			},
		},
	},
	Locations: []ast.DirectiveLocation{
		ast.LocationFieldDefinition,
		ast.LocationObject,
		ast.LocationInterface,
		ast.LocationUnion,
		ast.LocationArgumentDefinition,
		ast.LocationScalar,
		ast.LocationEnum,
		ast.LocationEnumValue,
		ast.LocationInputObject,
		ast.LocationInputFieldDefinition,
	},
	IsRepeatable: true,
	Position:     blankPos,
}

var shareableDirective = &ast.DirectiveDefinition{
	Name: "shareable",
	Locations: []ast.DirectiveLocation{
		ast.LocationObject,
		ast.LocationFieldDefinition,
	},
	IsRepeatable: true,
	Position:     blankPos,
}

var inaccessibleDirective = &ast.DirectiveDefinition{
	Name: "inaccessible",
	Locations: []ast.DirectiveLocation{
		ast.LocationFieldDefinition,
		ast.LocationObject,
		ast.LocationInterface,
		ast.LocationUnion,
		ast.LocationArgumentDefinition,
		ast.LocationScalar,
		ast.LocationEnum,
		ast.LocationEnumValue,
		ast.LocationInputObject,
		ast.LocationInputFieldDefinition,
	},
	Position: blankPos,
}

var overrideDirective = &ast.DirectiveDefinition{
	Name: "override",
	Arguments: ast.ArgumentDefinitionList{
		&ast.ArgumentDefinition{
			Name: "from",
			Type: &ast.Type{
				NamedType: "String",
				NonNull:   true,
			},
		},
	},
	Locations: []ast.DirectiveLocation{
		ast.LocationFieldDefinition,
	},
	Position: blankPos,
}

var composeDirectiveDirective = &ast.DirectiveDefinition{
	Name: "composeDirective",
	Arguments: ast.ArgumentDefinitionList{
		&ast.ArgumentDefinition{
			Name: "name",
			Type: &ast.Type{
				NamedType: "String",
				NonNull:   true,
			},
		},
	},
	Locations: []ast.DirectiveLocation{
		ast.LocationSchema,
	},
	IsRepeatable: true,
	Position:     blankPos,
}

var interfaceObjectDirective = &ast.DirectiveDefinition{
	Name: "interfaceObject",
	Locations: []ast.DirectiveLocation{
		ast.LocationObject,
	},
	Position: blankPos,
}

var linkDirective = &ast.DirectiveDefinition{
	Name: "link",
	Arguments: ast.ArgumentDefinitionList{
		&ast.ArgumentDefinition{
			Name: "url",
			Type: &ast.Type{
				NamedType: "String",
				NonNull:   true,
			},
		},
		&ast.ArgumentDefinition{
			Name: "as",
			Type: &ast.Type{NamedType: "String"},
		},
		&ast.ArgumentDefinition{
			Name: "for",
			Type: &ast.Type{NamedType: "link__Purpose"},
		},
		&ast.ArgumentDefinition{
			Name: "import",
			Type: &ast.Type{
				Elem: &ast.Type{NamedType: "link__Import"},
			},
		},
	},
	Locations: []ast.DirectiveLocation{
		ast.LocationSchema,
	},
	IsRepeatable: true,
	Position:     blankPos,
}

// federationV1Directives is the directive set of the original federation
// specification.
var federationV1Directives = ast.DirectiveDefinitionList{
	keyDirective,
	extendsDirective,
	externalDirective,
	requiresDirective,
	providesDirective,
	tagDirective,
}

// federationV2Directives extends the v1 set with the federation 2 additions.
var federationV2Directives = append(
	append(ast.DirectiveDefinitionList{}, federationV1Directives...),
	shareableDirective,
	inaccessibleDirective,
	overrideDirective,
	composeDirectiveDirective,
	interfaceObjectDirective,
	linkDirective,
)

// DirectivesForVersion reports the federation directive definitions of the
// given spec version.
func DirectivesForVersion(version Version) ast.DirectiveDefinitionList {
	switch version {
	case Version2:
		return federationV2Directives
	default:
		return federationV1Directives
	}
}

// IsFederationDirective reports whether name belongs to the given version's
// directive set.
func IsFederationDirective(version Version, name string) bool {
	for _, def := range DirectivesForVersion(version) {
		if def.Name == name {
			return true
		}
	}
	return false
}

// linkSupportTypes are the helper types the @link directive definition
// refers to.
func linkSupportTypes() ast.DefinitionList {
	return ast.DefinitionList{
		{
			Kind:     ast.Scalar,
			Name:     "link__Import",
			Position: blankPos,
		},
		{
			Kind: ast.Enum,
			Name: "link__Purpose",
			EnumValues: ast.EnumValueList{
				{Name: "SECURITY", Position: blankPos},
				{Name: "EXECUTION", Position: blankPos},
			},
			Position: blankPos,
		},
	}
}

// machineryTypes are the type definitions every subgraph schema carries.
// The _Entity union is built separately because its membership depends on
// the schema's @key types.
func machineryTypes() ast.DefinitionList {
	return ast.DefinitionList{
		{
			Kind:     ast.Scalar,
			Name:     AnyScalarName,
			Position: blankPos,
		},
		{
			Kind:     ast.Scalar,
			Name:     FieldSetScalarName,
			Position: blankPos,
		},
		{
			Kind: ast.Object,
			Name: ServiceTypeName,
			Fields: ast.FieldList{
				&ast.FieldDefinition{
					Name:     "sdl",
					Type:     &ast.Type{NamedType: "String"},
					Position: blankPos,
				},
			},
			Position: blankPos,
		},
	}
}
