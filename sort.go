package graphql

import (
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
)

// LexicographicSortSchema sorts every name-addressable list of the schema in
// place: fields, arguments, directives, union members, interface lists and
// enum values. Printed SDL becomes stable regardless of declaration order.
func LexicographicSortSchema(schema *ast.Schema) *ast.Schema {
	sortDefinition(schema.Query)
	sortDefinition(schema.Mutation)
	sortDefinition(schema.Subscription)
	for _, def := range schema.Types {
		sortDefinition(def)
	}
	for _, defs := range schema.PossibleTypes {
		sortDefinitionList(defs)
	}
	for _, defs := range schema.Implements {
		sortDefinitionList(defs)
	}

	return schema
}

func sortDefinition(def *ast.Definition) {
	if def == nil {
		return
	}

	sortDirectiveList(def.Directives)
	sort.Strings(def.Interfaces)
	sortFieldList(def.Fields)
	sort.Strings(def.Types)
	sortEnumValueList(def.EnumValues)
}

func sortDefinitionList(defs []*ast.Definition) {
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
}

func sortFieldList(fields ast.FieldList) {
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})

	for _, field := range fields {
		sortArgumentDefinitionList(field.Arguments)
		sortDirectiveList(field.Directives)
	}
}

func sortArgumentDefinitionList(argDefs ast.ArgumentDefinitionList) {
	sort.Slice(argDefs, func(i, j int) bool {
		return argDefs[i].Name < argDefs[j].Name
	})

	for _, argDef := range argDefs {
		sortDirectiveList(argDef.Directives)
	}
}

func sortDirectiveList(directives ast.DirectiveList) {
	sort.Slice(directives, func(i, j int) bool {
		return directives[i].Name < directives[j].Name
	})

	for _, directive := range directives {
		sortArgumentList(directive.Arguments)
	}
}

func sortArgumentList(args ast.ArgumentList) {
	sort.Slice(args, func(i, j int) bool {
		return args[i].Name < args[j].Name
	})
}

func sortEnumValueList(enumValues ast.EnumValueList) {
	sort.Slice(enumValues, func(i, j int) bool {
		return enumValues[i].Name < enumValues[j].Name
	})

	for _, enumValue := range enumValues {
		sortDirectiveList(enumValue.Directives)
	}
}
