package graphql

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// MergeSchemaDocuments merges overlay into base and returns a new document.
// Conflicting definitions follow "overlay wins": an overlay type of a
// different kind replaces the base type wholesale, same-kind types merge
// member-wise with overlay members taking precedence. Neither input is
// modified.
func MergeSchemaDocuments(base, overlay *ast.SchemaDocument) *ast.SchemaDocument {
	merged := &ast.SchemaDocument{}

	if len(overlay.Schema) != 0 {
		merged.Schema = append(ast.SchemaDefinitionList{}, overlay.Schema...)
	} else {
		merged.Schema = append(ast.SchemaDefinitionList{}, base.Schema...)
	}
	merged.SchemaExtension = append(merged.SchemaExtension, base.SchemaExtension...)
	merged.SchemaExtension = append(merged.SchemaExtension, overlay.SchemaExtension...)

	overlayDefs := make(map[string]*ast.Definition, len(overlay.Definitions))
	for _, def := range overlay.Definitions {
		overlayDefs[def.Name] = def
	}

	seen := make(map[string]bool, len(base.Definitions))
	for _, baseDef := range base.Definitions {
		overlayDef, ok := overlayDefs[baseDef.Name]
		if !ok {
			merged.Definitions = append(merged.Definitions, baseDef)
			continue
		}
		seen[baseDef.Name] = true
		if overlayDef.Kind != baseDef.Kind {
			merged.Definitions = append(merged.Definitions, overlayDef)
			continue
		}
		merged.Definitions = append(merged.Definitions, mergeDefinition(baseDef, overlayDef))
	}
	for _, overlayDef := range overlay.Definitions {
		if !seen[overlayDef.Name] {
			merged.Definitions = append(merged.Definitions, overlayDef)
		}
	}

	merged.Extensions = append(merged.Extensions, base.Extensions...)
	merged.Extensions = append(merged.Extensions, overlay.Extensions...)

	overlayDirectives := make(map[string]bool, len(overlay.Directives))
	for _, def := range overlay.Directives {
		overlayDirectives[def.Name] = true
		merged.Directives = append(merged.Directives, def)
	}
	for _, def := range base.Directives {
		if !overlayDirectives[def.Name] {
			merged.Directives = append(merged.Directives, def)
		}
	}

	merged.Position = base.Position

	return merged
}

func mergeDefinition(base, overlay *ast.Definition) *ast.Definition {
	mergedDef := *base
	if overlay.Description != "" {
		mergedDef.Description = overlay.Description
	}

	mergedDef.Directives = append(ast.DirectiveList{}, base.Directives...)
	for _, directive := range overlay.Directives {
		if len(base.Directives.ForNames(directive.Name)) == 0 {
			mergedDef.Directives = append(mergedDef.Directives, directive)
		}
	}

	mergedDef.Interfaces = unionStrings(base.Interfaces, overlay.Interfaces)
	mergedDef.Types = unionStrings(base.Types, overlay.Types)

	mergedDef.Fields = mergeFieldList(base.Fields, overlay.Fields)
	mergedDef.EnumValues = mergeEnumValueList(base.EnumValues, overlay.EnumValues)

	return &mergedDef
}

func mergeFieldList(base, overlay ast.FieldList) ast.FieldList {
	if len(overlay) == 0 {
		return base
	}

	merged := make(ast.FieldList, 0, len(base)+len(overlay))
	overlayFields := make(map[string]*ast.FieldDefinition, len(overlay))
	for _, field := range overlay {
		overlayFields[field.Name] = field
	}
	for _, field := range base {
		if overlayField, ok := overlayFields[field.Name]; ok {
			merged = append(merged, overlayField)
			delete(overlayFields, field.Name)
			continue
		}
		merged = append(merged, field)
	}
	for _, field := range overlay {
		if _, ok := overlayFields[field.Name]; ok {
			merged = append(merged, field)
		}
	}
	return merged
}

func mergeEnumValueList(base, overlay ast.EnumValueList) ast.EnumValueList {
	if len(overlay) == 0 {
		return base
	}

	merged := make(ast.EnumValueList, 0, len(base)+len(overlay))
	overlayValues := make(map[string]*ast.EnumValueDefinition, len(overlay))
	for _, value := range overlay {
		overlayValues[value.Name] = value
	}
	for _, value := range base {
		if overlayValue, ok := overlayValues[value.Name]; ok {
			merged = append(merged, overlayValue)
			delete(overlayValues, value.Name)
			continue
		}
		merged = append(merged, value)
	}
	for _, value := range overlay {
		if _, ok := overlayValues[value.Name]; ok {
			merged = append(merged, value)
		}
	}
	return merged
}

func unionStrings(base, overlay []string) []string {
	if len(overlay) == 0 {
		return base
	}
	merged := append([]string{}, base...)
	for _, s := range overlay {
		var found bool
		for _, existing := range merged {
			if existing == s {
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, s)
		}
	}
	return merged
}
