package graphql

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	gql "github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// DateTimeTypeName is the scalar the override engine gives special treatment:
// its coercion behavior always comes from the code-first schema.
const DateTimeTypeName = "DateTime"

// DateTimeScalar implements an RFC 3339 DateTime scalar.
func DateTimeScalar() *ScalarImpl {
	return &ScalarImpl{
		Serialize: func(v interface{}) (interface{}, error) {
			t, ok := v.(time.Time)
			if !ok {
				return nil, fmt.Errorf("graphql: DateTime cannot serialize %T", v)
			}
			if t.IsZero() {
				return nil, nil
			}
			var buf bytes.Buffer
			gql.MarshalTime(t).MarshalGQL(&buf)
			return strconv.Unquote(buf.String())
		},
		ParseValue: func(v interface{}) (interface{}, error) {
			return gql.UnmarshalTime(v)
		},
		ParseLiteral: func(v *ast.Value) (interface{}, error) {
			if v.Kind != ast.StringValue && v.Kind != ast.BlockValue {
				return nil, gqlerror.Errorf("DateTime cannot represent non-string literal %s", v.String())
			}
			return gql.UnmarshalTime(v.Raw)
		},
	}
}

var blankBuiltInPos = &ast.Position{
	Src: &ast.Source{
		BuiltIn: true,
	},
}

var scalarInt = &ast.Definition{
	Kind:     ast.Scalar,
	Name:     "Int",
	Position: blankBuiltInPos,
	BuiltIn:  true,
}

var scalarFloat = &ast.Definition{
	Kind:     ast.Scalar,
	Name:     "Float",
	Position: blankBuiltInPos,
	BuiltIn:  true,
}

var scalarString = &ast.Definition{
	Kind:     ast.Scalar,
	Name:     "String",
	Position: blankBuiltInPos,
	BuiltIn:  true,
}

var scalarBoolean = &ast.Definition{
	Kind:     ast.Scalar,
	Name:     "Boolean",
	Position: blankBuiltInPos,
	BuiltIn:  true,
}

var scalarID = &ast.Definition{
	Kind:     ast.Scalar,
	Name:     "ID",
	Position: blankBuiltInPos,
	BuiltIn:  true,
}

// SpecifiedScalarTypes are the five scalars every schema carries implicitly.
var SpecifiedScalarTypes = ast.DefinitionList{
	scalarString,
	scalarInt,
	scalarFloat,
	scalarBoolean,
	scalarID,
}

// IsSpecifiedScalarType reports whether typeName names a built-in scalar.
func IsSpecifiedScalarType(typeName string) bool {
	for _, def := range SpecifiedScalarTypes {
		if def.Name == typeName {
			return true
		}
	}
	return false
}
