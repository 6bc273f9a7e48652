package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// ValueDoc is the polymorphic expectation value. Three YAML forms map
// onto it:
//
//	return: 42                    # literal, compared for equality
//	return: {op: gt, value: 10}   # comparator
//	return: {expr: "actual > 10"} # boolean expression over `actual`
//
// A mapping whose keys are exactly op/value or expr is parsed as a
// comparator form; any other mapping is a literal map value.
type ValueDoc struct {
	Literal any    `yaml:"-" json:"-"`
	Op      string `yaml:"-" json:"-"`
	Value   any    `yaml:"-" json:"-"`
	Expr    string `yaml:"-" json:"-"`
}

// IsComparator reports whether the value carries an op or expr form
// rather than a plain literal.
func (v *ValueDoc) IsComparator() bool {
	return v.Op != "" || v.Expr != ""
}

// UnmarshalYAML implements the three-form decoding described on ValueDoc.
func (v *ValueDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var m map[string]any
		if err := node.Decode(&m); err != nil {
			return err
		}
		if form, ok := comparatorForm(m); ok {
			*v = form
			return nil
		}
	}
	var lit any
	if err := node.Decode(&lit); err != nil {
		return err
	}
	v.Literal = lit
	return nil
}

// comparatorForm recognizes {op, value}, {op} and {expr} mappings.
func comparatorForm(m map[string]any) (ValueDoc, bool) {
	if len(m) == 1 {
		if e, ok := m["expr"].(string); ok {
			return ValueDoc{Expr: e}, true
		}
		if op, ok := m["op"].(string); ok {
			return ValueDoc{Op: op}, true
		}
	}
	if len(m) == 2 {
		op, hasOp := m["op"].(string)
		val, hasVal := m["value"]
		if hasOp && hasVal {
			return ValueDoc{Op: op, Value: val}, true
		}
	}
	return ValueDoc{}, false
}

// MarshalYAML renders the value back in the form it was declared in.
func (v ValueDoc) MarshalYAML() (any, error) {
	return v.form(), nil
}

// MarshalJSON mirrors MarshalYAML so documents survive the JSON round
// trip used by schema validation.
func (v ValueDoc) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.form())
}

func (v ValueDoc) form() any {
	switch {
	case v.Expr != "":
		return map[string]any{"expr": v.Expr}
	case v.Op != "" && v.Value != nil:
		return map[string]any{"op": v.Op, "value": v.Value}
	case v.Op != "":
		return map[string]any{"op": v.Op}
	default:
		return v.Literal
	}
}

// String renders the value for diagnostics.
func (v ValueDoc) String() string {
	switch {
	case v.Expr != "":
		return fmt.Sprintf("expr(%s)", v.Expr)
	case v.Op != "":
		return fmt.Sprintf("%s %v", v.Op, v.Value)
	default:
		return fmt.Sprintf("%v", v.Literal)
	}
}

// JSONSchema describes the three accepted forms for schema export.
func (ValueDoc) JSONSchema() *jsonschema.Schema {
	comparator := &jsonschema.Schema{
		Type:     "object",
		Required: []string{"op"},
	}
	comparator.Properties = jsonschema.NewProperties()
	comparator.Properties.Set("op", &jsonschema.Schema{
		Type: "string",
		Enum: opEnum(),
	})
	comparator.Properties.Set("value", &jsonschema.Schema{})
	comparator.AdditionalProperties = jsonschema.FalseSchema

	expr := &jsonschema.Schema{
		Type:     "object",
		Required: []string{"expr"},
	}
	expr.Properties = jsonschema.NewProperties()
	expr.Properties.Set("expr", &jsonschema.Schema{Type: "string"})
	expr.AdditionalProperties = jsonschema.FalseSchema

	return &jsonschema.Schema{
		Title:       "Expectation value",
		Description: "A literal, an {op, value} comparator, or an {expr} predicate over `actual`.",
		AnyOf: []*jsonschema.Schema{
			comparator,
			expr,
			{}, // any literal
		},
	}
}

func opEnum() []any {
	ops := make([]any, len(opNames))
	for i, n := range opNames {
		ops[i] = n
	}
	return ops
}
