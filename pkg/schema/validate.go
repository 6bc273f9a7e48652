package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidationError represents a single validation error with location context.
type ValidationError struct {
	Phase    string `json:"phase"` // structural, semantic, domain
	Path     string `json:"path"`  // JSON-path-like location (e.g., "scenarios[0].expect.return")
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Path, e.Message)
}

// ValidateFile performs the full 3-phase validation pipeline on a
// scenario file.
// Phase 1: Structural (strict YAML decode)
// Phase 2: Semantic (JSON Schema validation)
// Phase 3: Domain (custom Go rules)
func ValidateFile(path string) (*Document, []*ValidationError) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, []*ValidationError{{
			Phase:    "structural",
			Message:  err.Error(),
			Severity: "error",
		}}
	}
	return doc, Validate(doc)
}

// Validate runs the semantic and domain phases on an already-parsed
// document. An empty result means valid.
func Validate(doc *Document) []*ValidationError {
	var all []*ValidationError
	all = append(all, validateSemantic(doc)...)
	all = append(all, ValidateDomain(doc)...)
	return all
}

// validateSemantic validates the document against the JSON Schema.
func validateSemantic(doc *Document) []*ValidationError {
	data, err := json.Marshal(doc)
	if err != nil {
		return semanticFailure("marshal for schema validation: %v", err)
	}

	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return semanticFailure("generate schema: %v", err)
	}

	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return semanticFailure("unmarshal schema: %v", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("scenarios-v0.json", schemaDoc); err != nil {
		return semanticFailure("add schema resource: %v", err)
	}
	sch, err := c.Compile("scenarios-v0.json")
	if err != nil {
		return semanticFailure("compile schema: %v", err)
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return semanticFailure("unmarshal document: %v", err)
	}

	if err := sch.Validate(instance); err != nil {
		var errs []*ValidationError
		if ve, ok := err.(*sjsonschema.ValidationError); ok {
			for _, cause := range flattenValidationErrors(ve) {
				errs = append(errs, &ValidationError{
					Phase:    "semantic",
					Path:     strings.Join(cause.InstanceLocation, "/"),
					Message:  fmt.Sprintf("%v", cause.ErrorKind),
					Severity: "error",
				})
			}
		} else {
			errs = semanticFailure("%v", err)
		}
		return errs
	}
	return nil
}

func semanticFailure(format string, args ...any) []*ValidationError {
	return []*ValidationError{{
		Phase:    "semantic",
		Message:  fmt.Sprintf(format, args...),
		Severity: "error",
	}}
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}

// ValidateDomain performs Phase 3 domain-level validation.
// Returns a slice of errors; empty means valid.
func ValidateDomain(doc *Document) []*ValidationError {
	var errs []*ValidationError

	if doc.Name == "" {
		errs = append(errs, &ValidationError{
			Phase:    "domain",
			Path:     "name",
			Message:  "document requires a name",
			Severity: "error",
		})
	}
	if len(doc.Scenarios) == 0 {
		errs = append(errs, &ValidationError{
			Phase:    "domain",
			Path:     "scenarios",
			Message:  "document must contain at least one scenario",
			Severity: "error",
		})
	}

	// Scenario name uniqueness
	seen := make(map[string]int)
	for i, sc := range doc.Scenarios {
		if prev, ok := seen[sc.Name]; ok {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     fmt.Sprintf("scenarios[%d].name", i),
				Message:  fmt.Sprintf("duplicate scenario name %q (first at scenarios[%d])", sc.Name, prev),
				Severity: "error",
			})
		}
		seen[sc.Name] = i
	}

	for i, sc := range doc.Scenarios {
		path := fmt.Sprintf("scenarios[%d]", i)

		if sc.Name == "" {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path + ".name",
				Message:  "scenario requires a name",
				Severity: "error",
			})
		}

		// Target and method must come from the scenario or the suite.
		if effectiveField(doc.Suite, sc.Call, func(c *CallDoc) string { return c.Target }) == "" {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path + ".call.target",
				Message:  fmt.Sprintf("scenario %q declares no target and the document has no suite target", sc.Name),
				Severity: "error",
			})
		}
		if effectiveField(doc.Suite, sc.Call, func(c *CallDoc) string { return c.Method }) == "" {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path + ".call.method",
				Message:  fmt.Sprintf("scenario %q declares no method and the document has no suite method", sc.Name),
				Severity: "error",
			})
		}
		if sc.Call != nil && len(sc.Call.Construct) > 0 && len(sc.Call.Fields) > 0 {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path + ".call",
				Message:  fmt.Sprintf("scenario %q sets both construct and fields; constructor arguments and field assignment are mutually exclusive", sc.Name),
				Severity: "error",
			})
		}

		if sc.Expect.Empty() {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path + ".expect",
				Message:  fmt.Sprintf("scenario %q declares no expectations", sc.Name),
				Severity: "error",
			})
		}
		if sc.Expect.Lives && (sc.Expect.Dies || sc.Expect.Throws != "") {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path + ".expect.lives",
				Message:  fmt.Sprintf("scenario %q sets lives together with dies/throws; lives takes precedence and the others are ignored", sc.Name),
				Severity: "warning",
			})
		}

		errs = append(errs, validateValue(sc.Expect.Return, path+".expect.return")...)
		errs = append(errs, validateValue(sc.Expect.Stdout, path+".expect.stdout")...)
		errs = append(errs, validateValue(sc.Expect.Stderr, path+".expect.stderr")...)
		errs = append(errs, validateValue(sc.Expect.Mutates, path+".expect.mutates")...)
	}

	return errs
}

// validateValue checks a comparator form: known op, op-specific value
// constraints and expression compilability.
func validateValue(vd *ValueDoc, path string) []*ValidationError {
	if vd == nil || !vd.IsComparator() {
		return nil
	}
	var errs []*ValidationError

	if vd.Expr != "" {
		env := expr.Env(map[string]any{"actual": nil})
		if _, err := expr.Compile(vd.Expr, env, expr.AsBool()); err != nil {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path,
				Message:  fmt.Sprintf("expression does not compile: %v", err),
				Severity: "error",
			})
		}
		return errs
	}

	if !slices.Contains(opNames, vd.Op) {
		errs = append(errs, &ValidationError{
			Phase:    "domain",
			Path:     path,
			Message:  fmt.Sprintf("unknown op %q (known: %s)", vd.Op, strings.Join(opNames, ", ")),
			Severity: "error",
		})
		return errs
	}

	switch vd.Op {
	case "matches":
		if pattern, ok := vd.Value.(string); ok {
			if _, err := regexp.Compile(pattern); err != nil {
				errs = append(errs, &ValidationError{
					Phase:    "domain",
					Path:     path,
					Message:  fmt.Sprintf("invalid regex %q: %v", pattern, err),
					Severity: "error",
				})
			}
		} else {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path,
				Message:  fmt.Sprintf("op %q requires a string value, got %T", vd.Op, vd.Value),
				Severity: "error",
			})
		}
	case "contains", "has_prefix", "has_suffix":
		if _, ok := vd.Value.(string); !ok {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path,
				Message:  fmt.Sprintf("op %q requires a string value, got %T", vd.Op, vd.Value),
				Severity: "error",
			})
		}
	case "len":
		if _, ok := vd.Value.(int); !ok {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path,
				Message:  fmt.Sprintf("op %q requires an integer value, got %T", vd.Op, vd.Value),
				Severity: "error",
			})
		}
	case "is_nil":
		if vd.Value != nil {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path,
				Message:  fmt.Sprintf("op %q takes no value", vd.Op),
				Severity: "warning",
			})
		}
	default:
		if vd.Value == nil {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path,
				Message:  fmt.Sprintf("op %q requires a value", vd.Op),
				Severity: "error",
			})
		}
	}
	return errs
}

// effectiveField returns the scenario's call field, falling back to the
// suite block.
func effectiveField(suite, call *CallDoc, get func(*CallDoc) string) string {
	if call != nil {
		if v := get(call); v != "" {
			return v
		}
	}
	if suite != nil {
		return get(suite)
	}
	return ""
}
