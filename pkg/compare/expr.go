package compare

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

const exprName = "expr"

// FromExpr compiles an expr-lang expression into a comparator. The actual
// value is bound to the variable `actual`, and the expression must produce
// a boolean. Example: FromExpr(`actual > 10`).
func FromExpr(source string) (*Comparator, error) {
	program, err := expr.Compile(source,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", source, err)
	}
	return New(exprName, exprPredicate(program), source), nil
}

func exprPredicate(program *vm.Program) Predicate {
	return func(actual, _ any) bool {
		out, err := expr.Run(program, map[string]any{"actual": actual})
		if err != nil {
			return false
		}
		b, ok := out.(bool)
		return ok && b
	}
}
