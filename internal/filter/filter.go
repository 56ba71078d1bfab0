package filter

import (
	"log/slog"

	"github.com/google/cel-go/cel"

	"forgescope/internal/catalog"
)

// Filter is a compiled CEL predicate over building records. The expression
// must return a boolean value.
type Filter struct {
	expr    string
	program cel.Program
}

// Compile parses, type-checks, and compiles the expression against the given
// environment. Syntax or semantic errors are returned to the caller; a
// compiled filter never errors at match time.
func Compile(env *cel.Env, expr string) (*Filter, error) {
	ast, iss := env.Parse(expr)
	if iss.Err() != nil {
		return nil, iss.Err()
	}

	checked, iss := env.Check(ast)
	if iss.Err() != nil {
		return nil, iss.Err()
	}

	program, err := env.Program(checked)
	if err != nil {
		return nil, err
	}

	return &Filter{expr: expr, program: program}, nil
}

// Expr returns the source expression.
func (f *Filter) Expr() string {
	return f.expr
}

// Match evaluates the filter against one building. Evaluation errors are
// logged and treated as a non-match so one bad record never interrupts a
// listing pass.
func (f *Filter) Match(b *catalog.Building) bool {
	result, _, err := f.program.Eval(map[string]any{
		"id":        b.ID,
		"name":      b.Name,
		"era":       b.Era,
		"event":     b.Event,
		"size":      b.Size(),
		"footprint": b.Footprint(),
		"road":      b.NeedsRoad,
		"limited":   b.Limited,
		"attrs":     map[string]float64(b.Attributes),
	})
	if err != nil {
		slog.Warn("filter eval", "error", err, "expr", f.expr, "building", b.ID)
		return false
	}
	matched, ok := result.Value().(bool)
	return ok && matched
}

// Apply returns the buildings matching the filter, preserving input order.
func (f *Filter) Apply(buildings []catalog.Building) []catalog.Building {
	out := make([]catalog.Building, 0, len(buildings))
	for i := range buildings {
		if f.Match(&buildings[i]) {
			out = append(out, buildings[i])
		}
	}
	return out
}
