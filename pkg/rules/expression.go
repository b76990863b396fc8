package rules

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/metadata"
)

// ExpressionVariable is the name the checked value is bound to in expressions.
const ExpressionVariable = "value"

const (
	maxExpressionCost      = 100_000
	interruptCheckInterval = 100
)

func newExpressionEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(cel.Variable(ExpressionVariable, cel.DynType))
	if err != nil {
		return nil, fmt.Errorf("expression environment: %w", err)
	}
	return env, nil
}

func (s *set) program(expr string) (cel.Program, error) {
	return s.programs.GetOrCreate(expr, func() (cel.Program, error) {
		ast, issues := s.env.Compile(expr)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidExpression, expr, issues.Err())
		}
		prg, err := s.env.Program(ast,
			cel.EvalOptions(cel.OptOptimize),
			cel.CostLimit(maxExpressionCost),
			cel.InterruptCheckFrequency(interruptCheckInterval),
		)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidExpression, expr, err)
		}
		return prg, nil
	})
}

func (s *set) expression(value any, d metadata.Descriptor, c *constraint.Context) (bool, error) {
	expr, ok := d.Attributes[AttrExpression].(string)
	if !ok || expr == "" {
		return false, fmt.Errorf("%w: expression requires a non-empty %q", ErrInvalidAttribute, AttrExpression)
	}
	prg, err := s.program(expr)
	if err != nil {
		return false, err
	}

	out, _, err := prg.ContextEval(c.Context(), map[string]any{ExpressionVariable: celValue(value)})
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w %q: result is %T, not bool", ErrInvalidExpression, expr, out.Value())
	}
	return result, nil
}

// celValue strips named types the CEL type adapter does not know about.
func celValue(v any) any {
	switch v.(type) {
	case nil, time.Time, time.Duration:
		return v
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return v
}
