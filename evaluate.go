package scrollscene

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoEvaluator is returned when an expression-valued length is used and no
// evaluator is configured or derivable.
var ErrNoEvaluator = errors.New("scrollscene: evaluator not configured")

// Evaluate executes expr against the scene's current geometry using the
// configured evaluator. Exposed for hosts that want to probe expressions
// outside of length resolution.
func (s *Scene) Evaluate(expr string) (any, error) {
	if expr == "" {
		return nil, fmt.Errorf("scrollscene: expression must not be empty")
	}
	evaluator, err := s.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	ctx := EvalContext{Geometry: s.geometry()}.withDefaults()
	return s.loggedEvaluate(evaluator, ctx, expr, "")
}

// resolveExpr implements exprResolver: it evaluates a length expression and
// coerces the result to pixels.
func (s *Scene) resolveExpr(expression string, elementSize float64) (float64, error) {
	evaluator, err := s.resolveEvaluator()
	if err != nil {
		return 0, err
	}
	geom := s.geometry()
	geom.ElementSize = elementSize
	ctx := EvalContext{Geometry: geom}.withDefaults()
	value, err := s.loggedEvaluate(evaluator, ctx, expression, "length")
	if err != nil {
		return 0, err
	}
	return toFloat(expression, value)
}

func (s *Scene) loggedEvaluate(evaluator Evaluator, ctx EvalContext, expr, field string) (any, error) {
	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, expr, evalErr)
	s.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Field:    field,
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

func (s *Scene) resolveEvaluator() (Evaluator, error) {
	if s.evaluator != nil {
		return s.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if s.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(s.programCache))
	}
	if s.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(s.functions))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	s.evaluator = defaultEvaluator
	return defaultEvaluator, nil
}

func (s *Scene) evaluatorLogger() EvaluatorLogger {
	if s.logger != nil {
		return s.logger
	}
	return noopEvaluatorLogger{}
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*scrollscene.exprEvaluator":
		return "expr"
	case "*scrollscene.celEvaluator":
		return "cel"
	case "*scrollscene.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}

func toFloat(expression string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, wrapEvaluationError("", expression,
			fmt.Errorf("expression produced %T, want a number", value))
	}
}
