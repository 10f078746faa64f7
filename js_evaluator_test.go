//go:build js_eval

package scrollscene

import (
	"errors"
	"testing"
)

func TestJSEvaluatorGeometryBindings(t *testing.T) {
	if !jsEvaluatorAvailable() {
		t.Fatal("js evaluator should be available under the js_eval tag")
	}
	e := NewJSEvaluator()

	got, err := e.Evaluate(geometryContext(), "element.size * 2")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != int64(200) && got != 200.0 {
		t.Fatalf("result = %v (%T), want 200", got, got)
	}

	got, err = e.Evaluate(geometryContext(), "axis")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != "vertical" {
		t.Fatalf("axis = %v", got)
	}
}

func TestJSEvaluatorCompileAndCache(t *testing.T) {
	cache := MapProgramCache{}
	e := NewJSEvaluator(JSWithProgramCache(cache))

	compiled, err := e.Compile("containerSize - elementSize")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(cache) != 1 {
		t.Fatal("compile should populate the cache")
	}
	got, err := compiled.Evaluate(geometryContext())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != int64(900) && got != 900.0 {
		t.Fatalf("result = %v (%T), want 900", got, got)
	}
}

func TestJSEvaluatorErrors(t *testing.T) {
	e := NewJSEvaluator()
	_, err := e.Evaluate(geometryContext(), "element.size +")
	if err == nil {
		t.Fatal("malformed expression must fail")
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) || evalErr.Engine != "js" {
		t.Fatalf("error = %v", err)
	}
}

func TestJSEvaluatorCustomFunctions(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("double", func(args ...any) (any, error) {
		v, ok := args[0].(float64)
		if !ok {
			return nil, errors.New("double wants a number")
		}
		return v * 2, nil
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	e := NewJSEvaluator(JSWithFunctionRegistry(registry))
	got, err := e.Evaluate(geometryContext(), `call("double", element.size)`)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != 200.0 && got != int64(200) {
		t.Fatalf("result = %v (%T), want 200", got, got)
	}
}
