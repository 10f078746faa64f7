package scrollscene

import "time"

// Geometry is the live measurement snapshot exposed to expression-valued
// lengths. Sizes and offsets are pixels along the active axis.
type Geometry struct {
	ElementSize   float64
	ElementStart  float64
	ContainerSize float64
	Axis          Axis
}

// binding flattens the snapshot into evaluator variables. Expressions see
// `element.size`, `element.start`, `container.size`, plus the scalar
// aliases `elementSize` / `containerSize` and the axis name.
func (g Geometry) binding() map[string]any {
	return map[string]any{
		"element": map[string]any{
			"size":  g.ElementSize,
			"start": g.ElementStart,
		},
		"container": map[string]any{
			"size": g.ContainerSize,
		},
		"elementSize":   g.ElementSize,
		"containerSize": g.ContainerSize,
		"axis":          g.Axis.String(),
	}
}

// EvalContext carries the inputs available while evaluating an expression.
type EvalContext struct {
	Geometry Geometry
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx EvalContext) withDefaultNow() EvalContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx EvalContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx EvalContext) withDefaultMaps() EvalContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx EvalContext) withDefaults() EvalContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

// Evaluator executes length expressions against an evaluation context.
type Evaluator interface {
	Evaluate(ctx EvalContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledExpr, error)
}

// CompiledExpr represents a reusable expression program.
type CompiledExpr interface {
	Evaluate(ctx EvalContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}
