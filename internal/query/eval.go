package query

import (
	"github.com/aidanlsb/resdb/internal/model"
	"github.com/aidanlsb/resdb/internal/store"
)

// evalContext is the state of one evaluation pass over the store.
type evalContext struct {
	r store.Reader
	// Subqueries do not depend on the outer candidate, so each one is
	// evaluated once per pass, before the scan.
	subs map[*Query]valueSet
}

// run evaluates a validated query against r.
func run(r store.Reader, q *Query) *Result {
	ctx := &evalContext{r: r, subs: make(map[*Query]valueSet)}
	ctx.prepare(q.Where)

	res := &Result{Projection: q.Projection}
	for i := 0; i < r.Len(); i++ {
		st := r.At(i)
		if q.Where != nil && !ctx.test(q.Where, st) {
			continue
		}
		res.Statements = append(res.Statements, st)
		if q.Projection != nil {
			res.Values = append(res.Values, q.Projection.eval(ctx, st))
		}
	}
	return res
}

// prepare evaluates every subquery that appears directly in e. Subqueries
// nested inside those are handled by their own run.
func (ctx *evalContext) prepare(e Expr) {
	switch x := e.(type) {
	case *Comparison:
		if x.Sub == nil {
			return
		}
		if _, done := ctx.subs[x.Sub]; done {
			return
		}
		ctx.subs[x.Sub] = newValueSet(run(ctx.r, x.Sub).Values)
	case *AndExpr:
		ctx.prepare(x.Left)
		ctx.prepare(x.Right)
	case *OrExpr:
		ctx.prepare(x.Left)
		ctx.prepare(x.Right)
	case *NotExpr:
		ctx.prepare(x.Expr)
	}
}

// test reports whether st satisfies e.
func (ctx *evalContext) test(e Expr, st model.Statement) bool {
	switch x := e.(type) {
	case *Comparison:
		return ctx.compare(x, st)
	case *AndExpr:
		return ctx.test(x.Left, st) && ctx.test(x.Right, st)
	case *OrExpr:
		return ctx.test(x.Left, st) || ctx.test(x.Right, st)
	case *NotExpr:
		return !ctx.test(x.Expr, st)
	}
	return false
}

func (ctx *evalContext) compare(c *Comparison, st model.Statement) bool {
	left := c.Left.eval(ctx, st)
	if c.Sub == nil {
		return applyOp(c.Op, left, c.Right.eval(ctx, st))
	}

	if left.IsNone() || !comparableTypes(c.Left.Type(), c.Sub.Projection.Type()) {
		return false
	}
	in := ctx.subs[c.Sub].contains(left)
	if c.Op == CompareNeq {
		return !in
	}
	return in
}
