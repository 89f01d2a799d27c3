// Package query implements the resdb predicate algebra: terms, comparison
// expressions, subqueries, and the executors that evaluate them.
package query

// CompareOp represents a comparison operator.
type CompareOp int

const (
	CompareEq  CompareOp = iota // == (equals, or membership for subqueries)
	CompareNeq                  // != (not equals, or non-membership)
	CompareLt                   // <
	CompareGt                   // >
	CompareLte                  // <=
	CompareGte                  // >=
)

func (op CompareOp) String() string {
	switch op {
	case CompareNeq:
		return "!="
	case CompareLt:
		return "<"
	case CompareGt:
		return ">"
	case CompareLte:
		return "<="
	case CompareGte:
		return ">="
	default:
		return "=="
	}
}

func (op CompareOp) valid() bool {
	return op >= CompareEq && op <= CompareGte
}

// mirror returns the operator with its operands swapped: a < b is b > a.
func (op CompareOp) mirror() CompareOp {
	switch op {
	case CompareLt:
		return CompareGt
	case CompareGt:
		return CompareLt
	case CompareLte:
		return CompareGte
	case CompareGte:
		return CompareLte
	}
	return op
}

// ordering reports whether op orders values rather than testing equality.
func (op CompareOp) ordering() bool {
	return op != CompareEq && op != CompareNeq
}

// Query selects statements matching Where and projects each through
// Projection. A nil Projection keeps whole statements; a nil Where matches
// every statement. Used as a comparison operand, a Query is a subquery and
// must have a Projection.
type Query struct {
	Projection Term
	Where      Expr
}

// Sub builds a subquery: the values of term over the statements matching
// where.
func Sub(term Term, where Expr) *Query {
	return &Query{Projection: term, Where: where}
}

// Expr is a boolean expression over a candidate statement.
type Expr interface {
	exprNode()
	String() string
}

// Comparison compares Left against either Right or the values of Sub.
// Exactly one of Right and Sub is set.
type Comparison struct {
	Left  Term
	Op    CompareOp
	Right Term
	Sub   *Query
}

func (*Comparison) exprNode() {}

// AndExpr is true when both sides are true.
type AndExpr struct {
	Left  Expr
	Right Expr
}

func (*AndExpr) exprNode() {}

// OrExpr is true when either side is true.
type OrExpr struct {
	Left  Expr
	Right Expr
}

func (*OrExpr) exprNode() {}

// NotExpr is true when Expr is false.
type NotExpr struct {
	Expr Expr
}

func (*NotExpr) exprNode() {}

func compare(left Term, op CompareOp, right any) Expr {
	c := &Comparison{Left: left, Op: op}
	switch r := right.(type) {
	case *Query:
		c.Sub = r
	case Term:
		c.Right = r
	default:
		c.Right = Const(r)
	}
	return c
}

// Eq compares left == right. right may be a Term, a *Query (membership) or a
// Go constant accepted by Const.
func Eq(left Term, right any) Expr { return compare(left, CompareEq, right) }

// Ne compares left != right. Against a *Query it tests non-membership.
func Ne(left Term, right any) Expr { return compare(left, CompareNeq, right) }

// Lt compares left < right.
func Lt(left Term, right any) Expr { return compare(left, CompareLt, right) }

// Le compares left <= right.
func Le(left Term, right any) Expr { return compare(left, CompareLte, right) }

// Gt compares left > right.
func Gt(left Term, right any) Expr { return compare(left, CompareGt, right) }

// Ge compares left >= right.
func Ge(left Term, right any) Expr { return compare(left, CompareGte, right) }

// And combines expressions left to right: And(a, b, c) is (a && b) && c.
func And(a, b Expr, more ...Expr) Expr {
	var e Expr = &AndExpr{Left: a, Right: b}
	for _, m := range more {
		e = &AndExpr{Left: e, Right: m}
	}
	return e
}

// Or combines expressions left to right: Or(a, b, c) is (a || b) || c.
func Or(a, b Expr, more ...Expr) Expr {
	var e Expr = &OrExpr{Left: a, Right: b}
	for _, m := range more {
		e = &OrExpr{Left: e, Right: m}
	}
	return e
}

// Not negates an expression within the full statement set.
func Not(e Expr) Expr { return &NotExpr{Expr: e} }
