package query

import (
	"fmt"
	"strings"
)

// Scalar functions the SQL backend registers with SQLite. Each returns NULL
// for NULL input and for strings that do not parse, like the Go terms.
const (
	SQLFuncInt   = "resdb_int"   // ParseInt
	SQLFuncFloat = "resdb_float" // ParseFloat
	SQLFuncRef   = "resdb_ref"   // model.RefID
)

// StatementsTable is the table the SQL backend mirrors the store into.
// pos is the insertion position and defines result order.
const StatementsTable = "statements"

// sqlBuilder compiles a validated Query into a single SQLite statement.
// Every comparison compiles to a 0/1 value, never NULL, so AND, OR and NOT
// behave exactly like the in-memory evaluator.
type sqlBuilder struct {
	args    []interface{}
	aliases int
}

func (b *sqlBuilder) alias(prefix string) string {
	a := fmt.Sprintf("%s%d", prefix, b.aliases)
	b.aliases++
	return a
}

// buildSelectSQL builds the top-level statement. Its columns are the
// statement fields followed by the projection, if any.
func buildSelectSQL(q *Query) (string, []interface{}) {
	b := &sqlBuilder{}
	alias := b.alias("s")

	proj := "NULL"
	if q.Projection != nil {
		proj = b.term(q.Projection, alias)
	}
	where := "1"
	if q.Where != nil {
		where = b.expr(q.Where, alias)
	}

	sqlStr := fmt.Sprintf(`
		SELECT %[1]s.id, %[1]s.subject, %[1]s.predicate, %[1]s.object, %[1]s.kind, %[2]s
		FROM %[3]s %[1]s
		WHERE %[4]s
		ORDER BY %[1]s.pos
	`, alias, proj, StatementsTable, where)
	return sqlStr, b.args
}

// subquerySQL builds the value list of a subquery. Missing values are
// dropped, as in newValueSet.
func (b *sqlBuilder) subquerySQL(q *Query) string {
	alias := b.alias("s")
	proj := b.term(q.Projection, alias)
	where := "1"
	if q.Where != nil {
		where = b.expr(q.Where, alias)
	}
	// The projection appears twice, so its arguments are bound twice.
	projAgain := b.term(q.Projection, alias)
	return fmt.Sprintf("SELECT %[2]s FROM %[1]s %[3]s WHERE (%[4]s) AND %[5]s IS NOT NULL",
		StatementsTable, proj, alias, where, projAgain)
}

func (b *sqlBuilder) expr(e Expr, alias string) string {
	switch x := e.(type) {
	case *Comparison:
		return b.comparison(x, alias)
	case *AndExpr:
		left := b.expr(x.Left, alias)
		right := b.expr(x.Right, alias)
		return "(" + left + " AND " + right + ")"
	case *OrExpr:
		left := b.expr(x.Left, alias)
		right := b.expr(x.Right, alias)
		return "(" + left + " OR " + right + ")"
	case *NotExpr:
		return "(NOT " + b.expr(x.Expr, alias) + ")"
	}
	return "0"
}

func (b *sqlBuilder) comparison(c *Comparison, alias string) string {
	if c.Sub != nil {
		if !comparableTypes(c.Left.Type(), c.Sub.Projection.Type()) {
			return "0"
		}
		// A NULL left side never matches, even against an empty subquery.
		left := b.term(c.Left, alias)
		leftAgain := b.term(c.Left, alias)
		in := "IN"
		if c.Op == CompareNeq {
			in = "NOT IN"
		}
		sub := b.subquerySQL(c.Sub)
		return fmt.Sprintf("(%s IS NOT NULL AND COALESCE(%s %s (%s), 0))", left, leftAgain, in, sub)
	}

	if !comparableTypes(c.Left.Type(), c.Right.Type()) {
		return "0"
	}
	left := b.term(c.Left, alias)
	right := b.term(c.Right, alias)
	return fmt.Sprintf("COALESCE(%s %s %s, 0)", left, compareOpToSQL(c.Op), right)
}

// term compiles a term evaluated against the row named alias.
func (b *sqlBuilder) term(t Term, alias string) string {
	switch x := t.(type) {
	case SubjectTerm:
		return alias + ".subject"
	case PredicateTerm:
		return alias + ".predicate"
	case ObjectTerm:
		return alias + ".object"
	case IDTerm:
		return alias + ".id"
	case KindTerm:
		return alias + ".kind"
	case AttributeTerm:
		a := b.alias("a")
		b.args = append(b.args, x.Name)
		return fmt.Sprintf(
			"(SELECT %[1]s.object FROM %[2]s %[1]s WHERE %[1]s.subject = %[3]s.subject AND %[1]s.predicate = ? ORDER BY %[1]s.pos LIMIT 1)",
			a, StatementsTable, alias)
	case ConstTerm:
		b.args = append(b.args, sqlArg(x.Value))
		return "?"
	case ConvertTerm:
		fn := SQLFuncInt
		if x.To == TypeFloat {
			fn = SQLFuncFloat
		}
		return fn + "(" + b.term(x.Inner, alias) + ")"
	case RefTerm:
		return SQLFuncRef + "(" + b.term(x.Inner, alias) + ")"
	}
	return "NULL"
}

func sqlArg(v Value) interface{} {
	switch v.Type() {
	case TypeString:
		return v.Str()
	case TypeFloat:
		return v.Float()
	case TypeInt, TypeKind:
		return v.Int()
	}
	return nil
}

func compareOpToSQL(op CompareOp) string {
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
		return "="
	}
}

// indent-insensitive form of a built statement, used in logs.
func compactSQL(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
