package query

import (
	"strconv"
	"strings"
)

// The String methods below render the query language accepted by Parse.

func (SubjectTerm) String() string   { return "subject" }
func (PredicateTerm) String() string { return "predicate" }
func (ObjectTerm) String() string    { return "object" }
func (IDTerm) String() string        { return "id" }
func (KindTerm) String() string      { return "kind" }

func (t AttributeTerm) String() string {
	return "attr(" + strconv.Quote(t.Name) + ")"
}

func (t ConstTerm) String() string {
	if t.unsupported != nil {
		return "<unsupported>"
	}
	return formatValue(t.Value)
}

func (t ConvertTerm) String() string {
	name := "int"
	if t.To == TypeFloat {
		name = "float"
	}
	return name + "(" + termString(t.Inner) + ")"
}

func (t RefTerm) String() string {
	return "ref(" + termString(t.Inner) + ")"
}

func formatValue(v Value) string {
	switch v.Type() {
	case TypeString:
		return strconv.Quote(v.Str())
	case TypeFloat:
		s := strconv.FormatFloat(v.Float(), 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case TypeNone:
		return "<none>"
	}
	return v.String()
}

func termString(t Term) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func exprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}

func (q *Query) String() string {
	if q == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString("select")
	if q.Projection != nil {
		sb.WriteString(" ")
		sb.WriteString(q.Projection.String())
	}
	if q.Where != nil {
		sb.WriteString(" where ")
		sb.WriteString(q.Where.String())
	}
	return sb.String()
}

// String renders the comparison in query syntax. The grammar wants a term
// on the left, so a constant there is written on the right with the
// operator mirrored.
func (c *Comparison) String() string {
	if _, ok := c.Left.(ConstTerm); ok && c.Sub == nil && c.Right != nil {
		if _, ok := c.Right.(ConstTerm); !ok {
			return termString(c.Right) + " " + c.Op.mirror().String() + " " + termString(c.Left)
		}
	}
	right := termString(c.Right)
	if c.Sub != nil {
		right = "(" + c.Sub.String() + ")"
	}
	return termString(c.Left) + " " + c.Op.String() + " " + right
}

func (e *AndExpr) String() string {
	return andOperand(e.Left) + " && " + andOperand(e.Right)
}

func andOperand(e Expr) string {
	if _, ok := e.(*OrExpr); ok {
		return "(" + e.String() + ")"
	}
	return exprString(e)
}

func (e *OrExpr) String() string {
	return exprString(e.Left) + " || " + exprString(e.Right)
}

func (e *NotExpr) String() string {
	return "!(" + exprString(e.Expr) + ")"
}
