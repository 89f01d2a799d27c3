package query

import "fmt"

// ValidationError represents a query validation error.
type ValidationError struct {
	Message    string
	Suggestion string
}

func (e *ValidationError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Suggestion)
	}
	return e.Message
}

// Validate checks that a query is well formed: every node present, every
// operator known, conversions applied to strings, constants representable,
// subqueries projected and compared only for (non-)membership.
func Validate(q *Query) error {
	return validateQuery(q, false)
}

func validateQuery(q *Query, isSub bool) error {
	if q == nil {
		return &ValidationError{Message: "query is nil"}
	}
	if q.Projection == nil && isSub {
		return &ValidationError{
			Message:    "subquery has no projection",
			Suggestion: "Project the subquery through a term, e.g. (select subject where ...)",
		}
	}
	if q.Projection != nil {
		if err := validateTerm(q.Projection); err != nil {
			return err
		}
	}
	if q.Where == nil {
		return nil
	}
	return validateExpr(q.Where)
}

func validateExpr(e Expr) error {
	switch x := e.(type) {
	case nil:
		return &ValidationError{Message: "missing expression"}
	case *Comparison:
		return validateComparison(x)
	case *AndExpr:
		if x == nil {
			return &ValidationError{Message: "missing expression"}
		}
		if err := validateExpr(x.Left); err != nil {
			return err
		}
		return validateExpr(x.Right)
	case *OrExpr:
		if x == nil {
			return &ValidationError{Message: "missing expression"}
		}
		if err := validateExpr(x.Left); err != nil {
			return err
		}
		return validateExpr(x.Right)
	case *NotExpr:
		if x == nil {
			return &ValidationError{Message: "missing expression"}
		}
		return validateExpr(x.Expr)
	default:
		return &ValidationError{Message: fmt.Sprintf("unknown expression type %T", e)}
	}
}

func validateComparison(c *Comparison) error {
	if c == nil {
		return &ValidationError{Message: "missing expression"}
	}
	if c.Left == nil {
		return &ValidationError{Message: "comparison has no left-hand term"}
	}
	if err := validateTerm(c.Left); err != nil {
		return err
	}
	if !c.Op.valid() {
		return &ValidationError{Message: fmt.Sprintf("unknown comparison operator %d", int(c.Op))}
	}

	switch {
	case c.Right == nil && c.Sub == nil:
		return &ValidationError{Message: fmt.Sprintf("comparison %s %s has no right-hand side", c.Left, c.Op)}
	case c.Right != nil && c.Sub != nil:
		return &ValidationError{Message: "comparison has both a term and a subquery on the right-hand side"}
	case c.Sub != nil:
		if c.Op.ordering() {
			return &ValidationError{
				Message:    fmt.Sprintf("operator %s cannot be applied to a subquery", c.Op),
				Suggestion: "Use == to test membership or != to test non-membership",
			}
		}
		return validateQuery(c.Sub, true)
	default:
		return validateTerm(c.Right)
	}
}

func validateTerm(t Term) error {
	switch x := t.(type) {
	case nil:
		return &ValidationError{Message: "missing term"}
	case ConstTerm:
		if x.unsupported != nil {
			return &ValidationError{
				Message:    fmt.Sprintf("unsupported constant %#v (%T)", x.unsupported, x.unsupported),
				Suggestion: "Constants must be strings, integers, floats or statement kinds",
			}
		}
		if x.Value.IsNone() {
			return &ValidationError{Message: "constant has no value"}
		}
	case ConvertTerm:
		if x.To != TypeInt && x.To != TypeFloat {
			return &ValidationError{Message: fmt.Sprintf("cannot convert to %s", x.To)}
		}
		return validateStringOperand(x.Inner, x.String())
	case RefTerm:
		return validateStringOperand(x.Inner, x.String())
	}
	return nil
}

func validateStringOperand(inner Term, outer string) error {
	if inner == nil {
		return &ValidationError{Message: fmt.Sprintf("%s: missing term", outer)}
	}
	if err := validateTerm(inner); err != nil {
		return err
	}
	if inner.Type() != TypeString {
		return &ValidationError{
			Message:    fmt.Sprintf("%s: expected a string term, got %s", outer, inner.Type()),
			Suggestion: "Conversions apply to subject, predicate, object or attr(...)",
		}
	}
	return nil
}
