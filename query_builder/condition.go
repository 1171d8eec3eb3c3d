package query_builder

import "fmt"

// maxConditionDepth bounds the length of an And/Or chain so a runaway loop
// cannot recurse without limit.
const maxConditionDepth = 10000

// Operator is a comparison operator of a Condition.
type Operator string

// Supported comparison operators.
const (
	OpEQ  Operator = "="
	OpGT  Operator = ">"
	OpLT  Operator = "<"
	OpLTE Operator = "<="
	OpGTE Operator = ">="
)

// Connective joins a Condition to the next one in its chain.
type Connective string

// Supported connectives.
const (
	And Connective = "AND"
	Or  Connective = "OR"
)

// operand is either a bare identifier or a literal value.
type operand struct {
	name    string
	value   any
	literal bool
}

func (o operand) render(r ValueRenderer) string {
	if o.literal {
		return r.RenderValue(o.value)
	}
	return o.name
}

// Condition is one comparison of a WHERE clause plus an optional link to the
// next comparison.
//
// Operands are filled left then right by Field and Value. And and Or return
// the NEW node, not the receiver: calls after them extend the new node, and
// each further And/Or nests one level deeper when rendered:
//
//	where.Field("a").Equals().Field("b").
//		Or().Field("c").Equals().Field("d").
//		And().Field("e").Lte().Value("f")
//
// renders as
//
//	a = b OR (c = d AND (e <= 'f'))
type Condition struct {
	stmt       *Statement
	operands   [2]operand
	count      int        // Number of operands set
	op         Operator   // Comparison operator, empty until set
	connective Connective // How next is joined to this node
	next       *Condition
	err        error // First error recorded while building this node
}

func newCondition(stmt *Statement) *Condition {
	return &Condition{stmt: stmt}
}

// Field sets the next operand to the identifier name.
func (c *Condition) Field(name string) *Condition {
	return c.addOperand(operand{name: name})
}

// Value sets the next operand to the quoted literal v. A nil v records ErrArgument.
func (c *Condition) Value(v any) *Condition {
	if v == nil {
		if c.err == nil {
			c.err = fmt.Errorf("%w: condition value is nil", ErrArgument)
		}
		return c
	}
	return c.addOperand(operand{value: v, literal: true})
}

// addOperand fills the left slot, then the right one. A third operand is
// recorded as ErrTooManyOperands and dropped.
func (c *Condition) addOperand(o operand) *Condition {
	if c.count >= len(c.operands) {
		if c.err == nil {
			c.err = fmt.Errorf("%w: %s already has two operands", ErrTooManyOperands, c.clause())
		}
		return c
	}
	c.operands[c.count] = o
	c.count++
	return c
}

// Equals sets the operator to =.
func (c *Condition) Equals() *Condition { return c.setOperator(OpEQ) }

// Gt sets the operator to >.
func (c *Condition) Gt() *Condition { return c.setOperator(OpGT) }

// Lt sets the operator to <.
func (c *Condition) Lt() *Condition { return c.setOperator(OpLT) }

// Lte sets the operator to <=.
func (c *Condition) Lte() *Condition { return c.setOperator(OpLTE) }

// Gte sets the operator to >=.
func (c *Condition) Gte() *Condition { return c.setOperator(OpGTE) }

func (c *Condition) setOperator(op Operator) *Condition {
	c.op = op
	return c
}

// And links a new condition with AND and returns it.
func (c *Condition) And() *Condition { return c.extend(And) }

// Or links a new condition with OR and returns it.
func (c *Condition) Or() *Condition { return c.extend(Or) }

// extend replaces any existing next node.
func (c *Condition) extend(conn Connective) *Condition {
	c.connective = conn
	c.next = newCondition(c.stmt)
	return c.next
}

// End returns the statement the condition belongs to.
func (c *Condition) End() *Statement {
	return c.stmt
}

// Next returns the linked condition and its connective, if any.
func (c *Condition) Next() (*Condition, Connective) {
	return c.next, c.connective
}

// Build renders the condition chain.
//
// A node with neither operands nor operator renders as its next node with no
// connective or parentheses, so Where().Or().Field("a").Equals().Field("b")
// renders as "a = b". A trailing And/Or that was never filled is omitted.
func (c *Condition) Build() (string, error) {
	return c.build(c.renderer(), 0)
}

// String renders the condition, returning the empty string if Build fails.
func (c *Condition) String() string {
	s, err := c.Build()
	if err != nil {
		return ""
	}
	return s
}

func (c *Condition) renderer() ValueRenderer {
	if c.stmt != nil && c.stmt.renderer != nil {
		return c.stmt.renderer
	}
	return QuoteRenderer{}
}

func (c *Condition) build(r ValueRenderer, depth int) (string, error) {
	if depth > maxConditionDepth {
		return "", ErrConditionDepth
	}
	if c.err != nil {
		return "", c.err
	}
	if c.op == "" {
		if c.count > 0 {
			return "", fmt.Errorf("%w: %s has no operator", ErrIncompleteCondition, c.clause())
		}
		if c.next == nil {
			return "", nil
		}
		return c.next.build(r, depth+1)
	}
	if c.count < len(c.operands) {
		return "", fmt.Errorf("%w: %s is missing an operand", ErrIncompleteCondition, c.clause())
	}

	s := c.operands[0].render(r) + " " + string(c.op) + " " + c.operands[1].render(r)
	if c.next != nil {
		sub, err := c.next.build(r, depth+1)
		if err != nil {
			return "", err
		}
		if sub != "" {
			s += " " + string(c.connective) + " (" + sub + ")"
		}
	}
	return s, nil
}

// clause describes the partially built node for error messages.
func (c *Condition) clause() string {
	left, right, op := "?", "?", "?"
	if c.count > 0 {
		left = c.operands[0].render(QuoteRenderer{})
	}
	if c.count > 1 {
		right = c.operands[1].render(QuoteRenderer{})
	}
	if c.op != "" {
		op = string(c.op)
	}
	return fmt.Sprintf("%q", left+" "+op+" "+right)
}
