package query_builder

import "fmt"

// ValueRenderer turns a raw value into the text embedded in a statement.
// Every literal written by the builder (INSERT values, UPDATE assignments and
// condition values) passes through a single ValueRenderer.
type ValueRenderer interface {
	// RenderValue returns the SQL text for v.
	RenderValue(v any) string
}

// QuoteRenderer wraps values in single quotes.
//
// Values are NOT escaped: a value containing a quote character produces
// malformed SQL, and untrusted input can inject arbitrary SQL. Only pass
// values you control.
type QuoteRenderer struct{}

// RenderValue returns 'v'.
func (QuoteRenderer) RenderValue(v any) string {
	return fmt.Sprintf("'%v'", v)
}
