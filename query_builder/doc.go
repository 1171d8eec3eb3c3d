// Package query_builder builds SQLite statements as plain SQL text using a fluent API.
//
// Four statement kinds are supported:
//
//   - Select: SELECT fields FROM tables [WHERE condition]
//   - Insert: INSERT INTO table (cols) VALUES (vals)
//   - Update: UPDATE table SET col = val, ... [WHERE condition]
//   - Create: CREATE TABLE IF NOT EXISTS table (col TYPE, ...)
//
// Basic usage:
//
//	sql, err := query_builder.Select("users").
//		Field("id", "name").
//		Where().Field("age").Gte().Value(18).
//		Or().Field("name").Equals().Value("root").
//		End().
//		Build()
//
//	// SELECT id, name FROM users WHERE age >= '18' OR (name = 'root')
//
// Conditions form a chain: And and Or return the newly linked condition, so
// every further call extends the chain and nests one level of parentheses.
//
// Values are wrapped in single quotes and are NOT escaped or parameterized.
// Never pass untrusted input as a value. All literal rendering goes through
// the ValueRenderer set on the statement (QuoteRenderer by default).
//
// Builder methods never fail mid-chain. Errors are recorded on the statement
// and returned by Build; String returns the empty string in that case.
package query_builder
