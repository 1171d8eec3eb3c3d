package query_builder

import (
	"fmt"
	"strings"
)

// Fields accumulates the field declarations of one statement kind.
//
// The concrete type is fixed by the statement kind: *SelectFields,
// *InsertFields, *UpdateFields or *CreateFields.
type Fields interface {
	// Len returns the number of declared fields.
	Len() int
	// Names returns the field names in declaration order.
	Names() []string

	set(args []any) error
	render(r ValueRenderer) string
}

// newFields returns the container used by kind.
func newFields(kind Kind) Fields {
	switch kind {
	case KindInsert:
		return &InsertFields{}
	case KindUpdate:
		return &UpdateFields{}
	case KindCreate:
		return &CreateFields{}
	default:
		return &SelectFields{}
	}
}

// SelectFields is the ordered projection list of a SELECT statement.
// Duplicate names are kept.
type SelectFields struct {
	names []string
}

// Add appends names to the projection list.
func (f *SelectFields) Add(names ...string) *SelectFields {
	f.names = append(f.names, names...)
	return f
}

// Len returns the number of projected fields.
func (f *SelectFields) Len() int { return len(f.names) }

// Names returns the projected fields in order.
func (f *SelectFields) Names() []string { return append([]string(nil), f.names...) }

func (f *SelectFields) set(args []any) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no field name specified", ErrArgument)
	}
	for _, arg := range args {
		f.names = append(f.names, fmt.Sprint(arg))
	}
	return nil
}

// render returns the comma separated names, or * when none were added.
func (f *SelectFields) render(ValueRenderer) string {
	if len(f.names) == 0 {
		return "*"
	}
	return strings.Join(f.names, ", ")
}

// orderedMap keeps keys in first-seen order. Overwriting a key keeps its position.
type orderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func (m *orderedMap[V]) put(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *orderedMap[V]) get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *orderedMap[V]) len() int { return len(m.keys) }

func (m *orderedMap[V]) names() []string { return append([]string(nil), m.keys...) }

// keyValueArgs validates the (name, value) form used by INSERT and UPDATE. A nil value is rejected.
func keyValueArgs(args []any) (string, any, error) {
	switch len(args) {
	case 0:
		return "", nil, fmt.Errorf("%w: no field name specified", ErrArgument)
	case 1:
		return "", nil, fmt.Errorf("%w: field %v requires a value", ErrArgument, args[0])
	case 2:
	default:
		return "", nil, fmt.Errorf("%w: expected (name, value), got %d arguments", ErrArgument, len(args))
	}
	name, ok := args[0].(string)
	if !ok {
		return "", nil, fmt.Errorf("%w: field name must be a string, got %T", ErrArgument, args[0])
	}
	if args[1] == nil {
		return "", nil, fmt.Errorf("%w: field %s requires a value", ErrArgument, name)
	}
	return name, args[1], nil
}

// InsertFields maps column names to the values of an INSERT statement.
type InsertFields struct {
	values orderedMap[any]
}

// Set stores value for name, replacing any earlier value.
func (f *InsertFields) Set(name string, value any) *InsertFields {
	f.values.put(name, value)
	return f
}

// Value returns the value stored for name.
func (f *InsertFields) Value(name string) (any, bool) { return f.values.get(name) }

// Len returns the number of columns.
func (f *InsertFields) Len() int { return f.values.len() }

// Names returns the columns in insertion order.
func (f *InsertFields) Names() []string { return f.values.names() }

func (f *InsertFields) set(args []any) error {
	name, value, err := keyValueArgs(args)
	if err != nil {
		return err
	}
	f.Set(name, value)
	return nil
}

// render returns (cols) VALUES (vals) with both lists in the same order.
func (f *InsertFields) render(r ValueRenderer) string {
	values := make([]string, 0, len(f.values.keys))
	for _, k := range f.values.keys {
		values = append(values, r.RenderValue(f.values.values[k]))
	}
	return "(" + strings.Join(f.values.keys, ", ") + ") VALUES (" + strings.Join(values, ", ") + ")"
}

// UpdateFields maps column names to the assignments of an UPDATE statement.
type UpdateFields struct {
	values orderedMap[any]
}

// Set stores the assignment name = value, replacing any earlier one.
func (f *UpdateFields) Set(name string, value any) *UpdateFields {
	f.values.put(name, value)
	return f
}

// Value returns the value assigned to name.
func (f *UpdateFields) Value(name string) (any, bool) { return f.values.get(name) }

// Len returns the number of assignments.
func (f *UpdateFields) Len() int { return f.values.len() }

// Names returns the assigned columns in insertion order.
func (f *UpdateFields) Names() []string { return f.values.names() }

func (f *UpdateFields) set(args []any) error {
	name, value, err := keyValueArgs(args)
	if err != nil {
		return err
	}
	f.Set(name, value)
	return nil
}

func (f *UpdateFields) render(r ValueRenderer) string {
	parts := make([]string, 0, len(f.values.keys))
	for _, k := range f.values.keys {
		parts = append(parts, k+" = "+r.RenderValue(f.values.values[k]))
	}
	return strings.Join(parts, ", ")
}

// ColumnType is the declared type of a CREATE TABLE column.
type ColumnType string

// Recognized column types. PrimaryKey renders as INTEGER PRIMARY KEY.
const (
	Text       ColumnType = "TEXT"
	Integer    ColumnType = "INTEGER"
	Blob       ColumnType = "BLOB"
	Real       ColumnType = "REAL"
	PrimaryKey ColumnType = "PRIMARY"
)

// String returns the column definition text for t.
func (t ColumnType) String() string {
	if t == PrimaryKey {
		return "INTEGER PRIMARY KEY"
	}
	return string(t)
}

// parseColumnType maps v to a recognized type, falling back to Text.
// Matching is case sensitive.
func parseColumnType(v any) ColumnType {
	var t ColumnType
	switch v := v.(type) {
	case ColumnType:
		t = v
	case string:
		t = ColumnType(v)
	default:
		return Text
	}
	switch t {
	case Text, Integer, Blob, Real, PrimaryKey:
		return t
	}
	return Text
}

// CreateFields maps column names to their types for CREATE TABLE.
type CreateFields struct {
	types orderedMap[ColumnType]
}

// Field declares column name. Only the first type is used; without one, or
// with an unrecognized one, the column is TEXT.
func (f *CreateFields) Field(name string, typ ...ColumnType) *CreateFields {
	var v any
	if len(typ) > 0 {
		v = typ[0]
	}
	f.types.put(name, parseColumnType(v))
	return f
}

// PrimaryKey declares name as an INTEGER PRIMARY KEY column.
func (f *CreateFields) PrimaryKey(name string) *CreateFields {
	return f.Field(name, PrimaryKey)
}

// Type returns the declared type of name.
func (f *CreateFields) Type(name string) (ColumnType, bool) { return f.types.get(name) }

// Len returns the number of columns.
func (f *CreateFields) Len() int { return f.types.len() }

// Names returns the columns in declaration order.
func (f *CreateFields) Names() []string { return f.types.names() }

func (f *CreateFields) set(args []any) error {
	switch len(args) {
	case 0:
		return fmt.Errorf("%w: no field name specified", ErrArgument)
	case 1, 2:
	default:
		return fmt.Errorf("%w: expected (name, type), got %d arguments", ErrArgument, len(args))
	}
	name, ok := args[0].(string)
	if !ok {
		return fmt.Errorf("%w: field name must be a string, got %T", ErrArgument, args[0])
	}
	var typ any
	if len(args) == 2 {
		typ = args[1]
	}
	f.types.put(name, parseColumnType(typ))
	return nil
}

func (f *CreateFields) render(ValueRenderer) string {
	parts := make([]string, 0, len(f.types.keys))
	for _, k := range f.types.keys {
		parts = append(parts, k+" "+f.types.values[k].String())
	}
	return strings.Join(parts, ", ")
}
