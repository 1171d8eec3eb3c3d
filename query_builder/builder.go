package query_builder

import (
	"fmt"
	"strings"
)

// Kind is the type of SQL statement a Statement renders.
type Kind int

// Statement kinds.
const (
	KindSelect Kind = iota
	KindInsert
	KindUpdate
	KindCreate
)

// String returns the SQL keyword of k.
func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "SELECT"
	case KindInsert:
		return "INSERT"
	case KindUpdate:
		return "UPDATE"
	case KindCreate:
		return "CREATE"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Statement builds a SELECT, INSERT, UPDATE or CREATE TABLE statement.
//
// A Statement is configured through chainable methods and rendered with
// Build. Invalid calls do not interrupt the chain: the error is recorded and
// returned by Build.
type Statement struct {
	kind     Kind          // Fixed at construction
	tables   []string      // Table names; only the first is used except by SELECT
	fields   Fields        // Container chosen by kind
	where    *Condition    // Root WHERE condition, nil until Where is called
	renderer ValueRenderer // Renders literal values
	errors   []error       // Collection of errors encountered during building
}

func newStatement(kind Kind, tables []string) *Statement {
	return &Statement{
		kind:     kind,
		tables:   append([]string(nil), tables...),
		fields:   newFields(kind),
		renderer: QuoteRenderer{},
	}
}

// Select returns a SELECT statement over tables. Tables may also be added later with Tables.
func Select(tables ...string) *Statement {
	return newStatement(KindSelect, tables)
}

// Insert returns an INSERT statement into the first of tables.
// It returns ErrMissingTable when no table is given.
func Insert(tables ...string) (*Statement, error) {
	return newTableStatement(KindInsert, tables)
}

// Update returns an UPDATE statement for the first of tables.
// It returns ErrMissingTable when no table is given.
func Update(tables ...string) (*Statement, error) {
	return newTableStatement(KindUpdate, tables)
}

// Create returns a CREATE TABLE IF NOT EXISTS statement for the first of tables.
// It returns ErrMissingTable when no table is given.
func Create(tables ...string) (*Statement, error) {
	return newTableStatement(KindCreate, tables)
}

func newTableStatement(kind Kind, tables []string) (*Statement, error) {
	if len(tables) == 0 {
		return nil, newBuildError(kind, "new", fmt.Errorf("%w: no %s table specified", ErrMissingTable, strings.ToLower(kind.String())))
	}
	return newStatement(kind, tables), nil
}

// WithRenderer sets the renderer used for literal values. A nil r restores QuoteRenderer.
func (s *Statement) WithRenderer(r ValueRenderer) *Statement {
	if r == nil {
		r = QuoteRenderer{}
	}
	s.renderer = r
	return s
}

// Kind returns the statement kind.
func (s *Statement) Kind() Kind {
	return s.kind
}

// Field declares a field. The arguments depend on the statement kind:
//
//   - SELECT: every argument is a field name, so Field("a", "b") selects a and b.
//   - INSERT, UPDATE: exactly a name and a value.
//   - CREATE: a name and an optional column type (ColumnType or string).
//
// Calling Field without arguments, or with arguments that do not fit the
// kind, records ErrArgument.
func (s *Statement) Field(args ...any) *Statement {
	if err := s.fields.set(args); err != nil {
		s.errors = append(s.errors, newBuildError(s.kind, "field", err))
	}
	return s
}

// Fields returns the field container of the statement.
func (s *Statement) Fields() Fields {
	return s.fields
}

// Columns returns the CREATE TABLE column container.
//
//	stmt.Columns().PrimaryKey("id").Field("name")
//
// On other kinds Columns records ErrArgument and returns a container that is
// not attached to the statement.
func (s *Statement) Columns() *CreateFields {
	if f, ok := s.fields.(*CreateFields); ok {
		return f
	}
	s.errors = append(s.errors, newBuildError(s.kind, "columns", fmt.Errorf("%w: columns on a %s statement", ErrArgument, s.kind)))
	return &CreateFields{}
}

// Tables appends table names.
func (s *Statement) Tables(names ...string) *Statement {
	s.tables = append(s.tables, names...)
	return s
}

// TableNames returns the table names in the order they were added.
func (s *Statement) TableNames() []string {
	return append([]string(nil), s.tables...)
}

// Where starts a new root condition, replacing any previous one, and
// returns it. Use End on the condition to return to the statement.
//
// Where does not accept arguments; passing any records ErrUnsupported and
// returns a condition that is not attached to the statement.
func (s *Statement) Where(args ...any) *Condition {
	if len(args) > 0 {
		s.errors = append(s.errors, newBuildError(s.kind, "where", fmt.Errorf("%w: where with arguments", ErrUnsupported)))
		return newCondition(s)
	}
	s.where = newCondition(s)
	return s.where
}

// Condition returns the root condition, or nil when Where was never called.
func (s *Statement) Condition() *Condition {
	return s.where
}

// Build renders the statement.
//
// Build does not modify the statement and may be called repeatedly. It
// returns the first error recorded while building, if any.
func (s *Statement) Build() (string, error) {
	if len(s.errors) > 0 {
		return "", s.errors[0]
	}
	if len(s.tables) == 0 {
		return "", newBuildError(s.kind, "build", fmt.Errorf("%w: no table specified", ErrMissingTable))
	}

	var sb strings.Builder
	fields := s.fields.render(s.renderer)

	switch s.kind {
	case KindSelect:
		sb.WriteString("SELECT " + fields + " FROM " + strings.Join(s.tables, ", "))
	case KindInsert:
		sb.WriteString("INSERT INTO " + s.tables[0] + " " + fields)
		return sb.String(), nil
	case KindUpdate:
		if s.fields.Len() == 0 {
			return "", newBuildError(s.kind, "build", fmt.Errorf("%w: no assignments", ErrArgument))
		}
		sb.WriteString("UPDATE " + s.tables[0] + " SET " + fields)
	case KindCreate:
		sb.WriteString("CREATE TABLE IF NOT EXISTS " + s.tables[0] + " (" + fields + ")")
		return sb.String(), nil
	default:
		return "", newBuildError(s.kind, "build", fmt.Errorf("%w: unknown statement kind", ErrUnsupported))
	}

	// SELECT and UPDATE take an optional WHERE clause.
	if err := s.buildWhere(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// buildWhere appends the WHERE clause when the condition renders to something.
func (s *Statement) buildWhere(sb *strings.Builder) error {
	if s.where == nil {
		return nil
	}
	clause, err := s.where.build(s.renderer, 0)
	if err != nil {
		return newBuildError(s.kind, "where", err)
	}
	if clause != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(clause)
	}
	return nil
}

// String renders the statement, returning the empty string if Build fails.
func (s *Statement) String() string {
	sql, err := s.Build()
	if err != nil {
		return ""
	}
	return sql
}
