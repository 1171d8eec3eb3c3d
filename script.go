package main

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/yesetoda/jaqb/query_builder"
)

// Script is a list of statements to render.
type Script struct {
	Statements []StatementDef `yaml:"statements"`
}

// StatementDef describes one statement of a script.
type StatementDef struct {
	Name    string         `yaml:"name"`
	Kind    string         `yaml:"kind"` // select, insert, update or create
	Tables  []string       `yaml:"tables"`
	Fields  []string       `yaml:"fields"`  // select only
	Values  []ValueDef     `yaml:"values"`  // insert and update
	Columns []ColumnDef    `yaml:"columns"` // create only
	Where   []ConditionDef `yaml:"where"`   // select and update
}

// ValueDef is a column value of an INSERT or an assignment of an UPDATE.
type ValueDef struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

// ColumnDef is a CREATE TABLE column. An empty type means TEXT.
type ColumnDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ConditionDef is one link of a WHERE chain. The right side is either a
// literal Value or the identifier Ref.
type ConditionDef struct {
	Connective string `yaml:"connective"` // AND or OR; defaults to AND after the first entry
	Field      string `yaml:"field"`
	Op         string `yaml:"op"`
	Value      any    `yaml:"value"`
	Ref        string `yaml:"ref"`
}

var operators = map[string]func(*query_builder.Condition) *query_builder.Condition{
	"=":  (*query_builder.Condition).Equals,
	">":  (*query_builder.Condition).Gt,
	"<":  (*query_builder.Condition).Lt,
	"<=": (*query_builder.Condition).Lte,
	">=": (*query_builder.Condition).Gte,
}

// LoadScript decodes a YAML script. Unknown keys are rejected.
func LoadScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return &s, nil
		}
		return nil, errors.Wrap(err, "decode script")
	}
	return &s, nil
}

// Rendered is the SQL produced for one statement.
type Rendered struct {
	Name string
	Kind query_builder.Kind
	SQL  string
}

// Render builds every statement of the script in order.
func (s *Script) Render() ([]Rendered, error) {
	out := make([]Rendered, 0, len(s.Statements))
	for i, def := range s.Statements {
		stmt, err := def.Statement()
		if err != nil {
			return nil, errors.Wrapf(err, "statement %d (%s)", i, def.Name)
		}
		sql, err := stmt.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "statement %d (%s)", i, def.Name)
		}
		out = append(out, Rendered{Name: def.Name, Kind: stmt.Kind(), SQL: sql})
	}
	return out, nil
}

// Statement converts the definition into a builder statement.
func (def StatementDef) Statement() (*query_builder.Statement, error) {
	var (
		stmt *query_builder.Statement
		err  error
	)
	switch strings.ToLower(def.Kind) {
	case "select":
		stmt = query_builder.Select(def.Tables...)
		for _, f := range def.Fields {
			stmt.Field(f)
		}
	case "insert", "update":
		if strings.EqualFold(def.Kind, "insert") {
			stmt, err = query_builder.Insert(def.Tables...)
		} else {
			stmt, err = query_builder.Update(def.Tables...)
		}
		if err != nil {
			return nil, err
		}
		for _, v := range def.Values {
			stmt.Field(v.Name, v.Value)
		}
	case "create":
		if stmt, err = query_builder.Create(def.Tables...); err != nil {
			return nil, err
		}
		for _, c := range def.Columns {
			stmt.Columns().Field(c.Name, query_builder.ColumnType(c.Type))
		}
	default:
		return nil, errors.Errorf("unknown statement kind %q", def.Kind)
	}

	if len(def.Where) > 0 {
		if stmt.Kind() != query_builder.KindSelect && stmt.Kind() != query_builder.KindUpdate {
			return nil, errors.Errorf("%s statements take no where clause", stmt.Kind())
		}
		if err := applyWhere(stmt.Where(), def.Where); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func applyWhere(c *query_builder.Condition, links []ConditionDef) error {
	for i, link := range links {
		if i > 0 || link.Connective != "" {
			switch strings.ToUpper(link.Connective) {
			case "", "AND":
				c = c.And()
			case "OR":
				c = c.Or()
			default:
				return errors.Errorf("where %d: unknown connective %q", i, link.Connective)
			}
		}
		op, ok := operators[link.Op]
		if !ok {
			return errors.Errorf("where %d: unknown operator %q", i, link.Op)
		}
		op(c.Field(link.Field))
		switch {
		case link.Ref != "":
			c.Field(link.Ref)
		case link.Value != nil:
			c.Value(link.Value)
		default:
			return errors.Errorf("where %d: value or ref required", i)
		}
	}
	return nil
}
