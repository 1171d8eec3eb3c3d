package query_builder_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qb "github.com/yesetoda/jaqb/query_builder"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name   string
		tables []string
		want   string
	}{
		{"single table", []string{"t1"}, "SELECT * FROM t1"},
		{"two tables", []string{"t1", "t2"}, "SELECT * FROM t1, t2"},
		{"three tables", []string{"a", "b", "c"}, "SELECT * FROM a, b, c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := qb.Select(tt.tables...).Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
			assert.Equal(t, "SELECT * FROM "+strings.Join(tt.tables, ", "), sql)
		})
	}

	t.Run("tables added later", func(t *testing.T) {
		s := qb.Select()
		s.Tables("t1", "t2")
		assert.Equal(t, "SELECT * FROM t1, t2", s.String())
		assert.Equal(t, []string{"t1", "t2"}, s.TableNames())
	})

	t.Run("no table", func(t *testing.T) {
		_, err := qb.Select().Build()
		require.Error(t, err)
		assert.True(t, errors.Is(err, qb.ErrMissingTable))
	})
}

func TestSelectFields(t *testing.T) {
	s := qb.Select("t1")
	s.Field("first").Field("second", "third")
	assert.Equal(t, "SELECT first, second, third FROM t1", s.String())

	t.Run("duplicates kept", func(t *testing.T) {
		sql, err := qb.Select("t1").Field("a").Field("a").Build()
		require.NoError(t, err)
		assert.Equal(t, "SELECT a, a FROM t1", sql)
	})

	t.Run("no arguments", func(t *testing.T) {
		_, err := qb.Select("t1").Field().Build()
		require.Error(t, err)
		assert.True(t, errors.Is(err, qb.ErrArgument))

		var be *qb.BuildError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, qb.KindSelect, be.Kind)
		assert.Equal(t, "field", be.Op)
	})

	t.Run("container", func(t *testing.T) {
		s := qb.Select("t1")
		fields, ok := s.Fields().(*qb.SelectFields)
		require.True(t, ok)
		fields.Add("x", "y")
		assert.Equal(t, "SELECT x, y FROM t1", s.String())
		assert.Equal(t, 2, s.Fields().Len())
	})

	t.Run("columns on select", func(t *testing.T) {
		s := qb.Select("t")
		require.NotPanics(t, func() { s.Columns().PrimaryKey("id") })

		_, err := s.Build()
		require.Error(t, err)
		assert.True(t, errors.Is(err, qb.ErrArgument))

		var be *qb.BuildError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, "columns", be.Op)
		assert.Equal(t, 0, s.Fields().Len())
	})
}

func TestWhere(t *testing.T) {
	t.Run("field comparison", func(t *testing.T) {
		s := qb.Select("t1")
		s.Where().Field("first").Gt().Field("second")
		assert.Equal(t, "SELECT * FROM t1 WHERE first > second", s.String())
	})

	t.Run("value comparison", func(t *testing.T) {
		s := qb.Select("t1")
		s.Where().Field("first").Equals().Value(10)
		assert.Equal(t, "SELECT * FROM t1 WHERE first = '10'", s.String())
	})

	t.Run("and", func(t *testing.T) {
		s := qb.Select("t1")
		where := s.Where().Field("first").Equals().Field("second")
		where.And().Field("second").Equals().Field("second")
		assert.Equal(t, "SELECT * FROM t1 WHERE first = second AND (second = second)", s.String())
	})

	t.Run("or", func(t *testing.T) {
		s := qb.Select("t1")
		where := s.Where().Field("first").Equals().Field("second")
		where.Or().Field("second").Equals().Field("second")
		assert.Equal(t, "SELECT * FROM t1 WHERE first = second OR (second = second)", s.String())
	})

	t.Run("or then and nests", func(t *testing.T) {
		s := qb.Select("t1")
		where := s.Where().Field("first").Equals().Field("second")
		or := where.Or().Field("second").Equals().Field("second")
		or.And().Field("third").Lte().Value("fifty")
		assert.Equal(t, "SELECT * FROM t1 WHERE first = second OR (second = second AND (third <= 'fifty'))", s.String())
	})

	t.Run("leading connective", func(t *testing.T) {
		s := qb.Select("t1")
		s.Where().Or().Field("a").Equals().Field("b")
		assert.Equal(t, "SELECT * FROM t1 WHERE a = b", s.String())
	})

	t.Run("empty condition omits where", func(t *testing.T) {
		s := qb.Select("t1")
		s.Where()
		assert.Equal(t, "SELECT * FROM t1", s.String())
	})

	t.Run("end resumes statement", func(t *testing.T) {
		sql, err := qb.Select("t1").
			Where().Field("a").Lt().Value(3).End().
			Field("a").
			Build()
		require.NoError(t, err)
		assert.Equal(t, "SELECT a FROM t1 WHERE a < '3'", sql)
	})

	t.Run("last where wins", func(t *testing.T) {
		s := qb.Select("t1")
		s.Where().Field("a").Equals().Value(1)
		s.Where().Field("b").Gte().Value(2)
		assert.Equal(t, "SELECT * FROM t1 WHERE b >= '2'", s.String())
	})

	t.Run("arguments unsupported", func(t *testing.T) {
		s := qb.Select("t1")
		c := s.Where("a", "=", 1)
		require.NotNil(t, c)
		assert.Nil(t, s.Condition())
		_, err := s.Build()
		assert.True(t, errors.Is(err, qb.ErrUnsupported))
		assert.Equal(t, "", s.String())
	})

	t.Run("incomplete condition", func(t *testing.T) {
		s := qb.Select("t1")
		s.Where().Field("a").Equals()
		_, err := s.Build()
		require.Error(t, err)
		assert.True(t, errors.Is(err, qb.ErrIncompleteCondition))
	})
}

func TestInsert(t *testing.T) {
	s, err := qb.Insert("t1")
	require.NoError(t, err)
	s.Field("first", 1)
	assert.Equal(t, "INSERT INTO t1 (first) VALUES ('1')", s.String())

	s, err = qb.Insert("t1")
	require.NoError(t, err)
	s.Field("first", 1)
	s.Field("second", 2).Field("third", 3)
	assert.Equal(t, "INSERT INTO t1 (first, second, third) VALUES ('1', '2', '3')", s.String())

	t.Run("overwrite keeps position", func(t *testing.T) {
		s, err := qb.Insert("t1")
		require.NoError(t, err)
		s.Field("a", 1).Field("b", 2).Field("a", 3)
		assert.Equal(t, "INSERT INTO t1 (a, b) VALUES ('3', '2')", s.String())
	})

	t.Run("only first table", func(t *testing.T) {
		s, err := qb.Insert("t1", "t2")
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO t1 (a) VALUES ('x')", s.Field("a", "x").String())
	})

	t.Run("quotes are not escaped", func(t *testing.T) {
		s, err := qb.Insert("t1")
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO t1 (a) VALUES ('it's')", s.Field("a", "it's").String())
	})

	t.Run("bad arity", func(t *testing.T) {
		for _, args := range [][]any{{}, {"a"}, {"a", 1, 2}, {1, 2}} {
			s, err := qb.Insert("t1")
			require.NoError(t, err)
			_, err = s.Field(args...).Build()
			assert.True(t, errors.Is(err, qb.ErrArgument), "args %v", args)
		}
	})
}

func TestUpdate(t *testing.T) {
	s, err := qb.Update("t1")
	require.NoError(t, err)
	s.Field("a", 1).Field("b", 2)
	assert.Equal(t, "UPDATE t1 SET a = '1', b = '2'", s.String())

	s.Where().Field("b").Equals().Value(2)
	assert.Equal(t, "UPDATE t1 SET a = '1', b = '2' WHERE b = '2'", s.String())

	t.Run("no assignments", func(t *testing.T) {
		s, err := qb.Update("t1")
		require.NoError(t, err)
		_, err = s.Build()
		require.Error(t, err)
		assert.True(t, errors.Is(err, qb.ErrArgument))
		assert.Equal(t, "", s.String())
	})

	fields, ok := s.Fields().(*qb.UpdateFields)
	require.True(t, ok)
	v, ok := fields.Value("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestCreate(t *testing.T) {
	s, err := qb.Create("t1")
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS t1 ()", s.String())

	s.Columns().Field("f1")
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS t1 (f1 TEXT)", s.String())

	s, err = qb.Create("t1")
	require.NoError(t, err)
	s.Columns().PrimaryKey("f1")
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS t1 (f1 INTEGER PRIMARY KEY)", s.String())

	t.Run("types", func(t *testing.T) {
		s, err := qb.Create("t1")
		require.NoError(t, err)
		s.Columns().PrimaryKey("id").Field("n", qb.Integer).Field("b", qb.Blob)
		s.Field("r", "REAL").Field("x", "VARCHAR").Field("y", 12).Field("z")
		assert.Equal(t, "CREATE TABLE IF NOT EXISTS t1 (id INTEGER PRIMARY KEY, n INTEGER, b BLOB, r REAL, x TEXT, y TEXT, z TEXT)", s.String())

		typ, ok := s.Columns().Type("x")
		require.True(t, ok)
		assert.Equal(t, qb.Text, typ)
	})

	t.Run("field through statement", func(t *testing.T) {
		s, err := qb.Create("t1")
		require.NoError(t, err)
		s.Field("id", qb.PrimaryKey).Field("name")
		assert.Equal(t, "CREATE TABLE IF NOT EXISTS t1 (id INTEGER PRIMARY KEY, name TEXT)", s.String())
	})
}

func TestMissingTable(t *testing.T) {
	factories := map[string]func(...string) (*qb.Statement, error){
		"insert": qb.Insert,
		"update": qb.Update,
		"create": qb.Create,
	}
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			s, err := factory()
			require.Error(t, err)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, qb.ErrMissingTable))
			assert.Contains(t, err.Error(), "no "+name+" table specified")
		})
	}
}

func TestBuildIsRepeatable(t *testing.T) {
	s, err := qb.Update("t1")
	require.NoError(t, err)
	s.Field("a", 1).Where().Field("a").Gt().Value(0).Or().Field("a").Lt().Value(-5)

	first, err := s.Build()
	require.NoError(t, err)
	second, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "UPDATE t1 SET a = '1' WHERE a > '0' OR (a < '-5')", first)
}

type upperRenderer struct{}

func (upperRenderer) RenderValue(v any) string {
	return "'" + strings.ToUpper(v.(string)) + "'"
}

func TestWithRenderer(t *testing.T) {
	s, err := qb.Update("t1")
	require.NoError(t, err)
	s.WithRenderer(upperRenderer{}).Field("a", "x").Where().Field("b").Equals().Value("y")
	assert.Equal(t, "UPDATE t1 SET a = 'X' WHERE b = 'Y'", s.String())

	s.WithRenderer(nil)
	assert.Equal(t, "UPDATE t1 SET a = 'x' WHERE b = 'y'", s.String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "SELECT", qb.KindSelect.String())
	assert.Equal(t, "INSERT", qb.KindInsert.String())
	assert.Equal(t, "UPDATE", qb.KindUpdate.String())
	assert.Equal(t, "CREATE", qb.KindCreate.String())
	assert.Equal(t, "Kind(9)", qb.Kind(9).String())
}
