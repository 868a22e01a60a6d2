package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tasktrack/tasktrack-api/internal/database"
	"github.com/tasktrack/tasktrack-api/internal/query"
)

// joinTable stores one array field as rows keyed by the owner id.
type joinTable struct {
	table    string
	ownerKey string
	valueKey string
}

// gormSchema maps stored field names to the columns of one table.
type gormSchema struct {
	table   string
	columns map[string]string
	arrays  map[string]joinTable
}

func (s gormSchema) column(field string) (string, error) {
	col, ok := s.columns[field]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownField, s.table, field)
	}
	return s.table + "." + col, nil
}

// where compiles f into one condition per clause. An empty filter leaves db untouched.
func (s gormSchema) where(db *gorm.DB, f query.Filter) *gorm.DB {
	for _, cl := range f {
		parts := make([]string, 0, len(cl))
		var args []any
		for _, c := range cl {
			sql, arg, err := s.condition(c)
			if err != nil {
				_ = db.AddError(err)
				return db
			}
			parts = append(parts, sql)
			args = append(args, arg)
		}
		db = db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
	return db
}

func (s gormSchema) condition(c query.Condition) (string, any, error) {
	if c.Op == query.OpHas {
		jt, ok := s.arrays[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, s.table, c.Field)
		}
		sql := fmt.Sprintf("EXISTS (SELECT 1 FROM %[1]s WHERE %[1]s.%[2]s = %[3]s.id AND %[1]s.%[4]s = ?)",
			jt.table, jt.ownerKey, s.table, jt.valueKey)
		return sql, c.Value, nil
	}

	col, err := s.column(c.Field)
	if err != nil {
		return "", nil, err
	}

	switch c.Op {
	case query.OpEq:
		return col + " = ?", c.Value, nil
	case query.OpEqFold:
		return "LOWER(" + col + ") = ?", strings.ToLower(fmt.Sprint(c.Value)), nil
	case query.OpContainsFold:
		pattern := "%" + escapeLike(strings.ToLower(fmt.Sprint(c.Value))) + "%"
		return "LOWER(" + col + ") LIKE ? ESCAPE '!'", pattern, nil
	case query.OpGte:
		return col + " >= ?", c.Value, nil
	case query.OpLte:
		return col + " <= ?", c.Value, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedOperator, c.Op)
	}
}

// order applies sort and window to db.
func (s gormSchema) order(db *gorm.DB, sort query.Sort, window query.Window) *gorm.DB {
	if sort.Field != "" {
		col, ok := s.columns[sort.Field]
		if !ok {
			_ = db.AddError(fmt.Errorf("%w: %s.%s", ErrUnknownField, s.table, sort.Field))
			return db
		}
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Table: s.table, Name: col},
			Desc:   sort.Descending,
		})
	}
	return db.Scopes(database.Paginate(window))
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes LIKE wildcards in s match literally under ESCAPE '!'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
