package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/listing"

	"github.com/go-sql-driver/mysql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so repositories can run
// inside a service-owned transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// column converts a selector value into a SQL argument for one column.
type column struct {
	expr  string
	parse func(string) (any, error)
}

func textCol(expr string) column { return column{expr: expr} }

func idCol(expr string) column {
	return column{expr: expr, parse: func(v string) (any, error) {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("geçersiz kimlik: %q", v)
		}
		return id, nil
	}}
}

func upperCol(expr string) column {
	return column{expr: expr, parse: func(v string) (any, error) {
		return strings.ToUpper(v), nil
	}}
}

func boolCol(expr string) column {
	return column{expr: expr, parse: func(v string) (any, error) {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("geçersiz mantıksal değer: %q", v)
		}
		return b, nil
	}}
}

func assetStatusCol(expr string) column {
	return column{expr: expr, parse: func(v string) (any, error) {
		s, err := domain.ParseAssetStatus(v)
		if err != nil {
			return nil, err
		}
		return int(s), nil
	}}
}

// filterColumns is the SQL side of a listing.Spec: the same criteria keys,
// applied in the WHERE clause.
type filterColumns struct {
	search    []string
	selectors map[string]column
	date      string
}

// SelectorKeys lists the query parameters this entity understands.
func (f filterColumns) SelectorKeys() []string {
	keys := make([]string, 0, len(f.selectors))
	for k := range f.selectors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w whereBuilder) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func likeEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// apply appends the conditions for c. Unknown selector keys are ignored,
// empty ones are wildcards.
func (f filterColumns) apply(w *whereBuilder, c listing.Criteria) error {
	if s := strings.TrimSpace(c.Search); s != "" && len(f.search) > 0 {
		parts := make([]string, len(f.search))
		pattern := likeEscape(s)
		args := make([]any, len(f.search))
		for i, col := range f.search {
			parts[i] = col + " LIKE ?"
			args[i] = pattern
		}
		w.add("("+strings.Join(parts, " OR ")+")", args...)
	}
	keys := make([]string, 0, len(c.Selectors))
	for key := range c.Selectors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		val, ok := c.Selector(key)
		if !ok {
			continue
		}
		col, ok := f.selectors[key]
		if !ok {
			continue
		}
		var arg any = val
		if col.parse != nil {
			parsed, err := col.parse(val)
			if err != nil {
				return domain.ValidationError{Field: key, Msg: err.Error(), Err: err}
			}
			arg = parsed
		}
		w.add(col.expr+" = ?", arg)
	}
	if f.date != "" {
		if c.From != nil {
			w.add(f.date+" >= ?", *c.From)
		}
		if c.To != nil {
			w.add(f.date+" <= ?", *c.To)
		}
	}
	return nil
}

func nullID(id *domain.ID) any {
	if id == nil || *id <= 0 {
		return nil
	}
	return *id
}

func idPtr(n sql.NullInt64) *domain.ID {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

func nullTime(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}

func notFound(resource string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}

// mapWriteError turns MySQL constraint failures into domain conflicts.
func mapWriteError(resource string, err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062:
			return domain.ConflictError{Resource: resource, Msg: "kayıt zaten mevcut", Err: err}
		case 1451:
			return domain.ConflictError{Resource: resource, Msg: "kayda bağlı başka kayıtlar var", Err: err}
		case 1452:
			return domain.ValidationError{Field: resource, Msg: "ilişkili kayıt bulunamadı", Err: err}
		}
	}
	return err
}
