package dbpkg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-petr/bank-admin/pkg/querypkg"
)

// ErrUnknownField indicates a condition on a field that has no column mapping.
var ErrUnknownField = errors.New("unknown field")

// Columns maps logical fields to SQL column expressions.
type Columns map[querypkg.Field]string

// Where renders cond as a SQL boolean expression.
//
// Values are bound with $n placeholders numbered from 1 and returned in order.
func Where(cond querypkg.Condition, cols Columns) (string, []any, error) {
	w := whereBuilder{cols: cols}

	sql, err := w.render(cond)
	if err != nil {
		return "", nil, err
	}

	return sql, w.args, nil
}

type whereBuilder struct {
	cols Columns
	args []any
}

func (w *whereBuilder) bind(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) column(f querypkg.Field) (string, error) {
	col, ok := w.cols[f]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, f)
	}

	return col, nil
}

func (w *whereBuilder) render(cond querypkg.Condition) (string, error) {
	switch c := cond.(type) {
	case querypkg.Contains:
		col, err := w.column(c.Field)
		if err != nil {
			return "", err
		}

		p := w.bind(EscapeLike(c.Text))

		return fmt.Sprintf(`LOWER(%s) LIKE '%%' || LOWER(%s) || '%%' ESCAPE '\'`, col, p), nil
	case querypkg.Equals:
		col, err := w.column(c.Field)
		if err != nil {
			return "", err
		}

		return col + " = " + w.bind(c.Value), nil
	case querypkg.Between:
		col, err := w.column(c.Field)
		if err != nil {
			return "", err
		}

		from := w.bind(c.From.UTC())
		to := w.bind(c.To.UTC())

		return fmt.Sprintf("%s >= %s AND %s <= %s", col, from, col, to), nil
	case querypkg.And:
		return w.join(c, " AND ", "1 = 1")
	case querypkg.Or:
		return w.join(c, " OR ", "1 = 0")
	case nil:
		return "1 = 1", nil
	}

	return "", fmt.Errorf("unsupported condition %T", cond)
}

func (w *whereBuilder) join(conds []querypkg.Condition, op, empty string) (string, error) {
	if len(conds) == 0 {
		return empty, nil
	}

	parts := make([]string, len(conds))

	for i, c := range conds {
		sql, err := w.render(c)
		if err != nil {
			return "", err
		}

		parts[i] = sql
	}

	if len(parts) == 1 {
		return parts[0], nil
	}

	return "(" + strings.Join(parts, op) + ")", nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so that s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
