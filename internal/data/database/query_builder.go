// Package database provides composable SQL list-query building for
// repositories: typed conditions, ordering, and pagination rendered into a
// parameterized SELECT.
package database

import (
	"fmt"
	"regexp"
	"strings"
)

// ConditionType identifies how a condition's field and value are compared.
type ConditionType string

const (
	// CondEq renders "field = $n".
	CondEq ConditionType = "eq"
	// CondILike renders "field ILIKE $n" (caller supplies wildcards).
	CondILike ConditionType = "ilike"
	// CondIn renders "field = ANY($n)" against a slice parameter.
	CondIn ConditionType = "in"
)

// Condition is one WHERE predicate.
type Condition struct {
	Field string
	Type  ConditionType
	Value any
}

// WhereCond constructs a Condition.
func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

// ListQueryOptions collects the pieces of a list query.
type ListQueryOptions struct {
	Table      string
	Columns    []string
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int
	CountOnly  bool
}

// ListQueryOption mutates ListQueryOptions.
type ListQueryOption func(*ListQueryOptions)

// NewListQueryOptions constructs options for the given table.
func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{
		Table:   sanitizeIdentifier(table),
		Columns: []string{"*"},
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns selects specific columns instead of "*".
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Columns = cols
	}
}

// WithCondition appends a WHERE predicate.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = append(o.Conditions, cond)
	}
}

// WithOrderBy sets ORDER BY column and direction ("asc"/"desc").
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = sanitizeIdentifier(column)
		o.OrderDir = direction
	}
}

// WithLimit sets the LIMIT; non-positive values are ignored at build time.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Limit = limit
	}
}

// WithOffset sets the OFFSET.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Offset = offset
	}
}

// WithCountOnly replaces the select list with COUNT(*) and drops ordering/pagination.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) {
		o.CountOnly = true
	}
}

var identPattern = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// sanitizeIdentifier strips anything that is not a valid identifier character.
// Identifiers are developer-supplied, never user input; this is a guardrail
// against accidental breakage, not an injection defense for untrusted data.
func sanitizeIdentifier(ident string) string {
	return identPattern.ReplaceAllString(ident, "")
}

// BuildListQuery renders the options into SQL and its parameter list.
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	if options.CountOnly {
		sb.WriteString("COUNT(*)")
	} else {
		cols := make([]string, 0, len(options.Columns))
		for _, c := range options.Columns {
			if c == "*" {
				cols = append(cols, c)
				continue
			}
			cols = append(cols, sanitizeIdentifier(c))
		}
		sb.WriteString(strings.Join(cols, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(options.Table)

	where, params := buildWhereClause(options.Conditions)
	sb.WriteString(where)

	if options.CountOnly {
		return sb.String(), params
	}

	if options.OrderBy != "" {
		dir := "ASC"
		if strings.EqualFold(options.OrderDir, "desc") {
			dir = "DESC"
		}
		sb.WriteString(" ORDER BY " + options.OrderBy + " " + dir)
	}
	if options.Limit > 0 {
		params = append(params, options.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(params)))
	}
	if options.Offset > 0 {
		params = append(params, options.Offset)
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(params)))
	}

	return sb.String(), params
}

// buildWhereClause renders conditions into a WHERE clause and parameters.
func buildWhereClause(conditions []Condition) (string, []any) {
	if len(conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(conditions))
	params := make([]any, 0, len(conditions))

	for _, cond := range conditions {
		field := sanitizeIdentifier(cond.Field)
		params = append(params, cond.Value)
		n := len(params)
		switch cond.Type {
		case CondILike:
			clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", field, n))
		case CondIn:
			clauses = append(clauses, fmt.Sprintf("%s = ANY($%d)", field, n))
		case CondEq:
			clauses = append(clauses, fmt.Sprintf("%s = $%d", field, n))
		default:
			clauses = append(clauses, fmt.Sprintf("%s = $%d", field, n))
		}
	}

	return " WHERE " + strings.Join(clauses, " AND "), params
}
