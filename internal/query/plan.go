// Package query translates untrusted HTTP query parameters into a validated,
// immutable query plan (filter predicates, free-text search, sort order,
// projection, relation includes, pagination window) and executes the plan
// against a GORM collection together with a forced scoping predicate.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Op is a filter operator from the query mini-language.
type Op string

const (
	OpEq       Op = "eq"
	OpGt       Op = "gt"
	OpGte      Op = "gte"
	OpLt       Op = "lt"
	OpLte      Op = "lte"
	OpNe       Op = "ne"
	OpIn       Op = "in"
	OpNotIn    Op = "nin"
	OpContains Op = "contains"
)

// Pagination bounds.
const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// reserved keys never become filter predicates.
var reserved = map[string]bool{
	"sort":         true,
	"limit":        true,
	"page":         true,
	"fields":       true,
	"search":       true,
	"searchFields": true,
	"include":      true,
}

var operators = map[Op]bool{
	OpGt: true, OpGte: true, OpLt: true, OpLte: true,
	OpNe: true, OpIn: true, OpNotIn: true, OpContains: true,
}

// Filter is a single validated predicate. Column is resolved from the
// schema, never taken from the request.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// SortKey is one component of a stable multi-key sort.
type SortKey struct {
	Column string
	Desc   bool
}

// SearchClause is an OR-combination of case-insensitive contains predicates.
type SearchClause struct {
	Term    string
	Columns []string
}

// Plan is the immutable result of parsing a query-parameter map. It carries
// no reference to the request and can be built and inspected independently
// of execution.
type Plan struct {
	Filters  []Filter
	Search   *SearchClause
	Sort     []SortKey
	Select   []string
	Preloads []string
	Page     int
	Limit    int
}

// Offset is the zero-based row offset of the requested page.
func (p *Plan) Offset() int { return (p.Page - 1) * p.Limit }

// Parse validates raw query parameters against the schema and builds a plan.
// Unknown fields and unknown operators are rejected; malformed page/limit
// values silently fall back to their defaults.
func Parse(values url.Values, schema Schema) (*Plan, error) {
	plan := &Plan{Page: 1, Limit: DefaultLimit}

	for key, vals := range values {
		if reserved[key] || len(vals) == 0 {
			continue
		}
		field, op := splitOperator(key)
		col, ok := schema.column(field)
		if !ok {
			return nil, fmt.Errorf("cannot filter by field %q", field)
		}
		if op != OpEq && !operators[op] {
			return nil, fmt.Errorf("unsupported filter operator %q", op)
		}

		var value any
		if op == OpIn || op == OpNotIn {
			parts := strings.Split(vals[0], ",")
			list := make([]any, 0, len(parts))
			for _, p := range parts {
				list = append(list, parseScalar(p))
			}
			value = list
		} else {
			value = parseScalar(vals[0])
		}
		plan.Filters = append(plan.Filters, Filter{Column: col, Op: op, Value: value})
	}

	if err := parseSearch(values, schema, plan); err != nil {
		return nil, err
	}
	if err := parseSort(values.Get("sort"), schema, plan); err != nil {
		return nil, err
	}
	if err := parseSelect(values.Get("fields"), schema, plan); err != nil {
		return nil, err
	}
	if err := parseInclude(values.Get("include"), schema, plan); err != nil {
		return nil, err
	}
	parsePagination(values, plan)

	return plan, nil
}

// splitOperator recognizes the field[op]=value form. A key without brackets
// is a plain equality predicate.
func splitOperator(key string) (string, Op) {
	open := strings.Index(key, "[")
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, OpEq
	}
	return key[:open], Op(key[open+1 : len(key)-1])
}

func parseSearch(values url.Values, schema Schema, plan *Plan) error {
	term := values.Get("search")
	if term == "" {
		return nil
	}

	fields := schema.SearchFields
	if raw := values.Get("searchFields"); raw != "" {
		fields = strings.Split(raw, ",")
	}
	if len(fields) == 0 {
		return fmt.Errorf("search is not supported for this resource")
	}

	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		col, ok := schema.column(strings.TrimSpace(f))
		if !ok {
			return fmt.Errorf("cannot search by field %q", f)
		}
		cols = append(cols, col)
	}
	plan.Search = &SearchClause{Term: term, Columns: cols}
	return nil
}

func parseSort(raw string, schema Schema, plan *Plan) error {
	if raw == "" {
		if col, ok := schema.column("createdAt"); ok {
			plan.Sort = []SortKey{{Column: col}}
		}
		return nil
	}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		desc := strings.HasPrefix(field, "-")
		if desc {
			field = field[1:]
		}
		col, ok := schema.column(field)
		if !ok {
			return fmt.Errorf("cannot sort by field %q", field)
		}
		plan.Sort = append(plan.Sort, SortKey{Column: col, Desc: desc})
	}
	return nil
}

func parseSelect(raw string, schema Schema, plan *Plan) error {
	if raw == "" {
		return nil
	}
	for _, field := range strings.Split(raw, ",") {
		col, ok := schema.column(strings.TrimSpace(field))
		if !ok {
			return fmt.Errorf("cannot select field %q", field)
		}
		plan.Select = append(plan.Select, col)
	}
	return nil
}

func parseInclude(raw string, schema Schema, plan *Plan) error {
	if raw == "" {
		return nil
	}
	for _, name := range strings.Split(raw, ",") {
		rel, ok := schema.Relations[strings.TrimSpace(name)]
		if !ok {
			return fmt.Errorf("unknown relation %q", name)
		}
		plan.Preloads = append(plan.Preloads, rel)
	}
	return nil
}

func parsePagination(values url.Values, plan *Plan) {
	if page, err := strconv.Atoi(values.Get("page")); err == nil {
		if page < 1 {
			page = 1
		}
		plan.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil {
		if limit < 1 {
			limit = 1
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		plan.Limit = limit
	}
}

// parseScalar converts a raw query value into a typed scalar: integers,
// floats, booleans and null are recognized, everything else stays a string.
func parseScalar(s string) any {
	switch s {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
