// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Operator is a predicate operator supported by Find
type Operator string

const (
	OpEquals   Operator = "equals"
	OpContains Operator = "contains"
	OpIn       Operator = "in"
)

// Filter is a single predicate over a typed field
type Filter struct {
	Field string
	Op    Operator
	Value interface{}
}

// Query is a bounded predicate find. All filters must hold and, when Any is
// non-empty, at least one of the Any filters must hold.
type Query struct {
	All    []Filter
	Any    []Filter
	Limit  int
	Offset int
	Order  string
	Depth  int
}

// maxPageSize bounds every predicate find
const maxPageSize = 500

// EscapeLike escapes LIKE wildcards in user input
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func filterExpr(f Filter, allowed map[string]bool) (string, interface{}, error) {
	if !allowed[f.Field] {
		return "", nil, fmt.Errorf("field %q is not filterable", f.Field)
	}
	switch f.Op {
	case OpEquals:
		return f.Field + " = ?", f.Value, nil
	case OpContains:
		s, ok := f.Value.(string)
		if !ok {
			return "", nil, fmt.Errorf("contains on %q requires a string value", f.Field)
		}
		return f.Field + " ILIKE ?", "%" + EscapeLike(s) + "%", nil
	case OpIn:
		return f.Field + " IN ?", f.Value, nil
	default:
		return "", nil, fmt.Errorf("unsupported operator %q", f.Op)
	}
}

// applyQuery translates q into gorm clauses on tx. Fields outside allowed are
// rejected so user input never reaches a column name.
func applyQuery(tx *gorm.DB, q Query, allowed map[string]bool) (*gorm.DB, error) {
	for _, f := range q.All {
		expr, arg, err := filterExpr(f, allowed)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(expr, arg)
	}

	if len(q.Any) > 0 {
		parts := make([]string, 0, len(q.Any))
		args := make([]interface{}, 0, len(q.Any))
		for _, f := range q.Any {
			expr, arg, err := filterExpr(f, allowed)
			if err != nil {
				return nil, err
			}
			parts = append(parts, expr)
			args = append(args, arg)
		}
		tx = tx.Where("("+strings.Join(parts, " OR ")+")", args...)
	}

	limit := q.Limit
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	order := q.Order
	if order == "" {
		order = "id ASC"
	}
	return tx.Order(order).Offset(q.Offset).Limit(limit), nil
}
