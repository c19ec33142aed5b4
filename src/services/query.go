package services

import (
	"strings"

	"gorm.io/gorm"
)

const unspecified = "Non specificato"

// eqFilter adds column = value when value is set.
func eqFilter(q *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return q
	}
	return q.Where(column+" = ?", value)
}

// searchFilter matches term case-insensitively as a substring of any column.
func searchFilter(q *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return q
	}
	pattern := "%" + strings.ToLower(term) + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		clauses[i] = "LOWER(" + c + ") LIKE ?"
		args[i] = pattern
	}
	return q.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// distinctValues lists the non-empty distinct values of column, sorted.
func distinctValues(q *gorm.DB, column string) ([]string, error) {
	values := []string{}
	err := q.Where(column+" IS NOT NULL AND "+column+" <> ''").
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

type groupCount struct {
	Label *string
	Count int64
}

// countBy counts rows per value of column. NULL and empty values are
// reported under missing.
func countBy(q *gorm.DB, column, missing string) (map[string]int64, error) {
	var rows []groupCount
	err := q.Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		key := missing
		if r.Label != nil && *r.Label != "" {
			key = *r.Label
		}
		out[key] += r.Count
	}
	return out, nil
}

func stringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
