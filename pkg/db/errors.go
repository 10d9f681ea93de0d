package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a Postgres unique violation,
// optionally on a specific constraint. Typed driver errors are preferred;
// message matching covers errors that gorm has already flattened to text.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		if pgxErr.Code != uniqueViolationCode {
			return false
		}
		return constraintName == "" || pgxErr.ConstraintName == constraintName
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) != uniqueViolationCode {
			return false
		}
		return constraintName == "" || pqErr.Constraint == constraintName
	}

	msg := err.Error()
	if idx := strings.Index(msg, sqliteUniquePrefix); idx >= 0 {
		if constraintName == "" {
			return true
		}
		return sqliteConstraintName(msg[idx+len(sqliteUniquePrefix):]) == constraintName
	}
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}

const sqliteUniquePrefix = "UNIQUE constraint failed: "

// sqliteConstraintName rebuilds the Postgres-style constraint name from
// sqlite's "table.col1, table.col2" column list, e.g.
// "products.vendor_id, products.sku" -> "products_vendor_id_sku_key".
func sqliteConstraintName(columns string) string {
	if end := strings.IndexAny(columns, "(\n"); end >= 0 {
		columns = columns[:end]
	}
	parts := []string{}
	for i, col := range strings.Split(columns, ",") {
		col = strings.TrimSpace(col)
		table, column, found := strings.Cut(col, ".")
		if !found {
			return ""
		}
		if i == 0 {
			parts = append(parts, table)
		}
		parts = append(parts, column)
	}
	parts = append(parts, "key")
	return strings.Join(parts, "_")
}
