package postgres

import (
	"database/sql"
	"strings"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// isBindParameterMismatch detects the 08P01 protocol error that transaction
// pooling proxies raise when a prepared statement loses its bound parameters.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "parameters")
}

// isUnnamedPreparedStatementMissing detects the 26000 error produced when a
// pooled connection swaps underneath an unnamed prepared statement.
func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "unnamed prepared statement does not exist") {
		return true
	}
	return strings.Contains(msg, "prepared statement") && strings.Contains(msg, "(26000)")
}
