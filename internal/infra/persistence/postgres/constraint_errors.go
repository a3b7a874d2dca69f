package postgres

import (
	"strings"

	"bizdir/internal/errors"

	"gorm.io/gorm"
)

// isUniqueConstraintViolation recognises duplicate-key failures from both the
// PostgreSQL driver (SQLSTATE 23505) and SQLite, whether or not GORM translated them.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "23505")
}
