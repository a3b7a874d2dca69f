package postgres

import (
	"testing"

	"bizdir/internal/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"translated by gorm", errors.Wrap(gorm.ErrDuplicatedKey, "insert"), true},
		{"postgres message", errors.New(`ERROR: duplicate key value violates unique constraint "idx_businesses_email" (SQLSTATE 23505)`), true},
		{"sqlite message", errors.New("constraint failed: UNIQUE constraint failed: businesses.email (2067)"), true},
		{"other failure", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueConstraintViolation(tt.err))
		})
	}
}
