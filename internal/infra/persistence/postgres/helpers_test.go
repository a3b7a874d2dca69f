package postgres

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"bizdir/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory SQLite database with the production schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 NewGormLogger(slog.New(slog.DiscardHandler), nil),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))

	return db
}

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestBusiness(n int, createdAt time.Time) *entity.Business {
	return &entity.Business{
		ID:            uuid.New(),
		ProfileImage:  entity.DefaultProfileImage,
		BusinessName:  fmt.Sprintf("Business %d", n),
		Description:   "A test business",
		ContactNumber: "+15550100",
		Email:         fmt.Sprintf("owner%d@example.com", n),
		Category:      entity.CategoryFoodDining,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func withPoint(b *entity.Business, lng, lat float64) *entity.Business {
	b.Location = &entity.Location{
		Address:     "1 Main St",
		City:        "Springfield",
		Coordinates: entity.NewGeoPoint(lng, lat),
	}

	return b
}
