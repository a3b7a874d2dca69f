package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"bizdir/internal/domain/entity"
	"bizdir/internal/domain/geo"
	"bizdir/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const testMongoURIEnv = "BIZDIR_TEST_MONGO_URI"

// newTestDatabase connects to the MongoDB named by BIZDIR_TEST_MONGO_URI and
// returns a throwaway database, skipping the test when the variable is unset.
func newTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv(testMongoURIEnv)
	if uri == "" {
		t.Skipf("%s not set", testMongoURIEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database("bizdir_test_" + uuid.NewString()[:8])
	require.NoError(t, EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

func newBusiness(n int, createdAt time.Time) *entity.Business {
	return &entity.Business{
		ID:            uuid.New(),
		ProfileImage:  entity.DefaultProfileImage,
		BusinessName:  fmt.Sprintf("Business %d", n),
		Description:   "A test business",
		ContactNumber: "+15550100",
		Email:         fmt.Sprintf("owner%d@example.com", n),
		Category:      entity.CategoryRetailShopping,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestBusinessRepository_Integration(t *testing.T) {
	repo := NewBusinessRepository(newTestDatabase(t))
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	near := newBusiness(1, base)
	near.Location = &entity.Location{Coordinates: entity.NewGeoPoint(-73.9857, 40.7574)}
	nearer := newBusiness(2, base.Add(time.Hour))
	nearer.Location = &entity.Location{Coordinates: entity.NewGeoPoint(-73.9857, 40.7529)}
	nearer.Verified = true
	far := newBusiness(3, base.Add(2*time.Hour))
	far.Location = &entity.Location{Coordinates: entity.NewGeoPoint(-0.1276, 51.5072)}

	for _, b := range []*entity.Business{near, nearer, far} {
		require.NoError(t, repo.Create(ctx, b))
	}

	t.Run("duplicate email", func(t *testing.T) {
		dup := newBusiness(1, base)
		assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrBusinessEmailTaken)
	})

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, nearer.ID)
		require.NoError(t, err)
		assert.Equal(t, nearer.BusinessName, got.BusinessName)

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrBusinessNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		items, total, err := repo.List(ctx, entity.BusinessFilter{}, entity.PageRequest{Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, items, 2)
		assert.Equal(t, far.ID, items[0].ID)
		assert.Equal(t, nearer.ID, items[1].ID)

		verified := true
		items, total, err = repo.List(ctx, entity.BusinessFilter{Verified: &verified}, entity.PageRequest{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
	})

	t.Run("find within", func(t *testing.T) {
		items, err := repo.FindWithin(ctx, geo.NewCap(orb.Point{-73.9857, 40.7484}, 5), 10)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, nearer.ID, items[0].ID)
		assert.Equal(t, near.ID, items[1].ID)
	})

	t.Run("update and delete", func(t *testing.T) {
		updated := *near
		updated.BusinessName = "Renamed"
		require.NoError(t, repo.Update(ctx, &updated))

		got, err := repo.FindByID(ctx, near.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.BusinessName)

		require.NoError(t, repo.Delete(ctx, near.ID))
		assert.ErrorIs(t, repo.Delete(ctx, near.ID), repository.ErrBusinessNotFound)
		assert.ErrorIs(t, repo.Update(ctx, &updated), repository.ErrBusinessNotFound)
	})
}

func TestAdminRepository_Integration(t *testing.T) {
	repo := NewAdminRepository(newTestDatabase(t))
	ctx := context.Background()

	admin := &entity.Admin{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, admin))

	got, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrAdminNotFound)

	dup := *admin
	dup.ID = uuid.New()
	assert.ErrorIs(t, repo.Create(ctx, &dup), repository.ErrAdminEmailTaken)
}
