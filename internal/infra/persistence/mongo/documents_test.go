package mongo

import (
	"testing"
	"time"

	"bizdir/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBusinessDocument_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b := &entity.Business{
		ID:            uuid.New(),
		ProfileImage:  "/uploads/businesses/business-1.png",
		BusinessName:  "Corner Cafe",
		Description:   "Coffee",
		ContactNumber: "+15550100",
		Email:         "cafe@example.com",
		Category:      entity.CategoryFoodDining,
		Location: &entity.Location{
			City:        "Springfield",
			Coordinates: entity.NewGeoPoint(-73.9857, 40.7484),
		},
		SocialMedia:    &entity.SocialMedia{LinkedIn: "https://linkedin.com/company/cafe"},
		OperatingHours: &entity.OperatingHours{Friday: &entity.HourSet{Open: "08:00", Close: "22:00"}},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	raw, err := bson.Marshal(fromBusinessDomain(b))
	require.NoError(t, err)

	var doc businessDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))

	got, err := toBusinessDomain(&doc)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestBusinessDocument_GeoJSONShape(t *testing.T) {
	b := &entity.Business{
		ID:       uuid.New(),
		Location: &entity.Location{Coordinates: entity.NewGeoPoint(10, 20)},
	}

	raw, err := bson.Marshal(fromBusinessDomain(b))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))

	loc, ok := m["location"].(bson.M)
	require.True(t, ok)
	point, ok := loc["coordinates"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "Point", point["type"])
	assert.Equal(t, bson.A{10.0, 20.0}, point["coordinates"])
	assert.Equal(t, b.ID.String(), m["_id"])
}

func TestBusinessDocument_OmitsEmptyLocation(t *testing.T) {
	raw, err := bson.Marshal(fromBusinessDomain(&entity.Business{ID: uuid.New()}))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.NotContains(t, m, "location")
	assert.NotContains(t, m, "operatingHours")
}

func TestToBusinessDomain_BadID(t *testing.T) {
	_, err := toBusinessDomain(&businessDocument{ID: "not-a-uuid"})
	assert.Error(t, err)
}
