package impl

import (
	"strings"
	"testing"

	"bizdir/internal/domain/entity"
	domainerrors "bizdir/internal/domain/errors"
	"bizdir/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBusiness() *entity.Business {
	return &entity.Business{
		BusinessName:  "Sunrise Bakery",
		Description:   "Fresh bread.",
		ContactNumber: "2125550123",
		Email:         "hello@sunrise-bakery.co",
		Category:      entity.CategoryFoodDining,
		Website:       "https://www.sunrise-bakery.co/menu?day=mon",
	}
}

func TestRecordValidator_Business(t *testing.T) {
	t.Parallel()

	rv := newRecordValidator()

	tests := []struct {
		name   string
		mutate func(b *entity.Business)
		want   []string
	}{
		{name: "valid", mutate: func(*entity.Business) {}},
		{name: "website optional", mutate: func(b *entity.Business) { b.Website = "" }},
		{
			name:   "name at limit counts runes",
			mutate: func(b *entity.Business) { b.BusinessName = strings.Repeat("é", 100) },
		},
		{
			name:   "name too long",
			mutate: func(b *entity.Business) { b.BusinessName = strings.Repeat("a", 101) },
			want:   []string{"Business name cannot be more than 100 characters"},
		},
		{
			name:   "description too long",
			mutate: func(b *entity.Business) { b.Description = strings.Repeat("a", 1001) },
			want:   []string{"Description cannot be more than 1000 characters"},
		},
		{
			name:   "phone with plus and fifteen digits",
			mutate: func(b *entity.Business) { b.ContactNumber = "+123456789012345" },
		},
		{
			name:   "phone too short",
			mutate: func(b *entity.Business) { b.ContactNumber = "555-0123" },
			want:   []string{"Please provide a valid phone number"},
		},
		{
			name:   "email tld too long",
			mutate: func(b *entity.Business) { b.Email = "owner@shop.museum" },
			want:   []string{"Please provide a valid email"},
		},
		{
			name:   "missing category",
			mutate: func(b *entity.Business) { b.Category = "" },
			want:   []string{"Business category is required"},
		},
		{
			name:   "website without scheme",
			mutate: func(b *entity.Business) { b.Website = "sunrise-bakery.co" },
			want:   []string{"Please provide a valid URL"},
		},
		{
			name: "coordinates missing latitude",
			mutate: func(b *entity.Business) {
				b.Location = &entity.Location{Coordinates: &entity.GeoPoint{Type: entity.GeoPointType, Coordinates: []float64{10}}}
			},
			want: []string{"Coordinates must be [longitude, latitude]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := validBusiness()
			tt.mutate(b)

			err := rv.Business(b)
			if tt.want == nil {
				assert.NoError(t, err)

				return
			}

			var verr *domainerrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.want, verr.Messages())
		})
	}
}

func TestRecordValidator_Admin(t *testing.T) {
	t.Parallel()

	rv := newRecordValidator()

	assert.NoError(t, rv.Admin("Ada", "ada@example.com", "123456"))

	err := rv.Admin(strings.Repeat("n", 51), "", "")
	var verr *domainerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"Name cannot be more than 50 characters",
		"Please add an email",
		"Please add a password",
	}, verr.Messages())
}
