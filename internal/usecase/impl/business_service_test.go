package impl

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	deliverycontext "bizdir/internal/delivery/context"
	"bizdir/internal/domain/entity"
	domainerrors "bizdir/internal/domain/errors"
	"bizdir/internal/domain/geo"
	"bizdir/internal/domain/repository"
	"bizdir/internal/domain/service"
	"bizdir/internal/errors"
	mockRepo "bizdir/internal/mocks/repository"
	mockSvc "bizdir/internal/mocks/service"
	"bizdir/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type businessServiceFixture struct {
	repo      *mockRepo.MockBusinessRepository
	images    *mockSvc.MockImageStorage
	publisher *mockSvc.MockEventPublisher
	qrcode    *mockSvc.MockQRCodeService
	service   usecase.BusinessUsecase
}

func newBusinessServiceFixture(t *testing.T) *businessServiceFixture {
	t.Helper()

	f := &businessServiceFixture{
		repo:      mockRepo.NewMockBusinessRepository(t),
		images:    mockSvc.NewMockImageStorage(t),
		publisher: mockSvc.NewMockEventPublisher(t),
		qrcode:    mockSvc.NewMockQRCodeService(t),
	}
	f.service = NewBusinessService(BusinessServiceParams{
		BusinessRepo: f.repo,
		ImageStorage: f.images,
		Publisher:    f.publisher,
		QRCode:       f.qrcode,
		Config:       newTestConfig(),
		Logger:       newDiscardLogger(),
	})

	return f
}

func (f *businessServiceFixture) expectEvent(eventType service.BusinessEventType) {
	f.publisher.EXPECT().
		PublishBusinessEvent(mock.Anything, mock.MatchedBy(func(e *service.BusinessEvent) bool {
			return e.Type == eventType
		})).
		Return(nil).
		Once()
}

func newStoredBusiness(image string) *entity.Business {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	return &entity.Business{
		ID:            uuid.New(),
		ProfileImage:  image,
		BusinessName:  "Sunrise Bakery",
		Description:   "Fresh bread and pastries every morning.",
		ContactNumber: "+12125550123",
		Email:         "hello@sunrisebakery.com",
		Category:      entity.CategoryFoodDining,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

func TestBusinessService_ListBusinesses_Defaults(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()

	page := []*entity.Business{newStoredBusiness(entity.DefaultProfileImage)}
	f.repo.EXPECT().
		List(ctx, entity.BusinessFilter{}, entity.PageRequest{Page: 1, Limit: 10}).
		Return(page, int64(23), nil)

	out, err := f.service.ListBusinesses(ctx, &usecase.ListBusinessesInput{})
	require.NoError(t, err)
	assert.Equal(t, page, out.Businesses)
	assert.Equal(t, int64(23), out.Count)
	assert.Equal(t, 3, out.Pages)
}

func TestBusinessService_ListBusinesses_NonNumericFallsBackToDefaults(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().
		List(ctx, entity.BusinessFilter{}, entity.PageRequest{Page: 1, Limit: 10}).
		Return(nil, int64(0), nil)

	out, err := f.service.ListBusinesses(ctx, &usecase.ListBusinessesInput{Page: "first", Limit: "ten"})
	require.NoError(t, err)
	assert.NotNil(t, out.Businesses)
	assert.Empty(t, out.Businesses)
	assert.Equal(t, int64(0), out.Count)
	assert.Equal(t, 0, out.Pages)
}

func TestBusinessService_ListBusinesses_ClampsLimit(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().
		List(ctx, entity.BusinessFilter{}, entity.PageRequest{Page: 2, Limit: 100}).
		Return([]*entity.Business{}, int64(150), nil)

	out, err := f.service.ListBusinesses(ctx, &usecase.ListBusinessesInput{Page: "2", Limit: "5000"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Pages)
}

func TestBusinessService_ListBusinesses_RejectsNonPositive(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.ListBusinessesInput
	}{
		{name: "zero page", input: usecase.ListBusinessesInput{Page: "0"}},
		{name: "negative page", input: usecase.ListBusinessesInput{Page: "-1"}},
		{name: "zero limit", input: usecase.ListBusinessesInput{Limit: "0"}},
		{name: "negative limit", input: usecase.ListBusinessesInput{Limit: "-20"}},
		{name: "unparseable verified", input: usecase.ListBusinessesInput{Verified: "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBusinessServiceFixture(t)

			out, err := f.service.ListBusinesses(context.Background(), &tt.input)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidRequest))
		})
	}
}

func TestBusinessService_ListBusinesses_Filters(t *testing.T) {
	tests := []struct {
		name     string
		input    usecase.ListBusinessesInput
		category *entity.Category
		verified *bool
	}{
		{
			name:     "category only, verified omitted",
			input:    usecase.ListBusinessesInput{Category: "Food & Dining"},
			category: ptr(entity.CategoryFoodDining),
		},
		{
			name:     "verified true",
			input:    usecase.ListBusinessesInput{Category: "Food & Dining", Verified: "true"},
			category: ptr(entity.CategoryFoodDining),
			verified: ptr(true),
		},
		{
			name:     "verified false is a real constraint",
			input:    usecase.ListBusinessesInput{Verified: "false"},
			verified: ptr(false),
		},
		{
			name:     "unknown category passes through",
			input:    usecase.ListBusinessesInput{Category: "Space Tourism"},
			category: ptr(entity.Category("Space Tourism")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBusinessServiceFixture(t)
			ctx := context.Background()

			f.repo.EXPECT().
				List(ctx, entity.BusinessFilter{Category: tt.category, Verified: tt.verified}, entity.PageRequest{Page: 1, Limit: 10}).
				Return([]*entity.Business{}, int64(0), nil)

			_, err := f.service.ListBusinesses(ctx, &tt.input)
			require.NoError(t, err)
		})
	}
}

func TestBusinessService_ListBusinesses_RepositoryError(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	f.repo.EXPECT().
		List(ctx, mock.Anything, mock.Anything).
		Return(nil, int64(0), dbErr)

	_, err := f.service.ListBusinesses(ctx, &usecase.ListBusinessesInput{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dbErr))
}

func TestBusinessService_GetBusiness(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newBusinessServiceFixture(t)
		ctx := context.Background()
		stored := newStoredBusiness(entity.DefaultProfileImage)

		f.repo.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)

		got, err := f.service.GetBusiness(ctx, stored.ID.String())
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("missing", func(t *testing.T) {
		f := newBusinessServiceFixture(t)
		ctx := context.Background()
		id := uuid.New()

		f.repo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrBusinessNotFound)

		_, err := f.service.GetBusiness(ctx, id.String())
		assert.True(t, errors.Is(err, domainerrors.ErrBusinessNotFound))
	})

	t.Run("malformed id never reaches the repository", func(t *testing.T) {
		f := newBusinessServiceFixture(t)

		_, err := f.service.GetBusiness(context.Background(), "not-an-id")
		assert.True(t, errors.Is(err, domainerrors.ErrBusinessNotFound))
	})
}

func TestBusinessService_GetNearby(t *testing.T) {
	t.Run("default distance and cap", func(t *testing.T) {
		f := newBusinessServiceFixture(t)
		ctx := context.Background()
		found := []*entity.Business{newStoredBusiness(entity.DefaultProfileImage)}

		f.repo.EXPECT().
			FindWithin(ctx, mock.MatchedBy(func(area geo.Cap) bool {
				return area.Center.Lon() == -73.98 && area.Center.Lat() == 40.75 &&
					math.Abs(area.Radius-10.0/geo.EarthRadiusKm) < 1e-12
			}), 500).
			Return(found, nil)

		got, err := f.service.GetNearby(ctx, &usecase.NearbyInput{Lng: "-73.98", Lat: "40.75"})
		require.NoError(t, err)
		assert.Equal(t, found, got)
	})

	t.Run("half circumference covers the sphere", func(t *testing.T) {
		f := newBusinessServiceFixture(t)
		ctx := context.Background()

		f.repo.EXPECT().
			FindWithin(ctx, mock.MatchedBy(func(area geo.Cap) bool {
				return area.CoversSphere()
			}), 500).
			Return(nil, nil)

		got, err := f.service.GetNearby(ctx, &usecase.NearbyInput{
			Lng:      "0",
			Lat:      "0",
			Distance: "20038",
		})
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	rejected := []struct {
		name  string
		input usecase.NearbyInput
	}{
		{name: "missing lat", input: usecase.NearbyInput{Lng: "-73.98"}},
		{name: "missing lng", input: usecase.NearbyInput{Lat: "40.75"}},
		{name: "non-numeric lng", input: usecase.NearbyInput{Lng: "east", Lat: "40.75"}},
		{name: "latitude out of range", input: usecase.NearbyInput{Lng: "0", Lat: "91"}},
		{name: "NaN longitude", input: usecase.NearbyInput{Lng: "NaN", Lat: "0"}},
		{name: "zero distance", input: usecase.NearbyInput{Lng: "0", Lat: "0", Distance: "0"}},
		{name: "negative distance", input: usecase.NearbyInput{Lng: "0", Lat: "0", Distance: "-3"}},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			f := newBusinessServiceFixture(t)

			_, err := f.service.GetNearby(context.Background(), &tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidRequest))
		})
	}

	t.Run("missing coordinates message", func(t *testing.T) {
		f := newBusinessServiceFixture(t)

		_, err := f.service.GetNearby(context.Background(), &usecase.NearbyInput{Lng: "1"})
		assert.EqualError(t, err, "Please provide latitude and longitude coordinates")
	})
}

func TestBusinessService_CreateBusiness_WithLocationString(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()

	location := `{"address":"1 Main St","city":"Springfield","state":"IL","zipCode":"62701","country":"USA",` +
		`"coordinates":{"coordinates":[-89.65,39.78]}}`
	encoded, err := json.Marshal(location)
	require.NoError(t, err)

	input := newValidBusinessInput()
	input.Location = encoded

	var created *entity.Business
	f.repo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Business")).
		Run(func(_ context.Context, b *entity.Business) { created = b }).
		Return(nil)
	f.expectEvent(service.BusinessCreated)

	got, err := f.service.CreateBusiness(ctx, input, nil)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, created, got)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Sunrise Bakery", got.BusinessName)
	assert.Equal(t, "hello@sunrisebakery.com", got.Email)
	assert.Equal(t, entity.DefaultProfileImage, got.ProfileImage)
	assert.False(t, got.Verified)
	assert.False(t, got.CreatedAt.IsZero())
	require.NotNil(t, got.Location)
	assert.Equal(t, "Springfield", got.Location.City)
	assert.Equal(t, "62701", got.Location.ZipCode)
	require.NotNil(t, got.Location.Coordinates)
	assert.Equal(t, entity.GeoPointType, got.Location.Coordinates.Type)
	assert.Equal(t, []float64{-89.65, 39.78}, got.Location.Coordinates.Coordinates)
}

func TestBusinessService_CreateBusiness_InvalidLocation(t *testing.T) {
	f := newBusinessServiceFixture(t)

	input := newValidBusinessInput()
	input.Location = json.RawMessage(`"{not json"`)

	_, err := f.service.CreateBusiness(context.Background(), input, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidLocation))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidRequest))
	assert.EqualError(t, err, "Invalid location data format")
}

func TestBusinessService_CreateBusiness_ValidationMessages(t *testing.T) {
	f := newBusinessServiceFixture(t)

	input := &usecase.BusinessInput{
		ContactNumber: ptr("12-34"),
		Email:         ptr("not-an-email"),
		Category:      ptr("Space Tourism"),
		Website:       ptr("nope"),
		Location:      json.RawMessage(`{"coordinates":{"type":"Point","coordinates":[200,10]}}`),
	}

	_, err := f.service.CreateBusiness(context.Background(), input, nil)
	require.Error(t, err)

	var verr *domainerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"Business name is required",
		"Description is required",
		"Please provide a valid phone number",
		"Please provide a valid email",
		"Space Tourism is not a valid business category",
		"Please provide a valid URL",
		"Coordinates must be [longitude, latitude]",
	}, verr.Messages())
}

func TestBusinessService_CreateBusiness_StoresImage(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()
	img := &service.Image{Filename: "shop.png", ContentType: "image/png", Size: 3, Data: bytes.NewReader([]byte{1, 2, 3})}

	f.images.EXPECT().Save(ctx, img).Return("/uploads/businesses/business-1-2.png", nil)
	f.repo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Business")).Return(nil)
	f.expectEvent(service.BusinessCreated)

	got, err := f.service.CreateBusiness(ctx, newValidBusinessInput(), img)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/businesses/business-1-2.png", got.ProfileImage)
}

func TestBusinessService_CreateBusiness_DiscardsImageWhenInsertFails(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()
	img := &service.Image{Filename: "shop.png", ContentType: "image/png", Data: bytes.NewReader(nil)}
	dbErr := errors.New("insert failed")

	f.images.EXPECT().Save(ctx, img).Return("/uploads/businesses/business-1-2.png", nil)
	f.repo.EXPECT().Create(ctx, mock.Anything).Return(dbErr)
	f.images.EXPECT().Delete(ctx, "/uploads/businesses/business-1-2.png").Return(nil)

	_, err := f.service.CreateBusiness(ctx, newValidBusinessInput(), img)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dbErr))
}

func TestBusinessService_CreateBusiness_DuplicateEmail(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrBusinessEmailTaken)

	_, err := f.service.CreateBusiness(ctx, newValidBusinessInput(), nil)

	var verr *domainerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Email already exists"}, verr.Messages())
}

func TestBusinessService_CreateBusiness_PublishFailureIsIgnored(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	f.publisher.EXPECT().PublishBusinessEvent(ctx, mock.Anything).Return(errors.New("broker down"))

	got, err := f.service.CreateBusiness(ctx, newValidBusinessInput(), nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestBusinessService_CreateBusiness_EventCarriesRequestAndActor(t *testing.T) {
	f := newBusinessServiceFixture(t)
	adminID := uuid.New()
	ctx := deliverycontext.WithAdminID(deliverycontext.WithRequestID(context.Background(), "req-42"), adminID)

	var published *service.BusinessEvent
	f.repo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	f.publisher.EXPECT().PublishBusinessEvent(ctx, mock.Anything).
		Run(func(_ context.Context, event *service.BusinessEvent) { published = event }).
		Return(nil)

	got, err := f.service.CreateBusiness(ctx, newValidBusinessInput(), nil)
	require.NoError(t, err)
	require.NotNil(t, published)

	assert.Equal(t, service.BusinessCreated, published.Type)
	assert.Equal(t, got.ID.String(), published.BusinessID)
	assert.Equal(t, "req-42", published.RequestID)
	assert.Equal(t, adminID.String(), published.ActorID)
}

func TestBusinessService_UpdateBusiness_ReplacesCustomImage(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()
	stored := newStoredBusiness("/uploads/businesses/business-old.png")
	img := &service.Image{Filename: "new.webp", ContentType: "image/webp", Data: bytes.NewReader(nil)}

	f.repo.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)
	f.images.EXPECT().Save(ctx, img).Return("/uploads/businesses/business-new.webp", nil)
	f.repo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Business")).Return(nil)
	f.images.EXPECT().Exists(ctx, "/uploads/businesses/business-old.png").Return(true, nil)
	f.images.EXPECT().Delete(ctx, "/uploads/businesses/business-old.png").Return(nil)
	f.expectEvent(service.BusinessUpdated)

	got, err := f.service.UpdateBusiness(ctx, stored.ID.String(), &usecase.BusinessInput{Verified: ptr(true)}, img)
	require.NoError(t, err)
	assert.True(t, got.Verified)
	assert.Equal(t, "/uploads/businesses/business-new.webp", got.ProfileImage)
	assert.Equal(t, "Sunrise Bakery", got.BusinessName)
}

func TestBusinessService_UpdateBusiness_KeepsDefaultImageUntouched(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()
	stored := newStoredBusiness(entity.DefaultProfileImage)
	img := &service.Image{Filename: "new.jpg", ContentType: "image/jpeg", Data: bytes.NewReader(nil)}

	f.repo.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)
	f.images.EXPECT().Save(ctx, img).Return("/uploads/businesses/business-new.jpg", nil)
	f.repo.EXPECT().Update(ctx, mock.Anything).Return(nil)
	f.expectEvent(service.BusinessUpdated)

	_, err := f.service.UpdateBusiness(ctx, stored.ID.String(), &usecase.BusinessInput{}, img)
	require.NoError(t, err)
}

func TestBusinessService_UpdateBusiness_OldImageDeleteFailureIsIgnored(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()
	stored := newStoredBusiness("/uploads/businesses/business-old.png")
	img := &service.Image{Filename: "new.png", ContentType: "image/png", Data: bytes.NewReader(nil)}

	f.repo.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)
	f.images.EXPECT().Save(ctx, img).Return("/uploads/businesses/business-new.png", nil)
	f.repo.EXPECT().Update(ctx, mock.Anything).Return(nil)
	f.images.EXPECT().Exists(ctx, "/uploads/businesses/business-old.png").Return(false, errors.New("bucket offline"))
	f.expectEvent(service.BusinessUpdated)

	_, err := f.service.UpdateBusiness(ctx, stored.ID.String(), &usecase.BusinessInput{}, img)
	require.NoError(t, err)
}

func TestBusinessService_UpdateBusiness_RevalidatesMergedRecord(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()
	stored := newStoredBusiness(entity.DefaultProfileImage)

	f.repo.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)

	_, err := f.service.UpdateBusiness(ctx, stored.ID.String(), &usecase.BusinessInput{BusinessName: ptr("   ")}, nil)

	var verr *domainerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Business name is required"}, verr.Messages())
}

func TestBusinessService_UpdateBusiness_NotFound(t *testing.T) {
	f := newBusinessServiceFixture(t)
	ctx := context.Background()
	id := uuid.New()

	f.repo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrBusinessNotFound)

	_, err := f.service.UpdateBusiness(ctx, id.String(), &usecase.BusinessInput{}, nil)
	assert.True(t, errors.Is(err, domainerrors.ErrBusinessNotFound))
}

func TestBusinessService_DeleteBusiness(t *testing.T) {
	t.Run("custom image is removed", func(t *testing.T) {
		f := newBusinessServiceFixture(t)
		ctx := context.Background()
		stored := newStoredBusiness("/uploads/businesses/business-1-2.png")

		f.repo.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)
		f.repo.EXPECT().Delete(ctx, stored.ID).Return(nil)
		f.images.EXPECT().Exists(ctx, stored.ProfileImage).Return(true, nil)
		f.images.EXPECT().Delete(ctx, stored.ProfileImage).Return(nil)
		f.expectEvent(service.BusinessDeleted)

		require.NoError(t, f.service.DeleteBusiness(ctx, stored.ID.String()))
	})

	t.Run("default image never touches storage", func(t *testing.T) {
		f := newBusinessServiceFixture(t)
		ctx := context.Background()
		stored := newStoredBusiness(entity.DefaultProfileImage)

		f.repo.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)
		f.repo.EXPECT().Delete(ctx, stored.ID).Return(nil)
		f.expectEvent(service.BusinessDeleted)

		require.NoError(t, f.service.DeleteBusiness(ctx, stored.ID.String()))
	})

	t.Run("missing image file is not an error", func(t *testing.T) {
		f := newBusinessServiceFixture(t)
		ctx := context.Background()
		stored := newStoredBusiness("/uploads/businesses/business-gone.png")

		f.repo.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)
		f.repo.EXPECT().Delete(ctx, stored.ID).Return(nil)
		f.images.EXPECT().Exists(ctx, stored.ProfileImage).Return(false, nil)
		f.expectEvent(service.BusinessDeleted)

		require.NoError(t, f.service.DeleteBusiness(ctx, stored.ID.String()))
	})

	t.Run("not found", func(t *testing.T) {
		f := newBusinessServiceFixture(t)
		ctx := context.Background()
		id := uuid.New()

		f.repo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrBusinessNotFound)

		err := f.service.DeleteBusiness(ctx, id.String())
		assert.True(t, errors.Is(err, domainerrors.ErrBusinessNotFound))
	})
}

func TestBusinessService_GetBusinessQRCode(t *testing.T) {
	t.Run("renders for existing business", func(t *testing.T) {
		f := newBusinessServiceFixture(t)
		ctx := context.Background()
		stored := newStoredBusiness(entity.DefaultProfileImage)
		png := []byte{0x89, 'P', 'N', 'G'}

		f.repo.EXPECT().FindByID(ctx, stored.ID).Return(stored, nil)
		f.qrcode.EXPECT().GenerateBusinessQR(stored.ID).Return(png, nil)

		got, err := f.service.GetBusinessQRCode(ctx, stored.ID.String())
		require.NoError(t, err)
		assert.Equal(t, png, got)
	})

	t.Run("not found", func(t *testing.T) {
		f := newBusinessServiceFixture(t)
		ctx := context.Background()
		id := uuid.New()

		f.repo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrBusinessNotFound)

		_, err := f.service.GetBusinessQRCode(ctx, id.String())
		assert.True(t, errors.Is(err, domainerrors.ErrBusinessNotFound))
	})
}

func TestParseLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    *entity.Location
		wantErr bool
	}{
		{name: "null", raw: `null`},
		{name: "empty string", raw: `""`},
		{
			name: "object",
			raw:  `{"city":"Austin","coordinates":{"type":"Point","coordinates":[-97.74,30.27]}}`,
			want: &entity.Location{City: "Austin", Coordinates: entity.NewGeoPoint(-97.74, 30.27)},
		},
		{
			name: "string encoded object",
			raw:  `"{\"city\":\"Austin\"}"`,
			want: &entity.Location{City: "Austin"},
		},
		{
			name: "empty coordinates dropped",
			raw:  `{"city":"Austin","coordinates":{"type":"Point","coordinates":[]}}`,
			want: &entity.Location{City: "Austin"},
		},
		{name: "wrong geometry type", raw: `{"coordinates":{"type":"Polygon","coordinates":[1,2]}}`, wantErr: true},
		{name: "garbage string", raw: `"city=Austin"`, wantErr: true},
		{name: "array", raw: `[1,2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseLocation(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.True(t, errors.Is(err, domainerrors.ErrInvalidLocation))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
