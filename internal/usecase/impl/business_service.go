// Package impl contains the implementation of the application's business logic.
package impl

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"bizdir/config"
	deliverycontext "bizdir/internal/delivery/context"
	"bizdir/internal/domain/entity"
	domainerrors "bizdir/internal/domain/errors"
	"bizdir/internal/domain/geo"
	"bizdir/internal/domain/repository"
	"bizdir/internal/domain/service"
	"bizdir/internal/errors"
	"bizdir/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.uber.org/fx"
)

const (
	defaultListLimit        = 10
	defaultListMaxLimit     = 100
	defaultNearbyDistanceKm = 10
	defaultNearbyMaxResults = 500
)

// businessService implements the BusinessUsecase interface.
type businessService struct {
	businessRepo repository.BusinessRepository
	images       service.ImageStorage
	publisher    service.EventPublisher
	qrcode       service.QRCodeService
	validator    *recordValidator
	listing      config.ListingConfig
	logger       *slog.Logger
	now          func() time.Time
}

// BusinessServiceParams holds dependencies for BusinessService, injected by Fx.
type BusinessServiceParams struct {
	fx.In

	BusinessRepo repository.BusinessRepository
	ImageStorage service.ImageStorage
	Publisher    service.EventPublisher
	QRCode       service.QRCodeService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewBusinessService is the constructor for businessService.
func NewBusinessService(params BusinessServiceParams) usecase.BusinessUsecase {
	listing := config.ListingConfig{
		DefaultLimit:            defaultListLimit,
		MaxLimit:                defaultListMaxLimit,
		NearbyDefaultDistanceKm: defaultNearbyDistanceKm,
		NearbyMaxResults:        defaultNearbyMaxResults,
	}
	if params.Config != nil && params.Config.Listing != nil {
		listing = *params.Config.Listing
	}

	return &businessService{
		businessRepo: params.BusinessRepo,
		images:       params.ImageStorage,
		publisher:    params.Publisher,
		qrcode:       params.QRCode,
		validator:    newRecordValidator(),
		listing:      listing,
		logger:       params.Logger,
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *businessService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListBusinesses returns one page of businesses, newest first.
func (srv *businessService) ListBusinesses(ctx context.Context, input *usecase.ListBusinessesInput) (*usecase.ListBusinessesOutput, error) {
	page, err := parsePositiveInt(input.Page, 1, "Page")
	if err != nil {
		return nil, err
	}

	limit, err := parsePositiveInt(input.Limit, srv.listing.DefaultLimit, "Limit")
	if err != nil {
		return nil, err
	}
	limit = min(limit, srv.listing.MaxLimit)

	filter, err := parseBusinessFilter(input.Category, input.Verified)
	if err != nil {
		return nil, err
	}

	businesses, total, err := srv.businessRepo.List(ctx, filter, entity.PageRequest{Page: page, Limit: limit})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	if businesses == nil {
		businesses = []*entity.Business{}
	}

	return &usecase.ListBusinessesOutput{
		Businesses: businesses,
		Count:      total,
		Pages:      entity.TotalPages(total, limit),
	}, nil
}

// GetBusiness retrieves a single business by its ID string.
func (srv *businessService) GetBusiness(ctx context.Context, id string) (*entity.Business, error) {
	businessID, ok := usecase.ParseBusinessID(id)
	if !ok {
		return nil, domainerrors.ErrBusinessNotFound
	}

	return srv.findBusiness(ctx, businessID)
}

// GetNearby returns businesses within a radius of a point, nearest first.
func (srv *businessService) GetNearby(ctx context.Context, input *usecase.NearbyInput) ([]*entity.Business, error) {
	lngRaw, latRaw := strings.TrimSpace(input.Lng), strings.TrimSpace(input.Lat)
	if lngRaw == "" || latRaw == "" {
		return nil, domainerrors.ErrMissingCoordinates
	}

	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil || math.IsNaN(lng) || lng < -180 || lng > 180 {
		return nil, domainerrors.ErrInvalidRequest.WithMessage("Longitude must be a number between -180 and 180")
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, domainerrors.ErrInvalidRequest.WithMessage("Latitude must be a number between -90 and 90")
	}

	distanceKm := srv.listing.NearbyDefaultDistanceKm
	if raw := strings.TrimSpace(input.Distance); raw != "" {
		distanceKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(distanceKm) || distanceKm <= 0 {
			return nil, domainerrors.ErrInvalidRequest.WithMessage("Distance must be a positive number of kilometres")
		}
	}

	area := geo.NewCap(orb.Point{lng, lat}, distanceKm)

	businesses, err := srv.businessRepo.FindWithin(ctx, area, srv.listing.NearbyMaxResults)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find nearby businesses")
	}

	if businesses == nil {
		businesses = []*entity.Business{}
	}

	return businesses, nil
}

// CreateBusiness validates and stores a new business.
func (srv *businessService) CreateBusiness(ctx context.Context, input *usecase.BusinessInput, image *service.Image) (*entity.Business, error) {
	now := srv.now()
	business := &entity.Business{
		ID:           uuid.New(),
		ProfileImage: entity.DefaultProfileImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := applyBusinessInput(business, input); err != nil {
		return nil, err
	}

	if err := srv.validator.Business(business); err != nil {
		return nil, err
	}

	storedImage, err := srv.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if storedImage != "" {
		business.ProfileImage = storedImage
	}

	if err := srv.businessRepo.Create(ctx, business); err != nil {
		srv.discardImage(ctx, storedImage)

		return nil, translateBusinessWriteError(err, "failed to create business")
	}

	srv.log(ctx).Info("Business created", slog.String("business_id", business.ID.String()))
	srv.publish(ctx, service.BusinessCreated, business)

	return business, nil
}

// UpdateBusiness merges input into an existing business.
func (srv *businessService) UpdateBusiness(ctx context.Context, id string, input *usecase.BusinessInput, image *service.Image) (*entity.Business, error) {
	businessID, ok := usecase.ParseBusinessID(id)
	if !ok {
		return nil, domainerrors.ErrBusinessNotFound
	}

	business, err := srv.findBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	previousImage := business.ProfileImage
	hadCustomImage := business.HasCustomImage()

	if err := applyBusinessInput(business, input); err != nil {
		return nil, err
	}

	if err := srv.validator.Business(business); err != nil {
		return nil, err
	}

	storedImage, err := srv.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if storedImage != "" {
		business.ProfileImage = storedImage
	}
	business.UpdatedAt = srv.now()

	if err := srv.businessRepo.Update(ctx, business); err != nil {
		srv.discardImage(ctx, storedImage)

		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, domainerrors.ErrBusinessNotFound
		}

		return nil, translateBusinessWriteError(err, "failed to update business")
	}

	if storedImage != "" && hadCustomImage {
		srv.removeImage(ctx, previousImage)
	}

	srv.log(ctx).Info("Business updated", slog.String("business_id", business.ID.String()))
	srv.publish(ctx, service.BusinessUpdated, business)

	return business, nil
}

// DeleteBusiness removes a business and its uploaded image.
func (srv *businessService) DeleteBusiness(ctx context.Context, id string) error {
	businessID, ok := usecase.ParseBusinessID(id)
	if !ok {
		return domainerrors.ErrBusinessNotFound
	}

	business, err := srv.findBusiness(ctx, businessID)
	if err != nil {
		return err
	}

	if err := srv.businessRepo.Delete(ctx, businessID); err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return domainerrors.ErrBusinessNotFound
		}

		return errors.Wrap(err, "failed to delete business")
	}

	if business.HasCustomImage() {
		srv.removeImage(ctx, business.ProfileImage)
	}

	srv.log(ctx).Info("Business deleted", slog.String("business_id", business.ID.String()))
	srv.publish(ctx, service.BusinessDeleted, business)

	return nil
}

// GetBusinessQRCode renders a PNG QR code linking to the public business page.
func (srv *businessService) GetBusinessQRCode(ctx context.Context, id string) ([]byte, error) {
	businessID, ok := usecase.ParseBusinessID(id)
	if !ok {
		return nil, domainerrors.ErrBusinessNotFound
	}

	if _, err := srv.findBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	png, err := srv.qrcode.GenerateBusinessQR(businessID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate business QR code")
	}

	return png, nil
}

func (srv *businessService) findBusiness(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	business, err := srv.businessRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrBusinessNotFound) {
		return nil, domainerrors.ErrBusinessNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find business")
	}

	return business, nil
}

func (srv *businessService) storeImage(ctx context.Context, image *service.Image) (string, error) {
	if image == nil {
		return "", nil
	}

	path, err := srv.images.Save(ctx, image)
	if err != nil {
		return "", errors.Wrap(err, "failed to store profile image")
	}

	return path, nil
}

// discardImage removes an image stored for a write that did not commit.
func (srv *businessService) discardImage(ctx context.Context, path string) {
	if path == "" {
		return
	}

	if err := srv.images.Delete(ctx, path); err != nil {
		srv.log(ctx).Warn("Failed to discard uploaded image", slog.String("path", path), slog.Any("error", err))
	}
}

// removeImage deletes a replaced or orphaned image. Failures never fail the caller.
func (srv *businessService) removeImage(ctx context.Context, path string) {
	exists, err := srv.images.Exists(ctx, path)
	if err != nil {
		srv.log(ctx).Warn("Failed to check profile image", slog.String("path", path), slog.Any("error", err))

		return
	}

	if !exists {
		srv.log(ctx).Debug("Profile image already gone", slog.String("path", path))

		return
	}

	if err := srv.images.Delete(ctx, path); err != nil {
		srv.log(ctx).Warn("Failed to delete profile image", slog.String("path", path), slog.Any("error", err))
	}
}

func (srv *businessService) publish(ctx context.Context, eventType service.BusinessEventType, business *entity.Business) {
	event := &service.BusinessEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		Type:         eventType,
		BusinessID:   business.ID.String(),
		BusinessName: business.BusinessName,
		Category:     business.Category.String(),
		Verified:     business.Verified,
		OccurredAt:   srv.now(),
	}
	if adminID, ok := deliverycontext.GetAdminIDFromContext(ctx); ok {
		event.ActorID = adminID.String()
	}

	if err := srv.publisher.PublishBusinessEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish business event",
			slog.String("type", string(eventType)),
			slog.String("business_id", event.BusinessID),
			slog.Any("error", err),
		)
	}
}

func translateBusinessWriteError(err error, message string) error {
	if errors.Is(err, repository.ErrBusinessEmailTaken) {
		return domainerrors.NewValidationError("Email already exists")
	}

	return errors.Wrap(err, message)
}

// parsePositiveInt reads a pagination value. Absent or non-numeric input yields def.
func parsePositiveInt(raw string, def int, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return def, nil
	}

	if n <= 0 {
		return 0, domainerrors.ErrInvalidRequest.WithMessage(name + " must be a positive integer")
	}

	return n, nil
}

func parseBusinessFilter(category, verified string) (entity.BusinessFilter, error) {
	var filter entity.BusinessFilter

	if c := strings.TrimSpace(category); c != "" {
		cat := entity.Category(c)
		filter.Category = &cat
	}

	if v := strings.TrimSpace(verified); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return filter, domainerrors.ErrInvalidRequest.WithMessage("Verified must be true or false")
		}
		filter.Verified = &parsed
	}

	return filter, nil
}

// applyBusinessInput copies every present field of input onto business.
func applyBusinessInput(business *entity.Business, input *usecase.BusinessInput) error {
	if input == nil {
		return nil
	}

	if input.BusinessName != nil {
		business.BusinessName = strings.TrimSpace(*input.BusinessName)
	}
	if input.Description != nil {
		business.Description = *input.Description
	}
	if input.Verified != nil {
		business.Verified = *input.Verified
	}
	if input.ContactNumber != nil {
		business.ContactNumber = strings.TrimSpace(*input.ContactNumber)
	}
	if input.Email != nil {
		business.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Category != nil {
		business.Category = entity.Category(strings.TrimSpace(*input.Category))
	}
	if input.Website != nil {
		business.Website = strings.TrimSpace(*input.Website)
	}
	if input.SocialMedia != nil {
		business.SocialMedia = input.SocialMedia
	}
	if input.OperatingHours != nil {
		business.OperatingHours = input.OperatingHours
	}

	if len(input.Location) > 0 {
		location, err := parseLocation(input.Location)
		if err != nil {
			return err
		}
		business.Location = location
	}

	return nil
}

// parseLocation accepts a location object or the same object encoded as a JSON string,
// which is how multipart forms carry it.
func parseLocation(raw json.RawMessage) (*entity.Location, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	if data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return nil, domainerrors.ErrInvalidLocation
		}

		data = bytes.TrimSpace([]byte(encoded))
		if len(data) == 0 || bytes.Equal(data, []byte("null")) {
			return nil, nil
		}
	}

	var location entity.Location
	if err := json.Unmarshal(data, &location); err != nil {
		return nil, domainerrors.ErrInvalidLocation
	}

	if point := location.Coordinates; point != nil {
		switch {
		case len(point.Coordinates) == 0:
			location.Coordinates = nil
		case point.Type == "":
			point.Type = entity.GeoPointType
		case point.Type != entity.GeoPointType:
			return nil, domainerrors.ErrInvalidLocation
		}
	}

	return &location, nil
}
