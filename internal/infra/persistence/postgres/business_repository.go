package postgres

import (
	"context"

	"bizdir/internal/domain/entity"
	"bizdir/internal/domain/geo"
	"bizdir/internal/domain/repository"
	"bizdir/internal/errors"
	"bizdir/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// businessRepository implements the repository.BusinessRepository interface.
type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository is the constructor for businessRepository.
func NewBusinessRepository(db *gorm.DB) repository.BusinessRepository {
	return &businessRepository{db: db}
}

// Create inserts a new business.
func (repo *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	m := fromBusinessDomain(business)
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrBusinessEmailTaken
		}

		return errors.Wrap(err, "failed to create business")
	}

	return nil
}

// FindByID retrieves a business by its ID.
func (repo *businessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var m model.BusinessModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrBusinessNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find business by id")
	}

	return toBusinessDomain(&m), nil
}

// List returns one page of businesses matching filter, newest first, with the total match count.
func (repo *businessRepository) List(ctx context.Context, filter entity.BusinessFilter, page entity.PageRequest) ([]*entity.Business, int64, error) {
	var total int64
	if err := repo.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count businesses")
	}

	var rows []*model.BusinessModel
	err := repo.filtered(ctx, filter).
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list businesses")
	}

	return toBusinessDomains(rows), total, nil
}

func (repo *businessRepository) filtered(ctx context.Context, filter entity.BusinessFilter) *gorm.DB {
	q := repo.db.WithContext(ctx).Model(&model.BusinessModel{})
	if filter.Category != nil {
		q = q.Where("category = ?", filter.Category.String())
	}
	if filter.Verified != nil {
		q = q.Where("verified = ?", *filter.Verified)
	}

	return q
}

// FindWithin returns businesses whose point lies inside area, nearest first.
// The bounding box narrows the scan; membership is decided on the sphere.
func (repo *businessRepository) FindWithin(ctx context.Context, area geo.Cap, limit int) ([]*entity.Business, error) {
	q := repo.db.WithContext(ctx).
		Where("location_latitude IS NOT NULL AND location_longitude IS NOT NULL")

	if !area.CoversSphere() {
		bound := area.Bound()
		q = q.Where("location_latitude BETWEEN ? AND ?", bound.Min.Lat(), bound.Max.Lat())
		if bound.Min.Lon() > -180 || bound.Max.Lon() < 180 {
			q = q.Where("location_longitude BETWEEN ? AND ?", bound.Min.Lon(), bound.Max.Lon())
		}
	}

	var rows []*model.BusinessModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query businesses by area")
	}

	return geo.Nearest(area, toBusinessDomains(rows), (*entity.Business).Point, limit), nil
}

// Update overwrites every mutable column of an existing business.
func (repo *businessRepository) Update(ctx context.Context, business *entity.Business) error {
	m := fromBusinessDomain(business)
	result := repo.db.WithContext(ctx).
		Model(&model.BusinessModel{ID: business.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(m)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrBusinessEmailTaken
		}

		return errors.Wrap(result.Error, "failed to update business")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

// Delete removes a business by its ID.
func (repo *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BusinessModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete business")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toBusinessDomain(data *model.BusinessModel) *entity.Business {
	if data == nil {
		return nil
	}

	business := &entity.Business{
		ID:            data.ID,
		ProfileImage:  data.ProfileImage,
		BusinessName:  data.BusinessName,
		Description:   data.Description,
		Verified:      data.Verified,
		ContactNumber: data.ContactNumber,
		Email:         data.Email,
		Category:      entity.Category(data.Category),
		Website:       data.Website,
		CreatedAt:     data.CreatedAt.UTC(),
		UpdatedAt:     data.UpdatedAt.UTC(),
	}

	if data.HasLocation {
		loc := data.Location
		business.Location = &entity.Location{
			Address: loc.Address,
			City:    loc.City,
			State:   loc.State,
			ZipCode: loc.ZipCode,
			Country: loc.Country,
		}
		if loc.Longitude != nil && loc.Latitude != nil {
			business.Location.Coordinates = entity.NewGeoPoint(*loc.Longitude, *loc.Latitude)
		}
	}

	if sm := data.SocialMedia; sm != nil {
		business.SocialMedia = &entity.SocialMedia{
			Facebook:  sm.Facebook,
			Instagram: sm.Instagram,
			Twitter:   sm.Twitter,
			LinkedIn:  sm.LinkedIn,
		}
	}

	if oh := data.OperatingHours; oh != nil {
		business.OperatingHours = &entity.OperatingHours{
			Monday:    toHourSetDomain(oh.Monday),
			Tuesday:   toHourSetDomain(oh.Tuesday),
			Wednesday: toHourSetDomain(oh.Wednesday),
			Thursday:  toHourSetDomain(oh.Thursday),
			Friday:    toHourSetDomain(oh.Friday),
			Saturday:  toHourSetDomain(oh.Saturday),
			Sunday:    toHourSetDomain(oh.Sunday),
		}
	}

	return business
}

func toBusinessDomains(rows []*model.BusinessModel) []*entity.Business {
	businesses := make([]*entity.Business, len(rows))
	for i, row := range rows {
		businesses[i] = toBusinessDomain(row)
	}

	return businesses
}

func toHourSetDomain(h *model.HourSetJSON) *entity.HourSet {
	if h == nil {
		return nil
	}

	return &entity.HourSet{Open: h.Open, Close: h.Close}
}

func fromBusinessDomain(domain *entity.Business) *model.BusinessModel {
	if domain == nil {
		return nil
	}

	m := &model.BusinessModel{
		ID:            domain.ID,
		ProfileImage:  domain.ProfileImage,
		BusinessName:  domain.BusinessName,
		Description:   domain.Description,
		Verified:      domain.Verified,
		ContactNumber: domain.ContactNumber,
		Email:         domain.Email,
		Category:      domain.Category.String(),
		Website:       domain.Website,
		CreatedAt:     domain.CreatedAt,
		UpdatedAt:     domain.UpdatedAt,
	}

	if loc := domain.Location; loc != nil {
		m.HasLocation = true
		m.Location = model.LocationColumns{
			Address: loc.Address,
			City:    loc.City,
			State:   loc.State,
			ZipCode: loc.ZipCode,
			Country: loc.Country,
		}
		if p, ok := loc.Coordinates.Point(); ok {
			lng, lat := p.Lon(), p.Lat()
			m.Location.Longitude = &lng
			m.Location.Latitude = &lat
		}
	}

	if sm := domain.SocialMedia; sm != nil {
		m.SocialMedia = &model.SocialMediaJSON{
			Facebook:  sm.Facebook,
			Instagram: sm.Instagram,
			Twitter:   sm.Twitter,
			LinkedIn:  sm.LinkedIn,
		}
	}

	if oh := domain.OperatingHours; oh != nil {
		m.OperatingHours = &model.OperatingHoursJSON{
			Monday:    fromHourSetDomain(oh.Monday),
			Tuesday:   fromHourSetDomain(oh.Tuesday),
			Wednesday: fromHourSetDomain(oh.Wednesday),
			Thursday:  fromHourSetDomain(oh.Thursday),
			Friday:    fromHourSetDomain(oh.Friday),
			Saturday:  fromHourSetDomain(oh.Saturday),
			Sunday:    fromHourSetDomain(oh.Sunday),
		}
	}

	return m
}

func fromHourSetDomain(h *entity.HourSet) *model.HourSetJSON {
	if h == nil {
		return nil
	}

	return &model.HourSetJSON{Open: h.Open, Close: h.Close}
}
