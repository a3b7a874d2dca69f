package mongo

import (
	"time"

	"bizdir/internal/domain/entity"

	"github.com/google/uuid"
)

// businessDocument is the stored shape of a business. Location.Coordinates is
// GeoJSON so the 2dsphere index can serve $geoWithin queries.
type businessDocument struct {
	ID             string                  `bson:"_id"`
	ProfileImage   string                  `bson:"profileImage"`
	BusinessName   string                  `bson:"businessName"`
	Description    string                  `bson:"description"`
	Verified       bool                    `bson:"verified"`
	ContactNumber  string                  `bson:"contactNumber"`
	Email          string                  `bson:"email"`
	Location       *locationDocument       `bson:"location,omitempty"`
	Category       string                  `bson:"category"`
	Website        string                  `bson:"website,omitempty"`
	SocialMedia    *entity.SocialMedia     `bson:"socialMedia,omitempty"`
	OperatingHours *operatingHoursDocument `bson:"operatingHours,omitempty"`
	CreatedAt      time.Time               `bson:"createdAt"`
	UpdatedAt      time.Time               `bson:"updatedAt"`
}

type locationDocument struct {
	Address     string        `bson:"address"`
	City        string        `bson:"city"`
	State       string        `bson:"state"`
	ZipCode     string        `bson:"zipCode"`
	Country     string        `bson:"country"`
	Coordinates *geoJSONPoint `bson:"coordinates,omitempty"`
}

type geoJSONPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type hourSetDocument struct {
	Open  string `bson:"open"`
	Close string `bson:"close"`
}

type operatingHoursDocument struct {
	Monday    *hourSetDocument `bson:"monday,omitempty"`
	Tuesday   *hourSetDocument `bson:"tuesday,omitempty"`
	Wednesday *hourSetDocument `bson:"wednesday,omitempty"`
	Thursday  *hourSetDocument `bson:"thursday,omitempty"`
	Friday    *hourSetDocument `bson:"friday,omitempty"`
	Saturday  *hourSetDocument `bson:"saturday,omitempty"`
	Sunday    *hourSetDocument `bson:"sunday,omitempty"`
}

type adminDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

// --- Mapper Functions ---

func toBusinessDomain(doc *businessDocument) (*entity.Business, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}

	business := &entity.Business{
		ID:            id,
		ProfileImage:  doc.ProfileImage,
		BusinessName:  doc.BusinessName,
		Description:   doc.Description,
		Verified:      doc.Verified,
		ContactNumber: doc.ContactNumber,
		Email:         doc.Email,
		Category:      entity.Category(doc.Category),
		Website:       doc.Website,
		SocialMedia:   doc.SocialMedia,
		CreatedAt:     doc.CreatedAt.UTC(),
		UpdatedAt:     doc.UpdatedAt.UTC(),
	}

	if loc := doc.Location; loc != nil {
		business.Location = &entity.Location{
			Address: loc.Address,
			City:    loc.City,
			State:   loc.State,
			ZipCode: loc.ZipCode,
			Country: loc.Country,
		}
		if loc.Coordinates != nil && len(loc.Coordinates.Coordinates) == 2 {
			business.Location.Coordinates = entity.NewGeoPoint(loc.Coordinates.Coordinates[0], loc.Coordinates.Coordinates[1])
		}
	}

	if oh := doc.OperatingHours; oh != nil {
		business.OperatingHours = &entity.OperatingHours{
			Monday:    toHourSet(oh.Monday),
			Tuesday:   toHourSet(oh.Tuesday),
			Wednesday: toHourSet(oh.Wednesday),
			Thursday:  toHourSet(oh.Thursday),
			Friday:    toHourSet(oh.Friday),
			Saturday:  toHourSet(oh.Saturday),
			Sunday:    toHourSet(oh.Sunday),
		}
	}

	return business, nil
}

func fromBusinessDomain(b *entity.Business) *businessDocument {
	doc := &businessDocument{
		ID:            b.ID.String(),
		ProfileImage:  b.ProfileImage,
		BusinessName:  b.BusinessName,
		Description:   b.Description,
		Verified:      b.Verified,
		ContactNumber: b.ContactNumber,
		Email:         b.Email,
		Category:      b.Category.String(),
		Website:       b.Website,
		SocialMedia:   b.SocialMedia,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if loc := b.Location; loc != nil {
		doc.Location = &locationDocument{
			Address: loc.Address,
			City:    loc.City,
			State:   loc.State,
			ZipCode: loc.ZipCode,
			Country: loc.Country,
		}
		if p, ok := loc.Coordinates.Point(); ok {
			doc.Location.Coordinates = &geoJSONPoint{Type: entity.GeoPointType, Coordinates: []float64{p.Lon(), p.Lat()}}
		}
	}

	if oh := b.OperatingHours; oh != nil {
		doc.OperatingHours = &operatingHoursDocument{
			Monday:    fromHourSet(oh.Monday),
			Tuesday:   fromHourSet(oh.Tuesday),
			Wednesday: fromHourSet(oh.Wednesday),
			Thursday:  fromHourSet(oh.Thursday),
			Friday:    fromHourSet(oh.Friday),
			Saturday:  fromHourSet(oh.Saturday),
			Sunday:    fromHourSet(oh.Sunday),
		}
	}

	return doc
}

func toHourSet(h *hourSetDocument) *entity.HourSet {
	if h == nil {
		return nil
	}

	return &entity.HourSet{Open: h.Open, Close: h.Close}
}

func fromHourSet(h *entity.HourSet) *hourSetDocument {
	if h == nil {
		return nil
	}

	return &hourSetDocument{Open: h.Open, Close: h.Close}
}

func toAdminDomain(doc *adminDocument) (*entity.Admin, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}

	return &entity.Admin{
		ID:           id,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt.UTC(),
		UpdatedAt:    doc.UpdatedAt.UTC(),
	}, nil
}

func fromAdminDomain(a *entity.Admin) *adminDocument {
	return &adminDocument{
		ID:           a.ID.String(),
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
