// Package entity contains the core business objects of the directory.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// DefaultProfileImage is stored when no image has been uploaded.
// It is never a deletion target.
const DefaultProfileImage = "default-business.jpg"

// GeoPointType is the only geometry type a business location may carry.
const GeoPointType = "Point"

// Business is a single directory entry.
type Business struct {
	ID             uuid.UUID       `json:"_id"`
	ProfileImage   string          `json:"profileImage"`
	BusinessName   string          `json:"businessName"`
	Description    string          `json:"description"`
	Verified       bool            `json:"verified"`
	ContactNumber  string          `json:"contactNumber"`
	Email          string          `json:"email"`
	Location       *Location       `json:"location,omitempty"`
	Category       Category        `json:"category"`
	Website        string          `json:"website,omitempty"`
	SocialMedia    *SocialMedia    `json:"socialMedia,omitempty"`
	OperatingHours *OperatingHours `json:"operatingHours,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// HasCustomImage reports whether the profile image points at an uploaded file.
func (b *Business) HasCustomImage() bool {
	return b.ProfileImage != "" && b.ProfileImage != DefaultProfileImage
}

// Point returns the stored coordinates, if any.
func (b *Business) Point() (orb.Point, bool) {
	if b.Location == nil || b.Location.Coordinates == nil {
		return orb.Point{}, false
	}

	return b.Location.Coordinates.Point()
}

// Location is the postal address plus an optional geographic point.
type Location struct {
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ZipCode     string    `json:"zipCode"`
	Country     string    `json:"country"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
}

// GeoPoint is a GeoJSON point; Coordinates is [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(lng, lat float64) *GeoPoint {
	return &GeoPoint{Type: GeoPointType, Coordinates: []float64{lng, lat}}
}

// Point converts the pair to an orb.Point, reporting false when it is not a usable coordinate.
func (p *GeoPoint) Point() (orb.Point, bool) {
	if p == nil || len(p.Coordinates) != 2 {
		return orb.Point{}, false
	}

	lng, lat := p.Coordinates[0], p.Coordinates[1]
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return orb.Point{}, false
	}

	return orb.Point{lng, lat}, true
}

// SocialMedia holds links to the four supported platforms.
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// HourSet is one day's opening and closing time, kept as entered (e.g. "09:00").
type HourSet struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OperatingHours is the weekly schedule. A nil day means no hours were given.
type OperatingHours struct {
	Monday    *HourSet `json:"monday,omitempty"`
	Tuesday   *HourSet `json:"tuesday,omitempty"`
	Wednesday *HourSet `json:"wednesday,omitempty"`
	Thursday  *HourSet `json:"thursday,omitempty"`
	Friday    *HourSet `json:"friday,omitempty"`
	Saturday  *HourSet `json:"saturday,omitempty"`
	Sunday    *HourSet `json:"sunday,omitempty"`
}
