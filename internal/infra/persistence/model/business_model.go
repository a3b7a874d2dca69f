package model

import (
	"time"

	"github.com/google/uuid"
)

// BusinessModel is the GORM-specific struct for the 'businesses' table.
// Timestamps are assigned by the service layer, so GORM's auto-time handling is off.
type BusinessModel struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ProfileImage   string              `gorm:"type:varchar(512);not null"`
	BusinessName   string              `gorm:"type:varchar(100);not null"`
	Description    string              `gorm:"type:text;not null"`
	Verified       bool                `gorm:"not null;index:idx_businesses_category_verified,priority:2"`
	ContactNumber  string              `gorm:"type:varchar(16);not null"`
	Email          string              `gorm:"type:varchar(255);not null;uniqueIndex:idx_businesses_email"`
	Category       string              `gorm:"type:varchar(64);not null;index:idx_businesses_category_verified,priority:1"`
	Website        string              `gorm:"type:varchar(2048)"`
	HasLocation    bool                `gorm:"not null"`
	Location       LocationColumns     `gorm:"embedded;embeddedPrefix:location_"`
	SocialMedia    *SocialMediaJSON    `gorm:"type:text;serializer:json"`
	OperatingHours *OperatingHoursJSON `gorm:"type:text;serializer:json"`
	CreatedAt      time.Time           `gorm:"not null;autoCreateTime:false;index:idx_businesses_created_at"`
	UpdatedAt      time.Time           `gorm:"not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (BusinessModel) TableName() string {
	return "businesses"
}

// LocationColumns flattens the postal address and point into location_* columns.
// Latitude/Longitude are NULL when no point was given.
type LocationColumns struct {
	Address   string   `gorm:"type:varchar(255)"`
	City      string   `gorm:"type:varchar(100)"`
	State     string   `gorm:"type:varchar(100)"`
	ZipCode   string   `gorm:"type:varchar(20)"`
	Country   string   `gorm:"type:varchar(100)"`
	Latitude  *float64 `gorm:"index:idx_businesses_location,priority:1"`
	Longitude *float64 `gorm:"index:idx_businesses_location,priority:2"`
}

// SocialMediaJSON is stored as a JSON document.
type SocialMediaJSON struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// HourSetJSON is one day of OperatingHoursJSON.
type HourSetJSON struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OperatingHoursJSON is stored as a JSON document.
type OperatingHoursJSON struct {
	Monday    *HourSetJSON `json:"monday,omitempty"`
	Tuesday   *HourSetJSON `json:"tuesday,omitempty"`
	Wednesday *HourSetJSON `json:"wednesday,omitempty"`
	Thursday  *HourSetJSON `json:"thursday,omitempty"`
	Friday    *HourSetJSON `json:"friday,omitempty"`
	Saturday  *HourSetJSON `json:"saturday,omitempty"`
	Sunday    *HourSetJSON `json:"sunday,omitempty"`
}
