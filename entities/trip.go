package entities

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TripStatusUpcoming  = "upcoming"
	TripStatusOngoing   = "ongoing"
	TripStatusCompleted = "completed"
	TripStatusCancelled = "cancelled"
)

// Trip is created once an itinerary is finalized. Dates are kept as
// YYYY-MM-DD text when the model gave something parseable, raw otherwise.
type Trip struct {
	TripID        uint           `gorm:"column:trip_id;primaryKey" json:"trip_id"`
	UserID        *uint          `gorm:"column:user_id;index" json:"user_id,omitempty"`
	Title         string         `gorm:"column:title" json:"title"`
	Destination   string         `gorm:"column:destination;index" json:"destination"`
	StartDate     string         `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate       string         `gorm:"column:end_date" json:"end_date,omitempty"`
	Status        string         `gorm:"column:status;default:upcoming" json:"status"`
	Document      string         `gorm:"column:document" json:"document,omitempty"`
	ItineraryJSON datatypes.JSON `gorm:"column:itinerary_json" json:"itinerary_json,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Trip) TableName() string { return "trips" }

func ValidTripStatus(s string) bool {
	switch s {
	case TripStatusUpcoming, TripStatusOngoing, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}
