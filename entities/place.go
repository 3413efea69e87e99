package entities

import "time"

// Place is shared by every trip that references it and is not modified
// after creation.
type Place struct {
	PlaceID     uint      `gorm:"column:place_id;primaryKey" json:"place_id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	Latitude    *float64  `gorm:"column:latitude" json:"latitude"`
	Longitude   *float64  `gorm:"column:longitude" json:"longitude"`
	Address     string    `gorm:"column:address;index" json:"address,omitempty"`
	PlaceType   string    `gorm:"column:place_type" json:"place_type,omitempty"`
	ExternalID  string    `gorm:"column:external_id" json:"external_id,omitempty"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	Details []PlaceDetail `gorm:"foreignKey:PlaceID;references:PlaceID" json:"details,omitempty"`
}

func (Place) TableName() string { return "places" }

const (
	DetailHighlight = "highlight"
	DetailActivity  = "activity"
)

type PlaceDetail struct {
	DetailID    uint   `gorm:"column:detail_id;primaryKey" json:"detail_id"`
	PlaceID     uint   `gorm:"column:place_id;not null;uniqueIndex:ux_place_details" json:"place_id"`
	DetailType  string `gorm:"column:detail_type;not null;uniqueIndex:ux_place_details" json:"detail_type"`
	DetailValue string `gorm:"column:detail_value;not null;uniqueIndex:ux_place_details" json:"detail_value"`
}

func (PlaceDetail) TableName() string { return "place_details" }
