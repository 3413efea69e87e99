package entities

import "time"

type ItineraryItem struct {
	ItemID     uint      `gorm:"column:item_id;primaryKey" json:"item_id"`
	TripID     uint      `gorm:"column:trip_id;not null;uniqueIndex:ux_items_order" json:"trip_id"`
	PlaceID    uint      `gorm:"column:place_id;not null;index" json:"place_id"`
	Day        int       `gorm:"column:day;not null;uniqueIndex:ux_items_order" json:"day"`
	StartTime  string    `gorm:"column:start_time" json:"start_time,omitempty"` // HH:MM
	EndTime    string    `gorm:"column:end_time" json:"end_time,omitempty"`     // HH:MM
	Notes      string    `gorm:"column:notes" json:"notes,omitempty"`
	OrderIndex int       `gorm:"column:order_index;not null;uniqueIndex:ux_items_order" json:"order_index"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`

	Place *Place `gorm:"foreignKey:PlaceID;references:PlaceID" json:"place,omitempty"`
}

func (ItineraryItem) TableName() string { return "itinerary_items" }
