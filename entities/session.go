package entities

import "time"

// PlanningSession scopes the free text a user accumulates before finalizing.
type PlanningSession struct {
	SessionID   string    `gorm:"column:session_id;primaryKey" json:"session_id"`
	UserID      *uint     `gorm:"column:user_id;index" json:"user_id,omitempty"`
	FinalTripID *uint     `gorm:"column:final_trip_id" json:"final_trip_id,omitempty"`
	Finalizing  bool      `gorm:"column:finalizing;not null;default:false" json:"finalizing"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PlanningSession) TableName() string { return "planning_sessions" }

const (
	EntrySourceMessage = "message"
	EntrySourceUpload  = "upload"
)

type SessionEntry struct {
	EntryID   uint      `gorm:"column:entry_id;primaryKey" json:"entry_id"`
	SessionID string    `gorm:"column:session_id;not null;index" json:"session_id"`
	Source    string    `gorm:"column:source" json:"source"`
	Content   string    `gorm:"column:content" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (SessionEntry) TableName() string { return "session_entries" }
