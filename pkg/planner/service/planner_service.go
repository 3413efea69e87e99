package service

import (
	"context"

	"musafir/entities"
	"musafir/pkg/extract"
	"musafir/pkg/itinerary/types"
)

type PlannerService interface {
	StartSession(ctx context.Context, userID *uint) (*entities.PlanningSession, error)
	// Refine adds text to the session and returns the model's interim plan.
	Refine(ctx context.Context, sessionID, text string) (string, error)
	Upload(ctx context.Context, sessionID string, in UploadInput) (*UploadResult, error)
	Finalize(ctx context.Context, req FinalizeRequest) (*FinalizeResult, error)
}

type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

type UploadResult struct {
	Title      string `json:"title,omitempty"`
	Text       string `json:"response"`
	Summarized bool   `json:"summarized"`
}

// FinalizeRequest takes the notes of SessionID, Text, or both (Text is
// appended to the session first).
type FinalizeRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
	UserID    *uint  `json:"-"`
}

type FinalizeResult struct {
	TripID         *uint               `json:"trip_id,omitempty"`
	Document       string              `json:"document"`
	Itinerary      *types.Itinerary    `json:"itinerary,omitempty"`
	ParseError     *extract.ParseError `json:"parse_error,omitempty"`
	Warnings       []string            `json:"warnings,omitempty"`
	ItemsPersisted int                 `json:"items_persisted"`
	ItemsFailed    int                 `json:"items_failed"`
}
