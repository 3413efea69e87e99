package repository

import (
	"context"

	"musafir/entities"
)

// SessionRepository keeps the free text a user accumulates while planning,
// one session per conversation.
type SessionRepository interface {
	Create(ctx context.Context, userID *uint) (*entities.PlanningSession, error)
	Find(ctx context.Context, id string) (*entities.PlanningSession, error)
	Append(ctx context.Context, id, source, content string) (*entities.SessionEntry, error)
	Entries(ctx context.Context, id string) ([]entities.SessionEntry, error)
	// Accumulated joins the entries in the order they were added.
	Accumulated(ctx context.Context, id string) (string, error)
	// Claim reserves the session for one finalize and appends content (if
	// any) in the same transaction. Only one caller wins; the others get
	// session.ErrSessionFinalized.
	Claim(ctx context.Context, id, source, content string) error
	// Release gives up a claim that did not produce a trip.
	Release(ctx context.Context, id string) error
	MarkFinalized(ctx context.Context, id string, tripID uint) error
}
