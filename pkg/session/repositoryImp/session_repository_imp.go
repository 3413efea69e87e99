package repositoryImp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"musafir/entities"
	"musafir/pkg/session"
	"musafir/pkg/session/repository"
)

type sessionRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SessionRepository { return &sessionRepo{db} }

func (r *sessionRepo) Create(ctx context.Context, userID *uint) (*entities.PlanningSession, error) {
	s := &entities.PlanningSession{SessionID: uuid.NewString(), UserID: userID}
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sessionRepo) Find(ctx context.Context, id string) (*entities.PlanningSession, error) {
	var s entities.PlanningSession
	err := r.db.WithContext(ctx).First(&s, "session_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Append(ctx context.Context, id, source, content string) (*entities.SessionEntry, error) {
	s, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.FinalTripID != nil || s.Finalizing {
		return nil, session.ErrSessionFinalized
	}
	e := &entities.SessionEntry{SessionID: id, Source: source, Content: content}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		return tx.Model(&entities.PlanningSession{}).Where("session_id = ?", id).
			Update("updated_at", e.CreatedAt).Error
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *sessionRepo) Entries(ctx context.Context, id string) ([]entities.SessionEntry, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}
	var list []entities.SessionEntry
	return list, r.db.WithContext(ctx).Where("session_id = ?", id).Order("entry_id asc").Find(&list).Error
}

func (r *sessionRepo) Accumulated(ctx context.Context, id string) (string, error) {
	entries, err := r.Entries(ctx, id)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Content)
	}
	return strings.Join(parts, "\n"), nil
}

func (r *sessionRepo) Claim(ctx context.Context, id, source, content string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.PlanningSession{}).
			Where("session_id = ? AND final_trip_id IS NULL AND finalizing = ?", id, false).
			Updates(map[string]any{"finalizing": true, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&entities.PlanningSession{}).Where("session_id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return session.ErrSessionNotFound
			}
			return session.ErrSessionFinalized
		}
		if content == "" {
			return nil
		}
		return tx.Create(&entities.SessionEntry{SessionID: id, Source: source, Content: content}).Error
	})
}

func (r *sessionRepo) Release(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&entities.PlanningSession{}).
		Where("session_id = ? AND final_trip_id IS NULL", id).
		Update("finalizing", false).Error
}

func (r *sessionRepo) MarkFinalized(ctx context.Context, id string, tripID uint) error {
	res := r.db.WithContext(ctx).Model(&entities.PlanningSession{}).
		Where("session_id = ?", id).
		Updates(map[string]any{"final_trip_id": tripID, "finalizing": false})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}
