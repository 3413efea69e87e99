package repositoryImp

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musafir/database"
	"musafir/entities"
	"musafir/pkg/session"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(":memory:", database.Options{})
	require.NoError(t, err)
	repo := New(db)

	uid := uint(3)
	s, err := repo.Create(ctx, &uid)
	require.NoError(t, err)
	_, err = uuid.Parse(s.SessionID)
	assert.NoError(t, err)

	other, err := repo.Create(ctx, nil)
	require.NoError(t, err)

	_, err = repo.Append(ctx, s.SessionID, entities.EntrySourceMessage, "3 days in Paris")
	require.NoError(t, err)
	_, err = repo.Append(ctx, other.SessionID, entities.EntrySourceMessage, "a week in Rome")
	require.NoError(t, err)
	_, err = repo.Append(ctx, s.SessionID, entities.EntrySourceUpload, "visit the Louvre")
	require.NoError(t, err)

	text, err := repo.Accumulated(ctx, s.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "3 days in Paris\nvisit the Louvre", text)

	entries, err := repo.Entries(ctx, s.SessionID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entities.EntrySourceUpload, entries[1].Source)

	require.NoError(t, repo.MarkFinalized(ctx, s.SessionID, 42))
	got, err := repo.Find(ctx, s.SessionID)
	require.NoError(t, err)
	require.NotNil(t, got.FinalTripID)
	assert.Equal(t, uint(42), *got.FinalTripID)

	_, err = repo.Append(ctx, s.SessionID, entities.EntrySourceMessage, "more")
	assert.True(t, errors.Is(err, session.ErrSessionFinalized))
}

func TestSessionNotFound(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(":memory:", database.Options{})
	require.NoError(t, err)
	repo := New(db)

	_, err = repo.Find(ctx, "nope")
	assert.True(t, errors.Is(err, session.ErrSessionNotFound))
	_, err = repo.Append(ctx, "nope", entities.EntrySourceMessage, "x")
	assert.True(t, errors.Is(err, session.ErrSessionNotFound))
	_, err = repo.Accumulated(ctx, "nope")
	assert.True(t, errors.Is(err, session.ErrSessionNotFound))
	assert.True(t, errors.Is(repo.MarkFinalized(ctx, "nope", 1), session.ErrSessionNotFound))
}

func TestSessionClaim(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(":memory:", database.Options{})
	require.NoError(t, err)
	repo := New(db)

	s, err := repo.Create(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, repo.Claim(ctx, s.SessionID, entities.EntrySourceMessage, "2 days in Rome"))
	assert.True(t, errors.Is(repo.Claim(ctx, s.SessionID, entities.EntrySourceMessage, "late"), session.ErrSessionFinalized))
	_, err = repo.Append(ctx, s.SessionID, entities.EntrySourceMessage, "during finalize")
	assert.True(t, errors.Is(err, session.ErrSessionFinalized))

	// only the winner's text was recorded
	text, err := repo.Accumulated(ctx, s.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "2 days in Rome", text)

	require.NoError(t, repo.Release(ctx, s.SessionID))
	_, err = repo.Append(ctx, s.SessionID, entities.EntrySourceMessage, "visit the Pantheon")
	require.NoError(t, err)
	require.NoError(t, repo.Claim(ctx, s.SessionID, "", ""))
	require.NoError(t, repo.MarkFinalized(ctx, s.SessionID, 9))

	got, err := repo.Find(ctx, s.SessionID)
	require.NoError(t, err)
	assert.False(t, got.Finalizing)
	// a finalized session cannot be released back open
	require.NoError(t, repo.Release(ctx, s.SessionID))
	assert.True(t, errors.Is(repo.Claim(ctx, s.SessionID, "", ""), session.ErrSessionFinalized))

	assert.True(t, errors.Is(repo.Claim(ctx, "nope", "", ""), session.ErrSessionNotFound))
}
