package serviceImp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musafir/database"
	"musafir/pkg/user"
	userRepoImp "musafir/pkg/user/repositoryImp"
	svc "musafir/pkg/user/service"
)

func newService(t *testing.T) svc.UserService {
	t.Helper()
	db, err := database.OpenSQLite(":memory:", database.Options{})
	require.NoError(t, err)
	return New(userRepoImp.New(db))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	u, err := s.Register(ctx, svc.Registration{
		Name: "Amal", Email: " Amal@Example.com ", Password: "correct horse",
		Preferences: json.RawMessage(`{"pace":"relaxed"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "amal@example.com", u.Email)
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.JSONEq(t, `{"pace":"relaxed"}`, string(u.Preferences))
	assert.NotEmpty(t, u.JoinedDate)

	got, err := s.Authenticate(ctx, "AMAL@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, u.UserID, got.UserID)

	_, err = s.Authenticate(ctx, "amal@example.com", "wrong password")
	assert.True(t, errors.Is(err, user.ErrBadCredentials))
	_, err = s.Authenticate(ctx, "nobody@example.com", "correct horse")
	assert.True(t, errors.Is(err, user.ErrBadCredentials))

	_, err = s.Register(ctx, svc.Registration{Email: "amal@example.com", Password: "another one"})
	assert.True(t, errors.Is(err, user.ErrEmailTaken))
}

func TestRegister_Validation(t *testing.T) {
	s := newService(t)
	_, err := s.Register(context.Background(), svc.Registration{Email: "not-an-email", Password: "long enough"})
	assert.True(t, errors.Is(err, user.ErrInvalidEmail))
	_, err = s.Register(context.Background(), svc.Registration{Email: "a@b.co", Password: "short"})
	assert.True(t, errors.Is(err, user.ErrPasswordTooWeak))
	_, err = s.Register(context.Background(), svc.Registration{Email: "a@b.co", Password: "long enough", Preferences: json.RawMessage(`[1]`)})
	assert.Error(t, err)
}

func TestUpdatePreferences(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	u, err := s.Register(ctx, svc.Registration{Email: "b@c.io", Password: "password1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(u.Preferences))

	u, err = s.UpdatePreferences(ctx, u.UserID, json.RawMessage(`{"budget":"mid","interests":["museums"]}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"budget":"mid","interests":["museums"]}`, string(u.Preferences))

	_, err = s.UpdatePreferences(ctx, 999, json.RawMessage(`{}`))
	assert.True(t, errors.Is(err, user.ErrUserNotFound))
}
