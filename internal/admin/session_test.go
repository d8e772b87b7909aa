package admin

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestService(t *testing.T) (*Service, *MemorySessionStore) {
	t.Helper()
	store := NewMemorySessionStore()
	return NewService("spaethfarms2024", 24*time.Hour, store, testLogger()), store
}

func Test_Login(t *testing.T) {
	testCases := []struct {
		name        string
		password    string
		expectError error
	}{
		{name: "Success - correct password", password: "spaethfarms2024"},
		{name: "Error - wrong password", password: "guess", expectError: ErrUnauthorized},
		{name: "Error - empty password", password: "", expectError: ErrUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service, _ := newTestService(t)
			// when
			token, err := service.Login(context.Background(), tc.password)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
			}
		})
	}
}

func Test_Authenticate(t *testing.T) {
	// given a fresh login
	ctx := context.Background()
	service, _ := newTestService(t)
	token, err := service.Login(ctx, "spaethfarms2024")
	require.NoError(t, err)
	// then the token authenticates
	assert.NoError(t, service.Authenticate(ctx, token))
	// and garbage does not
	assert.ErrorIs(t, service.Authenticate(ctx, "no-such-token"), ErrUnauthorized)
	assert.ErrorIs(t, service.Authenticate(ctx, ""), ErrUnauthorized)
}

func Test_Authenticate_ExpiredSession(t *testing.T) {
	// given a session issued 25 hours ago
	ctx := context.Background()
	service, store := newTestService(t)
	issued := time.Now().UTC()
	service.now = func() time.Time { return issued }
	token, err := service.Login(ctx, "spaethfarms2024")
	require.NoError(t, err)

	// when the clock moves past the 24 hour TTL
	service.now = func() time.Time { return issued.Add(25 * time.Hour) }
	err = service.Authenticate(ctx, token)

	// then the session is rejected and deleted
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, getErr := store.Get(ctx, token)
	assert.ErrorIs(t, getErr, ErrSessionNotFound)
}

func Test_Authenticate_SessionAtExactTTL(t *testing.T) {
	// given a session exactly 24 hours old
	ctx := context.Background()
	service, _ := newTestService(t)
	issued := time.Now().UTC()
	service.now = func() time.Time { return issued }
	token, err := service.Login(ctx, "spaethfarms2024")
	require.NoError(t, err)
	// when
	service.now = func() time.Time { return issued.Add(24 * time.Hour) }
	// then the boundary counts as expired
	assert.ErrorIs(t, service.Authenticate(ctx, token), ErrUnauthorized)
}

func Test_Logout(t *testing.T) {
	// given
	ctx := context.Background()
	service, _ := newTestService(t)
	token, err := service.Login(ctx, "spaethfarms2024")
	require.NoError(t, err)
	// when
	service.Logout(ctx, token)
	// then
	assert.ErrorIs(t, service.Authenticate(ctx, token), ErrUnauthorized)
}

func Test_Login_StoreFailure(t *testing.T) {
	// given a store that cannot persist
	service := NewService("spaethfarms2024", 24*time.Hour, &failingStore{}, testLogger())
	// when
	token, err := service.Login(context.Background(), "spaethfarms2024")
	// then the caller only ever sees the generic rejection
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, token)
}

type failingStore struct{}

func (failingStore) Put(context.Context, string, Session) error { return errors.New("redis down") }
func (failingStore) Get(context.Context, string) (*Session, error) {
	return nil, errors.New("redis down")
}
func (failingStore) Delete(context.Context, string) error { return errors.New("redis down") }
