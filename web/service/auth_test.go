package service

import (
	"testing"

	"cms-ui/database"
	"cms-ui/database/model"
	"cms-ui/util/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*AuthService, *UserService, *SessionService) {
	sessionService := NewSessionService()
	userService := NewUserService(sessionService)
	return NewAuthService(userService, sessionService), userService, sessionService
}

func TestAuthenticate(t *testing.T) {
	setupTest(t)
	authService, userService, _ := newAuthService()

	require.NoError(t, userService.EnsureDefaultAdmin())

	user, err := authService.Authenticate("admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	_, err = authService.Authenticate("admin", "wrong")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	// Unknown usernames fail with the same generic error.
	_, err = authService.Authenticate("nobody", "admin")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestAuthenticateDefaultCredentialsLazyUpsert(t *testing.T) {
	setupTest(t)
	authService, _, _ := newAuthService()

	// No bootstrap ran; the default credentials still get in and the
	// administrator materializes in the primary store.
	user, err := authService.Authenticate("admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	var count int64
	require.NoError(t, database.GetDB().Model(model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// And the upsert never overwrites an existing hash: logging in
	// again reuses the stored account.
	again, err := authService.Authenticate("admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, user.Id, again.Id)
}

func TestAuthenticateDegradedFileCredentials(t *testing.T) {
	setupTest(t)
	authService, userService, sessionService := newAuthService()

	require.NoError(t, userService.EnsureDefaultAdmin())

	closePrimary(t)

	user, err := authService.Authenticate("admin", "admin")
	require.NoError(t, err)

	// A full login flow still works on the fallback tiers.
	session, err := sessionService.CreateSession(user.Id, user.Username)
	require.NoError(t, err)
	assert.NotNil(t, authService.Validate(session.Token))

	_, err = authService.Authenticate("admin", "wrong")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestValidate(t *testing.T) {
	setupTest(t)
	authService, _, sessionService := newAuthService()

	assert.Nil(t, authService.Validate(""))
	assert.Nil(t, authService.Validate("bogus"))

	session, err := sessionService.CreateSession(1, "admin")
	require.NoError(t, err)
	got := authService.Validate(session.Token)
	require.NotNil(t, got)
	assert.Equal(t, session.Token, got.Token)
}
