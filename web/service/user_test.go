package service

import (
	"errors"
	"testing"

	"cms-ui/database"
	"cms-ui/database/model"
	"cms-ui/storage"
	"cms-ui/util/common"
	"cms-ui/util/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnsureDefaultAdminIdempotent(t *testing.T) {
	setupTest(t)
	userService := NewUserService(NewSessionService())

	require.NoError(t, userService.EnsureDefaultAdmin())
	require.NoError(t, userService.EnsureDefaultAdmin())

	var count int64
	require.NoError(t, database.GetDB().Model(model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	user, err := userService.GetFirstUser()
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.True(t, crypto.CheckPasswordHash("admin", user.PasswordHash, user.PasswordSalt))
}

func TestEnsureDefaultAdminKeepsExistingCredentials(t *testing.T) {
	setupTest(t)
	userService := NewUserService(NewSessionService())

	require.NoError(t, userService.EnsureDefaultAdmin())
	user, err := userService.GetFirstUser()
	require.NoError(t, err)
	require.NoError(t, userService.ChangePassword(user.Id, "admin", "changed"))

	// Bootstrapping again must not reset the changed password.
	require.NoError(t, userService.EnsureDefaultAdmin())
	user, err = userService.GetFirstUser()
	require.NoError(t, err)
	assert.True(t, crypto.CheckPasswordHash("changed", user.PasswordHash, user.PasswordSalt))
	assert.False(t, crypto.CheckPasswordHash("admin", user.PasswordHash, user.PasswordSalt))
}

func TestEnsureDefaultAdminDegradedBootstrap(t *testing.T) {
	setupTest(t)
	userService := NewUserService(NewSessionService())

	closePrimary(t)
	require.NoError(t, userService.EnsureDefaultAdmin())

	creds := storage.File().ReadCredentials()
	require.NotNil(t, creds)
	assert.Equal(t, "admin", creds.Username)
	assert.True(t, crypto.CheckPasswordHash("admin", creds.PasswordHash, creds.PasswordSalt))

	// A second call must not rotate the stored salt.
	require.NoError(t, userService.EnsureDefaultAdmin())
	again := storage.File().ReadCredentials()
	require.NotNil(t, again)
	assert.Equal(t, creds.PasswordSalt, again.PasswordSalt)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	setupTest(t)
	sessionService := NewSessionService()
	userService := NewUserService(sessionService)

	require.NoError(t, userService.EnsureDefaultAdmin())
	user, err := userService.GetFirstUser()
	require.NoError(t, err)

	session, err := sessionService.CreateSession(user.Id, user.Username)
	require.NoError(t, err)
	require.NotNil(t, sessionService.GetSessionByToken(session.Token))

	require.NoError(t, userService.ChangePassword(user.Id, "admin", "brand-new"))

	assert.Nil(t, sessionService.GetSessionByToken(session.Token))
	assert.NotNil(t, userService.CheckUser("admin", "brand-new"))
	assert.Nil(t, userService.CheckUser("admin", "admin"))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	setupTest(t)
	sessionService := NewSessionService()
	userService := NewUserService(sessionService)

	require.NoError(t, userService.EnsureDefaultAdmin())
	user, err := userService.GetFirstUser()
	require.NoError(t, err)

	session, err := sessionService.CreateSession(user.Id, user.Username)
	require.NoError(t, err)

	err = userService.ChangePassword(user.Id, "not-the-password", "whatever")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	// A rejected change leaves sessions and password untouched.
	assert.NotNil(t, sessionService.GetSessionByToken(session.Token))
	assert.NotNil(t, userService.CheckUser("admin", "admin"))
}

func TestChangePasswordEmptyNew(t *testing.T) {
	setupTest(t)
	userService := NewUserService(NewSessionService())

	require.NoError(t, userService.EnsureDefaultAdmin())
	user, err := userService.GetFirstUser()
	require.NoError(t, err)

	err = userService.ChangePassword(user.Id, "admin", "")
	var validationErr *common.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestChangePasswordWithoutPrimary(t *testing.T) {
	setupTest(t)
	userService := NewUserService(NewSessionService())

	require.NoError(t, userService.EnsureDefaultAdmin())
	user, err := userService.GetFirstUser()
	require.NoError(t, err)

	require.NoError(t, database.CloseDB())

	// No primary handle at all, as after a failed startup InitDB.
	err = userService.ChangePassword(user.Id, "admin", "next")
	require.Error(t, err)

	// The file tier credentials still carry the old password.
	creds := storage.File().ReadCredentials()
	require.NotNil(t, creds)
	assert.True(t, crypto.CheckPasswordHash("admin", creds.PasswordHash, creds.PasswordSalt))
}

func TestGetFirstUserWithoutPrimary(t *testing.T) {
	setupTest(t)
	userService := NewUserService(NewSessionService())

	require.NoError(t, database.CloseDB())

	_, err := userService.GetFirstUser()
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
}
