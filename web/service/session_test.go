package service

import (
	"errors"
	"os"
	"testing"
	"time"

	"cms-ui/database"
	"cms-ui/database/model"
	"cms-ui/util/common"

	cache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	setupTest(t)
	sessionService := NewSessionService()

	session, err := sessionService.CreateSession(1, "admin")
	require.NoError(t, err)
	assert.Len(t, session.Token, 32) // 16 bytes hex encoded
	assert.WithinDuration(t, time.Now().Add(SessionTTL), session.ExpiresAt, time.Minute)

	got := sessionService.GetSessionByToken(session.Token)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.UserId)
	assert.Equal(t, "admin", got.Username)

	sessionService.DestroySession(session.Token)
	assert.Nil(t, sessionService.GetSessionByToken(session.Token))

	// Destroying an already destroyed session is a no-op.
	sessionService.DestroySession(session.Token)
	assert.Nil(t, sessionService.GetSessionByToken(session.Token))
}

func TestSessionUnknownToken(t *testing.T) {
	setupTest(t)
	sessionService := NewSessionService()

	assert.Nil(t, sessionService.GetSessionByToken(""))
	assert.Nil(t, sessionService.GetSessionByToken("no-such-token"))
}

func TestSessionLazyExpiry(t *testing.T) {
	setupTest(t)
	sessionService := NewSessionService()

	session, err := sessionService.CreateSession(1, "admin")
	require.NoError(t, err)

	// Age the stored record past its expiry.
	err = database.GetDB().Model(model.Session{}).
		Where("token = ?", session.Token).
		Update("expires_at", time.Now().Add(-time.Hour)).
		Error
	require.NoError(t, err)

	assert.Nil(t, sessionService.GetSessionByToken(session.Token))

	// The expired record was deleted on first read.
	var count int64
	require.NoError(t, database.GetDB().Model(model.Session{}).Where("token = ?", session.Token).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSessionMemoryFallback(t *testing.T) {
	setupTest(t)
	sessionService := NewSessionService()

	session, err := sessionService.CreateSession(7, "admin")
	require.NoError(t, err)

	closePrimary(t)

	got := sessionService.GetSessionByToken(session.Token)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.UserId)

	sessionService.DestroySession(session.Token)
	assert.Nil(t, sessionService.GetSessionByToken(session.Token))
}

func TestSessionMemoryFallbackExpiry(t *testing.T) {
	setupTest(t)
	sessionService := NewSessionService()
	closePrimary(t)

	expired := model.Session{
		Token:     "deadbeef",
		UserId:    1,
		Username:  "admin",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	sessionService.mem.Set(expired.Token, expired, cache.NoExpiration)

	assert.Nil(t, sessionService.GetSessionByToken(expired.Token))
	_, found := sessionService.mem.Get(expired.Token)
	assert.False(t, found) // eagerly evicted
}

func TestSessionCreateWithPrimaryDown(t *testing.T) {
	setupTest(t)
	sessionService := NewSessionService()
	closePrimary(t)

	session, err := sessionService.CreateSession(1, "admin")
	require.NoError(t, err)
	require.NotNil(t, sessionService.GetSessionByToken(session.Token))
}

func TestSessionCreateWithPrimaryDownInProduction(t *testing.T) {
	setupTest(t)
	os.Setenv("CMSUI_ENV", "production")
	t.Cleanup(func() { os.Unsetenv("CMSUI_ENV") })

	sessionService := NewSessionService()
	closePrimary(t)

	_, err := sessionService.CreateSession(1, "admin")
	var fatalErr *common.FatalError
	assert.True(t, errors.As(err, &fatalErr))
}

func TestClearExpiredSessions(t *testing.T) {
	setupTest(t)
	sessionService := NewSessionService()

	fresh, err := sessionService.CreateSession(1, "admin")
	require.NoError(t, err)

	stale := &model.Session{
		Token:     "cafebabe",
		UserId:    1,
		Username:  "admin",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, database.GetDB().Create(stale).Error)

	sessionService.ClearExpiredSessions()

	var count int64
	require.NoError(t, database.GetDB().Model(model.Session{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.NotNil(t, sessionService.GetSessionByToken(fresh.Token))
}
