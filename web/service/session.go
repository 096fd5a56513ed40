package service

import (
	"time"

	"cms-ui/config"
	"cms-ui/database"
	"cms-ui/database/model"
	"cms-ui/logger"
	"cms-ui/util/common"
	"cms-ui/util/random"

	cache "github.com/patrickmn/go-cache"
)

// SessionTTL is the fixed lifespan of a session from creation.
const SessionTTL = 7 * 24 * time.Hour

// sessionTokenBytes gives 128 bits of token entropy.
const sessionTokenBytes = 16

// SessionService issues, looks up and revokes session tokens. Sessions
// live in the primary store; an in-process cache keyed by token keeps
// login working within a single process while the primary store is
// unreachable.
type SessionService struct {
	mem *cache.Cache
}

func NewSessionService() *SessionService {
	return &SessionService{
		mem: cache.New(SessionTTL, time.Hour),
	}
}

// CreateSession generates a fresh token and persists the session. A
// session the primary store did not accept is kept in memory only,
// which is tolerated in development and fatal in a production-grade
// deployment: other processes could never validate it.
func (s *SessionService) CreateSession(userId int, username string) (*model.Session, error) {
	session := &model.Session{
		Token:     random.Token(sessionTokenBytes),
		UserId:    userId,
		Username:  username,
		ExpiresAt: time.Now().Add(SessionTTL),
	}

	persisted := false
	if db := database.GetDB(); db != nil {
		if err := db.Create(session).Error; err != nil {
			logger.Warning("session not persisted to primary store:", err)
		} else {
			persisted = true
		}
	}
	if !persisted {
		if config.IsProduction() {
			return nil, common.NewFatalError("refusing in-memory-only session in production", nil)
		}
		logger.Warningf("session for %q held in memory only; it will not survive a restart and is invisible to other processes", username)
	}

	s.mem.Set(session.Token, *session, time.Until(session.ExpiresAt))
	return session, nil
}

// GetSessionByToken resolves a token. The primary store wins when it
// has the record; expired records are deleted on first read. When the
// primary store is unreachable or the token is absent there, the
// in-process cache answers with the same expiry check.
func (s *SessionService) GetSessionByToken(token string) *model.Session {
	if token == "" {
		return nil
	}

	if db := database.GetDB(); db != nil {
		session := &model.Session{}
		err := db.Model(model.Session{}).Where("token = ?", token).First(session).Error
		if err == nil {
			if session.IsExpired(time.Now()) {
				s.DestroySession(token)
				return nil
			}
			return session
		}
		if !database.IsNotFound(err) {
			logger.Debug("session lookup fell through to memory:", err)
		}
	}

	if obj, ok := s.mem.Get(token); ok {
		session, ok := obj.(model.Session)
		if !ok {
			return nil
		}
		if session.IsExpired(time.Now()) {
			s.mem.Delete(token)
			return nil
		}
		return &session
	}
	return nil
}

// DestroySession removes the session from every tier. Best-effort: a
// record that is already gone is not an error.
func (s *SessionService) DestroySession(token string) {
	if db := database.GetDB(); db != nil {
		if err := db.Delete(&model.Session{}, "token = ?", token).Error; err != nil {
			logger.Debug("session delete skipped on primary store:", err)
		}
	}
	s.mem.Delete(token)
}

// DestroyUserSessions revokes every outstanding session of the user,
// from the primary store and from the in-process cache.
func (s *SessionService) DestroyUserSessions(userId int) {
	if db := database.GetDB(); db != nil {
		if err := db.Delete(&model.Session{}, "user_id = ?", userId).Error; err != nil {
			logger.Debug("session sweep skipped on primary store:", err)
		}
	}
	for token, item := range s.mem.Items() {
		if session, ok := item.Object.(model.Session); ok && session.UserId == userId {
			s.mem.Delete(token)
		}
	}
}

// ClearExpiredSessions removes expired records from the primary store
// and evicts expired cache entries. Run periodically by a job.
func (s *SessionService) ClearExpiredSessions() {
	if db := database.GetDB(); db != nil {
		if err := db.Delete(&model.Session{}, "expires_at < ?", time.Now()).Error; err != nil {
			logger.Debug("expired session sweep skipped on primary store:", err)
		}
	}
	s.mem.DeleteExpired()
}
