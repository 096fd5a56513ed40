package service

import (
	"cms-ui/config"
	"cms-ui/database"
	"cms-ui/database/model"
	"cms-ui/logger"
	"cms-ui/storage"
	"cms-ui/util/common"
	"cms-ui/util/crypto"
)

// AuthService is the single entry point request handlers use: it
// composes the credential vault and the session manager.
type AuthService struct {
	userService    *UserService
	sessionService *SessionService
}

func NewAuthService(userService *UserService, sessionService *SessionService) *AuthService {
	return &AuthService{
		userService:    userService,
		sessionService: sessionService,
	}
}

// Authenticate verifies the credentials. The primary store is
// authoritative when it has the account; otherwise the file tier
// credentials and the configured default credentials open a degraded
// login path, lazily upserting the administrator back into the primary
// store without ever overwriting an existing password hash.
// Every failure surfaces as ErrUnauthorized so callers cannot tell a
// missing account from a wrong password.
func (s *AuthService) Authenticate(username string, password string) (*model.User, error) {
	user, err := s.userService.GetUserByUsername(username)
	if err == nil {
		if crypto.CheckPasswordHash(password, user.PasswordHash, user.PasswordSalt) {
			return user, nil
		}
		return nil, common.ErrUnauthorized
	}
	if !database.IsNotFound(err) {
		logger.Warning("primary store lookup failed, trying degraded login:", err)
	}

	if creds := storage.File().ReadCredentials(); creds != nil && creds.Username == username {
		if crypto.CheckPasswordHash(password, creds.PasswordHash, creds.PasswordSalt) {
			return s.adoptDegradedLogin(username, creds.PasswordHash, creds.PasswordSalt)
		}
		return nil, common.ErrUnauthorized
	}

	if username == config.GetDefaultUsername() && password == config.GetDefaultPassword() {
		hash, salt := crypto.HashPassword(password)
		return s.adoptDegradedLogin(username, hash, salt)
	}

	return nil, common.ErrUnauthorized
}

// adoptDegradedLogin upserts the administrator into the primary store
// after a successful degraded-path verification. When the upsert fails
// in a production deployment the login fails loudly: a session issued
// for an account other processes cannot see is worse than an error.
func (s *AuthService) adoptDegradedLogin(username string, hash string, salt string) (*model.User, error) {
	user, err := s.userService.UpsertAdmin(username, hash, salt)
	if err == nil {
		return user, nil
	}
	if config.IsProduction() {
		return nil, common.NewFatalError("administrator upsert failed in production", err)
	}
	logger.Warning("administrator upsert deferred, primary store unreachable:", err)
	// Single-admin deployment: the bootstrap account is the first row.
	return &model.User{Id: 1, Username: username}, nil
}

// Validate resolves a session token; nil means missing, revoked or
// expired.
func (s *AuthService) Validate(token string) *model.Session {
	return s.sessionService.GetSessionByToken(token)
}
