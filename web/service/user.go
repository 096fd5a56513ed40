package service

import (
	"cms-ui/config"
	"cms-ui/database"
	"cms-ui/database/model"
	"cms-ui/logger"
	"cms-ui/storage"
	"cms-ui/util/common"
	"cms-ui/util/crypto"

	"gorm.io/gorm"
)

// UserService is the credential vault: it stores and verifies the
// administrator credentials and bootstraps the default account. It
// never persists or returns plaintext passwords.
type UserService struct {
	sessionService *SessionService
}

func NewUserService(sessionService *SessionService) *UserService {
	return &UserService{sessionService: sessionService}
}

func (s *UserService) GetFirstUser() (*model.User, error) {
	db := database.GetDB()
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}

	user := &model.User{}
	err := db.Model(model.User{}).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername looks the user up in the primary store. The error
// is gorm.ErrRecordNotFound when the row is absent and something else
// when the store is unreachable.
func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	db := database.GetDB()
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies the credentials against the primary store. Any
// failure reads as a mismatch; callers fall back to the degraded login
// path through AuthService.
func (s *UserService) CheckUser(username string, password string) *model.User {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		if !database.IsNotFound(err) {
			logger.Warning("check user err:", err)
		}
		return nil
	}
	if !crypto.CheckPasswordHash(password, user.PasswordHash, user.PasswordSalt) {
		return nil
	}
	return user
}

// EnsureDefaultAdmin bootstraps the default administrator. When no
// administrator exists in the primary store one is created with the
// configured default credentials; when the primary store is
// unreachable the same bootstrap runs against the file tier so login
// still works in degraded mode. Safe to call on every process start
// and login attempt: an existing account is never touched.
func (s *UserService) EnsureDefaultAdmin() error {
	db := database.GetDB()
	if db != nil {
		var count int64
		err := db.Model(model.User{}).Count(&count).Error
		if err == nil {
			if count > 0 {
				return nil
			}
			hash, salt := crypto.HashPassword(config.GetDefaultPassword())
			user := &model.User{
				Username:     config.GetDefaultUsername(),
				PasswordHash: hash,
				PasswordSalt: salt,
			}
			if err := db.Create(user).Error; err != nil {
				return err
			}
			// Keep the file tier copy in step for degraded login.
			storage.File().WriteCredentials(&storage.AdminCredentials{
				Username:     user.Username,
				PasswordHash: hash,
				PasswordSalt: salt,
			})
			logger.Infof("created default administrator %q", user.Username)
			return nil
		}
		logger.Warning("primary store unreachable during bootstrap:", err)
	}

	if creds := storage.File().ReadCredentials(); creds != nil {
		return nil
	}
	hash, salt := crypto.HashPassword(config.GetDefaultPassword())
	if !storage.File().WriteCredentials(&storage.AdminCredentials{
		Username:     config.GetDefaultUsername(),
		PasswordHash: hash,
		PasswordSalt: salt,
	}) {
		return common.NewError("bootstrap failed: no storage tier accepted the default administrator")
	}
	logger.Warning("primary store unreachable, default administrator bootstrapped into the file tier")
	return nil
}

// UpsertAdmin creates the administrator row with the given hash and
// salt unless an account with that username already exists; an
// existing password hash is never overwritten.
func (s *UserService) UpsertAdmin(username string, hash string, salt string) (*model.User, error) {
	db := database.GetDB()
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}

	user := &model.User{}
	err := db.Model(model.User{}).Where("username = ?", username).First(user).Error
	if err == nil {
		return user, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}
	user = &model.User{
		Username:     username,
		PasswordHash: hash,
		PasswordSalt: salt,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword re-verifies the current password, installs a new
// hash+salt pair in one update and revokes every outstanding session
// of the user.
func (s *UserService) ChangePassword(userId int, currentPassword string, newPassword string) error {
	if newPassword == "" {
		return common.NewValidationErrorf("new password can not be empty")
	}

	db := database.GetDB()
	if db == nil {
		// A degraded login must not mutate the file tier credentials
		// behind a password the primary store never saw.
		return common.NewError("primary store unreachable, password unchanged")
	}
	user := &model.User{}
	err := db.Model(model.User{}).Where("id = ?", userId).First(user).Error
	if err != nil {
		logger.Warning("change password lookup err:", err)
		return common.ErrUnauthorized
	}
	if !crypto.CheckPasswordHash(currentPassword, user.PasswordHash, user.PasswordSalt) {
		return common.ErrUnauthorized
	}

	hash, salt := crypto.HashPassword(newPassword)
	err = db.Model(model.User{}).
		Where("id = ?", userId).
		Updates(map[string]any{"password_hash": hash, "password_salt": salt}).
		Error
	if err != nil {
		return err
	}

	// The file tier copy must not resurrect the old password.
	storage.File().WriteCredentials(&storage.AdminCredentials{
		Username:     user.Username,
		PasswordHash: hash,
		PasswordSalt: salt,
	})

	s.sessionService.DestroyUserSessions(userId)
	return nil
}
