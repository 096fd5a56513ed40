package model

import "time"

// User is the administrator account. Exactly one is expected in normal
// operation, created by bootstrap; the model does not forbid more.
type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash"`
	PasswordSalt string `json:"-" gorm:"column:password_salt"`
}

// Session is a server-side login session. The token is the capability
// held by the client; the record is gone once revoked or expired.
type Session struct {
	Token     string    `json:"token" gorm:"primaryKey;size:64"`
	UserId    int       `json:"userId" gorm:"index"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the session is past its expiry time.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Setting stores one scalar configuration value. Structured documents
// (the navigation list) are serialized whole under a reserved key.
type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" gorm:"uniqueIndex;size:128"`
	Value string `json:"value" gorm:"type:text"`
}

// Category is a structured site taxonomy entry managed by the panel.
type Category struct {
	Id       string `json:"id" form:"id" gorm:"primaryKey;size:36"`
	Name     string `json:"name" form:"name" gorm:"not null"`
	Slug     string `json:"slug" form:"slug" gorm:"uniqueIndex"`
	Position int    `json:"position" form:"position" gorm:"default:0"`
}
