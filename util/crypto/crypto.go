// Package crypto provides password hashing and verification for the
// administrator account.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. N is the CPU/memory cost, sized so a single
// derivation stays well under 100ms on commodity hardware while still
// being expensive to brute-force.
const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 16
)

// HashPassword derives a hash from the password with a fresh random
// salt. It panics if the entropy source fails; there is no safe
// fallback for weakened randomness.
func HashPassword(password string) (hash string, salt string) {
	saltBytes := make([]byte, saltLen)
	if _, err := rand.Read(saltBytes); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	key, err := scrypt.Key([]byte(password), saltBytes, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		panic("scrypt failed: " + err.Error())
	}
	return hex.EncodeToString(key), hex.EncodeToString(saltBytes)
}

// CheckPasswordHash verifies the password against the stored hash and
// salt using a constant-time comparison. Any decode or derivation
// failure reads as a mismatch.
func CheckPasswordHash(password string, hash string, salt string) bool {
	saltBytes, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}
	key, err := scrypt.Key([]byte(password), saltBytes, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(key, want) == 1
}
