// Package random provides utilities for generating random tokens.
package random

import (
	"crypto/rand"
	"encoding/hex"
)

// Token generates an opaque unguessable session token with n bytes of
// entropy, hex encoded. It panics if the entropy source fails.
func Token(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
