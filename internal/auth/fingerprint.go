package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

const fingerprintLen = 16

// Fingerprinter derives a keyed, non-reversible marker for a submitted
// password so repeated guesses can be correlated without storing them.
type Fingerprinter struct {
	key []byte
}

// NewFingerprinter creates a Fingerprinter keyed by secret
func NewFingerprinter(secret string) *Fingerprinter {
	return &Fingerprinter{key: []byte(secret)}
}

// Fingerprint returns a truncated hex HMAC-SHA256 of password, or "" when
// no password was submitted.
func (f *Fingerprinter) Fingerprint(password string) string {
	if password == "" {
		return ""
	}
	mac := hmac.New(sha256.New, f.key)
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))[:fingerprintLen]
}
