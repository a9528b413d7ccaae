// Package formtoken issues and verifies the signed tokens that bind a form
// render to a single submission window.
//
// A token is "<unix-timestamp>.<signature>" where the signature is
// HMAC-SHA256 over the timestamp string with a process-wide secret. Tokens
// carry no server-side state: validity is a function of the token string,
// the current time and the secret alone.
package formtoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// DefaultTTL is the maximum accepted token age.
const DefaultTTL = 30 * time.Minute

// Issuer mints and verifies form tokens for a fixed secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates an Issuer with the default TTL.
func New(secret string) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
}

// Issue returns a fresh token stamped with the current time.
func (i *Issuer) Issue() string {
	ts := strconv.FormatInt(i.now().Unix(), 10)
	return ts + "." + i.sign(ts)
}

// Verify reports whether token is well formed, within its lifetime and
// carries a valid signature. Malformed input is rejected, never a panic.
func (i *Issuer) Verify(token string) bool {
	tsRaw, sig, found := strings.Cut(token, ".")
	if !found {
		return false
	}
	ts, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil {
		return false
	}

	now := i.now().Unix()
	if ts > now || now-ts > int64(i.ttl/time.Second) {
		return false
	}

	// hmac.Equal compares in constant time.
	return hmac.Equal([]byte(i.sign(tsRaw)), []byte(sig))
}

// sign computes the hex HMAC-SHA256 signature over the raw timestamp string.
// The raw string is signed, not the parsed value, so a re-encoded timestamp
// ("0123" for "123") never verifies.
func (i *Issuer) sign(ts string) string {
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(ts))
	return hex.EncodeToString(mac.Sum(nil))
}
