// Package auth is the pass/fail gate every request clears before any
// handler logic runs: a caller-supplied nonce tied to a capability.
// The controller consumes only the Verifier interface.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// Capability names the permission a route requires.
const CapabilityManageSessions = "manage_sessions"

// ErrInvalidNonce is returned for an absent, expired or forged nonce.
var ErrInvalidNonce = errors.New("invalid or expired nonce")

// Verifier authorizes a request. Implementations are external to the
// controller; it only cares about pass/fail.
type Verifier interface {
	Verify(nonce, capability string) error
}

// NonceVerifier issues and checks windowed HMAC nonces: the nonce is an
// HMAC of the capability and a coarse time tick, so it stays valid for
// the current and the previous window and nothing has to be stored
// server-side.
type NonceVerifier struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewNonceVerifier creates a verifier. lifetime is the total validity
// span of a nonce; it covers two ticks of lifetime/2 each.
func NewNonceVerifier(secret string, lifetime time.Duration) *NonceVerifier {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &NonceVerifier{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Mint produces a nonce for the given capability valid in the current
// window.
func (v *NonceVerifier) Mint(capability string) string {
	return v.sign(capability, v.tick())
}

// Verify checks a nonce against the current and previous window.
func (v *NonceVerifier) Verify(nonce, capability string) error {
	if nonce == "" {
		return ErrInvalidNonce
	}
	tick := v.tick()
	for _, t := range []int64{tick, tick - 1} {
		if hmac.Equal([]byte(nonce), []byte(v.sign(capability, t))) {
			return nil
		}
	}
	return ErrInvalidNonce
}

func (v *NonceVerifier) tick() int64 {
	half := v.lifetime / 2
	return v.now().UnixNano() / int64(half)
}

func (v *NonceVerifier) sign(capability string, tick int64) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(capability))
	mac.Write([]byte{'|'})
	mac.Write([]byte(hex.EncodeToString([]byte{
		byte(tick >> 56), byte(tick >> 48), byte(tick >> 40), byte(tick >> 32),
		byte(tick >> 24), byte(tick >> 16), byte(tick >> 8), byte(tick),
	})))
	sum := mac.Sum(nil)
	// Short token like a WP nonce; 10 hex chars is plenty for a gate
	// that also requires the shared secret.
	return hex.EncodeToString(sum)[:10]
}
