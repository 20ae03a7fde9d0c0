package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Header carrying the hex digest on inbound webhook and sweep calls.
const Header = "X-Entro-Hash"

// Verifier checks the shared-secret signature external callers attach to
// webhook deliveries and sweep invocations.
type Verifier struct {
	Salt   string
	Secret string
}

// Sign returns the hex HMAC-SHA256 of "salt|data" under the secret.
func (v Verifier) Sign(data string) string {
	h := hmac.New(sha256.New, []byte(v.Secret))
	h.Write([]byte(v.Salt + "|" + data))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether the header digest matches the expected signature
// for data. Constant-time comparison.
func (v Verifier) Verify(data, headerValue string) bool {
	expected := v.Sign(data)
	return hmac.Equal([]byte(expected), []byte(headerValue))
}
