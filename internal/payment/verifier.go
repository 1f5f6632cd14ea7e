// Package payment talks to the payment provider: it creates orders via
// the provider's HTTP API and verifies the signature the provider
// issues when a payment completes.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrSignatureMismatch is returned when a payment completion claim was
// not signed with the shared secret. The expected signature is never
// included in the error.
var ErrSignatureMismatch = errors.New("payment signature mismatch")

// Verifier checks payment completion claims against the shared secret.
// Verification is stateless: validity is a pure function of the order
// ID, payment ID, and secret — no stored order state is consulted.
type Verifier struct {
	secret []byte
}

// NewVerifier returns a verifier for the given provider key secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify recomputes the provider signature for the given order and
// payment IDs and compares it to the claimed one in constant time.
// A mismatch returns ErrSignatureMismatch.
func (v *Verifier) Verify(orderID, paymentID, claimedSignature string) error {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(claimedSignature)) {
		return ErrSignatureMismatch
	}
	return nil
}
