// Package verify authenticates signed webhook requests from Discord.
package verify

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
)

// Header names carrying the request signature.
const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// ErrInvalidPublicKey is returned when a public key is not 32 hex-encoded bytes.
var ErrInvalidPublicKey = errors.New("invalid ed25519 public key")

// Verifier checks request signatures against a decoded public key.
type Verifier struct {
	key ed25519.PublicKey
}

// NewVerifier decodes publicKeyHex and returns a Verifier for it.
func NewVerifier(publicKeyHex string) (*Verifier, error) {
	key, err := ParsePublicKey(publicKeyHex)
	if err != nil {
		return nil, err
	}
	return &Verifier{key: key}, nil
}

// ParsePublicKey decodes a hex-encoded ed25519 public key.
func ParsePublicKey(publicKeyHex string) (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidPublicKey, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// Request reports whether the signature headers in h sign body.
func (v *Verifier) Request(body []byte, h http.Header) bool {
	return v.Values(body, h.Values(HeaderSignature), h.Values(HeaderTimestamp))
}

// Values reports whether the given header values sign body. Each header must
// be present exactly once and non-empty. A nil Verifier rejects everything.
func (v *Verifier) Values(body []byte, signature, timestamp []string) bool {
	if v == nil {
		return false
	}

	sig, ts, ok := single(signature, timestamp)
	if !ok {
		return false
	}
	return check(v.key, body, sig, ts)
}

// Verify reports whether signatureHex is a valid ed25519 signature of
// timestamp followed by body under publicKeyHex. Malformed input of any kind
// yields false.
func Verify(body []byte, signature, timestamp []string, publicKeyHex string) bool {
	sig, ts, ok := single(signature, timestamp)
	if !ok {
		return false
	}
	key, err := ParsePublicKey(publicKeyHex)
	if err != nil {
		return false
	}
	return check(key, body, sig, ts)
}

func single(signature, timestamp []string) (string, string, bool) {
	if len(signature) != 1 || len(timestamp) != 1 {
		return "", "", false
	}
	if signature[0] == "" || timestamp[0] == "" {
		return "", "", false
	}
	return signature[0], timestamp[0], true
}

func check(key ed25519.PublicKey, body []byte, signatureHex, timestamp string) bool {
	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)

	return ed25519.Verify(key, msg, sig)
}
