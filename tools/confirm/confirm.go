/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package confirm

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidToken is wrapped by every verification failure of the HMAC gate.
var ErrInvalidToken = errors.New("invalid confirmation token")

// Ref identifies the pull request an analysis was fetched for.
type Ref struct {
	Owner  string
	Repo   string
	Number int
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// Gate decides whether a publish request carries enough confirmation.
// Implementations must not keep per-request state between calls.
type Gate interface {
	// Issue returns the token to hand back with a fetched analysis,
	// or "" when the gate does not use tokens.
	Issue(ref Ref) string
	// Verify checks a token presented with a publish request.
	Verify(token string) error
	// Required reports whether publish calls must present a token.
	Required() bool
}

// Open returns the stateless gate that accepts every publish request.
// Confirmation is left to the conversation between the caller and its user.
func Open() Gate { return openGate{} }

type openGate struct{}

func (openGate) Issue(Ref) string    { return "" }
func (openGate) Verify(string) error { return nil }
func (openGate) Required() bool      { return false }

// hmacGate signs the fetched reference and issue time. Verification needs
// only the secret, so tokens survive restarts and nothing is stored.
type hmacGate struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ Gate = (*hmacGate)(nil)

// NewHMAC returns a gate that issues tokens signed with secret and requires
// a valid, unexpired token on publish.
func NewHMAC(secret []byte, opts ...Option) (Gate, error) {
	if len(secret) == 0 {
		return nil, errors.New("confirmation secret must not be empty")
	}
	g := &hmacGate{
		secret: secret,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *hmacGate) Issue(ref Ref) string {
	payload := ref.String() + "|" + strconv.FormatInt(g.now().Unix(), 10)
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(payload)) + "." + enc.EncodeToString(g.sign(payload))
}

func (g *hmacGate) Verify(token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidToken)
	}
	encPayload, encSig, ok := strings.Cut(token, ".")
	if !ok {
		return fmt.Errorf("%w: malformed token", ErrInvalidToken)
	}

	enc := base64.RawURLEncoding
	payload, err := enc.DecodeString(encPayload)
	if err != nil {
		return fmt.Errorf("%w: decoding payload: %v", ErrInvalidToken, err)
	}
	sig, err := enc.DecodeString(encSig)
	if err != nil {
		return fmt.Errorf("%w: decoding signature: %v", ErrInvalidToken, err)
	}
	if !hmac.Equal(sig, g.sign(string(payload))) {
		return fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	}

	_, issued, ok := strings.Cut(string(payload), "|")
	if !ok {
		return fmt.Errorf("%w: missing issue time", ErrInvalidToken)
	}
	unix, err := strconv.ParseInt(issued, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad issue time: %v", ErrInvalidToken, err)
	}
	if age := g.now().Sub(time.Unix(unix, 0)); age > g.ttl {
		return fmt.Errorf("%w: expired %v ago", ErrInvalidToken, (age - g.ttl).Round(time.Second))
	}
	return nil
}

func (g *hmacGate) Required() bool { return true }

func (g *hmacGate) sign(payload string) []byte {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}
