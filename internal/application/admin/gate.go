package admin

import (
	"context"
	"crypto/subtle"
	"strings"
	"sync"
	"unicode"
)

// PINLength is the number of digits in an admin PIN
const PINLength = 4

// DefaultPIN is the placeholder PIN used when none is configured
const DefaultPIN = "1234"

// Messages shown after a failed PIN attempt
const (
	ErrMsgIncorrectPIN   = "Incorrect PIN. Please try again."
	ErrMsgPINCheckFailed = "Unable to verify PIN. Please try again."
)

// Authenticator verifies an admin PIN
type Authenticator interface {
	Authenticate(ctx context.Context, pin string) (bool, error)
}

// StaticPINAuthenticator compares against a single configured PIN
type StaticPINAuthenticator struct {
	pin string
}

// NewStaticPINAuthenticator creates an authenticator for pin. An empty pin selects DefaultPIN.
func NewStaticPINAuthenticator(pin string) *StaticPINAuthenticator {
	if pin == "" {
		pin = DefaultPIN
	}
	return &StaticPINAuthenticator{pin: pin}
}

// Authenticate reports whether pin matches the configured PIN
func (a *StaticPINAuthenticator) Authenticate(_ context.Context, pin string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(pin), []byte(a.pin)) == 1, nil
}

// Gate is the session-scoped admin access flag
type Gate struct {
	auth Authenticator

	mu            sync.RWMutex
	input         string
	authenticated bool
	errMsg        string
}

// NewGate creates a locked gate
func NewGate(auth Authenticator) *Gate {
	return &Gate{auth: auth}
}

// SetInput replaces the PIN input. Non-digits are dropped and values longer
// than four digits are ignored, leaving the previous input in place.
func (g *Gate) SetInput(value string) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, value)

	g.mu.Lock()
	defer g.mu.Unlock()
	if len(digits) > PINLength {
		return
	}
	g.input = digits
	g.errMsg = ""
}

// Input returns the current PIN input
func (g *Gate) Input() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.input
}

// CanSubmit reports whether a full PIN has been entered
func (g *Gate) CanSubmit() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.input) == PINLength
}

// Submit checks the entered PIN. A mismatch sets the error and clears the input.
func (g *Gate) Submit(ctx context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.input) != PINLength {
		return false, nil
	}

	ok, err := g.auth.Authenticate(ctx, g.input)
	if err != nil {
		g.errMsg = ErrMsgPINCheckFailed
		return false, err
	}
	if !ok {
		g.errMsg = ErrMsgIncorrectPIN
		g.input = ""
		return false, nil
	}

	g.authenticated = true
	g.errMsg = ""
	return true, nil
}

// Authenticated reports whether the session has passed the gate
func (g *Gate) Authenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authenticated
}

// Error returns the last PIN error, if any
func (g *Gate) Error() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.errMsg
}

// Logout locks the gate and clears the input
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authenticated = false
	g.input = ""
	g.errMsg = ""
}
