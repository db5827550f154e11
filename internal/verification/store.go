// Package verification keeps short-lived email verification codes.
package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Entry is a pending verification for one email address.
type Entry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the entry is no longer valid at now.
func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Store maps an email address to its pending verification. Implementations must be safe
// for concurrent use.
type Store interface {
	Save(ctx context.Context, email string, entry Entry) error
	// Get returns false when nothing is stored for email.
	Get(ctx context.Context, email string) (Entry, bool, error)
	Delete(ctx context.Context, email string) error
}

const codeSpace = 1000000

// GenerateCode returns a uniformly random six digit code; leading zeros are kept.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
