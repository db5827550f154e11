// Package mailer delivers verification codes to members.
package mailer

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Sender delivers a verification code to an email address.
type Sender interface {
	SendVerificationCode(ctx context.Context, to, code string, ttl time.Duration) error
}

const verificationSubject = "StaffSync verification code"

func verificationBody(code string, ttl time.Duration) string {
	minutes := int(math.Ceil(ttl.Minutes()))
	return fmt.Sprintf("Your StaffSync verification code is %s.\n\nThe code expires in %d minutes.", code, minutes)
}
