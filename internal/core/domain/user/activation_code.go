package user

import (
	c "simpleauth/internal/core/domain/common"
	"time"
)

// CodeTTL is how long an activation code stays valid after issuance.
const CodeTTL = time.Minute

// Code is a 4-digit numeric activation code, leading zeros significant.
type Code string

type ActivationCode struct {
	UserID     ID
	Code       Code
	CreatedAt  time.Time
	ExpiresAt  time.Time
	ConsumedAt c.Optional[time.Time]
}

// NewActivationCode derives the expiry from the creation time; there is no
// other way to construct a code with a different TTL.
func NewActivationCode(userID ID, code Code, now time.Time) ActivationCode {
	return ActivationCode{
		UserID:    userID,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(CodeTTL),
	}
}

// IsExpiredAt treats the boundary as expired: a code is already invalid at
// the exact expiry instant.
func (a *ActivationCode) IsExpiredAt(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}

func (a *ActivationCode) IsConsumed() bool {
	return a.ConsumedAt.IsPresent
}
