package user

import (
	"context"
	c "simpleauth/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UserRepository interface {
	// Create fails with ErrEmailAlreadyExists if the email is taken.
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// Activate sets the activation timestamp; fails with ErrUserDoesNotExist.
	Activate(ctx context.Context, id ID, at time.Time) (User, error)
}

type ActivationCodeRepository interface {
	// Put stores the code, replacing any existing row for the same user.
	Put(ctx context.Context, code ActivationCode) (ActivationCode, error)
	// GetActiveForUser returns the unconsumed code for the user or
	// ErrNoActiveCode. Expiry is the caller's concern.
	GetActiveForUser(ctx context.Context, userID ID) (ActivationCode, error)
	// Consume atomically marks the user's code consumed; false means there
	// was no unconsumed code to mark.
	Consume(ctx context.Context, userID ID, at time.Time) (bool, error)
	Delete(ctx context.Context, userID ID) (bool, error)
	// DeleteExpired removes unconsumed codes whose expiry has passed and
	// returns the number of rows removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
