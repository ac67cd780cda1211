package uow

import (
	"context"
	"simpleauth/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	ActivationCodes() user.ActivationCodeRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
