package uow

import (
	"context"
	"simpleauth/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository           *user.FakeUserRepository
	ActivationCodeRepository *user.FakeActivationCodeRepository
	WasRollbackCalled        bool
	WasCommitCalled          bool
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	activationCodeRepository *user.FakeActivationCodeRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:           userRepository,
		ActivationCodeRepository: activationCodeRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) ActivationCodes() user.ActivationCodeRepository {
	return c.ActivationCodeRepository
}

type FakeUnitOfWork struct {
	Context *FakeUnitOfWorkContext
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			user.NewFakeUserRepository(),
			user.NewFakeActivationCodeRepository(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	return u.Context, nil
}

func (u *FakeUnitOfWork) Users() *user.FakeUserRepository {
	return u.Context.UserRepository
}

func (u *FakeUnitOfWork) ActivationCodes() *user.FakeActivationCodeRepository {
	return u.Context.ActivationCodeRepository
}
