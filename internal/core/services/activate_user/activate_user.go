package activateuser

import (
	"context"
	"errors"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/logging"
	uow "simpleauth/internal/core/domain/unit_of_work"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/core/services"
	"time"
)

type Input struct {
	UserID user.ID
	Code   user.Code
}

type Result struct {
	User user.User
}

type service struct {
	log logging.Logger
	uow uow.UnitOfWork
	now func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log: log,
		uow: unitOfWork,
		now: now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	tx, err := s.uow.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not begin unit of work.",
			logging.Entry("userId", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}
	defer tx.Rollback(ctx)

	u, err := tx.Users().GetByID(ctx, input.UserID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for activation.",
			logging.Entry("userId", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if u.IsActive() {
		// Rejecting, not silently accepting: a stale or guessed code must
		// not look like a successful replay.
		return result, user.ErrUserAlreadyActive
	}

	code, err := tx.ActivationCodes().GetActiveForUser(ctx, u.ID)
	if errors.Is(err, user.ErrNoActiveCode) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get activation code.",
			logging.Entry("userId", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if code.Code != input.Code {
		return result, user.ErrInvalidActivationCode
	}

	now := s.now()
	if code.IsExpiredAt(now) {
		// The stale row is useless from here on, remove it so the user's
		// next resend starts from a clean slate.
		if _, err := tx.ActivationCodes().Delete(ctx, u.ID); err != nil {
			s.log.Error(
				ctx,
				"Could not delete expired activation code.",
				logging.Entry("userId", input.UserID),
				logging.Entry("err", err),
			)
			return result, err
		}
		if err := tx.Commit(ctx); err != nil {
			s.log.Error(
				ctx,
				"Could not commit unit of work.",
				logging.Entry("userId", input.UserID),
				logging.Entry("err", err),
			)
			return result, err
		}
		return result, user.ErrActivationCodeExpired
	}

	consumed, err := tx.ActivationCodes().Consume(ctx, u.ID, now)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not consume activation code.",
			logging.Entry("userId", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !consumed {
		// Lost a race with a concurrent activation or resend.
		return result, user.ErrNoActiveCode
	}

	activated, err := tx.Users().Activate(ctx, u.ID, now)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not activate user.",
			logging.Entry("userId", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error(
			ctx,
			"Could not commit unit of work.",
			logging.Entry("userId", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "User successfully activated.", logging.Entry("userId", activated.ID))
	return Result{User: activated}, nil
}
