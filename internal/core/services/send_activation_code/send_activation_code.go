package sendactivationcode

import (
	"context"
	"errors"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/logging"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/core/services"
	"time"
)

type Input struct {
	User user.User
}

type Result struct {
	Code user.ActivationCode
}

// service issues a fresh activation code for a user: it generates the value,
// replaces whatever code row the user had, and dispatches the new value.
// Registration and resend both go through here so the two paths cannot
// diverge.
type service struct {
	log            logging.Logger
	codeRepository user.ActivationCodeRepository
	codeGenerator  user.ActivationCodeGenerator
	codeSender     user.ActivationCodeSender
	now            func() time.Time
}

func New(
	log logging.Logger,
	codeRepository user.ActivationCodeRepository,
	codeGenerator user.ActivationCodeGenerator,
	codeSender user.ActivationCodeSender,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if codeRepository == nil {
		panic(e.NewNilArgumentError("codeRepository"))
	}
	if codeGenerator == nil {
		panic(e.NewNilArgumentError("codeGenerator"))
	}
	if codeSender == nil {
		panic(e.NewNilArgumentError("codeSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		codeRepository: codeRepository,
		codeGenerator:  codeGenerator,
		codeSender:     codeSender,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	code := user.NewActivationCode(input.User.ID, s.codeGenerator.GenerateActivationCode(), s.now())

	code, err = s.codeRepository.Put(ctx, code)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not store activation code.",
			logging.Entry("userId", input.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// Delivery failure must not fail the operation: the user can always
	// request a resend, retrying delivery is out of this service's hands.
	if err := s.codeSender.SendActivationCode(ctx, input.User, code.Code); err != nil {
		s.log.Error(
			ctx,
			"Could not send activation code.",
			logging.Entry("userId", input.User.ID),
			logging.Entry("err", err),
		)
	} else {
		s.log.Info(
			ctx,
			"Activation code has been sent to the user.",
			logging.Entry("userId", input.User.ID),
		)
	}

	return Result{Code: code}, nil
}
