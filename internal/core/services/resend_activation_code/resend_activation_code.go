package resendactivationcode

import (
	"context"
	"errors"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/logging"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/core/services"
	sendactivationcode "simpleauth/internal/core/services/send_activation_code"
)

type Input struct {
	UserID user.ID
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	sender         services.Service[sendactivationcode.Input, sendactivationcode.Result]
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sender services.Service[sendactivationcode.Input, sendactivationcode.Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		sender:         sender,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByID(ctx, input.UserID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for activation code resend.",
			logging.Entry("userId", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if u.IsActive() {
		return result, user.ErrUserAlreadyActive
	}

	// The previous code is replaced, not kept as a fallback.
	if _, err := s.sender.Run(ctx, sendactivationcode.Input{User: u}); err != nil {
		return result, err
	}
	return result, nil
}
