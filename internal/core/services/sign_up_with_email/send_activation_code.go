package signupwithemail

import (
	"context"
	"errors"
	c "simpleauth/internal/core/domain/common"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/logging"
	"simpleauth/internal/core/services"
	sendactivationcode "simpleauth/internal/core/services/send_activation_code"
)

type serviceWithActivationCodeSending struct {
	log    logging.Logger
	sender services.Service[sendactivationcode.Input, sendactivationcode.Result]
	inner  services.Service[Input, Result]
}

// NewWithActivationCodeSending issues the first activation code after a
// successful sign-up. Absorbed duplicate registrations pass through without
// a new code, so an existing account never gets poked by a stranger.
func NewWithActivationCodeSending(
	log logging.Logger,
	sender services.Service[sendactivationcode.Input, sendactivationcode.Result],
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithActivationCodeSending{
		log:    log,
		sender: sender,
		inner:  inner,
	}
}

func (s *serviceWithActivationCodeSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending activation code.", logging.Entry("err", err))
		return result, err
	}
	if !result.Created {
		return result, nil
	}

	sent, err := s.sender.Run(ctx, sendactivationcode.Input{User: result.User})
	if err != nil {
		return result, err
	}
	result.Code = c.NewOptional(sent.Code, true)
	return result, nil
}
