package email

import (
	"context"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/logging"
	"simpleauth/internal/core/domain/user"
)

// ConsoleSender logs the activation code instead of emailing it. Meant for
// development and test mode, where the log line stands in for the inbox.
type ConsoleSender struct {
	log logging.Logger
}

func NewConsoleSender(log logging.Logger) *ConsoleSender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &ConsoleSender{log: log}
}

func (s *ConsoleSender) SendActivationCode(ctx context.Context, u user.User, code user.Code) error {
	s.log.Info(
		ctx,
		"ACTIVATION EMAIL",
		logging.Entry("to", u.Email),
		logging.Entry("code", code),
	)
	return nil
}
