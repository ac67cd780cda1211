package services

import (
	"simpleauth/internal/app/deps"
	"simpleauth/internal/core/services"
	activateuser "simpleauth/internal/core/services/activate_user"
	authenticatewithemail "simpleauth/internal/core/services/authenticate_with_email"
	deleteexpiredcodes "simpleauth/internal/core/services/delete_expired_codes"
	resendactivationcode "simpleauth/internal/core/services/resend_activation_code"
	sendactivationcode "simpleauth/internal/core/services/send_activation_code"
	signupwithemail "simpleauth/internal/core/services/sign_up_with_email"
)

type Services struct {
	SignUpWithEmail       services.Service[signupwithemail.Input, signupwithemail.Result]
	SendActivationCode    services.Service[sendactivationcode.Input, sendactivationcode.Result]
	ActivateUser          services.Service[activateuser.Input, activateuser.Result]
	ResendActivationCode  services.Service[resendactivationcode.Input, resendactivationcode.Result]
	AuthenticateWithEmail services.Service[authenticatewithemail.Input, authenticatewithemail.Result]
	DeleteExpiredCodes    services.Service[deleteexpiredcodes.Input, deleteexpiredcodes.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SendActivationCode = sendactivationcode.New(
		deps.Logger,
		deps.ActivationCodeRepository,
		deps.ActivationCodeGenerator,
		deps.ActivationCodeSender,
		deps.Now,
	)
	s.SignUpWithEmail = signupwithemail.NewWithActivationCodeSending(
		deps.Logger,
		s.SendActivationCode,
		signupwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.Now,
		),
	)
	s.ActivateUser = activateuser.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.Now,
	)
	s.ResendActivationCode = resendactivationcode.New(
		deps.Logger,
		deps.UserRepository,
		s.SendActivationCode,
	)
	s.AuthenticateWithEmail = authenticatewithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
	)
	s.DeleteExpiredCodes = deleteexpiredcodes.New(
		deps.Logger,
		deps.ActivationCodeRepository,
		deps.Now,
	)

	return s
}
