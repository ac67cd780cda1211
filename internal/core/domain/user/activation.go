package user

import "context"

type ActivationCodeGenerator interface {
	GenerateActivationCode() Code
}

type ActivationCodeSender interface {
	SendActivationCode(ctx context.Context, user User, code Code) error
}
