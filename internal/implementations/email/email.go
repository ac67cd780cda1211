package email

import (
	"context"
	"encoding/json"

	"simpleauth/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type activationTemplateParams struct {
	ActivationCode string `json:"activation_code"`
}

type SesSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender             string
	activationTemplate string
}

func NewSesSender(
	awsConfig aws.Config,
	sender string,
	activationTemplate string,
) *SesSender {
	return &SesSender{
		ses:                ses.NewFromConfig(awsConfig),
		sender:             sender,
		activationTemplate: activationTemplate,
	}
}

func (s *SesSender) SendActivationCode(ctx context.Context, u user.User, code user.Code) error {
	templateParamsBytes, err := json.Marshal(
		activationTemplateParams{ActivationCode: string(code)},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.activationTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}
