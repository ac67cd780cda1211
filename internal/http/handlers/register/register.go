package register

import (
	"encoding/json"
	"io"
	"net/http"
	c "simpleauth/internal/core/domain/common"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/core/services"
	signupwithemail "simpleauth/internal/core/services/sign_up_with_email"
	"simpleauth/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service    services.Service[signupwithemail.Input, signupwithemail.Result]
	isTestMode bool
}

func New(
	service services.Service[signupwithemail.Input, signupwithemail.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		signupwithemail.Input{Email: c.NewEmail(input.Email), Password: user.RawPassword(input.Password)},
	)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	// The response is identical whether the user was created or the email
	// was already taken, so registration cannot probe for accounts.
	if h.isTestMode && result.Code.IsPresent {
		rw.Header().Set("x-test-activation-code", string(result.Code.Value.Code))
	}
	response.Render(rw, struct{}{}, http.StatusCreated)
}
