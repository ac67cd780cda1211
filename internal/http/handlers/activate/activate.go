package activate

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/core/services"
	activateuser "simpleauth/internal/core/services/activate_user"
	"simpleauth/internal/http/handlers/response"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[activateuser.Input, activateuser.Result]
}

func New(
	service services.Service[activateuser.Input, activateuser.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Code string `json:"code"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Code, validation.Required, validation.Length(4, 4), is.Digit),
	)
}

type Result struct {
	User response.User `json:"user"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawUserID := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		response.RenderNotFound(rw)
		return
	}

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
		activateuser.Input{UserID: user.ID(userID), Code: user.Code(input.Code)},
	)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderNotFound(rw)
		return
	}
	if errors.Is(err, user.ErrUserAlreadyActive) {
		response.RenderError(rw, "user is already active", http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, user.ErrNoActiveCode) || errors.Is(err, user.ErrInvalidActivationCode) {
		response.RenderError(rw, "invalid activation code", http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, user.ErrActivationCodeExpired) {
		response.RenderError(rw, "activation code has expired", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
