package me

import (
	"errors"
	"net/http"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/core/services"
	authenticatewithemail "simpleauth/internal/core/services/authenticate_with_email"
	"simpleauth/internal/http/handlers/auth"
	"simpleauth/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[authenticatewithemail.Input, authenticatewithemail.Result]
}

func New(
	service services.Service[authenticatewithemail.Input, authenticatewithemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	User response.User `json:"user"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	credentials, ok := auth.CredentialsFromContext(r.Context())
	if !ok {
		rw.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
		response.RenderUnauthorized(rw)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		authenticatewithemail.Input{Email: credentials.Email, Password: credentials.Password},
	)
	if errors.Is(err, user.ErrInvalidCredentials) {
		response.RenderUnauthorized(rw)
		return
	}
	if errors.Is(err, user.ErrUserIsNotActive) {
		response.RenderError(rw, "user is not active", http.StatusUnprocessableEntity)
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
