package resendactivationcode

import (
	"errors"
	"net/http"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/user"
	"simpleauth/internal/core/services"
	resendactivationcode "simpleauth/internal/core/services/resend_activation_code"
	"simpleauth/internal/http/handlers/response"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[resendactivationcode.Input, resendactivationcode.Result]
}

func New(
	service services.Service[resendactivationcode.Input, resendactivationcode.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawUserID := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		response.RenderNotFound(rw)
		return
	}

	_, err = h.service.Run(r.Context(), resendactivationcode.Input{UserID: user.ID(userID)})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderNotFound(rw)
		return
	}
	if errors.Is(err, user.ErrUserAlreadyActive) {
		response.RenderError(rw, "user is already active", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, struct{}{}, http.StatusAccepted)
}
