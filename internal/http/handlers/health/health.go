package health

import (
	"context"
	"net/http"
	e "simpleauth/internal/core/domain/errors"
	"simpleauth/internal/core/domain/logging"
	"simpleauth/internal/http/handlers/response"
	"time"
)

const PING_TIMEOUT = 3 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log logging.Logger
	db  Pinger
}

func New(log logging.Logger, db Pinger) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &Handler{log: log, db: db}
}

type Result struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), PING_TIMEOUT)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logging.Error(ctx, h.log, err)
		response.Render(
			rw,
			Result{Status: "error", Database: "unavailable"},
			http.StatusServiceUnavailable,
		)
		return
	}

	response.Render(rw, Result{Status: "ok", Database: "ok"}, http.StatusOK)
}
