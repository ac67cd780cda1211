package app

import (
	"fmt"
	"net/http"
	"simpleauth/internal/app/deps"
	"simpleauth/internal/app/services"
	"simpleauth/internal/http/handlers/activate"
	"simpleauth/internal/http/handlers/auth"
	"simpleauth/internal/http/handlers/health"
	"simpleauth/internal/http/handlers/me"
	"simpleauth/internal/http/handlers/register"
	resendactivationcode "simpleauth/internal/http/handlers/resend_activation_code"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	usersRouter := chi.NewRouter()
	usersRouter.Method(http.MethodPost, "/", register.New(s.SignUpWithEmail, isTestMode))
	usersRouter.Method(http.MethodPatch, "/{userID:[0-9]+}", activate.New(s.ActivateUser))
	usersRouter.Method(http.MethodPost, "/{userID:[0-9]+}/codes", resendactivationcode.New(s.ResendActivationCode))
	usersRouter.With(auth.SetCredentialsToContext).Method(
		http.MethodGet,
		"/me",
		me.New(s.AuthenticateWithEmail),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/users", usersRouter)
	router.Method(http.MethodGet, "/health", health.New(deps.Logger, deps.DB))

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
