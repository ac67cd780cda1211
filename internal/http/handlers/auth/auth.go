package auth

import (
	"context"
	"net/http"
	c "simpleauth/internal/core/domain/common"
	"simpleauth/internal/core/domain/user"
)

type contextKey string

const CONTEXT_CREDENTIALS_KEY = contextKey("auth-credentials")

const CREDENTIAL_MAX_LEN = 1024

type Credentials struct {
	Email    c.Email
	Password user.RawPassword
}

func ParseCredentials(r *http.Request) (credentials Credentials, ok bool) {
	email, password, ok := r.BasicAuth()
	if !ok {
		return credentials, false
	}
	if len(email) > CREDENTIAL_MAX_LEN || len(password) > CREDENTIAL_MAX_LEN {
		return credentials, false
	}
	return Credentials{
		Email:    c.NewEmail(email),
		Password: user.RawPassword(password),
	}, true
}

func SetCredentialsToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credentials, ok := ParseCredentials(r)
		if ok {
			ctx := context.WithValue(r.Context(), CONTEXT_CREDENTIALS_KEY, credentials)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func CredentialsFromContext(ctx context.Context) (credentials Credentials, ok bool) {
	credentials, ok = ctx.Value(CONTEXT_CREDENTIALS_KEY).(Credentials)
	return credentials, ok
}
