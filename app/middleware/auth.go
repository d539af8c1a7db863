package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/km-arc/go-starter/framework/config"
	gohttp "github.com/km-arc/go-starter/framework/http"
	"github.com/km-arc/go-starter/framework/routing"
)

// Auth rejects requests whose bearer token does not equal APP_KEY.
// With no APP_KEY configured every request is rejected.
type Auth struct {
	key string
}

func NewAuth(cfg *config.Config) *Auth {
	return &Auth{key: cfg.App.Key}
}

func (m *Auth) Handle(w http.ResponseWriter, r *http.Request, next routing.Next) error {
	token := gohttp.NewRequest(r).BearerToken()
	if m.key == "" || subtle.ConstantTimeCompare([]byte(token), []byte(m.key)) != 1 {
		gohttp.NewResponse(w).Unauthorized()
		return nil
	}
	return next(w, r)
}
