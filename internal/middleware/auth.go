package middleware

import (
	"context"
	"strings"
	"sync"

	"github.com/craftloop/backend/internal/model"
	"github.com/craftloop/backend/pkg/authenticator"
	"github.com/craftloop/backend/pkg/errorx"
	"github.com/craftloop/backend/pkg/router"
	"github.com/craftloop/backend/pkg/xcontext"
)

// AuthVerifier resolves the request user from a bearer token or the
// access token cookie and stamps it into the context.
type AuthVerifier struct {
	once   sync.Once
	engine authenticator.TokenEngine[model.AccessToken]
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		a.once.Do(func() {
			cfg := xcontext.Configs(ctx).Auth
			a.engine = authenticator.NewTokenEngine[model.AccessToken](
				cfg.TokenSecret, cfg.AccessToken.Expiration)
		})

		token := extractToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		accessToken, err := a.engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.TokenExpired, "Invalid or expired access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

func extractToken(ctx context.Context) string {
	req := router.GetRequest(ctx)
	if req == nil {
		return ""
	}

	authorization := req.Header.Get("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimPrefix(authorization, "Bearer ")
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
