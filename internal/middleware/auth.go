package middleware

import (
	"errors"
	"net/http"

	"gadme-be/internal/apperr"
	"gadme-be/internal/auth"
	"gadme-be/internal/logger"
	"gadme-be/internal/transport"

	"go.uber.org/zap"
)

var (
	errTokenExpired = apperr.New(apperr.KindUnauthenticated, "TOKEN_EXPIRED", "Access token expired")
	errInvalidToken = apperr.New(apperr.KindUnauthenticated, "INVALID_TOKEN", "Invalid access token")
)

// Authenticate rejects requests without a valid access token and stores the
// caller's user id in the request context.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, claims, err := auth.ParseToken(secret, auth.ExtractAccessToken(r))
			if err != nil {
				logger.FromCtx(ctx).Debug("authentication failed",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				transport.WriteError(ctx, w, authError(err))
				return
			}

			ctx = auth.WithUser(ctx, userID, claims.Role)
			recordIdentity(ctx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authError(err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return apperr.ErrUnauthenticated
	case errors.Is(err, auth.ErrTokenExpired):
		return errTokenExpired
	default:
		return errInvalidToken
	}
}
