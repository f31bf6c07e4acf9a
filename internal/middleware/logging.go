package middleware

import (
	"context"
	"net/http"

	"gadme-be/internal/auth"
	"gadme-be/internal/logger"
	"gadme-be/internal/metrics"

	"go.uber.org/zap"
)

// responseRecorder captures the HTTP status code.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

type slotKey struct{}

// identitySlot is filled in by Authenticate, which runs further down the
// chain, so the access log can report the caller.
type identitySlot struct {
	userID string
	role   string
}

func withIdentitySlot(ctx context.Context) (context.Context, *identitySlot) {
	slot := &identitySlot{}
	return context.WithValue(ctx, slotKey{}, slot), slot
}

func recordIdentity(ctx context.Context) {
	slot, ok := ctx.Value(slotKey{}).(*identitySlot)
	if !ok {
		return
	}
	if id, ok := auth.UserIDFrom(ctx); ok {
		slot.userID = id.String()
	}
	slot.role = auth.RoleFrom(ctx)
}

// AccessLog logs every HTTP request.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.StartTimer()

		ctx, slot := withIdentitySlot(r.Context())
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		metrics.Default.Counter(metrics.HTTPRequests).Inc()
		if rec.statusCode >= http.StatusInternalServerError {
			metrics.Default.Counter(metrics.HTTPServerErrors).Inc()
		}

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.statusCode),
			zap.Duration("duration", timer.Duration()),
			zap.String("remote_ip", r.RemoteAddr),
		}
		if slot.userID != "" {
			fields = append(fields, zap.String("user_id", slot.userID))
		}
		if slot.role != "" {
			fields = append(fields, zap.String("role", slot.role))
		}

		logger.FromCtx(r.Context()).Info("HTTP Request", fields...)
	})
}
