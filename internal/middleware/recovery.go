package middleware

import (
	"context"
	"fmt"
	"net/http"

	"gadme-be/internal/logger"
	"gadme-be/internal/metrics"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"
)

// panicLogger routes gorilla's recovery output into the request's zap logger.
type panicLogger struct {
	ctx context.Context
}

func (l panicLogger) Println(v ...any) {
	metrics.Default.Counter(metrics.HTTPPanics).Inc()
	logger.FromCtx(l.ctx).Error("panic recovered",
		zap.String("panic", fmt.Sprint(v...)),
		zap.Stack("stack"),
	)
}

// Recovery turns a handler panic into a 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.RecoveryHandler(
			handlers.RecoveryLogger(panicLogger{ctx: r.Context()}),
			handlers.PrintRecoveryStack(false),
		)(next).ServeHTTP(w, r)
	})
}
