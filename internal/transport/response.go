package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"gadme-be/internal/apperr"
	"gadme-be/internal/logger"

	"go.uber.org/zap"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Warn("failed to encode response", zap.Error(err))
	}
}

// WriteError renders err as {"error":true,"message":...,"code":...} with any
// details merged in. Errors outside the apperr taxonomy are logged and
// reported as a generic internal error.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr, ok := asAppError(err)
	if !ok || appErr.Kind == apperr.KindInternal {
		logger.FromCtx(ctx).Error("request failed", zap.Error(err))
		appErr = apperr.ErrInternal
	} else if appErr.Kind == apperr.KindRetryable {
		logger.FromCtx(ctx).Warn("request conflicted", zap.Error(err))
	}

	body := map[string]any{
		"error":   true,
		"message": appErr.Message,
		"code":    appErr.Code,
	}
	for k, v := range appErr.Details {
		if _, reserved := body[k]; !reserved {
			body[k] = v
		}
	}

	WriteJSON(w, appErr.Kind.HTTPStatus(), body)
}

func asAppError(err error) (*apperr.Error, bool) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
