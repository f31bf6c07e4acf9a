package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

var (
	corsMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete,
	}
	corsHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
)

// CORS allows credentialed requests from the configured origins. Only real
// preflights (OPTIONS with Access-Control-Request-Method) are answered here;
// any other OPTIONS request is routed like a normal request.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}

	opts := cors.Options{
		AllowedOrigins:       allowed,
		AllowedMethods:       corsMethods,
		AllowedHeaders:       corsHeaders,
		ExposedHeaders:       []string{"X-Request-ID"},
		AllowCredentials:     true,
		OptionsSuccessStatus: http.StatusNoContent,
	}
	if len(allowed) == 0 {
		// rs/cors reads an empty list as "any origin"; no origins means none.
		opts.AllowOriginFunc = func(string) bool { return false }
	}
	return cors.New(opts).Handler
}
