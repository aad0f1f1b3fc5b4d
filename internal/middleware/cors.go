package middleware

import (
	"net/http"

	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// Cors wraps the whole router, so preflight requests are answered before route
// matching. An empty allowedOrigins list allows all origins.
func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		log.Warnln("CORS: no allowed origins configured, allowing all")
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			AuthTokenHeader,
			"Mcp-Protocol-Version",
			"Mcp-Session-Id",
		},
		ExposedHeaders: []string{"Mcp-Session-Id"},
		MaxAge:         300,
	})

	return c.Handler
}
