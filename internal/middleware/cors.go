package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors lets a front end served from another origin (a dev server, a file://
// page) drive the game.
func Cors(allowedOrigins ...string) Middleware {
	options := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedHeaders: []string{"*"},
	}
	if len(allowedOrigins) == 0 {
		options.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	return cors.New(options).Handler
}
