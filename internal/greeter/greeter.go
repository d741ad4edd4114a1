// Package greeter serves a fixed hello page for every request.
package greeter

import (
	"io"
	"net/http"

	"github.com/f4ah6o/htmlserve/internal/log"
)

// Body is the page written for every request.
const Body = "<html><body><h1>Hello World!</h1></body></html>"

// Handler returns a handler that ignores method and path and always answers 200 with Body.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("Request headers: %v", r.Header)
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, Body)
	})
}
