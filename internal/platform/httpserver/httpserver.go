package httpserver

import (
	"net/http"
	"time"
)

// New builds the back-office HTTP server. Header and idle timeouts are fixed
// here so every deployment gets the same slow-client protection; request
// deadlines belong to the handlers.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
