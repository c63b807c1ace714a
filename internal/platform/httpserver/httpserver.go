package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server for the risk API. The write timeout leaves room
// for a remote classifier call at its default timeout.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
