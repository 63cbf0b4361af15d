package main

import (
	"crypto/tls"
	"log"
	"net"
	"net/http"
)

// StartHTTPServer starts the listener on a background goroutine, wrapped in
// TLS when a config is given. It returns the listener so the caller can
// manage lifecycle if needed; the foreground stays free for operator input.
func StartHTTPServer(addr string, handler http.Handler, tlsConf *tls.Config, logger *log.Logger) (net.Listener, error) {
	srv := &http.Server{Handler: handler}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if tlsConf != nil {
		ln = tls.NewListener(ln, tlsConf)
	}
	go func() {
		if logger != nil {
			logger.Printf("listening on %s", addr)
		}
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Printf("serve error: %v", err)
			}
		}
	}()
	return ln, nil
}
