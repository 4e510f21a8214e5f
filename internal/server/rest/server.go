// Package rest exposes the user and investment services over HTTP/JSON.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/investkeeper/internal/logging"
	"github.com/dmitrijs2005/investkeeper/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	address     string
	users       *services.UserService
	investments *services.InvestmentService
	logger      logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, is *services.InvestmentService) *HTTPServer {
	return &HTTPServer{
		address:     a,
		logger:      l.With("module", "http_server"),
		users:       us,
		investments: is,
	}
}

// Handler returns the routed API with its middleware chain.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", s.ping)

	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/login", s.login)

	mux.Handle("GET /api/investments", s.authenticated(s.listInvestments))
	mux.Handle("POST /api/investments", s.authenticated(s.createInvestment))
	mux.Handle("GET /api/investments/{id}", s.authenticated(s.getInvestment))
	mux.Handle("PUT /api/investments/{id}", s.authenticated(s.updateInvestment))
	mux.Handle("DELETE /api/investments/{id}", s.authenticated(s.deleteInvestment))

	return s.withRequestID(s.withAccessLog(mux))
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

// serve runs the server on listen. A serve failure also stops the
// shutdown watcher before the error is returned.
func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		<-stopped
		return err
	}

	return <-stopped
}
