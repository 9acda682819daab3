package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"vas_import/internal/handlers"
	"vas_import/internal/transport/auth"
)

type Server struct {
	httpServer *http.Server
}

// NewServer builds the route table. Everything except /health sits behind
// the bearer-token middleware.
func NewServer(port string, h *handlers.Handlers) *Server {
	mux := http.NewServeMux()

	if h != nil {
		mux.HandleFunc("/health", h.Health)

		protect := auth.TokenMiddleware(h.Tokens)
		mux.Handle("/import", protect(http.HandlerFunc(h.Import)))
		mux.Handle("/import/batch", protect(http.HandlerFunc(h.ImportBatch)))
		mux.Handle("/upload", protect(http.HandlerFunc(h.Upload)))
		mux.Handle("/vas-services/upload", protect(http.HandlerFunc(h.UploadStatement)))
		mux.Handle("/activity", protect(http.HandlerFunc(h.Activity)))
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shCtx)
	case err := <-errCh:
		return err
	}
}
