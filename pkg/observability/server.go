package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	metricsPath          = "/metrics"
	metricsReadTimeout   = 5 * time.Second
	metricsShutdownGrace = 2 * time.Second
)

// MetricsServer serves a metrics handler on its own listener.
type MetricsServer struct {
	server   *http.Server
	listener net.Listener
	logger   *slog.Logger
}

// ListenMetrics binds addr and prepares a server for handler under /metrics
// with a liveness probe under /healthz.
// The address is bound here, before Serve.
func ListenMetrics(addr string, handler http.Handler, logger *slog.Logger) (*MetricsServer, error) {
	var lc net.ListenConfig

	listener, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, handler)
	mux.Handle(healthPath, HealthHandler())

	return &MetricsServer{
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: metricsReadTimeout,
		},
		listener: listener,
		logger:   logger,
	}, nil
}

// Addr returns the bound address.
func (ms *MetricsServer) Addr() string {
	return ms.listener.Addr().String()
}

// Serve blocks serving scrapes until ctx is done, then shuts the server down.
func (ms *MetricsServer) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- ms.server.Serve(ms.listener)
	}()

	ms.logger.InfoContext(ctx, "serving metrics", "addr", ms.Addr(), "path", metricsPath)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve metrics: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsShutdownGrace)
	defer cancel()

	err := ms.server.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}

	return nil
}
