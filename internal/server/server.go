package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Dispatcher Dispatcher
	Assets     AssetSource
	Gatherer   prometheus.Gatherer
	Logger     *clog.Logger
	// TrustedProxies may set the client address through forwarding
	// headers. Empty means the connection's peer address is used.
	TrustedProxies []string
}

func NewRouter(opts Options) (*gin.Engine, error) {
	if opts.Logger == nil {
		opts.Logger = clog.DefaultLogger()
	}

	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	router.Use(gin.Recovery(), RequestLogger(opts.Logger))

	router.GET("/health", HealthCheck)
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	router.Any("/api", HandleAPI(opts.Dispatcher))
	router.NoRoute(HandleAsset(opts.Assets))
	return router, nil
}

// Serve runs handler on addr until ctx is cancelled, then drains in-flight
// requests.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		clog.FromContext(ctx).Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		clog.FromContext(ctx).Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
