package pprof

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"time"

	"go.uber.org/zap"
)

// Serve runs the pprof endpoint until ctx is cancelled.
func Serve(ctx context.Context, log *zap.Logger, addr string) {
	srv := &http.Server{Addr: addr, Handler: http.DefaultServeMux}

	go func() {
		log.Info("pprof server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("pprof server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
