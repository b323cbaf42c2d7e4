package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := newApp(ctx)
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}
	defer app.log.Sync()

	runErr := make(chan error, 1)
	go func() {
		runErr <- app.run(ctx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-runErr:
		if err != nil {
			app.log.Fatal("service failed to start", zap.Error(err))
		}
	case sig := <-sigCh:
		cancel()
		app.shutdown(sig.String())
		if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
			app.log.Warn("run loop exited with error", zap.Error(err))
		}
	}
}
