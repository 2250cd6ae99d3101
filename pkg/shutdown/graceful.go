// Package shutdown blocks until SIGINT/SIGTERM and then runs cleanup hooks.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gotodo/pkg/logger"
)

const (
	logSignalReceived = "shutdown signal received"
	logContextDone    = "shutdown triggered by context"
	logHookFailed     = "shutdown hook failed"
	logTimeout        = "shutdown timed out before all hooks finished"
)

// Hook releases one resource. It must honour ctx cancellation.
type Hook func(ctx context.Context) error

// Wait blocks until a termination signal arrives or ctx is done, then runs
// all hooks concurrently within timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info(ctx, logSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, logContextDone)
	}

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wgp sync.WaitGroup
	for _, hook := range hooks {
		wgp.Add(1)
		go func(fn Hook) {
			defer wgp.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, logHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(hookCtx, logTimeout, zap.Duration("timeout", timeout))
	}
}
