package shutdown_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/pkg/shutdown"
)

func TestWaitExecutesHooksOnSignal(t *testing.T) {
	hook1Called := make(chan struct{})
	hook2Called := make(chan struct{})

	go shutdown.Wait(context.Background(), time.Second,
		func(context.Context) error { close(hook1Called); return nil },
		func(context.Context) error { close(hook2Called); return nil },
	)

	time.Sleep(100 * time.Millisecond)

	process, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, process.Signal(syscall.SIGTERM))

	for i, ch := range []chan struct{}{hook1Called, hook2Called} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("hook %d was not called", i+1)
		}
	}
}

func TestWaitOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	done := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, time.Second,
			func(context.Context) error { calls.Add(1); return nil },
			func(context.Context) error { calls.Add(1); return errors.New("close failed") },
		)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancellation")
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestWaitRespectsTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var completed atomic.Bool

	slowHook := func(hookCtx context.Context) error {
		select {
		case <-time.After(2 * time.Second):
			completed.Store(true)
			return nil
		case <-hookCtx.Done():
			return hookCtx.Err()
		}
	}

	start := time.Now()
	done := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, 300*time.Millisecond, slowHook)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Wait did not return within the expected time")
	}

	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, completed.Load())
}
