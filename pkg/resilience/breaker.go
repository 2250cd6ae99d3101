package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"gotodo/pkg/logger"
)

// CircuitState is the breaker state.
type CircuitState int

// Breaker states.
const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Log messages.
const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitReject      = "circuit breaker rejected call"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig controls CircuitBreaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold consecutive failures open the breaker.
	ErrorThreshold int
	// Timeout is how long the breaker stays open before a trial call.
	Timeout time.Duration
	// SuccessThreshold trial successes close the breaker again.
	SuccessThreshold int
}

// DefaultCircuitBreakerConfig opens after 5 failures for 10s.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// BreakerOption customizes a CircuitBreaker.
type BreakerOption func(*CircuitBreaker)

// WithBreakerClock replaces time.Now.
func WithBreakerClock(now func() time.Time) BreakerOption {
	return func(cb *CircuitBreaker) { cb.now = now }
}

// CircuitBreaker stops calling a failing dependency for a while.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig
	now    func() time.Time

	mu        sync.Mutex
	state     CircuitState
	failures  int
	successes int
	changedAt time.Time
}

// NewCircuitBreaker builds a closed breaker. Zero fields fall back to
// DefaultCircuitBreakerConfig.
func NewCircuitBreaker(name string, config CircuitBreakerConfig, opts ...BreakerOption) *CircuitBreaker {
	def := DefaultCircuitBreakerConfig()
	if config.ErrorThreshold <= 0 {
		config.ErrorThreshold = def.ErrorThreshold
	}
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = def.SuccessThreshold
	}

	cb := &CircuitBreaker{name: name, config: config, now: time.Now}
	for _, opt := range opts {
		opt(cb)
	}
	cb.changedAt = cb.now()
	return cb
}

// Execute runs fn unless the breaker is open, and records its outcome.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.allow(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	cb.record(ctx, err)
	return err
}

// State returns the current state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) allow(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return true
	}
	if cb.now().Sub(cb.changedAt) >= cb.config.Timeout {
		cb.transition(ctx, StateHalfOpen)
		return true
	}

	logger.Log(ctx).Debug(ctx, LogCircuitReject, zap.String("circuit_breaker", cb.name))
	return false
}

func (cb *CircuitBreaker) record(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		if cb.state == StateHalfOpen || cb.failures >= cb.config.ErrorThreshold {
			cb.transition(ctx, StateOpen)
		}
		return
	}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.transition(ctx, StateClosed)
		}
	}
}

// transition must be called with mu held.
func (cb *CircuitBreaker) transition(ctx context.Context, to CircuitState) {
	from := cb.state
	cb.state = to
	cb.changedAt = cb.now()
	cb.failures = 0
	cb.successes = 0

	fields := []zap.Field{
		zap.String("circuit_breaker", cb.name),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	}
	if to == StateOpen {
		logger.Log(ctx).Warn(ctx, LogCircuitStateChange, fields...)
		return
	}
	logger.Log(ctx).Info(ctx, LogCircuitStateChange, fields...)
}
