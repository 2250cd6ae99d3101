package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// MaxRequestIDLength caps ids accepted from clients.
const MaxRequestIDLength = 128

// NewRequestIDContext returns a context carrying requestID. An empty or
// unusable id is replaced by a generated one.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	ctx, _ = ContextWithRequestID(ctx, requestID)
	return ctx
}

// ContextWithRequestID is NewRequestIDContext that also returns the id it
// stored, so callers can echo it back.
func ContextWithRequestID(ctx context.Context, requestID string) (context.Context, string) {
	if !ValidRequestID(requestID) {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID), requestID
}

// ValidRequestID accepts non-empty printable ASCII up to MaxRequestIDLength.
func ValidRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if c := id[i]; c < '!' || c > '~' {
			return false
		}
	}
	return true
}

// GetRequestID extracts the request id from ctx.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// GenerateRequestID returns a random UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID tags the logger with the request id from ctx, if any.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	id, ok := GetRequestID(ctx)
	if !ok {
		return l
	}
	return l.With(zap.String(RequestID, id))
}
