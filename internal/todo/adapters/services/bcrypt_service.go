package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"gotodo/internal/todo/domain/services"
	svc "gotodo/internal/todo/ports/services"
)

// bcrypt ignores input past this many bytes.
const maxPasswordBytes = 72

const (
	errMsgHashPassword   = "hashing password"
	errMsgCompareHash    = "comparing password with hash"
	errMsgPasswordShort  = "password is too short"
	errMsgPasswordLong   = "password exceeds 72 bytes"
	errMsgMissingOperand = "password and hash are required"
)

// ServiceBcrypt implements PasswordService with bcrypt.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt returns a bcrypt password service. Out of range costs fall back
// to bcrypt.DefaultCost.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Hash salts and hashes password. Inputs shorter than
// services.MinPasswordLength or longer than 72 bytes are rejected with
// services.ErrInvalidPassword.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	switch n := len(password); {
	case n == 0:
		return "", services.ErrInvalidPassword
	case n < services.MinPasswordLength:
		return "", fmt.Errorf("%s: %w", errMsgPasswordShort, services.ErrInvalidPassword)
	case n > maxPasswordBytes:
		return "", fmt.Errorf("%s: %w", errMsgPasswordLong, services.ErrInvalidPassword)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgHashPassword, services.ErrHashingFailed, err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. A mismatch is (false, nil);
// a malformed hash is an error.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, fmt.Errorf("%s: %w", errMsgMissingOperand, services.ErrInvalidPassword)
	}

	switch err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", errMsgCompareHash, err)
	}
}
