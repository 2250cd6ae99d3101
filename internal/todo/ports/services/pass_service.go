// Package services declares the password and token ports.
package services

import "context"

// PasswordService hashes and verifies passwords.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	Verify(ctx context.Context, password, hash string) (bool, error)
}
