package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/services"
	"gotodo/internal/todo/ports/repositories"
	"gotodo/pkg/logger"
)

const userColumns = "id, name, email, password_hash, created_at, updated_at"

const (
	queryFindUserByID    = "SELECT " + userColumns + " FROM users WHERE id = $1"
	queryFindUserByEmail = "SELECT " + userColumns + " FROM users WHERE email = $1"
	queryCreateUser      = `
        INSERT INTO users (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns
)

// UserRepository stores users in Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository returns a Postgres backed user repository.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// FindByID loads a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "FindByID", queryFindUserByID, id)
}

// FindByEmail loads a user, including the password hash, by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "FindByEmail", queryFindUserByEmail, email)
}

// findOne runs a single-row user lookup. No row maps to entities.ErrUserNotFound.
func (r *UserRepository) findOne(ctx context.Context, method, query string, arg string) (*entities.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err == nil {
		return user, nil
	}

	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debug(ctx, "no matching user")
		return nil, entities.ErrUserNotFound
	}
	log.Error(ctx, "user lookup failed", zap.Error(err))
	return nil, fmt.Errorf("user lookup (%s): %w", method, err)
}

// Create inserts a user. A taken email yields services.ErrEmailAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	created, err := scanUser(r.pool.QueryRow(ctx, queryCreateUser,
		user.Name,
		user.Email,
		user.PasswordHash,
	))
	if err != nil {
		if constraint, ok := violatedConstraint(err, pgUniqueViolation); ok && constraint == constraintUsersEmail {
			log.Debug(ctx, "email already registered")
			return nil, services.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
