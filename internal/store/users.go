package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/aurachat/aura/backend/internal/model/user"
)

// CreateUser registers a new account. The email must not already be in use.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string) (user.User, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email,
	).Scan(&exists)
	if err != nil {
		return user.User{}, wrapError("create user", err)
	}
	if exists > 0 {
		return user.User{}, ErrEmailTaken
	}

	u := user.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		return user.User{}, wrapError("create user", err)
	}
	return u, nil
}

// UserByEmail looks up an account for the login flow.
func (s *Store) UserByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, ErrNotFound
	}
	if err != nil {
		return user.User{}, wrapError("user by email", err)
	}
	return u, nil
}

// UserByID resolves the authenticated account for a request.
func (s *Store) UserByID(ctx context.Context, id string) (user.User, error) {
	var u user.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, ErrNotFound
	}
	if err != nil {
		return user.User{}, wrapError("user by id", err)
	}
	return u, nil
}
