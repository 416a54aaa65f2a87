package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cursoshub/elearning/database"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func Create(ctx context.Context, db sqlx.ExtContext, un UserNew, now time.Time) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(un.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	const q = `
	INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $5)
	RETURNING user_id`

	var id int
	if err := sqlx.GetContext(ctx, db, &id, q, un.Name, un.Email, string(hash), RoleUser, now); err != nil {
		if database.IsUniqueViolation(err, "users_email_key") {
			return User{}, database.ErrUniqueViolation
		}
		return User{}, fmt.Errorf("inserting user: %w", err)
	}

	return User{
		ID:           id,
		Name:         un.Name,
		Email:        un.Email,
		PasswordHash: string(hash),
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, userID int) (User, error) {
	const q = `SELECT * FROM users WHERE user_id = $1`

	var u User
	if err := sqlx.GetContext(ctx, db, &u, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, database.ErrNotFound
		}
		return User{}, fmt.Errorf("fetching user[%d]: %w", userID, err)
	}

	return u, nil
}
