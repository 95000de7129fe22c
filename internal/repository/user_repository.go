package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lukaswerth/business-number-service/internal/model"
	"github.com/lukaswerth/business-number-service/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// dummyHash is a bcrypt hash of a throwaway value.  VerifyPassword compares
// against it when the username is unknown so that both failure cases run a
// bcrypt comparison and produce the same observable outcome.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Create inserts a user with a bcrypt-hashed password and returns its ID.
func (r *UserRepo) Create(ctx context.Context, username, password string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?,?)",
		username, hash)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// VerifyPassword reports whether the credentials match a stored user.  It
// returns plain false for an unknown username and for a wrong password;
// callers cannot tell the two apart.  The unknown-username path still runs
// a bcrypt comparison against a fixed hash so both paths cost about the
// same.
func (r *UserRepo) VerifyPassword(ctx context.Context, username, password string) (bool, model.User, error) {
	u, err := r.GetByUsername(ctx, username)
	if err == ErrNotFound {
		utils.VerifyPassword(dummyHash, password)
		return false, model.User{}, nil
	}
	if err != nil {
		return false, model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return false, model.User{}, nil
	}
	return true, u, nil
}
