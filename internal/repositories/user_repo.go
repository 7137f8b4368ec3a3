package repositories

import (
	"database/sql"
	"errors"

	intconfig "abcbus/internal/config"
	"abcbus/internal/domain"
	"abcbus/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepo) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, username, email, COALESCE(phone, ''), created_at
		FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, domain.NotFoundError{Resource: "user"}
		}
		return u, domain.InternalError{Msg: "failed to query user", Err: err}
	}
	return u, nil
}

// GetCredentialsByEmail returns the user and stored password hash.
func (r UserRepo) GetCredentialsByEmail(email string) (models.User, string, error) {
	var u models.User
	var hash string
	err := r.db().QueryRow(`
		SELECT id, username, email, COALESCE(phone, ''), password
		FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, "", domain.NotFoundError{Resource: "user"}
		}
		return u, "", domain.InternalError{Msg: "failed to query user", Err: err}
	}
	return u, hash, nil
}

// Create inserts a user; duplicate username/email surfaces as a
// conflict.
func (r UserRepo) Create(username, email, passwordHash, phone string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (username, email, password, phone)
		VALUES (?, ?, ?, ?)`, username, email, passwordHash, phone)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ConflictError{Resource: "user", Msg: "username or email already registered"}
		}
		return 0, domain.InternalError{Msg: "failed to insert user", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to read user id", Err: err}
	}
	return id, nil
}
