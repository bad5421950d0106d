package mysql

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mnmarketlink/platform/internal/domain/users"
)

// UserRepository persists API accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository returns a repository backed by a pooled DB connection.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	PasswordSalt string    `db:"password_salt"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r userRow) toDomain() users.User {
	return users.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		PasswordSalt: r.PasswordSalt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FindByID fetches a user by primary key.
func (r *UserRepository) FindByID(id int64) (users.User, error) {
	const query = `
        SELECT id, email, name, password_hash, password_salt, created_at, updated_at
          FROM users
         WHERE id = ?
    `

	var row userRow
	if err := r.db.Get(&row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, fmt.Errorf("find user: %w", err)
	}
	return row.toDomain(), nil
}

// FindByEmail fetches a user by email address.
func (r *UserRepository) FindByEmail(email string) (users.User, error) {
	const query = `
        SELECT id, email, name, password_hash, password_salt, created_at, updated_at
          FROM users
         WHERE email = ?
    `

	var row userRow
	if err := r.db.Get(&row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return row.toDomain(), nil
}

// Save inserts or updates a user record.
func (r *UserRepository) Save(user users.User) (users.User, error) {
	now := time.Now().UTC()

	if user.ID == 0 {
		const insert = `
            INSERT INTO users (email, name, password_hash, password_salt, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?, ?)
        `
		res, err := r.db.Exec(insert, user.Email, user.Name, user.PasswordHash, user.PasswordSalt, now, now)
		if err != nil {
			return users.User{}, fmt.Errorf("insert user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return users.User{}, fmt.Errorf("user insert id: %w", err)
		}
		user.ID = id
		user.CreatedAt = now
		user.UpdatedAt = now
		return user, nil
	}

	const update = `
        UPDATE users
           SET email = ?, name = ?, password_hash = ?, password_salt = ?, updated_at = ?
         WHERE id = ?
    `
	if _, err := r.db.Exec(update, user.Email, user.Name, user.PasswordHash, user.PasswordSalt, now, user.ID); err != nil {
		return users.User{}, fmt.Errorf("update user: %w", err)
	}
	user.UpdatedAt = now
	return user, nil
}
