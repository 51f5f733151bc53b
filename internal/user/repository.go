package user

import (
	"database/sql"
	"errors"
	"fmt"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	createUser(user *User) error
	userExistsByLoginOrEmail(login, email string) (*User, error)
	getUserByLoginOrEmail(loginOrEmail string) (*User, error)
	getUserByID(id string) (*User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

const userColumns = `id, email, login, password_hash, is_active, hash_token, created_at, updated_at`

func (r *userRepository) createUser(user *User) error {
	query := `
		INSERT INTO users (email, login, password_hash, is_active, hash_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(query, user.Email, user.Login, user.PasswordHash, user.IsActive, user.HashToken).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not create user: %v", err)
	}
	return nil
}

func (r *userRepository) queryUser(query string, args ...any) (*User, error) {
	var user User
	err := r.db.QueryRow(query, args...).Scan(&user.ID, &user.Email, &user.Login, &user.PasswordHash,
		&user.IsActive, &user.HashToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}
	return &user, nil
}

func (r *userRepository) userExistsByLoginOrEmail(login, email string) (*User, error) {
	return r.queryUser(`SELECT `+userColumns+` FROM users WHERE login = $1 OR email = $2 LIMIT 1`, login, email)
}

func (r *userRepository) getUserByLoginOrEmail(loginOrEmail string) (*User, error) {
	return r.queryUser(`SELECT `+userColumns+` FROM users WHERE login = $1 OR email = lower($1)`, loginOrEmail)
}

func (r *userRepository) getUserByID(id string) (*User, error) {
	return r.queryUser(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}
