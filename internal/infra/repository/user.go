package repository

import (
	"context"
	"time"

	"bookcars/internal/domain/user"
	"bookcars/internal/infra"
	"bookcars/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const insertUserSQL = `
INSERT INTO users (id, email, password_hash, name, phone, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
`

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User, now time.Time) error {
	_, err := tx.Exec(ctx, insertUserSQL,
		u.ID(), u.Email().Value(), u.PasswordHash(), u.Name().String(),
		u.Phone().String(), string(u.Role()), u.IsActive(), now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

const selectUserColumns = `
SELECT id, email, password_hash, name, phone, role, last_login, is_active, created_at, updated_at
FROM users
`

func (r *UserRepository) FindByEmail(ctx context.Context, tx db.DBTX, email string) (*user.User, error) {
	row := tx.QueryRow(ctx, selectUserColumns+"WHERE email = $1", email)
	return r.scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*user.User, error) {
	row := tx.QueryRow(ctx, selectUserColumns+"WHERE id = $1", id)
	return r.scanUser(row)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) error {
	_, err := tx.Exec(ctx, `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`, id, now)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepository) scanUser(row rowScanner) (*user.User, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID, &ur.Email, &ur.PasswordHash, &ur.Name, &ur.Phone,
		&ur.Role, &ur.LastLogin, &ur.IsActive, &ur.CreatedAt, &ur.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	u, err := ur.toDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to rebuild user", err)
	}
	return u, nil
}
