package readstore

import (
	"context"

	"bookcars/internal/infra"
	"bookcars/internal/infra/db"
	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(pool *pgxpool.Pool) *UserReadStore {
	return &UserReadStore{db: pool}
}

const findUserViewSQL = `
SELECT id, email, name, phone, role, last_login, is_active, created_at
FROM users
WHERE id = $1
`

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var v queries.UserView
	err := s.db.QueryRow(ctx, findUserViewSQL, id).Scan(
		&v.ID, &v.Email, &v.Name, &v.Phone, &v.Role, &v.LastLogin, &v.IsActive, &v.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user view", err)
	}
	return &v, nil
}
