package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/db"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

// UserRepository handles database operations for usuarios
type UserRepository struct{}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

// GetByID returns one user or models.ErrNotFound
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	var phone sql.NullString
	err := db.Conn(ctx).QueryRowContext(ctx,
		`SELECT id, name, email, phone, role, created_at FROM usuarios WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &phone, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Phone = phone.String
	return &u, nil
}

// Upsert creates the user on first sign-in and refreshes name and email afterwards.
// The stored role is never overwritten.
func (r *UserRepository) Upsert(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO usuarios (id, name, email, phone, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = COALESCE(NULLIF(EXCLUDED.name, ''), usuarios.name),
		    email = EXCLUDED.email
		RETURNING role, created_at
	`
	err := db.Conn(ctx).QueryRowContext(ctx, query, u.ID, u.Name, u.Email, nullString(u.Phone), u.Role, u.CreatedAt).
		Scan(&u.Role, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}
