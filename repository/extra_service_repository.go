package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/db"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

const serviceColumns = `id, name, description, price, category, active, image_url, image_path, created_at`

// ExtraServiceRepository handles database operations for servicios
type ExtraServiceRepository struct{}

// NewExtraServiceRepository creates a new ExtraServiceRepository
func NewExtraServiceRepository() *ExtraServiceRepository {
	return &ExtraServiceRepository{}
}

var _ ExtraServiceRepositoryInterface = (*ExtraServiceRepository)(nil)

func scanExtraService(row rowScanner) (*models.ExtraService, error) {
	var s models.ExtraService
	var description, category, imageURL, imagePath sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &description, &s.Price, &category, &s.Active, &imageURL, &imagePath, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Description = description.String
	s.Category = category.String
	s.ImageURL = imageURL.String
	s.ImagePath = imagePath.String
	return &s, nil
}

// List returns add-ons ordered by category and name
func (r *ExtraServiceRepository) List(ctx context.Context, activeOnly bool) ([]models.ExtraService, error) {
	query := `SELECT ` + serviceColumns + ` FROM servicios`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY category NULLS LAST, name`

	rows, err := db.Conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	services := []models.ExtraService{}
	for rows.Next() {
		s, err := scanExtraService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}
	return services, nil
}

// GetByID returns one add-on or models.ErrNotFound
func (r *ExtraServiceRepository) GetByID(ctx context.Context, id string) (*models.ExtraService, error) {
	s, err := scanExtraService(db.Conn(ctx).QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM servicios WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return s, nil
}

// Create inserts an add-on
func (r *ExtraServiceRepository) Create(ctx context.Context, s *models.ExtraService) error {
	query := `
		INSERT INTO servicios (id, name, description, price, category, active, image_url, image_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := db.Conn(ctx).ExecContext(ctx, query, s.ID, s.Name, nullString(s.Description), s.Price,
		nullString(s.Category), s.Active, nullString(s.ImageURL), nullString(s.ImagePath), s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert service: %w", err)
	}
	log.Printf("📦 ExtraServiceRepository: created service id=%s", s.ID)
	return nil
}

// Update replaces the editable fields of an add-on
func (r *ExtraServiceRepository) Update(ctx context.Context, s *models.ExtraService) error {
	query := `
		UPDATE servicios
		SET name = $2, description = $3, price = $4, category = $5, active = $6
		WHERE id = $1
	`
	res, err := db.Conn(ctx).ExecContext(ctx, query, s.ID, s.Name, nullString(s.Description), s.Price,
		nullString(s.Category), s.Active)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes an add-on. Reservations keep their snapshot.
func (r *ExtraServiceRepository) Delete(ctx context.Context, id string) error {
	res, err := db.Conn(ctx).ExecContext(ctx, `DELETE FROM servicios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return expectOneRow(res)
}

// SetImage stores the image location and returns the path it replaced
func (r *ExtraServiceRepository) SetImage(ctx context.Context, id, url, path string) (string, error) {
	return setImage(ctx, "servicios", id, url, path)
}
