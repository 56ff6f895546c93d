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

// ReviewRepository handles database operations for resenas
type ReviewRepository struct{}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

var _ ReviewRepositoryInterface = (*ReviewRepository)(nil)

const reviewColumns = `id, user_id, user_name, rating, comment, status, created_at`

func scanReview(row rowScanner) (*models.Review, error) {
	var rv models.Review
	if err := row.Scan(&rv.ID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Comment, &rv.Status, &rv.CreatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}

// List returns reviews newest first, optionally only those with status
func (r *ReviewRepository) List(ctx context.Context, status string) ([]models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM resenas`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}
	return reviews, nil
}

// Create inserts a review
func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	_, err := db.Conn(ctx).ExecContext(ctx,
		`INSERT INTO resenas (`+reviewColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rv.ID, rv.UserID, rv.UserName, rv.Rating, rv.Comment, rv.Status, rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	log.Printf("📦 ReviewRepository: review %s stored as %s", rv.ID, rv.Status)
	return nil
}

// UpdateStatus publishes or hides a review
func (r *ReviewRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Review, error) {
	rv, err := scanReview(db.Conn(ctx).QueryRowContext(ctx,
		`UPDATE resenas SET status = $2 WHERE id = $1 RETURNING `+reviewColumns, id, status))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return rv, nil
}
