package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/db"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

const paymentColumns = `id, reservation_id, amount, method, status, paid_at, customer_name, customer_email,
	customer_phone, reference, created_at`

// PaymentRepository handles database operations for pagos
type PaymentRepository struct{}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

// Ensure PaymentRepository implements PaymentRepositoryInterface
var _ PaymentRepositoryInterface = (*PaymentRepository)(nil)

func scanPayment(row rowScanner) (*models.Payment, error) {
	var p models.Payment
	var reservationID, name, email, phone, reference sql.NullString
	var paidAt sql.NullTime

	err := row.Scan(&p.ID, &reservationID, &p.Amount, &p.Method, &p.Status, &paidAt, &name, &email, &phone,
		&reference, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.ReservationID = reservationID.String
	p.Customer = models.Customer{Name: name.String, Email: email.String, Phone: phone.String}
	p.Reference = reference.String
	if paidAt.Valid {
		t := paidAt.Time
		p.PaidAt = &t
	}
	return &p, nil
}

// Create inserts a payment
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	log.Printf("📦 PaymentRepository: creating payment amount=%d method=%s", p.Amount, p.Method)

	var paidAt sql.NullTime
	if p.PaidAt != nil {
		paidAt = sql.NullTime{Time: *p.PaidAt, Valid: true}
	}
	query := `
		INSERT INTO pagos (id, reservation_id, amount, method, status, paid_at, customer_name, customer_email,
			customer_phone, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := db.Conn(ctx).ExecContext(ctx, query, p.ID, nullString(p.ReservationID), p.Amount, p.Method, p.Status,
		paidAt, nullString(p.Customer.Name), nullString(p.Customer.Email), nullString(p.Customer.Phone),
		nullString(p.Reference), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetByID returns one payment or models.ErrNotFound
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	p, err := scanPayment(db.Conn(ctx).QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM pagos WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

// LinkReservation writes the reservation back-reference onto a payment
func (r *PaymentRepository) LinkReservation(ctx context.Context, paymentID, reservationID string) error {
	res, err := db.Conn(ctx).ExecContext(ctx, `UPDATE pagos SET reservation_id = $2 WHERE id = $1`, paymentID, reservationID)
	if err != nil {
		return fmt.Errorf("failed to link payment to reservation: %w", err)
	}
	return expectOneRow(res)
}

// List returns payments whose paidAt falls in [from, to], newest first. Nil bounds are open.
func (r *PaymentRepository) List(ctx context.Context, from, to *time.Time, status string) ([]models.Payment, error) {
	var conditions []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if from != nil {
		add("paid_at >= $%d", *from)
	}
	if to != nil {
		add("paid_at <= $%d", *to)
	}
	if status != "" {
		add("status = $%d", status)
	}

	query := `SELECT ` + paymentColumns + ` FROM pagos`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY paid_at DESC NULLS LAST, created_at DESC`

	rows, err := db.Conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}
	return payments, nil
}

// UpdateStatus changes a payment's status. Completing a payment stamps paidAt when it is empty.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id, status string, now time.Time) (*models.Payment, error) {
	var updated *models.Payment
	err := db.WithTx(ctx, func(ctx context.Context) error {
		var current string
		err := db.Conn(ctx).QueryRowContext(ctx, `SELECT status FROM pagos WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to fetch payment: %w", err)
		}
		if !models.CanTransitionPayment(current, status) {
			return fmt.Errorf("%s -> %s: %w", current, status, models.ErrInvalidStatusTransition)
		}

		query := `UPDATE pagos SET status = $2 WHERE id = $1`
		args := []any{id, status}
		if status == models.PaymentCompleted {
			query = `UPDATE pagos SET status = $2, paid_at = COALESCE(paid_at, $3) WHERE id = $1`
			args = append(args, now)
		}
		if _, err := db.Conn(ctx).ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update payment status: %w", err)
		}

		updated, err = r.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Printf("✅ PaymentRepository: payment %s is now %s", id, status)
	return updated, nil
}
