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

const reservationColumns = `id, room_id, room_name, guest_count, check_in, check_out, status, additional_services,
	comments, payment_id, user_id, total, created_at, updated_at`

// ReservationRepository handles database operations for reservas
type ReservationRepository struct{}

// NewReservationRepository creates a new ReservationRepository
func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

// Ensure ReservationRepository implements ReservationRepositoryInterface
var _ ReservationRepositoryInterface = (*ReservationRepository)(nil)

func scanReservation(row rowScanner) (*models.Reservation, error) {
	var res models.Reservation
	var roomName, comments, userID sql.NullString
	var services []byte

	err := row.Scan(&res.ID, &res.RoomID, &roomName, &res.GuestCount, &res.CheckIn, &res.CheckOut, &res.Status,
		&services, &comments, &res.PaymentID, &userID, &res.Total, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	res.RoomName = roomName.String
	res.Comments = comments.String
	res.UserID = userID.String
	if res.AdditionalServices, err = decodeJSONList[models.ServiceSnapshot](services); err != nil {
		return nil, err
	}
	res.AdditionalServiceIDs = make([]string, 0, len(res.AdditionalServices))
	for _, s := range res.AdditionalServices {
		res.AdditionalServiceIDs = append(res.AdditionalServiceIDs, s.ID)
	}
	return &res, nil
}

// Create inserts a reservation. The referenced payment must exist in the same transaction.
func (r *ReservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	log.Printf("📦 ReservationRepository: creating reservation room=%s payment=%s", res.RoomID, res.PaymentID)

	services, err := encodeJSONList(res.AdditionalServices)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reservas (id, room_id, room_name, guest_count, check_in, check_out, status, additional_services,
			comments, payment_id, user_id, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = db.Conn(ctx).ExecContext(ctx, query, res.ID, res.RoomID, nullString(res.RoomName), res.GuestCount,
		res.CheckIn, res.CheckOut, res.Status, services, nullString(res.Comments), res.PaymentID,
		nullString(res.UserID), res.Total, res.CreatedAt, res.UpdatedAt)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return fmt.Errorf("room or payment does not exist: %w", models.ErrNotFound)
		}
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

// GetByID returns one reservation or models.ErrNotFound
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := scanReservation(db.Conn(ctx).QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservas WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return res, nil
}

// List returns reservations ordered by check-in, newest first
func (r *ReservationRepository) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	var conditions []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.UserID != "" {
		add("user_id = $%d", filter.UserID)
	}
	if filter.From != nil {
		add("check_in >= $%d::date", *filter.From)
	}
	if filter.To != nil {
		add("check_in <= $%d::date", *filter.To)
	}

	query := `SELECT ` + reservationColumns + ` FROM reservas`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY check_in DESC, created_at DESC`

	rows, err := db.Conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservations: %w", err)
	}
	return reservations, nil
}

// HasOverlap reports whether a non-cancelled reservation of roomID intersects [checkIn, checkOut).
// Inside a transaction the room row is locked so concurrent bookings of the same room serialize.
func (r *ReservationRepository) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	if db.TxFromContext(ctx) != nil {
		var id string
		err := db.Conn(ctx).QueryRowContext(ctx, `SELECT id FROM habitaciones WHERE id = $1 FOR UPDATE`, roomID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return false, models.ErrNotFound
		}
		if err != nil {
			return false, fmt.Errorf("failed to lock room: %w", err)
		}
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservas
			WHERE room_id = $1
			  AND status <> 'cancelled'
			  AND check_in < $3
			  AND check_out > $2
		)
	`
	var exists bool
	if err := db.Conn(ctx).QueryRowContext(ctx, query, roomID, checkIn, checkOut).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	return exists, nil
}

// UpdateStatus moves a reservation through its lifecycle.
// Cancelling also cancels the linked payment while that payment is still pending.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Reservation, error) {
	log.Printf("📦 ReservationRepository: status change id=%s -> %s", id, status)

	var updated *models.Reservation
	err := db.WithTx(ctx, func(ctx context.Context) error {
		var current, paymentID string
		err := db.Conn(ctx).QueryRowContext(ctx, `SELECT status, payment_id FROM reservas WHERE id = $1 FOR UPDATE`, id).
			Scan(&current, &paymentID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to fetch reservation: %w", err)
		}

		if !models.CanTransitionReservation(current, status) {
			log.Printf("❌ ReservationRepository: transition %s -> %s rejected for id=%s", current, status, id)
			return fmt.Errorf("%s -> %s: %w", current, status, models.ErrInvalidStatusTransition)
		}

		if _, err := db.Conn(ctx).ExecContext(ctx, `UPDATE reservas SET status = $2, updated_at = NOW() WHERE id = $1`, id, status); err != nil {
			return fmt.Errorf("failed to update reservation status: %w", err)
		}

		if status == models.ReservationCancelled {
			_, err := db.Conn(ctx).ExecContext(ctx,
				`UPDATE pagos SET status = 'cancelled' WHERE id = $1 AND status = 'pending'`, paymentID)
			if err != nil {
				return fmt.Errorf("failed to cancel linked payment: %w", err)
			}
		}

		updated, err = r.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
