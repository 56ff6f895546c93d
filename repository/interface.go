package repository

import (
	"context"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

// TxRunnerInterface runs a function inside one database transaction
type TxRunnerInterface interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RoomRepositoryInterface defines the contract for habitaciones
type RoomRepositoryInterface interface {
	List(ctx context.Context, status string) ([]models.Room, error)
	GetByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id, url, path string) (previousPath string, err error)
}

// ExtraServiceRepositoryInterface defines the contract for servicios
type ExtraServiceRepositoryInterface interface {
	List(ctx context.Context, activeOnly bool) ([]models.ExtraService, error)
	GetByID(ctx context.Context, id string) (*models.ExtraService, error)
	Create(ctx context.Context, svc *models.ExtraService) error
	Update(ctx context.Context, svc *models.ExtraService) error
	Delete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id, url, path string) (previousPath string, err error)
}

// ReservationRepositoryInterface defines the contract for reservas
type ReservationRepositoryInterface interface {
	Create(ctx context.Context, r *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Reservation, error)
}

// PaymentRepositoryInterface defines the contract for pagos
type PaymentRepositoryInterface interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	LinkReservation(ctx context.Context, paymentID, reservationID string) error
	List(ctx context.Context, from, to *time.Time, status string) ([]models.Payment, error)
	UpdateStatus(ctx context.Context, id, status string, now time.Time) (*models.Payment, error)
}

// UserRepositoryInterface defines the contract for usuarios
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, u *models.User) error
}

// ReviewRepositoryInterface defines the contract for resenas
type ReviewRepositoryInterface interface {
	List(ctx context.Context, status string) ([]models.Review, error)
	Create(ctx context.Context, r *models.Review) error
	UpdateStatus(ctx context.Context, id, status string) (*models.Review, error)
}

// SettingsRepositoryInterface defines the contract for hospedajes
type SettingsRepositoryInterface interface {
	Get(ctx context.Context) (*models.PropertySettings, error)
	Save(ctx context.Context, s *models.PropertySettings) error
}
