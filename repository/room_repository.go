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

const roomColumns = `id, name, description, price_per_night, capacity, bed_count, amenities, status,
	image_url, image_path, created_at, updated_at`

// RoomRepository handles database operations for habitaciones
type RoomRepository struct{}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

// Ensure RoomRepository implements RoomRepositoryInterface
var _ RoomRepositoryInterface = (*RoomRepository)(nil)

func scanRoom(row rowScanner) (*models.Room, error) {
	var room models.Room
	var description, imageURL, imagePath sql.NullString
	var amenities []byte

	err := row.Scan(&room.ID, &room.Name, &description, &room.PricePerNight, &room.Capacity, &room.BedCount,
		&amenities, &room.Status, &imageURL, &imagePath, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return nil, err
	}
	room.Description = description.String
	room.ImageURL = imageURL.String
	room.ImagePath = imagePath.String
	if room.Amenities, err = decodeJSONList[string](amenities); err != nil {
		return nil, err
	}
	return &room, nil
}

// List returns rooms ordered by name, optionally filtered by status
func (r *RoomRepository) List(ctx context.Context, status string) ([]models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM habitaciones`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY name ASC`

	rows, err := db.Conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rooms: %w", err)
	}
	return rooms, nil
}

// GetByID returns one room or models.ErrNotFound
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*models.Room, error) {
	room, err := scanRoom(db.Conn(ctx).QueryRowContext(ctx, `SELECT `+roomColumns+` FROM habitaciones WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// Create inserts a room. ID and timestamps must already be set.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	amenities, err := encodeJSONList(room.Amenities)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO habitaciones (id, name, description, price_per_night, capacity, bed_count, amenities, status,
			image_url, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = db.Conn(ctx).ExecContext(ctx, query, room.ID, room.Name, nullString(room.Description), room.PricePerNight,
		room.Capacity, room.BedCount, amenities, room.Status, nullString(room.ImageURL), nullString(room.ImagePath),
		room.CreatedAt, room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}
	log.Printf("📦 RoomRepository: created room id=%s", room.ID)
	return nil
}

// Update replaces the editable fields of a room
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	amenities, err := encodeJSONList(room.Amenities)
	if err != nil {
		return err
	}

	query := `
		UPDATE habitaciones
		SET name = $2, description = $3, price_per_night = $4, capacity = $5, bed_count = $6,
		    amenities = $7, status = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := db.Conn(ctx).ExecContext(ctx, query, room.ID, room.Name, nullString(room.Description), room.PricePerNight,
		room.Capacity, room.BedCount, amenities, room.Status, room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes a room. Rooms referenced by reservations cannot be removed.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	res, err := db.Conn(ctx).ExecContext(ctx, `DELETE FROM habitaciones WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return models.ErrInUse
		}
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return expectOneRow(res)
}

// SetImage stores the image location and returns the path it replaced
func (r *RoomRepository) SetImage(ctx context.Context, id, url, path string) (string, error) {
	return setImage(ctx, "habitaciones", id, url, path)
}
