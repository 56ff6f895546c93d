package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/db"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

// SettingsRepository handles the single hospedajes row
type SettingsRepository struct{}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

var _ SettingsRepositoryInterface = (*SettingsRepository)(nil)

// Get returns the saved settings, or the defaults when nothing was saved yet
func (r *SettingsRepository) Get(ctx context.Context) (*models.PropertySettings, error) {
	s := models.DefaultSettings()
	var description, address, phone, email, currency, color, mode, checkIn, checkOut sql.NullString

	query := `
		SELECT id, name, description, address, phone, email, currency_symbol, primary_color, theme_mode,
		       check_in_time, check_out_time, updated_at
		FROM hospedajes WHERE id = $1
	`
	err := db.Conn(ctx).QueryRowContext(ctx, query, models.DefaultSettingsID).Scan(&s.ID, &s.Name, &description,
		&address, &phone, &email, &currency, &color, &mode, &checkIn, &checkOut, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	s.Description = description.String
	s.Address = address.String
	s.Phone = phone.String
	s.Email = email.String
	override := func(dst *string, v sql.NullString) {
		if v.Valid && v.String != "" {
			*dst = v.String
		}
	}
	override(&s.CurrencySymbol, currency)
	override(&s.PrimaryColor, color)
	override(&s.ThemeMode, mode)
	override(&s.CheckInTime, checkIn)
	override(&s.CheckOutTime, checkOut)
	return &s, nil
}

// Save upserts the settings row
func (r *SettingsRepository) Save(ctx context.Context, s *models.PropertySettings) error {
	s.ID = models.DefaultSettingsID
	query := `
		INSERT INTO hospedajes (id, name, description, address, phone, email, currency_symbol, primary_color,
			theme_mode, check_in_time, check_out_time, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, description = EXCLUDED.description, address = EXCLUDED.address,
			phone = EXCLUDED.phone, email = EXCLUDED.email, currency_symbol = EXCLUDED.currency_symbol,
			primary_color = EXCLUDED.primary_color, theme_mode = EXCLUDED.theme_mode,
			check_in_time = EXCLUDED.check_in_time, check_out_time = EXCLUDED.check_out_time,
			updated_at = EXCLUDED.updated_at
	`
	_, err := db.Conn(ctx).ExecContext(ctx, query, s.ID, s.Name, nullString(s.Description), nullString(s.Address),
		nullString(s.Phone), nullString(s.Email), nullString(s.CurrencySymbol), nullString(s.PrimaryColor),
		nullString(s.ThemeMode), nullString(s.CheckInTime), nullString(s.CheckOutTime), s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
