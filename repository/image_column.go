package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/db"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

// setImage swaps image_url/image_path on table and returns the previous path.
// table is always a package constant, never user input.
func setImage(ctx context.Context, table, id, url, path string) (string, error) {
	var previous string
	err := db.WithTx(ctx, func(ctx context.Context) error {
		var prev sql.NullString
		err := db.Conn(ctx).QueryRowContext(ctx, `SELECT image_path FROM `+table+` WHERE id = $1 FOR UPDATE`, id).Scan(&prev)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read current image: %w", err)
		}
		previous = prev.String

		_, err = db.Conn(ctx).ExecContext(ctx, `UPDATE `+table+` SET image_url = $2, image_path = $3 WHERE id = $1`,
			id, nullString(url), nullString(path))
		if err != nil {
			return fmt.Errorf("failed to update image: %w", err)
		}
		return nil
	})
	return previous, err
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
