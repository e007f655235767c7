package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// WatermarkRepository persists the last-run watermark of the new-arrivals
// job in a single row, so the window survives restarts and two instances
// cannot process the same window twice.
type WatermarkRepository struct {
	db *sql.DB
}

func NewWatermarkRepository(db *sql.DB) *WatermarkRepository {
	return &WatermarkRepository{db: db}
}

// NextWindow advances the watermark to now and returns the window
// (previous watermark, now]. Read and update happen in one transaction
// with the row locked.
func (r *WatermarkRepository) NextWindow() (from, to time.Time, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("watermark transaction begin error: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	to = time.Now()

	err = tx.QueryRow(`SELECT last_run FROM novedades_watermark WHERE id = 1 FOR UPDATE`).Scan(&from)
	if err == sql.ErrNoRows {
		// first run: seed the row with a one-day lookback
		from = to.Add(-24 * time.Hour)
		if _, err = tx.Exec(`INSERT INTO novedades_watermark (id, last_run) VALUES (1, $1)`, to); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("watermark seed error: %w", err)
		}
		return from, to, tx.Commit()
	}
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("watermark read error: %w", err)
	}

	if _, err = tx.Exec(`UPDATE novedades_watermark SET last_run = $1 WHERE id = 1`, to); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("watermark update error: %w", err)
	}

	return from, to, tx.Commit()
}
