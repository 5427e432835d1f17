package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// AvailabilityRepository stores the weekly windows of class offerings.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository builds repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// InsertBatch writes all windows with a single multi-row INSERT.
func (r *AvailabilityRepository) InsertBatch(ctx context.Context, exec sqlx.ExtContext, windows []models.AvailabilityWindow) error {
	if len(windows) == 0 {
		return nil
	}
	for i := range windows {
		window := &windows[i]
		if window.ClassOfferingID == "" {
			return fmt.Errorf("availability window %d: class_offering_id is required", i)
		}
		if window.ID == "" {
			window.ID = uuid.NewString()
		}
	}

	const query = `INSERT INTO availability_windows (id, class_offering_id, weekday, from_minute, to_minute)
VALUES (:id, :class_offering_id, :weekday, :from_minute, :to_minute)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, windows); err != nil {
		return fmt.Errorf("insert availability windows: %w", err)
	}
	return nil
}

// ListByClassOffering returns windows ordered by weekday and start.
func (r *AvailabilityRepository) ListByClassOffering(ctx context.Context, classOfferingID string) ([]models.AvailabilityWindow, error) {
	query := r.db.Rebind(`SELECT id, class_offering_id, weekday, from_minute, to_minute
FROM availability_windows WHERE class_offering_id = ? ORDER BY weekday ASC, from_minute ASC`)
	windows := make([]models.AvailabilityWindow, 0)
	if err := r.db.SelectContext(ctx, &windows, query, classOfferingID); err != nil {
		return nil, fmt.Errorf("list availability windows: %w", err)
	}
	return windows, nil
}
