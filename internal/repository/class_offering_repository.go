package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutoring-api/internal/models"
)

const listingColumns = `c.id, c.subject, c.cost, c.tutor_id, t.name, t.avatar, t.whatsapp, t.bio`

// ClassOfferingRepository persists class offerings and answers availability searches.
type ClassOfferingRepository struct {
	db *sqlx.DB
}

// NewClassOfferingRepository constructs a ClassOfferingRepository.
func NewClassOfferingRepository(db *sqlx.DB) *ClassOfferingRepository {
	return &ClassOfferingRepository{db: db}
}

func (r *ClassOfferingRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts an offering for an existing tutor.
func (r *ClassOfferingRepository) Create(ctx context.Context, exec sqlx.ExtContext, offering *models.ClassOffering) error {
	if offering == nil {
		return fmt.Errorf("class offering payload is nil")
	}
	if offering.TutorID == "" {
		return fmt.Errorf("tutor_id is required")
	}
	if offering.ID == "" {
		offering.ID = uuid.NewString()
	}

	const query = `INSERT INTO class_offerings (id, subject, cost, tutor_id) VALUES (:id, :subject, :cost, :tutor_id)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, offering); err != nil {
		return fmt.Errorf("create class offering: %w", err)
	}
	return nil
}

// Search returns offerings of the subject having at least one window on the
// weekday with from_minute <= minute < to_minute. Rows are not ordered.
func (r *ClassOfferingRepository) Search(ctx context.Context, filter models.ClassSearchFilter) ([]models.ClassListing, error) {
	query := r.db.Rebind(`SELECT ` + listingColumns + `
FROM class_offerings c
JOIN tutors t ON t.id = c.tutor_id
WHERE c.subject = ?
  AND EXISTS (
    SELECT 1 FROM availability_windows w
    WHERE w.class_offering_id = c.id
      AND w.weekday = ?
      AND w.from_minute <= ?
      AND w.to_minute > ?
  )`)

	listings := make([]models.ClassListing, 0)
	if err := r.db.SelectContext(ctx, &listings, query, filter.Subject, int(filter.Weekday), filter.Minute, filter.Minute); err != nil {
		return nil, fmt.Errorf("search class offerings: %w", err)
	}
	return listings, nil
}

// FindByID loads an offering joined with its tutor.
func (r *ClassOfferingRepository) FindByID(ctx context.Context, id string) (*models.ClassListing, error) {
	query := r.db.Rebind(`SELECT ` + listingColumns + `
FROM class_offerings c
JOIN tutors t ON t.id = c.tutor_id
WHERE c.id = ?`)
	var listing models.ClassListing
	if err := r.db.GetContext(ctx, &listing, query, id); err != nil {
		return nil, err
	}
	return &listing, nil
}
