package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// TutorRepository manages persistence for tutors.
type TutorRepository struct {
	db *sqlx.DB
}

// NewTutorRepository constructs a TutorRepository.
func NewTutorRepository(db *sqlx.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

func (r *TutorRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts a tutor, assigning its identity when empty.
func (r *TutorRepository) Create(ctx context.Context, exec sqlx.ExtContext, tutor *models.Tutor) error {
	if tutor == nil {
		return fmt.Errorf("tutor payload is nil")
	}
	if tutor.ID == "" {
		tutor.ID = uuid.NewString()
	}

	const query = `INSERT INTO tutors (id, name, avatar, whatsapp, bio) VALUES (:id, :name, :avatar, :whatsapp, :bio)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, tutor); err != nil {
		return fmt.Errorf("create tutor: %w", err)
	}
	return nil
}

// FindByID fetches a tutor by ID.
func (r *TutorRepository) FindByID(ctx context.Context, id string) (*models.Tutor, error) {
	query := r.db.Rebind(`SELECT id, name, avatar, whatsapp, bio FROM tutors WHERE id = ?`)
	var tutor models.Tutor
	if err := r.db.GetContext(ctx, &tutor, query, id); err != nil {
		return nil, err
	}
	return &tutor, nil
}
