package models

import (
	"time"

	"github.com/noah-isme/tutoring-api/pkg/timeofday"
)

// ClassOffering is a tutor's advertised subject and price.
type ClassOffering struct {
	ID      string  `db:"id" json:"id"`
	Subject string  `db:"subject" json:"subject"`
	Cost    float64 `db:"cost" json:"cost"`
	TutorID string  `db:"tutor_id" json:"tutor_id"`
}

// ClassListing is an offering flattened with its tutor, as returned by search.
type ClassListing struct {
	ID       string  `db:"id" json:"id"`
	Subject  string  `db:"subject" json:"subject"`
	Cost     float64 `db:"cost" json:"cost"`
	TutorID  string  `db:"tutor_id" json:"tutor_id"`
	Name     string  `db:"name" json:"name"`
	Avatar   string  `db:"avatar" json:"avatar"`
	Whatsapp string  `db:"whatsapp" json:"whatsapp"`
	Bio      string  `db:"bio" json:"bio"`
}

// ClassSearchFilter selects offerings of Subject free at Minute on Weekday.
type ClassSearchFilter struct {
	Subject string
	Weekday timeofday.Weekday
	Minute  int
}

// ClassRegisteredEvent is published after a registration commits.
type ClassRegisteredEvent struct {
	ClassID      string    `json:"class_id"`
	TutorID      string    `json:"tutor_id"`
	Subject      string    `json:"subject"`
	Cost         float64   `json:"cost"`
	Windows      int       `json:"windows"`
	RegisteredAt time.Time `json:"registered_at"`
}
