package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/tutoring-api/internal/dto"
	"github.com/noah-isme/tutoring-api/internal/models"
	appErrors "github.com/noah-isme/tutoring-api/pkg/errors"
	"github.com/noah-isme/tutoring-api/pkg/timeofday"
)

// EventClassRegistered is the routing key for committed registrations.
const EventClassRegistered = "class.registered"

// Registration outcomes recorded by the metrics observer.
const (
	RegistrationCreated = "created"
	RegistrationInvalid = "invalid"
	RegistrationFailed  = "failed"
)

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type tutorWriter interface {
	Create(ctx context.Context, exec sqlx.ExtContext, tutor *models.Tutor) error
}

type classOfferingRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, offering *models.ClassOffering) error
	Search(ctx context.Context, filter models.ClassSearchFilter) ([]models.ClassListing, error)
	FindByID(ctx context.Context, id string) (*models.ClassListing, error)
}

type availabilityRepository interface {
	InsertBatch(ctx context.Context, exec sqlx.ExtContext, windows []models.AvailabilityWindow) error
	ListByClassOffering(ctx context.Context, classOfferingID string) ([]models.AvailabilityWindow, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type classMetrics interface {
	ObserveDBQuery(label string, duration time.Duration)
	ObserveRegistration(outcome string)
}

// ClassService matches class offerings against availability and registers new ones.
type ClassService struct {
	tx        txProvider
	tutors    tutorWriter
	offerings classOfferingRepository
	windows   availabilityRepository
	events    eventPublisher
	metrics   classMetrics
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// ClassServiceOption customises optional collaborators.
type ClassServiceOption func(*ClassService)

// WithEventPublisher publishes a ClassRegisteredEvent after each commit.
func WithEventPublisher(p eventPublisher) ClassServiceOption {
	return func(s *ClassService) { s.events = p }
}

// WithClassMetrics records query timings and registration outcomes.
func WithClassMetrics(m classMetrics) ClassServiceOption {
	return func(s *ClassService) { s.metrics = m }
}

// NewClassService wires class dependencies.
func NewClassService(
	tx txProvider,
	tutors tutorWriter,
	offerings classOfferingRepository,
	windows availabilityRepository,
	validate *validator.Validate,
	logger *zap.Logger,
	opts ...ClassServiceOption,
) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	RegisterScheduleValidations(validate)

	svc := &ClassService{
		tx:        tx,
		tutors:    tutors,
		offerings: offerings,
		windows:   windows,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// RegisterScheduleValidations adds the "hhmm" tag for time-of-day strings.
func RegisterScheduleValidations(validate *validator.Validate) {
	_ = validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return timeofday.Valid(fl.Field().String())
	})
}

// Search returns offerings of the subject that are free at the given weekday and time.
func (s *ClassService) Search(ctx context.Context, query dto.SearchClassesQuery) ([]models.ClassListing, error) {
	filter, err := s.parseFilter(query)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	listings, err := s.offerings.Search(ctx, filter)
	s.observeQuery("search_classes", start)
	if err != nil {
		s.logger.Error("search classes failed", zap.String("subject", filter.Subject), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search classes")
	}
	if listings == nil {
		listings = []models.ClassListing{}
	}
	return listings, nil
}

// Subjects are matched exactly as sent; blank values only count as missing.
func (s *ClassService) parseFilter(query dto.SearchClassesQuery) (models.ClassSearchFilter, error) {
	subject := query.Subject
	weekDay := strings.TrimSpace(query.WeekDay)
	clock := strings.TrimSpace(query.Time)
	if strings.TrimSpace(subject) == "" || weekDay == "" || clock == "" {
		return models.ClassSearchFilter{}, appErrors.ErrMissingFilters
	}

	day, err := timeofday.ParseWeekday(weekDay)
	if err != nil {
		s.logger.Debug("invalid week_day filter", zap.String("week_day", weekDay), zap.Error(err))
		return models.ClassSearchFilter{}, appErrors.Wrap(err, appErrors.ErrInvalidFilters.Code, appErrors.ErrInvalidFilters.Status, appErrors.ErrInvalidFilters.Message)
	}
	minute, err := timeofday.Encode(clock)
	if err != nil {
		s.logger.Debug("invalid time filter", zap.String("time", clock), zap.Error(err))
		return models.ClassSearchFilter{}, appErrors.Wrap(err, appErrors.ErrInvalidFilters.Code, appErrors.ErrInvalidFilters.Status, appErrors.ErrInvalidFilters.Message)
	}

	return models.ClassSearchFilter{Subject: subject, Weekday: day, Minute: minute}, nil
}

// Register persists the tutor, its offering and every availability window in one transaction.
func (s *ClassService) Register(ctx context.Context, req dto.RegisterClassRequest) (*models.ClassOffering, error) {
	tutor, offering, windows, err := s.buildRegistration(req)
	if err != nil {
		s.observeRegistration(RegistrationInvalid)
		return nil, err
	}
	if s.tx == nil {
		s.observeRegistration(RegistrationFailed)
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	start := time.Now()
	err = s.registerTx(ctx, tutor, offering, windows)
	s.observeQuery("register_class", start)
	if err != nil {
		s.observeRegistration(RegistrationFailed)
		s.logger.Error("register class failed",
			zap.String("subject", offering.Subject),
			zap.Int("windows", len(windows)),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrClassCreation.Code, appErrors.ErrClassCreation.Status, appErrors.ErrClassCreation.Message)
	}

	s.observeRegistration(RegistrationCreated)
	s.logger.Info("class registered",
		zap.String("class_id", offering.ID),
		zap.String("tutor_id", tutor.ID),
		zap.String("subject", offering.Subject),
		zap.Int("windows", len(windows)),
	)
	s.publishRegistered(ctx, offering, len(windows))
	return offering, nil
}

func (s *ClassService) registerTx(ctx context.Context, tutor *models.Tutor, offering *models.ClassOffering, windows []models.AvailabilityWindow) (err error) {
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Warn("rollback registration failed", zap.Error(rbErr))
			}
		}
	}()

	if err = s.tutors.Create(ctx, tx, tutor); err != nil {
		return err
	}

	offering.TutorID = tutor.ID
	if err = s.offerings.Create(ctx, tx, offering); err != nil {
		return err
	}

	for i := range windows {
		windows[i].ClassOfferingID = offering.ID
	}
	if err = s.windows.InsertBatch(ctx, tx, windows); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit registration: %w", err)
	}
	return nil
}

func (s *ClassService) buildRegistration(req dto.RegisterClassRequest) (*models.Tutor, *models.ClassOffering, []models.AvailabilityWindow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInvalidClassPayload.Code, appErrors.ErrInvalidClassPayload.Status, appErrors.ErrInvalidClassPayload.Message)
	}

	windows := make([]models.AvailabilityWindow, 0, len(req.Schedule))
	for i, item := range req.Schedule {
		from, err := timeofday.Encode(item.From)
		if err != nil {
			return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInvalidClassPayload.Code, appErrors.ErrInvalidClassPayload.Status, appErrors.ErrInvalidClassPayload.Message)
		}
		to, err := timeofday.Encode(item.To)
		if err != nil {
			return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInvalidClassPayload.Code, appErrors.ErrInvalidClassPayload.Status, appErrors.ErrInvalidClassPayload.Message)
		}
		if from >= to {
			cause := fmt.Errorf("schedule[%d]: from %s must be before to %s", i, item.From, item.To)
			return nil, nil, nil, appErrors.Wrap(cause, appErrors.ErrInvalidClassPayload.Code, appErrors.ErrInvalidClassPayload.Status, appErrors.ErrInvalidClassPayload.Message)
		}
		windows = append(windows, models.AvailabilityWindow{
			Weekday:    timeofday.Weekday(*item.WeekDay),
			FromMinute: from,
			ToMinute:   to,
		})
	}

	tutor := &models.Tutor{
		Name:     strings.TrimSpace(req.Name),
		Avatar:   strings.TrimSpace(req.Avatar),
		Whatsapp: strings.TrimSpace(req.Whatsapp),
		Bio:      req.Bio,
	}
	offering := &models.ClassOffering{
		Subject: req.Subject,
		Cost:    *req.Cost,
	}
	return tutor, offering, windows, nil
}

// Schedule returns an offering with its weekly windows rendered as "HH:MM".
func (s *ClassService) Schedule(ctx context.Context, id string) (*dto.ClassScheduleResponse, error) {
	// Identities are UUIDs; anything else cannot exist and would fail the
	// uuid cast on PostgreSQL.
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	listing, err := s.offerings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	windows, err := s.windows.ListByClassOffering(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class schedule")
	}

	resp := &dto.ClassScheduleResponse{
		ID:       listing.ID,
		Subject:  listing.Subject,
		Cost:     listing.Cost,
		TutorID:  listing.TutorID,
		Name:     listing.Name,
		Avatar:   listing.Avatar,
		Whatsapp: listing.Whatsapp,
		Bio:      listing.Bio,
		Schedule: make([]dto.ClassScheduleWindow, 0, len(windows)),
	}
	for _, w := range windows {
		resp.Schedule = append(resp.Schedule, dto.ClassScheduleWindow{
			WeekDay:    int(w.Weekday),
			From:       timeofday.Format(w.FromMinute),
			To:         timeofday.Format(w.ToMinute),
			FromMinute: w.FromMinute,
			ToMinute:   w.ToMinute,
		})
	}
	return resp, nil
}

func (s *ClassService) publishRegistered(ctx context.Context, offering *models.ClassOffering, windows int) {
	if s.events == nil {
		return
	}
	event := models.ClassRegisteredEvent{
		ClassID:      offering.ID,
		TutorID:      offering.TutorID,
		Subject:      offering.Subject,
		Cost:         offering.Cost,
		Windows:      windows,
		RegisteredAt: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, EventClassRegistered, event); err != nil {
		s.logger.Warn("publish class registered event failed", zap.String("class_id", offering.ID), zap.Error(err))
	}
}

func (s *ClassService) observeQuery(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

func (s *ClassService) observeRegistration(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveRegistration(outcome)
	}
}
