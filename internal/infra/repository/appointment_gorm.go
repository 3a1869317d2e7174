package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/Nevenjbx/kompagni-api/internal/domain/appointment"
	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/models"
	"github.com/Nevenjbx/kompagni-api/internal/schedule"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// withTx rebinds the repository to a transaction handle so every query
// below runs inside it unchanged.
func (r *AppointmentGormRepository) withTx(tx *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: tx}
}

// --------------------------------------------------
// Transaction boundary
// --------------------------------------------------

// InSerializableTx runs fn inside a SERIALIZABLE transaction. Postgres
// aborts one of two conflicting transactions with SQLSTATE 40001; that is
// what actually prevents two concurrent bookings from both passing the
// overlap check and both inserting.
func (r *AppointmentGormRepository) InSerializableTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.withTx(tx))
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if isSerializationFailure(err) {
		return httperr.ErrConflict(
			domain.ConflictCode,
			"This time slot was just booked by someone else. Please try again.",
		)
	}

	return err
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	// 40001 serialization_failure
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

// --------------------------------------------------
// Service / Provider
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	serviceID string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		First(&svc, "id = ?", serviceID).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("service_not_found", "Service not found")
		}
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetProviderByUserID(
	ctx context.Context,
	userID string,
) (*models.ProviderProfile, error) {

	var prov models.ProviderProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&prov).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prov, nil
}

// --------------------------------------------------
// Working hours / absences
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	providerID string,
	dayOfWeek int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND day_of_week = ?", providerID, dayOfWeek).
		First(&wh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *AppointmentGormRepository) ListAbsencesOverlapping(
	ctx context.Context,
	providerID string,
	w schedule.Window,
) ([]models.ProviderAbsence, error) {

	var absences []models.ProviderAbsence
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND start_date < ? AND end_date > ?",
			providerID, w.End, w.Start,
		).
		Find(&absences).Error; err != nil {
		return nil, err
	}
	return absences, nil
}

func (r *AppointmentGormRepository) HasAbsenceOverlapping(
	ctx context.Context,
	providerID string,
	w schedule.Window,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProviderAbsence{}).
		Where(
			"provider_id = ? AND start_date < ? AND end_date > ?",
			providerID, w.End, w.Start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsOverlapping(
	ctx context.Context,
	providerID string,
	w schedule.Window,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"provider_id = ? AND status <> 'CANCELLED' AND start_time < ? AND end_time > ?",
			providerID, w.End, w.Start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) HasAppointmentOverlapping(
	ctx context.Context,
	providerID string,
	w schedule.Window,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"provider_id = ? AND status <> 'CANCELLED' AND start_time < ? AND end_time > ?",
			providerID, w.End, w.Start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Provider").
		Preload("Client").
		Preload("Pet").
		First(&ap, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found", "Appointment not found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListForUser(
	ctx context.Context,
	clientID string,
	providerID string,
	page int,
	limit int,
) ([]models.Appointment, int64, error) {

	conds := func(db *gorm.DB) *gorm.DB {
		if providerID != "" {
			return db.Where("client_id = ? OR provider_id = ?", clientID, providerID)
		}
		return db.Where("client_id = ?", clientID)
	}

	var total int64
	if err := conds(r.db.WithContext(ctx).Model(&models.Appointment{})).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := conds(r.db.WithContext(ctx)).
		Preload("Service").
		Preload("Provider").
		Preload("Client").
		Order("start_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
