package appointment

import (
	"context"

	"github.com/Nevenjbx/kompagni-api/internal/models"
	"github.com/Nevenjbx/kompagni-api/internal/schedule"
)

// Repository is the persistence capability the use cases run against. The
// same instance serves reads outside a transaction; InSerializableTx hands
// the callback a Repository bound to a serializable transaction, so every
// query can run in either context without duplication.
type Repository interface {
	// -------- Service / Provider --------
	GetService(
		ctx context.Context,
		serviceID string,
	) (*models.Service, error)

	// GetProviderByUserID returns (nil, nil) when the user has no provider
	// profile.
	GetProviderByUserID(
		ctx context.Context,
		userID string,
	) (*models.ProviderProfile, error)

	// -------- Working hours / absences --------
	// GetWorkingHours returns (nil, nil) when the provider has no entry for
	// that day-of-week, i.e. does not work that day.
	GetWorkingHours(
		ctx context.Context,
		providerID string,
		dayOfWeek int,
	) (*models.WorkingHours, error)

	ListAbsencesOverlapping(
		ctx context.Context,
		providerID string,
		w schedule.Window,
	) ([]models.ProviderAbsence, error)

	HasAbsenceOverlapping(
		ctx context.Context,
		providerID string,
		w schedule.Window,
	) (bool, error)

	// -------- Appointments --------
	ListAppointmentsOverlapping(
		ctx context.Context,
		providerID string,
		w schedule.Window,
	) ([]models.Appointment, error)

	HasAppointmentOverlapping(
		ctx context.Context,
		providerID string,
		w schedule.Window,
	) (bool, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListForUser(
		ctx context.Context,
		clientID string,
		providerID string,
		page int,
		limit int,
	) ([]models.Appointment, int64, error)

	// -------- Transaction boundary --------
	InSerializableTx(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
