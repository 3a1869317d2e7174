package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/Nevenjbx/kompagni-api/internal/domain/appointment"
	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/models"
	"github.com/Nevenjbx/kompagni-api/internal/notify"
	"github.com/Nevenjbx/kompagni-api/internal/schedule"
)

type CreateAppointment struct {
	repo   domain.Repository
	notify *notify.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	notify *notify.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		notify: notify,
	}
}

// Execute books an appointment. Every check runs inside one serializable
// transaction together with the insert; the listing path's read-then-decide
// race is closed here, not there. A serialization abort is retried once
// in-process, then surfaced as a retryable conflict.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in domain.CreateInput,
) (*models.Appointment, error) {

	ap, err := uc.book(ctx, in)
	if httperr.IsBusiness(err, domain.ConflictCode) {
		ap, err = uc.book(ctx, in)
	}
	if err != nil {
		return nil, err
	}

	uc.notify.Dispatch(notify.Event{
		Type:    "appointment_created",
		To:      in.ClientID,
		Subject: "Your booking request was received",
		Body: fmt.Sprintf(
			"Your appointment on %s is pending confirmation.",
			ap.StartTime.UTC().Format(time.RFC3339),
		),
	})

	return ap, nil
}

func (uc *CreateAppointment) book(
	ctx context.Context,
	in domain.CreateInput,
) (*models.Appointment, error) {

	var created *models.Appointment

	err := uc.repo.InSerializableTx(ctx, func(tx domain.Repository) error {

		// 1. Service, fetched inside the transaction
		svc, err := tx.GetService(ctx, in.ServiceID)
		if err != nil {
			return err
		}

		start := in.StartTime.UTC()
		slot := schedule.Window{
			Start: start,
			End:   start.Add(time.Duration(svc.Duration) * time.Minute),
		}

		// 2. Working hours for the day
		wh, err := tx.GetWorkingHours(ctx, svc.ProviderID, int(start.Weekday()))
		if err != nil {
			return err
		}
		if wh == nil {
			return httperr.ErrValidation("outside_working_days", "Provider does not work on this day")
		}

		day, err := schedule.DayFor(wh, start)
		if err != nil {
			return err
		}

		// 3. Inside the work window, outside the break
		if slot.Start.Before(day.Work.Start) || slot.End.After(day.Work.End) {
			return httperr.ErrValidation("outside_working_hours", "Appointment time is outside of working hours")
		}
		if day.Break != nil && slot.Overlaps(*day.Break) {
			return httperr.ErrValidation("during_break", "Appointment falls during the lunch break")
		}

		// 4. Absences
		absent, err := tx.HasAbsenceOverlapping(ctx, svc.ProviderID, slot)
		if err != nil {
			return err
		}
		if absent {
			return httperr.ErrValidation("provider_absent", "Provider is absent at this time")
		}

		// 5. Existing bookings
		taken, err := tx.HasAppointmentOverlapping(ctx, svc.ProviderID, slot)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrValidation("slot_taken", "This time slot is already booked")
		}

		// 6. Insert
		ap := &models.Appointment{
			ClientID:   in.ClientID,
			ProviderID: svc.ProviderID,
			ServiceID:  svc.ID,
			PetID:      in.PetID,
			StartTime:  slot.Start,
			EndTime:    slot.End,
			Status:     string(domain.InitialStatus()),
			Notes:      in.Notes,
		}
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
