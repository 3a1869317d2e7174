package appointment

import (
	"context"
	"time"

	domain "github.com/Nevenjbx/kompagni-api/internal/domain/appointment"
	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/schedule"
)

type GetAvailableSlots struct {
	repo domain.Repository
}

func NewGetAvailableSlots(repo domain.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo}
}

// Execute lists the bookable slot starts for one provider, service and
// date, earliest first, as RFC3339 instants. The result is advisory: the
// booking transaction re-checks everything, so a slot returned here can
// still be lost to a concurrent booking.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	date, err := schedule.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date must be a valid YYYY-MM-DD calendar date")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.ProviderID != in.ProviderID {
		return nil, httperr.ErrValidation("service_mismatch", "Service does not belong to this provider")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.ProviderID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if wh == nil {
		// provider does not work that day
		return []string{}, nil
	}

	day, err := schedule.DayFor(wh, date)
	if err != nil {
		return nil, err
	}

	absences, err := uc.repo.ListAbsencesOverlapping(ctx, in.ProviderID, day.Work)
	if err != nil {
		return nil, err
	}

	busy := make([]schedule.Window, 0, len(absences))
	for _, ab := range absences {
		w := schedule.Window{Start: ab.StartDate, End: ab.EndDate}
		if w.Covers(day.Work) {
			// whole day closed, nothing to compute
			return []string{}, nil
		}
		busy = append(busy, w)
	}

	booked, err := uc.repo.ListAppointmentsOverlapping(ctx, in.ProviderID, day.Work)
	if err != nil {
		return nil, err
	}
	for _, ap := range booked {
		busy = append(busy, schedule.Window{Start: ap.StartTime, End: ap.EndTime})
	}

	starts := schedule.SlotStarts(day, time.Duration(svc.Duration)*time.Minute, busy)

	out := make([]string, 0, len(starts))
	for _, s := range starts {
		out = append(out, s.UTC().Format(time.RFC3339))
	}

	return out, nil
}
