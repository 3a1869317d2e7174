package appointment

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Nevenjbx/kompagni-api/internal/domain/appointment"
	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/models"
	"github.com/Nevenjbx/kompagni-api/internal/schedule"
)

// fakeRepo is an in-memory Repository. InSerializableTx serializes callers
// on a mutex, so check-then-insert sequences inside the callback are atomic
// the same way a serializable database transaction makes them.
type fakeRepo struct {
	mu sync.Mutex

	services     map[string]*models.Service
	providers    map[string]*models.ProviderProfile // keyed by user ID
	hours        map[string]map[int]*models.WorkingHours
	absences     []models.ProviderAbsence
	appointments []*models.Appointment

	// injected serialization failures, consumed before fn runs
	conflictsLeft int
	txCalls       int
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:  map[string]*models.Service{},
		providers: map[string]*models.ProviderProfile{},
		hours:     map[string]map[int]*models.WorkingHours{},
	}
}

func (f *fakeRepo) addService(svc models.Service) {
	f.services[svc.ID] = &svc
}

func (f *fakeRepo) addProvider(p models.ProviderProfile) {
	f.providers[p.UserID] = &p
}

func (f *fakeRepo) addHours(wh models.WorkingHours) {
	if f.hours[wh.ProviderID] == nil {
		f.hours[wh.ProviderID] = map[int]*models.WorkingHours{}
	}
	f.hours[wh.ProviderID][wh.DayOfWeek] = &wh
}

func (f *fakeRepo) addAppointment(ap models.Appointment) {
	if ap.ID == "" {
		ap.ID = fmt.Sprintf("ap-%d", len(f.appointments)+1)
	}
	f.appointments = append(f.appointments, &ap)
}

func (f *fakeRepo) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok {
		return nil, httperr.ErrNotFound("service_not_found", "Service not found")
	}
	return svc, nil
}

func (f *fakeRepo) GetProviderByUserID(ctx context.Context, userID string) (*models.ProviderProfile, error) {
	return f.providers[userID], nil
}

func (f *fakeRepo) GetWorkingHours(ctx context.Context, providerID string, dayOfWeek int) (*models.WorkingHours, error) {
	return f.hours[providerID][dayOfWeek], nil
}

func (f *fakeRepo) ListAbsencesOverlapping(ctx context.Context, providerID string, w schedule.Window) ([]models.ProviderAbsence, error) {
	var out []models.ProviderAbsence
	for _, ab := range f.absences {
		if ab.ProviderID != providerID {
			continue
		}
		if w.Overlaps(schedule.Window{Start: ab.StartDate, End: ab.EndDate}) {
			out = append(out, ab)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasAbsenceOverlapping(ctx context.Context, providerID string, w schedule.Window) (bool, error) {
	list, _ := f.ListAbsencesOverlapping(ctx, providerID, w)
	return len(list) > 0, nil
}

func (f *fakeRepo) ListAppointmentsOverlapping(ctx context.Context, providerID string, w schedule.Window) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProviderID != providerID || ap.Status == "CANCELLED" {
			continue
		}
		if w.Overlaps(schedule.Window{Start: ap.StartTime, End: ap.EndTime}) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasAppointmentOverlapping(ctx context.Context, providerID string, w schedule.Window) (bool, error) {
	list, _ := f.ListAppointmentsOverlapping(ctx, providerID, w)
	return len(list) > 0, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if ap.ID == "" {
		ap.ID = fmt.Sprintf("ap-%d", len(f.appointments)+1)
	}
	f.appointments = append(f.appointments, ap)
	return nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, httperr.ErrNotFound("appointment_not_found", "Appointment not found")
}

func (f *fakeRepo) SaveAppointment(ctx context.Context, ap *models.Appointment) error {
	for i, cur := range f.appointments {
		if cur.ID == ap.ID {
			f.appointments[i] = ap
			return nil
		}
	}
	return httperr.ErrNotFound("appointment_not_found", "Appointment not found")
}

func (f *fakeRepo) ListForUser(ctx context.Context, clientID, providerID string, page, limit int) ([]models.Appointment, int64, error) {
	var all []models.Appointment
	for _, ap := range f.appointments {
		if ap.ClientID == clientID || (providerID != "" && ap.ProviderID == providerID) {
			all = append(all, *ap)
		}
	}

	total := int64(len(all))
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []models.Appointment{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeRepo) InSerializableTx(ctx context.Context, fn func(domain.Repository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.txCalls++
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return httperr.ErrConflict(domain.ConflictCode, "This time slot was just booked by someone else. Please try again.")
	}
	return fn(f)
}
