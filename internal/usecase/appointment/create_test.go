package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Nevenjbx/kompagni-api/internal/domain/appointment"
	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/models"
	"github.com/Nevenjbx/kompagni-api/internal/notify"
)

func newCreateUC(repo *fakeRepo) *CreateAppointment {
	return NewCreateAppointment(repo, notify.NewDispatcher(notify.LogSender{}))
}

func createInput(t *testing.T, hm string) domain.CreateInput {
	return domain.CreateInput{
		ClientID:  "user-client",
		ServiceID: "svc-1",
		StartTime: ts(t, hm),
	}
}

func TestCreateHappyPath(t *testing.T) {
	repo := slotsFixture(60, "09:00", "18:00", "", "")
	uc := newCreateUC(repo)

	ap, err := uc.Execute(context.Background(), createInput(t, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, "PENDING", ap.Status)
	assert.Equal(t, "prov-1", ap.ProviderID)
	assert.Equal(t, "user-client", ap.ClientID)
	assert.Equal(t, ts(t, "10:00"), ap.StartTime)
	assert.Equal(t, ts(t, "11:00"), ap.EndTime)
	assert.Len(t, repo.appointments, 1)
}

func TestCreateAbuttingAppointmentAccepted(t *testing.T) {
	repo := slotsFixture(60, "09:00", "18:00", "", "")
	repo.addAppointment(models.Appointment{
		ProviderID: "prov-1",
		ClientID:   "someone-else",
		StartTime:  ts(t, "09:00"),
		EndTime:    ts(t, "10:00"),
		Status:     "CONFIRMED",
	})
	uc := newCreateUC(repo)

	// starts exactly where the existing booking ends
	_, err := uc.Execute(context.Background(), createInput(t, "10:00"))
	assert.NoError(t, err)
}

func TestCreateLastSlotMayTouchClosing(t *testing.T) {
	repo := slotsFixture(60, "09:00", "18:00", "", "")
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), createInput(t, "17:00"))
	assert.NoError(t, err)
}

func TestCreateServiceNotFound(t *testing.T) {
	uc := newCreateUC(newFakeRepo())

	_, err := uc.Execute(context.Background(), createInput(t, "10:00"))
	require.Error(t, err)

	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, httperr.KindNotFound, be.Kind)
}

func TestCreateOutsideWorkingDays(t *testing.T) {
	repo := newFakeRepo()
	repo.addProvider(models.ProviderProfile{ID: "prov-1", UserID: "user-prov"})
	repo.addService(models.Service{ID: "svc-1", ProviderID: "prov-1", Duration: 60})
	// Tuesday only, the slot is on a Monday
	repo.addHours(models.WorkingHours{ProviderID: "prov-1", DayOfWeek: 2, StartTime: "09:00", EndTime: "18:00"})
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), createInput(t, "10:00"))
	assert.True(t, httperr.IsBusiness(err, "outside_working_days"))
}

func TestCreateOutsideWorkingHours(t *testing.T) {
	repo := slotsFixture(60, "09:00", "18:00", "", "")
	uc := newCreateUC(repo)

	t.Run("before opening", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), createInput(t, "08:00"))
		assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
	})

	t.Run("runs past closing", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), createInput(t, "17:30"))
		assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
	})
}

func TestCreateDuringBreak(t *testing.T) {
	repo := slotsFixture(60, "09:00", "18:00", "12:00", "13:00")
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), createInput(t, "12:30"))
	assert.True(t, httperr.IsBusiness(err, "during_break"))
}

func TestCreateProviderAbsent(t *testing.T) {
	repo := slotsFixture(60, "09:00", "18:00", "", "")
	repo.absences = append(repo.absences, models.ProviderAbsence{
		ProviderID: "prov-1",
		StartDate:  ts(t, "10:00"),
		EndDate:    ts(t, "12:00"),
	})
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), createInput(t, "11:00"))
	assert.True(t, httperr.IsBusiness(err, "provider_absent"))
}

func TestCreateSlotTaken(t *testing.T) {
	repo := slotsFixture(60, "09:00", "18:00", "", "")
	repo.addAppointment(models.Appointment{
		ProviderID: "prov-1",
		ClientID:   "someone-else",
		StartTime:  ts(t, "10:00"),
		EndTime:    ts(t, "11:00"),
		Status:     "PENDING",
	})
	uc := newCreateUC(repo)

	// partial overlap is enough to reject
	_, err := uc.Execute(context.Background(), createInput(t, "10:30"))
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}

func TestCreateCancelledDoesNotBlock(t *testing.T) {
	repo := slotsFixture(60, "09:00", "18:00", "", "")
	repo.addAppointment(models.Appointment{
		ProviderID: "prov-1",
		ClientID:   "someone-else",
		StartTime:  ts(t, "10:00"),
		EndTime:    ts(t, "11:00"),
		Status:     "CANCELLED",
	})
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), createInput(t, "10:00"))
	assert.NoError(t, err)
}

func TestCreateRetriesOnceAfterSerializationConflict(t *testing.T) {
	repo := slotsFixture(60, "09:00", "18:00", "", "")
	repo.conflictsLeft = 1
	uc := newCreateUC(repo)

	ap, err := uc.Execute(context.Background(), createInput(t, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, "PENDING", ap.Status)
	assert.Equal(t, 2, repo.txCalls)
	assert.Len(t, repo.appointments, 1)
}

func TestCreateGivesUpAfterSecondConflict(t *testing.T) {
	repo := slotsFixture(60, "09:00", "18:00", "", "")
	repo.conflictsLeft = 2
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), createInput(t, "10:00"))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, domain.ConflictCode))
	// exactly one retry, never more
	assert.Equal(t, 2, repo.txCalls)
	assert.Empty(t, repo.appointments)
}

func TestCreateConcurrentDoubleBooking(t *testing.T) {
	repo := slotsFixture(60, "09:00", "18:00", "", "")
	uc := newCreateUC(repo)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := createInput(t, "10:00")
			if i == 1 {
				in.ClientID = "other-client"
			}
			_, errs[i] = uc.Execute(context.Background(), in)
		}(i)
	}
	wg.Wait()

	successes, taken := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case httperr.IsBusiness(err, "slot_taken"):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, taken)
	assert.Len(t, repo.appointments, 1)
	assert.Equal(t, ts(t, "10:00"), repo.appointments[0].StartTime)
}
