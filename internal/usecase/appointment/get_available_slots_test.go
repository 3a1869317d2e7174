package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Nevenjbx/kompagni-api/internal/domain/appointment"
	"github.com/Nevenjbx/kompagni-api/internal/httperr"
	"github.com/Nevenjbx/kompagni-api/internal/models"
)

// Monday
const testDate = "2023-12-25"

func ts(t *testing.T, hm string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, testDate+"T"+hm+":00Z")
	require.NoError(t, err)
	return v
}

// slotsFixture wires a provider working the test date with one service of
// the given duration.
func slotsFixture(durationMin int, start, end, breakStart, breakEnd string) *fakeRepo {
	repo := newFakeRepo()
	repo.addProvider(models.ProviderProfile{ID: "prov-1", UserID: "user-prov"})
	repo.addService(models.Service{ID: "svc-1", ProviderID: "prov-1", Duration: durationMin})
	repo.addHours(models.WorkingHours{
		ProviderID:     "prov-1",
		DayOfWeek:      1,
		StartTime:      start,
		EndTime:        end,
		BreakStartTime: breakStart,
		BreakEndTime:   breakEnd,
	})
	return repo
}

func availabilityInput() domain.AvailabilityInput {
	return domain.AvailabilityInput{ProviderID: "prov-1", ServiceID: "svc-1", Date: testDate}
}

func TestAvailableSlotsInvalidDate(t *testing.T) {
	uc := NewGetAvailableSlots(slotsFixture(30, "09:00", "18:00", "", ""))

	in := availabilityInput()
	in.Date = "25/12/2023"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestAvailableSlotsServiceNotFound(t *testing.T) {
	uc := NewGetAvailableSlots(newFakeRepo())

	_, err := uc.Execute(context.Background(), availabilityInput())
	require.Error(t, err)

	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, httperr.KindNotFound, be.Kind)
}

func TestAvailableSlotsServiceMismatch(t *testing.T) {
	repo := slotsFixture(30, "09:00", "18:00", "", "")
	repo.addService(models.Service{ID: "svc-other", ProviderID: "prov-2", Duration: 30})
	uc := NewGetAvailableSlots(repo)

	in := availabilityInput()
	in.ServiceID = "svc-other"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "service_mismatch"))
}

func TestAvailableSlotsProviderOffThatDay(t *testing.T) {
	repo := newFakeRepo()
	repo.addProvider(models.ProviderProfile{ID: "prov-1", UserID: "user-prov"})
	repo.addService(models.Service{ID: "svc-1", ProviderID: "prov-1", Duration: 30})
	// hours exist only for Tuesday, the requested date is a Monday
	repo.addHours(models.WorkingHours{ProviderID: "prov-1", DayOfWeek: 2, StartTime: "09:00", EndTime: "18:00"})
	uc := NewGetAvailableSlots(repo)

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestAvailableSlotsSkipsBookedSlot(t *testing.T) {
	repo := slotsFixture(30, "09:00", "10:30", "", "")
	repo.addAppointment(models.Appointment{
		ProviderID: "prov-1",
		ClientID:   "user-client",
		StartTime:  ts(t, "09:30"),
		EndTime:    ts(t, "10:00"),
		Status:     "CONFIRMED",
	})
	uc := NewGetAvailableSlots(repo)

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	assert.Equal(t, []string{
		testDate + "T09:00:00Z",
		testDate + "T10:00:00Z",
	}, slots)
}

func TestAvailableSlotsExcludesBreak(t *testing.T) {
	uc := NewGetAvailableSlots(slotsFixture(60, "09:00", "14:00", "12:00", "13:00"))

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	assert.Equal(t, []string{
		testDate + "T09:00:00Z",
		testDate + "T10:00:00Z",
		testDate + "T11:00:00Z",
		testDate + "T13:00:00Z",
	}, slots)
}

func TestAvailableSlotsWholeDayAbsence(t *testing.T) {
	repo := slotsFixture(30, "09:00", "18:00", "", "")
	repo.absences = append(repo.absences, models.ProviderAbsence{
		ProviderID: "prov-1",
		StartDate:  ts(t, "00:00"),
		EndDate:    ts(t, "00:00").Add(24 * time.Hour),
	})
	uc := NewGetAvailableSlots(repo)

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestAvailableSlotsPartialAbsence(t *testing.T) {
	repo := slotsFixture(60, "09:00", "12:00", "", "")
	repo.absences = append(repo.absences, models.ProviderAbsence{
		ProviderID: "prov-1",
		StartDate:  ts(t, "10:00"),
		EndDate:    ts(t, "11:00"),
	})
	uc := NewGetAvailableSlots(repo)

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	assert.Equal(t, []string{
		testDate + "T09:00:00Z",
		testDate + "T11:00:00Z",
	}, slots)
}

func TestAvailableSlotsIgnoresCancelled(t *testing.T) {
	repo := slotsFixture(60, "09:00", "11:00", "", "")
	repo.addAppointment(models.Appointment{
		ProviderID: "prov-1",
		ClientID:   "user-client",
		StartTime:  ts(t, "09:00"),
		EndTime:    ts(t, "10:00"),
		Status:     "CANCELLED",
	})
	uc := NewGetAvailableSlots(repo)

	slots, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	assert.Equal(t, []string{
		testDate + "T09:00:00Z",
		testDate + "T10:00:00Z",
	}, slots)
}

func TestAvailableSlotsIdempotent(t *testing.T) {
	repo := slotsFixture(60, "09:00", "14:00", "12:00", "13:00")
	repo.addAppointment(models.Appointment{
		ProviderID: "prov-1",
		ClientID:   "user-client",
		StartTime:  ts(t, "10:00"),
		EndTime:    ts(t, "11:00"),
		Status:     "PENDING",
	})
	uc := NewGetAvailableSlots(repo)

	first, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), availabilityInput())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
