package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func starts(t *testing.T, day Day, durationMin int, busy []Window) []string {
	t.Helper()
	var out []string
	for _, s := range SlotStarts(day, time.Duration(durationMin)*time.Minute, busy) {
		out = append(out, s.Format("15:04"))
	}
	return out
}

func TestSlotStartsSkipsBookedSlot(t *testing.T) {
	day := Day{Work: win(t, "09:00", "10:30")}
	busy := []Window{win(t, "09:30", "10:00")}

	assert.Equal(t, []string{"09:00", "10:00"}, starts(t, day, 30, busy))
}

func TestSlotStartsExcludesBreak(t *testing.T) {
	br := win(t, "12:00", "13:00")
	day := Day{Work: win(t, "09:00", "14:00"), Break: &br}

	assert.Equal(t, []string{"09:00", "10:00", "11:00", "13:00"}, starts(t, day, 60, nil))
}

func TestSlotStartsExcludesAbsence(t *testing.T) {
	day := Day{Work: win(t, "09:00", "12:00")}
	busy := []Window{win(t, "10:00", "11:00")}

	assert.Equal(t, []string{"09:00", "11:00"}, starts(t, day, 60, busy))
}

func TestSlotStartsLastSlotMayTouchClosing(t *testing.T) {
	day := Day{Work: win(t, "09:00", "10:00")}

	// 09:30+30m ends exactly at closing and is still valid
	assert.Equal(t, []string{"09:00", "09:30"}, starts(t, day, 30, nil))
}

func TestSlotStartsStepEqualsDuration(t *testing.T) {
	day := Day{Work: win(t, "09:00", "12:00")}
	busy := []Window{win(t, "09:15", "09:45")}

	// the 09:00 candidate is rejected but the cursor still advances by the
	// full duration, so the grid never realigns around the busy window
	assert.Equal(t, []string{"10:00", "11:00"}, starts(t, day, 60, busy))
}

func TestSlotStartsServiceLongerThanDay(t *testing.T) {
	day := Day{Work: win(t, "09:00", "10:00")}

	assert.Empty(t, starts(t, day, 90, nil))
	assert.Empty(t, starts(t, day, 0, nil))
}

func TestSlotStartsIdempotent(t *testing.T) {
	br := win(t, "12:00", "13:00")
	day := Day{Work: win(t, "09:00", "14:00"), Break: &br}
	busy := []Window{win(t, "10:00", "11:00")}

	first := SlotStarts(day, time.Hour, busy)
	second := SlotStarts(day, time.Hour, busy)
	assert.Equal(t, first, second)
}

func TestSlotStartsDoesNotMutateBusy(t *testing.T) {
	br := win(t, "12:00", "13:00")
	day := Day{Work: win(t, "09:00", "14:00"), Break: &br}
	busy := make([]Window, 0, 4)
	busy = append(busy, win(t, "10:00", "11:00"))

	SlotStarts(day, time.Hour, busy)
	assert.Len(t, busy, 1)
}
