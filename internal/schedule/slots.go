package schedule

import "time"

// SlotStarts walks the working window in steps of the service duration and
// keeps every candidate [cursor, cursor+duration) that fits before the end
// of the day and touches no busy window. The cursor advances by the full
// duration whether or not the candidate was kept, so slots never realign
// after a rejection.
//
// busy is expected to contain existing appointments, the break (if any) and
// absences, all as half-open windows.
func SlotStarts(day Day, duration time.Duration, busy []Window) []time.Time {
	if duration <= 0 {
		return nil
	}

	blocked := busy
	if day.Break != nil {
		blocked = append(append([]Window{}, busy...), *day.Break)
	}

	var starts []time.Time
	for cur := day.Work.Start; !cur.Add(duration).After(day.Work.End); cur = cur.Add(duration) {
		candidate := Window{Start: cur, End: cur.Add(duration)}
		if candidate.OverlapsAny(blocked) {
			continue
		}
		starts = append(starts, cur)
	}

	return starts
}
