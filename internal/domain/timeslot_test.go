package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.May, 9, hour, minute, 0, 0, time.UTC)
}

func TestTimeSlot_Overlaps(t *testing.T) {
	existing := TimeSlot{Start: at(13, 0), End: at(16, 0)}

	cases := []struct {
		name    string
		slot    TimeSlot
		overlap bool
	}{
		{"ends at existing start", TimeSlot{Start: at(10, 0), End: at(13, 0)}, false},
		{"one minute into existing", TimeSlot{Start: at(10, 0), End: at(13, 1)}, true},
		{"starts at existing end", TimeSlot{Start: at(16, 0), End: at(19, 0)}, false},
		{"inside existing", TimeSlot{Start: at(14, 0), End: at(15, 0)}, true},
		{"covers existing", TimeSlot{Start: at(12, 0), End: at(17, 0)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, tc.slot.Overlaps(existing))
			assert.Equal(t, tc.overlap, existing.Overlaps(tc.slot), "overlap must be symmetric")
		})
	}
}

func TestNewTimeSlot(t *testing.T) {
	slot := NewTimeSlot(at(9, 0), DefaultBookingDuration)
	assert.Equal(t, at(12, 0), slot.End)
	assert.Equal(t, 3*time.Hour, slot.Duration())
}
