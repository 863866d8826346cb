package datetimepicker

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot is one selectable time of day at the fixed 5-minute granularity.
type Slot struct {
	Label   string // 12-hour clock, e.g. "12:00 AM", "11:55 PM"
	Minutes int    // minutes since midnight
}

const slotStep = 5 // minutes

// allSlots enumerates the full day: 288 slots from "12:00 AM" through
// "11:55 PM".
func allSlots() []Slot {
	out := make([]Slot, 0, 24*60/slotStep)
	for m := 0; m < 24*60; m += slotStep {
		out = append(out, Slot{Label: slotLabel(m), Minutes: m})
	}
	return out
}

func slotLabel(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, ampm)
}

// parseHHMM converts a 24-hour "HH:MM" bound to minutes since midnight.
func parseHHMM(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
