package slot

import (
	"fmt"
	"regexp"
	"strconv"
)

const minutesPerDay = 24 * 60

var clockRe = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*([AaPp])[Mm]\s*$`)

// ParseClock converts a 12-hour clock string ("9:00 AM", "12:30 pm") to
// minutes since midnight. Hour 12 AM maps to 0, 12 PM stays 12, any other
// PM hour adds 12.
func ParseClock(s string) (int, bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, false
	}

	if hour == 12 {
		hour = 0
	}
	if m[3] == "P" || m[3] == "p" {
		hour += 12
	}

	return hour*60 + minute, true
}

// FormatClock renders minutes since midnight back to the 12-hour form the
// parser accepts, so generated values round-trip.
func FormatClock(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}

	hour := minutes / 60
	minute := minutes % 60

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", h12, minute, suffix)
}

// GenerateTimeSlots produces the ordered bookable time points between
// opening and closing, stepping in intervalMinutes increments over the
// half-open window [opening, closing). A closing at or before the opening
// means the business runs past midnight and the window wraps to the next
// day. Malformed inputs yield an empty sequence: callers treat empty as
// "no slots available", not as an error.
func GenerateTimeSlots(opening, closing string, intervalMinutes int) []string {
	if intervalMinutes <= 0 {
		return []string{}
	}

	open, ok := ParseClock(opening)
	if !ok {
		return []string{}
	}
	close, ok := ParseClock(closing)
	if !ok {
		return []string{}
	}

	if close <= open {
		close += minutesPerDay
	}

	out := make([]string, 0, (close-open)/intervalMinutes)
	for t := open; t < close; t += intervalMinutes {
		out = append(out, FormatClock(t))
	}
	return out
}
