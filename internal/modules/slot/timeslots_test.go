package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"9:00 AM", 540, true},
		{"12:00 AM", 0, true},
		{"12:00 PM", 720, true},
		{"12:30 pm", 750, true},
		{"7:45 PM", 1185, true},
		{"  11:59 pm ", 1439, true},
		{"13:00 PM", 0, false},
		{"0:30 AM", 0, false},
		{"9:60 AM", 0, false},
		{"9:00", 0, false},
		{"", 0, false},
		{"noon", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseClock(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseClock(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.minutes {
			t.Fatalf("ParseClock(%q) = %d, want %d", tc.in, got, tc.minutes)
		}
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for minutes := 0; minutes < 24*60; minutes += 7 {
		s := FormatClock(minutes)
		back, ok := ParseClock(s)
		if !ok {
			t.Fatalf("FormatClock(%d) = %q does not parse back", minutes, s)
		}
		if back != minutes {
			t.Fatalf("round trip %d -> %q -> %d", minutes, s, back)
		}
	}
}

func TestGenerateTimeSlots_BusinessDay(t *testing.T) {
	got := GenerateTimeSlots("9:00 AM", "5:00 PM", 30)

	assert.Len(t, got, 16)
	assert.Equal(t, "9:00 AM", got[0])
	assert.Equal(t, "4:30 PM", got[len(got)-1])
	assert.NotContains(t, got, "5:00 PM")
}

func TestGenerateTimeSlots_WrapsPastMidnight(t *testing.T) {
	got := GenerateTimeSlots("6:00 PM", "2:00 AM", 60)

	assert.Len(t, got, 8)
	assert.Equal(t, "6:00 PM", got[0])
	assert.Contains(t, got, "12:00 AM")
	assert.Equal(t, "1:00 AM", got[len(got)-1])
}

func TestGenerateTimeSlots_StrictlyOrdered(t *testing.T) {
	got := GenerateTimeSlots("9:00 AM", "5:00 PM", 45)

	prev := -1
	for _, s := range got {
		m, ok := ParseClock(s)
		if !ok {
			t.Fatalf("generated value %q does not parse", s)
		}
		if m <= prev {
			t.Fatalf("sequence not strictly increasing at %q", s)
		}
		prev = m
	}
}

func TestGenerateTimeSlots_MalformedInputs(t *testing.T) {
	assert.Empty(t, GenerateTimeSlots("whenever", "5:00 PM", 30))
	assert.Empty(t, GenerateTimeSlots("9:00 AM", "late", 30))
	assert.Empty(t, GenerateTimeSlots("9:00 AM", "5:00 PM", 0))
	assert.Empty(t, GenerateTimeSlots("9:00 AM", "5:00 PM", -15))
}
