package timemath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"10:00 AM", 10, true},
		{"1:30 PM", 13.5, true},
		{"12:00 AM", 0, true},
		{"12:30 AM", 0.5, true},
		{"12:00 PM", 12, true},
		{"11:59 pm", 23 + 59.0/60, true},
		{"6:30pm", 18.5, true},
		{" 09:15  Am ", 9.25, true},
		{"", 0, false},
		{"   ", 0, false},
		{"13:00 PM", 0, false},
		{"0:30 AM", 0, false},
		{"10:60 AM", 0, false},
		{"10:00", 0, false},
		{"ten o'clock", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseClock(c.input)
		assert.Equal(t, c.wantOK, ok, "ParseClock(%q) ok", c.input)
		if c.wantOK {
			assert.InDelta(t, c.want, got, 1e-9, "ParseClock(%q)", c.input)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		input float64
		want  string
	}{
		{0, "0:00"},
		{8.5, "8:30"},
		{0.25, "0:15"},
		{7.9999, "8:00"},
		{1.0083, "1:00"},
		{-0.5, "-0:30"},
		{-2.25, "-2:15"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatDuration(c.input), "FormatDuration(%v)", c.input)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "10:00 AM", FormatClock(10))
	assert.Equal(t, "12:30 AM", FormatClock(24.5))
	assert.Equal(t, "6:30 PM", FormatClock(18.5))
	assert.Equal(t, "12:00 PM", FormatClock(12))
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "9:05 AM", NormalizeClock(" 9:05am "))
	assert.Equal(t, "6:30 PM", NormalizeClock("6:30 pm"))
	assert.Equal(t, "10:00", NormalizeClock(" 10:00 "))
	assert.Equal(t, "", NormalizeClock(""))
}

func TestRound4(t *testing.T) {
	assert.Equal(t, 8.3333, Round4(25.0/3))
	assert.Equal(t, 0.5, Round4(0.50004))
	assert.Equal(t, 0.0, Round4(0))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, punch := range []string{"10:00 AM", "1:05 PM", "12:45 AM", "11:59 PM"} {
		h, ok := ParseClock(punch)
		assert.True(t, ok)
		assert.Equal(t, punch, FormatClock(h))
	}
}
