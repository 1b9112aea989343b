package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCalendar(t *testing.T) {
	c := DefaultCalendar()

	day, err := c.Get(TypeDay)
	require.NoError(t, err)
	assert.Equal(t, 8.5, day.TargetHours)
	assert.False(t, day.WrapsMidnight())

	night, err := c.Get(TypeNight)
	require.NoError(t, err)
	assert.True(t, night.WrapsMidnight())

	assert.Len(t, c.List(), 3)
}

func TestCalendarGetUnknown(t *testing.T) {
	_, err := DefaultCalendar().Get(Type("evening"))
	assert.ErrorIs(t, err, ErrUnknownShift)
	assert.Equal(t, 8.5, DefaultCalendar().Target(Type("evening")))
}

func TestNewCalendarRejectsBadHours(t *testing.T) {
	_, err := NewCalendar(Definition{Type: TypeDay, Start: 9, End: 24, TargetHours: 8})
	assert.ErrorIs(t, err, ErrInvalidShiftHour)

	_, err = NewCalendar(Definition{Type: "swing", Start: 9, End: 17, TargetHours: 8})
	assert.ErrorIs(t, err, ErrUnknownShift)
}
