package attendance

import (
	"math"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
)

// Calculator derives the hour fields of one employee-day from its punches.
// It is a pure function of (status, shift type, punches).
type Calculator struct {
	calendar *shift.Calendar
}

func NewCalculator(calendar *shift.Calendar) *Calculator {
	return &Calculator{calendar: calendar}
}

// Calculate returns WorkHrs, PendingHrs and ActualWorkHrs. OtHrs is always zero here;
// overtime is entered separately on the record.
func (c *Calculator) Calculate(status attendance.Status, shiftType shift.Type, p attendance.Punches) attendance.Hours {
	if status.IsNonWorking() {
		return attendance.Hours{}
	}

	def := c.definition(shiftType)
	missing := attendance.Hours{PendingHrs: timemath.Round4(def.TargetHours)}

	checkIn, okIn := timemath.ParseClock(p.CheckIn)
	checkOut, okOut := timemath.ParseClock(p.CheckOut)
	if !okIn || !okOut {
		return missing
	}

	if def.Type == shift.TypeNight && checkOut <= checkIn {
		checkOut += 24
	}
	span := checkOut - checkIn
	if span <= 0 {
		return missing
	}

	net := math.Max(0, span-c.extraLunch(def, checkIn, p))

	return attendance.Hours{
		WorkHrs:       timemath.Round4(math.Min(net, def.TargetHours)),
		PendingHrs:    timemath.Round4(math.Max(0, def.TargetHours-net)),
		ActualWorkHrs: timemath.Round4(net),
	}
}

// extraLunch is the lunch time taken beyond the shift's allowance.
func (c *Calculator) extraLunch(def shift.Definition, checkIn float64, p attendance.Punches) float64 {
	if !def.HasLunch {
		return 0
	}
	lunchIn, okIn := timemath.ParseClock(p.LunchIn)
	lunchOut, okOut := timemath.ParseClock(p.LunchOut)
	if !okIn || !okOut {
		return 0
	}

	if def.Type == shift.TypeNight {
		if lunchIn < checkIn {
			lunchIn += 24
		}
		if lunchOut <= lunchIn {
			lunchOut += 24
		}
	}

	taken := lunchOut - lunchIn
	if taken <= 0 {
		return 0
	}
	return math.Max(0, taken-def.LunchAllowance)
}

func (c *Calculator) definition(t shift.Type) shift.Definition {
	if def, err := c.calendar.Get(t); err == nil {
		return def
	}
	def, _ := c.calendar.Get(shift.TypeDay)
	return def
}
