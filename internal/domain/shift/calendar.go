package shift

import "fmt"

// Calendar is the configured set of shift definitions, looked up by variant.
type Calendar struct {
	defs map[Type]Definition
}

// DefaultDefinitions returns the factory shift set.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Type: TypeDay, Start: 10, End: 18.5, LunchStart: 13, LunchEnd: 13.5, LunchAllowance: 0.5, HasLunch: true, TargetHours: 8.5},
		{Type: TypeNight, Start: 16, End: 0.5, LunchStart: 20, LunchEnd: 20.5, LunchAllowance: 0.5, HasLunch: true, TargetHours: 8.5},
		{Type: TypeSunday, Start: 10, End: 15, TargetHours: 5},
	}
}

// NewCalendar builds a calendar. Later definitions override earlier ones of the same type.
func NewCalendar(defs ...Definition) (*Calendar, error) {
	c := &Calendar{defs: make(map[Type]Definition, len(defs))}
	for _, d := range defs {
		if !IsValidType(string(d.Type)) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownShift, d.Type)
		}
		for _, h := range []float64{d.Start, d.End, d.LunchStart, d.LunchEnd} {
			if h < 0 || h >= 24 {
				return nil, fmt.Errorf("%w: %s shift", ErrInvalidShiftHour, d.Type)
			}
		}
		if d.TargetHours <= 0 {
			return nil, fmt.Errorf("%s shift target hours must be positive", d.Type)
		}
		c.defs[d.Type] = d
	}
	return c, nil
}

// DefaultCalendar returns the calendar built from DefaultDefinitions.
func DefaultCalendar() *Calendar {
	c, err := NewCalendar(DefaultDefinitions()...)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the definition for t.
func (c *Calendar) Get(t Type) (Definition, error) {
	d, ok := c.defs[t]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownShift, t)
	}
	return d, nil
}

// Target returns the target hours for t, falling back to the day shift.
func (c *Calendar) Target(t Type) float64 {
	if d, err := c.Get(t); err == nil {
		return d.TargetHours
	}
	if d, err := c.Get(TypeDay); err == nil {
		return d.TargetHours
	}
	return 0
}

// List returns definitions in day, night, sunday order.
func (c *Calendar) List() []Definition {
	var out []Definition
	for _, t := range []Type{TypeDay, TypeNight, TypeSunday} {
		if d, ok := c.defs[t]; ok {
			out = append(out, d)
		}
	}
	return out
}
