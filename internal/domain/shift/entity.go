package shift

// Type identifies a shift variant.
type Type string

const (
	TypeDay    Type = "day"
	TypeNight  Type = "night"
	TypeSunday Type = "sunday"
)

// Definition is the immutable configuration attached to a shift variant.
// Times are decimal hours in [0,24). A night shift's End may be <= Start,
// meaning it wraps past midnight.
type Definition struct {
	Type           Type    `json:"type"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	LunchStart     float64 `json:"lunch_start,omitempty"`
	LunchEnd       float64 `json:"lunch_end,omitempty"`
	LunchAllowance float64 `json:"lunch_allowance"`
	HasLunch       bool    `json:"has_lunch"`
	TargetHours    float64 `json:"target_hours"`
}

// WrapsMidnight reports whether the shift ends on the following day.
func (d Definition) WrapsMidnight() bool {
	return d.Type == TypeNight || d.End <= d.Start
}

// IsValidType checks whether s names a known shift variant
func IsValidType(s string) bool {
	switch Type(s) {
	case TypeDay, TypeNight, TypeSunday:
		return true
	}
	return false
}
