package model

import "time"

// WorkWeek is the contracted working time used as the balance baseline.
type WorkWeek struct {
	DaysPerWeek int
	HoursPerDay int
}

// DefaultWorkWeek is five eight-hour days.
var DefaultWorkWeek = WorkWeek{DaysPerWeek: 5, HoursPerDay: 8}

// DayDuration returns the working time of one full day.
func (w WorkWeek) DayDuration() time.Duration {
	return time.Duration(w.HoursPerDay) * time.Hour
}
