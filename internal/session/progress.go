package session

// Progress summarizes how far the player is through the current day and run.
type Progress struct {
	Day       int
	TotalDays int
	Completed int
	Required  int
}

// DayFraction returns Completed / Required, clamped to [0, 1].
func (p Progress) DayFraction() float64 {
	if p.Required <= 0 {
		return 0
	}
	f := float64(p.Completed) / float64(p.Required)
	if f > 1 {
		return 1
	}
	return f
}

// FinalDay reports whether the current day is the last configured one.
func (p Progress) FinalDay() bool {
	return p.Day >= p.TotalDays
}
