package play

import "time"

// tickMsg drives the countdown.
type tickMsg time.Time

// feedbackDoneMsg ends the feedback pause with the given sequence number.
// Stale messages from earlier answers are ignored.
type feedbackDoneMsg struct {
	seq int
}

// advanceDayMsg starts the next day after the day-end screen has shown.
type advanceDayMsg struct {
	day int
}

const (
	tickInterval  = 100 * time.Millisecond
	maxTickDelta  = 500 * time.Millisecond
	feedbackPause = 1500 * time.Millisecond
	dayEndPause   = 1200 * time.Millisecond
)
