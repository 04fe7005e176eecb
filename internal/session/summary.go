package session

// Result holds the aggregate statistics of a session, produced at game end
// for the results screen and the history recorder. It depends only on the
// seed and the answers given, never on the session ID.
type Result struct {
	Seed           uint32
	Won            bool
	Day            int
	Health         int
	TotalAnswers   int
	CorrectAnswers int
	Skills         []string
}

// Accuracy returns CorrectAnswers / TotalAnswers, or 0 with no answers.
func (r Result) Accuracy() float64 {
	if r.TotalAnswers == 0 {
		return 0
	}
	return float64(r.CorrectAnswers) / float64(r.TotalAnswers)
}
