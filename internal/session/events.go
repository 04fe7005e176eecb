package session

import (
	"time"

	"github.com/abhisek/masquerade/internal/encounter"
	"github.com/abhisek/masquerade/internal/signal"
	"github.com/abhisek/masquerade/internal/skills"
)

// Events groups the session's outbound signals. Handlers run synchronously
// on the goroutine that issued the command, in emission order.
type Events struct {
	DayChanged       signal.Signal[int]
	HealthChanged    signal.Signal[int]
	TimeChanged      signal.Signal[time.Duration]
	EncounterChanged signal.Signal[encounter.Encounter]
	AnswerResult     signal.Signal[AnswerResult]
	DayComplete      signal.Signal[int]
	GameOver         signal.Signal[Result]
	GameWon          signal.Signal[Result]
	SkillOffer       signal.Signal[[]skills.Definition]
}
