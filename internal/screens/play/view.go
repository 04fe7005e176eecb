package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/masquerade/internal/session"
	"github.com/abhisek/masquerade/internal/ui/components"
	"github.com/abhisek/masquerade/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.err != nil:
		body = s.viewError(cw)
	case s.quitConfirm:
		body = components.Card(theme.Title.Width(cw-6).Render("Leave this party?")+"\n\n"+
			theme.Subtitle.Width(cw-6).Render("Your progress in this game will be lost."), cw)
	case s.sess.Phase() == session.PhaseDayEnd:
		body = s.viewDayEnd(cw)
	default:
		body = s.viewEncounter(cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *Screen) viewError(cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("The party can't start")
	msg := theme.Body.Width(cw - 6).Render(s.err.Error())
	return components.Card(title+"\n\n"+msg, cw)
}

func (s *Screen) viewEncounter(cw int) string {
	st := s.sess.State()
	if st.Encounter == nil {
		return theme.Hint.Render("Arriving...")
	}
	enc := st.Encounter
	p := s.sess.Progress()

	var b strings.Builder

	total := s.sess.DecisionTime()
	frac := 0.0
	if total > 0 {
		frac = float64(st.Remaining) / float64(total)
	}
	timer := components.ProgressBar{
		Label:   "Time",
		Percent: frac,
		Caption: fmt.Sprintf("%.1fs", st.Remaining.Seconds()),
		Width:   cw,
		Low:     0.3,
	}
	b.WriteString(timer.View())
	b.WriteString("\n")
	dots := strings.Repeat("● ", p.Completed) + strings.Repeat("○ ", max(p.Required-p.Completed, 0))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Encounter %d of %d  %s", min(p.Completed+1, p.Required), p.Required, strings.TrimSpace(dots))))
	b.WriteString("\n\n")

	if enc.FriendGroup != "" {
		b.WriteString(theme.Hint.Render(enc.FriendGroup))
		b.WriteString("\n")
	}
	dialogue := enc.Dialogue
	if s.sess.Skills().ShowKeywords() {
		dialogue = highlight(dialogue, enc.Keywords)
	}
	b.WriteString(theme.Dialogue.Width(cw).Render(dialogue))
	b.WriteString("\n\n")

	picker := s.picker
	picker.Disabled = st.Paused
	b.WriteString(picker.View(cw))
	b.WriteString("\n\n")

	switch {
	case s.feedback != nil:
		b.WriteString(s.viewFeedback(cw))
	case s.userPaused:
		b.WriteString(theme.Subtitle.Width(cw).Render("Paused"))
	case s.sess.Skills().ShowKeywords() && len(enc.Keywords) > 0:
		b.WriteString(theme.Hint.Render("Cues: " + strings.Join(enc.Keywords, ", ")))
	}
	return b.String()
}

func (s *Screen) viewFeedback(cw int) string {
	f := s.feedback
	label := map[session.Outcome]string{
		session.OutcomeCorrect: "Nailed it.",
		session.OutcomeNeutral: "That was fine.",
		session.OutcomeWrong:   "Oof.",
		session.OutcomeTimeout: "Too slow.",
	}[f.Outcome]
	if f.Retry {
		label = "Second chance."
	}
	head := theme.OutcomeStyle(f.Outcome.String()).Render(label)
	return head + " " + theme.Body.Width(cw-lipgloss.Width(head)-1).Render(f.Feedback)
}

func (s *Screen) viewDayEnd(cw int) string {
	var b strings.Builder
	day := s.dayDone
	if day == 0 {
		day = s.sess.State().Day
	}
	b.WriteString(theme.Title.Width(cw).Render(fmt.Sprintf("Day %d survived", day)))
	b.WriteString("\n\n")
	if s.feedback != nil {
		b.WriteString(s.viewFeedback(cw))
		b.WriteString("\n\n")
	}

	if s.sess.State().SelectionDone {
		msg := "Resting up for tomorrow..."
		if s.picked != "" && s.picked != "nothing" {
			msg = "You picked up " + s.picked + ". " + msg
		}
		b.WriteString(theme.Subtitle.Width(cw).Render(msg))
		return b.String()
	}

	b.WriteString(theme.Subtitle.Width(cw).Render("Pick a skill for tomorrow"))
	b.WriteString("\n\n")
	reg := s.sess.Skills()
	for i, d := range s.offers {
		name := d.Label(reg.Stacks(d.Type) + 1)
		line := fmt.Sprintf("[%d] %s", i+1, name)
		style := theme.Body
		prefix := "  "
		if i == s.offerCursor {
			style = theme.Selected
			prefix = "▸ "
		}
		b.WriteString(prefix + style.Render(line) + "\n")
		b.WriteString("      " + theme.Hint.Width(cw-6).Render(d.Description) + "\n")
	}
	return components.Card(strings.TrimRight(b.String(), "\n"), cw)
}

// highlight styles every case-insensitive occurrence of each keyword.
func highlight(text string, keywords []string) string {
	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		return text
	}
	marks := make([]bool, len(text))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		for from := 0; ; {
			i := strings.Index(lower[from:], kw)
			if i < 0 {
				break
			}
			for j := from + i; j < from+i+len(kw); j++ {
				marks[j] = true
			}
			from += i + len(kw)
		}
	}

	var b strings.Builder
	for i := 0; i < len(text); {
		j := i
		for j < len(text) && marks[j] == marks[i] {
			j++
		}
		if marks[i] {
			b.WriteString(theme.Keyword.Render(text[i:j]))
		} else {
			b.WriteString(text[i:j])
		}
		i = j
	}
	return b.String()
}
