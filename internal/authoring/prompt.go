package authoring

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write encounters for a short social survival game. The player meets
people and must pick one of four "masks", i.e. four ways to reply.

Rules:
- Each encounter has one line of dialogue spoken to the player and exactly four replies.
- Exactly one reply is correct for the situation. Mark it in "correct" as mask1..mask4.
- Up to two other replies may be harmless but unhelpful. List them in "neutral".
- The remaining replies are socially wrong in an obvious-in-hindsight way.
- "feedback" has one short reaction per reply, in the same order, written as what the other person does or says.
- Vary which mask is correct. Do not always put the correct reply first.
- Keywords are two or three words from the dialogue that hint at the right reply.
- IDs are lowercase, use only letters, digits, "-" and "_", and start with the friend group.
- Keep every line under 120 characters. No profanity.
- Never reuse an ID from the "existing" list.`

// dayTone describes how hard encounters on a given day should read.
func dayTone(day int) string {
	switch {
	case day <= 0:
		return "any difficulty"
	case day == 1:
		return "easy: the right reply is fairly obvious"
	case day == 2:
		return "medium: two replies look plausible"
	default:
		return "hard: subtle cues, the neutral replies are tempting"
	}
}

func buildUserMessage(b Brief, maxAvoid int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write %d encounters.\n", b.Count)
	group := b.FriendGroup
	if group == "" {
		group = "any"
	}
	fmt.Fprintf(&sb, "Friend group: %s\n", group)
	fmt.Fprintf(&sb, "Day: %d (%s)\n", b.Day, dayTone(b.Day))
	if b.Notes != "" {
		fmt.Fprintf(&sb, "Notes: %s\n", b.Notes)
	}
	sb.WriteString("\nExisting encounter IDs:\n")
	sb.WriteString(listRecent(b.Avoid, maxAvoid))
	return sb.String()
}

// listRecent formats the last max items as a numbered list, or "None".
func listRecent(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}
	var sb strings.Builder
	for i, it := range items {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, it)
	}
	return strings.TrimRight(sb.String(), "\n")
}
