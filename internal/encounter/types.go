package encounter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Mask selects one of the four responses to an encounter.
type Mask int

const (
	Mask1 Mask = iota
	Mask2
	Mask3
	Mask4
)

// MaskCount is the number of selectable masks.
const MaskCount = 4

// AllMasks returns the masks in ordinal order.
func AllMasks() []Mask {
	return []Mask{Mask1, Mask2, Mask3, Mask4}
}

// Valid reports whether m is one of the four masks.
func (m Mask) Valid() bool {
	return m >= Mask1 && m <= Mask4
}

func (m Mask) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mask(%d)", int(m))
	}
	return "mask" + strconv.Itoa(int(m)+1)
}

// ParseMask accepts "1".."4" or "mask1".."mask4".
func ParseMask(s string) (Mask, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "mask")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaskCount {
		return 0, fmt.Errorf("invalid mask %q: want 1-%d", s, MaskCount)
	}
	return Mask(n - 1), nil
}

// MarshalText encodes m as "mask1".."mask4".
func (m Mask) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid mask %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes the forms accepted by ParseMask.
func (m *Mask) UnmarshalText(b []byte) error {
	v, err := ParseMask(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Encounter is one dialogue prompt. Content storage owns encounters; the
// game only copies them and never mutates them.
type Encounter struct {
	// ID is the stable sort key for the content pool.
	ID string `json:"id"`

	Dialogue string            `json:"dialogue"`
	Options  [MaskCount]string `json:"options"`
	Feedback [MaskCount]string `json:"feedback"`

	// FriendGroup is an optional tag (e.g. "coworkers").
	FriendGroup string `json:"friend_group,omitempty"`

	// Day gates the encounter to a single day under PolicyDayGated.
	// Zero means any day.
	Day int `json:"day,omitempty"`

	Correct Mask   `json:"correct"`
	Neutral []Mask `json:"neutral,omitempty"`

	// Keywords are advisory cues shown when the player has the matching skill.
	Keywords []string `json:"keywords,omitempty"`
}

// IsNeutral reports whether m is in the neutral set and is not the correct mask.
func (e *Encounter) IsNeutral(m Mask) bool {
	if m == e.Correct {
		return false
	}
	for _, n := range e.Neutral {
		if n == m {
			return true
		}
	}
	return false
}

// FeedbackFor returns the option feedback for m, or "" for an invalid mask.
func (e *Encounter) FeedbackFor(m Mask) string {
	if !m.Valid() {
		return ""
	}
	return e.Feedback[m]
}

// WrongMasks returns masks that are neither correct nor neutral.
func (e *Encounter) WrongMasks() []Mask {
	var out []Mask
	for _, m := range AllMasks() {
		if m != e.Correct && !e.IsNeutral(m) {
			out = append(out, m)
		}
	}
	return out
}

// Validate checks structural rules every encounter must satisfy.
func (e *Encounter) Validate() error {
	var errs []error
	if strings.TrimSpace(e.ID) == "" {
		errs = append(errs, errors.New("id is empty"))
	}
	if strings.TrimSpace(e.Dialogue) == "" {
		errs = append(errs, errors.New("dialogue is empty"))
	}
	for i, o := range e.Options {
		if strings.TrimSpace(o) == "" {
			errs = append(errs, fmt.Errorf("option %d is empty", i+1))
		}
	}
	if !e.Correct.Valid() {
		errs = append(errs, fmt.Errorf("correct mask %d out of range", int(e.Correct)))
	}
	for _, n := range e.Neutral {
		if !n.Valid() {
			errs = append(errs, fmt.Errorf("neutral mask %d out of range", int(n)))
		}
		if n == e.Correct {
			errs = append(errs, fmt.Errorf("neutral set contains the correct mask %s", n))
		}
	}
	if e.Day < 0 {
		errs = append(errs, fmt.Errorf("day %d is negative", e.Day))
	}
	if len(errs) > 0 {
		return fmt.Errorf("encounter %q: %w", e.ID, errors.Join(errs...))
	}
	return nil
}
