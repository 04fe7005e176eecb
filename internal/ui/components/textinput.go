package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NumberInput wraps bubbles/textinput and drops non-digit keystrokes.
type NumberInput struct {
	Model textinput.Model
}

func NewNumberInput(placeholder string, limit int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "› "
	ti.Focus()
	return NumberInput{Model: ti}
}

// Init starts the cursor blinking.
func (n NumberInput) Init() tea.Cmd {
	return n.Model.Focus()
}

func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		if k := key.String(); len(k) == 1 && (k[0] < '0' || k[0] > '9') {
			return n, nil
		}
	}
	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

func (n NumberInput) View() string {
	return n.Model.View()
}

// Uint32 parses the input. Empty input is an error.
func (n NumberInput) Uint32() (uint32, error) {
	v, err := strconv.ParseUint(n.Model.Value(), 10, 32)
	return uint32(v), err
}
