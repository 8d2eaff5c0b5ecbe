package session

// Reply is the transport-agnostic outcome of one state machine transition:
// the text to send and the keyboard to render next. The transport adapter
// turns it into whatever the messaging provider needs.
type Reply struct {
	Text     string
	Keyboard *Keyboard

	// Monospace asks the transport to render the text as a code block
	Monospace bool
}

// Keyboard describes a reply keyboard as rows of buttons
type Keyboard struct {
	Rows    [][]Button
	OneTime bool
}

// Button is a single rendered choice. Label is the localized display text;
// Command carries the canonical action when the button maps to one.
type Button struct {
	Label   string
	Command Command
}

// NewKeyboard builds a keyboard from rows of buttons
func NewKeyboard(rows ...[]Button) *Keyboard {
	return &Keyboard{Rows: rows}
}

// Row builds a single keyboard row
func Row(buttons ...Button) []Button {
	return buttons
}
