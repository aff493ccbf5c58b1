package vtcore

// ActionKind identifies the kind of out-of-band event carried by an Action.
type ActionKind int

const (
	// ActionResize reports that the terminal's own dimensions changed.
	ActionResize ActionKind = iota
	// ActionTitle reports a window title change (OSC 0/1/2).
	ActionTitle
	// ActionCopy carries text that should be placed on a system clipboard,
	// emitted by OSC 52 writes and by Overlay's yank command.
	ActionCopy
	// ActionPaste requests that the caller inject clipboard content into the
	// terminal, emitted by Overlay's paste command.
	ActionPaste
	// ActionOverlay requests that the caller enter or exit review/selection
	// mode, emitted by Overlay itself on entry/exit.
	ActionOverlay
	// ActionUrgent reports an attention request: a bell, or a title change
	// while ModeUrgencyHints is set.
	ActionUrgent
	// ActionOpen requests that the caller open a resource, e.g. a hyperlink
	// (OSC 8) activated through Overlay.
	ActionOpen
	// ActionPromptMark reports a shell integration mark (OSC 133): a prompt
	// boundary or command exit recorded by shell_integration.go.
	ActionPromptMark
)

// Action is a single out-of-band event a Terminal or Overlay can emit,
// letting a caller drain one enumerable stream instead of implementing every
// narrow provider interface.
type Action struct {
	Kind ActionKind
	Text string // title, clipboard payload, or URI, depending on Kind
	Rows int // ActionResize, or the absolute row for ActionPromptMark
	Cols int // ActionResize
	Mark int // ActionPromptMark: the ansicode.ShellIntegrationMark value
	ExitCode int // ActionPromptMark: valid only for CommandFinished marks
}

// ActionProvider receives Actions as they occur. Emit must not block; an
// implementation backed by a channel should use a buffered channel or a
// non-blocking send.
type ActionProvider interface {
	Emit(Action)
}

// NoopActions discards all actions.
type NoopActions struct{}

func (NoopActions) Emit(Action) {}

var _ ActionProvider = NoopActions{}

// emitAction sends a to the configured ActionProvider, if any. Safe to call
// with the Terminal's lock held since ActionProvider.Emit must not block or
// call back into the Terminal.
func (t *Terminal) emitAction(a Action) {
	if t.actionProvider != nil {
		t.actionProvider.Emit(a)
	}
}
