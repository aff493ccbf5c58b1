package vtcore

import "unicode/utf8"

// MouseButton identifies which button a Mouse event reports.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	// MouseMove marks a motion event with no button held; only reported
	// under ModeReportAllMouseMotion.
	MouseMove
)

// Mouse is a single mouse event: a press, release, or motion at (Row, Col),
// 0-based.
type Mouse struct {
	Button   MouseButton
	Row, Col int
	Press    bool // false for button release or plain motion
	Modifier KeyModifier
}

// EncodeMouse translates a Mouse event into the reply bytes the active
// mouse-reporting protocol expects (SGR, UTF-8, or classic X10-style),
// honoring which reporting mode is enabled. Returns nil if no mouse
// reporting mode is active, if the event is a motion that the active
// mode wouldn't report, or if the classic encoding is in use and a
// coordinate is past 223 (1-based).
func EncodeMouse(m Mouse, mode TerminalMode) []byte {
	const anyMouseMode = ModeReportMouseClicks | ModeReportCellMouseMotion | ModeReportAllMouseMotion
	if mode&anyMouseMode == 0 {
		return nil
	}

	if m.Button == MouseMove && mode&ModeReportAllMouseMotion == 0 {
		return nil
	}

	sgr := mode&ModeSGRMouse != 0

	var button int
	if !sgr && !m.Press {
		button = 3
	} else {
		switch m.Button {
		case MouseLeft:
			button = 0
		case MouseMiddle:
			button = 1
		case MouseRight:
			button = 2
		case MouseWheelUp:
			button = 64
		case MouseWheelDown:
			button = 65
		case MouseMove:
			button = 32 // motion-with-no-button marker
		}
	}

	if m.Modifier&ModShift != 0 {
		button += 4
	}
	if m.Modifier&ModAlt != 0 {
		button += 8
	}
	if m.Modifier&ModCtrl != 0 {
		button += 16
	}

	if sgr {
		kind := byte('M')
		if !m.Press && m.Button != MouseMove {
			kind = 'm'
		}
		return []byte("\x1b[<" + itoa(button) + ";" + itoa(m.Col+1) + ";" + itoa(m.Row+1) + string(kind))
	}

	if mode&ModeUTF8Mouse != 0 {
		out := []byte{0x1b, '[', 'M', byte(32 + button)}
		out = appendUTF8Coord(out, m.Col+1)
		out = appendUTF8Coord(out, m.Row+1)
		return out
	}

	if m.Col >= 223 || m.Row >= 223 {
		// Classic encoding has no escape for coordinates beyond 223; such
		// events are dropped, not clamped or sent in another protocol.
		return nil
	}

	return []byte{0x1b, '[', 'M', byte(32 + button), byte(32 + m.Col + 1), byte(32 + m.Row + 1)}
}

// appendUTF8Coord appends one mouse coordinate encoded as UTF-8 mouse mode
// does: the value 32+n as a Unicode code point, extending classic mouse
// reporting's 223-column ceiling up to 2015.
func appendUTF8Coord(out []byte, n int) []byte {
	r := rune(32 + n)
	var buf [utf8.UTFMax]byte
	w := utf8.EncodeRune(buf[:], r)
	return append(out, buf[:w]...)
}
