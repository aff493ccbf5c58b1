package vtcore

// KeyModifier is a bitmask of modifier keys held while a Key was typed.
type KeyModifier uint8

const (
	ModAlt KeyModifier = 1 << iota
	ModCtrl
	ModShift
	ModLogo
)

// KeyValue identifies a non-printable key.
type KeyValue int

const (
	KeyNone KeyValue = iota
	KeyEscape
	KeyBackspace
	KeyEnter
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Key is a single typed keystroke: either a printable Text (which EncodeKey
// passes through as UTF-8, prefixed with ESC under ModAlt) or a non-printable
// Value such as KeyUp.
type Key struct {
	Value    KeyValue
	Text     string
	Modifier KeyModifier
}

// EncodeKey translates a typed Key into the exact reply bytes a connected
// program expects, honoring cursor-key mode (DECCKM) and newline-on-enter
// mode the way the live Terminal's own mode bitmask reports them.
func EncodeKey(k Key, mode TerminalMode) []byte {
	appCursor := mode&ModeCursorKeys != 0
	crlf := mode&ModeLineFeedNewLine != 0

	if k.Value == KeyNone {
		if k.Modifier&ModAlt != 0 {
			return append([]byte{0x1b}, []byte(k.Text)...)
		}
		return []byte(k.Text)
	}

	ctrl := k.Modifier&ModCtrl != 0
	alt := k.Modifier&ModAlt != 0
	shift := k.Modifier&ModShift != 0
	logo := k.Modifier&ModLogo != 0

	switch k.Value {
	case KeyEscape:
		return []byte{0x1b}

	case KeyBackspace:
		if alt {
			return []byte{0x1b, 0x7f}
		}
		return []byte{0x7f}

	case KeyEnter:
		switch {
		case alt && crlf:
			return []byte("\x1b\r\n")
		case alt:
			return []byte("\x1b\r")
		case crlf:
			return []byte("\r\n")
		default:
			return []byte("\r")
		}

	case KeyDelete:
		return modifiedCSI("3~", ctrl, alt, shift, logo)
	case KeyInsert:
		return modifiedCSI("2~", ctrl, alt, shift, logo)
	case KeyHome:
		if appCursor {
			return modifiedCSIFinal('H', ctrl, alt, shift, logo)
		}
		return []byte("\x1b[7~")
	case KeyEnd:
		if appCursor {
			return modifiedCSIFinal('F', ctrl, alt, shift, logo)
		}
		return []byte("\x1b[8~")
	case KeyPageUp:
		return modifiedCSI("5~", ctrl, alt, shift, logo)
	case KeyPageDown:
		return modifiedCSI("6~", ctrl, alt, shift, logo)

	case KeyUp:
		return arrowKey('A', appCursor, ctrl, alt, shift, logo)
	case KeyDown:
		return arrowKey('B', appCursor, ctrl, alt, shift, logo)
	case KeyRight:
		return arrowKey('C', appCursor, ctrl, alt, shift, logo)
	case KeyLeft:
		return arrowKey('D', appCursor, ctrl, alt, shift, logo)

	case KeyF1, KeyF2, KeyF3, KeyF4:
		final := byte(int('P') + int(k.Value-KeyF1))
		if !ctrl && !alt && !shift && !logo {
			return []byte{0x1b, 'O', final}
		}
		return modifiedCSIFinal(final, ctrl, alt, shift, logo)
	case KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12:
		code := []string{"15", "17", "18", "19", "20", "21", "23", "24"}[k.Value-KeyF5]
		return modifiedCSI(code+"~", ctrl, alt, shift, logo)
	}

	return nil
}

// arrowKey encodes one of the four cursor keys: a modifier takes priority
// over application-cursor mode, matching xterm's own precedence.
func arrowKey(final byte, appCursor, ctrl, alt, shift, logo bool) []byte {
	if ctrl || alt || shift || logo {
		return modifiedCSIFinal(final, ctrl, alt, shift, logo)
	}
	if appCursor {
		return []byte{0x1b, 'O', final}
	}
	return []byte{0x1b, '[', final}
}

// modifierParam returns the sum of the held modifier bits (shift=1, alt=2,
// ctrl=4, logo=8), or 0 if nothing is held; callers add 1 to form the xterm
// modifier parameter.
func modifierParam(ctrl, alt, shift, logo bool) int {
	n := 0
	if shift {
		n |= 1
	}
	if alt {
		n |= 2
	}
	if ctrl {
		n |= 4
	}
	if logo {
		n |= 8
	}
	return n
}

// modifiedCSI writes "\x1B[<suffix>" unmodified, or "\x1B[<code>;<N>~" when
// a modifier is held, where suffix is "<code>~"-shaped (delete/insert/pgup/pgdn).
func modifiedCSI(suffix string, ctrl, alt, shift, logo bool) []byte {
	n := modifierParam(ctrl, alt, shift, logo)
	if n == 0 {
		return []byte("\x1b[" + suffix)
	}
	code := suffix[:len(suffix)-1]
	final := suffix[len(suffix)-1]
	return []byte("\x1b[" + code + ";" + itoa(n+1) + string(final))
}

// modifiedCSIFinal writes "\x1B[<final>" unmodified, or "\x1B[1;<N><final>"
// when a modifier is held (Home/End/F1-F4 shape).
func modifiedCSIFinal(final byte, ctrl, alt, shift, logo bool) []byte {
	n := modifierParam(ctrl, alt, shift, logo)
	if n == 0 {
		return []byte{0x1b, '[', final}
	}
	return []byte("\x1b[1;" + itoa(n+1) + string(final))
}
