package vtcore

import "testing"

func TestEncodeMouseNoModeReturnsNil(t *testing.T) {
	got := EncodeMouse(Mouse{Button: MouseLeft, Press: true}, 0)
	if got != nil {
		t.Errorf("expected nil with no mouse mode active, got %q", got)
	}
}

func TestEncodeMouseClassic(t *testing.T) {
	mode := ModeReportMouseClicks
	got := EncodeMouse(Mouse{Button: MouseLeft, Row: 2, Col: 4, Press: true}, mode)
	want := []byte{0x1b, '[', 'M', 32, 32 + 5, 32 + 3}
	if string(got) != string(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestEncodeMouseSGR(t *testing.T) {
	mode := ModeReportMouseClicks | ModeSGRMouse
	got := EncodeMouse(Mouse{Button: MouseLeft, Row: 2, Col: 4, Press: true}, mode)
	if string(got) != "\x1b[<0;5;3M" {
		t.Errorf("expected %q, got %q", "\x1b[<0;5;3M", got)
	}

	got = EncodeMouse(Mouse{Button: MouseLeft, Row: 2, Col: 4, Press: false}, mode)
	if string(got) != "\x1b[<0;5;3m" {
		t.Errorf("expected release %q, got %q", "\x1b[<0;5;3m", got)
	}
}

func TestEncodeMouseMotionRequiresMotionMode(t *testing.T) {
	got := EncodeMouse(Mouse{Button: MouseMove, Row: 0, Col: 0}, ModeReportMouseClicks)
	if got != nil {
		t.Errorf("expected nil motion report without a motion mode, got %q", got)
	}

	got = EncodeMouse(Mouse{Button: MouseMove, Row: 0, Col: 0}, ModeReportMouseClicks|ModeReportAllMouseMotion|ModeSGRMouse)
	if got == nil {
		t.Error("expected a report once ModeReportAllMouseMotion is set")
	}
}
