package vtcore

import "testing"

func TestOverlayEnterExit(t *testing.T) {
	term := New(WithSize(10, 20))
	term.Write([]byte("hello"))

	ov := term.NewOverlay()
	if !ov.Active() {
		t.Fatal("expected overlay active after Enter")
	}

	row, col := term.CursorPos()
	if ov.cursor.Row != row || ov.cursor.Col != col {
		t.Errorf("expected overlay cursor at (%d,%d), got (%d,%d)", row, col, ov.cursor.Row, ov.cursor.Col)
	}

	ov.Key([]byte("q"))
	if ov.Active() {
		t.Error("expected overlay inactive after q")
	}
}

func TestOverlayMovement(t *testing.T) {
	storage := &testScrollback{lines: make([][]Cell, 0)}
	storage.SetMaxLines(100)
	term := New(WithSize(10, 20), WithScrollback(storage))
	for i := 0; i < 15; i++ {
		term.Write([]byte("\n"))
	}
	ov := term.NewOverlay()
	ov.cursor.Row = 0

	ov.Key([]byte("k"))
	if ov.cursor.Row != -1 {
		t.Errorf("expected row -1 after k at top of viewport, got %d", ov.cursor.Row)
	}

	ov.Key([]byte("j"))
	if ov.cursor.Row != 0 {
		t.Errorf("expected row 0 after j, got %d", ov.cursor.Row)
	}
}

func TestOverlayRepeatCount(t *testing.T) {
	term := New(WithSize(10, 20))
	ov := term.NewOverlay()
	ov.cursor.Row = 5

	ov.Key([]byte("3k"))
	if ov.cursor.Row != 2 {
		t.Errorf("expected row 2 after 3k, got %d", ov.cursor.Row)
	}
}

func TestOverlaySelectionNormal(t *testing.T) {
	term := New(WithSize(5, 10))
	term.Write([]byte("abcdefghij"))

	ov := term.NewOverlay()
	ov.cursor.Row = 0
	ov.cursor.Col = 0

	ov.Key([]byte("v"))
	if !ov.selecting {
		t.Fatal("expected selecting after v")
	}

	ov.Key([]byte("lll"))
	if ov.cursor.Col != 3 {
		t.Fatalf("expected col 3, got %d", ov.cursor.Col)
	}

	text := ov.selectedText()
	if text != "abcd" {
		t.Errorf("expected selected text %q, got %q", "abcd", text)
	}
}

func TestOverlayYankEmitsActionAndExits(t *testing.T) {
	var got []Action
	recorder := actionRecorderFunc(func(a Action) { got = append(got, a) })

	term := New(WithSize(5, 10), WithActions(recorder))
	term.Write([]byte("abcde"))

	ov := term.NewOverlay()
	ov.cursor.Row = 0
	ov.cursor.Col = 0
	ov.Key([]byte("v"))
	ov.Key([]byte("ll"))
	ov.Key([]byte("y"))

	if ov.Active() {
		t.Error("expected overlay inactive after y")
	}

	found := false
	for _, a := range got {
		if a.Kind == ActionCopy && a.Text == "abc" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ActionCopy with text %q, got %+v", "abc", got)
	}
}

func TestOverlayCacheReplaysOnExit(t *testing.T) {
	term := New(WithSize(5, 10))
	ov := term.NewOverlay()

	ov.Key([]byte("x")) // not a command, should be cached
	ov.Key([]byte("q")) // exits, replays cache

	row, col := term.CursorPos()
	if col != 1 || row != 0 {
		t.Errorf("expected cached 'x' replayed to terminal, cursor at (0,1), got (%d,%d)", row, col)
	}
}

// actionRecorderFunc adapts a function to ActionProvider for tests.
type actionRecorderFunc func(Action)

func (f actionRecorderFunc) Emit(a Action) { f(a) }

var _ ActionProvider = actionRecorderFunc(nil)
