package vtcore

import "unicode/utf8"

// Overlay layers a vi-style, read-only review and selection mode on top of a
// live Terminal. It never mutates the underlying grid: it scrolls into
// scrollback with its own offset, moves its own Cursor, and keeps selection
// highlights in a side map that Cell() consults before falling through to the
// terminal's own content.
//
// Bytes typed while the overlay is active are buffered in cache rather than
// fed to the terminal; on exit they are replayed through the terminal's
// Write so nothing the connected program would have seen is lost.
type Overlay struct {
	term *Terminal

	cursor *Cursor
	scroll int // rows scrolled back into history; 0 == viewport bottom

	selection  Selection
	selecting  bool
	changed    map[Position]Cell // overlay-only highlight overrides
	status     *overlayStatus
	cache      []byte
	prefix     byte // pending single-byte command prefix ('g'), 0 if none
	times      int  // accumulated numeric repeat count, 0 if none typed
	active     bool
}

// overlayStatus renders a single-line status bar at the bottom row,
// reserved for overlay mode and never shown to the live terminal.
type overlayStatus struct {
	mode string
	pos  string
}

// NewOverlay creates an inactive Overlay bound to term. Call Enter to begin
// reviewing.
func NewOverlay(term *Terminal) *Overlay {
	return &Overlay{term: term}
}

// NewOverlay creates an Overlay bound to t and immediately enters review
// mode, matching the common call pattern of pairing construction with entry.
func (t *Terminal) NewOverlay() *Overlay {
	ov := NewOverlay(t)
	ov.Enter()
	return ov
}

// Enter activates review mode, placing the overlay cursor over the live
// cursor and resetting scroll to the bottom of the viewport.
func (o *Overlay) Enter() {
	row, col := o.term.CursorPos()
	o.cursor = &Cursor{Row: row, Col: col, Visible: true}
	o.scroll = 0
	o.selecting = false
	o.selection = Selection{}
	o.changed = nil
	o.cache = o.cache[:0]
	o.prefix = 0
	o.times = 0
	o.active = true
	o.term.emitAction(Action{Kind: ActionOverlay, Text: "enter"})
}

// Exit deactivates review mode and replays any buffered input bytes through
// the terminal, so keystrokes typed while reviewing aren't lost.
func (o *Overlay) Exit() {
	o.active = false
	if len(o.cache) > 0 {
		o.term.Write(o.cache)
		o.cache = nil
	}
	o.term.emitAction(Action{Kind: ActionOverlay, Text: "exit"})
}

// Active reports whether review mode is currently on.
func (o *Overlay) Active() bool {
	return o.active
}

// rows/cols mirror the bound terminal's current viewport dimensions.
func (o *Overlay) rows() int { return o.term.Rows() }
func (o *Overlay) cols() int { return o.term.Cols() }

// historyLen is how many rows are scrolled back above the live viewport.
func (o *Overlay) historyLen() int {
	return o.term.ScrollbackProviderLen()
}

// Cell returns the cell that should be rendered at overlay-relative (row,
// col): the status bar if it covers this row, else any selection-highlight
// override, else the scrolled-back terminal content.
func (o *Overlay) Cell(row, col int) Cell {
	if o.status != nil && row == o.rows()-1 {
		return o.statusCell(col)
	}
	if o.changed != nil {
		if c, ok := o.changed[Position{Row: row, Col: col}]; ok {
			return c
		}
	}
	return o.contentCell(row, col)
}

// contentCell resolves (row, col) against scrollback+viewport using the
// current scroll offset, without touching the live grid.
func (o *Overlay) contentCell(row, col int) Cell {
	absRow := row - o.scroll
	hist := o.historyLen()

	if absRow < 0 {
		idx := hist + absRow
		if idx >= 0 && idx < hist {
			line := o.term.ScrollbackLine(idx)
			if col < len(line) {
				return line[col]
			}
		}
		return NewCell()
	}

	if cell := o.term.Cell(absRow, col); cell != nil {
		return *cell
	}
	return NewCell()
}

func (o *Overlay) statusCell(col int) Cell {
	c := NewCell()
	text := o.status.mode + " " + o.status.pos
	runes := []rune(text)
	if col < len(runes) {
		c.Char = runes[col]
	} else {
		c.Char = ' '
	}
	c.SetFlag(CellFlagReverse)
	return c
}

// ShowStatus enables the bottom-row status bar.
func (o *Overlay) ShowStatus() {
	o.status = &overlayStatus{}
	o.updateStatus()
}

// HideStatus disables the bottom-row status bar.
func (o *Overlay) HideStatus() {
	o.status = nil
}

func (o *Overlay) updateStatus() {
	if o.status == nil {
		return
	}
	if o.selecting {
		switch o.selection.Mode {
		case SelectionBlock:
			o.status.mode = "-- VISUAL BLOCK --"
		case SelectionLine:
			o.status.mode = "-- VISUAL LINE --"
		default:
			o.status.mode = "-- VISUAL --"
		}
	} else {
		o.status.mode = "-- REVIEW --"
	}
	o.status.pos = positionLabel(o.cursor.Row-o.scroll, o.cursor.Col)
}

func positionLabel(row, col int) string {
	return itoa(row+1) + "," + itoa(col+1)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Key feeds typed input to the overlay's command dispatcher, one byte at a
// time in sequence.
func (o *Overlay) Key(data []byte) {
	for _, b := range data {
		o.keyByte(b)
	}
}

// keyByte dispatches a single byte of input. Most commands are single bytes;
// 'g' is a two-byte prefix (gg), and digits accumulate into a repeat count
// consumed by the next motion/action.
func (o *Overlay) keyByte(b byte) {
	if !o.active {
		return
	}

	if o.prefix == 'g' {
		o.prefix = 0
		if b == 'g' {
			o.scrollToTop()
		}
		return
	}

	if b >= '1' && b <= '9' || (b == '0' && o.times > 0) {
		o.times = o.times*10 + int(b-'0')
		return
	}

	n := o.times
	counted := n != 0
	if n == 0 {
		n = 1
	}
	o.times = 0

	switch b {
	case 'h', 0x02: // h, left arrow mirror
		o.move(0, -n)
	case 'l', 0x06:
		o.move(0, n)
	case 'k', 0x10:
		o.move(-n, 0)
	case 'j', 0x0e:
		o.move(n, 0)
	case '0':
		o.cursor.Col = 0
	case '^':
		o.cursor.Col = 0
	case '$':
		o.cursor.Col = o.cols() - 1
	case 'w':
		o.wordForward(n)
	case 'b':
		o.wordBackward(n)
	case 'e':
		o.wordEnd(n)
	case 0x19: // Ctrl-Y: scroll up one line
		o.scrollBy(n)
	case 0x05: // Ctrl-E: scroll down one line
		o.scrollBy(-n)
	case 0x15: // Ctrl-U: page up
		o.scrollBy(n * o.rows() / 2)
	case 0x04: // Ctrl-D: page down
		o.scrollBy(-n * o.rows() / 2)
	case 'g':
		o.prefix = 'g'
	case 'G':
		if counted {
			o.scrollTo(n - 1)
		} else {
			o.scrollToBottom()
		}
	case 'v':
		o.toggleSelect(SelectionNormal)
	case 'V':
		o.toggleSelect(SelectionLine)
	case 0x16: // Ctrl-V
		o.toggleSelect(SelectionBlock)
	case 'y':
		o.yank()
	case 'p':
		o.paste()
	case 0x1b, 'q', 0x03: // Esc, q, Ctrl-C
		o.Exit()
	default:
		o.cache = append(o.cache, b)
	}

	o.updateStatus()
}

// move steps the overlay cursor by (dRow, dCol), wrapping horizontally across
// row boundaries — unlike the live Terminal's cursor, which clamps instead of
// wrapping.
func (o *Overlay) move(dRow, dCol int) {
	o.cursor.Row += dRow

	col := o.cursor.Col + dCol
	for col < 0 && o.cursor.Row > -o.historyLen() {
		o.cursor.Row--
		col += o.cols()
	}
	for col >= o.cols() {
		o.cursor.Row++
		col -= o.cols()
	}
	if col < 0 {
		col = 0
	}
	o.cursor.Col = col

	maxRow := o.rows() - 1
	minRow := -o.historyLen()
	if o.cursor.Row > maxRow {
		o.cursor.Row = maxRow
	}
	if o.cursor.Row < minRow {
		o.cursor.Row = minRow
	}
	if dCol != 0 {
		o.skipOntoWideGlyphLead(dCol)
	}
	o.extendSelection()
	o.follow()
}

// skipOntoWideGlyphLead nudges the cursor off a wide-glyph spacer cell in
// the direction of travel, so h/l-style movement never stops on a Reference
// spacer: moving left lands on the Occupied glyph the spacer belongs to,
// moving right lands on the cell after the spacer.
func (o *Overlay) skipOntoWideGlyphLead(dCol int) {
	cell := o.contentCell(o.cursor.Row, o.cursor.Col)
	if !cell.IsReference() {
		return
	}
	step := 1
	if dCol < 0 {
		step = -1
	}
	next := o.cursor.Col + step
	if next >= 0 && next < o.cols() {
		o.cursor.Col = next
	}
}

// follow scrolls the view to keep the cursor visible.
func (o *Overlay) follow() {
	visibleRow := o.cursor.Row + o.scroll
	if visibleRow < 0 {
		o.scroll -= visibleRow
	}
	if visibleRow >= o.rows() {
		o.scroll -= visibleRow - o.rows() + 1
	}
}

func (o *Overlay) scrollBy(n int) {
	o.scroll += n
	maxScroll := o.historyLen()
	if o.scroll > maxScroll {
		o.scroll = maxScroll
	}
	if o.scroll < 0 {
		o.scroll = 0
	}
	o.extendSelection()
}

func (o *Overlay) scrollTo(row int) {
	o.scroll = 0
	o.cursor.Row = clamp(row, -o.historyLen(), o.rows()-1)
	o.extendSelection()
}

func (o *Overlay) scrollToTop() {
	o.scroll = o.historyLen()
	o.cursor.Row = -o.historyLen()
	o.extendSelection()
}

func (o *Overlay) scrollToBottom() {
	o.scroll = 0
	o.cursor.Row = o.rows() - 1
	o.extendSelection()
}

// wordForward/wordBackward/wordEnd are coarse word motions: they classify
// runes as whitespace or not and step across class boundaries n times.
func (o *Overlay) wordForward(n int) {
	for i := 0; i < n; i++ {
		o.skipClass()
		o.skipSpace()
	}
	o.extendSelection()
}

func (o *Overlay) wordBackward(n int) {
	for i := 0; i < n; i++ {
		o.move(0, -1)
		for o.isSpaceAt(o.cursor.Row, o.cursor.Col) && o.cursor.Col > 0 {
			o.move(0, -1)
		}
	}
}

func (o *Overlay) wordEnd(n int) {
	for i := 0; i < n; i++ {
		o.move(0, 1)
		o.skipSpace()
		o.skipClass()
		o.move(0, -1)
	}
	o.extendSelection()
}

func (o *Overlay) skipSpace() {
	for o.isSpaceAt(o.cursor.Row, o.cursor.Col) && o.cursor.Row < o.rows()-1 {
		o.move(0, 1)
	}
}

func (o *Overlay) skipClass() {
	space := o.isSpaceAt(o.cursor.Row, o.cursor.Col)
	for o.isSpaceAt(o.cursor.Row, o.cursor.Col) == space && o.cursor.Row < o.rows()-1 {
		o.move(0, 1)
	}
}

func (o *Overlay) isSpaceAt(row, col int) bool {
	c := o.contentCell(row-o.scroll, col)
	return c.Char == ' ' || c.Char == 0
}

// toggleSelect starts a selection in mode if none is active, converts an
// active selection to mode if the mode differs, or clears the selection if
// it's already active in mode (vi's "press v again to deselect").
func (o *Overlay) toggleSelect(mode SelectionMode) {
	if o.selecting && o.selection.Mode == mode {
		o.selecting = false
		o.clearHighlight()
		return
	}
	o.selecting = true
	start := Position{Row: o.cursor.Row, Col: o.cursor.Col}
	o.selection = Selection{Start: start, End: start, Mode: mode, Active: true}
	o.extendSelection()
}

// extendSelection updates the End endpoint and refreshes the overlay-only
// highlight map by diffing the previous extent against the new one: cells
// newly inside the selection get a reverse-video override inserted, cells
// newly outside have their override removed.
func (o *Overlay) extendSelection() {
	if !o.selecting {
		return
	}

	prev := o.selection
	o.selection.End = Position{Row: o.cursor.Row, Col: o.cursor.Col}

	if o.changed == nil {
		o.changed = make(map[Position]Cell)
	}

	prevNorm := normalizedSelection(prev)
	curNorm := normalizedSelection(o.selection)

	rows, cols := o.rows(), o.cols()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			wasIn := prev.Active && prevNorm.covers(r, c)
			isIn := curNorm.covers(r, c)
			if isIn && !wasIn {
				cell := o.contentCell(r, c)
				cell.SetFlag(CellFlagReverse)
				o.changed[Position{Row: r, Col: c}] = cell
			} else if wasIn && !isIn {
				delete(o.changed, Position{Row: r, Col: c})
			}
		}
	}
}

// normalizedSelection returns s with Start/End swapped if End comes before
// Start in reading order, matching the Start-before-End invariant
// Selection.covers assumes.
func normalizedSelection(s Selection) Selection {
	if s.End.Before(s.Start) {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

func (o *Overlay) clearHighlight() {
	o.changed = nil
	o.selection.Active = false
}

// yank copies the current selection to the clipboard provider via an
// ActionCopy and exits overlay mode.
func (o *Overlay) yank() {
	if o.selecting {
		text := o.selectedText()
		o.term.emitAction(Action{Kind: ActionCopy, Text: text})
	}
	o.Exit()
}

// paste requests that the caller inject clipboard content and exits overlay
// mode.
func (o *Overlay) paste() {
	o.term.emitAction(Action{Kind: ActionPaste})
	o.Exit()
}

// selectedText extracts the highlighted region directly from scrollback-aware
// content, honoring soft-wrap joins the same way Terminal.GetSelectedText
// does for the live viewport.
func (o *Overlay) selectedText() string {
	if !o.selection.Active {
		return ""
	}
	start, end := o.selection.Start, o.selection.End
	if end.Before(start) {
		start, end = end, start
	}

	var b []byte
	cols := o.cols()
	for r := start.Row; r <= end.Row; r++ {
		lo, hi := 0, cols
		switch o.selection.Mode {
		case SelectionBlock:
			lo, hi = start.Col, end.Col+1
			if hi < lo {
				lo, hi = hi, lo
			}
		case SelectionLine:
			lo, hi = 0, cols
		default:
			if r == start.Row {
				lo = start.Col
			}
			if r == end.Row {
				hi = end.Col + 1
			}
		}
		for c := lo; c < hi && c < cols; c++ {
			cell := o.contentCell(r, c)
			if cell.IsWideSpacer() {
				continue
			}
			ch := cell.Char
			if ch == 0 {
				ch = ' '
			}
			var tmp [utf8.UTFMax]byte
			n := utf8.EncodeRune(tmp[:], ch)
			b = append(b, tmp[:n]...)
		}
		if r < end.Row {
			if o.selection.Mode == SelectionNormal && o.term.IsWrapped(r+1) {
				continue
			}
			b = append(b, '\n')
		}
	}
	return string(b)
}

// ScrollbackProviderLen exposes the primary buffer's scrollback length for
// Overlay's absolute-row addressing without requiring Overlay to reach past
// Terminal's lock-protected API.
func (t *Terminal) ScrollbackProviderLen() int {
	return t.ScrollbackLen()
}
