package vtcore

// TouchedSet tracks which grid positions changed since the last drain, at
// three levels of granularity (cells, whole lines, the whole grid). Marks are
// not promoted as they arrive; Coalesce promotes line marks that cover every
// row, or cell marks that cover every cell, to the whole-grid level.
//
// IsEmpty and IsAll accept a nil receiver and report an empty, untouched set.
type TouchedSet struct {
	all   bool
	lines map[int]struct{}
	cells map[Position]struct{}
}

// MarkAll marks the entire grid dirty, discarding any finer-grained state.
func (t *TouchedSet) MarkAll() {
	t.all = true
	t.lines = nil
	t.cells = nil
}

// MarkLine marks every cell in row dirty.
func (t *TouchedSet) MarkLine(row int) {
	if t.all {
		return
	}
	if t.lines == nil {
		t.lines = make(map[int]struct{})
	}
	t.lines[row] = struct{}{}
}

// Mark marks a single cell dirty.
func (t *TouchedSet) Mark(row, col int) {
	if t.all {
		return
	}
	if _, ok := t.lines[row]; ok {
		return
	}
	if t.cells == nil {
		t.cells = make(map[Position]struct{})
	}
	t.cells[Position{Row: row, Col: col}] = struct{}{}
}

// IsEmpty reports whether nothing has been marked.
func (t *TouchedSet) IsEmpty() bool {
	if t == nil {
		return true
	}
	return !t.all && len(t.lines) == 0 && len(t.cells) == 0
}

// Coalesce promotes line marks to All when they cover every row, and cell
// marks to All when they cover every cell, given the grid's dimensions. Call
// before Positions/IsAll to get an accurate read after a batch of marks.
func (t *TouchedSet) Coalesce(rows, cols int) {
	if t.all {
		return
	}
	if len(t.lines) >= rows && rows > 0 {
		t.MarkAll()
		return
	}
	if len(t.cells) >= rows*cols && rows > 0 && cols > 0 {
		t.MarkAll()
	}
}

// IsAll reports whether the entire grid is marked dirty.
func (t *TouchedSet) IsAll() bool {
	if t == nil {
		return false
	}
	return t.all
}

// Positions returns every dirty position within a rows x cols region,
// expanding line marks to their full row. If the set is marked All, it
// returns every position in the region.
func (t *TouchedSet) Positions(rows, cols int) []Position {
	if t.all {
		out := make([]Position, 0, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				out = append(out, Position{Row: r, Col: c})
			}
		}
		return out
	}

	seenLine := make(map[int]struct{}, len(t.lines))
	var out []Position
	for row := range t.lines {
		seenLine[row] = struct{}{}
		for c := 0; c < cols; c++ {
			out = append(out, Position{Row: row, Col: c})
		}
	}
	for pos := range t.cells {
		if _, onTouchedLine := seenLine[pos.Row]; onTouchedLine {
			continue
		}
		out = append(out, pos)
	}
	return out
}

// Clear discards all marks, returning the set to empty.
func (t *TouchedSet) Clear() {
	t.all = false
	t.lines = nil
	t.cells = nil
}
