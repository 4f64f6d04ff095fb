package document

import "strings"

// Cursor returns the cursor's line and rune column.
func (d *Document) Cursor() (row, col int) {
	return d.row, d.col
}

// SetCursor moves the cursor, clamping to the buffer.
func (d *Document) SetCursor(row, col int) {
	d.row = clampInt(row, 0, len(d.lines)-1)
	d.col = clampInt(col, 0, runeLen(d.lines[d.row]))
}

// MoveCursor moves the cursor by the given deltas. Moving left from the
// start of a line goes to the end of the previous one, and right from the
// end goes to the start of the next.
func (d *Document) MoveCursor(dRow, dCol int) {
	if dRow != 0 {
		d.SetCursor(d.row+dRow, d.col)
	}
	for ; dCol < 0; dCol++ {
		switch {
		case d.col > 0:
			d.col--
		case d.row > 0:
			d.row--
			d.col = runeLen(d.lines[d.row])
		}
	}
	for ; dCol > 0; dCol-- {
		switch {
		case d.col < runeLen(d.lines[d.row]):
			d.col++
		case d.row < len(d.lines)-1:
			d.row++
			d.col = 0
		}
	}
}

// Insert inserts text at the cursor and leaves the cursor after it.
// Newlines in text split the line.
func (d *Document) Insert(text string) error {
	if d.readOnly {
		return ErrReadOnly
	}
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	line := []rune(d.lines[d.row])
	head, tail := string(line[:d.col]), string(line[d.col:])

	parts := strings.Split(text, "\n")
	last := len(parts) - 1
	newLines := make([]string, 0, len(parts))
	for i, p := range parts {
		switch {
		case i == 0 && i == last:
			newLines = append(newLines, head+p+tail)
		case i == 0:
			newLines = append(newLines, head+p)
		case i == last:
			newLines = append(newLines, p+tail)
		default:
			newLines = append(newLines, p)
		}
	}

	d.lines = append(d.lines[:d.row], append(newLines, d.lines[d.row+1:]...)...)
	d.row += last
	if last == 0 {
		d.col += runeLen(parts[0])
	} else {
		d.col = runeLen(parts[last])
	}
	d.edited()
	return nil
}

// NewLine splits the current line at the cursor.
func (d *Document) NewLine() error {
	return d.Insert("\n")
}

// Backspace deletes the rune before the cursor, joining lines at the start
// of a line. It is a no-op at the start of the buffer.
func (d *Document) Backspace() error {
	if d.readOnly {
		return ErrReadOnly
	}
	switch {
	case d.col > 0:
		line := []rune(d.lines[d.row])
		d.lines[d.row] = string(line[:d.col-1]) + string(line[d.col:])
		d.col--
	case d.row > 0:
		prev := d.lines[d.row-1]
		d.col = runeLen(prev)
		d.lines[d.row-1] = prev + d.lines[d.row]
		d.lines = append(d.lines[:d.row], d.lines[d.row+1:]...)
		d.row--
	default:
		return nil
	}
	d.edited()
	return nil
}

func (d *Document) edited() {
	d.modified = true
	d.changed()
}

func runeLen(s string) int {
	return len([]rune(s))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
