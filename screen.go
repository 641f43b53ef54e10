package vtgrid

// Screen is one of a Terminal's two grids (primary or alternate). It owns
// the cell storage, the cursor (including the deferred-wrap overflow
// latch), the scroll region, tab stops, charset state, and the current pen
// (the attributes newly printed text receives). The DECSC saved-cursor
// slots are held by the owning Terminal, not by Screen. Mode flags
// that affect how Screen methods behave (insert mode, autowrap, origin
// mode, reverse wraparound) live on the owning Terminal and are passed in
// as explicit parameters, matching spec's component split that keeps mode
// state out of the screen model.
type Screen struct {
	width, height int

	rows []Row

	cursor Cursor
	pen    TextAttributes

	scrollTop, scrollBottom int
	regionSet               bool

	tabStops          []bool
	tabStopsAllCleared bool

	charsets CharsetState

	scrollback *Scrollback
}

// NewScreen returns a screen of the given dimensions, fully blanked under
// the default pen, full-height scroll region, and tab stops every 8
// columns.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
		cursor: NewCursor(),
		charsets: NewCharsetState(),
	}
	s.rows = make([]Row, height)
	for i := range s.rows {
		s.rows[i] = NewRow(width, s.pen)
	}
	s.scrollTop, s.scrollBottom = 0, height-1
	s.regenerateTabStops()
	return s
}

func (s *Screen) regenerateTabStops() {
	s.tabStops = make([]bool, s.width)
	for i := 0; i < s.width; i += 8 {
		s.tabStops[i] = true
	}
	s.tabStopsAllCleared = false
}

// Width and Height report the current grid dimensions.
func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

// Cursor returns the current cursor state.
func (s *Screen) Cursor() Cursor { return s.cursor }

// setCursor replaces the cursor wholesale, used by the dispatcher for
// DECSCUSR (cursor shape) and the DECSET/DECRST cursor-blink/visibility
// toggles, which mutate cursor fields the motion methods above don't
// touch directly.
func (s *Screen) setCursor(c Cursor) { s.cursor = c }

// Pen returns the attributes that newly printed text receives.
func (s *Screen) Pen() TextAttributes { return s.pen }

// SetPen replaces the current pen (used by the SGR handler).
func (s *Screen) SetPen(a TextAttributes) { s.pen = a }

// Charsets exposes the charset-designation state for the dispatcher's ESC
// ( / ) / * / + and SI/SO/SS2/SS3 handlers.
func (s *Screen) Charsets() *CharsetState { return &s.charsets }

// Row returns the row at index i (0-based from the top of the visible
// grid). Panics if i is out of range, matching slice-index semantics;
// callers are expected to check against Height first.
func (s *Screen) Row(i int) Row {
	return s.rows[i]
}

// clearOrphanWideAt blanks the partner half of a wide glyph at col when
// col itself is about to be overwritten independently of its partner,
// preventing a dangling spacer or a spacer-less wide lead cell.
func (s *Screen) clearOrphanWideAt(row, col int) {
	cells := s.rows[row].Cells
	if col >= 0 && col < len(cells) {
		if cells[col].IsWide() && col+1 < len(cells) {
			cells[col+1].Reset(s.pen)
		}
		if cells[col].IsSpacer() && col-1 >= 0 {
			cells[col-1].Reset(s.pen)
		}
	}
}

// Print writes s (already charset-translated) starting at the cursor,
// honoring insert mode and autowrap. Zero-width runes attach as combining
// marks to the previously written cell rather than occupying a position
// of their own; wide runes occupy two cells, the second a spacer.
//
// Wrap is deferred: filling the last column sets the overflow latch
// instead of advancing past it. The next printable character commits the
// pending wrap (advance to the next line, clear the latch) before being
// written, rather than wrapping one column early.
func (s *Screen) Print(str string, insert, wraparound bool) {
	for _, r := range str {
		w := RuneDisplayWidth(r)
		if w == 0 {
			s.attachCombining(r)
			continue
		}
		if s.cursor.Overflow {
			if wraparound {
				s.commitWrap()
			} else {
				s.cursor.Col = s.width - 1
				s.cursor.Overflow = false
			}
		}
		if w == 2 && s.cursor.Col == s.width-1 {
			// A wide glyph cannot be split across the wrap boundary, nor can
			// it occupy the single remaining column. With wraparound on,
			// blank the last column and wrap first; with it off, there is
			// nowhere to put the glyph, so blank the column and leave the
			// cursor clamped there instead of writing past the row.
			s.rows[s.cursor.Row].Cells[s.cursor.Col].Reset(s.pen)
			if wraparound {
				s.commitWrap()
			} else {
				continue
			}
		}
		s.writeGlyph(string(r), w, insert)
	}
}

func (s *Screen) attachCombining(r rune) {
	row := &s.rows[s.cursor.Row]
	// The previously written cell is just left of the cursor, or under it
	// when the overflow latch holds the cursor on the last column.
	col := s.cursor.Col - 1
	if s.cursor.Overflow {
		col = s.width - 1
	}
	if col > 0 && row.Cells[col].IsSpacer() {
		col--
	}
	if col >= 0 && col < len(row.Cells) {
		row.Cells[col].Glyph += string(r)
	}
}

func (s *Screen) commitWrap() {
	s.cursor.Overflow = false
	s.rows[s.cursor.Row].Wrapped = true
	s.advanceRowWithScroll()
	s.cursor.Col = 0
}

func (s *Screen) writeGlyph(glyph string, w int, insert bool) {
	row := &s.rows[s.cursor.Row]
	col := s.cursor.Col
	if insert {
		n := w
		for c := s.width - 1; c >= col+n; c-- {
			row.Cells[c] = row.Cells[c-n]
		}
	}
	s.clearOrphanWideAt(s.cursor.Row, col)
	attrs := s.pen
	attrs.Wide = w == 2
	row.Cells[col] = Cell{Glyph: glyph, Width: w, Attrs: attrs}
	if w == 2 {
		s.clearOrphanWideAt(s.cursor.Row, col+1)
		row.Cells[col+1] = NewSpacerCell(attrs)
	}
	if col+w >= s.width {
		s.cursor.Col = s.width - 1
		s.cursor.Overflow = true
	} else {
		s.cursor.Col = col + w
	}
}

// advanceRowWithScroll moves the cursor down one row, scrolling the
// region (and feeding scrollback, per the caller's policy below) if
// already at the bottom.
func (s *Screen) advanceRowWithScroll() {
	if s.cursor.Row < s.scrollBottom {
		s.cursor.Row++
		return
	}
	s.scrollRegionUp(s.scrollTop, s.scrollBottom, 1, !s.regionSet)
}

// scrollback is set by the owning Terminal so Screen can feed lines
// scrolled off the top of an unregioned primary screen without the
// screen model needing to know about scrollback storage itself beyond
// this single seam.
func (s *Screen) attachScrollback(sb *Scrollback) { s.scrollback = sb }

// scrollRegionUp shifts rows [top,bottom] up by n, blanking the newly
// exposed bottom rows. feedScrollback pushes the evicted top rows to the
// attached Scrollback, when one is attached; CSI S/T (explicit scroll)
// always pass false per spec (scrolling never touches scrollback except
// the implicit roll at the bottom of an unregioned screen).
func (s *Screen) scrollRegionUp(top, bottom, n int, feedScrollback bool) {
	if n <= 0 || top > bottom {
		return
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	if feedScrollback && s.scrollback != nil {
		for i := 0; i < n; i++ {
			s.scrollback.Push(s.rows[top+i].Clone())
		}
	}
	copy(s.rows[top:bottom+1-n], s.rows[top+n:bottom+1])
	for i := bottom + 1 - n; i <= bottom; i++ {
		s.rows[i] = NewRow(s.width, s.pen)
	}
}

// scrollRegionDown shifts rows [top,bottom] down by n, blanking the newly
// exposed top rows. Never touches scrollback.
func (s *Screen) scrollRegionDown(top, bottom, n int) {
	if n <= 0 || top > bottom {
		return
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	for i := bottom; i >= top+n; i-- {
		s.rows[i] = s.rows[i-n]
	}
	for i := top; i < top+n; i++ {
		s.rows[i] = NewRow(s.width, s.pen)
	}
}

// ScrollUp is CSI S: scroll the region up n lines. Never feeds scrollback.
func (s *Screen) ScrollUp(n int) { s.scrollRegionUp(s.scrollTop, s.scrollBottom, n, false) }

// ScrollDown is CSI T: scroll the region down n lines.
func (s *Screen) ScrollDown(n int) { s.scrollRegionDown(s.scrollTop, s.scrollBottom, n) }

// --- Cursor motion ---

// SetCursorPosition moves the cursor to (row, col), 0-based. When
// originMode is set, row/col are relative to the scroll region's top-left
// rather than the screen's, and the result is clamped to the region;
// otherwise it's clamped to the full screen. Always clears the overflow
// latch (CUP always lands the cursor at a real column, never pending-wrap).
func (s *Screen) SetCursorPosition(row, col int, originMode bool) {
	top, bottom := 0, s.height-1
	if originMode {
		top, bottom = s.scrollTop, s.scrollBottom
		row += top
	}
	s.cursor.Row = clamp(row, top, bottom)
	s.cursor.Col = clamp(col, 0, s.width-1)
	s.cursor.Overflow = false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CursorUp moves up n rows, clamped to the scroll region's top.
func (s *Screen) CursorUp(n int) {
	s.cursor.Overflow = false
	s.cursor.Row = clamp(s.cursor.Row-n, s.scrollTop, s.scrollBottom)
}

// CursorDown moves down n rows, clamped to the scroll region's bottom.
func (s *Screen) CursorDown(n int) {
	s.cursor.Overflow = false
	s.cursor.Row = clamp(s.cursor.Row+n, s.scrollTop, s.scrollBottom)
}

// CursorForward moves right n columns. With reverseWrap, running off the
// right edge wraps to column 0 of the next row, cycling back to the top
// of the scroll region past the bottom.
func (s *Screen) CursorForward(n int, reverseWrap bool) {
	s.cursor.Overflow = false
	col := s.cursor.Col + n
	if col <= s.width-1 || !reverseWrap {
		s.cursor.Col = clamp(col, 0, s.width-1)
		return
	}
	for col > s.width-1 {
		col -= s.width
		s.cursor.Row++
		if s.cursor.Row > s.scrollBottom {
			s.cursor.Row = s.scrollTop
		}
	}
	s.cursor.Col = col
}

// CursorBackward moves left n columns. With reverseWrap, running off the
// left edge wraps to the last column of the previous row, cycling to the
// bottom of the scroll region past the top.
func (s *Screen) CursorBackward(n int, reverseWrap bool) {
	s.cursor.Overflow = false
	col := s.cursor.Col - n
	if col >= 0 || !reverseWrap {
		s.cursor.Col = clamp(col, 0, s.width-1)
		return
	}
	for col < 0 {
		col += s.width
		s.cursor.Row--
		if s.cursor.Row < s.scrollTop {
			s.cursor.Row = s.scrollBottom
		}
	}
	s.cursor.Col = col
}

// Newline advances one row (scrolling if needed) and resets the column
// to 0 (LF in a terminal with auto-CR, and the NEL control).
func (s *Screen) Newline(feedScrollback bool) {
	s.cursor.Overflow = false
	s.advanceRowScrollbackAware(feedScrollback)
	s.cursor.Col = 0
}

// LineFeed advances one row (scrolling if needed) preserving the column
// (bare LF without auto-CR, and IND).
func (s *Screen) LineFeed(feedScrollback bool) {
	s.cursor.Overflow = false
	s.advanceRowScrollbackAware(feedScrollback)
}

func (s *Screen) advanceRowScrollbackAware(feedScrollback bool) {
	if s.cursor.Row < s.scrollBottom {
		s.cursor.Row++
		return
	}
	s.scrollRegionUp(s.scrollTop, s.scrollBottom, 1, feedScrollback && !s.regionSet)
}

// ReverseLineFeed moves up one row (scrolling the region down, never
// touching scrollback) when already at the region's top (RI).
func (s *Screen) ReverseLineFeed() {
	s.cursor.Overflow = false
	if s.cursor.Row > s.scrollTop {
		s.cursor.Row--
		return
	}
	s.scrollRegionDown(s.scrollTop, s.scrollBottom, 1)
}

// FormFeed is FF: a newline when auto-carriage-return (LNM, mode 20) is
// on, otherwise a line feed. This package has no notion of pages, so FF
// carries no screen-clearing behavior of its own.
func (s *Screen) FormFeed(autoCR, feedScrollback bool) {
	if autoCR {
		s.Newline(feedScrollback)
	} else {
		s.LineFeed(feedScrollback)
	}
}

// CarriageReturn resets the column to 0 without moving rows.
func (s *Screen) CarriageReturn() {
	s.cursor.Col = 0
	s.cursor.Overflow = false
}

// --- Erasing ---

// EraseDisplay implements CSI J: 0 below cursor (inclusive), 1 above
// cursor (inclusive), 2 the whole screen, 3 the whole screen (scrollback
// clearing is handled by the caller, which owns the Scrollback).
func (s *Screen) EraseDisplay(mode int) {
	switch mode {
	case 0:
		s.eraseToRight()
		for r := s.cursor.Row + 1; r < s.height; r++ {
			s.rows[r] = NewRow(s.width, s.pen)
		}
	case 1:
		for r := 0; r < s.cursor.Row; r++ {
			s.rows[r] = NewRow(s.width, s.pen)
		}
		s.eraseFromLeft()
	case 2, 3:
		for r := range s.rows {
			s.rows[r] = NewRow(s.width, s.pen)
		}
	}
}

// EraseLine implements CSI K: 0 to the right of cursor (inclusive), 1 to
// the left (inclusive), 2 the whole line.
func (s *Screen) EraseLine(mode int) {
	switch mode {
	case 0:
		s.eraseToRight()
	case 1:
		s.eraseFromLeft()
	case 2:
		s.rows[s.cursor.Row] = NewRow(s.width, s.pen)
	}
}

// eraseToRight clears from the cursor to the end of the line, inclusive.
// Per spec, the overflow latch suppresses this: when set, the cursor is
// logically already past the last column, so there is nothing to the
// right to erase.
func (s *Screen) eraseToRight() {
	if s.cursor.Overflow {
		return
	}
	s.clearOrphanWideAt(s.cursor.Row, s.cursor.Col)
	row := &s.rows[s.cursor.Row]
	for c := s.cursor.Col; c < s.width; c++ {
		row.Cells[c].Reset(s.pen)
	}
}

func (s *Screen) eraseFromLeft() {
	col := s.cursor.Col
	if s.cursor.Overflow {
		col = s.width - 1
	}
	s.clearOrphanWideAt(s.cursor.Row, col)
	row := &s.rows[s.cursor.Row]
	for c := 0; c <= col && c < s.width; c++ {
		row.Cells[c].Reset(s.pen)
	}
}

// EraseChars implements CSI X: blank n cells starting at the cursor,
// without shifting anything (unlike DeleteChars).
func (s *Screen) EraseChars(n int) {
	if n <= 0 {
		return
	}
	row := &s.rows[s.cursor.Row]
	end := s.cursor.Col + n
	if end > s.width {
		end = s.width
	}
	s.clearOrphanWideAt(s.cursor.Row, s.cursor.Col)
	s.clearOrphanWideAt(s.cursor.Row, end-1)
	for c := s.cursor.Col; c < end; c++ {
		row.Cells[c].Reset(s.pen)
	}
}

// InsertChars implements CSI @: insert n blanks at the cursor on its own
// row, shifting existing cells right and dropping what falls off the end.
func (s *Screen) InsertChars(n int) {
	if n <= 0 {
		return
	}
	row := &s.rows[s.cursor.Row]
	s.clearOrphanWideAt(s.cursor.Row, s.cursor.Col)
	if n > s.width-s.cursor.Col {
		n = s.width - s.cursor.Col
	}
	for c := s.width - 1; c >= s.cursor.Col+n; c-- {
		row.Cells[c] = row.Cells[c-n]
	}
	for c := s.cursor.Col; c < s.cursor.Col+n; c++ {
		row.Cells[c].Reset(s.pen)
	}
}

// DeleteChars implements CSI P: remove n cells at the cursor on its own
// row, shifting remaining cells left and filling the vacated end with
// blanks.
func (s *Screen) DeleteChars(n int) {
	if n <= 0 {
		return
	}
	row := &s.rows[s.cursor.Row]
	s.clearOrphanWideAt(s.cursor.Row, s.cursor.Col)
	if n > s.width-s.cursor.Col {
		n = s.width - s.cursor.Col
	}
	copy(row.Cells[s.cursor.Col:s.width-n], row.Cells[s.cursor.Col+n:s.width])
	for c := s.width - n; c < s.width; c++ {
		row.Cells[c].Reset(s.pen)
	}
}

// InsertLines implements CSI L: insert n blank lines at the cursor's row,
// shifting the rest of the scroll region down. A no-op if the cursor sits
// outside the scroll region.
func (s *Screen) InsertLines(n int) {
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	s.scrollRegionDown(s.cursor.Row, s.scrollBottom, n)
	s.cursor.Col = 0
	s.cursor.Overflow = false
}

// DeleteLines implements CSI M: remove n lines at the cursor's row,
// shifting the rest of the scroll region up. A no-op if the cursor sits
// outside the scroll region.
func (s *Screen) DeleteLines(n int) {
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	s.scrollRegionUp(s.cursor.Row, s.scrollBottom, n, false)
	s.cursor.Col = 0
	s.cursor.Overflow = false
}

// --- Tab stops ---

// Tab moves the cursor to the next tab stop, or the last column if none
// remain.
func (s *Screen) Tab() {
	s.cursor.Overflow = false
	for c := s.cursor.Col + 1; c < s.width; c++ {
		if s.tabStops[c] {
			s.cursor.Col = c
			return
		}
	}
	s.cursor.Col = s.width - 1
}

// BackTab moves the cursor to the previous tab stop, or column 0.
func (s *Screen) BackTab() {
	s.cursor.Overflow = false
	for c := s.cursor.Col - 1; c >= 0; c-- {
		if s.tabStops[c] {
			s.cursor.Col = c
			return
		}
	}
	s.cursor.Col = 0
}

// SetTabStop sets a tab stop at the cursor's column (HTS).
func (s *Screen) SetTabStop() {
	if s.cursor.Col >= 0 && s.cursor.Col < s.width {
		s.tabStops[s.cursor.Col] = true
	}
}

// ClearTabStop clears the tab stop at the cursor's column (TBC 0).
func (s *Screen) ClearTabStop() {
	if s.cursor.Col >= 0 && s.cursor.Col < s.width {
		s.tabStops[s.cursor.Col] = false
	}
}

// ClearAllTabStops clears every tab stop (TBC 3); the next resize will
// not regenerate the default every-8-columns pattern.
func (s *Screen) ClearAllTabStops() {
	for i := range s.tabStops {
		s.tabStops[i] = false
	}
	s.tabStopsAllCleared = true
}

// --- Scroll region ---

// SetScrollRegion implements DECSTBM. top and bottom are 0-based and
// inclusive; passing the full screen height (i.e. top==0 && bottom==
// height-1) clears the explicit region back to the unset sentinel, which
// matters for Newline's scrollback-feeding rule. The cursor homes to
// (0,0), or the region's top-left under origin mode.
func (s *Screen) SetScrollRegion(top, bottom int, originMode bool) {
	if top < 0 {
		top = 0
	}
	if bottom > s.height-1 || bottom < top {
		bottom = s.height - 1
	}
	s.scrollTop, s.scrollBottom = top, bottom
	s.regionSet = !(top == 0 && bottom == s.height-1)
	s.SetCursorPosition(0, 0, originMode)
}

// ScrollRegion returns the current scroll region bounds.
func (s *Screen) ScrollRegion() (top, bottom int) { return s.scrollTop, s.scrollBottom }

// --- Save/restore ---

// SaveCursor captures a value snapshot for later RestoreCursor (DECSC,
// CSI s).
func (s *Screen) SaveCursor(originMode bool) SavedCursor {
	return SavedCursor{
		Row: s.cursor.Row, Col: s.cursor.Col, Overflow: s.cursor.Overflow,
		Attrs: s.pen, OriginMode: originMode, Charsets: s.charsets, valid: true,
	}
}

// RestoreCursor applies a previously saved snapshot (DECRC, CSI u). If
// saved is the zero value (nothing was ever saved), it resets to the
// power-on cursor state instead, matching real terminal behavior.
func (s *Screen) RestoreCursor(saved SavedCursor) (originMode bool) {
	if !saved.valid {
		s.cursor = NewCursor()
		s.pen = TextAttributes{}
		return false
	}
	s.cursor.Row, s.cursor.Col, s.cursor.Overflow = saved.Row, saved.Col, saved.Overflow
	s.pen = saved.Attrs
	s.charsets = saved.Charsets
	return saved.OriginMode
}

// FillWithE fills the entire screen with 'E' and no attributes (DECALN
// alignment test pattern).
func (s *Screen) FillWithE() {
	for r := range s.rows {
		for c := range s.rows[r].Cells {
			s.rows[r].Cells[c] = Cell{Glyph: "E", Width: 1}
		}
	}
}

// --- Resize ---

// Resize changes the grid to newWidth x newHeight. Width changes never
// reflow text: rows are simply clipped or extended. Height changes
// follow spec's rule: shrinking pops empty trailing rows first and only
// evicts non-empty top rows (to scrollback when sb is non-nil, i.e. the
// primary screen; discarded otherwise) once no empty rows remain; growing
// pulls rows back from scrollback before adding new blank rows at the
// bottom. The cursor row is adjusted to track content that moved.
func (s *Screen) Resize(newWidth, newHeight int, sb *Scrollback) {
	if newWidth != s.width {
		for i := range s.rows {
			s.rows[i].Resize(newWidth, s.pen)
		}
		s.width = newWidth
		if !s.tabStopsAllCleared {
			s.regenerateTabStops()
		} else {
			s.tabStops = make([]bool, newWidth)
		}
	}

	if newHeight > s.height {
		delta := newHeight - s.height
		pulled := 0
		if sb != nil {
			rows := sb.PopLast(delta)
			for i := range rows {
				rows[i].Resize(s.width, s.pen)
			}
			if len(rows) > 0 {
				s.rows = append(rows, s.rows...)
				s.cursor.Row += len(rows)
				pulled = len(rows)
			}
		}
		for i := pulled; i < delta; i++ {
			s.rows = append(s.rows, NewRow(s.width, s.pen))
		}
	} else if newHeight < s.height {
		delta := s.height - newHeight
		// Pop empty trailing rows first.
		for delta > 0 && len(s.rows) > 0 && isRowEmpty(s.rows[len(s.rows)-1]) && len(s.rows)-1 != s.cursor.Row {
			s.rows = s.rows[:len(s.rows)-1]
			delta--
		}
		// Evict remaining rows from the top (to scrollback if attached).
		for delta > 0 && len(s.rows) > 0 {
			if sb != nil {
				sb.Push(s.rows[0].Clone())
			}
			s.rows = s.rows[1:]
			s.cursor.Row--
			delta--
		}
	}

	s.height = newHeight
	s.cursor.Row = clamp(s.cursor.Row, 0, s.height-1)
	s.cursor.Col = clamp(s.cursor.Col, 0, s.width-1)
	s.cursor.Overflow = false
	s.scrollTop, s.scrollBottom = 0, s.height-1
	s.regionSet = false
}

func isRowEmpty(r Row) bool {
	return !r.Wrapped && r.LineContent() == ""
}
