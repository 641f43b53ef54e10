package vtgrid

import "testing"

func TestScreenWideCharacterOccupiesTwoCells(t *testing.T) {
	s := NewScreen(10, 2)
	s.Print("一", false, true) // U+4E00, a wide CJK ideograph
	if !s.rows[0].Cells[0].IsWide() {
		t.Fatalf("lead cell not marked wide: %+v", s.rows[0].Cells[0])
	}
	if !s.rows[0].Cells[1].IsSpacer() {
		t.Fatalf("trailing cell not a spacer: %+v", s.rows[0].Cells[1])
	}
	if s.cursor.Col != 2 {
		t.Fatalf("cursor col %d", s.cursor.Col)
	}
}

func TestScreenWideCharacterForcesEarlyWrap(t *testing.T) {
	s := NewScreen(3, 2)
	s.Print("ab", false, true)
	s.Print("一", false, true) // would split across the wrap boundary at col 2
	if s.rows[0].Cells[2].Glyph != " " {
		t.Fatalf("column 2 not blanked before wrap: %+v", s.rows[0].Cells[2])
	}
	if s.cursor.Row != 1 || s.cursor.Col != 2 {
		t.Fatalf("cursor %+v", s.cursor)
	}
	if !s.rows[1].Cells[0].IsWide() {
		t.Fatalf("wide glyph not written to next row: %+v", s.rows[1].Cells[0])
	}
}

func TestScreenWideCharacterAtEdgeWithWraparoundOffDoesNotPanic(t *testing.T) {
	s := NewScreen(3, 2)
	s.Print("ab", false, true)
	s.Print("一", false, false) // wraparound disabled: nowhere to put the glyph
	if s.rows[0].Cells[2].Glyph != " " {
		t.Fatalf("column 2 not blanked: %+v", s.rows[0].Cells[2])
	}
	if s.cursor.Row != 0 || s.cursor.Col != 2 {
		t.Fatalf("cursor should stay clamped at the last column: %+v", s.cursor)
	}
}

func TestScreenCombiningMarkAttachesToPreviousCell(t *testing.T) {
	s := NewScreen(10, 1)
	s.Print("é", false, true) // e + COMBINING ACUTE ACCENT
	if s.rows[0].Cells[0].Glyph != "é" {
		t.Fatalf("got %q", s.rows[0].Cells[0].Glyph)
	}
	if s.cursor.Col != 1 {
		t.Fatalf("combining mark should not advance the cursor, col=%d", s.cursor.Col)
	}
}

func TestScreenDeferredWrapCommitsOnNextChar(t *testing.T) {
	s := NewScreen(3, 2)
	s.Print("abc", false, true)
	if !s.cursor.Overflow {
		t.Fatalf("expected overflow latch after filling the last column")
	}
	if s.cursor.Row != 0 {
		t.Fatalf("wrap committed too early, row=%d", s.cursor.Row)
	}
	s.Print("d", false, true)
	if s.cursor.Row != 1 || s.cursor.Col != 1 {
		t.Fatalf("cursor %+v", s.cursor)
	}
	if s.rows[1].Cells[0].Glyph != "d" {
		t.Fatalf("got %q", s.rows[1].Cells[0].Glyph)
	}
}

func TestScreenTabStopsDefaultEveryEightColumns(t *testing.T) {
	s := NewScreen(20, 1)
	s.Tab()
	if s.cursor.Col != 8 {
		t.Fatalf("col %d", s.cursor.Col)
	}
	s.Tab()
	if s.cursor.Col != 16 {
		t.Fatalf("col %d", s.cursor.Col)
	}
	s.Tab()
	if s.cursor.Col != 19 {
		t.Fatalf("expected clamp to last column, got %d", s.cursor.Col)
	}
}

func TestScreenInsertAndDeleteChars(t *testing.T) {
	s := NewScreen(5, 1)
	s.Print("abcde", false, true)
	s.cursor.Col = 1
	s.InsertChars(2)
	if got := s.rows[0].LineContent(); got != "a  bc" {
		t.Fatalf("got %q", got)
	}
	s.cursor.Col = 1
	s.DeleteChars(2)
	if got := s.rows[0].LineContent(); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestScreenScrollRegionConfinesInsertLines(t *testing.T) {
	s := NewScreen(5, 5)
	for i := 0; i < 5; i++ {
		s.rows[i] = NewRow(5, TextAttributes{})
		s.rows[i].Cells[0].Glyph = string(rune('a' + i))
	}
	s.SetScrollRegion(1, 3, false)
	s.cursor.Row = 1
	s.InsertLines(1)
	// row 0 (outside the region) must be untouched.
	if s.rows[0].Cells[0].Glyph != "a" {
		t.Fatalf("row outside region mutated: %+v", s.rows[0].Cells[0])
	}
	// row 4 (outside the region) must also be untouched.
	if s.rows[4].Cells[0].Glyph != "e" {
		t.Fatalf("row outside region mutated: %+v", s.rows[4].Cells[0])
	}
}

func TestScreenScrollUpNeverFeedsScrollback(t *testing.T) {
	sb := NewScrollback(100)
	s := NewScreen(5, 2)
	s.attachScrollback(sb)
	s.Print("row1", false, true)
	s.ScrollUp(1)
	if sb.Len() != 0 {
		t.Fatalf("CSI S must not feed scrollback, got len=%d", sb.Len())
	}
}

func TestScreenResizeGrowPullsFromScrollback(t *testing.T) {
	sb := NewScrollback(100)
	sb.Push(NewRow(5, TextAttributes{}))
	s := NewScreen(5, 2)
	s.Resize(5, 3, sb)
	if s.height != 3 {
		t.Fatalf("height %d", s.height)
	}
	if sb.Len() != 0 {
		t.Fatalf("expected the pulled row removed from scrollback, len=%d", sb.Len())
	}
}
