package vtgrid

import "testing"

func TestSnapshotText(t *testing.T) {
	term := New(WithSize(10, 2))
	term.Write([]byte("hi"))
	snap := term.Snapshot(SnapshotDetailText)
	if snap.Lines[0].Text != "hi" {
		t.Fatalf("got %q", snap.Lines[0].Text)
	}
	if snap.Size.Rows != 2 || snap.Size.Cols != 10 {
		t.Fatalf("got %+v", snap.Size)
	}
}

func TestSnapshotCursor(t *testing.T) {
	term := New(WithSize(10, 2))
	term.Write([]byte("\x1b[2;3H"))
	snap := term.Snapshot(SnapshotDetailText)
	if snap.Cursor.Row != 1 || snap.Cursor.Col != 2 {
		t.Fatalf("got %+v", snap.Cursor)
	}
	if !snap.Cursor.Visible {
		t.Fatalf("cursor should be visible by default")
	}
}

func TestSnapshotStyledSegmentsGroupRuns(t *testing.T) {
	term := New(WithSize(10, 1))
	term.Write([]byte("\x1b[31mAB\x1b[32mC"))
	snap := term.Snapshot(SnapshotDetailStyled)
	segs := snap.Lines[0].Segments
	if len(segs) < 2 {
		t.Fatalf("got %+v", segs)
	}
	if segs[0].Text != "AB" {
		t.Fatalf("got %+v", segs[0])
	}
	if segs[1].Text[0] != 'C' {
		t.Fatalf("got %+v", segs[1])
	}
}

func TestSnapshotFullCellsCarryHyperlink(t *testing.T) {
	term := New(WithSize(10, 1))
	term.Write([]byte("\x1b]8;;http://x\x07A\x1b]8;;\x07"))
	snap := term.Snapshot(SnapshotDetailFull)
	cell := snap.Lines[0].Cells[0]
	if cell.Hyperlink == nil || cell.Hyperlink.URI != "http://x" {
		t.Fatalf("got %+v", cell.Hyperlink)
	}
	other := snap.Lines[0].Cells[1]
	if other.Hyperlink != nil {
		t.Fatalf("hyperlink leaked past its span: %+v", other.Hyperlink)
	}
}

func TestSnapshotWideCharMarksSpacer(t *testing.T) {
	term := New(WithSize(10, 1))
	term.Write([]byte("一"))
	snap := term.Snapshot(SnapshotDetailFull)
	if !snap.Lines[0].Cells[0].Wide {
		t.Fatalf("lead cell not wide: %+v", snap.Lines[0].Cells[0])
	}
	if !snap.Lines[0].Cells[1].Spacer {
		t.Fatalf("trailing cell not a spacer: %+v", snap.Lines[0].Cells[1])
	}
}

func TestLineContentTrimsTrailingBlanks(t *testing.T) {
	term := New(WithSize(10, 1))
	term.Write([]byte("hi"))
	if got := term.LineContent(0); got != "hi" {
		t.Fatalf("got %q", got)
	}
}
