package vtgrid

import (
	"testing"

	"github.com/vtgrid/vtgrid/ansiseq"
)

func lineText(t *testing.T, term *Terminal, row int) string {
	t.Helper()
	r, ok := term.Row(row)
	if !ok {
		t.Fatalf("row %d out of range", row)
	}
	return r.LineContent()
}

func TestTerminalWritesPlainText(t *testing.T) {
	term := New(WithSize(10, 3))
	term.Write([]byte("hi"))
	if got := lineText(t, term, 0); got != "hi" {
		t.Fatalf("got %q", got)
	}
	cur := term.GetCursor()
	if cur.Row != 0 || cur.Col != 2 {
		t.Fatalf("cursor %+v", cur)
	}
}

func TestTerminalPartialSequenceResync(t *testing.T) {
	term := New(WithSize(10, 3))
	// A cursor-position sequence fed across two Write calls must still take
	// effect once complete, exactly as if fed whole.
	term.Write([]byte("\x1b[2;"))
	term.Write([]byte("3H"))
	term.Write([]byte("X"))
	cur := term.GetCursor()
	if cur.Row != 1 || cur.Col != 3 {
		t.Fatalf("cursor %+v", cur)
	}
	if got := lineText(t, term, 1); got != "  X" {
		t.Fatalf("got %q", got)
	}
}

func TestTerminalEraseToRightSuppressedAtOverflow(t *testing.T) {
	term := New(WithSize(4, 2))
	term.Write([]byte("abcd")) // fills the row exactly, sets the overflow latch
	cur := term.GetCursor()
	if !cur.Overflow {
		t.Fatalf("expected overflow latch set, got %+v", cur)
	}
	term.Write([]byte("\x1b[K")) // CSI K with the latch set should erase nothing
	if got := lineText(t, term, 0); got != "abcd" {
		t.Fatalf("erase-to-right fired despite overflow latch: %q", got)
	}
}

func TestTerminalEraseDisplayModeTwoLeavesCursor(t *testing.T) {
	term := New(WithSize(10, 3))
	term.Write([]byte("\x1b[2;3Hhello"))
	cur := term.GetCursor()
	term.Write([]byte("\x1b[2J"))
	after := term.GetCursor()
	if after != cur {
		t.Fatalf("CSI 2J moved the cursor: before %+v after %+v", cur, after)
	}
	for row := 0; row < 3; row++ {
		if got := lineText(t, term, row); got != "" {
			t.Fatalf("row %d not cleared: %q", row, got)
		}
	}
}

func TestTerminalAlternateScreenIsolation(t *testing.T) {
	term := New(WithSize(10, 3))
	term.Write([]byte("primary"))
	term.Write([]byte("\x1b[?1049h")) // enter alternate screen
	if !term.IsAlternateScreen() {
		t.Fatalf("expected alternate screen active")
	}
	term.Write([]byte("alt"))
	if got := lineText(t, term, 0); got != "alt" {
		t.Fatalf("got %q", got)
	}
	term.Write([]byte("\x1b[?1049l")) // leave, restoring primary content and cursor
	if term.IsAlternateScreen() {
		t.Fatalf("expected primary screen active")
	}
	if got := lineText(t, term, 0); got != "primary" {
		t.Fatalf("primary content not preserved: %q", got)
	}
	cur := term.GetCursor()
	if cur.Col != len("primary") {
		t.Fatalf("cursor not restored: %+v", cur)
	}
}

func TestTerminalTrueColorColonSGR(t *testing.T) {
	term := New(WithSize(10, 1))
	term.Write([]byte("\x1b[38:2::10:20:30mX"))
	cell, ok := term.GetCell(0, 0)
	if !ok {
		t.Fatalf("no cell")
	}
	if cell.Attrs.Fg.Kind != ColorRGB || cell.Attrs.Fg.R != 10 || cell.Attrs.Fg.G != 20 || cell.Attrs.Fg.B != 30 {
		t.Fatalf("got %+v", cell.Attrs.Fg)
	}
}

func TestTerminalHyperlinkGrouping(t *testing.T) {
	term := New(WithSize(20, 1))
	term.Write([]byte("\x1b]8;id=1;http://example.com\x07link\x1b]8;;\x07plain"))
	linkCell, _ := term.GetCell(0, 0)
	if linkCell.Attrs.HyperlinkURI != "http://example.com" || linkCell.Attrs.HyperlinkID != "1" {
		t.Fatalf("got %+v", linkCell.Attrs)
	}
	lastLinkCell, _ := term.GetCell(0, 3)
	if lastLinkCell.Attrs.HyperlinkURI != "http://example.com" {
		t.Fatalf("hyperlink span ended early: %+v", lastLinkCell.Attrs)
	}
	plainCell, _ := term.GetCell(0, 4)
	if plainCell.Attrs.HyperlinkURI != "" {
		t.Fatalf("hyperlink not cleared after OSC 8 end form: %+v", plainCell.Attrs)
	}
}

func TestTerminalScrollbackFeedsOnNaturalScroll(t *testing.T) {
	term := New(WithSize(5, 2))
	term.Write([]byte("row1\r\nrow2\r\nrow3"))
	if term.ScrollbackLen() != 1 {
		t.Fatalf("scrollback len %d", term.ScrollbackLen())
	}
	line, ok := term.ScrollbackLine(0)
	if !ok || line.LineContent() != "row1" {
		t.Fatalf("got %+v ok=%v", line, ok)
	}
}

func TestTerminalDSR6ReportsCursorPosition(t *testing.T) {
	term := New(WithSize(10, 5))
	term.Write([]byte("\x1b[3;4H\x1b[6n"))
	resp := term.TakeResponse()
	if string(resp) != "\x1b[3;4R" {
		t.Fatalf("got %q", resp)
	}
}

func TestTerminalDSR5ReportsOK(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[5n"))
	resp := term.TakeResponse()
	if string(resp) != "\x1b0n" {
		t.Fatalf("got %q", resp)
	}
}

func TestTerminalReverseWraparoundCyclesRows(t *testing.T) {
	term := New(WithSize(5, 3))
	term.Write([]byte("\x1b[?45h")) // reverse wraparound on
	term.Write([]byte("\x1b[1;1H")) // top-left
	term.Write([]byte("\x1b[1D"))   // cursor_left past column 0 at the very first row
	cur := term.GetCursor()
	if cur.Row != 2 || cur.Col != 4 {
		t.Fatalf("expected wrap to last row/col, got %+v", cur)
	}
}

func TestTerminalFormFeedIsNotAClear(t *testing.T) {
	term := New(WithSize(10, 3))
	term.Write([]byte("hello\x0c"))
	if got := lineText(t, term, 0); got != "hello" {
		t.Fatalf("form feed cleared the screen: %q", got)
	}
	cur := term.GetCursor()
	if cur.Row != 1 {
		t.Fatalf("form feed did not advance a line: %+v", cur)
	}
}

func TestTerminalResetClearsStateAndScrollback(t *testing.T) {
	term := New(WithSize(5, 2))
	term.Write([]byte("row1\r\nrow2\r\nrow3"))
	term.Reset()
	if term.ScrollbackLen() != 0 {
		t.Fatalf("scrollback not cleared: %d", term.ScrollbackLen())
	}
	cur := term.GetCursor()
	if cur.Row != 0 || cur.Col != 0 {
		t.Fatalf("cursor not homed: %+v", cur)
	}
}

func TestTerminalResizeShrinkEvictsToScrollback(t *testing.T) {
	term := New(WithSize(5, 3))
	term.Write([]byte("aaaaa\r\nbbbbb\r\nccccc"))
	term.Resize(5, 1)
	if term.ScrollbackLen() == 0 {
		t.Fatalf("expected evicted rows in scrollback")
	}
	if got := lineText(t, term, 0); got != "ccccc" {
		t.Fatalf("got %q", got)
	}
}

func TestTerminalSoftResetPreservesContent(t *testing.T) {
	term := New(WithSize(10, 2))
	term.Write([]byte("\x1b[31mhello"))
	term.SoftReset()
	if got := lineText(t, term, 0); got != "hello" {
		t.Fatalf("soft reset destroyed content: %q", got)
	}
	cur := term.GetCursor()
	if cur.Row != 0 || cur.Col != 0 {
		t.Fatalf("soft reset did not home cursor: %+v", cur)
	}
}

type recordingBell struct{ rang int }

func (b *recordingBell) Ring() { b.rang++ }

func TestTerminalMiddlewareCanSuppressCommands(t *testing.T) {
	bell := &recordingBell{}
	suppressed := 0
	term := New(WithBell(bell), WithMiddleware(Middleware{
		Intercept: func(cmd ansiseq.Command, next func(ansiseq.Command)) {
			if cmd.Kind == ansiseq.CmdC0 && cmd.C0 == 0x07 {
				suppressed++
				return
			}
			next(cmd)
		},
	}))
	term.Write([]byte("\x07"))
	if bell.rang != 0 || suppressed != 1 {
		t.Fatalf("bell rang=%d suppressed=%d", bell.rang, suppressed)
	}
}

type recordingTitle struct {
	NoopTitle
	pushed, popped int
}

func (r *recordingTitle) PushTitle() { r.pushed++ }
func (r *recordingTitle) PopTitle()  { r.popped++ }

func TestTerminalWindowManipulationTitleStack(t *testing.T) {
	title := &recordingTitle{}
	term := New(WithTitle(title))
	term.Write([]byte("\x1b]2;first\x07\x1b[22t\x1b]2;second\x07\x1b[23t"))
	if title.pushed != 1 || title.popped != 1 {
		t.Fatalf("pushed=%d popped=%d", title.pushed, title.popped)
	}
	if term.title != "first" {
		t.Fatalf("title not restored from stack: %q", term.title)
	}
}

func TestTerminalWrapPasteEmitsEvent(t *testing.T) {
	var got *Event
	term := New(WithEventHandler(func(e Event) {
		if e.Kind == EventPaste {
			e := e
			got = &e
		}
	}))
	out := term.WrapPaste([]byte("hi"))
	if got == nil || string(got.Paste) != string(out) {
		t.Fatalf("EventPaste not emitted correctly: %+v", got)
	}
}

func TestTerminalClipboardWriteEmitsCopyRequested(t *testing.T) {
	var got *Event
	term := New(WithEventHandler(func(e Event) {
		if e.Kind == EventCopyRequested {
			e := e
			got = &e
		}
	}))
	term.Write([]byte("\x1b]52;c;aGVsbG8=\x07")) // base64("hello")
	if got == nil || string(got.Data) != "hello" || got.Selection != 'c' {
		t.Fatalf("EventCopyRequested not emitted correctly: %+v", got)
	}
}
