package vtgrid

// CursorShape selects how a renderer draws the text cursor (DECSCUSR, CSI
// SP q). Blink is tracked separately so blinking and steady variants of
// the same shape share one value here.
type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBar
)

// Cursor is a screen's text-insertion position plus the overflow latch
// that implements deferred line wrap: when Print fills the last column,
// Overflow is set and the column is NOT advanced past the last column;
// the next printable character commits the pending wrap (newline, clear
// Overflow, then write) instead of printing one column early.
type Cursor struct {
	Row      int
	Col      int
	Overflow bool
	Visible  bool
	Shape    CursorShape
	Blink    bool
}

// NewCursor returns a visible cursor at the origin with the default block
// shape.
func NewCursor() Cursor {
	return Cursor{Visible: true, Shape: CursorBlock, Blink: true}
}

// SavedCursor is the value snapshot taken by DECSC (ESC 7) / CSI s and
// restored by DECRC (ESC 8) / CSI u. It captures everything spec's
// save/restore_cursor operation must round-trip: position, the overflow
// latch, the current pen, origin mode, and charset-designation state. It
// is a plain value, never an alias into live screen state.
type SavedCursor struct {
	Row        int
	Col        int
	Overflow   bool
	Attrs      TextAttributes
	OriginMode bool
	Charsets   CharsetState
	valid      bool
}
