package vtgrid

import (
	"sync"

	"github.com/vtgrid/vtgrid/ansiseq"
)

// TerminalMode is a bitmask of behavior flags the dispatcher toggles via
// CSI h/l (DEC private and ANSI modes). Screen methods that care about
// one of these take it as an explicit bool parameter rather than reading
// this field themselves, keeping mode state out of the screen model per
// spec's component split.
type TerminalMode uint32

const (
	ModeAppCursorKeys TerminalMode = 1 << iota // DECCKM, private 1
	ModeColumn132                              // DECCOLM, private 3
	ModeReverseVideo                           // DECSCNM, private 5
	ModeOrigin                                 // DECOM, private 6
	ModeAutoWrap                               // DECAWM, private 7
	ModeCursorBlink                            // private 12
	ModeShowCursor                              // DECTCEM, private 25
	ModeReverseWraparound                      // xterm extension, private 45
	ModeAltScreen47                            // private 47
	ModeAltScreen1047                          // private 1047
	ModeAltScreen1049                          // private 1049
	ModeFocusReporting                         // private 1004
	ModeMetaSendsEscape                        // private 1036
	ModeAltSendsEscape                         // private 1039
	ModeBracketedPaste                         // private 2004
	ModeInsert                                 // ANSI IRM, non-private 4
	ModeLineFeedNewLine                        // ANSI LNM, non-private 20
)

const (
	defaultCols = 80
	defaultRows = 24
	wideCols    = 132
)

// Terminal is the facade spec §4.G and §4.F describe: it owns both
// screens (primary with scrollback, alternate without), the mode flags,
// tab stops indirectly through Screen, the charset-designation state
// indirectly through Screen, the byte decoder, and the pull-based
// response buffer. All operations are serialized by a single mutex, per
// spec §5's single-threaded cooperative model — the lock exists only to
// let a Terminal be shared safely across goroutines that feed it from
// different places, not to model internal concurrency.
type Terminal struct {
	mu sync.Mutex

	cfg                    Config
	initWidth, initHeight int

	primary   *Screen
	alternate *Screen
	active    *Screen
	onAlt     bool

	scrollback *Scrollback
	palette    *Palette

	modes TerminalMode

	decoder *ansiseq.Decoder

	title      string
	titleStack []string

	hyperlinkSeq int

	savedPrimary   SavedCursor
	savedAlternate SavedCursor
	altSwapCursor  SavedCursor // DECSC slot mode 1049 uses on entry/exit

	response responseBuffer

	clipboard        ClipboardProvider
	bell             BellProvider
	titleProvider    TitleProvider
	notification     NotificationProvider
	workingDirectory WorkingDirectoryProvider
	iterm2           ITerm2Provider

	middleware Middleware
	diagnostic func(string)
	onEvent    func(Event)
}

// New returns a ready-to-feed Terminal. With no Options it uses
// DefaultConfig and an 80x24 grid.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		cfg:              DefaultConfig(),
		initWidth:        defaultCols,
		initHeight:       defaultRows,
		clipboard:        NoopClipboard{},
		bell:             NoopBell{},
		titleProvider:    NoopTitle{},
		notification:     NoopNotification{},
		workingDirectory: NoopWorkingDirectory{},
		iterm2:           NoopITerm2{},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.cfg.MaxStringSequence <= 0 {
		t.cfg.MaxStringSequence = 100000
	}
	t.scrollback = NewScrollback(t.cfg.MaxScrollback)
	t.palette = NewPalette(t.cfg.DefaultForeground, t.cfg.DefaultBackground, t.cfg.DefaultCursor)
	t.primary = NewScreen(t.initWidth, t.initHeight)
	t.primary.attachScrollback(t.scrollback)
	t.alternate = NewScreen(t.initWidth, t.initHeight)
	t.active = t.primary
	t.modes = ModeAutoWrap | ModeShowCursor
	t.decoder = ansiseq.NewDecoder(ansiseq.Config{
		MaxStringSequence: t.cfg.MaxStringSequence,
		Enable8BitControl: t.cfg.Enable8BitControl,
	}, t.handleCommand)
	t.response.cap = t.cfg.MaxResponseSequence
	return t
}

func (t *Terminal) has(m TerminalMode) bool { return t.modes&m != 0 }

func (t *Terminal) setModeFlag(m TerminalMode, on bool) {
	if on {
		t.modes |= m
	} else {
		t.modes &^= m
	}
}

// Feed decodes and dispatches p, returning len(p) and a nil error: per
// spec §7 the parser is infallible to the caller.
func (t *Terminal) Feed(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.decoder.Write(p)
}

// Write is an alias for Feed, letting a Terminal be used as an io.Writer.
func (t *Terminal) Write(p []byte) (int, error) { return t.Feed(p) }

// TakeResponse drains and returns any bytes the dispatcher queued for the
// host (device attribute/status reports, OSC color query replies),
// clearing the buffer. Returns nil if nothing is pending.
func (t *Terminal) TakeResponse() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.response.take()
}

// Width and Height report the active screen's dimensions.
func (t *Terminal) Width() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active.Width()
}

func (t *Terminal) Height() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active.Height()
}

// Resize changes both screens to width x height.
func (t *Terminal) Resize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resizeLocked(width, height)
}

func (t *Terminal) resizeLocked(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	t.primary.Resize(width, height, t.scrollback)
	t.alternate.Resize(width, height, nil)
	t.emitEvent(Event{Kind: EventResize, Width: width, Height: height})
}

// SetAlternateScreen switches the active grid, per DEC private modes
// 47/1047/1049.
func (t *Terminal) SetAlternateScreen(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setAlternateScreenLocked(on, false)
}

func (t *Terminal) setAlternateScreenLocked(on, saveCursor bool) {
	if on == t.onAlt {
		return
	}
	if on {
		if saveCursor {
			t.altSwapCursor = t.active.SaveCursor(t.has(ModeOrigin))
		}
		t.alternate.EraseDisplay(2)
		t.active = t.alternate
		t.onAlt = true
		return
	}
	t.active = t.primary
	t.onAlt = false
	if saveCursor {
		origin := t.active.RestoreCursor(t.altSwapCursor)
		t.setModeFlag(ModeOrigin, origin)
	}
}

// IsAlternateScreen reports which grid is active.
func (t *Terminal) IsAlternateScreen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.onAlt
}

// Reset performs RIS (ESC c): both screens and the scrollback are cleared,
// modes return to their power-on defaults, the palette and title reset,
// and the cursor homes.
func (t *Terminal) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
}

func (t *Terminal) resetLocked() {
	w, h := t.primary.Width(), t.primary.Height()
	t.primary = NewScreen(w, h)
	t.scrollback.Clear()
	t.primary.attachScrollback(t.scrollback)
	t.alternate = NewScreen(w, h)
	t.active = t.primary
	t.onAlt = false
	t.modes = ModeAutoWrap | ModeShowCursor
	t.title, t.titleStack = "", nil
	t.palette = NewPalette(t.cfg.DefaultForeground, t.cfg.DefaultBackground, t.cfg.DefaultCursor)
	t.response = responseBuffer{cap: t.cfg.MaxResponseSequence}
}

// SoftReset performs DECSTR: like RIS but preserves screen content and
// scrollback, only resetting modes, the pen, the scroll region, and
// cursor position.
func (t *Terminal) SoftReset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.softResetLocked()
}

func (t *Terminal) softResetLocked() {
	t.modes = ModeAutoWrap | ModeShowCursor
	for _, s := range []*Screen{t.primary, t.alternate} {
		s.SetPen(TextAttributes{})
		s.SetScrollRegion(0, s.Height()-1, false)
		s.charsets = NewCharsetState()
	}
}

// GetCursor returns the active screen's cursor state.
func (t *Terminal) GetCursor() Cursor {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active.Cursor()
}

// GetCell returns the cell at (row, col) on the active screen, and false
// if out of range.
func (t *Terminal) GetCell(row, col int) (Cell, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if row < 0 || row >= t.active.Height() {
		return Cell{}, false
	}
	r := t.active.Row(row)
	if col < 0 || col >= len(r.Cells) {
		return Cell{}, false
	}
	return r.Cells[col], true
}

// Row returns a clone of row i of the active screen.
func (t *Terminal) Row(i int) (Row, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= t.active.Height() {
		return Row{}, false
	}
	return t.active.Row(i).Clone(), true
}

// ScrollbackLen returns the number of stored scrollback lines.
func (t *Terminal) ScrollbackLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scrollback.Len()
}

// ScrollbackLine returns scrollback line i (0 = oldest).
func (t *Terminal) ScrollbackLine(i int) (Row, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scrollback.Get(i)
}

// ReportFocus queues a focus in/out response (ESC[I / ESC[O) if focus
// reporting (DEC 1004) is enabled, and emits EventFocusChanged either way
// so an embedder can track focus without needing reporting enabled.
func (t *Terminal) ReportFocus(focused bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.has(ModeFocusReporting) {
		if focused {
			t.response.writeString("\x1b[I")
		} else {
			t.response.writeString("\x1b[O")
		}
	}
	t.emitEvent(Event{Kind: EventFocusChanged, Focused: focused})
}

// WrapPaste wraps data in the bracketed-paste markers (ESC[200~ ... ESC
// [201~) when DEC private mode 2004 is enabled, and returns data
// unchanged otherwise. Either way it emits EventPaste so an embedder can
// observe outgoing paste payloads (e.g. to log or size-limit them) without
// having to duplicate the bracketed-paste mode check itself.
func (t *Terminal) WrapPaste(data []byte) []byte {
	t.mu.Lock()
	bracketed := t.has(ModeBracketedPaste)
	t.mu.Unlock()
	if !bracketed {
		t.emitEvent(Event{Kind: EventPaste, Paste: data})
		return data
	}
	out := make([]byte, 0, len(data)+12)
	out = append(out, "\x1b[200~"...)
	out = append(out, data...)
	out = append(out, "\x1b[201~"...)
	t.emitEvent(Event{Kind: EventPaste, Paste: out})
	return out
}

func (t *Terminal) emitEvent(e Event) {
	if t.onEvent != nil {
		t.onEvent(e)
	}
}

func (t *Terminal) warn(msg string) {
	if t.diagnostic != nil {
		t.diagnostic(msg)
	}
}
