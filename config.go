package vtgrid

// Config carries the tunables spec §6 names: theme defaults, parser
// limits, and the handful of behavior toggles a real terminal exposes as
// preferences rather than protocol state.
type Config struct {
	DefaultForeground RGB
	DefaultBackground RGB
	DefaultCursor     RGB

	// MaxStringSequence caps an OSC/DCS/PM/APC/SOS payload before it is
	// abandoned (ansiseq.Config.MaxStringSequence). Zero uses the
	// package default (100000).
	MaxStringSequence int

	// MaxResponseSequence caps the response buffer TakeResponse drains
	// from, guarding against a malicious or buggy peer issuing endless
	// query sequences (e.g. repeated DSR) with no one reading responses.
	// Zero means unbounded.
	MaxResponseSequence int

	Enable8BitControl bool // accept C1 control bytes 0x80-0x9F as controls
	EnableDEC12       bool // DEC private mode 12 (cursor blink via DECSET)
	EnableCSIJ3       bool // CSI 3 J clears scrollback; when false CSI 3 J is ignored
	EnableBold        bool // render SGR 1 as bold (vs. just "intense")
	EnableBoldAsBright bool // promote a bold foreground to its bright palette slot
	EnableBlink       bool // render SGR 5/6 as blinking rather than static

	TerminalEncoding string // informational; this module always decodes UTF-8

	MaxScrollback int // 0 disables scrollback entirely
}

// DefaultConfig returns the configuration a Terminal uses when New is
// called with no Options: xterm-like default colors, a 10,000-line
// scrollback, and bold/blink rendering enabled.
func DefaultConfig() Config {
	return Config{
		DefaultForeground: RGB{229, 229, 229},
		DefaultBackground: RGB{0, 0, 0},
		DefaultCursor:     RGB{229, 229, 229},
		MaxStringSequence: 100000,
		EnableBold:        true,
		EnableBlink:       true,
		TerminalEncoding:  "utf-8",
		MaxScrollback:     DefaultMaxScrollback,
	}
}

// Option configures a Terminal at construction time, in the teacher's
// functional-options style.
type Option func(*Terminal)

// WithConfig replaces the terminal's configuration wholesale.
func WithConfig(cfg Config) Option {
	return func(t *Terminal) { t.cfg = cfg }
}

// WithSize sets the initial grid dimensions (default 80x24 if unset).
func WithSize(width, height int) Option {
	return func(t *Terminal) { t.initWidth, t.initHeight = width, height }
}

// WithMaxScrollback overrides the configured scrollback capacity.
func WithMaxScrollback(n int) Option {
	return func(t *Terminal) { t.cfg.MaxScrollback = n }
}

// WithResponseLimit overrides the configured response-buffer cap.
func WithResponseLimit(n int) Option {
	return func(t *Terminal) { t.cfg.MaxResponseSequence = n }
}

// WithDiagnostic installs a callback invoked for commands the dispatcher
// does not recognize (unhandled ESC/CSI finals, DEC private modes, OSC
// selectors and window-manipulation selectors), rather than silently
// no-op'ing them. Malformed or out-of-range parameters of recognized
// commands are skipped without a callback. Purely informational: it never
// affects dispatch.
func WithDiagnostic(fn func(msg string)) Option {
	return func(t *Terminal) { t.diagnostic = fn }
}

// WithEventHandler installs the callback Terminal.emitEvent delivers
// Events to.
func WithEventHandler(fn func(Event)) Option {
	return func(t *Terminal) { t.onEvent = fn }
}

// WithClipboard installs a ClipboardProvider for OSC 52.
func WithClipboard(p ClipboardProvider) Option {
	return func(t *Terminal) { t.clipboard = p }
}

// WithBell installs a BellProvider for BEL.
func WithBell(p BellProvider) Option {
	return func(t *Terminal) { t.bell = p }
}

// WithTitle installs a TitleProvider for OSC 0/1/2 and the title stack.
func WithTitle(p TitleProvider) Option {
	return func(t *Terminal) { t.titleProvider = p }
}

// WithNotification installs a NotificationProvider for OSC 9.
func WithNotification(p NotificationProvider) Option {
	return func(t *Terminal) { t.notification = p }
}

// WithWorkingDirectory installs a WorkingDirectoryProvider for OSC 7.
func WithWorkingDirectory(p WorkingDirectoryProvider) Option {
	return func(t *Terminal) { t.workingDirectory = p }
}

// WithITerm2 installs an ITerm2Provider for OSC 1337.
func WithITerm2(p ITerm2Provider) Option {
	return func(t *Terminal) { t.iterm2 = p }
}

// WithMiddleware installs dispatch middleware.
func WithMiddleware(m Middleware) Option {
	return func(t *Terminal) { t.middleware = m }
}
