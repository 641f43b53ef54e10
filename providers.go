package vtgrid

// BellProvider handles bell/beep events triggered by BEL (0x07) outside a
// string sequence.
type BellProvider interface {
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// TitleProvider handles window/icon title changes (OSC 0/1/2) and the
// xterm title stack (CSI 22 t / CSI 23 t).
type TitleProvider interface {
	SetTitle(title string)
	SetIconName(name string)
	PushTitle()
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(string)    {}
func (NoopTitle) SetIconName(string) {}
func (NoopTitle) PushTitle()         {}
func (NoopTitle) PopTitle()          {}

// ClipboardProvider backs OSC 52 clipboard read/write. selection is 'c'
// (CLIPBOARD) or 'p' (PRIMARY), matching the OSC 52 Pc parameter.
type ClipboardProvider interface {
	Read(selection byte) string
	Write(selection byte, data []byte)
}

// NoopClipboard ignores all clipboard operations; Read returns "".
type NoopClipboard struct{}

func (NoopClipboard) Read(byte) string      { return "" }
func (NoopClipboard) Write(byte, []byte) {}

// NotificationProvider backs the OSC 9 growl-style notification form:
// a single opaque string, distinct from the Kitty OSC 99 desktop
// notification protocol this module does not implement.
type NotificationProvider interface {
	Notify(text string)
}

// NoopNotification ignores all notifications.
type NoopNotification struct{}

func (NoopNotification) Notify(string) {}

// WorkingDirectoryProvider backs OSC 7, which reports the shell's current
// directory as a file:// URI so a host application can track it (e.g. for
// opening new panes in the same directory).
type WorkingDirectoryProvider interface {
	SetWorkingDirectory(uri string)
}

// NoopWorkingDirectory ignores OSC 7 reports.
type NoopWorkingDirectory struct{}

func (NoopWorkingDirectory) SetWorkingDirectory(string) {}

// ITerm2Provider receives the opaque payload of an OSC 1337 sequence
// as-is; this module does not parse iTerm2's key=value/file-transfer
// grammar, it only routes the payload to an embedder that wants to.
type ITerm2Provider interface {
	Receive(payload []byte)
}

// NoopITerm2 discards OSC 1337 payloads.
type NoopITerm2 struct{}

func (NoopITerm2) Receive([]byte) {}

var _ BellProvider = NoopBell{}
var _ TitleProvider = NoopTitle{}
var _ ClipboardProvider = NoopClipboard{}
var _ NotificationProvider = NoopNotification{}
var _ WorkingDirectoryProvider = NoopWorkingDirectory{}
var _ ITerm2Provider = NoopITerm2{}

// responseBuffer accumulates bytes a dispatcher wants to send back to the
// host (device attribute/status reports, OSC color queries) for pull-based
// retrieval via Terminal.TakeResponse, rather than pushing them through a
// writer at dispatch time.
type responseBuffer struct {
	buf []byte
	cap int // MaxResponseSequence; 0 means unbounded
}

func (r *responseBuffer) write(p []byte) {
	if r.cap > 0 && len(r.buf) >= r.cap {
		return
	}
	r.buf = append(r.buf, p...)
	if r.cap > 0 && len(r.buf) > r.cap {
		r.buf = r.buf[:r.cap]
	}
}

func (r *responseBuffer) writeString(s string) {
	r.write([]byte(s))
}

func (r *responseBuffer) take() []byte {
	if len(r.buf) == 0 {
		return nil
	}
	out := r.buf
	r.buf = nil
	return out
}
