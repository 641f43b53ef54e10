package vtgrid

// EventKind tags the variant carried by an Event. Spec §9 calls for an
// explicit Event union in place of duck-typed callbacks, covering the
// things a host environment tells the terminal about rather than the
// things the terminal tells the host (those go through the provider
// interfaces instead).
type EventKind int

const (
	// EventResize reports that the grid was resized, either by Resize or
	// by a DEC private mode 3 column switch.
	EventResize EventKind = iota
	// EventPaste reports the paste payload WrapPaste returned, ready to be
	// sent to the child process: wrapped in bracketed-paste markers when
	// DEC private mode 2004 is on, unchanged otherwise.
	EventPaste
	// EventCopyRequested reports an OSC 52 copy-to-clipboard request the
	// configured ClipboardProvider already handled; this is an
	// after-the-fact notification hook for embedders that want to show UI
	// feedback.
	EventCopyRequested
	// EventFocusChanged reports a focus change passed to ReportFocus. It
	// is emitted whether or not focus reporting (DEC 1004) is enabled.
	EventFocusChanged
)

// Event is the value delivered to a Terminal's event handler.
type Event struct {
	Kind EventKind

	Width, Height int // EventResize

	Paste []byte // EventPaste

	Selection byte // EventCopyRequested ('c' or 'p')
	Data      []byte

	Focused bool // EventFocusChanged
}
