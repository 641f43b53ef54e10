// Package ansiseq implements a byte-level, chunk-resumable recognizer for
// the C0/C1, CSI, OSC, DCS, PM, APC and UTF-8 byte grammar used by
// VT100/xterm-family terminals. It produces a stream of Commands; it has no
// opinion about what those commands mean to a screen model.
package ansiseq

// CommandKind tags the variant held by a Command.
type CommandKind int

const (
	CmdPrint CommandKind = iota
	CmdC0
	CmdEsc
	CmdCsi
	CmdOsc
	CmdDcs
	CmdStr
)

// StringKind distinguishes the three string-introducer sequences that carry
// an opaque payload to the dispatcher rather than a parsed parameter list.
type StringKind int

const (
	StrPM StringKind = iota
	StrSOS
	StrAPC
)

// EscCommand is a two-character-or-longer escape sequence that never enters
// CSI/OSC/DCS/PM/APC/SOS string collection. Intermediates holds any bytes in
// 0x20-0x2F preceding Final (e.g. '#' before '8', or '(' before a charset
// designator); it is nil for bare sequences like ESC 7 or ESC c.
type EscCommand struct {
	Intermediates []byte
	Final         byte
}

// CsiCommand is a fully parsed Control Sequence Introducer. Each entry in
// Params is a parameter group: element 0 is the parameter's own value,
// elements 1.. are its colon-separated sub-parameters (ISO 8613-6), so a
// plain semicolon-separated parameter always has length 1. Private holds
// '?', '>', or '=' when the sequence carried one of those entry markers, or
// 0 otherwise.
type CsiCommand struct {
	Private       byte
	Params        [][]int
	Intermediates []byte
	Final         byte
}

// OscCommand is an Operating System Command split at its first semicolon:
// Ps is the leading numeric selector, Payload is everything after the
// first semicolon (or empty if there was none).
type OscCommand struct {
	Ps      int
	Payload []byte
}

// DcsCommand carries a raw Device Control String payload. The state table
// this package implements does not parse DCS parameters separately from its
// string body; callers that need the
// P1;P2;Pq-style prefix some DCS sequences carry can parse Payload
// themselves.
type DcsCommand struct {
	Payload []byte
}

// StrCommand carries a raw PM, SOS, or APC payload.
type StrCommand struct {
	Kind    StringKind
	Payload []byte
}

// Command is the tagged union the Decoder emits. Exactly one of the
// type-specific fields is meaningful, selected by Kind.
type Command struct {
	Kind  CommandKind
	Print string
	C0    byte
	Esc   EscCommand
	Csi   CsiCommand
	Osc   OscCommand
	Dcs   DcsCommand
	Str   StrCommand
}
