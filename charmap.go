package vtgrid

// CharsetIndex selects one of the four character-set designation slots
// (G0-G3) a terminal maintains independently of which one is currently
// invoked.
type CharsetIndex int

const (
	CharsetG0 CharsetIndex = iota
	CharsetG1
	CharsetG2
	CharsetG3
)

// CharacterMap translates a rune through a designated 96-or-fewer-entry
// character set, such as the DEC Special Graphics (line-drawing) set
// invoked by "ESC ( 0". The built-in tables only substitute ASCII code
// points 0x20-0x7E; any rune without an entry (including every rune
// outside that range, unless SetOverrides added one) passes through
// untouched.
type CharacterMap struct {
	overrides map[rune]rune
}

// well-known designator IDs, as used by ESC ( / ESC ) / ESC * / ESC + .
const (
	CharsetASCII       = 'B'
	CharsetUK          = 'A'
	CharsetLineDrawing = '0'
)

var lineDrawingTable = map[rune]rune{
	'`': '◆', // diamond
	'a': '▒', // checkerboard
	'b': '␉', // HT symbol
	'c': '␌', // FF symbol
	'd': '␍', // CR symbol
	'e': '␊', // LF symbol
	'f': '°', // degree
	'g': '±', // plus/minus
	'h': '␤', // NL symbol
	'i': '␋', // VT symbol
	'j': '┘', // lower right corner
	'k': '┐', // upper right corner
	'l': '┌', // upper left corner
	'm': '└', // lower left corner
	'n': '┼', // crossing lines
	'o': '⎺', // scan line 1
	'p': '⎻', // scan line 3
	'q': '─', // horizontal line
	'r': '⎼', // scan line 7
	's': '⎽', // scan line 9
	't': '├', // left tee
	'u': '┤', // right tee
	'v': '┴', // bottom tee
	'w': '┬', // top tee
	'x': '│', // vertical bar
	'y': '≤', // less than or equal
	'z': '≥', // greater than or equal
	'{': 'π', // pi
	'|': '≠', // not equal
	'}': '£', // pound sterling
	'~': '·', // centered dot
}

var ukTable = map[rune]rune{
	'#': '£', // pound sterling replaces '#'
}

// NewCharacterMap returns the map for the given well-known designator ID
// (CharsetASCII gives the identity map, CharsetUK and CharsetLineDrawing
// their substitution tables); unrecognized IDs produce the identity map,
// matching a real terminal's behavior
// of falling back to ASCII for charsets it does not implement.
func NewCharacterMap(id byte) CharacterMap {
	switch id {
	case CharsetLineDrawing:
		return CharacterMap{overrides: lineDrawingTable}
	case CharsetUK:
		return CharacterMap{overrides: ukTable}
	default:
		return CharacterMap{}
	}
}

// SetOverrides merges extra rune substitutions into m, replacing only the
// given entries without invalidating the rest of the base mapping. The
// built-in tables (e.g. lineDrawingTable) are shared by value across every
// CharacterMap with that designator, so the merge always builds a fresh
// map rather than mutating m.overrides in place.
func (m *CharacterMap) SetOverrides(overrides map[rune]rune) {
	merged := make(map[rune]rune, len(m.overrides)+len(overrides))
	for k, v := range m.overrides {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	m.overrides = merged
}

// Translate maps r through the character set, returning r unchanged if it
// has no override entry.
func (m CharacterMap) Translate(r rune) rune {
	if m.overrides == nil {
		return r
	}
	if mapped, ok := m.overrides[r]; ok {
		return mapped
	}
	return r
}

// CharsetState tracks the four designated character sets (G0-G3), which of
// them is currently invoked via GL (the left half, affected by SI/SO), and
// the one-shot single-shift selection (SS2/SS3) that overrides the GL
// invocation for exactly the next printed character.
type CharsetState struct {
	G        [4]CharacterMap
	GL       CharsetIndex
	singleShift CharsetIndex
	hasSingleShift bool
}

// NewCharsetState returns the power-on state: all four slots hold ASCII
// and G0 is invoked.
func NewCharsetState() CharsetState {
	return CharsetState{G: [4]CharacterMap{{}, {}, {}, {}}, GL: CharsetG0}
}

// Designate assigns a well-known charset ID to one of the G0-G3 slots.
func (s *CharsetState) Designate(slot CharsetIndex, id byte) {
	s.G[slot] = NewCharacterMap(id)
}

// SetOverrides merges extra rune substitutions into the charset designated
// in slot, without discarding its existing base mapping or overrides.
func (s *CharsetState) SetOverrides(slot CharsetIndex, overrides map[rune]rune) {
	s.G[slot].SetOverrides(overrides)
}

// ShiftIn invokes G0 into GL (the SI control, Ctrl-O).
func (s *CharsetState) ShiftIn() {
	s.GL = CharsetG0
}

// ShiftOut invokes G1 into GL (the SO control, Ctrl-N).
func (s *CharsetState) ShiftOut() {
	s.GL = CharsetG1
}

// SingleShiftG2 arranges for the next character only to be translated
// through G2, after which GL reverts to its previous invocation.
func (s *CharsetState) SingleShiftG2() {
	s.singleShift, s.hasSingleShift = CharsetG2, true
}

// SingleShiftG3 is SingleShiftG2's G3 counterpart.
func (s *CharsetState) SingleShiftG3() {
	s.singleShift, s.hasSingleShift = CharsetG3, true
}

// Translate maps r through whichever charset is in effect for the next
// character: the pending single shift if one is armed, otherwise the
// currently invoked GL set.
func (s *CharsetState) Translate(r rune) rune {
	idx := s.GL
	if s.hasSingleShift {
		idx = s.singleShift
		s.hasSingleShift = false
	}
	return s.G[idx].Translate(r)
}
