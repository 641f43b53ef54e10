package vtgrid

// DefaultMaxScrollback is the scrollback capacity a Terminal uses when the
// embedder does not configure one explicitly.
const DefaultMaxScrollback = 10000

// Scrollback is a bounded FIFO of rows scrolled off the top of the primary
// screen. Pushing past the configured maximum silently discards the
// oldest line, matching a real terminal's bounded history rather than
// growing without limit.
type Scrollback struct {
	lines []Row
	max   int
}

// NewScrollback returns an empty scrollback capped at max lines. A
// non-positive max disables storage: Push becomes a no-op.
func NewScrollback(max int) *Scrollback {
	if max < 0 {
		max = 0
	}
	return &Scrollback{max: max}
}

// Push appends row as the newest scrollback line, evicting the oldest
// line first if the buffer is already at capacity.
func (s *Scrollback) Push(row Row) {
	if s.max <= 0 {
		return
	}
	s.lines = append(s.lines, row)
	if len(s.lines) > s.max {
		s.lines = s.lines[len(s.lines)-s.max:]
	}
}

// PopLast removes and returns up to n of the newest lines, oldest first,
// for the case where a screen grows back into rows it previously scrolled
// out (spec: growth unshifts up to delta rows from scrollback). Returns
// fewer than n if that many aren't available.
func (s *Scrollback) PopLast(n int) []Row {
	if n <= 0 || len(s.lines) == 0 {
		return nil
	}
	if n > len(s.lines) {
		n = len(s.lines)
	}
	start := len(s.lines) - n
	out := append([]Row(nil), s.lines[start:]...)
	s.lines = s.lines[:start]
	return out
}

// Len returns the number of stored scrollback lines.
func (s *Scrollback) Len() int {
	return len(s.lines)
}

// Get returns the scrollback line at index i, where 0 is the oldest line.
// The second return value is false if i is out of range.
func (s *Scrollback) Get(i int) (Row, bool) {
	if i < 0 || i >= len(s.lines) {
		return Row{}, false
	}
	return s.lines[i], true
}

// Clear discards all stored lines (CSI 3 J when enabled).
func (s *Scrollback) Clear() {
	s.lines = nil
}

// SetMax changes the capacity, trimming the oldest lines immediately if
// the buffer is now over the new limit.
func (s *Scrollback) SetMax(max int) {
	if max < 0 {
		max = 0
	}
	s.max = max
	if max > 0 && len(s.lines) > max {
		s.lines = s.lines[len(s.lines)-max:]
	} else if max == 0 {
		s.lines = nil
	}
}

// Max returns the current capacity.
func (s *Scrollback) Max() int {
	return s.max
}
