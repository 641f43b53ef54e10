package vtgrid

import "fmt"

// SnapshotDetail controls how much information Terminal.Snapshot includes.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text with style segments per line.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns full cell-by-cell data.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot is a point-in-time capture of a Terminal's visible grid, taken
// under the terminal's lock so it never observes a partial dispatch.
type Snapshot struct {
	Size   SnapshotSize
	Cursor SnapshotCursor
	Lines  []SnapshotLine
}

// SnapshotSize holds terminal dimensions.
type SnapshotSize struct {
	Rows int
	Cols int
}

// SnapshotCursor holds cursor state.
type SnapshotCursor struct {
	Row     int
	Col     int
	Visible bool
	Shape   string
}

// SnapshotLine represents a single line in the snapshot.
type SnapshotLine struct {
	Text     string
	Segments []SnapshotSegment `json:",omitempty"`
	Cells    []SnapshotCell    `json:",omitempty"`
}

// SnapshotSegment is a run of cells sharing identical rendering: fg, bg,
// attributes, and hyperlink.
type SnapshotSegment struct {
	Text      string
	Fg        string
	Bg        string
	Attrs     SnapshotAttrs
	Hyperlink *SnapshotLink
}

// SnapshotCell represents a single cell with full attributes.
type SnapshotCell struct {
	Char      string
	Fg        string
	Bg        string
	Attrs     SnapshotAttrs
	Hyperlink *SnapshotLink
	Wide      bool
	Spacer    bool
}

// SnapshotAttrs holds text formatting attributes.
type SnapshotAttrs struct {
	Bold      bool
	Faint     bool
	Italic    bool
	Underline string
	Blink     bool
	Inverse   bool
	Invisible bool
	Strike    bool
}

// SnapshotLink holds hyperlink information.
type SnapshotLink struct {
	ID  string
	URI string
}

// Snapshot captures the active screen's current state. detail controls
// whether each line carries just text, style-run segments (good for an
// HTML renderer), or full per-cell data.
func (t *Terminal) Snapshot(detail SnapshotDetail) *Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.active.Cursor()
	snap := &Snapshot{
		Size: SnapshotSize{Rows: t.active.Height(), Cols: t.active.Width()},
		Cursor: SnapshotCursor{
			Row:     cur.Row,
			Col:     cur.Col,
			Visible: cur.Visible,
			Shape:   cursorShapeToString(cur.Shape),
		},
		Lines: make([]SnapshotLine, t.active.Height()),
	}
	for row := 0; row < t.active.Height(); row++ {
		snap.Lines[row] = t.snapshotLine(row, detail)
	}
	return snap
}

func (t *Terminal) snapshotLine(row int, detail SnapshotDetail) SnapshotLine {
	line := SnapshotLine{Text: t.active.Row(row).LineContent()}
	switch detail {
	case SnapshotDetailStyled:
		line.Segments = t.lineToSegments(row)
	case SnapshotDetailFull:
		line.Cells = t.lineToCells(row)
	}
	return line
}

// lineToSegments groups row into runs of cells sharing identical style,
// skipping wide-glyph spacer cells (their glyph lives on the lead cell).
func (t *Terminal) lineToSegments(row int) []SnapshotSegment {
	cells := t.active.Row(row).Cells
	var segments []SnapshotSegment
	var current *SnapshotSegment
	for _, cell := range cells {
		if cell.IsSpacer() {
			continue
		}
		fg := colorToHex(t.palette, cell.Attrs.Fg, true)
		bg := colorToHex(t.palette, cell.Attrs.Bg, false)
		attrs := cellAttrsToSnapshot(cell.Attrs)
		link := cellHyperlinkToSnapshot(cell.Attrs)
		if current == nil || current.Fg != fg || current.Bg != bg || current.Attrs != attrs || !linksEqual(current.Hyperlink, link) {
			if current != nil {
				segments = append(segments, *current)
			}
			current = &SnapshotSegment{Fg: fg, Bg: bg, Attrs: attrs, Hyperlink: link}
		}
		glyph := cell.Glyph
		if glyph == "" {
			glyph = " "
		}
		current.Text += glyph
	}
	if current != nil {
		segments = append(segments, *current)
	}
	return segments
}

func (t *Terminal) lineToCells(row int) []SnapshotCell {
	cells := t.active.Row(row).Cells
	out := make([]SnapshotCell, 0, len(cells))
	for _, cell := range cells {
		glyph := cell.Glyph
		if glyph == "" && !cell.IsSpacer() {
			glyph = " "
		}
		out = append(out, SnapshotCell{
			Char:      glyph,
			Fg:        colorToHex(t.palette, cell.Attrs.Fg, true),
			Bg:        colorToHex(t.palette, cell.Attrs.Bg, false),
			Attrs:     cellAttrsToSnapshot(cell.Attrs),
			Hyperlink: cellHyperlinkToSnapshot(cell.Attrs),
			Wide:      cell.IsWide(),
			Spacer:    cell.IsSpacer(),
		})
	}
	return out
}

func linksEqual(a, b *SnapshotLink) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func colorToHex(p *Palette, c Color, isFg bool) string {
	rgb := p.Resolve(c, isFg)
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

func cellAttrsToSnapshot(a TextAttributes) SnapshotAttrs {
	return SnapshotAttrs{
		Bold:      a.Bold,
		Faint:     a.Faint,
		Italic:    a.Italic,
		Underline: underlineStyleToString(a.Underline),
		Blink:     a.Blink,
		Inverse:   a.Inverse,
		Invisible: a.Invisible,
		Strike:    a.Strike,
	}
}

func cellHyperlinkToSnapshot(a TextAttributes) *SnapshotLink {
	if a.HyperlinkURI == "" {
		return nil
	}
	return &SnapshotLink{ID: a.HyperlinkID, URI: a.HyperlinkURI}
}

func underlineStyleToString(u UnderlineStyle) string {
	switch u {
	case UnderlineSolid:
		return "solid"
	case UnderlineDouble:
		return "double"
	case UnderlineWavy:
		return "wavy"
	case UnderlineDotted:
		return "dotted"
	case UnderlineDashed:
		return "dashed"
	default:
		return ""
	}
}

func cursorShapeToString(s CursorShape) string {
	switch s {
	case CursorUnderline:
		return "underline"
	case CursorBar:
		return "bar"
	default:
		return "block"
	}
}

// LineContent returns the trimmed text of active-screen row i.
func (t *Terminal) LineContent(row int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if row < 0 || row >= t.active.Height() {
		return ""
	}
	return t.active.Row(row).LineContent()
}
