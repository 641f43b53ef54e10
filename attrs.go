package vtgrid

// ColorKind distinguishes which form a Color holds.
type ColorKind int

const (
	ColorDefault ColorKind = iota
	ColorPalette
	ColorRGB
)

// Color is a comparable color value: the default (inherit from theme), a
// palette index (0-255), or a direct RGB triple. Comparable via == so
// TextAttributes as a whole stays comparable.
type Color struct {
	Kind ColorKind
	Idx  uint8
	R    uint8
	G    uint8
	B    uint8
}

// DefaultColor is the zero Color: "use the theme default".
var DefaultColor = Color{Kind: ColorDefault}

// PaletteColor builds a Color selecting a palette slot.
func PaletteColor(idx uint8) Color {
	return Color{Kind: ColorPalette, Idx: idx}
}

// RGBColor builds a direct true-color value.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// UnderlineStyle selects the rendered shape of an underline (SGR 4 with a
// colon sub-parameter, ISO 8613-6).
type UnderlineStyle int

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSolid
	UnderlineDouble
	UnderlineWavy
	UnderlineDotted
	UnderlineDashed
)

// TextAttributes is the full set of rendering attributes a cell carries,
// kept separately from its glyph so it can be compared, cloned, and reused
// as the "current pen" template the dispatcher mutates on SGR. It is a
// plain value type: every field is comparable, so Equals and IsDefault are
// native == comparisons and Clone is a plain copy.
type TextAttributes struct {
	Fg             Color
	Bg             Color
	UnderlineColor Color
	Underline      UnderlineStyle
	Bold           bool
	Faint          bool
	Italic         bool
	Blink          bool
	Inverse        bool
	Invisible      bool
	Strike         bool
	Wide           bool
	HyperlinkID    string
	HyperlinkURI   string
}

// WithHyperlink returns a with the hyperlink fields replaced; link == nil
// clears them (the OSC 8 "end of hyperlink" form).
func (a TextAttributes) WithHyperlink(link *Hyperlink) TextAttributes {
	if link == nil {
		a.HyperlinkID, a.HyperlinkURI = "", ""
		return a
	}
	a.HyperlinkID, a.HyperlinkURI = link.ID, link.URI
	return a
}

// DefaultAttributes is the attribute set after a reset: no colors, no
// styling, solid-state underline off.
var DefaultAttributes = TextAttributes{}

// Reset restores a to the default, unstyled state.
func (a *TextAttributes) Reset() {
	*a = TextAttributes{}
}

// Clone returns an independent copy of a.
func (a TextAttributes) Clone() TextAttributes {
	return a
}

// Equals reports whether a and b render identically.
func (a TextAttributes) Equals(b TextAttributes) bool {
	return a == b
}

// IsDefault reports whether a carries no styling at all.
func (a TextAttributes) IsDefault() bool {
	return a == DefaultAttributes
}

// SetFg returns a with the foreground color replaced.
func (a TextAttributes) SetFg(c Color) TextAttributes {
	a.Fg = c
	return a
}

// SetBg returns a with the background color replaced.
func (a TextAttributes) SetBg(c Color) TextAttributes {
	a.Bg = c
	return a
}

// ApplySGR applies one parameter group (main value plus any colon
// sub-parameters) from a CSI "m" sequence to a, advancing through params
// starting at i and returning the index of the next unconsumed group. This
// lets 38/48/58 consume the following legacy semicolon-separated groups
// while a colon-form parameter consumes only itself.
func (a *TextAttributes) ApplySGR(params [][]int, i int) int {
	if len(params) == 0 {
		a.Reset()
		return i + 1
	}
	g := params[i]
	p := 0
	if len(g) > 0 {
		p = g[0]
	}
	switch {
	case p == 0:
		a.Reset()
	case p == 1:
		a.Bold = true
	case p == 2:
		a.Faint = true
	case p == 3:
		a.Italic = true
	case p == 4:
		a.Underline = underlineStyleFromSGR4(g)
	case p == 5 || p == 6:
		a.Blink = true
	case p == 7:
		a.Inverse = true
	case p == 8:
		a.Invisible = true
	case p == 9:
		a.Strike = true
	case p == 21:
		// Positionally pairs with SGR 1 (bold), not a double-underline set;
		// that form is reached via the colon sub-parameter "4:2" instead.
		a.Bold = false
	case p == 22:
		a.Bold, a.Faint = false, false
	case p == 23:
		a.Italic = false
	case p == 24:
		a.Underline = UnderlineNone
	case p == 25:
		a.Blink = false
	case p == 27:
		a.Inverse = false
	case p == 28:
		a.Invisible = false
	case p == 29:
		a.Strike = false
	case p >= 30 && p <= 37:
		a.Fg = PaletteColor(uint8(p - 30))
	case p == 38:
		c, next, ok := parseExtendedColor(params, i)
		if ok {
			a.Fg = c
		}
		return next
	case p == 39:
		a.Fg = DefaultColor
	case p >= 40 && p <= 47:
		a.Bg = PaletteColor(uint8(p - 40))
	case p == 48:
		c, next, ok := parseExtendedColor(params, i)
		if ok {
			a.Bg = c
		}
		return next
	case p == 49:
		a.Bg = DefaultColor
	case p == 58:
		c, next, ok := parseExtendedColor(params, i)
		if ok {
			a.UnderlineColor = c
		}
		return next
	case p == 59:
		a.UnderlineColor = DefaultColor
	case p >= 90 && p <= 97:
		a.Fg = PaletteColor(uint8(p-90) + 8)
	case p >= 100 && p <= 107:
		a.Bg = PaletteColor(uint8(p-100) + 8)
	}
	return i + 1
}

func underlineStyleFromSGR4(g []int) UnderlineStyle {
	if len(g) < 2 {
		return UnderlineSolid
	}
	switch g[1] {
	case 0:
		return UnderlineNone
	case 1:
		return UnderlineSolid
	case 2:
		return UnderlineDouble
	case 3:
		return UnderlineWavy
	case 4:
		return UnderlineDotted
	case 5:
		return UnderlineDashed
	default:
		return UnderlineSolid
	}
}

// parseExtendedColor parses the 38/48/58 extended-color forms starting at
// params[i] (whose main value is already known to be 38, 48, or 58),
// accepting both the legacy semicolon form (38;5;n or 38;2;r;g;b, spread
// across following top-level groups) and the ISO 8613-6 colon form
// (38:5:n or 38:2::r:g:b, packed into params[i]'s own sub-parameters). It
// returns the resolved color, the index of the next unconsumed parameter
// group, and whether parsing succeeded (a malformed or out-of-range form
// leaves the attribute unchanged).
func parseExtendedColor(params [][]int, i int) (Color, int, bool) {
	g := params[i]
	if len(g) >= 2 {
		c, ok := parseColonColor(g)
		return c, i + 1, ok
	}
	if i+1 >= len(params) {
		return Color{}, i + 1, false
	}
	mode := 0
	if len(params[i+1]) > 0 {
		mode = params[i+1][0]
	}
	switch mode {
	case 5:
		if i+2 >= len(params) {
			return Color{}, i + 2, false
		}
		idx := sgrParamHead(params[i+2])
		if idx < 0 || idx > 255 {
			return Color{}, i + 3, false
		}
		return PaletteColor(uint8(idx)), i + 3, true
	case 2:
		if i+4 >= len(params) {
			return Color{}, len(params), false
		}
		r, g2, b := sgrParamHead(params[i+2]), sgrParamHead(params[i+3]), sgrParamHead(params[i+4])
		if !validByte(r) || !validByte(g2) || !validByte(b) {
			return Color{}, i + 5, false
		}
		return RGBColor(uint8(r), uint8(g2), uint8(b)), i + 5, true
	default:
		return Color{}, i + 2, false
	}
}

// parseColonColor parses the ISO 8613-6 colon form, where g is a single
// parameter group: g[0] is 38/48/58, g[1] is the colorspace (5 or 2), and
// the remaining sub-parameters are the index or r,g,b triple. The 2-form
// carries an extra, typically empty, colorspace-id sub-parameter before
// r,g,b (38:2::r:g:b), which this skips by reading from the end. The bool
// is false for a malformed or out-of-range form.
func parseColonColor(g []int) (Color, bool) {
	mode := g[1]
	switch mode {
	case 5:
		if len(g) < 3 {
			return Color{}, false
		}
		idx := g[2]
		if idx < 0 || idx > 255 {
			return Color{}, false
		}
		return PaletteColor(uint8(idx)), true
	case 2:
		if len(g) < 5 {
			return Color{}, false
		}
		r, gg, b := g[len(g)-3], g[len(g)-2], g[len(g)-1]
		if !validByte(r) || !validByte(gg) || !validByte(b) {
			return Color{}, false
		}
		return RGBColor(uint8(r), uint8(gg), uint8(b)), true
	default:
		return Color{}, false
	}
}

func sgrParamHead(g []int) int {
	if len(g) == 0 {
		return -1
	}
	return g[0]
}

func validByte(v int) bool {
	return v >= 0 && v <= 255
}

// SplitWidecharString breaks s into a sequence of (text, width) spans,
// grouping each base rune, narrow or wide, with any zero-width combining marks that
// trail it so a renderer or grid writer can place one visual unit per
// cell-or-cell-pair. Zero-width runes at the very start of s (no base to
// attach to) are emitted as their own single-width span.
func SplitWidecharString(s string) []WidecharSpan {
	var spans []WidecharSpan
	for _, r := range s {
		w := RuneDisplayWidth(r)
		if w == 0 && len(spans) > 0 {
			last := &spans[len(spans)-1]
			last.Text += string(r)
			continue
		}
		width := w
		if width == 0 {
			width = 1
		}
		spans = append(spans, WidecharSpan{Text: string(r), Width: width})
	}
	return spans
}

// WidecharSpan is one visual unit produced by SplitWidecharString: a base
// rune plus any combining marks attached to it, and the display width
// (1 or 2) the base rune occupies.
type WidecharSpan struct {
	Text  string
	Width int
}
