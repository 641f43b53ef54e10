package vtgrid

// RGB is a concrete 24-bit color value, the form a renderer ultimately
// needs regardless of whether a Cell held a palette index or a direct
// true-color value.
type RGB struct {
	R, G, B uint8
}

// defaultPalette16 holds the standard ANSI 0-7 and bright 8-15 entries.
var defaultPalette16 = [16]RGB{
	{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
	{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
	{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
	{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
}

func buildDefaultPalette() [256]RGB {
	var p [256]RGB
	copy(p[:16], defaultPalette16[:])
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = RGB{cube6(r), cube6(g), cube6(b)}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p[232+j] = RGB{gray, gray, gray}
	}
	return p
}

func cube6(v int) uint8 {
	if v == 0 {
		return 0
	}
	return uint8(55 + v*40)
}

// Palette is the 256-entry indexed color table plus the three dynamic
// colors (default foreground, default background, cursor color) that OSC
// 4/10/11/12 let a client application redefine at runtime, and OSC
// 104/110/111/112 reset back to the configured defaults. Entries are
// mutable state, unlike a fixed reference table, because redefinitions
// persist for the life of the terminal until explicitly reset.
type Palette struct {
	entries       [256]RGB
	defaultFg     RGB
	defaultBg     RGB
	defaultCursor RGB
	fg            RGB
	bg            RGB
	cursor        RGB
}

// NewPalette returns a palette seeded with the standard 256-color table
// and the given theme defaults for foreground, background, and cursor.
func NewPalette(fg, bg, cursor RGB) *Palette {
	p := &Palette{
		entries:       buildDefaultPalette(),
		defaultFg:     fg,
		defaultBg:     bg,
		defaultCursor: cursor,
	}
	p.fg, p.bg, p.cursor = fg, bg, cursor
	return p
}

// SetIndex redefines palette slot idx (OSC 4).
func (p *Palette) SetIndex(idx uint8, c RGB) {
	p.entries[idx] = c
}

// Index returns the current color at palette slot idx.
func (p *Palette) Index(idx uint8) RGB {
	return p.entries[idx]
}

// ResetIndex restores palette slot idx to its built-in default.
func (p *Palette) ResetIndex(idx uint8) {
	d := buildDefaultPalette()
	p.entries[idx] = d[idx]
}

// ResetAll restores every palette slot to its built-in default (OSC 104
// with no arguments), without touching fg/bg/cursor.
func (p *Palette) ResetAll() {
	p.entries = buildDefaultPalette()
}

// SetFg, SetBg, SetCursor redefine the dynamic colors (OSC 10/11/12).
func (p *Palette) SetFg(c RGB)     { p.fg = c }
func (p *Palette) SetBg(c RGB)     { p.bg = c }
func (p *Palette) SetCursor(c RGB) { p.cursor = c }

// Fg, Bg, Cursor return the current dynamic colors.
func (p *Palette) Fg() RGB     { return p.fg }
func (p *Palette) Bg() RGB     { return p.bg }
func (p *Palette) Cursor() RGB { return p.cursor }

// ResetFg, ResetBg, ResetCursor restore a dynamic color to its configured
// default (OSC 110/111/112).
func (p *Palette) ResetFg()     { p.fg = p.defaultFg }
func (p *Palette) ResetBg()     { p.bg = p.defaultBg }
func (p *Palette) ResetCursor() { p.cursor = p.defaultCursor }

// Resolve turns a Cell's Color into a concrete RGB value. isFg selects
// which dynamic color DefaultColor resolves to.
func (p *Palette) Resolve(c Color, isFg bool) RGB {
	switch c.Kind {
	case ColorRGB:
		return RGB{c.R, c.G, c.B}
	case ColorPalette:
		return p.entries[c.Idx]
	default:
		if isFg {
			return p.fg
		}
		return p.bg
	}
}
