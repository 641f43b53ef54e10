package vtgrid

import "testing"

func TestApplySGR_LegacyExtendedColor256(t *testing.T) {
	var a TextAttributes
	params := [][]int{{38}, {5}, {196}}
	i := 0
	for i < len(params) {
		i = a.ApplySGR(params, i)
	}
	if a.Fg.Kind != ColorPalette || a.Fg.Idx != 196 {
		t.Fatalf("got %+v", a.Fg)
	}
}

func TestApplySGR_LegacyExtendedTrueColor(t *testing.T) {
	var a TextAttributes
	params := [][]int{{48}, {2}, {10}, {20}, {30}}
	i := 0
	for i < len(params) {
		i = a.ApplySGR(params, i)
	}
	if a.Bg.Kind != ColorRGB || a.Bg.R != 10 || a.Bg.G != 20 || a.Bg.B != 30 {
		t.Fatalf("got %+v", a.Bg)
	}
}

func TestApplySGR_ColonTrueColor(t *testing.T) {
	var a TextAttributes
	params := [][]int{{38, 2, 0, 1, 2, 3}}
	a.ApplySGR(params, 0)
	if a.Fg.Kind != ColorRGB || a.Fg.R != 1 || a.Fg.G != 2 || a.Fg.B != 3 {
		t.Fatalf("got %+v", a.Fg)
	}
}

func TestApplySGR_UnderlineStyles(t *testing.T) {
	cases := []struct {
		sub  int
		want UnderlineStyle
	}{
		{1, UnderlineSolid},
		{2, UnderlineDouble},
		{3, UnderlineWavy},
		{4, UnderlineDotted},
		{5, UnderlineDashed},
	}
	for _, c := range cases {
		var a TextAttributes
		a.ApplySGR([][]int{{4, c.sub}}, 0)
		if a.Underline != c.want {
			t.Fatalf("sub %d: got %v want %v", c.sub, a.Underline, c.want)
		}
	}
}

func TestApplySGR_21ResetsBoldNotDoubleUnderline(t *testing.T) {
	a := TextAttributes{Bold: true}
	a.ApplySGR([][]int{{21}}, 0)
	if a.Bold {
		t.Fatalf("SGR 21 did not reset bold: %+v", a)
	}
	if a.Underline != UnderlineNone {
		t.Fatalf("SGR 21 should not touch underline: %+v", a)
	}
}

func TestApplySGR_ResetClearsEverything(t *testing.T) {
	a := TextAttributes{Bold: true, Fg: PaletteColor(1), HyperlinkURI: "http://x"}
	a.ApplySGR([][]int{{0}}, 0)
	if !a.IsDefault() {
		t.Fatalf("got %+v", a)
	}
}

func TestWithHyperlinkRoundTrips(t *testing.T) {
	a := TextAttributes{Bold: true}
	b := a.WithHyperlink(&Hyperlink{ID: "1", URI: "http://x"})
	if b.HyperlinkID != "1" || b.HyperlinkURI != "http://x" || !b.Bold {
		t.Fatalf("got %+v", b)
	}
	c := b.WithHyperlink(nil)
	if c.HyperlinkID != "" || c.HyperlinkURI != "" {
		t.Fatalf("got %+v", c)
	}
}

func TestSplitWidecharStringGroupsCombiningMarks(t *testing.T) {
	// "e" + COMBINING ACUTE ACCENT (U+0301) should group into one span.
	spans := SplitWidecharString("é한a")
	if len(spans) != 3 {
		t.Fatalf("got %+v", spans)
	}
	if spans[0].Text != "é" || spans[0].Width != 1 {
		t.Fatalf("got %+v", spans[0])
	}
	if spans[1].Width != 2 {
		t.Fatalf("got %+v", spans[1])
	}
}
