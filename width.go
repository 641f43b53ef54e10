package vtgrid

import "github.com/unilibs/uniwidth"

// RuneDisplayWidth returns the display width: 2 for wide characters (CJK,
// emoji), 1 for normal, 0 for zero-width (combining marks, control chars).
func RuneDisplayWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// IsWideRune returns true if the rune occupies 2 columns (CJK ideographs,
// fullwidth forms, emoji).
func IsWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}

// StringDisplayWidth returns the total display width of a string (sum of
// rune widths).
func StringDisplayWidth(s string) int {
	return uniwidth.StringWidth(s)
}
