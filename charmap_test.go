package vtgrid

import "testing"

func TestCharacterMapSetOverridesMergesWithoutLosingBase(t *testing.T) {
	m := NewCharacterMap(CharsetLineDrawing)
	m.SetOverrides(map[rune]rune{'a': 'X'})
	if got := m.Translate('a'); got != 'X' {
		t.Fatalf("override not applied: %q", got)
	}
	if got := m.Translate('q'); got != '─' {
		t.Fatalf("base mapping lost: %q", got)
	}
	if got := m.Translate('z'); got != '≥' {
		t.Fatalf("base mapping lost: %q", got)
	}
}

func TestCharacterMapSetOverridesDoesNotMutateSharedTable(t *testing.T) {
	m1 := NewCharacterMap(CharsetLineDrawing)
	m1.SetOverrides(map[rune]rune{'a': 'X'})
	m2 := NewCharacterMap(CharsetLineDrawing)
	if got := m2.Translate('a'); got != '▒' {
		t.Fatalf("override leaked into shared base table: %q", got)
	}
}

func TestCharsetStateSetOverrides(t *testing.T) {
	s := NewCharsetState()
	s.Designate(CharsetG0, CharsetLineDrawing)
	s.SetOverrides(CharsetG0, map[rune]rune{'q': '='})
	if got := s.Translate('q'); got != '=' {
		t.Fatalf("got %q", got)
	}
	if got := s.Translate('x'); got != '│' {
		t.Fatalf("base mapping lost: %q", got)
	}
}
