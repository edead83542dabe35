package textutil

import "testing"

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Amélie", "amelie"},
		{"WALL·E", "wall e"},
		{"Fast & Furious", "fast and furious"},
		{"Se7en  ", "se7en"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeTitle(tc.in); got != tc.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTokenSortRatio(t *testing.T) {
	if got := TokenSortRatio("The Matrix", "Matrix The"); got != 1.0 {
		t.Errorf("reordered tokens ratio = %v, want 1.0", got)
	}
	if got := TokenSortRatio("The Matrix", "The Matrix"); got != 1.0 {
		t.Errorf("identical ratio = %v, want 1.0", got)
	}
	near := TokenSortRatio("The Matrix", "The Matrixx")
	if near < 0.8 || near >= 1.0 {
		t.Errorf("near ratio = %v, want in [0.8, 1.0)", near)
	}
	far := TokenSortRatio("The Matrix", "Paddington")
	if far > 0.5 {
		t.Errorf("unrelated ratio = %v, want <= 0.5", far)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}
	for _, tc := range cases {
		if got := Levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
