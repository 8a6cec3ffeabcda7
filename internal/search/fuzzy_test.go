package search

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abcd", "bcde", 0.75},
		{"apple", "appel", 0.8},
		{"same", "same", 1.0},
		{"", "", 1.0},
		{"abc", "", 0.0},
		{"abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		if got := Ratio(tt.a, tt.b); math.Abs(got-tt.want) > epsilon {
			t.Errorf("Ratio(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRatioCountsRunesNotBytes(t *testing.T) {
	// Arabic letters are two bytes each in UTF-8; the ratio must match the
	// rune-level value.
	got := Ratio("يحق للعامل إجازة سنوية مدفوعة", "إجازة سنوية مدفوعه")
	if math.Abs(got-0.723404255319149) > 1e-6 {
		t.Errorf("unexpected ratio %f", got)
	}
}

func TestCloseMatches(t *testing.T) {
	candidates := []string{"ape", "apple", "peach", "puppy"}

	matches := CloseMatches("appel", candidates, 3, 0.6)

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %v", matches)
	}
	if matches[0].Doc != 1 || matches[1].Doc != 0 {
		t.Errorf("expected [apple, ape], got docs %d, %d", matches[0].Doc, matches[1].Doc)
	}
	if math.Abs(matches[0].Score-0.8) > epsilon {
		t.Errorf("expected ratio 0.8, got %f", matches[0].Score)
	}
}

func TestCloseMatchesCutoffInclusive(t *testing.T) {
	// peach and puppy both score exactly 0.4 against appel.
	matches := CloseMatches("appel", []string{"peach", "puppy"}, 5, 0.4)
	if len(matches) != 2 {
		t.Fatalf("expected both candidates at the cutoff, got %v", matches)
	}
	if matches[0].Doc != 0 || matches[1].Doc != 1 {
		t.Errorf("ties should keep candidate order, got %v", matches)
	}
}

func TestCloseMatchesLimit(t *testing.T) {
	matches := CloseMatches("appel", []string{"ape", "apple", "peach", "puppy"}, 1, 0.0)
	if len(matches) != 1 || matches[0].Doc != 1 {
		t.Errorf("expected only apple, got %v", matches)
	}
}

func TestCloseMatchesNoMatch(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		n          int
		cutoff     float64
	}{
		{"nothing clears cutoff", []string{"xyz", "qrs"}, 3, 0.4},
		{"no candidates", nil, 3, 0.4},
		{"zero n", []string{"appel"}, 0, 0.4},
		{"cutoff above one is clamped", []string{"appelx"}, 3, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := CloseMatches("appel", tt.candidates, tt.n, tt.cutoff)
			if matches == nil || len(matches) != 0 {
				t.Errorf("expected empty non-nil slice, got %v", matches)
			}
		})
	}
}

func TestCloseMatchesDeterministic(t *testing.T) {
	candidates := []string{"ساعات العمل الإضافي", "زيارات التفتيش", "ساعات العمل"}

	first := CloseMatches("ساعات العمل", candidates, 3, 0.3)
	second := CloseMatches("ساعات العمل", candidates, 3, 0.3)

	if len(first) != len(second) {
		t.Fatalf("length differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d differs: %v vs %v", i, first[i], second[i])
		}
	}
	if first[0].Doc != 2 {
		t.Errorf("expected exact text first, got doc %d", first[0].Doc)
	}
}
