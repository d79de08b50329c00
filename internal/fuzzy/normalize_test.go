package fuzzy

import (
	"math"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Samsung Galaxy", "samsung galaxy"},
		{"  MUCHO   espacio \t aqui ", "mucho espacio aqui"},
		{"", ""},
		{"   ", ""},
		{"YA-normalizado", "ya-normalizado"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("  Samsung  Galaxy S24 ")
	want := []string{"samsung", "galaxy", "s24"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %q, want %q", got, want)
	}

	if got := Tokenize("   "); len(got) != 0 {
		t.Errorf("Tokenize(blank) = %q, want empty", got)
	}
}

func TestDiceCoefficient(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"night", "night", 1},
		{"night", "nacht", 0.25},
		{"", "night", 0},
		{"a", "b", 0},
		{"galaxy", "galaxy", 1},
	}
	for _, tt := range tests {
		got := diceCoefficient(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("diceCoefficient(%q, %q) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDiceCoefficientSymmetric(t *testing.T) {
	pairs := [][2]string{{"samsung", "samsug"}, {"galaxy", "galxy"}, {"cable", "tablet"}}
	for _, p := range pairs {
		ab := diceCoefficient(p[0], p[1])
		ba := diceCoefficient(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("diceCoefficient(%q, %q) = %g but reversed = %g", p[0], p[1], ab, ba)
		}
		if ab <= 0 || ab >= 1 {
			t.Errorf("diceCoefficient(%q, %q) = %g, want strictly between 0 and 1", p[0], p[1], ab)
		}
	}
}
