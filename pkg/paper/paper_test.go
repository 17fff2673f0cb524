package paper

import "testing"

func TestInches(t *testing.T) {
	tests := []struct {
		size Size
		w, h float64
	}{
		{A2, 16.54, 23.39},
		{A3, 11.69, 16.54},
		{A4, 8.27, 11.69},
		{A5, 5.83, 8.27},
		{Size("B4"), 8.27, 11.69}, // unknown falls back to A4
	}

	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			w, h := tt.size.Inches()
			if w != tt.w || h != tt.h {
				t.Errorf("Inches() = %v, %v, want %v, %v", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if s, err := Parse("A3"); err != nil || s != A3 {
		t.Errorf("Parse(A3) = %v, %v", s, err)
	}
	if _, err := Parse("letter"); err == nil {
		t.Error("Parse(letter) should fail")
	}
}

func TestAspectPortrait(t *testing.T) {
	for _, s := range Sizes() {
		if a := s.Aspect(); a >= 1 {
			t.Errorf("%s aspect = %v, want < 1 (portrait)", s, a)
		}
	}
}

func TestSizesSorted(t *testing.T) {
	sizes := Sizes()
	if len(sizes) != 4 {
		t.Fatalf("Sizes() = %v", sizes)
	}
	for i := 1; i < len(sizes); i++ {
		if sizes[i-1] >= sizes[i] {
			t.Errorf("Sizes() not sorted: %v", sizes)
		}
	}
}
