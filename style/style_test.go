package style

import "testing"

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		bold    bool
		wantErr bool
	}{
		{"normal", 400, false, false},
		{"bold", 700, true, false},
		{"", 400, false, false},
		{"650", 650, true, false},
		{"300", 300, false, false},
		{"heavy", 0, false, true},
	}
	for _, tt := range tests {
		w, err := ParseWeight(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseWeight(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil {
			continue
		}
		if w.Value() != tt.want {
			t.Fatalf("ParseWeight(%q).Value() = %d, want %d", tt.in, w.Value(), tt.want)
		}
		if w.Bold() != tt.bold {
			t.Fatalf("ParseWeight(%q).Bold() = %v, want %v", tt.in, w.Bold(), tt.bold)
		}
	}
}

func TestWeightTextRoundTrip(t *testing.T) {
	for _, w := range []FontWeight{WeightNormal, WeightBold, Numeric(550)} {
		b, err := w.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText() error = %v", err)
		}
		var back FontWeight
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", b, err)
		}
		if back.Value() != w.Value() {
			t.Fatalf("round trip %q: got %d, want %d", b, back.Value(), w.Value())
		}
	}
}

func TestNormalize(t *testing.T) {
	s := TextStyle{}.Normalize()
	if s.FontFamily == "" || s.FontSize <= 0 || s.LineHeight <= 0 {
		t.Fatalf("Normalize left zero fields: %+v", s)
	}
	custom := TextStyle{FontSize: 9, LineHeight: 2}.Normalize()
	if custom.FontSize != 9 || custom.LineHeight != 2 {
		t.Fatalf("Normalize overwrote set fields: %+v", custom)
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := base.Merge(TextStyle{FontSize: 18, Weight: WeightBold, Color: "#ff0000"})
	if merged.FontSize != 18 || !merged.Weight.Bold() || merged.Color != "#ff0000" {
		t.Fatalf("Merge dropped overrides: %+v", merged)
	}
	if merged.FontFamily != base.FontFamily || merged.LineHeight != base.LineHeight {
		t.Fatalf("Merge clobbered base fields: %+v", merged)
	}
}

func TestDescriptor(t *testing.T) {
	s := TextStyle{FontFamily: "Arial", FontSize: 12, Weight: WeightBold, Style: StyleItalic}
	got := s.Descriptor()
	want := "italic bold 12px Arial"
	if got != want {
		t.Fatalf("Descriptor() = %q, want %q", got, want)
	}
}
