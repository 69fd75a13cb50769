package style_test

import (
	"errors"
	"testing"

	"github.com/go-deck/deck/pkg/geometry"
	"github.com/go-deck/deck/pkg/style"
)

func TestCascade_DefaultsWhenChainIsEmpty(t *testing.T) {
	st, err := style.Cascade("box-0", []style.Properties{{}})
	if err != nil {
		t.Fatalf("Cascade: %v", err)
	}
	if st != style.Default() {
		t.Errorf("got %+v, want defaults", st)
	}
}

func TestCascade_NearestAncestorWins(t *testing.T) {
	chain := []style.Properties{
		{FontSize: style.Float(40), Bold: style.Bool(true)}, // root
		{FontSize: style.Float(20)},                         // middle
		{},                                                  // self
	}

	st, err := style.Cascade("box-2", chain)
	if err != nil {
		t.Fatalf("Cascade: %v", err)
	}
	if st.FontSize != 20 {
		t.Errorf("FontSize = %v, want 20 (middle overrides root)", st.FontSize)
	}
	if !st.Bold {
		t.Error("Bold not inherited from root")
	}
	if st.LineSpacing != 1.2 {
		t.Errorf("LineSpacing = %v, want default 1.2", st.LineSpacing)
	}
}

func TestCascade_SelfOverridesAncestors(t *testing.T) {
	red := style.ColorOf(style.RGB(0xff, 0, 0))
	blue := style.ColorOf(style.RGB(0, 0, 0xff))
	chain := []style.Properties{
		{Color: red},
		{Color: blue},
	}

	st, err := style.Cascade("box-1", chain)
	if err != nil {
		t.Fatalf("Cascade: %v", err)
	}
	if st.Color != *blue {
		t.Errorf("Color = %v, want own override %v", st.Color, *blue)
	}
}

// TestCascade_PerProperty checks that each property resolves
// independently: a box can inherit font size from one ancestor and color
// from another.
func TestCascade_PerProperty(t *testing.T) {
	chain := []style.Properties{
		{FontSize: style.Float(36)},
		{Color: style.ColorOf(style.RGB(0x33, 0x33, 0x33))},
		{},
	}

	st, err := style.Cascade("box-2", chain)
	if err != nil {
		t.Fatalf("Cascade: %v", err)
	}
	if st.FontSize != 36 {
		t.Errorf("FontSize = %v, want 36", st.FontSize)
	}
	if st.Color != style.RGB(0x33, 0x33, 0x33) {
		t.Errorf("Color = %v, want inherited gray", st.Color)
	}
}

func TestCascade_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		props    style.Properties
		property string
	}{
		{"negative padding", style.Properties{Padding: &geometry.EdgeInsets{Top: -1}}, "padding"},
		{"zero font size", style.Properties{FontSize: style.Float(0)}, "font_size"},
		{"negative line spacing", style.Properties{LineSpacing: style.Float(-0.5)}, "line_spacing"},
		{"negative stroke width", style.Properties{StrokeWidth: style.Float(-2)}, "stroke_width"},
		{"negative corner radius", style.Properties{CornerRadius: style.Float(-4)}, "corner_radius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := style.Cascade("box-7", []style.Properties{tt.props})
			var styleErr *style.StyleError
			if !errors.As(err, &styleErr) {
				t.Fatalf("got %v, want StyleError", err)
			}
			if styleErr.Property != tt.property {
				t.Errorf("Property = %q, want %q", styleErr.Property, tt.property)
			}
			if styleErr.Box != "box-7" {
				t.Errorf("Box = %q, want box-7", styleErr.Box)
			}
		})
	}
}

// TestCascade_NoClamping checks that out-of-range values error instead of
// being silently corrected.
func TestCascade_NoClamping(t *testing.T) {
	if _, err := style.Cascade("box-0", []style.Properties{{FontSize: style.Float(-10)}}); err == nil {
		t.Fatal("negative font size silently accepted")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    style.Color
		wantErr bool
	}{
		{"#fff", style.RGB(0xff, 0xff, 0xff), false},
		{"#1a2b3c", style.RGB(0x1a, 0x2b, 0x3c), false},
		{"#1a2b3c80", style.RGBA(0x1a, 0x2b, 0x3c, 0x80), false},
		{"", style.ColorTransparent, false},
		{"red", 0, true},
		{"#12", 0, true},
	}
	for _, tt := range tests {
		got, err := style.ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
