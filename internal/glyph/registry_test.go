package glyph

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/driftfield/pkg/config"
	"github.com/decker502/driftfield/pkg/surface"
)

func TestDefault_CoversDefaultContentPool(t *testing.T) {
	r := Default()
	for _, id := range config.DefaultContentPool().Icons {
		if _, ok := r.Lookup(id); !ok {
			t.Errorf("default pool icon %q has no glyph", id)
		}
	}
	if r.Len() != len(config.DefaultContentPool().Icons) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(config.DefaultContentPool().Icons))
	}
}

func TestGlyphs_DrawInsideUnitBox(t *testing.T) {
	r := Default()
	half := UnitSize / 2

	for _, id := range r.IDs() {
		t.Run(id, func(t *testing.T) {
			g, _ := r.Lookup(id)
			rec := surface.NewRecorder(100, 100)
			g.Render(rec)

			if len(rec.Ops) == 0 {
				t.Fatal("glyph drew nothing")
			}
			if rec.SaveDepth() != 0 {
				t.Errorf("unbalanced Save/Restore: depth %d", rec.SaveDepth())
			}
			for i, op := range rec.Ops {
				if math.Abs(op.X) > half || math.Abs(op.Y) > half {
					t.Errorf("op %d centred at (%.1f, %.1f), outside the %.0f-unit box", i, op.X, op.Y, UnitSize)
				}
			}
		})
	}
}

func TestGlyph_ColorsParsed(t *testing.T) {
	g, ok := Default().Lookup("go")
	if !ok {
		t.Fatal("go glyph missing")
	}
	// #00add8
	if g.Colors.Primary.R != 0x00 || g.Colors.Primary.G != 0xad || g.Colors.Primary.B != 0xd8 || g.Colors.Primary.A != 255 {
		t.Errorf("Primary = %+v, want #00add8", g.Colors.Primary)
	}
}

func TestRegistry_LookupAndRegister(t *testing.T) {
	tests := []struct {
		name   string
		glyph  *Glyph
		lookup string
		want   bool
	}{
		{"注册后可查找", &Glyph{ID: "zig", Draw: drawGo}, "zig", true},
		{"未知标识符", nil, "cobol", false},
		{"忽略空绘制过程", &Glyph{ID: "empty"}, "empty", false},
		{"忽略空标识符", &Glyph{Draw: drawGo}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			r.Register(tt.glyph)
			if _, ok := r.Lookup(tt.lookup); ok != tt.want {
				t.Errorf("Lookup(%q) ok = %v, want %v", tt.lookup, ok, tt.want)
			}
		})
	}

	var nilRegistry *Registry
	if _, ok := nilRegistry.Lookup("go"); ok {
		t.Error("nil registry Lookup should miss")
	}
}

func TestRegistry_IDsSorted(t *testing.T) {
	ids := Default().IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("IDs() not sorted: %q before %q", ids[i-1], ids[i])
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want color.NRGBA
	}{
		{"六位小写", "#00add8", color.NRGBA{R: 0x00, G: 0xad, B: 0xd8, A: 255}},
		{"六位大写", "#F7DF1E", color.NRGBA{R: 0xf7, G: 0xdf, B: 0x1e, A: 255}},
		{"三位简写", "#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hex(tt.in); got != tt.want {
				t.Errorf("hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHex_InvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("hex should panic on an invalid color")
		}
	}()
	hex("not-a-color")
}
