package render

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/driftfield/pkg/surface"
)

func TestTermSurface_SizeInPixels(t *testing.T) {
	s := NewTermSurface(80, 24)
	w, h := s.Size()
	if w != 80*TermCellWidth || h != 24*TermCellHeight {
		t.Errorf("Size() = %.0fx%.0f, want %dx%d", w, h, 80*TermCellWidth, 24*TermCellHeight)
	}

	s.Resize(100, 40)
	if w, h := s.Size(); w != 96 || h != 32 {
		t.Errorf("after Resize(100,40) Size() = %.0fx%.0f, want 96x32", w, h)
	}
}

func TestTermSurface_FillCoversCells(t *testing.T) {
	s := NewTermSurface(10, 10)
	s.SetBackground(color.Black)
	w, h := s.Size()
	s.ClearRect(0, 0, w, h)

	s.SetFillColor(color.NRGBA{R: 255, A: 255})
	s.BeginPath()
	surface.Circle(s, 40, 80, 30)
	s.Fill()

	// 圆心所在单元格 (5, 5) 被完全着色
	c, ok := s.CellColor(5, 5)
	if !ok {
		t.Fatal("cell (5,5) out of range")
	}
	if r, g, b := c.RGB255(); r != 255 || g != 0 || b != 0 {
		t.Errorf("centre cell = (%d,%d,%d), want red", r, g, b)
	}
	// 角落单元格保持背景色
	if c, _ := s.CellColor(0, 0); c != (colorful.Color{}) {
		t.Errorf("corner cell = %v, want black background", c)
	}
}

func TestTermSurface_GlobalAlphaBlends(t *testing.T) {
	s := NewTermSurface(4, 4)
	s.SetBackground(color.Black)
	s.SetFillColor(color.White)
	s.SetGlobalAlpha(0.5)
	s.BeginPath()
	surface.RoundRect(s, 0, 0, 32, 64, 0)
	s.Fill()

	c, _ := s.CellColor(1, 1)
	r, _, _ := c.RGB255()
	if r < 120 || r > 135 {
		t.Errorf("half-alpha white over black = %d, want ~128", r)
	}
}

func TestTermSurface_StrokeAndText(t *testing.T) {
	s := NewTermSurface(20, 5)
	s.SetStrokeColor(color.White)
	s.BeginPath()
	s.MoveTo(4, 8)
	s.LineTo(156, 8)
	s.Stroke()

	for col := 0; col < 20; col++ {
		if c, _ := s.CellColor(col, 0); c == (colorful.Color{}) {
			t.Errorf("stroke missed cell (%d,0)", col)
		}
	}

	s.SetFillColor(color.White)
	s.FillText("go", 80, 40, 14)
	// 两个字符以第 10 列为中心
	if s.CellRune(9, 2) != 'g' || s.CellRune(10, 2) != 'o' {
		t.Errorf("text cells = %q %q, want 'g' 'o'", s.CellRune(9, 2), s.CellRune(10, 2))
	}
	if got := s.MeasureText("go", 14); got != 2*TermCellWidth {
		t.Errorf("MeasureText = %v, want %d", got, 2*TermCellWidth)
	}
}

func TestTermSurface_TransformAppliesToPaths(t *testing.T) {
	s := NewTermSurface(10, 10)
	s.SetFillColor(color.White)
	s.Save()
	s.Translate(64, 128)
	s.BeginPath()
	surface.RoundRect(s, 0, 0, 8, 16, 0)
	s.Fill()
	s.Restore()

	if c, _ := s.CellColor(8, 8); c == (colorful.Color{}) {
		t.Error("translated rect not drawn at cell (8,8)")
	}
	if c, _ := s.CellColor(0, 0); c != (colorful.Color{}) {
		t.Error("untranslated origin cell should stay empty")
	}
}

func TestTermSurface_FlushToSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(6, 2)

	s := NewTermSurface(6, 2)
	s.SetFillColor(color.NRGBA{G: 255, A: 255})
	s.FillText("ok", 24, 8, 14)
	s.Flush(screen)
	screen.Show()

	r, _, style, _ := screen.GetContent(2, 0)
	if r != 'o' {
		t.Errorf("screen rune at (2,0) = %q, want 'o'", r)
	}
	fg, _, _ := style.Decompose()
	if _, g, _ := fg.RGB(); g != 255 {
		t.Errorf("foreground green = %d, want 255", g)
	}
}

func TestTermSurface_ZeroSizeIsNoop(t *testing.T) {
	s := NewTermSurface(0, 0)
	s.SetFillColor(color.White)
	s.BeginPath()
	surface.Circle(s, 0, 0, 10)
	s.Fill()
	s.Stroke()
	s.FillText("x", 0, 0, 12)
	s.ClearRect(0, 0, 100, 100)
	if _, ok := s.CellColor(0, 0); ok {
		t.Error("zero-size surface should have no cells")
	}
}
