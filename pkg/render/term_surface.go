package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/decker502/driftfield/pkg/surface"
)

// 终端单元格对应的逻辑像素尺寸
const (
	TermCellWidth  = 8
	TermCellHeight = 16
)

type termCell struct {
	bg colorful.Color
	fg colorful.Color
	ch rune
}

// TermSurface 把绘制命令栅格化到终端字符网格
//
// 每个单元格按中心点采样：填充按非零环绕规则判断覆盖，
// 描边沿线段采样，颜色按全局透明度用 go-colorful 混合到单元格背景。
// 文本逐字符写入单元格前景。Flush 把网格写入 tcell.Screen。
type TermSurface struct {
	cols, rows int
	cells      []termCell
	background colorful.Color

	states *surface.StateStack
	path   surface.PathBuilder
}

// NewTermSurface 创建 cols×rows 单元格的终端画布
func NewTermSurface(cols, rows int) *TermSurface {
	s := &TermSurface{
		states:     surface.NewStateStack(),
		background: colorful.Color{},
	}
	s.ResizeCells(cols, rows)
	return s
}

// Context2D 实现 surface.Canvas
func (s *TermSurface) Context2D() (surface.Surface, bool) {
	if s == nil {
		return nil, false
	}
	return s, true
}

// SetBackground 设置清屏颜色（随主题变化）
func (s *TermSurface) SetBackground(c color.Color) {
	if cc, ok := colorful.MakeColor(c); ok {
		s.background = cc
	}
}

// ResizeCells 按单元格数调整尺寸
func (s *TermSurface) ResizeCells(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]termCell, cols*rows)
	for i := range s.cells {
		s.cells[i] = termCell{bg: s.background, ch: ' '}
	}
}

// Size 返回逻辑像素尺寸
func (s *TermSurface) Size() (float64, float64) {
	return float64(s.cols * TermCellWidth), float64(s.rows * TermCellHeight)
}

// Resize 按逻辑像素调整尺寸，向下取整到单元格
func (s *TermSurface) Resize(width, height float64) {
	s.ResizeCells(int(width)/TermCellWidth, int(height)/TermCellHeight)
}

func (s *TermSurface) cell(col, row int) *termCell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}

// cellAt 返回设备空间点所在的单元格
func (s *TermSurface) cellAt(x, y float64) *termCell {
	return s.cell(int(math.Floor(x/TermCellWidth)), int(math.Floor(y/TermCellHeight)))
}

func (s *TermSurface) ClearRect(x, y, w, h float64) {
	m := s.states.Current.Matrix
	x0, y0 := m.Apply(x, y)
	x1, y1 := m.Apply(x+w, y+h)
	c0 := int(math.Floor(math.Min(x0, x1) / TermCellWidth))
	r0 := int(math.Floor(math.Min(y0, y1) / TermCellHeight))
	c1 := int(math.Ceil(math.Max(x0, x1) / TermCellWidth))
	r1 := int(math.Ceil(math.Max(y0, y1) / TermCellHeight))
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			if c := s.cell(col, row); c != nil {
				*c = termCell{bg: s.background, ch: ' '}
			}
		}
	}
}

func (s *TermSurface) Save()    { s.states.Save() }
func (s *TermSurface) Restore() { s.states.Restore() }

func (s *TermSurface) Translate(x, y float64) {
	s.states.Current.Matrix = s.states.Current.Matrix.Translate(x, y)
}

func (s *TermSurface) Rotate(angle float64) {
	s.states.Current.Matrix = s.states.Current.Matrix.Rotate(angle)
}

func (s *TermSurface) Scale(x, y float64) {
	s.states.Current.Matrix = s.states.Current.Matrix.Scale(x, y)
}

func (s *TermSurface) BeginPath() { s.path.Reset() }

func (s *TermSurface) MoveTo(x, y float64) { s.path.MoveTo(s.states.Current.Matrix, x, y) }

func (s *TermSurface) LineTo(x, y float64) { s.path.LineTo(s.states.Current.Matrix, x, y) }

func (s *TermSurface) Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool) {
	s.path.Arc(s.states.Current.Matrix, x, y, radius, startAngle, endAngle, anticlockwise)
}

func (s *TermSurface) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	s.path.BezierCurveTo(s.states.Current.Matrix, cp1x, cp1y, cp2x, cp2y, x, y)
}

func (s *TermSurface) QuadraticCurveTo(cpx, cpy, x, y float64) {
	s.path.QuadraticCurveTo(s.states.Current.Matrix, cpx, cpy, x, y)
}

func (s *TermSurface) ClosePath() { s.path.ClosePath() }

func (s *TermSurface) SetFillColor(c color.Color)   { s.states.Current.FillColor = c }
func (s *TermSurface) SetStrokeColor(c color.Color) { s.states.Current.StrokeColor = c }

func (s *TermSurface) SetLineWidth(width float64) {
	if width > 0 {
		s.states.Current.LineWidth = width
	}
}

func (s *TermSurface) SetGlobalAlpha(alpha float64) { s.states.SetGlobalAlpha(alpha) }

// blendColor 返回颜色与其有效透明度（颜色自身 alpha × 全局透明度）
func blendColor(c color.Color, globalAlpha float64) (colorful.Color, float64) {
	n := surface.ScaleAlpha(c, globalAlpha)
	cc, _ := colorful.MakeColor(color.NRGBA{R: n.R, G: n.G, B: n.B, A: 0xff})
	return cc, float64(n.A) / 255
}

// Fill 填充当前路径覆盖的单元格
func (s *TermSurface) Fill() {
	subs := s.path.Subpaths()
	if len(subs) == 0 || s.cols == 0 || s.rows == 0 {
		return
	}
	fill, a := blendColor(s.states.Current.FillColor, s.states.Current.GlobalAlpha)
	if a <= 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sp := range subs {
		x0, y0, x1, y1, ok := sp.Bounds()
		if !ok {
			continue
		}
		minX, minY = math.Min(minX, x0), math.Min(minY, y0)
		maxX, maxY = math.Max(maxX, x1), math.Max(maxY, y1)
	}

	c0 := int(math.Floor(minX / TermCellWidth))
	c1 := int(math.Floor(maxX / TermCellWidth))
	r0 := int(math.Floor(minY / TermCellHeight))
	r1 := int(math.Floor(maxY / TermCellHeight))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c := s.cell(col, row)
			if c == nil {
				continue
			}
			cx := (float64(col) + 0.5) * TermCellWidth
			cy := (float64(row) + 0.5) * TermCellHeight
			if windingNumber(subs, cx, cy) != 0 {
				c.bg = c.bg.BlendRgb(fill, a)
			}
		}
	}
}

// windingNumber 计算点相对所有子路径的环绕数（子路径隐式闭合）
func windingNumber(subs []surface.Subpath, x, y float64) int {
	wn := 0
	for _, sp := range subs {
		pts := sp.Points
		n := len(pts)
		if n < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			p0, p1 := pts[i], pts[(i+1)%n]
			if p0.Y <= y {
				if p1.Y > y && cross(p0, p1, x, y) > 0 {
					wn++
				}
			} else if p1.Y <= y && cross(p0, p1, x, y) < 0 {
				wn--
			}
		}
	}
	return wn
}

func cross(p0, p1 surface.Point, x, y float64) float64 {
	return (p1.X-p0.X)*(y-p0.Y) - (x-p0.X)*(p1.Y-p0.Y)
}

// Stroke 沿路径采样并着色经过的单元格
func (s *TermSurface) Stroke() {
	subs := s.path.Subpaths()
	if len(subs) == 0 {
		return
	}
	stroke, a := blendColor(s.states.Current.StrokeColor, s.states.Current.GlobalAlpha)
	if a <= 0 {
		return
	}
	// 同一次描边只给每个单元格着色一次
	touched := make(map[*termCell]bool)
	mark := func(x, y float64) {
		if c := s.cellAt(x, y); c != nil && !touched[c] {
			touched[c] = true
			c.bg = c.bg.BlendRgb(stroke, a)
		}
	}
	for _, sp := range subs {
		pts := sp.Points
		if sp.Closed && len(pts) > 1 {
			pts = append(append([]surface.Point(nil), pts...), pts[0])
		}
		if len(pts) == 1 {
			mark(pts[0].X, pts[0].Y)
			continue
		}
		for i := 1; i < len(pts); i++ {
			p0, p1 := pts[i-1], pts[i]
			steps := int(math.Ceil(math.Hypot(p1.X-p0.X, p1.Y-p0.Y)/(TermCellWidth/2))) + 1
			for j := 0; j <= steps; j++ {
				t := float64(j) / float64(steps)
				mark(p0.X+(p1.X-p0.X)*t, p0.Y+(p1.Y-p0.Y)*t)
			}
		}
	}
}

// MeasureText 终端中每列固定宽度，字号不影响宽度
func (s *TermSurface) MeasureText(str string, size float64) float64 {
	return float64(runewidth.StringWidth(str) * TermCellWidth)
}

// FillText 以 (x, y) 为中心逐列写入字符
func (s *TermSurface) FillText(str string, x, y, size float64) {
	if str == "" {
		return
	}
	fg, a := blendColor(s.states.Current.FillColor, s.states.Current.GlobalAlpha)
	if a <= 0 {
		return
	}
	dx, dy := s.states.Current.Matrix.Apply(x, y)
	width := runewidth.StringWidth(str)
	col := int(math.Round(dx/TermCellWidth - float64(width)/2))
	row := int(math.Floor(dy / TermCellHeight))
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if c := s.cell(col, row); c != nil && w > 0 {
			c.ch = r
			c.fg = c.bg.BlendRgb(fg, a)
		}
		col += w
	}
}

// Flush 把单元格网格写入 tcell 屏幕；调用方负责 Show
func (s *TermSurface) Flush(screen tcell.Screen) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			c := s.cells[row*s.cols+col]
			style := tcell.StyleDefault.Background(toTcell(c.bg))
			if c.ch != ' ' {
				style = style.Foreground(toTcell(c.fg))
			}
			screen.SetContent(col, row, c.ch, nil, style)
		}
	}
}

// CellColor 返回单元格背景色
func (s *TermSurface) CellColor(col, row int) (colorful.Color, bool) {
	c := s.cell(col, row)
	if c == nil {
		return colorful.Color{}, false
	}
	return c.bg, true
}

// CellRune 返回单元格字符
func (s *TermSurface) CellRune(col, row int) rune {
	if c := s.cell(col, row); c != nil {
		return c.ch
	}
	return 0
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
