package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/driftfield/pkg/surface"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	// 三角形绘制用的纯白源纹理，取中心像素避免边缘采样
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// EbitenSurface 基于 Ebitengine 图像的 Surface
//
// 默认持有一张离屏图层（粒子层），宿主在 Draw 中把图层合成到屏幕，
// 因此粒子层可以独立于背景做整体淡入淡出。
// 也可以用 SetTarget 直接绘制到外部提供的图像上。
type EbitenSurface struct {
	target        *ebiten.Image
	owned         bool
	width, height float64

	states *surface.StateStack
	path   surface.PathBuilder
	fonts  *faceCache

	vs []ebiten.Vertex
	is []uint16
}

// NewEbitenSurface 创建带离屏图层的 Surface；尺寸无效时图层延后到 Resize 分配
func NewEbitenSurface(width, height int) *EbitenSurface {
	s := &EbitenSurface{
		owned:  true,
		states: surface.NewStateStack(),
		fonts:  newFaceCache(),
	}
	s.Resize(float64(width), float64(height))
	return s
}

// Context2D 实现 surface.Canvas
func (s *EbitenSurface) Context2D() (surface.Surface, bool) {
	if s == nil {
		return nil, false
	}
	return s, true
}

// Image 返回当前绘制目标，尺寸无效时为 nil
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.target
}

// SetTarget 改为绘制到外部图像；之后的 Resize 只更新逻辑尺寸
func (s *EbitenSurface) SetTarget(img *ebiten.Image) {
	if s.owned && s.target != nil && s.target != img {
		s.target.Deallocate()
	}
	s.target = img
	s.owned = false
	if img != nil {
		b := img.Bounds()
		s.width, s.height = float64(b.Dx()), float64(b.Dy())
	}
}

// Size 实现 surface.Surface
func (s *EbitenSurface) Size() (float64, float64) {
	return s.width, s.height
}

// Resize 重新分配离屏图层（内容被丢弃，下一帧重绘）
func (s *EbitenSurface) Resize(width, height float64) {
	s.width, s.height = width, height
	if !s.owned {
		return
	}
	w, h := int(math.Ceil(width)), int(math.Ceil(height))
	if s.target != nil {
		b := s.target.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		s.target.Deallocate()
		s.target = nil
	}
	if w > 0 && h > 0 {
		s.target = ebiten.NewImage(w, h)
	}
}

func (s *EbitenSurface) drawable() bool {
	return s.target != nil && surface.Valid(s.width, s.height)
}

// ClearRect 把矩形区域清为全透明
func (s *EbitenSurface) ClearRect(x, y, w, h float64) {
	if !s.drawable() {
		return
	}
	m := s.states.Current.Matrix
	x0, y0 := m.Apply(x, y)
	x1, y1 := m.Apply(x+w, y+h)
	r := image.Rect(int(math.Floor(math.Min(x0, x1))), int(math.Floor(math.Min(y0, y1))),
		int(math.Ceil(math.Max(x0, x1))), int(math.Ceil(math.Max(y0, y1))))
	r = r.Intersect(s.target.Bounds())
	if r.Empty() {
		return
	}
	if r == s.target.Bounds() {
		s.target.Clear()
		return
	}
	s.target.SubImage(r).(*ebiten.Image).Clear()
}

func (s *EbitenSurface) Save()    { s.states.Save() }
func (s *EbitenSurface) Restore() { s.states.Restore() }

func (s *EbitenSurface) Translate(x, y float64) {
	s.states.Current.Matrix = s.states.Current.Matrix.Translate(x, y)
}

func (s *EbitenSurface) Rotate(angle float64) {
	s.states.Current.Matrix = s.states.Current.Matrix.Rotate(angle)
}

func (s *EbitenSurface) Scale(x, y float64) {
	s.states.Current.Matrix = s.states.Current.Matrix.Scale(x, y)
}

func (s *EbitenSurface) BeginPath() { s.path.Reset() }

func (s *EbitenSurface) MoveTo(x, y float64) { s.path.MoveTo(s.states.Current.Matrix, x, y) }

func (s *EbitenSurface) LineTo(x, y float64) { s.path.LineTo(s.states.Current.Matrix, x, y) }

func (s *EbitenSurface) Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool) {
	s.path.Arc(s.states.Current.Matrix, x, y, radius, startAngle, endAngle, anticlockwise)
}

func (s *EbitenSurface) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	s.path.BezierCurveTo(s.states.Current.Matrix, cp1x, cp1y, cp2x, cp2y, x, y)
}

func (s *EbitenSurface) QuadraticCurveTo(cpx, cpy, x, y float64) {
	s.path.QuadraticCurveTo(s.states.Current.Matrix, cpx, cpy, x, y)
}

func (s *EbitenSurface) ClosePath() { s.path.ClosePath() }

func (s *EbitenSurface) SetFillColor(c color.Color)   { s.states.Current.FillColor = c }
func (s *EbitenSurface) SetStrokeColor(c color.Color) { s.states.Current.StrokeColor = c }

func (s *EbitenSurface) SetLineWidth(width float64) {
	if width > 0 {
		s.states.Current.LineWidth = width
	}
}

func (s *EbitenSurface) SetGlobalAlpha(alpha float64) { s.states.SetGlobalAlpha(alpha) }

// vectorPath 把折线化的设备空间子路径转换为 vector.Path
func (s *EbitenSurface) vectorPath() (*vector.Path, bool) {
	subs := s.path.Subpaths()
	if len(subs) == 0 {
		return nil, false
	}
	var p vector.Path
	for _, sp := range subs {
		p.MoveTo(float32(sp.Points[0].X), float32(sp.Points[0].Y))
		for _, pt := range sp.Points[1:] {
			p.LineTo(float32(pt.X), float32(pt.Y))
		}
		if sp.Closed {
			p.Close()
		}
	}
	return &p, true
}

// Fill 以非零环绕规则填充当前路径
func (s *EbitenSurface) Fill() {
	if !s.drawable() {
		return
	}
	p, ok := s.vectorPath()
	if !ok {
		return
	}
	st := s.states.Current
	s.vs, s.is = p.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	s.drawTriangles(st.FillColor, st.GlobalAlpha, ebiten.FillRuleNonZero)
}

// Stroke 以当前线宽描边当前路径，线宽随变换缩放
func (s *EbitenSurface) Stroke() {
	if !s.drawable() {
		return
	}
	p, ok := s.vectorPath()
	if !ok {
		return
	}
	st := s.states.Current
	width := st.LineWidth * st.Matrix.ScaleFactor()
	if width <= 0 {
		return
	}
	s.vs, s.is = p.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	s.drawTriangles(st.StrokeColor, st.GlobalAlpha, ebiten.FillRuleNonZero)
}

func (s *EbitenSurface) drawTriangles(c color.Color, alpha float64, rule ebiten.FillRule) {
	if len(s.is) == 0 {
		return
	}
	n := surface.ScaleAlpha(c, alpha)
	if n.A == 0 {
		return
	}
	r, g, b, a := float32(n.R)/0xff, float32(n.G)/0xff, float32(n.B)/0xff, float32(n.A)/0xff
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = r
		s.vs[i].ColorG = g
		s.vs[i].ColorB = b
		s.vs[i].ColorA = a
	}
	s.target.DrawTriangles(s.vs, s.is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  rule,
	})
}

// MeasureText 返回用户空间中的文本宽度
func (s *EbitenSurface) MeasureText(str string, size float64) float64 {
	f := s.fonts.face(size)
	if f == nil {
		return float64(len(str)) * size * 0.6
	}
	w, _ := text.Measure(str, f, size)
	return w
}

// FillText 以 (x, y) 为中心绘制文本
//
// 字形按设备空间字号栅格化，再应用当前变换的旋转，避免缩放导致的模糊。
func (s *EbitenSurface) FillText(str string, x, y, size float64) {
	if !s.drawable() || str == "" {
		return
	}
	st := s.states.Current
	f := s.fonts.face(size * st.Matrix.ScaleFactor())
	if f == nil {
		return
	}
	n := surface.ScaleAlpha(st.FillColor, st.GlobalAlpha)
	if n.A == 0 {
		return
	}
	dx, dy := st.Matrix.Apply(x, y)

	op := &text.DrawOptions{}
	op.GeoM.Rotate(st.Matrix.Angle())
	op.GeoM.Translate(dx, dy)
	op.ColorScale.ScaleWithColor(n)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(s.target, str, f, op)
}
