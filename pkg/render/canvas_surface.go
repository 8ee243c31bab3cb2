package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/decker502/driftfield/pkg/surface"
)

// CanvasSurface 基于 tfriedel6/canvas 软件后端的 Surface
//
// 不依赖 GPU 与窗口系统，用于无头快照（cmd/fieldsnap）与 CI。
// 绘制命令原样转发给 canvas，语义与 HTML5 canvas 一致。
type CanvasSurface struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	font    *canvas.Font
	fontErr error

	width, height float64
	// canvas 不提供状态查询，颜色与透明度在这里跟踪
	states *surface.StateStack
}

// NewCanvasSurface 创建指定尺寸的软件画布
func NewCanvasSurface(width, height int) *CanvasSurface {
	s := &CanvasSurface{states: surface.NewStateStack()}
	s.Resize(float64(width), float64(height))
	return s
}

// Context2D 实现 surface.Canvas
func (s *CanvasSurface) Context2D() (surface.Surface, bool) {
	if s == nil {
		return nil, false
	}
	return s, true
}

// Image 返回光栅结果；尺寸无效时为 nil
func (s *CanvasSurface) Image() *image.RGBA {
	if s.backend == nil {
		return nil
	}
	return s.backend.Image
}

// WritePNG 把当前画面编码为 PNG
func (s *CanvasSurface) WritePNG(w io.Writer) error {
	img := s.Image()
	if img == nil {
		return fmt.Errorf("canvas surface has no pixels (size %.0fx%.0f)", s.width, s.height)
	}
	return EncodePNG(w, img)
}

// EncodePNG 把图像编码为 PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Size 实现 surface.Surface
func (s *CanvasSurface) Size() (float64, float64) {
	return s.width, s.height
}

// Resize 重建后端；变换状态随之复位
func (s *CanvasSurface) Resize(width, height float64) {
	s.width, s.height = width, height
	w, h := int(math.Ceil(width)), int(math.Ceil(height))
	if w <= 0 || h <= 0 {
		s.backend, s.cv, s.font = nil, nil, nil
		return
	}
	if s.backend != nil && s.backend.Image.Bounds().Dx() == w && s.backend.Image.Bounds().Dy() == h {
		return
	}
	s.backend = softwarebackend.New(w, h)
	s.cv = canvas.New(s.backend)
	s.font = nil
	s.states.Reset()
}

func (s *CanvasSurface) ok() bool {
	return s.cv != nil
}

func (s *CanvasSurface) ClearRect(x, y, w, h float64) {
	if s.ok() {
		s.cv.ClearRect(x, y, w, h)
	}
}

func (s *CanvasSurface) Save() {
	s.states.Save()
	if s.ok() {
		s.cv.Save()
	}
}

func (s *CanvasSurface) Restore() {
	s.states.Restore()
	if s.ok() {
		s.cv.Restore()
	}
}

func (s *CanvasSurface) Translate(x, y float64) {
	if s.ok() {
		s.cv.Translate(x, y)
	}
}

func (s *CanvasSurface) Rotate(angle float64) {
	if s.ok() {
		s.cv.Rotate(angle)
	}
}

func (s *CanvasSurface) Scale(x, y float64) {
	if s.ok() {
		s.cv.Scale(x, y)
	}
}

func (s *CanvasSurface) BeginPath() {
	if s.ok() {
		s.cv.BeginPath()
	}
}

func (s *CanvasSurface) MoveTo(x, y float64) {
	if s.ok() {
		s.cv.MoveTo(x, y)
	}
}

func (s *CanvasSurface) LineTo(x, y float64) {
	if s.ok() {
		s.cv.LineTo(x, y)
	}
}

func (s *CanvasSurface) Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool) {
	if s.ok() && radius >= 0 {
		s.cv.Arc(x, y, radius, startAngle, endAngle, anticlockwise)
	}
}

func (s *CanvasSurface) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	if s.ok() {
		s.cv.BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y)
	}
}

func (s *CanvasSurface) QuadraticCurveTo(cpx, cpy, x, y float64) {
	if s.ok() {
		s.cv.QuadraticCurveTo(cpx, cpy, x, y)
	}
}

func (s *CanvasSurface) ClosePath() {
	if s.ok() {
		s.cv.ClosePath()
	}
}

func (s *CanvasSurface) SetFillColor(c color.Color)   { s.states.Current.FillColor = c }
func (s *CanvasSurface) SetStrokeColor(c color.Color) { s.states.Current.StrokeColor = c }

func (s *CanvasSurface) SetLineWidth(width float64) {
	if width > 0 {
		s.states.Current.LineWidth = width
	}
}

func (s *CanvasSurface) SetGlobalAlpha(alpha float64) { s.states.SetGlobalAlpha(alpha) }

func (s *CanvasSurface) Fill() {
	if !s.ok() {
		return
	}
	st := s.states.Current
	s.cv.SetFillStyle(cssColor(st.FillColor, st.GlobalAlpha))
	s.cv.Fill()
}

func (s *CanvasSurface) Stroke() {
	if !s.ok() {
		return
	}
	st := s.states.Current
	s.cv.SetStrokeStyle(cssColor(st.StrokeColor, st.GlobalAlpha))
	s.cv.SetLineWidth(st.LineWidth)
	s.cv.Stroke()
}

func (s *CanvasSurface) useFont(size float64) bool {
	if !s.ok() || size <= 0 || s.fontErr != nil {
		return false
	}
	if s.font == nil {
		f, err := s.cv.LoadFont(gomono.TTF)
		if err != nil {
			s.fontErr = fmt.Errorf("failed to load Go Mono font: %w", err)
			log.Printf("[Render] %v", s.fontErr)
			return false
		}
		s.font = f
	}
	s.cv.SetFont(s.font, size)
	return true
}

func (s *CanvasSurface) MeasureText(str string, size float64) float64 {
	if !s.useFont(size) {
		return float64(len(str)) * size * 0.6
	}
	return s.cv.MeasureText(str).Width
}

func (s *CanvasSurface) FillText(str string, x, y, size float64) {
	if str == "" || !s.useFont(size) {
		return
	}
	st := s.states.Current
	s.cv.SetFillStyle(cssColor(st.FillColor, st.GlobalAlpha))
	s.cv.SetTextAlign(canvas.Center)
	s.cv.SetTextBaseline(canvas.Middle)
	s.cv.FillText(str, x, y)
}

// cssColor 把颜色与全局透明度合成为 canvas 样式字符串
func cssColor(c color.Color, alpha float64) string {
	n := surface.ScaleAlpha(c, alpha)
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", n.R, n.G, n.B, float64(n.A)/255)
}
