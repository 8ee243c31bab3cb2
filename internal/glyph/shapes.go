package glyph

import (
	"image/color"
	"math"

	"github.com/decker502/driftfield/pkg/surface"
)

// ellipse 追加椭圆子路径
//
// 通过临时缩放变换把单位圆压成椭圆；路径在调用时已映射到设备空间，
// 因此 Restore 之后路径保持不变。
func ellipse(s surface.Surface, cx, cy, rx, ry float64) {
	s.Save()
	s.Translate(cx, cy)
	s.Scale(rx, ry)
	s.MoveTo(1, 0)
	s.Arc(0, 0, 1, 0, 2*math.Pi, false)
	s.ClosePath()
	s.Restore()
}

// polygon 追加正多边形子路径，start 为第一个顶点的角度
func polygon(s surface.Surface, cx, cy, r float64, n int, start float64) {
	for i := 0; i < n; i++ {
		a := start + float64(i)*2*math.Pi/float64(n)
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	s.ClosePath()
}

// vertices 返回正多边形的顶点
func vertices(cx, cy, r float64, n int, start float64) [][2]float64 {
	out := make([][2]float64, n)
	for i := range out {
		a := start + float64(i)*2*math.Pi/float64(n)
		out[i] = [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return out
}

func fill(s surface.Surface, c color.Color) {
	s.SetFillColor(c)
	s.Fill()
}

func stroke(s surface.Surface, c color.Color, width float64) {
	s.SetStrokeColor(c)
	s.SetLineWidth(width)
	s.Stroke()
}

func line(s surface.Surface, x0, y0, x1, y1 float64) {
	s.MoveTo(x0, y0)
	s.LineTo(x1, y1)
}
