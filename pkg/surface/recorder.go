package surface

import (
	"image/color"
	"math"
)

// OpKind 记录的绘制操作类型
type OpKind int

const (
	OpClear OpKind = iota
	OpFill
	OpStroke
	OpText
)

// Op 一次被记录的绘制操作
type Op struct {
	Kind  OpKind
	Color color.Color
	// Alpha 为调用时的全局透明度
	Alpha float64
	// X, Y 为设备空间坐标：填充/描边取路径包围盒中心，文本取锚点
	X, Y     float64
	Text     string
	Subpaths int
}

// Recorder 记录绘制操作的内存 Surface，用于测试与统计
//
// 设置 Unavailable 可模拟 2D 上下文获取失败。
type Recorder struct {
	Unavailable bool
	// CharWidth 用于 MeasureText 的每字符宽度系数（相对字号）
	CharWidth float64

	Ops []Op

	width, height float64
	states        *StateStack
	path          PathBuilder
}

// NewRecorder 创建指定尺寸的记录器
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{
		CharWidth: 0.6,
		width:     width,
		height:    height,
		states:    NewStateStack(),
	}
}

// Context2D 实现 Canvas
func (r *Recorder) Context2D() (Surface, bool) {
	if r == nil || r.Unavailable {
		return nil, false
	}
	return r, true
}

// Reset 清空已记录操作
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count 返回某类操作的数量
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// MaxAlpha 返回所有填充/描边/文本操作中最大的全局透明度
func (r *Recorder) MaxAlpha() float64 {
	maxAlpha := 0.0
	for _, op := range r.Ops {
		if op.Kind != OpClear {
			maxAlpha = math.Max(maxAlpha, op.Alpha)
		}
	}
	return maxAlpha
}

// SaveDepth 返回当前未配对的 Save 数量
func (r *Recorder) SaveDepth() int {
	return r.states.Depth()
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }

func (r *Recorder) Resize(width, height float64) {
	r.width, r.height = width, height
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	if !Valid(r.width, r.height) {
		return
	}
	r.Ops = append(r.Ops, Op{Kind: OpClear, X: x + w/2, Y: y + h/2})
}

func (r *Recorder) Save()    { r.states.Save() }
func (r *Recorder) Restore() { r.states.Restore() }

func (r *Recorder) Translate(x, y float64) {
	r.states.Current.Matrix = r.states.Current.Matrix.Translate(x, y)
}

func (r *Recorder) Rotate(angle float64) {
	r.states.Current.Matrix = r.states.Current.Matrix.Rotate(angle)
}

func (r *Recorder) Scale(x, y float64) {
	r.states.Current.Matrix = r.states.Current.Matrix.Scale(x, y)
}

func (r *Recorder) BeginPath() { r.path.Reset() }

func (r *Recorder) MoveTo(x, y float64) { r.path.MoveTo(r.states.Current.Matrix, x, y) }

func (r *Recorder) LineTo(x, y float64) { r.path.LineTo(r.states.Current.Matrix, x, y) }

func (r *Recorder) Arc(x, y, radius, start, end float64, anticlockwise bool) {
	r.path.Arc(r.states.Current.Matrix, x, y, radius, start, end, anticlockwise)
}

func (r *Recorder) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	r.path.BezierCurveTo(r.states.Current.Matrix, cp1x, cp1y, cp2x, cp2y, x, y)
}

func (r *Recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.path.QuadraticCurveTo(r.states.Current.Matrix, cpx, cpy, x, y)
}

func (r *Recorder) ClosePath() { r.path.ClosePath() }

func (r *Recorder) SetFillColor(c color.Color)   { r.states.Current.FillColor = c }
func (r *Recorder) SetStrokeColor(c color.Color) { r.states.Current.StrokeColor = c }
func (r *Recorder) SetLineWidth(w float64) {
	if w > 0 {
		r.states.Current.LineWidth = w
	}
}
func (r *Recorder) SetGlobalAlpha(alpha float64) { r.states.SetGlobalAlpha(alpha) }

func (r *Recorder) Fill() {
	r.recordPath(OpFill, r.states.Current.FillColor)
}

func (r *Recorder) Stroke() {
	r.recordPath(OpStroke, r.states.Current.StrokeColor)
}

func (r *Recorder) recordPath(kind OpKind, c color.Color) {
	if !Valid(r.width, r.height) {
		return
	}
	subpaths := r.path.Subpaths()
	if len(subpaths) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sp := range subpaths {
		x0, y0, x1, y1, ok := sp.Bounds()
		if !ok {
			continue
		}
		minX, minY = math.Min(minX, x0), math.Min(minY, y0)
		maxX, maxY = math.Max(maxX, x1), math.Max(maxY, y1)
	}
	r.Ops = append(r.Ops, Op{
		Kind:     kind,
		Color:    c,
		Alpha:    r.states.Current.GlobalAlpha,
		X:        (minX + maxX) / 2,
		Y:        (minY + maxY) / 2,
		Subpaths: len(subpaths),
	})
}

func (r *Recorder) MeasureText(text string, size float64) float64 {
	return float64(len([]rune(text))) * size * r.CharWidth
}

func (r *Recorder) FillText(text string, x, y, size float64) {
	if !Valid(r.width, r.height) {
		return
	}
	dx, dy := r.states.Current.Matrix.Apply(x, y)
	r.Ops = append(r.Ops, Op{
		Kind:  OpText,
		Color: r.states.Current.FillColor,
		Alpha: r.states.Current.GlobalAlpha,
		X:     dx,
		Y:     dy,
		Text:  text,
	})
}
