package surface

import "math"

// Point 设备空间中的点
type Point struct {
	X, Y float64
}

// Subpath 一段折线化后的子路径
type Subpath struct {
	Points []Point
	Closed bool
}

// Bounds 返回子路径的包围盒；空子路径返回 ok=false
func (sp Subpath) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(sp.Points) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = sp.Points[0].X, sp.Points[0].Y
	maxX, maxY = minX, minY
	for _, p := range sp.Points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY, true
}

const (
	curveSegments  = 12
	arcMinSegments = 4
	arcMaxSegments = 128
	// 每段圆弧在设备空间中的目标长度（像素）
	arcSegmentLength = 3.0
)

// PathBuilder 把 canvas 风格的路径命令折线化到设备空间
//
// 曲线在设备空间中展开：仿射变换保持贝塞尔曲线不变，
// 圆弧先在用户空间采样再逐点变换，因此非等比缩放下也保持正确形状。
type PathBuilder struct {
	subpaths []Subpath
	current  Point
	hasPoint bool
}

// Reset 清空所有子路径（对应 beginPath）
func (pb *PathBuilder) Reset() {
	pb.subpaths = pb.subpaths[:0]
	pb.hasPoint = false
}

// Subpaths 返回当前所有非空子路径
func (pb *PathBuilder) Subpaths() []Subpath {
	out := make([]Subpath, 0, len(pb.subpaths))
	for _, sp := range pb.subpaths {
		if len(sp.Points) > 0 {
			out = append(out, sp)
		}
	}
	return out
}

// MoveTo 开始新的子路径
func (pb *PathBuilder) MoveTo(m Affine, x, y float64) {
	dx, dy := m.Apply(x, y)
	pb.moveDevice(dx, dy)
}

func (pb *PathBuilder) moveDevice(x, y float64) {
	pb.subpaths = append(pb.subpaths, Subpath{Points: []Point{{x, y}}})
	pb.current = Point{x, y}
	pb.hasPoint = true
}

func (pb *PathBuilder) lineDevice(x, y float64) {
	if !pb.hasPoint {
		pb.moveDevice(x, y)
		return
	}
	last := &pb.subpaths[len(pb.subpaths)-1]
	if last.Closed {
		// closePath 之后继续绘制：从闭合点开始新子路径
		pb.moveDevice(pb.current.X, pb.current.Y)
		last = &pb.subpaths[len(pb.subpaths)-1]
	}
	last.Points = append(last.Points, Point{x, y})
	pb.current = Point{x, y}
}

// LineTo 追加直线段；没有当前点时等价于 MoveTo
func (pb *PathBuilder) LineTo(m Affine, x, y float64) {
	dx, dy := m.Apply(x, y)
	pb.lineDevice(dx, dy)
}

// QuadraticCurveTo 追加二次贝塞尔曲线
func (pb *PathBuilder) QuadraticCurveTo(m Affine, cpx, cpy, x, y float64) {
	if !pb.hasPoint {
		pb.MoveTo(m, cpx, cpy)
	}
	p0 := pb.current
	c1x, c1y := m.Apply(cpx, cpy)
	p2x, p2y := m.Apply(x, y)
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		u := 1 - t
		px := u*u*p0.X + 2*u*t*c1x + t*t*p2x
		py := u*u*p0.Y + 2*u*t*c1y + t*t*p2y
		pb.lineDevice(px, py)
	}
}

// BezierCurveTo 追加三次贝塞尔曲线
func (pb *PathBuilder) BezierCurveTo(m Affine, cp1x, cp1y, cp2x, cp2y, x, y float64) {
	if !pb.hasPoint {
		pb.MoveTo(m, cp1x, cp1y)
	}
	p0 := pb.current
	c1x, c1y := m.Apply(cp1x, cp1y)
	c2x, c2y := m.Apply(cp2x, cp2y)
	p3x, p3y := m.Apply(x, y)
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		u := 1 - t
		px := u*u*u*p0.X + 3*u*u*t*c1x + 3*u*t*t*c2x + t*t*t*p3x
		py := u*u*u*p0.Y + 3*u*u*t*c1y + 3*u*t*t*c2y + t*t*t*p3y
		pb.lineDevice(px, py)
	}
}

// Arc 追加圆弧（canvas 语义）
//
// 已有当前点时，先用直线连接到圆弧起点。
// 顺时针扫过角度 >= 2π 时画整圆。
func (pb *PathBuilder) Arc(m Affine, cx, cy, r, start, end float64, anticlockwise bool) {
	if r < 0 {
		return
	}
	sweep := ArcSweep(start, end, anticlockwise)

	n := int(math.Ceil(math.Abs(sweep) * r * m.ScaleFactor() / arcSegmentLength))
	if n < arcMinSegments {
		n = arcMinSegments
	}
	if n > arcMaxSegments {
		n = arcMaxSegments
	}

	sx, sy := m.Apply(cx+r*math.Cos(start), cy+r*math.Sin(start))
	if pb.hasPoint && !pb.subpaths[len(pb.subpaths)-1].Closed {
		pb.lineDevice(sx, sy)
	} else {
		pb.moveDevice(sx, sy)
	}
	for i := 1; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		px, py := m.Apply(cx+r*math.Cos(a), cy+r*math.Sin(a))
		pb.lineDevice(px, py)
	}
}

// ClosePath 闭合当前子路径
func (pb *PathBuilder) ClosePath() {
	if !pb.hasPoint || len(pb.subpaths) == 0 {
		return
	}
	last := &pb.subpaths[len(pb.subpaths)-1]
	if len(last.Points) == 0 || last.Closed {
		return
	}
	last.Closed = true
	pb.current = last.Points[0]
}

// ArcSweep 计算 canvas 圆弧实际扫过的有符号角度
func ArcSweep(start, end float64, anticlockwise bool) float64 {
	const tau = 2 * math.Pi
	if !anticlockwise {
		d := end - start
		if d >= tau {
			return tau
		}
		d = math.Mod(d, tau)
		if d < 0 {
			d += tau
		}
		return d
	}
	d := start - end
	if d >= tau {
		return -tau
	}
	d = math.Mod(d, tau)
	if d < 0 {
		d += tau
	}
	return -d
}
