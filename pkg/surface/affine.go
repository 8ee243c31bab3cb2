package surface

import "math"

// Affine 2D 仿射变换矩阵（canvas 约定）
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
//
// x' = A*x + C*y + E, y' = B*x + D*y + F
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity 返回单位矩阵
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Translate 右乘平移（后续绘制先平移再应用原变换）
func (m Affine) Translate(tx, ty float64) Affine {
	m.E += m.A*tx + m.C*ty
	m.F += m.B*tx + m.D*ty
	return m
}

// Scale 右乘缩放
func (m Affine) Scale(sx, sy float64) Affine {
	m.A *= sx
	m.B *= sx
	m.C *= sy
	m.D *= sy
	return m
}

// Rotate 右乘旋转（弧度，顺时针为正，与 canvas 一致）
func (m Affine) Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	a, b, c, d := m.A, m.B, m.C, m.D
	m.A = a*cos + c*sin
	m.B = b*cos + d*sin
	m.C = c*cos - a*sin
	m.D = d*cos - b*sin
	return m
}

// Apply 把用户空间点映射到设备空间
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// ScaleFactor 返回变换的平均线性缩放系数，用于线宽、圆弧半径和字号
func (m Affine) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// Angle 返回变换包含的旋转角（弧度）
func (m Affine) Angle() float64 {
	return math.Atan2(m.B, m.A)
}
