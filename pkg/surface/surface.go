// Package surface 定义粒子场引擎与绘图目标之间的边界。
//
// Surface 是一个即时模式 2D 绘图上下文，语义与浏览器 CanvasRenderingContext2D
// 的子集一致：变换栈（save/restore/translate/rotate/scale）、路径构造
// （move/line/arc/bezier/quadratic）、填充/描边、全局透明度以及文本测量与绘制。
//
// 具体实现位于 pkg/render（Ebitengine 屏幕、软件光栅画布、终端），
// 测试使用本包中的 Recorder。
package surface

import "image/color"

// Surface 即时模式 2D 绘图上下文
//
// 所有坐标均为用户空间坐标，经当前变换矩阵映射到设备空间。
// 尺寸为零或负数时，实现必须把绘制调用当作空操作处理，不能 panic。
type Surface interface {
	// Size 返回绘图表面的逻辑尺寸（像素）
	Size() (width, height float64)
	// Resize 调整绘图表面尺寸，不影响调用方持有的任何状态
	Resize(width, height float64)

	ClearRect(x, y, w, h float64)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(x, y float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool)
	BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
	ClosePath()

	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	SetLineWidth(width float64)
	SetGlobalAlpha(alpha float64)
	Fill()
	Stroke()

	// MeasureText 返回以 size 像素字号渲染 text 时的宽度
	MeasureText(text string, size float64) float64
	// FillText 以 (x, y) 为中心绘制文本（水平居中、垂直居中）
	FillText(text string, x, y, size float64)
}

// Canvas 可获取 2D 上下文的绘图宿主
//
// 对应浏览器中 canvas.getContext('2d')：获取失败时返回 ok=false，
// 调用方应静默放弃启动。
type Canvas interface {
	Context2D() (Surface, bool)
}

// Valid 判断尺寸是否可绘制
func Valid(width, height float64) bool {
	return width > 0 && height > 0
}
