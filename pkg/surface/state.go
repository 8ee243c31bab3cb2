package surface

import "image/color"

// State 绘图上下文的可保存状态
type State struct {
	Matrix      Affine
	FillColor   color.Color
	StrokeColor color.Color
	LineWidth   float64
	GlobalAlpha float64
}

// DefaultState 返回 canvas 默认状态：单位矩阵、黑色、线宽 1、不透明
func DefaultState() State {
	return State{
		Matrix:      Identity(),
		FillColor:   color.Black,
		StrokeColor: color.Black,
		LineWidth:   1,
		GlobalAlpha: 1,
	}
}

// StateStack 实现 save/restore 语义
//
// 多余的 Restore 调用被忽略，与 canvas 行为一致。
type StateStack struct {
	Current State
	saved   []State
}

// NewStateStack 创建以默认状态为起点的状态栈
func NewStateStack() *StateStack {
	return &StateStack{Current: DefaultState()}
}

// Save 压栈
func (s *StateStack) Save() {
	s.saved = append(s.saved, s.Current)
}

// Restore 出栈
func (s *StateStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.Current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// Depth 返回已保存的状态数
func (s *StateStack) Depth() int {
	return len(s.saved)
}

// Reset 清空保存的状态并恢复默认
func (s *StateStack) Reset() {
	s.saved = s.saved[:0]
	s.Current = DefaultState()
}

// SetGlobalAlpha 设置全局透明度，超出 [0,1] 的值被忽略（canvas 语义）
func (s *StateStack) SetGlobalAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 {
		return
	}
	s.Current.GlobalAlpha = alpha
}

// ScaleAlpha 把颜色按全局透明度转换为非预乘 NRGBA
func ScaleAlpha(c color.Color, alpha float64) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*clamp01(alpha) + 0.5)
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
