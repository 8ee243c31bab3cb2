package components

// SlotState 槽位状态
//
// 状态流转: PENDING (延迟未到) → ACTIVE (更新并绘制) → FADING (透明度递减，仍绘制)
// → 回收 → PENDING。没有终止状态。
type SlotState int

const (
	SlotPending SlotState = iota
	SlotActive
	SlotFading
)

// String 返回状态名称
func (s SlotState) String() string {
	switch s {
	case SlotActive:
		return "ACTIVE"
	case SlotFading:
		return "FADING"
	default:
		return "PENDING"
	}
}

// FloatComponent 漂浮元素的运动与外观参数
//
// 纯数据组件，由 MotionSystem 更新、RenderSystem 读取。
type FloatComponent struct {
	// Depth 深度因子，决定尺寸（正比）、速度（反比）和初始透明度
	Depth float64
	// Speed 基础速度，有效速度 = Speed / Depth
	Speed float64
	// Phase 水平摆动的初相位（弧度）
	Phase float64
	// Alpha 当前透明度 [0, 1]
	Alpha float64
	// Delay 入场阈值（引擎启动后的毫秒数），未到达前不更新不绘制
	Delay float64

	// DriftX/DriftY 指针排斥产生的漂移速度（像素/帧）
	DriftX float64
	DriftY float64

	State SlotState
	// Recycles 该槽位被回收的次数
	Recycles int
}
