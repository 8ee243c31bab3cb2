package components

// PositionComponent 存储实体在表面坐标系中的位置（像素，原点在左上角）
type PositionComponent struct {
	X float64
	Y float64
}
