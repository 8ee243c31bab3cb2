package components

import "github.com/decker502/driftfield/pkg/config"

// ContentKind 槽位内容类型
type ContentKind int

const (
	// ContentIcon 程序化矢量图标
	ContentIcon ContentKind = iota
	// ContentLabel 圆角标签芯片 + 文本
	ContentLabel
)

// String 返回内容类型名称
func (k ContentKind) String() string {
	if k == ContentLabel {
		return "label"
	}
	return "icon"
}

// ContentComponent 槽位当前显示的内容
//
// 每个槽位同一时刻只有一种内容；内容只在回收时更换。
type ContentComponent struct {
	Kind ContentKind
	// IconID 图标标识符（Kind == ContentIcon 时有效）
	IconID string
	// Label 标签内容（Kind == ContentLabel 时有效）
	Label config.Label
	// BaseSize 名义尺寸（像素），渲染尺寸 = BaseSize * Depth
	BaseSize float64
	// Rotation 标签芯片的固定倾斜角（弧度）
	Rotation float64
}
