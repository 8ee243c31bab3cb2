package app

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// pointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回第一个活动触摸点，没有触摸时返回鼠标位置
func pointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}
