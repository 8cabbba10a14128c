// Package utils 提供输入与平台相关的工具函数
package utils

import "github.com/hajimehoshi/ebiten/v2"

// TapSlop 按下到释放移动距离不超过此值（像素）视为点击
const TapSlop = 8

// PointerEvent 指针手势
type PointerEvent int

const (
	// PointerNone 无事件
	PointerNone PointerEvent = iota
	// PointerTap 点击（按下后原地释放）
	PointerTap
	// PointerDrag 拖动中，X 为当前位置
	PointerDrag
	// PointerDragEnd 拖动结束
	PointerDragEnd
)

// PointerTracker 把每帧的指针状态归纳为点击或拖动
// 触摸与鼠标统一处理，只跟踪第一个触点
type PointerTracker struct {
	down     bool
	dragging bool
	startX   int
	startY   int
}

// Step 输入本帧指针是否按下及位置，返回识别出的手势
// 松开时 x, y 被忽略
func (p *PointerTracker) Step(pressed bool, x, y int) PointerEvent {
	switch {
	case pressed && !p.down:
		p.down = true
		p.dragging = false
		p.startX, p.startY = x, y
		return PointerNone

	case pressed:
		if !p.dragging && (abs(x-p.startX) > TapSlop || abs(y-p.startY) > TapSlop) {
			p.dragging = true
		}
		if p.dragging {
			return PointerDrag
		}
		return PointerNone

	case p.down:
		p.down = false
		if p.dragging {
			p.dragging = false
			return PointerDragEnd
		}
		return PointerTap
	}
	return PointerNone
}

// PollPointer 读取本帧指针状态，优先检测触摸
func PollPointer() (pressed bool, x, y int) {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y = ebiten.TouchPosition(ids[0])
		return true, x, y
	}
	x, y = ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y
}

// IsTouchDevice 本帧是否有触点按下
func IsTouchDevice() bool {
	return len(ebiten.AppendTouchIDs(nil)) > 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
