package utils

import "testing"

// TestPointerTracker 测试点击与拖动识别
func TestPointerTracker(t *testing.T) {
	type step struct {
		pressed bool
		x, y    int
		want    PointerEvent
	}
	tests := []struct {
		name  string
		steps []step
	}{
		{
			name: "tap",
			steps: []step{
				{true, 100, 100, PointerNone},
				{true, 103, 98, PointerNone},
				{false, 0, 0, PointerTap},
				{false, 0, 0, PointerNone},
			},
		},
		{
			name: "drag",
			steps: []step{
				{true, 100, 100, PointerNone},
				{true, 120, 100, PointerDrag},
				{true, 101, 100, PointerDrag}, // 回到起点附近仍是拖动
				{false, 0, 0, PointerDragEnd},
			},
		},
		{
			name: "tap after drag",
			steps: []step{
				{true, 10, 20, PointerNone},
				{true, 50, 20, PointerDrag},
				{false, 0, 0, PointerDragEnd},
				{true, 200, 200, PointerNone}, // 新的按下从零开始计算位移
				{true, 204, 196, PointerNone},
				{false, 0, 0, PointerTap},
			},
		},
		{
			name: "slop is inclusive",
			steps: []step{
				{true, 0, 0, PointerNone},
				{true, TapSlop, -TapSlop, PointerNone},
				{true, TapSlop + 1, 0, PointerDrag},
				{false, 0, 0, PointerDragEnd},
			},
		},
		{
			name: "idle",
			steps: []step{
				{false, 10, 10, PointerNone},
				{false, 20, 20, PointerNone},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PointerTracker
			for i, s := range tt.steps {
				if got := p.Step(s.pressed, s.x, s.y); got != s.want {
					t.Errorf("step %d: got %v, want %v", i, got, s.want)
				}
			}
		})
	}
}
