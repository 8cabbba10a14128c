package drawing

import "testing"

// TestNewPathState_DashArray 测试创建时设置 (length, length) 虚线模式
func TestNewPathState_DashArray(t *testing.T) {
	stroke := newFakeStroke(42)
	ps := NewPathState(stroke)

	if ps.Length() != 42 {
		t.Errorf("Length: got %v, want 42", ps.Length())
	}
	if stroke.dash != 42 || stroke.gap != 42 {
		t.Errorf("DashArray: got (%v, %v), want (42, 42)", stroke.dash, stroke.gap)
	}
	if stroke.dashWrites != 1 {
		t.Errorf("DashArray writes: got %d, want 1", stroke.dashWrites)
	}
	if ps.Offset() != 0 || !ps.Visible() {
		t.Errorf("Initial state: offset=%v visible=%v, want 0/true", ps.Offset(), ps.Visible())
	}
}

// TestPathState_SetOffset 测试偏移写入与显示切换
func TestPathState_SetOffset(t *testing.T) {
	stroke := newFakeStroke(10)
	ps := NewPathState(stroke)

	ps.SetOffset(0)
	if stroke.offsetWrites != 0 {
		t.Errorf("Unchanged offset should not write, got %d writes", stroke.offsetWrites)
	}

	ps.SetOffset(10)
	if ps.Visible() || stroke.display {
		t.Error("Offset == length should hide the path")
	}
	if stroke.offset != 10 || stroke.displayWrites != 1 {
		t.Errorf("Got offset=%v displayWrites=%d, want 10/1", stroke.offset, stroke.displayWrites)
	}

	ps.SetOffset(4)
	if !ps.Visible() || !stroke.display {
		t.Error("Offset < length should show the path")
	}
	if ps.Revealed() != 6 {
		t.Errorf("Revealed: got %v, want 6", ps.Revealed())
	}

	// 保持可见时不再写入 display
	ps.SetOffset(2)
	if stroke.displayWrites != 2 {
		t.Errorf("displayWrites: got %d, want 2", stroke.displayWrites)
	}
}

// TestSequencer_SetProgress 测试典型进度下的偏移分配
func TestSequencer_SetProgress(t *testing.T) {
	tests := []struct {
		name     string
		lengths  []float64
		progress float64
		offsets  []float64
		visible  []bool
	}{
		{
			name:     "half with tie at boundary",
			lengths:  []float64{10, 20, 30},
			progress: 0.5,
			offsets:  []float64{0, 0, 30},
			visible:  []bool{true, true, false},
		},
		{
			name:     "partial second path",
			lengths:  []float64{10, 20, 30},
			progress: 0.25,
			offsets:  []float64{0, 15, 30},
			visible:  []bool{true, true, false},
		},
		{
			name:     "zero hides all",
			lengths:  []float64{10, 20, 30},
			progress: 0,
			offsets:  []float64{10, 20, 30},
			visible:  []bool{false, false, false},
		},
		{
			name:     "one reveals all",
			lengths:  []float64{10, 20, 30},
			progress: 1,
			offsets:  []float64{0, 0, 0},
			visible:  []bool{true, true, true},
		},
		{
			name:     "beyond one saturates",
			lengths:  []float64{5, 5},
			progress: 1.5,
			offsets:  []float64{0, 0},
			visible:  []bool{true, true},
		},
		{
			name:     "negative hides all",
			lengths:  []float64{5, 5},
			progress: -0.5,
			offsets:  []float64{5, 5},
			visible:  []bool{false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakes, strokes := newFakeStrokes(tt.lengths...)
			seq := NewSequencer(strokes)
			seq.SetProgress(tt.progress)

			for i, ps := range seq.Paths() {
				if !almostEqual(ps.Offset(), tt.offsets[i]) {
					t.Errorf("path %d offset: got %v, want %v", i, ps.Offset(), tt.offsets[i])
				}
				if ps.Visible() != tt.visible[i] {
					t.Errorf("path %d visible: got %v, want %v", i, ps.Visible(), tt.visible[i])
				}
				if fakes[i].display != tt.visible[i] {
					t.Errorf("path %d display style: got %v, want %v", i, fakes[i].display, tt.visible[i])
				}
			}
		})
	}
}

// TestSequencer_RevealedSum 测试已显示长度之和等于 总长度×进度
func TestSequencer_RevealedSum(t *testing.T) {
	lengthSets := [][]float64{
		{10, 20, 30},
		{1},
		{3.5, 0.25, 12, 7.75, 100},
		{50, 50, 50, 50},
	}

	for _, lengths := range lengthSets {
		_, strokes := newFakeStrokes(lengths...)
		seq := NewSequencer(strokes)

		var total float64
		for _, l := range lengths {
			total += l
		}
		if !almostEqual(seq.Length(), total) {
			t.Fatalf("Length: got %v, want %v", seq.Length(), total)
		}

		for step := 0; step <= 100; step++ {
			p := float64(step) / 100
			seq.SetProgress(p)

			var revealed float64
			for _, ps := range seq.Paths() {
				revealed += ps.Revealed()
			}
			if !almostEqual(revealed, total*p) {
				t.Errorf("lengths=%v p=%v: revealed %v, want %v", lengths, p, revealed, total*p)
			}
		}
	}
}

// TestSequencer_Monotonic 测试进度增加时每条路径的显示长度不减少
func TestSequencer_Monotonic(t *testing.T) {
	_, strokes := newFakeStrokes(7, 13, 2, 40)
	seq := NewSequencer(strokes)

	prev := make([]float64, len(strokes))
	seq.SetProgress(0)
	for i, ps := range seq.Paths() {
		prev[i] = ps.Revealed()
	}

	for step := 1; step <= 200; step++ {
		seq.SetProgress(float64(step) / 200)
		for i, ps := range seq.Paths() {
			if ps.Revealed() < prev[i]-1e-9 {
				t.Fatalf("step %d path %d: revealed decreased from %v to %v", step, i, prev[i], ps.Revealed())
			}
			prev[i] = ps.Revealed()
		}
	}
}

// TestSequencer_Idempotent 测试重复设置相同进度不产生额外样式写入
func TestSequencer_Idempotent(t *testing.T) {
	fakes, strokes := newFakeStrokes(10, 20, 30)
	seq := NewSequencer(strokes)

	seq.SetProgress(0.37)
	before := make([]int, len(fakes))
	for i, f := range fakes {
		before[i] = f.writes()
	}

	seq.SetProgress(0.37)
	for i, f := range fakes {
		if f.writes() != before[i] {
			t.Errorf("path %d: second SetProgress wrote %d styles", i, f.writes()-before[i])
		}
	}
}

// TestSequencer_Empty 测试没有路径时的降级行为
func TestSequencer_Empty(t *testing.T) {
	seq := NewSequencer(nil)
	if seq.Length() != 0 {
		t.Errorf("Length: got %v, want 0", seq.Length())
	}
	seq.SetProgress(0.5)
	seq.SetProgress(2)
	if len(seq.Paths()) != 0 {
		t.Errorf("Paths: got %d, want 0", len(seq.Paths()))
	}
}

// TestSequencer_ZeroLengthPath 测试零长度路径始终不可见
func TestSequencer_ZeroLengthPath(t *testing.T) {
	fakes, strokes := newFakeStrokes(0, 10)
	seq := NewSequencer(strokes)

	zero := seq.Paths()[0]
	if zero.Visible() || fakes[0].display {
		t.Errorf("Zero-length path at creation: visible=%v display=%v, want false", zero.Visible(), fakes[0].display)
	}
	if fakes[1].displayWrites != 0 {
		t.Errorf("Non-empty path display writes at creation: got %d, want 0", fakes[1].displayWrites)
	}

	for _, p := range []float64{0, 0.5, 1, 2} {
		seq.SetProgress(p)
		if zero.Visible() || fakes[0].display {
			t.Errorf("progress %v: zero-length path should stay hidden", p)
		}
		if zero.Offset() != 0 {
			t.Errorf("progress %v: zero-length offset got %v, want 0", p, zero.Offset())
		}
	}
	if fakes[0].displayWrites != 1 {
		t.Errorf("Zero-length display writes: got %d, want 1", fakes[0].displayWrites)
	}
}
