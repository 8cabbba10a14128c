package game

import (
	"testing"
	"time"

	"github.com/decker502/svgdraw/pkg/drawing"
)

var (
	_ drawing.FrameRequester = (*FrameLoop)(nil)
	_ drawing.Clock          = (*FrameLoop)(nil)
)

// TestFrameLoop_Flush 测试回调只触发一次，且回调中请求的帧留到下一次
func TestFrameLoop_Flush(t *testing.T) {
	clock := NewSteppedClock(10)
	loop := NewFrameLoop(clock.Now)

	var got []time.Duration
	var cb func(time.Duration)
	cb = func(ts time.Duration) {
		got = append(got, ts)
		if len(got) < 3 {
			loop.RequestFrame(cb)
		}
	}
	loop.RequestFrame(cb)

	if n := loop.Flush(); n != 1 {
		t.Errorf("First Flush: got %d callbacks, want 1", n)
	}
	if loop.Pending() != 1 {
		t.Errorf("Pending after first Flush: got %d, want 1", loop.Pending())
	}

	clock.Advance()
	loop.Flush()
	clock.Advance()
	loop.Flush()
	if n := loop.Flush(); n != 0 {
		t.Errorf("Flush with empty queue: got %d, want 0", n)
	}

	want := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}
	if len(got) != len(want) {
		t.Fatalf("Timestamps: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Timestamp %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

// TestSteppedClock 测试步进时钟
func TestSteppedClock(t *testing.T) {
	clock := NewSteppedClock(0)
	if clock.Step() != time.Second/60 {
		t.Errorf("Default step: got %v, want %v", clock.Step(), time.Second/60)
	}

	clock = NewSteppedClock(25)
	clock.Advance()
	clock.Advance()
	if clock.Now() != 80*time.Millisecond {
		t.Errorf("Now: got %v, want 80ms", clock.Now())
	}
}

// TestFrameLoop_DrivesDrawing 测试帧循环驱动完整动画
func TestFrameLoop_DrivesDrawing(t *testing.T) {
	clock := NewSteppedClock(50)
	loop := NewFrameLoop(clock.Now)

	opts := drawing.DefaultOptions()
	opts.Duration = 200 * time.Millisecond
	d, err := drawing.New(opts, loop, loop)
	if err != nil {
		t.Fatalf("drawing.New error: %v", err)
	}
	if err := d.Load(nil); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if err := d.Play(); err != nil {
		t.Fatalf("Play error: %v", err)
	}

	frames := 0
	for d.Playing() && frames < 100 {
		clock.Advance()
		loop.Flush()
		frames++
	}
	if d.Playing() || d.Progress() != 1 {
		t.Errorf("Animation did not complete: playing=%v progress=%v", d.Playing(), d.Progress())
	}
	// 200ms / 20ms = 10 帧
	if frames != 10 {
		t.Errorf("Frames to complete: got %d, want 10", frames)
	}
}

// TestNewRealtimeFrameLoop 测试真实时钟单调递增
func TestNewRealtimeFrameLoop(t *testing.T) {
	loop := NewRealtimeFrameLoop()
	a := loop.Now()
	b := loop.Now()
	if a < 0 || b < a {
		t.Errorf("Clock not monotonic: %v then %v", a, b)
	}
}
