package drawing

import (
	"math"
	"time"
)

// fakeStroke 记录所有样式写入的测试路径
type fakeStroke struct {
	length float64

	dash, gap     float64
	dashWrites    int
	offset        float64
	offsetWrites  int
	display       bool
	displayWrites int
}

func newFakeStroke(length float64) *fakeStroke {
	return &fakeStroke{length: length, display: true}
}

func (f *fakeStroke) TotalLength() float64 { return f.length }

func (f *fakeStroke) SetDashArray(dash, gap float64) {
	f.dash, f.gap = dash, gap
	f.dashWrites++
}

func (f *fakeStroke) SetDashOffset(offset float64) {
	f.offset = offset
	f.offsetWrites++
}

func (f *fakeStroke) SetDisplay(visible bool) {
	f.display = visible
	f.displayWrites++
}

func (f *fakeStroke) writes() int {
	return f.dashWrites + f.offsetWrites + f.displayWrites
}

func newFakeStrokes(lengths ...float64) ([]*fakeStroke, []Stroke) {
	fakes := make([]*fakeStroke, len(lengths))
	strokes := make([]Stroke, len(lengths))
	for i, l := range lengths {
		fakes[i] = newFakeStroke(l)
		strokes[i] = fakes[i]
	}
	return fakes, strokes
}

// fakeFrames 手动触发的帧调度器
type fakeFrames struct {
	pending []func(time.Duration)
}

func (f *fakeFrames) RequestFrame(cb func(time.Duration)) {
	f.pending = append(f.pending, cb)
}

// fire 触发当前排队的回调，回调内新请求的帧留到下一次
func (f *fakeFrames) fire(ts time.Duration) int {
	cbs := f.pending
	f.pending = nil
	for _, cb := range cbs {
		cb(ts)
	}
	return len(cbs)
}

type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

// progressRecorder 记录消费者收到的进度
type progressRecorder struct {
	values []float64
}

func (r *progressRecorder) record(p float64) {
	r.values = append(r.values, p)
}

func (r *progressRecorder) last() float64 {
	if len(r.values) == 0 {
		return math.NaN()
	}
	return r.values[len(r.values)-1]
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
