package game

import "time"

// FrameLoop 帧回调队列
//
// 实现 drawing.FrameRequester 与 drawing.Clock：回调在下一次 Flush 时以当前时钟时间触发一次。
// 桌面端在 ebiten 的每个 tick 调用 Flush；离线渲染使用 SteppedClock 逐帧推进。
// 只在单个逻辑线程上使用，不加锁。
type FrameLoop struct {
	now     func() time.Duration
	pending []func(ts time.Duration)
}

// NewFrameLoop 使用给定时钟创建帧循环
func NewFrameLoop(now func() time.Duration) *FrameLoop {
	return &FrameLoop{now: now}
}

// NewRealtimeFrameLoop 使用真实单调时钟，时间从创建时刻起算
func NewRealtimeFrameLoop() *FrameLoop {
	start := time.Now()
	return NewFrameLoop(func() time.Duration {
		return time.Since(start)
	})
}

// RequestFrame 排队一个一次性帧回调
func (l *FrameLoop) RequestFrame(cb func(ts time.Duration)) {
	l.pending = append(l.pending, cb)
}

// Now 返回当前时钟时间
func (l *FrameLoop) Now() time.Duration {
	return l.now()
}

// Pending 返回等待触发的回调数
func (l *FrameLoop) Pending() int {
	return len(l.pending)
}

// Flush 触发当前排队的全部回调，返回触发数量
// 回调执行期间新请求的帧留到下一次 Flush
func (l *FrameLoop) Flush() int {
	if len(l.pending) == 0 {
		return 0
	}
	callbacks := l.pending
	l.pending = nil

	ts := l.now()
	for _, cb := range callbacks {
		cb(ts)
	}
	return len(callbacks)
}

// SteppedClock 按固定帧间隔推进的时钟，用于离线渲染和测试
type SteppedClock struct {
	now  time.Duration
	step time.Duration
}

// NewSteppedClock 按 fps 创建步进时钟
func NewSteppedClock(fps int) *SteppedClock {
	if fps <= 0 {
		fps = 60
	}
	return &SteppedClock{step: time.Second / time.Duration(fps)}
}

// Now 返回当前时间
func (c *SteppedClock) Now() time.Duration {
	return c.now
}

// Step 返回帧间隔
func (c *SteppedClock) Step() time.Duration {
	return c.step
}

// Advance 前进一帧并返回新的时间
func (c *SteppedClock) Advance() time.Duration {
	c.now += c.step
	return c.now
}
