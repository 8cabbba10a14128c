package drawing

import (
	"fmt"
	"time"
)

// FrameRequester 帧回调调度原语
// RequestFrame 在下一次刷新时异步调用一次 cb，ts 与 Clock.Now 使用同一时间基准
type FrameRequester interface {
	RequestFrame(cb func(ts time.Duration))
}

// Clock 单调时钟
type Clock interface {
	Now() time.Duration
}

// ProgressFunc 接收进度的消费者，通常是 Sequencer.SetProgress
type ProgressFunc func(progress float64)

// Scheduler 把时钟时间换算为 [0,1] 的进度并逐帧通知消费者
//
// 状态只有播放/暂停两种，进度 0（重置）与 1（完成）只是进度值。
// 所有状态只在帧回调所在的逻辑线程上访问，不加锁；
// waiting 标志保证任何时刻最多只有一个未触发的帧回调。
type Scheduler struct {
	duration   time.Duration
	onProgress ProgressFunc
	frames     FrameRequester
	clock      Clock

	startTime time.Duration // 进度为 0 时对应的时钟时间
	progress  float64
	playing   bool
	waiting   bool // 已请求帧回调但尚未触发
}

// NewScheduler 创建调度器，初始进度为 1（静止在完成状态）
func NewScheduler(duration time.Duration, onProgress ProgressFunc, frames FrameRequester, clock Clock) (*Scheduler, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("new scheduler with duration %v: %w", duration, ErrInvalidDuration)
	}
	return &Scheduler{
		duration:   duration,
		onProgress: onProgress,
		frames:     frames,
		clock:      clock,
		progress:   1,
	}, nil
}

// Duration 返回动画时长
func (s *Scheduler) Duration() time.Duration {
	return s.duration
}

// Progress 返回当前进度
func (s *Scheduler) Progress() float64 {
	return s.progress
}

// Playing 返回是否正在播放
func (s *Scheduler) Playing() bool {
	return s.playing
}

// Play 开始或继续播放
//
// 进度不为 1 时从当前进度继续：起始时间回推 duration×progress，画面不跳变。
// 进度为 1 时（首次播放或播放结束后重播）从 0 开始。
func (s *Scheduler) Play() {
	if s.playing {
		return
	}
	s.playing = true
	now := s.clock.Now()
	if s.progress != 1 {
		s.startTime = now - time.Duration(float64(s.duration)*s.progress)
	} else {
		s.progress = 0
		s.startTime = now
	}
	s.tick()
}

// Pause 暂停播放
// 已排队的帧回调仍会触发一次，但不再继续调度
func (s *Scheduler) Pause() {
	s.playing = false
}

// Resume 等价于 Play
func (s *Scheduler) Resume() {
	s.Play()
}

// Stop 直接跳到完成状态（进度 1），不播放动画
func (s *Scheduler) Stop() {
	s.SetProgress(1)
}

// SetProgress 立即跳转到指定进度并同步通知消费者一次
func (s *Scheduler) SetProgress(progress float64) {
	s.playing = false
	s.progress = progress
	s.onProgress(s.progress)
}

// tick 请求下一帧；已有未触发的帧回调时不重复请求
func (s *Scheduler) tick() {
	if s.waiting {
		return
	}
	s.waiting = true
	s.frames.RequestFrame(s.onFrame)
}

// onFrame 每帧回调：更新进度、按需继续调度，并无条件通知消费者一次
func (s *Scheduler) onFrame(ts time.Duration) {
	s.waiting = false
	if s.playing {
		s.progress = float64(ts-s.startTime) / float64(s.duration)
		if s.progress >= 1 {
			s.playing = false
			s.progress = 1
		} else {
			s.tick()
		}
	}
	s.onProgress(s.progress)
}
