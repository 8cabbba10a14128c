package drawing

import (
	"fmt"
	"log"
	"time"
)

// DefaultDuration 默认动画时长
const DefaultDuration = 3000 * time.Millisecond

// Options 宿主可配置项
type Options struct {
	Duration time.Duration // 动画时长，必须为正数
	Auto     bool          // 内容就绪后 Attach 时自动播放
	Progress float64       // 初始进度，1 表示完整显示
}

// DefaultOptions 返回默认配置：3 秒、不自动播放、进度 1
func DefaultOptions() Options {
	return Options{
		Duration: DefaultDuration,
		Auto:     false,
		Progress: 1,
	}
}

// Drawing 路径描绘动画的宿主
//
// 生命周期：New → Load（内容就绪，构建 Sequencer 与 Scheduler）→ Attach（按 Auto 自动播放）
// → 控制操作 → Close。Load 之前调用控制操作返回 *PreconditionError。
type Drawing struct {
	opts   Options
	frames FrameRequester
	clock  Clock

	sequencer *Sequencer
	scheduler *Scheduler
}

// New 创建宿主，frames 与 clock 由调用方注入
func New(opts Options, frames FrameRequester, clock Clock) (*Drawing, error) {
	if opts.Duration <= 0 {
		return nil, fmt.Errorf("new drawing with duration %v: %w", opts.Duration, ErrInvalidDuration)
	}
	return &Drawing{
		opts:   opts,
		frames: frames,
		clock:  clock,
	}, nil
}

// Load 以发现顺序的路径构建描绘序列
// 重复调用会替换旧序列，旧调度器先被暂停
func (d *Drawing) Load(strokes []Stroke) error {
	if d.scheduler != nil {
		d.scheduler.Pause()
	}

	sequencer := NewSequencer(strokes)
	scheduler, err := NewScheduler(d.opts.Duration, sequencer.SetProgress, d.frames, d.clock)
	if err != nil {
		return fmt.Errorf("failed to load drawing: %w", err)
	}
	d.sequencer = sequencer
	d.scheduler = scheduler

	log.Printf("[Drawing] 加载 %d 条路径, 总长度 %.2f, 时长 %v", len(strokes), sequencer.Length(), d.opts.Duration)

	if d.opts.Progress != 1 {
		d.scheduler.SetProgress(d.opts.Progress)
	}
	return nil
}

// Attach 宿主挂载后调用；Auto 为 true 时开始播放
func (d *Drawing) Attach() error {
	if !d.opts.Auto {
		return nil
	}
	return d.Play()
}

// Ready 返回内容是否已加载
func (d *Drawing) Ready() bool {
	return d.scheduler != nil
}

// Sequencer 返回当前描绘序列，未加载时为 nil
func (d *Drawing) Sequencer() *Sequencer {
	return d.sequencer
}

// Options 返回当前配置
func (d *Drawing) Options() Options {
	return d.opts
}

// Duration 返回动画时长
func (d *Drawing) Duration() time.Duration {
	return d.opts.Duration
}

// Progress 返回当前进度；未加载时返回配置的初始进度
func (d *Drawing) Progress() float64 {
	if d.scheduler == nil {
		return d.opts.Progress
	}
	return d.scheduler.Progress()
}

// Playing 返回是否正在播放
func (d *Drawing) Playing() bool {
	return d.scheduler != nil && d.scheduler.Playing()
}

// Play 开始播放
func (d *Drawing) Play() error {
	if d.scheduler == nil {
		return &PreconditionError{Op: "play"}
	}
	d.scheduler.Play()
	return nil
}

// Pause 暂停播放
func (d *Drawing) Pause() error {
	if d.scheduler == nil {
		return &PreconditionError{Op: "pause"}
	}
	d.scheduler.Pause()
	return nil
}

// Resume 继续播放
func (d *Drawing) Resume() error {
	if d.scheduler == nil {
		return &PreconditionError{Op: "resume"}
	}
	d.scheduler.Resume()
	return nil
}

// Stop 跳到完整显示状态
func (d *Drawing) Stop() error {
	if d.scheduler == nil {
		return &PreconditionError{Op: "stop"}
	}
	d.scheduler.Stop()
	return nil
}

// SetProgress 跳转到指定进度（不做截断）
func (d *Drawing) SetProgress(progress float64) error {
	if d.scheduler == nil {
		return &PreconditionError{Op: "set progress"}
	}
	d.scheduler.SetProgress(progress)
	return nil
}

// Reconfigure 修改动画时长
//
// 当前动画被停止（跳到进度 1），随后以新时长重建调度器，进度回到默认值 1，不保留原进度。
// 未加载内容时只记录新时长。
func (d *Drawing) Reconfigure(duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("reconfigure drawing with duration %v: %w", duration, ErrInvalidDuration)
	}
	d.opts.Duration = duration

	if d.scheduler != nil {
		d.scheduler.Stop()
	}
	if d.sequencer != nil {
		scheduler, err := NewScheduler(duration, d.sequencer.SetProgress, d.frames, d.clock)
		if err != nil {
			return fmt.Errorf("failed to reconfigure drawing: %w", err)
		}
		d.scheduler = scheduler
	}

	log.Printf("[Drawing] 动画时长更新为 %v", duration)
	return nil
}

// Close 宿主销毁时调用，暂停并释放序列与调度器
func (d *Drawing) Close() {
	if d.scheduler != nil {
		d.scheduler.Pause()
	}
	d.scheduler = nil
	d.sequencer = nil
}
