// Package scenes 实现查看器的 ebiten 场景
package scenes

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/svgdraw/internal/svgdoc"
	"github.com/decker502/svgdraw/pkg/config"
	"github.com/decker502/svgdraw/pkg/drawing"
	"github.com/decker502/svgdraw/pkg/game"
	"github.com/decker502/svgdraw/pkg/render"
	"github.com/decker502/svgdraw/pkg/utils"
)

// Command 查看器控制命令
type Command int

const (
	CmdTogglePlay Command = iota
	CmdStop
	CmdReplay
	CmdSeekBack
	CmdSeekForward
	CmdSeekStart
	CmdSeekEnd
	CmdSlower
	CmdFaster
	CmdToggleAuto
)

func (c Command) String() string {
	switch c {
	case CmdTogglePlay:
		return "toggle-play"
	case CmdStop:
		return "stop"
	case CmdReplay:
		return "replay"
	case CmdSeekBack:
		return "seek-back"
	case CmdSeekForward:
		return "seek-forward"
	case CmdSeekStart:
		return "seek-start"
	case CmdSeekEnd:
		return "seek-end"
	case CmdSlower:
		return "slower"
	case CmdFaster:
		return "faster"
	case CmdToggleAuto:
		return "toggle-auto"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// keyBindings 按键到命令的映射
var keyBindings = []struct {
	key ebiten.Key
	cmd Command
}{
	{ebiten.KeySpace, CmdTogglePlay},
	{ebiten.KeyS, CmdStop},
	{ebiten.KeyR, CmdReplay},
	{ebiten.KeyArrowLeft, CmdSeekBack},
	{ebiten.KeyArrowRight, CmdSeekForward},
	{ebiten.KeyHome, CmdSeekStart},
	{ebiten.KeyEnd, CmdSeekEnd},
	{ebiten.KeyMinus, CmdSlower},
	{ebiten.KeyNumpadSubtract, CmdSlower},
	{ebiten.KeyEqual, CmdFaster},
	{ebiten.KeyNumpadAdd, CmdFaster},
	{ebiten.KeyA, CmdToggleAuto},
}

const (
	helpText      = "[Space] play/pause  [S] stop  [R] replay  [Left/Right] seek  [Home/End] start/end\n[-/+] duration  [A] autoplay  [F11] fullscreen  click: play/pause  drag: scrub"
	touchHelpText = "tap: play/pause  drag: scrub"
)

// DrawingScene 播放一个 SVG 文档的描绘动画
//
// FrameLoop 在每个 Update 中 Flush 一次，相当于浏览器的 requestAnimationFrame。
// Draw 把 Canvas 的栅格结果上传到 ebiten 图像。
type DrawingScene struct {
	drawing  *drawing.Drawing
	frames   *game.FrameLoop
	canvas   *render.Canvas
	strokes  []*render.PathStroke
	settings *game.SettingsManager

	seekStep     float64
	durationStep time.Duration

	pointer         utils.PointerTracker
	scrubbing       bool
	resumeAfterDrag bool
	touchSeen       bool // 出现过触摸输入后改用触摸提示

	screenImage *ebiten.Image
	renderErr   error
}

// NewDrawingScene 解析文档路径并加载到描绘宿主
// settings 中保存过的时长覆盖配置文件；自动播放需配置与偏好同时开启
func NewDrawingScene(doc *svgdoc.Document, cfg *config.ViewerConfig, frames *game.FrameLoop, settings *game.SettingsManager) (*DrawingScene, error) {
	width, height := cfg.Window.Width, cfg.Window.Height

	strokes := render.FromDocument(doc, cfg.Style(), render.Fit(doc, width, height))

	prefs := settings.GetSettings()
	opts := cfg.DrawingOptions()
	opts.Duration = prefs.Duration(opts.Duration)
	opts.Auto = opts.Auto && prefs.Auto

	d, err := drawing.New(opts, frames, frames)
	if err != nil {
		return nil, fmt.Errorf("failed to create drawing: %w", err)
	}
	if err := d.Load(render.AsStrokes(strokes)); err != nil {
		return nil, err
	}

	log.Printf("[DrawingScene] %d 条路径, 画布 %dx%d, 自动播放=%v", len(strokes), width, height, opts.Auto)

	return &DrawingScene{
		drawing:      d,
		frames:       frames,
		canvas:       render.NewCanvas(width, height, gg.Hex(cfg.Window.Background)),
		strokes:      strokes,
		settings:     settings,
		seekStep:     cfg.Playback.SeekStep,
		durationStep: cfg.DurationStep(),
	}, nil
}

// Attach 场景已挂载，按配置自动播放
func (s *DrawingScene) Attach() error {
	return s.drawing.Attach()
}

// Drawing 返回描绘宿主
func (s *DrawingScene) Drawing() *drawing.Drawing {
	return s.drawing
}

// Strokes 返回画布坐标下的路径
func (s *DrawingScene) Strokes() []*render.PathStroke {
	return s.strokes
}

// Apply 执行一条控制命令
func (s *DrawingScene) Apply(cmd Command) error {
	d := s.drawing
	switch cmd {
	case CmdTogglePlay:
		if d.Playing() {
			return d.Pause()
		}
		return d.Play()
	case CmdStop:
		return d.Stop()
	case CmdReplay:
		if err := d.SetProgress(0); err != nil {
			return err
		}
		return d.Play()
	case CmdSeekBack:
		return s.seek(d.Progress() - s.seekStep)
	case CmdSeekForward:
		return s.seek(d.Progress() + s.seekStep)
	case CmdSeekStart:
		return d.SetProgress(0)
	case CmdSeekEnd:
		return d.SetProgress(1)
	case CmdSlower:
		return s.changeDuration(d.Duration() + s.durationStep)
	case CmdFaster:
		return s.changeDuration(d.Duration() - s.durationStep)
	case CmdToggleAuto:
		s.settings.SetAuto(!s.settings.GetSettings().Auto)
		s.saveSettings()
		return nil
	}
	return fmt.Errorf("unknown command %v", cmd)
}

// seek 跳转到 [0, 1] 内的进度，播放中跳转后继续播放
func (s *DrawingScene) seek(progress float64) error {
	progress = min(max(progress, 0), 1)
	playing := s.drawing.Playing()
	if err := s.drawing.SetProgress(progress); err != nil {
		return err
	}
	if playing && progress < 1 {
		return s.drawing.Play()
	}
	return nil
}

// Scrub 按横坐标跳转，拖动期间暂停播放
func (s *DrawingScene) Scrub(x int) error {
	if !s.scrubbing {
		s.scrubbing = true
		s.resumeAfterDrag = s.drawing.Playing()
	}
	progress := min(max(float64(x)/float64(s.canvas.Width()), 0), 1)
	return s.drawing.SetProgress(progress)
}

// EndScrub 拖动结束，拖动前在播放则继续
func (s *DrawingScene) EndScrub() error {
	if !s.scrubbing {
		return nil
	}
	s.scrubbing = false
	if s.resumeAfterDrag && s.drawing.Progress() < 1 {
		return s.drawing.Play()
	}
	return nil
}

// changeDuration 调整时长并持久化，动画回到完整显示
func (s *DrawingScene) changeDuration(d time.Duration) error {
	d = s.settings.SetDuration(d)
	if err := s.drawing.Reconfigure(d); err != nil {
		return err
	}
	s.saveSettings()
	return nil
}

func (s *DrawingScene) saveSettings() {
	if err := s.settings.Save(); err != nil {
		log.Printf("[DrawingScene] Warning: %v", err)
	}
}

// Update 处理输入并触发挂起的帧回调
func (s *DrawingScene) Update(deltaTime float64) {
	for _, b := range keyBindings {
		if !inpututil.IsKeyJustPressed(b.key) {
			continue
		}
		if err := s.Apply(b.cmd); err != nil {
			log.Printf("[DrawingScene] %v failed: %v", b.cmd, err)
		}
	}

	if !s.touchSeen && utils.IsTouchDevice() {
		s.touchSeen = true
		log.Printf("[DrawingScene] 检测到触摸输入，切换为触摸提示")
	}

	pressed, x, y := utils.PollPointer()
	var err error
	switch s.pointer.Step(pressed, x, y) {
	case utils.PointerTap:
		err = s.Apply(CmdTogglePlay)
	case utils.PointerDrag:
		err = s.Scrub(x)
	case utils.PointerDragEnd:
		err = s.EndScrub()
	}
	if err != nil {
		log.Printf("[DrawingScene] pointer input failed: %v", err)
	}

	s.frames.Flush()
}

// Draw 绘制当前描绘状态与状态栏
func (s *DrawingScene) Draw(screen *ebiten.Image) {
	if err := s.canvas.Render(s.strokes); err != nil {
		// 同一错误只记录一次
		if s.renderErr == nil || s.renderErr.Error() != err.Error() {
			log.Printf("[DrawingScene] Render failed: %v", err)
		}
		s.renderErr = err
	}
	s.present(s.canvas.Image())
	screen.DrawImage(s.screenImage, nil)

	state := "paused"
	if s.drawing.Playing() {
		state = "playing"
	}
	auto := "off"
	if s.settings.GetSettings().Auto {
		auto = "on"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  %5.1f%%  duration %v  autoplay %s\n%s",
		state, s.drawing.Progress()*100, s.drawing.Duration(), auto, s.helpLine()))
}

// helpLine 返回状态栏的操作提示，移动端或出现过触摸输入时只显示手势
func (s *DrawingScene) helpLine() string {
	if utils.IsMobile() || s.touchSeen {
		return touchHelpText
	}
	return helpText
}

// present 把栅格图像上传到复用的 ebiten 图像
func (s *DrawingScene) present(img image.Image) {
	rgba, ok := img.(*image.RGBA)
	if ok && s.screenImage != nil && s.screenImage.Bounds() == rgba.Bounds() {
		s.screenImage.WritePixels(rgba.Pix)
		return
	}
	if s.screenImage != nil {
		s.screenImage.Deallocate()
	}
	s.screenImage = ebiten.NewImageFromImage(img)
}

// Close 停止动画并释放画布
func (s *DrawingScene) Close() {
	s.drawing.Close()
	if err := s.canvas.Close(); err != nil {
		log.Printf("[DrawingScene] Warning: failed to close canvas: %v", err)
	}
	if s.screenImage != nil {
		s.screenImage.Deallocate()
		s.screenImage = nil
	}
}
