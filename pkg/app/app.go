// Package app 提供查看器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/svgdraw/internal/svgdoc"
	"github.com/decker502/svgdraw/pkg/config"
	"github.com/decker502/svgdraw/pkg/embedded"
	"github.com/decker502/svgdraw/pkg/game"
	"github.com/decker502/svgdraw/pkg/scenes"
	"github.com/decker502/svgdraw/pkg/utils"
)

// 内嵌资源路径
const (
	DefaultSVGPath    = "assets/svg/sample.svg"
	DefaultConfigPath = "data/viewer.yaml"
)

// AppName gdata 存储目录名
const AppName = "svgdraw"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// SVGPath 要播放的 SVG 文件，为空则使用内嵌示例
	SVGPath string
	// ConfigPath 查看器 YAML 配置，为空则使用内嵌配置
	ConfigPath string
}

// App 是查看器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	viewerConfig *config.ViewerConfig
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器
//
// 使用内嵌资源时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	viewerConfig, err := loadViewerConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	doc, err := loadDocument(cfg.SVGPath)
	if err != nil {
		return nil, fmt.Errorf("SVG 加载失败: %w", err)
	}
	log.Printf("[App] SVG 文档: %d 条路径", len(doc.Paths))

	// gdata 不可用时降级为仅内存设置
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settingsManager := game.NewSettingsManager(gdataManager)

	frames := game.NewRealtimeFrameLoop()
	scene, err := scenes.NewDrawingScene(doc, viewerConfig, frames, settingsManager)
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)
	if err := scene.Attach(); err != nil {
		return nil, fmt.Errorf("场景挂载失败: %w", err)
	}

	return &App{
		sceneManager: sceneManager,
		viewerConfig: viewerConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// loadViewerConfig 优先读取文件，否则读取内嵌配置，都不可用时使用默认值
func loadViewerConfig(path string) (*config.ViewerConfig, error) {
	if path != "" {
		return config.LoadViewerConfig(path)
	}
	if !embedded.Exists(DefaultConfigPath) {
		log.Printf("[App] 未找到内嵌配置，使用默认配置")
		return config.DefaultViewerConfig(), nil
	}

	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return config.ParseViewerConfig(data)
}

// loadDocument 读取 SVG 文件，path 为空时读取内嵌示例
func loadDocument(path string) (*svgdoc.Document, error) {
	if path != "" {
		return svgdoc.ParseFile(path)
	}

	f, err := embedded.Open(DefaultSVGPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded sample: %w", err)
	}
	defer f.Close()
	return svgdoc.Parse(f)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.viewerConfig.Window.Width, a.viewerConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(a.viewerConfig.Playback.TPS)
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时以黑色填充 letterbox 区域并使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，与画布尺寸一致
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.viewerConfig.Window.Width, a.viewerConfig.Window.Height
}

// ViewerConfig 返回生效的查看器配置
func (a *App) ViewerConfig() *config.ViewerConfig {
	return a.viewerConfig
}

// Close 释放当前场景
func (a *App) Close() {
	a.sceneManager.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
