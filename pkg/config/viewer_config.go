package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/svgdraw/pkg/drawing"
	"github.com/decker502/svgdraw/pkg/render"
)

// ViewerConfig 查看器完整配置
type ViewerConfig struct {
	Window   WindowConfig   `yaml:"window" toml:"window"`
	Playback PlaybackConfig `yaml:"playback" toml:"playback"`
	Stroke   StrokeConfig   `yaml:"stroke" toml:"stroke"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Title      string `yaml:"title" toml:"title"`
	Background string `yaml:"background" toml:"background"` // 背景颜色，如 "#ffffff"
}

// PlaybackConfig 播放配置
type PlaybackConfig struct {
	DurationMs     int     `yaml:"duration_ms" toml:"duration_ms"`           // 动画时长（毫秒）
	Auto           bool    `yaml:"auto" toml:"auto"`                         // 加载完成后自动播放
	Progress       float64 `yaml:"progress" toml:"progress"`                 // 初始进度，1 为完整显示
	TPS            int     `yaml:"tps" toml:"tps"`                           // 目标 TPS，同时决定离线渲染帧率
	SeekStep       float64 `yaml:"seek_step" toml:"seek_step"`               // 方向键跳转步长
	DurationStepMs int     `yaml:"duration_step_ms" toml:"duration_step_ms"` // +/- 键调整时长的步长（毫秒）
}

// StrokeConfig 默认描边样式（SVG 未指定时使用）
type StrokeConfig struct {
	Color    string  `yaml:"color" toml:"color"`
	Width    float64 `yaml:"width" toml:"width"`
	Accuracy float64 `yaml:"accuracy" toml:"accuracy"` // 路径长度测量精度
}

// DefaultViewerConfig 返回默认配置
func DefaultViewerConfig() *ViewerConfig {
	style := render.DefaultStyle()
	return &ViewerConfig{
		Window: WindowConfig{
			Width:      800,
			Height:     600,
			Title:      "SVG Drawing",
			Background: "#ffffff",
		},
		Playback: PlaybackConfig{
			DurationMs:     int(drawing.DefaultDuration / time.Millisecond),
			Auto:           false,
			Progress:       1,
			TPS:            60,
			SeekStep:       0.05,
			DurationStepMs: 500,
		},
		Stroke: StrokeConfig{
			Color:    style.Color,
			Width:    style.Width,
			Accuracy: style.Accuracy,
		},
	}
}

// LoadViewerConfig 从文件加载配置；path 为空时返回默认配置
// 扩展名为 .toml 时按 TOML 解析，否则按 YAML 解析
func LoadViewerConfig(path string) (*ViewerConfig, error) {
	if path == "" {
		return DefaultViewerConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	parse := ParseViewerConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseViewerConfigTOML
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config '%s': %w", path, err)
	}
	return cfg, nil
}

// ParseViewerConfig 解析 YAML 配置，缺省字段使用默认值
func ParseViewerConfig(data []byte) (*ViewerConfig, error) {
	cfg := DefaultViewerConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseViewerConfigTOML 解析 TOML 配置，缺省字段使用默认值
func ParseViewerConfigTOML(data []byte) (*ViewerConfig, error) {
	cfg := DefaultViewerConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置
func (c *ViewerConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Playback.DurationMs <= 0 {
		errs = append(errs, fmt.Errorf("playback.duration_ms must be positive, got %d", c.Playback.DurationMs))
	}
	if c.Playback.TPS <= 0 {
		errs = append(errs, fmt.Errorf("playback.tps must be positive, got %d", c.Playback.TPS))
	}
	if c.Playback.SeekStep <= 0 || c.Playback.SeekStep > 1 {
		errs = append(errs, fmt.Errorf("playback.seek_step must be in (0, 1], got %v", c.Playback.SeekStep))
	}
	if c.Playback.DurationStepMs <= 0 {
		errs = append(errs, fmt.Errorf("playback.duration_step_ms must be positive, got %d", c.Playback.DurationStepMs))
	}
	if c.Stroke.Width <= 0 {
		errs = append(errs, fmt.Errorf("stroke.width must be positive, got %v", c.Stroke.Width))
	}
	return errors.Join(errs...)
}

// Duration 返回动画时长
func (c *ViewerConfig) Duration() time.Duration {
	return time.Duration(c.Playback.DurationMs) * time.Millisecond
}

// DurationStep 返回时长调整步长
func (c *ViewerConfig) DurationStep() time.Duration {
	return time.Duration(c.Playback.DurationStepMs) * time.Millisecond
}

// DrawingOptions 转换为 drawing.Options
func (c *ViewerConfig) DrawingOptions() drawing.Options {
	return drawing.Options{
		Duration: c.Duration(),
		Auto:     c.Playback.Auto,
		Progress: c.Playback.Progress,
	}
}

// Style 转换为 render.Style
func (c *ViewerConfig) Style() render.Style {
	return render.Style{
		Color:    c.Stroke.Color,
		Width:    c.Stroke.Width,
		Accuracy: c.Stroke.Accuracy,
	}
}
