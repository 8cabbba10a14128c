package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 动画时长的可调范围
const (
	MinDuration = 100 * time.Millisecond
	MaxDuration = 60 * time.Second
)

// ViewerSettings 查看器的持久化偏好
// 只保存用户在查看器中调整过的项，其余配置来自 YAML 配置文件
type ViewerSettings struct {
	DurationMs int  `yaml:"durationMs"` // 动画时长（毫秒），0 表示使用配置文件的值
	Auto       bool `yaml:"auto"`       // 打开文件后是否自动播放
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		DurationMs: 0,
		Auto:       true,
	}
}

// Duration 返回设置中的动画时长，未设置时返回 fallback
func (s *ViewerSettings) Duration(fallback time.Duration) time.Duration {
	if s.DurationMs <= 0 {
		return fallback
	}
	return time.Duration(s.DurationMs) * time.Millisecond
}

// SettingsManager 设置管理器
// 负责查看器偏好的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 加载失败不是致命错误，使用默认设置
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或尚未保存过时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时不报错（降级模式）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetDuration 设置动画时长，限制在 [MinDuration, MaxDuration]
// 返回实际生效的时长；需调用 Save() 持久化
func (sm *SettingsManager) SetDuration(d time.Duration) time.Duration {
	d = clampDuration(d)
	sm.settings.DurationMs = int(d / time.Millisecond)
	return d
}

// SetAuto 设置是否自动播放；需调用 Save() 持久化
func (sm *SettingsManager) SetAuto(auto bool) {
	sm.settings.Auto = auto
}

func clampDuration(d time.Duration) time.Duration {
	if d < MinDuration {
		return MinDuration
	}
	if d > MaxDuration {
		return MaxDuration
	}
	return d
}
