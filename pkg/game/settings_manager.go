// Package game 保存观看者偏好设置（主题、全屏、槽位数）
package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/driftfield/pkg/config"
	"github.com/decker502/driftfield/pkg/event"
)

// ViewerSettings 观看者偏好
// 对应站点把主题开关保存在浏览器本地存储中的行为
type ViewerSettings struct {
	DarkTheme  bool `yaml:"darkTheme"`  // 暗色主题
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
	// PoolSize 覆盖配置中的槽位数，0 表示使用配置值
	PoolSize int `yaml:"poolSize"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{}
}

// Theme 返回设置对应的主题
func (s *ViewerSettings) Theme() config.Theme {
	if s.DarkTheme {
		return config.ThemeDark
	}
	return config.ThemeLight
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// 槽位数覆盖的上限
const maxPoolSize = 500

// NewSettingsManager 创建设置管理器
//
// gdataManager 可为 nil（降级模式，仅内存设置）。
// 加载失败不是致命错误：记录警告并使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// OpenSettingsManager 以 appName 打开 gdata 存储并创建设置管理器
//
// 存储不可用时退化为内存模式。
func OpenSettingsManager(appName string) *SettingsManager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return NewSettingsManager(nil)
	}
	return NewSettingsManager(m)
}

// Persistent 报告设置是否会被持久化
func (sm *SettingsManager) Persistent() bool {
	return sm.gdataManager != nil
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或数据不存在时使用默认设置。
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded ViewerSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.PoolSize = clampPoolSize(loaded.PoolSize)

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded (theme=%s)", loaded.Theme())
	return nil
}

// Save 保存设置到 gdata；降级模式下不做任何事
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

	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetTheme 设置主题（仅修改内存，需调用 Save 持久化）
func (sm *SettingsManager) SetTheme(t config.Theme) {
	sm.settings.DarkTheme = t == config.ThemeDark
}

// ToggleTheme 切换主题并立即保存，返回新主题
func (sm *SettingsManager) ToggleTheme() config.Theme {
	next := sm.settings.Theme().Toggle()
	sm.SetTheme(next)
	if err := sm.Save(); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
	return next
}

// OnEvent 实现 event.Listener：收到 ThemeChanged 时保存新主题
func (sm *SettingsManager) OnEvent(e event.Event) {
	if e.Type != event.ThemeChanged {
		return
	}
	t, ok := e.Data.(config.Theme)
	if !ok {
		return
	}
	sm.SetTheme(t)
	if err := sm.Save(); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
}

// SetFullscreen 设置全屏模式（仅修改内存）
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetPoolSize 设置槽位数覆盖，超出 [0, 500] 的值被截断
func (sm *SettingsManager) SetPoolSize(n int) {
	sm.settings.PoolSize = clampPoolSize(n)
}

// ApplyTo 把槽位数覆盖应用到引擎配置
func (sm *SettingsManager) ApplyTo(cfg *config.FieldConfig) {
	if sm.settings.PoolSize > 0 {
		cfg.PoolSize = sm.settings.PoolSize
	}
}

func clampPoolSize(n int) int {
	if n < 0 {
		return 0
	}
	if n > maxPoolSize {
		return maxPoolSize
	}
	return n
}
