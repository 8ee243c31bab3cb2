package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/driftfield/pkg/config"
	"github.com/decker502/driftfield/pkg/event"
)

// openTestGdata 在临时 HOME 下打开 gdata 存储
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.DarkTheme || s.Fullscreen || s.PoolSize != 0 {
		t.Errorf("DefaultSettings() = %+v, want zero value", *s)
	}
	if s.Theme() != config.ThemeLight {
		t.Errorf("default Theme() = %v, want light", s.Theme())
	}
}

// TestNewSettingsManagerNilGdata 测试降级模式
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.Persistent() {
		t.Error("Persistent() = true, want false for nil gdata manager")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode error: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode error: %v", err)
	}
	if got := sm.ToggleTheme(); got != config.ThemeDark {
		t.Errorf("ToggleTheme() = %v, want dark", got)
	}
}

// TestSettingsLoadSave 测试保存后重新加载
func TestSettingsLoadSave(t *testing.T) {
	m := openTestGdata(t, "driftfield_test_load_save")

	sm1 := NewSettingsManager(m)
	if !sm1.Persistent() {
		t.Fatal("Persistent() = false with a gdata manager")
	}
	sm1.SetTheme(config.ThemeDark)
	sm1.SetFullscreen(true)
	sm1.SetPoolSize(45)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(m)
	s := sm2.GetSettings()
	if !s.DarkTheme || !s.Fullscreen || s.PoolSize != 45 {
		t.Errorf("reloaded settings = %+v, want dark/fullscreen/45", *s)
	}
}

// TestToggleThemePersists 测试主题切换立即持久化
func TestToggleThemePersists(t *testing.T) {
	m := openTestGdata(t, "driftfield_test_toggle")

	sm := NewSettingsManager(m)
	sm.ToggleTheme()
	sm.ToggleTheme()
	sm.ToggleTheme()

	reloaded := NewSettingsManager(m)
	if reloaded.GetSettings().Theme() != config.ThemeDark {
		t.Error("three toggles from light should persist dark")
	}
}

// TestThemeChangedEventPersists 测试通过事件分发器保存主题
func TestThemeChangedEventPersists(t *testing.T) {
	m := openTestGdata(t, "driftfield_test_theme_event")

	sm := NewSettingsManager(m)
	d := event.NewDispatcher()
	d.Subscribe(event.ThemeChanged, sm)

	d.Dispatch(event.Event{Type: event.PointerMoved, Data: event.Point{X: 1, Y: 1}})
	d.Dispatch(event.Event{Type: event.ThemeChanged, Data: "dark"}) // 类型不符，忽略
	if NewSettingsManager(m).GetSettings().DarkTheme {
		t.Fatal("non-Theme payload should be ignored")
	}

	d.Dispatch(event.Event{Type: event.ThemeChanged, Data: config.ThemeDark})
	if NewSettingsManager(m).GetSettings().Theme() != config.ThemeDark {
		t.Error("ThemeChanged should persist dark theme")
	}
}

// TestLoadCorruptData 测试数据损坏时回退默认值
func TestLoadCorruptData(t *testing.T) {
	m := openTestGdata(t, "driftfield_test_corrupt")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("darkTheme: [oops")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(m)
	if err := sm.Load(); err == nil {
		t.Error("Load() should fail on corrupt YAML")
	}
	if sm.GetSettings().DarkTheme {
		t.Error("corrupt data should leave default settings")
	}
}

func TestSetPoolSizeClamp(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  int
	}{
		{"正常值", 40, 40},
		{"零表示使用配置", 0, 0},
		{"负数截断为零", -3, 0},
		{"超过上限", 10000, maxPoolSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSettingsManager(nil)
			sm.SetPoolSize(tt.input)
			if got := sm.GetSettings().PoolSize; got != tt.want {
				t.Errorf("PoolSize = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplyTo(t *testing.T) {
	sm := NewSettingsManager(nil)
	cfg := config.DefaultFieldConfig()

	sm.ApplyTo(&cfg)
	if cfg.PoolSize != config.DefaultFieldConfig().PoolSize {
		t.Errorf("zero override changed PoolSize to %d", cfg.PoolSize)
	}

	sm.SetPoolSize(12)
	sm.ApplyTo(&cfg)
	if cfg.PoolSize != 12 {
		t.Errorf("PoolSize = %d, want 12", cfg.PoolSize)
	}
}
