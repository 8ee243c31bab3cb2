// Package app 提供桌面端应用包装器
//
// App 实现 ebiten.Game：每帧填充主题背景与点阵，推进帧队列让粒子场引擎
// 绘制到离屏图层，再把图层合成到屏幕。窗口尺寸与光标变化经事件分发器
// 投递给引擎。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/driftfield/internal/orgfeed"
	"github.com/decker502/driftfield/pkg/config"
	"github.com/decker502/driftfield/pkg/embedded"
	"github.com/decker502/driftfield/pkg/event"
	"github.com/decker502/driftfield/pkg/field"
	"github.com/decker502/driftfield/pkg/game"
	"github.com/decker502/driftfield/pkg/render"
)

// 默认窗口尺寸
const (
	WindowWidth  = 1280
	WindowHeight = 800
)

// AppName gdata 存储目录名
const AppName = "driftfield"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部引擎配置文件，为空则使用嵌入的 data/field.yaml
	ConfigPath string
	// PoolSize 覆盖槽位数，0 表示使用设置或配置值
	PoolSize int
	// Theme 初始主题（"light"/"dark"），为空则使用保存的设置
	Theme string
	// Labels 合并旧版文本标签池
	Labels bool
	// Org GitHub 组织名，非空时拉取仓库与成员作为标签
	Org string
	// Seed 随机种子，0 表示使用配置值
	Seed int64
	// NoBackdrop 关闭点阵与光晕背景
	NoBackdrop bool
}

// themeFade 用弹簧平滑主题切换：pos 为 0（亮）到 1（暗）
type themeFade struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newThemeFade(t config.Theme) themeFade {
	f := themeFade{spring: harmonica.NewSpring(harmonica.FPS(ebiten.DefaultTPS), 6.0, 1.0)}
	f.pos = themeTarget(t)
	return f
}

func themeTarget(t config.Theme) float64 {
	if t == config.ThemeDark {
		return 1
	}
	return 0
}

func (f *themeFade) step(t config.Theme) float64 {
	f.pos, f.vel = f.spring.Update(f.pos, f.vel, themeTarget(t))
	return f.pos
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	queue    *field.FrameQueue
	events   *event.Dispatcher
	engine   *field.Engine
	layer    *render.EbitenSurface
	settings *game.SettingsManager

	theme    config.Theme
	fade     themeFade
	backdrop *backdrop // nil 表示关闭
	startAt  time.Time

	width, height int
	cursorX       int
	cursorY       int
	cursorKnown   bool

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建应用并启动粒子场引擎
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入数据；
// 未初始化时使用内置默认配置。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fieldCfg, err := loadFieldConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	pool, err := embedded.ContentPool(cfg.Labels)
	if err != nil {
		return nil, fmt.Errorf("内容池加载失败: %w", err)
	}
	if cfg.Org != "" {
		pool = mergeOrgLabels(pool, cfg.Org)
	}

	settings := game.OpenSettingsManager(AppName)
	settings.ApplyTo(&fieldCfg)
	if cfg.PoolSize > 0 {
		fieldCfg.PoolSize = cfg.PoolSize
	}
	if cfg.Seed != 0 {
		fieldCfg.Seed = cfg.Seed
	}

	theme := settings.GetSettings().Theme()
	if cfg.Theme != "" {
		theme = config.ParseTheme(cfg.Theme)
		settings.SetTheme(theme)
	}
	log.Printf("[App] theme=%s pool=%d icons=%d labels=%d", theme, fieldCfg.PoolSize, len(pool.Icons), len(pool.Labels))

	a := &App{
		queue:    field.NewFrameQueue(),
		events:   event.NewDispatcher(),
		layer:    render.NewEbitenSurface(WindowWidth, WindowHeight),
		settings: settings,
		theme:    theme,
		fade:     newThemeFade(theme),
		startAt:  time.Now(),
		width:    WindowWidth,
		height:   WindowHeight,
		verbose:  cfg.Verbose,
	}
	a.events.Subscribe(event.ThemeChanged, settings)
	if !cfg.NoBackdrop {
		a.backdrop = newBackdrop()
	}
	a.engine = field.NewEngine(a.queue, a.events, nil)
	a.engine.Start(a.layer, pool, fieldCfg)
	if a.engine.State() != field.Running {
		// 引擎启动失败时仍然显示背景
		log.Printf("[App] Warning: particle field not running, showing background only")
	}
	return a, nil
}

func loadFieldConfig(path string) (config.FieldConfig, error) {
	if path == "" {
		cfg, err := embedded.FieldConfig()
		if err != nil {
			return config.FieldConfig{}, fmt.Errorf("引擎配置加载失败: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadFieldConfig(path)
	if err != nil {
		return config.FieldConfig{}, fmt.Errorf("引擎配置加载失败: %w", err)
	}
	log.Printf("[Config] loaded field config from %s", path)
	return cfg, nil
}

// mergeOrgLabels 拉取组织标签并合并；失败时保留原内容池
func mergeOrgLabels(pool config.ContentPool, org string) config.ContentPool {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	orgPool, err := orgfeed.NewClient().Pool(ctx, org)
	if err != nil {
		log.Printf("[App] Warning: org feed unavailable: %v", err)
		return pool
	}
	return pool.Merge(orgPool)
}

// Update 处理输入
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.setTheme(a.theme.Toggle())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.trackCursor(pointerPosition())
	a.fade.step(a.theme)
	return nil
}

// setTheme 切换主题并广播，设置管理器作为订阅者负责持久化
func (a *App) setTheme(t config.Theme) {
	a.theme = t
	log.Printf("[App] theme -> %s", t)
	a.events.Dispatch(event.Event{Type: event.ThemeChanged, Data: t})
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(ebiten.IsFullscreen())
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// trackCursor 只在光标真正移动后投递指针事件
//
// 第一次读数只作为基准：窗口创建时光标可能根本不在窗口内。
func (a *App) trackCursor(x, y int) {
	if !a.cursorKnown {
		a.cursorX, a.cursorY, a.cursorKnown = x, y, true
		return
	}
	if x == a.cursorX && y == a.cursorY {
		return
	}
	a.cursorX, a.cursorY = x, y
	a.events.Dispatch(event.Event{Type: event.PointerMoved, Data: event.Point{X: float64(x), Y: float64(y)}})
}

// backgroundColor 返回当前主题过渡位置对应的页面背景色
func (a *App) backgroundColor() color.NRGBA {
	return config.BlendBackground(a.fade.pos)
}

// Draw 绘制一帧
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.backgroundColor())
	if a.backdrop != nil {
		a.backdrop.draw(screen, time.Since(a.startAt), a.fade.pos)
	}

	a.queue.Tick(time.Now(), a.theme)

	if img := a.layer.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口，全屏时 letterbox 使用背景色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(a.backgroundColor())
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 使用窗口实际尺寸作为逻辑尺寸，尺寸变化时投递视口事件
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.events.Dispatch(event.Event{Type: event.ViewportResized, Data: event.Size{W: outsideWidth, H: outsideHeight}})
	}
	return outsideWidth, outsideHeight
}

// Close 停止引擎
func (a *App) Close() {
	a.engine.Stop()
}

// Engine 返回粒子场引擎
func (a *App) Engine() *field.Engine {
	return a.engine
}

// Theme 返回当前主题
func (a *App) Theme() config.Theme {
	return a.theme
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Fullscreen 返回保存的全屏偏好
func (a *App) Fullscreen() bool {
	return a.settings.GetSettings().Fullscreen
}
