package field

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/decker502/driftfield/pkg/components"
	"github.com/decker502/driftfield/pkg/config"
	"github.com/decker502/driftfield/pkg/event"
	"github.com/decker502/driftfield/pkg/surface"
)

const frameStep = time.Second / 60

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// testConfig 返回默认配置，只固定随机种子
func testConfig() config.FieldConfig {
	cfg := config.DefaultFieldConfig()
	cfg.Seed = 42
	return cfg
}

type harness struct {
	q      *FrameQueue
	events *event.Dispatcher
	rec    *surface.Recorder
	engine *Engine
	frame  int
}

func newHarness(w, h float64) *harness {
	q := NewFrameQueue()
	d := event.NewDispatcher()
	return &harness{
		q:      q,
		events: d,
		rec:    surface.NewRecorder(w, h),
		engine: NewEngine(q, d, nil),
	}
}

func (h *harness) tick(theme config.Theme) {
	h.rec.Reset()
	h.q.Tick(epoch.Add(time.Duration(h.frame)*frameStep), theme)
	h.frame++
}

func (h *harness) elapsedMs(frame int) float64 {
	return float64(time.Duration(frame)*frameStep) / float64(time.Millisecond)
}

func TestEngine_StartFailsSilently(t *testing.T) {
	badCfg := testConfig()
	badCfg.PoolSize = 0

	unavailable := surface.NewRecorder(800, 600)
	unavailable.Unavailable = true

	var nilRecorder *surface.Recorder

	tests := []struct {
		name   string
		canvas surface.Canvas
		pool   config.ContentPool
		cfg    config.FieldConfig
	}{
		{"画布为 nil", nil, config.DefaultContentPool(), testConfig()},
		{"类型化 nil 画布", nilRecorder, config.DefaultContentPool(), testConfig()},
		{"无法获取 2D 上下文", unavailable, config.DefaultContentPool(), testConfig()},
		{"配置无效", surface.NewRecorder(800, 600), config.DefaultContentPool(), badCfg},
		{"内容池为空", surface.NewRecorder(800, 600), config.ContentPool{}, testConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewFrameQueue()
			d := event.NewDispatcher()
			e := NewEngine(q, d, nil)
			e.Start(tt.canvas, tt.pool, tt.cfg)

			if e.State() != Stopped {
				t.Errorf("State() = %v, want STOPPED", e.State())
			}
			if q.Pending() != 0 {
				t.Errorf("Pending() = %d, want no frame requested", q.Pending())
			}
			if d.ListenerCount(event.PointerMoved) != 0 {
				t.Error("listeners registered despite failed start")
			}
			if e.Slots() != nil {
				t.Error("Slots() should be nil when not running")
			}
			// 停止一个未启动的引擎也不应出错
			e.Stop()
		})
	}
}

func TestEngine_StartStopLifecycle(t *testing.T) {
	h := newHarness(800, 600)
	h.engine.Start(h.rec, config.DefaultContentPool(), testConfig())

	if h.engine.State() != Running {
		t.Fatalf("State() = %v, want RUNNING", h.engine.State())
	}
	if got := h.events.ListenerCount(event.ViewportResized); got != 1 {
		t.Errorf("resize listeners = %d, want 1", got)
	}
	if got := h.events.ListenerCount(event.PointerMoved); got != 1 {
		t.Errorf("pointer listeners = %d, want 1", got)
	}
	if h.q.Pending() != 1 {
		t.Errorf("Pending() = %d, want first frame requested", h.q.Pending())
	}

	// 运行中再次 Start 被忽略
	h.engine.Start(h.rec, config.DefaultContentPool(), testConfig())
	if h.q.Pending() != 1 || h.events.ListenerCount(event.PointerMoved) != 1 {
		t.Error("second Start should be ignored while running")
	}

	for i := 0; i < 10; i++ {
		h.tick(config.ThemeLight)
	}
	if h.engine.Stats().Frames != 10 {
		t.Errorf("Frames = %d, want 10", h.engine.Stats().Frames)
	}

	h.engine.Stop()
	h.engine.Stop()

	if h.engine.State() != Stopped {
		t.Errorf("State() after Stop = %v, want STOPPED", h.engine.State())
	}
	if h.q.Pending() != 0 {
		t.Errorf("Pending() after Stop = %d, want 0", h.q.Pending())
	}
	if h.events.ListenerCount(event.ViewportResized) != 0 || h.events.ListenerCount(event.PointerMoved) != 0 {
		t.Error("listeners not removed by Stop")
	}

	for i := 0; i < 5; i++ {
		h.tick(config.ThemeLight)
	}
	if len(h.rec.Ops) != 0 {
		t.Errorf("frames drew %d ops after Stop", len(h.rec.Ops))
	}
	if h.engine.Stats().Frames != 10 {
		t.Errorf("Frames after Stop = %d, want still 10", h.engine.Stats().Frames)
	}
}

func TestEngine_RestartAfterStop(t *testing.T) {
	h := newHarness(800, 600)
	h.engine.Start(h.rec, config.DefaultContentPool(), testConfig())
	h.tick(config.ThemeLight)
	h.engine.Stop()

	h.engine.Start(h.rec, config.DefaultContentPool(), testConfig())
	if h.engine.State() != Running {
		t.Fatal("engine should start again after Stop")
	}
	if got := len(h.engine.Slots()); got != testConfig().PoolSize {
		t.Errorf("len(Slots()) = %d, want %d", got, testConfig().PoolSize)
	}
	if h.events.ListenerCount(event.PointerMoved) != 1 {
		t.Error("restart should register exactly one listener")
	}
}

func TestEngine_ResizeKeepsSlots(t *testing.T) {
	h := newHarness(800, 600)
	h.engine.Start(h.rec, config.DefaultContentPool(), testConfig())
	for i := 0; i < 30; i++ {
		h.tick(config.ThemeLight)
	}
	before := h.engine.Slots()

	h.events.Dispatch(event.Event{Type: event.ViewportResized, Data: event.Size{W: 1024, H: 768}})

	if w, hh := h.rec.Size(); w != 1024 || hh != 768 {
		t.Errorf("surface size = %vx%v, want 1024x768", w, hh)
	}
	after := h.engine.Slots()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("slot %d changed on resize: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestEngine_ZeroViewportSkipsFrames(t *testing.T) {
	h := newHarness(0, 0)
	h.engine.Start(h.rec, config.DefaultContentPool(), testConfig())

	for i := 0; i < 5; i++ {
		h.tick(config.ThemeLight)
	}
	st := h.engine.Stats()
	if st.SkippedFrames != 5 || st.Frames != 5 {
		t.Errorf("Stats = %+v, want 5 frames all skipped", st)
	}
	if h.engine.State() != Running || h.q.Pending() != 1 {
		t.Fatal("loop must keep running through zero-size frames")
	}

	h.engine.OnResize(800, 600)
	h.tick(config.ThemeLight)
	if h.rec.Count(surface.OpClear) != 1 {
		t.Errorf("clear ops after recovery = %d, want 1", h.rec.Count(surface.OpClear))
	}
	if h.engine.Stats().SkippedFrames != 5 {
		t.Error("frame after resize should not be skipped")
	}
}

func TestEngine_UnknownIconDoesNotStopOthers(t *testing.T) {
	h := newHarness(800, 600)
	pool := config.ContentPool{Icons: []string{"go", "cobol"}}
	cfg := testConfig()
	cfg.InitialDelay = config.Range{Min: 0, Max: 0}
	cfg.SpawnOffset = config.Range{Min: 0, Max: 1}
	h.engine.Start(h.rec, pool, cfg)

	for i := 0; i < 60; i++ {
		h.tick(config.ThemeLight)
	}
	st := h.engine.Stats()
	if st.UnknownGlyphs != 1 {
		t.Errorf("UnknownGlyphs = %d, want 1", st.UnknownGlyphs)
	}
	if st.Drawn == 0 {
		t.Error("known icons should still be drawn")
	}
	if h.engine.State() != Running {
		t.Error("engine stopped on unknown icon")
	}
}

func TestEngine_ThemeSelectsLabelPalette(t *testing.T) {
	tests := []struct {
		name  string
		theme config.Theme
	}{
		{"亮色主题", config.ThemeLight},
		{"暗色主题", config.ThemeDark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(800, 600)
			pool := config.ContentPool{Labels: []config.Label{{Text: "Rust", Style: config.LabelStyleTech}}}
			cfg := testConfig()
			cfg.InitialDelay = config.Range{Min: 0, Max: 0}
			h.engine.Start(h.rec, pool, cfg)

			h.tick(tt.theme)
			h.tick(tt.theme)

			want := config.PaletteFor(tt.theme).Tech.Text
			texts := 0
			for _, op := range h.rec.Ops {
				if op.Kind == surface.OpText {
					texts++
					if op.Color != want {
						t.Fatalf("text color = %v, want %v", op.Color, want)
					}
				}
			}
			if texts == 0 {
				t.Fatal("no labels drawn")
			}
		})
	}
}

func TestEngine_PointerLastWriteWins(t *testing.T) {
	h := newHarness(800, 600)
	h.engine.Start(h.rec, config.DefaultContentPool(), testConfig())
	h.events.Dispatch(event.Event{Type: event.PointerMoved, Data: event.Point{X: 1, Y: 1}})
	h.events.Dispatch(event.Event{Type: event.PointerMoved, Data: event.Point{X: 300, Y: 200}})

	if p := h.engine.pointer; !p.Present || p.X != 300 || p.Y != 200 {
		t.Errorf("pointer = %+v, want last position (300, 200)", p)
	}
}

// TestEngine_EndToEnd 默认配置下 30 个槽位、800x600 视口、1000 帧固定步长，
// 每一帧检查池大小、透明度范围、深度-速度-尺寸关系、回收位置、延迟门控与绘制透明度，
// 最后要求每个槽位至少回收一次。
func TestEngine_EndToEnd(t *testing.T) {
	for _, seed := range []int64{1, 42, 2024} {
		t.Run(fmt.Sprintf("种子 %d", seed), func(t *testing.T) {
			cfg := config.DefaultFieldConfig()
			cfg.Seed = seed
			runEndToEnd(t, cfg)
		})
	}
}

func runEndToEnd(t *testing.T, cfg config.FieldConfig) {
	t.Helper()
	const (
		width  = 800.0
		height = 600.0
		frames = 1000
	)
	if cfg.PoolSize != 30 || cfg.DepthRange != (config.Range{Min: 0.6, Max: 1.5}) {
		t.Fatalf("default config changed: pool=%d depth=%+v", cfg.PoolSize, cfg.DepthRange)
	}

	h := newHarness(width, height)
	h.engine.Start(h.rec, config.DefaultContentPool(), cfg)
	if h.engine.State() != Running {
		t.Fatal("engine failed to start")
	}

	type recycled struct{ depth, eff, size float64 }
	var samples []recycled

	prev := h.engine.Slots()
	for f := 0; f < frames; f++ {
		elapsed := h.elapsedMs(f)
		h.tick(config.ThemeDark)
		slots := h.engine.Slots()

		// 1. 池大小不变
		if len(slots) != cfg.PoolSize {
			t.Fatalf("frame %d: %d slots, want %d", f, len(slots), cfg.PoolSize)
		}

		for i, s := range slots {
			// 2. 透明度范围
			if s.Alpha < 0 || s.Alpha > cfg.MaxAlpha()+1e-12 {
				t.Fatalf("frame %d slot %d: alpha %v outside [0, %v]", f, i, s.Alpha, cfg.MaxAlpha())
			}
			if !cfg.DepthRange.Contains(s.Depth) {
				t.Fatalf("frame %d slot %d: depth %v outside range", f, i, s.Depth)
			}

			p := prev[i]
			if s.Recycles > p.Recycles {
				// 4. 回收位置
				if s.Y < height {
					t.Fatalf("frame %d slot %d: recycled at y=%v, want below %v", f, i, s.Y, height)
				}
				if s.X < -cfg.OverflowMargin || s.X > width+cfg.OverflowMargin {
					t.Fatalf("frame %d slot %d: recycled at x=%v outside margins", f, i, s.X)
				}
				if s.State != components.SlotPending {
					t.Fatalf("frame %d slot %d: recycled slot state %v, want PENDING", f, i, s.State)
				}
				samples = append(samples, recycled{s.Depth, s.EffectiveSpeed, s.RenderSize})
			} else if p.Delay > elapsed {
				// 5. 延迟门控：位置不变
				if s.X != p.X || s.Y != p.Y {
					t.Fatalf("frame %d slot %d: pending slot moved (%v,%v) -> (%v,%v)", f, i, p.X, p.Y, s.X, s.Y)
				}
			}
		}

		// 6. 绘制透明度不超过 1
		if a := h.rec.MaxAlpha(); a > 1 {
			t.Fatalf("frame %d: draw alpha %v exceeds 1", f, a)
		}
		prev = slots
	}

	// 3. 回收时刻的深度-速度-尺寸关系
	for i := range samples {
		for j := range samples {
			a, b := samples[i], samples[j]
			if a.depth < b.depth && !(a.eff > b.eff && a.size < b.size) {
				t.Fatalf("depth %v < %v but eff %v vs %v, size %v vs %v", a.depth, b.depth, a.eff, b.eff, a.size, b.size)
			}
		}
	}

	// 活性：每个槽位至少回收一次
	for i, s := range h.engine.Slots() {
		if s.Recycles < 1 {
			t.Errorf("slot %d never recycled in %d frames (y=%.1f, delay=%.0f)", i, frames, s.Y, s.Delay)
		}
	}

	st := h.engine.Stats()
	if st.Frames != frames || st.SkippedFrames != 0 {
		t.Errorf("Stats = %+v, want %d frames, none skipped", st, frames)
	}
	if st.Recycles < cfg.PoolSize {
		t.Errorf("total recycles = %d, want >= %d", st.Recycles, cfg.PoolSize)
	}
	if math.IsNaN(prev[0].X) {
		t.Error("position became NaN")
	}
}

// TestEngine_PointerBoostBounded 指针高亮后的绘制透明度不超过 1，
// 透明度与池大小不变量仍然成立
func TestEngine_PointerBoostBounded(t *testing.T) {
	tests := []struct {
		name        string
		follow      bool // 每帧把指针移到最亮的活动槽位上
		wantBoosted bool
	}{
		{"指针停在画面中部", false, false},
		{"指针追随最亮槽位", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			h := newHarness(800, 600)
			h.engine.Start(h.rec, config.DefaultContentPool(), cfg)
			h.engine.OnPointerMove(400, 300)

			boosted := false
			for f := 0; f < 600; f++ {
				if tt.follow {
					best := -1.0
					for _, s := range h.engine.Slots() {
						if s.State == components.SlotActive && s.Alpha > best {
							best = s.Alpha
							h.engine.OnPointerMove(s.X, s.Y)
						}
					}
				}
				h.tick(config.ThemeDark)

				if a := h.rec.MaxAlpha(); a > 1 {
					t.Fatalf("frame %d: draw alpha %v exceeds 1", f, a)
				} else if a > cfg.MaxAlpha()+1e-9 {
					boosted = true
				}
				slots := h.engine.Slots()
				if len(slots) != cfg.PoolSize {
					t.Fatalf("frame %d: %d slots, want %d", f, len(slots), cfg.PoolSize)
				}
				for i, s := range slots {
					if s.Alpha < 0 || s.Alpha > cfg.MaxAlpha()+1e-12 {
						t.Fatalf("frame %d slot %d: alpha %v outside [0, %v]", f, i, s.Alpha, cfg.MaxAlpha())
					}
				}
			}
			if tt.wantBoosted && !boosted {
				t.Error("slot under the pointer was never drawn above its resting alpha")
			}
		})
	}
}

// TestDefaultConfig_WorstCaseCycleFitsScenario 最深、最慢、最晚出发的槽位
// 也能在 1000 帧内淡出回收
func TestDefaultConfig_WorstCaseCycleFitsScenario(t *testing.T) {
	cfg := config.DefaultFieldConfig()
	const height, frames = 600.0, 1000

	delayFrames := cfg.InitialDelay.Max / (float64(frameStep) / float64(time.Millisecond))
	slowest := cfg.SpeedRange.Min / cfg.DepthRange.Max * cfg.FrameMultiplier
	riseFrames := (height + cfg.SpawnOffset.Max - cfg.FadeThreshold) / slowest
	fadeFrames := cfg.MaxAlpha() / cfg.FadeDecrement

	if total := delayFrames + riseFrames + fadeFrames; total >= frames {
		t.Errorf("worst-case cycle = %.0f frames (delay %.0f + rise %.0f + fade %.0f), want < %d",
			total, delayFrames, riseFrames, fadeFrames, frames)
	}
}
