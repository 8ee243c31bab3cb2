// Package field 实现漂浮背景粒子场引擎。
//
// 引擎持有固定大小的槽位池，每帧让槽位上升、摆动、受指针轻微排斥、
// 在顶部淡出，并在离开可见区域后于底部原地回收，形成永不停止的背景动画。
//
// 运行模型为单 goroutine、协作式、帧驱动：宿主通过 FrameQueue.Tick
// 推进帧，输入事件（视口尺寸、指针位置）在两帧之间经 event.Dispatcher 投递。
package field

import (
	"log"
	"time"

	"github.com/decker502/driftfield/internal/glyph"
	"github.com/decker502/driftfield/pkg/components"
	"github.com/decker502/driftfield/pkg/config"
	"github.com/decker502/driftfield/pkg/ecs"
	"github.com/decker502/driftfield/pkg/event"
	"github.com/decker502/driftfield/pkg/surface"
	"github.com/decker502/driftfield/pkg/systems"
	"github.com/decker502/driftfield/pkg/utils"
)

// State 引擎状态
type State int

const (
	Stopped State = iota
	Running
)

// String 返回状态名称
func (s State) String() string {
	if s == Running {
		return "RUNNING"
	}
	return "STOPPED"
}

// SlotView 槽位的只读快照
type SlotView struct {
	ID             ecs.EntityID
	X, Y           float64
	Depth          float64
	Speed          float64
	EffectiveSpeed float64
	RenderSize     float64
	Alpha          float64
	Delay          float64
	State          components.SlotState
	Kind           components.ContentKind
	IconID         string
	Label          string
	Recycles       int
}

// Stats 引擎运行统计
type Stats struct {
	Frames        int
	SkippedFrames int // 视口尺寸无效而跳过的帧
	Recycles      int
	Drawn         int // 最近一帧实际绘制的槽位数
	Pending       int
	Active        int
	Fading        int
	UnknownGlyphs int
}

// Engine 粒子场引擎
type Engine struct {
	sched    Scheduler
	events   *event.Dispatcher
	registry *glyph.Registry

	state   State
	surface surface.Surface
	cfg     config.FieldConfig
	frameID FrameID

	em     *ecs.EntityManager
	slots  []ecs.EntityID
	motion *systems.MotionSystem
	render *systems.RenderSystem

	// 指针单元：输入处理写入，下一帧读取，后写覆盖先写
	pointer systems.Pointer

	started  bool
	startAt  time.Time
	lastAt   time.Time
	frames   int
	skipped  int
	recycles int
	drawn    int
}

// NewEngine 创建引擎
//
// events 可为 nil（宿主直接调用 OnResize/OnPointerMove）；
// registry 为 nil 时使用内置图标集。
func NewEngine(sched Scheduler, events *event.Dispatcher, registry *glyph.Registry) *Engine {
	if registry == nil {
		registry = glyph.Default()
	}
	return &Engine{
		sched:    sched,
		events:   events,
		registry: registry,
	}
}

// Start 获取 2D 上下文并开始帧循环
//
// 上下文获取失败、配置或内容池无效时静默放弃启动（只记录日志），
// 引擎保持 STOPPED。运行中重复调用被忽略。
func (e *Engine) Start(canvas surface.Canvas, pool config.ContentPool, cfg config.FieldConfig) {
	if e.state == Running {
		log.Printf("[FieldEngine] Start ignored: already running")
		return
	}
	if e.sched == nil {
		log.Printf("[FieldEngine] Start skipped: no scheduler")
		return
	}
	if canvas == nil {
		log.Printf("[FieldEngine] Start skipped: no canvas")
		return
	}
	s, ok := canvas.Context2D()
	if !ok || s == nil {
		log.Printf("[FieldEngine] Start skipped: 2D context unavailable")
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("[FieldEngine] Start skipped: invalid config: %v", err)
		return
	}
	if err := pool.Validate(); err != nil {
		log.Printf("[FieldEngine] Start skipped: invalid content pool: %v", err)
		return
	}

	e.surface = s
	e.cfg = cfg
	e.em = ecs.NewEntityManager()
	rng := utils.NewPRNGService(cfg.Seed)
	e.motion = systems.NewMotionSystem(e.em, &e.cfg, pool, rng)
	e.render = systems.NewRenderSystem(e.em, &e.cfg, e.registry)

	w, h := s.Size()
	e.slots = e.motion.SpawnPool(w, h)

	e.pointer = systems.Pointer{}
	e.started = false
	e.frames, e.skipped, e.recycles, e.drawn = 0, 0, 0, 0

	if e.events != nil {
		e.events.Subscribe(event.ViewportResized, e)
		e.events.Subscribe(event.PointerMoved, e)
	}

	e.state = Running
	e.frameID = e.sched.RequestFrame(e.frame)
	log.Printf("[FieldEngine] started: %d slots, %d icons, %d labels, viewport %.0fx%.0f",
		len(e.slots), len(pool.Icons), len(pool.Labels), w, h)
}

// OnEvent 实现 event.Listener
func (e *Engine) OnEvent(ev event.Event) {
	switch ev.Type {
	case event.ViewportResized:
		if size, ok := ev.Data.(event.Size); ok {
			e.OnResize(float64(size.W), float64(size.H))
		}
	case event.PointerMoved:
		if p, ok := ev.Data.(event.Point); ok {
			e.OnPointerMove(p.X, p.Y)
		}
	}
}

// OnResize 调整绘图表面尺寸，不重置任何槽位
func (e *Engine) OnResize(width, height float64) {
	if e.state != Running || e.surface == nil {
		return
	}
	e.surface.Resize(width, height)
}

// OnPointerMove 记录最新指针位置
func (e *Engine) OnPointerMove(x, y float64) {
	e.pointer = systems.Pointer{X: x, Y: y, Present: true}
}

// Stop 取消帧请求、退订事件并释放表面与槽位池；可重复调用
func (e *Engine) Stop() {
	if e.state != Running {
		return
	}
	e.state = Stopped
	e.sched.CancelFrame(e.frameID)
	e.frameID = 0
	if e.events != nil {
		e.events.Unsubscribe(event.ViewportResized, e)
		e.events.Unsubscribe(event.PointerMoved, e)
	}
	e.surface = nil
	e.em.Clear()
	e.em = nil
	e.slots = nil
	e.motion = nil
	e.render = nil
	log.Printf("[FieldEngine] stopped after %d frames", e.frames)
}

// State 返回引擎状态
func (e *Engine) State() State {
	return e.state
}

// frame 执行一帧：计算时间、清屏、逐槽更新与绘制，然后请求下一帧
func (e *Engine) frame(f Frame) {
	if e.state != Running {
		return
	}
	e.frameID = 0

	if !e.started {
		e.started = true
		e.startAt = f.Now
		e.lastAt = f.Now
	}
	dt := f.Now.Sub(e.lastAt).Seconds()
	e.lastAt = f.Now

	w, h := e.surface.Size()
	if !surface.Valid(w, h) {
		// 布局抖动期间的零尺寸视口：跳过本帧但保持循环
		e.skipped++
	} else {
		e.step(f, dt, w, h)
	}
	e.frames++

	if e.state == Running {
		e.frameID = e.sched.RequestFrame(e.frame)
	}
}

func (e *Engine) step(f Frame, dt, w, h float64) {
	fc := systems.FrameContext{
		ElapsedMs: float64(f.Now.Sub(e.startAt)) / float64(time.Millisecond),
		K:         systems.FrameScale(dt, e.cfg.MaxFrameDelta),
		Width:     w,
		Height:    h,
		Pointer:   e.pointer,
	}

	e.surface.ClearRect(0, 0, w, h)

	e.drawn = 0
	for _, id := range e.slots {
		switch e.motion.Step(id, fc) {
		case systems.StepPending:
			continue
		case systems.StepRecycled:
			// 回收后的槽位本帧不绘制
			e.recycles++
			continue
		}
		if e.render.Draw(e.surface, id, fc, f.Theme) {
			e.drawn++
		}
	}
}

// Slots 返回所有槽位的快照（按池顺序）；引擎停止后返回 nil
func (e *Engine) Slots() []SlotView {
	if e.em == nil {
		return nil
	}
	views := make([]SlotView, 0, len(e.slots))
	for _, id := range e.slots {
		pos, ok1 := ecs.GetComponent[*components.PositionComponent](e.em, id)
		fl, ok2 := ecs.GetComponent[*components.FloatComponent](e.em, id)
		content, ok3 := ecs.GetComponent[*components.ContentComponent](e.em, id)
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		views = append(views, SlotView{
			ID:             id,
			X:              pos.X,
			Y:              pos.Y,
			Depth:          fl.Depth,
			Speed:          fl.Speed,
			EffectiveSpeed: systems.EffectiveSpeed(fl.Speed, fl.Depth),
			RenderSize:     systems.RenderSize(content.BaseSize, fl.Depth),
			Alpha:          fl.Alpha,
			Delay:          fl.Delay,
			State:          fl.State,
			Kind:           content.Kind,
			IconID:         content.IconID,
			Label:          content.Label.Text,
			Recycles:       fl.Recycles,
		})
	}
	return views
}

// Stats 返回运行统计
func (e *Engine) Stats() Stats {
	st := Stats{
		Frames:        e.frames,
		SkippedFrames: e.skipped,
		Recycles:      e.recycles,
		Drawn:         e.drawn,
	}
	if e.render != nil {
		st.UnknownGlyphs = e.render.UnknownGlyphs()
	}
	for _, v := range e.Slots() {
		switch v.State {
		case components.SlotActive:
			st.Active++
		case components.SlotFading:
			st.Fading++
		default:
			st.Pending++
		}
	}
	return st
}
