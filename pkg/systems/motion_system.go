package systems

import (
	"math"

	"github.com/decker502/driftfield/pkg/components"
	"github.com/decker502/driftfield/pkg/config"
	"github.com/decker502/driftfield/pkg/ecs"
	"github.com/decker502/driftfield/pkg/utils"
)

// 标签芯片的最大倾斜角（±3°）
const labelTiltMax = 3 * math.Pi / 180

// 向下漂移速度相对上升速度的上限
const maxDownDrift = 0.8

// StepResult reports what MotionSystem.Step did to a slot.
type StepResult int

const (
	// StepPending means the slot's delay has not elapsed; nothing changed.
	StepPending StepResult = iota
	// StepMoved means the slot advanced and should be drawn this frame.
	StepMoved
	// StepRecycled means the slot was reinitialised and must not be drawn
	// this frame.
	StepRecycled
)

// MotionSystem owns slot kinematics: spawning, per-frame movement, fading and
// in-place recycling. It never creates or destroys entities after SpawnPool.
//
// Follows ECS zero-coupling principle: communicates only through EntityManager.
type MotionSystem struct {
	EntityManager *ecs.EntityManager
	Config        *config.FieldConfig
	Pool          config.ContentPool
	RNG           *utils.PRNGService
}

// NewMotionSystem creates a MotionSystem.
func NewMotionSystem(em *ecs.EntityManager, cfg *config.FieldConfig, pool config.ContentPool, rng *utils.PRNGService) *MotionSystem {
	return &MotionSystem{
		EntityManager: em,
		Config:        cfg,
		Pool:          pool,
		RNG:           rng,
	}
}

// SpawnPool creates Config.PoolSize slot entities and places each one below
// the bottom edge with a staggered initial delay.
func (ms *MotionSystem) SpawnPool(width, height float64) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, ms.Config.PoolSize)
	for i := 0; i < ms.Config.PoolSize; i++ {
		id := ms.EntityManager.CreateEntity()
		ecs.AddComponent(ms.EntityManager, id, &components.PositionComponent{})
		ecs.AddComponent(ms.EntityManager, id, &components.FloatComponent{})
		ecs.AddComponent(ms.EntityManager, id, &components.ContentComponent{})
		ms.reset(id, width, height, ms.RNG.RandomInRange(ms.Config.InitialDelay.Min, ms.Config.InitialDelay.Max))
		ids = append(ids, id)
	}
	return ids
}

// Step advances one slot by one frame.
//
// Order: delay gate, rise, sway and centre pull, pointer drift, fade, recycle.
func (ms *MotionSystem) Step(id ecs.EntityID, fc FrameContext) StepResult {
	pos, ok := ecs.GetComponent[*components.PositionComponent](ms.EntityManager, id)
	if !ok {
		return StepPending
	}
	fl, ok := ecs.GetComponent[*components.FloatComponent](ms.EntityManager, id)
	if !ok {
		return StepPending
	}

	if fc.ElapsedMs < fl.Delay {
		fl.State = components.SlotPending
		return StepPending
	}
	if fl.State == components.SlotPending {
		fl.State = components.SlotActive
	}

	cfg := ms.Config
	k := fc.K

	// 上升
	pos.Y -= EffectiveSpeed(fl.Speed, fl.Depth) * cfg.FrameMultiplier * k

	// 摆动 + 向水平中心回拉
	pos.X += math.Sin(fc.ElapsedMs*cfg.SwayFrequency+fl.Phase) * cfg.SwayAmplitude * fl.Depth * k
	pos.X += (fc.Width/2 - pos.X) * cfg.CenterPull * k

	ms.applyDrift(pos, fl, fc)

	// 淡出区：透明度单调递减
	if pos.Y < cfg.FadeThreshold {
		fl.Alpha = math.Max(0, fl.Alpha-cfg.FadeDecrement*k)
		fl.State = components.SlotFading
	}

	if fl.Alpha <= 0 || pos.Y < -cfg.TopMargin {
		ms.Recycle(id, fc)
		return StepRecycled
	}
	return StepMoved
}

// applyDrift pushes the slot away from the pointer. The drift velocity is
// clamped to Pointer.MaxDrift and decays by Pointer.DriftDamping per frame.
func (ms *MotionSystem) applyDrift(pos *components.PositionComponent, fl *components.FloatComponent, fc FrameContext) {
	p := ms.Config.Pointer
	if p.RepelStrength <= 0 && fl.DriftX == 0 && fl.DriftY == 0 {
		return
	}
	k := fc.K

	if fc.Pointer.Present && p.RepelStrength > 0 {
		dx := pos.X - fc.Pointer.X
		dy := pos.Y - fc.Pointer.Y
		dist := math.Hypot(dx, dy)
		if dist > 0 && dist < p.Radius {
			force := (p.Radius - dist) / p.Radius
			fl.DriftX += dx / dist * force * p.RepelStrength * k
			fl.DriftY += dy / dist * force * p.RepelStrength * k
		}
	}

	if mag := math.Hypot(fl.DriftX, fl.DriftY); mag > p.MaxDrift {
		if p.MaxDrift <= 0 {
			fl.DriftX, fl.DriftY = 0, 0
		} else {
			fl.DriftX = fl.DriftX / mag * p.MaxDrift
			fl.DriftY = fl.DriftY / mag * p.MaxDrift
		}
	}
	// 向下的漂移不能抵消上升，静止的指针不会把槽位困在原地
	if maxDown := maxDownDrift * EffectiveSpeed(fl.Speed, fl.Depth) * ms.Config.FrameMultiplier; fl.DriftY > maxDown {
		fl.DriftY = maxDown
	}

	pos.X += fl.DriftX * k
	pos.Y += fl.DriftY * k

	decay := math.Pow(p.DriftDamping, k)
	fl.DriftX *= decay
	fl.DriftY *= decay
	if math.Abs(fl.DriftX) < 1e-4 && math.Abs(fl.DriftY) < 1e-4 {
		fl.DriftX, fl.DriftY = 0, 0
	}
}

// Recycle reinitialises a slot in place: fresh depth, speed, phase and
// content, placed below the bottom edge with a recycle delay.
func (ms *MotionSystem) Recycle(id ecs.EntityID, fc FrameContext) {
	delay := fc.ElapsedMs + ms.RNG.RandomInRange(ms.Config.RecycleDelay.Min, ms.Config.RecycleDelay.Max)
	ms.reset(id, fc.Width, fc.Height, delay)
	if fl, ok := ecs.GetComponent[*components.FloatComponent](ms.EntityManager, id); ok {
		fl.Recycles++
	}
}

func (ms *MotionSystem) reset(id ecs.EntityID, width, height, delay float64) {
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](ms.EntityManager, id)
	fl, ok2 := ecs.GetComponent[*components.FloatComponent](ms.EntityManager, id)
	content, ok3 := ecs.GetComponent[*components.ContentComponent](ms.EntityManager, id)
	if !ok1 || !ok2 || !ok3 {
		return
	}
	cfg := ms.Config

	depth := ms.RNG.RandomInRange(cfg.DepthRange.Min, cfg.DepthRange.Max)
	fl.Depth = depth
	fl.Speed = SpeedForDepth(depth, cfg.DepthRange, cfg.SpeedRange)
	fl.Phase = ms.RNG.RandomInRange(0, 2*math.Pi)
	fl.Alpha = InitialAlpha(depth, cfg.AlphaBase)
	fl.Delay = delay
	fl.DriftX, fl.DriftY = 0, 0
	fl.State = components.SlotPending

	pos.X = ms.RNG.RandomInRange(-cfg.OverflowMargin, width+cfg.OverflowMargin)
	pos.Y = height + ms.RNG.RandomInRange(cfg.SpawnOffset.Min, cfg.SpawnOffset.Max)

	ms.pickContent(content)
}

// pickContent draws a uniformly random entry from the combined icon and label
// pool, so the content kind may change on every recycle.
func (ms *MotionSystem) pickContent(content *components.ContentComponent) {
	content.BaseSize = ms.Config.BaseSize
	content.Rotation = 0

	n := ms.Pool.Len()
	if n == 0 {
		content.Kind = components.ContentIcon
		content.IconID = ""
		content.Label = config.Label{}
		return
	}
	idx := ms.RNG.Intn(n)
	if idx < len(ms.Pool.Icons) {
		content.Kind = components.ContentIcon
		content.IconID = ms.Pool.Icons[idx]
		content.Label = config.Label{}
		return
	}
	content.Kind = components.ContentLabel
	content.IconID = ""
	content.Label = ms.Pool.Labels[idx-len(ms.Pool.Icons)]
	content.Rotation = ms.RNG.RandomInRange(-labelTiltMax, labelTiltMax)
}

// SpeedForDepth maps depth linearly onto the speed range, deepest slot getting
// the slowest base speed.
func SpeedForDepth(depth float64, depthRange, speedRange config.Range) float64 {
	t := 0.0
	if span := depthRange.Span(); span > 0 {
		t = (depth - depthRange.Min) / span
	}
	t = math.Max(0, math.Min(1, t))
	return speedRange.Max - speedRange.Span()*t
}

// EffectiveSpeed returns the per-frame rise speed: speed / depth.
func EffectiveSpeed(speed, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return speed / depth
}

// RenderSize returns baseSize * depth.
func RenderSize(baseSize, depth float64) float64 {
	return baseSize * depth
}

// InitialAlpha returns min(1, alphaBase * depth).
func InitialAlpha(depth, alphaBase float64) float64 {
	return math.Max(0, math.Min(1, alphaBase*depth))
}
