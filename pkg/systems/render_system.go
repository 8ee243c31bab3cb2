package systems

import (
	"log"
	"math"

	"github.com/decker502/driftfield/internal/glyph"
	"github.com/decker502/driftfield/pkg/components"
	"github.com/decker502/driftfield/pkg/config"
	"github.com/decker502/driftfield/pkg/ecs"
	"github.com/decker502/driftfield/pkg/surface"
)

// 标签芯片尺寸（名义尺寸下，按深度缩放）
const (
	labelPadding    = 10.0
	labelHeight     = 26.0
	labelRadius     = 4.0
	labelBorder     = 1.0
	codeFontSize    = 13.0
	techFontSize    = 14.0
	glowRadiusRatio = 0.62 // 光晕半径 / 图标单位尺寸
)

// RenderSystem 绘制粒子场槽位
//
// 职责范围：
//   - 计算指针邻近高亮值与本帧绘制透明度（只影响渲染，不影响运动）
//   - 图标槽位：按标识符查找注册表中的矢量图标，缩放到渲染尺寸
//   - 标签槽位：圆角芯片 + 边框 + 居中文本，配色取自主题调色板
//
// 未知图标标识符只跳过绘制，每个标识符只记录一次日志。
type RenderSystem struct {
	EntityManager *ecs.EntityManager
	Config        *config.FieldConfig
	Registry      *glyph.Registry

	warned map[string]bool
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, cfg *config.FieldConfig, registry *glyph.Registry) *RenderSystem {
	return &RenderSystem{
		EntityManager: em,
		Config:        cfg,
		Registry:      registry,
		warned:        make(map[string]bool),
	}
}

// ProximityBoost 计算指针邻近高亮值
//
// 距离小于半径时返回 boost * (radius - dist) / radius，否则返回 0。
func ProximityBoost(x, y float64, p Pointer, pc config.PointerConfig) float64 {
	if !p.Present || pc.Radius <= 0 || pc.Boost <= 0 {
		return 0
	}
	dist := math.Hypot(x-p.X, y-p.Y)
	if dist >= pc.Radius {
		return 0
	}
	return pc.Boost * (pc.Radius - dist) / pc.Radius
}

// DrawOpacity 合成本帧绘制透明度，结果限制在 [0, 1]
func DrawOpacity(alpha, boost float64) float64 {
	return math.Max(0, math.Min(1, alpha+boost))
}

// UnknownGlyphs 返回已遇到的未知图标标识符数量
func (rs *RenderSystem) UnknownGlyphs() int {
	return len(rs.warned)
}

// Draw 绘制单个槽位，返回是否实际绘制
func (rs *RenderSystem) Draw(s surface.Surface, id ecs.EntityID, fc FrameContext, theme config.Theme) bool {
	pos, ok := ecs.GetComponent[*components.PositionComponent](rs.EntityManager, id)
	if !ok {
		return false
	}
	fl, ok := ecs.GetComponent[*components.FloatComponent](rs.EntityManager, id)
	if !ok {
		return false
	}
	content, ok := ecs.GetComponent[*components.ContentComponent](rs.EntityManager, id)
	if !ok {
		return false
	}

	boost := ProximityBoost(pos.X, pos.Y, fc.Pointer, rs.Config.Pointer)
	opacity := DrawOpacity(fl.Alpha, boost)
	if opacity <= 0 {
		return false
	}

	switch content.Kind {
	case components.ContentLabel:
		rs.drawLabel(s, pos, fl, content, opacity, theme)
		return true
	default:
		return rs.drawIcon(s, pos, fl, content, opacity, boost, theme)
	}
}

func (rs *RenderSystem) drawIcon(s surface.Surface, pos *components.PositionComponent, fl *components.FloatComponent,
	content *components.ContentComponent, opacity, boost float64, theme config.Theme) bool {
	g, ok := rs.Registry.Lookup(content.IconID)
	if !ok {
		if !rs.warned[content.IconID] {
			rs.warned[content.IconID] = true
			log.Printf("[RenderSystem] 未知图标标识符 %q，跳过绘制", content.IconID)
		}
		return false
	}

	scale := RenderSize(content.BaseSize, fl.Depth) / glyph.UnitSize

	s.Save()
	s.Translate(pos.X, pos.Y)
	s.Scale(scale, scale)

	if boost > 0 && boost >= rs.Config.Pointer.GlowThreshold {
		rs.drawGlow(s, boost, theme)
	}

	s.SetGlobalAlpha(opacity)
	g.Render(s)
	s.Restore()
	return true
}

// drawGlow 高亮处理：暗色主题为强调色光晕，亮色主题为深色描边环
func (rs *RenderSystem) drawGlow(s surface.Surface, boost float64, theme config.Theme) {
	pal := config.PaletteFor(theme)
	r := glyph.UnitSize * glowRadiusRatio

	s.BeginPath()
	surface.Circle(s, 0, 0, r)
	if theme == config.ThemeDark {
		s.SetGlobalAlpha(math.Min(1, boost))
		s.SetFillColor(surface.ScaleAlpha(pal.Glow, 0.35))
		s.Fill()
		return
	}
	s.SetGlobalAlpha(math.Min(1, boost*1.5))
	s.SetStrokeColor(pal.Glow)
	s.SetLineWidth(1.2)
	s.Stroke()
}

func (rs *RenderSystem) drawLabel(s surface.Surface, pos *components.PositionComponent, fl *components.FloatComponent,
	content *components.ContentComponent, opacity float64, theme config.Theme) {
	colors := config.PaletteFor(theme).Label(content.Label.Style)
	fontSize := techFontSize
	if content.Label.Style == config.LabelStyleCode {
		fontSize = codeFontSize
	}

	// 芯片随渲染尺寸缩放：名义尺寸下缩放为 1
	scale := 1.0
	if content.BaseSize > 0 {
		scale = RenderSize(content.BaseSize, fl.Depth) / content.BaseSize
	}

	s.Save()
	s.Translate(pos.X, pos.Y)
	s.Rotate(content.Rotation)
	s.Scale(scale, scale)
	s.SetGlobalAlpha(opacity)

	w := s.MeasureText(content.Label.Text, fontSize) + labelPadding*2
	h := labelHeight

	s.BeginPath()
	surface.RoundRect(s, -w/2, -h/2, w, h, labelRadius)
	s.SetFillColor(colors.Background)
	s.Fill()
	s.SetStrokeColor(colors.Border)
	s.SetLineWidth(labelBorder)
	s.Stroke()

	s.SetFillColor(colors.Text)
	s.FillText(content.Label.Text, 0, 0, fontSize)
	s.Restore()
}
