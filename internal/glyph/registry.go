// Package glyph 提供漂浮图标的程序化矢量绘制。
//
// 每个图标是一个绘制过程：在以原点为中心、边长 UnitSize 的方框内，
// 只使用 surface.Surface 的路径、填充和文本操作完成绘制。
// 调用方负责平移到图标位置并按渲染尺寸缩放。
package glyph

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/driftfield/pkg/surface"
)

// UnitSize 图标绘制坐标系的边长
const UnitSize = 24.0

// Colors 图标绘制时使用的颜色
type Colors struct {
	// Primary 品牌主色
	Primary color.NRGBA
	// Accent 品牌辅色
	Accent color.NRGBA
	// Ink 主色之上的文字/细节颜色
	Ink color.NRGBA
}

// DrawFunc 图标绘制过程
type DrawFunc func(s surface.Surface, c Colors)

// Glyph 一个已注册的图标
type Glyph struct {
	ID     string
	Colors Colors
	Draw   DrawFunc
}

// Render 用图标自身的颜色绘制
func (g *Glyph) Render(s surface.Surface) {
	g.Draw(s, g.Colors)
}

// Registry 图标标识符到绘制过程的映射
//
// 查找失败即"未知标识符"路径：调用方跳过该槽位的绘制。
type Registry struct {
	glyphs map[string]*Glyph
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{glyphs: make(map[string]*Glyph)}
}

// Register 注册或覆盖一个图标
func (r *Registry) Register(g *Glyph) {
	if g == nil || g.ID == "" || g.Draw == nil {
		return
	}
	r.glyphs[g.ID] = g
}

// Lookup 按标识符查找图标
func (r *Registry) Lookup(id string) (*Glyph, bool) {
	if r == nil {
		return nil, false
	}
	g, ok := r.glyphs[id]
	return g, ok
}

// IDs 返回所有已注册标识符（按字母序）
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.glyphs))
	for id := range r.glyphs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len 返回已注册图标数量
func (r *Registry) Len() int {
	return len(r.glyphs)
}

// Default 返回包含全部内置品牌图标的注册表
func Default() *Registry {
	r := NewRegistry()
	for _, b := range builtins {
		r.Register(&Glyph{
			ID: b.id,
			Colors: Colors{
				Primary: hex(b.primary),
				Accent:  hex(b.accent),
				Ink:     hex(b.ink),
			},
			Draw: b.draw,
		})
	}
	return r
}

// hex 解析内置图标的品牌色，表是静态的，解析失败属于编程错误
func hex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("invalid glyph color %q: %v", s, err))
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
