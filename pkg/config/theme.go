package config

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme 明暗主题
//
// 由宿主在每一帧显式传入引擎，引擎本身不读取任何全局状态。
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// String 返回主题名称
func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Toggle 返回相反的主题
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme 解析主题名称，未知名称返回 ThemeLight
func ParseTheme(name string) Theme {
	if name == "dark" {
		return ThemeDark
	}
	return ThemeLight
}

// LabelColors 标签芯片配色
type LabelColors struct {
	Text       color.NRGBA
	Background color.NRGBA
	Border     color.NRGBA
}

// Palette 主题调色板
type Palette struct {
	// Background 页面背景色
	Background color.NRGBA
	// Glow 高亮时图标描边/光晕颜色
	Glow color.NRGBA
	// Code、Tech 两种标签风格的配色
	Code LabelColors
	Tech LabelColors
}

// Label 返回指定风格的标签配色
func (p Palette) Label(style LabelStyle) LabelColors {
	if style == LabelStyleCode {
		return p.Code
	}
	return p.Tech
}

// 站点配色：暗色主题以 #ffeb3b 为强调色，亮色主题以蓝色为强调色
var (
	lightPalette = Palette{
		Background: hexColor("#f5f3ef", 1),
		Glow:       hexColor("#0f172a", 0.85),
		Code: LabelColors{
			Text:       hexColor("#0f172a", 0.5),
			Background: hexColor("#0f172a", 0.03),
			Border:     hexColor("#3b82f6", 0.2),
		},
		Tech: LabelColors{
			Text:       hexColor("#3b82f6", 0.6),
			Background: hexColor("#3b82f6", 0.05),
			Border:     hexColor("#3b82f6", 0.3),
		},
	}

	darkPalette = Palette{
		Background: hexColor("#1a1a1a", 1),
		Glow:       hexColor("#ffeb3b", 0.9),
		Code: LabelColors{
			Text:       hexColor("#ffffff", 0.5),
			Background: hexColor("#ffffff", 0.03),
			Border:     hexColor("#ffeb3b", 0.2),
		},
		Tech: LabelColors{
			Text:       hexColor("#ffeb3b", 0.6),
			Background: hexColor("#ffeb3b", 0.05),
			Border:     hexColor("#ffeb3b", 0.3),
		},
	}
)

// PaletteFor 返回主题对应的调色板
func PaletteFor(t Theme) Palette {
	if t == ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// BlendBackground 在亮/暗背景之间插值，t=0 为亮色，t=1 为暗色
//
// 在 Lab 空间插值，过渡比 RGB 线性插值更均匀。
func BlendBackground(t float64) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	light, _ := colorful.MakeColor(lightPalette.Background)
	dark, _ := colorful.MakeColor(darkPalette.Background)
	r, g, b := light.BlendLab(dark, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func hexColor(hex string, alpha float64) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(fmt.Sprintf("invalid palette color %q: %v", hex, err))
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}
