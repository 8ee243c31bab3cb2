package app

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/driftfield/pkg/utils"
)

// 点阵背景参数
const (
	gridSpacing  = 40.0
	gridCycle    = 60 * time.Second
	gridDotSize  = 1.0
	gridDotAlpha = 0.18
	// 点阵图层整体透明度：亮色 0.2，暗色 0.1
	gridLayerLight = 0.2
	gridLayerDark  = 0.1

	introDuration = 1200 * time.Millisecond
	glowTexSize   = 256
)

var gridDotColor = color.NRGBA{R: 59, G: 130, B: 246, A: 255}

// glow 是一层锚定在屏幕上沿或下沿的径向光晕，透明度周期性呼吸
type glow struct {
	bottom      bool
	color       color.NRGBA
	light, dark float64 // 光晕中心透明度
	stop        float64 // 渐变到透明的半径比例
	period      time.Duration
	lo, hi      float64

	tex *ebiten.Image
}

// backdrop 绘制粒子层下方的点阵与光晕
type backdrop struct {
	glows []*glow
}

func newBackdrop() *backdrop {
	return &backdrop{glows: []*glow{
		{color: color.NRGBA{R: 59, G: 130, B: 246, A: 255}, light: 0.12, dark: 0.08, stop: 0.6,
			period: 12 * time.Second, lo: 0.2, hi: 0.4},
		{bottom: true, color: color.NRGBA{R: 96, G: 165, B: 250, A: 255}, light: 0.12, dark: 0.08, stop: 0.55,
			period: 16 * time.Second, lo: 0.1, hi: 0.3},
	}}
}

// GridOffset 返回点阵在 elapsed 时刻的平移量
//
// 一个周期内从 0 线性移动到一个网格间距再回到 0。
func GridOffset(elapsed time.Duration) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	return gridSpacing * utils.PingPong(float64(elapsed%gridCycle)/float64(gridCycle))
}

// GridAlpha 返回点的最终透明度；dark 为 0（亮）到 1（暗）的主题混合系数
func GridAlpha(dark float64) float64 {
	layer := utils.Lerp(gridLayerLight, gridLayerDark, utils.Clamp01(dark))
	return gridDotAlpha * layer
}

// IntroAlpha 返回启动淡入系数
func IntroAlpha(elapsed time.Duration) float64 {
	return utils.EaseOutCubic(float64(elapsed) / float64(introDuration))
}

// PulseAlpha 返回呼吸动画在 elapsed 时刻的透明度，在 lo 与 hi 之间缓入缓出往返
func PulseAlpha(elapsed, period time.Duration, lo, hi float64) float64 {
	if period <= 0 {
		return lo
	}
	if elapsed < 0 {
		elapsed = 0
	}
	t := utils.PingPong(float64(elapsed%period) / float64(period))
	return utils.Lerp(lo, hi, utils.EaseInOutCubic(t))
}

func (b *backdrop) draw(screen *ebiten.Image, elapsed time.Duration, dark float64) {
	intro := IntroAlpha(elapsed)
	if intro <= 0 {
		return
	}
	for _, g := range b.glows {
		g.draw(screen, elapsed, dark, intro)
	}
	drawGrid(screen, elapsed, dark, intro)
}

func (g *glow) draw(screen *ebiten.Image, elapsed time.Duration, dark, intro float64) {
	if g.tex == nil {
		g.tex = ebiten.NewImageFromImage(radialTexture(g.stop))
	}
	sb := screen.Bounds()
	w, h := float64(sb.Dx()), float64(sb.Dy())
	if w <= 0 || h <= 0 {
		return
	}
	cx, cy := w/2, 0.0
	if g.bottom {
		cy = h
	}
	// 半径取到最远角的距离
	r := math.Hypot(w/2, h)
	scale := r / (glowTexSize / 2)

	alpha := utils.Lerp(g.light, g.dark, utils.Clamp01(dark)) *
		PulseAlpha(elapsed, g.period, g.lo, g.hi) * intro
	c := g.color
	c.A = uint8(utils.Clamp01(alpha)*255 + 0.5)
	if c.A == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-glowTexSize/2, -glowTexSize/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(c)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.tex, op)
}

// radialTexture 生成白色径向渐变，中心不透明，到 stop 半径处完全透明
func radialTexture(stop float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, glowTexSize, glowTexSize))
	half := float64(glowTexSize) / 2
	for y := 0; y < glowTexSize; y++ {
		for x := 0; x < glowTexSize; x++ {
			d := math.Hypot(float64(x)+0.5-half, float64(y)+0.5-half) / half
			a := utils.Clamp01(1 - d/stop)
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(a*255 + 0.5)})
		}
	}
	return img
}

// drawGrid 绘制缓慢平移的点阵
func drawGrid(screen *ebiten.Image, elapsed time.Duration, dark, intro float64) {
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	off := GridOffset(elapsed)
	c := gridDotColor
	c.A = uint8(GridAlpha(dark)*intro*255 + 0.5)
	if c.A == 0 {
		return
	}

	for y := math.Mod(off, gridSpacing) - gridSpacing/2; y < h; y += gridSpacing {
		for x := math.Mod(off, gridSpacing) - gridSpacing/2; x < w; x += gridSpacing {
			if x < 0 || y < 0 {
				continue
			}
			vector.DrawFilledCircle(screen, float32(x), float32(y), gridDotSize, c, true)
		}
	}
}
