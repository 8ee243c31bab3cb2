package glyph

import (
	"math"

	"github.com/decker502/driftfield/pkg/surface"
)

type builtin struct {
	id                   string
	primary, accent, ink string
	draw                 DrawFunc
}

// 内置品牌图标（与默认内容池一致）
var builtins = []builtin{
	{"go", "#00add8", "#5dc9e2", "#ffffff", drawGo},
	{"rust", "#ce422b", "#000000", "#ffffff", drawRust},
	{"python", "#3776ab", "#ffd43b", "#ffffff", drawPython},
	{"typescript", "#3178c6", "#235a97", "#ffffff", drawTypeScript},
	{"javascript", "#f7df1e", "#c9b512", "#000000", drawJavaScript},
	{"react", "#61dafb", "#20232a", "#ffffff", drawReact},
	{"docker", "#2496ed", "#1d63ed", "#ffffff", drawDocker},
	{"kubernetes", "#326ce5", "#1a4fb8", "#ffffff", drawKubernetes},
	{"git", "#f05032", "#c0392b", "#ffffff", drawGit},
	{"github", "#24292f", "#57606a", "#ffffff", drawGitHub},
	{"linux", "#222222", "#fcc624", "#ffffff", drawLinux},
	{"nodejs", "#5fa04e", "#3c873a", "#ffffff", drawNode},
	{"terraform", "#7b42bc", "#5c4ee5", "#ffffff", drawTerraform},
	{"postgresql", "#336791", "#22496a", "#ffffff", drawPostgres},
	{"redis", "#dc382d", "#a41e11", "#ffffff", drawRedis},
	{"graphql", "#e10098", "#b0007a", "#ffffff", drawGraphQL},
}

func drawGo(s surface.Surface, c Colors) {
	// 速度线
	s.BeginPath()
	line(s, -11, -4, -6, -4)
	line(s, -12, 0, -7, 0)
	line(s, -10, 4, -5, 4)
	stroke(s, c.Primary, 1.6)

	s.SetFillColor(c.Primary)
	s.FillText("GO", 3, 0, 13)
}

func drawRust(s surface.Surface, c Colors) {
	// 齿轮齿
	s.BeginPath()
	for i := 0; i < 10; i++ {
		s.Save()
		s.Rotate(float64(i) * math.Pi / 5)
		s.MoveTo(-1.6, -12)
		s.LineTo(1.6, -12)
		s.LineTo(2, -9)
		s.LineTo(-2, -9)
		s.ClosePath()
		s.Restore()
	}
	surface.Circle(s, 0, 0, 9.5)
	fill(s, c.Primary)

	s.BeginPath()
	surface.Circle(s, 0, 0, 7)
	fill(s, c.Ink)

	s.SetFillColor(c.Primary)
	s.FillText("R", 0, 0.5, 10)
}

func drawPython(s surface.Surface, c Colors) {
	s.BeginPath()
	surface.RoundRect(s, -10, -11, 13, 13, 4)
	fill(s, c.Primary)

	s.BeginPath()
	surface.RoundRect(s, -3, -2, 13, 13, 4)
	fill(s, c.Accent)

	s.BeginPath()
	surface.Circle(s, -6, -7.5, 1.3)
	surface.Circle(s, 6, 7.5, 1.3)
	fill(s, c.Ink)
}

func drawTypeScript(s surface.Surface, c Colors) {
	s.BeginPath()
	surface.RoundRect(s, -11, -11, 22, 22, 3)
	fill(s, c.Primary)

	s.SetFillColor(c.Ink)
	s.FillText("TS", 3, 4.5, 10)
}

func drawJavaScript(s surface.Surface, c Colors) {
	s.BeginPath()
	surface.RoundRect(s, -11, -11, 22, 22, 3)
	fill(s, c.Primary)

	s.SetFillColor(c.Ink)
	s.FillText("JS", 3, 4.5, 10)
}

func drawReact(s surface.Surface, c Colors) {
	s.BeginPath()
	for i := 0; i < 3; i++ {
		s.Save()
		s.Rotate(float64(i) * math.Pi / 3)
		ellipse(s, 0, 0, 11, 4.2)
		s.Restore()
	}
	stroke(s, c.Primary, 1.4)

	s.BeginPath()
	surface.Circle(s, 0, 0, 2.2)
	fill(s, c.Primary)
}

func drawDocker(s surface.Surface, c Colors) {
	// 集装箱
	s.BeginPath()
	boxes := [][2]float64{{-9, -3.8}, {-5, -3.8}, {-1, -3.8}, {3, -3.8}, {-5, -7.8}, {-1, -7.8}, {-1, -11.8}}
	for _, b := range boxes {
		s.MoveTo(b[0], b[1])
		s.LineTo(b[0]+3.4, b[1])
		s.LineTo(b[0]+3.4, b[1]+3.4)
		s.LineTo(b[0], b[1]+3.4)
		s.ClosePath()
	}
	fill(s, c.Primary)

	// 鲸鱼身体
	s.BeginPath()
	s.MoveTo(-11.5, 0.5)
	s.LineTo(9, 0.5)
	s.QuadraticCurveTo(11, -2.5, 12, -1)
	s.QuadraticCurveTo(11.5, 1, 10, 1.5)
	s.QuadraticCurveTo(7, 10, -3, 10)
	s.QuadraticCurveTo(-10.5, 10, -11.5, 0.5)
	s.ClosePath()
	fill(s, c.Primary)

	s.BeginPath()
	surface.Circle(s, -6, 4.5, 1)
	fill(s, c.Ink)
}

func drawKubernetes(s surface.Surface, c Colors) {
	s.BeginPath()
	polygon(s, 0, 0, 11.5, 7, -math.Pi/2)
	fill(s, c.Primary)

	s.BeginPath()
	surface.Circle(s, 0, 0, 5)
	for _, v := range vertices(0, 0, 8, 7, -math.Pi/2) {
		line(s, 0, 0, v[0], v[1])
	}
	stroke(s, c.Ink, 1.6)

	s.BeginPath()
	surface.Circle(s, 0, 0, 1.6)
	fill(s, c.Ink)
}

func drawGit(s surface.Surface, c Colors) {
	s.Save()
	s.Rotate(math.Pi / 4)
	s.BeginPath()
	surface.RoundRect(s, -8.5, -8.5, 17, 17, 2.5)
	fill(s, c.Primary)
	s.Restore()

	s.BeginPath()
	line(s, -3, -5.5, -3, 5.5)
	s.MoveTo(-3, -2.5)
	s.QuadraticCurveTo(3, -2.5, 3.5, 1)
	stroke(s, c.Ink, 1.6)

	s.BeginPath()
	surface.Circle(s, -3, -5.5, 1.7)
	surface.Circle(s, -3, 5.5, 1.7)
	surface.Circle(s, 3.5, 1.5, 1.7)
	fill(s, c.Ink)
}

func drawGitHub(s surface.Surface, c Colors) {
	s.BeginPath()
	surface.Circle(s, 0, 0, 11.5)
	fill(s, c.Primary)

	// 猫头与耳朵
	s.BeginPath()
	ellipse(s, 0, 0.5, 6, 5.2)
	s.MoveTo(-5.5, -1.5)
	s.LineTo(-5.2, -7.5)
	s.LineTo(-1.5, -4.5)
	s.ClosePath()
	s.MoveTo(5.5, -1.5)
	s.LineTo(5.2, -7.5)
	s.LineTo(1.5, -4.5)
	s.ClosePath()
	// 身体
	s.MoveTo(-2.2, 5)
	s.LineTo(2.2, 5)
	s.LineTo(2.6, 11)
	s.LineTo(-2.6, 11)
	s.ClosePath()
	fill(s, c.Ink)
}

func drawLinux(s surface.Surface, c Colors) {
	s.BeginPath()
	ellipse(s, 0, 1, 7.5, 10.5)
	fill(s, c.Primary)

	s.BeginPath()
	ellipse(s, 0, 3, 5, 7)
	surface.Circle(s, -2.3, -5.5, 1.5)
	surface.Circle(s, 2.3, -5.5, 1.5)
	fill(s, c.Ink)

	s.BeginPath()
	ellipse(s, 0, -2.8, 2.4, 1.3)
	ellipse(s, -4.5, 10.8, 3.6, 1.6)
	ellipse(s, 4.5, 10.8, 3.6, 1.6)
	fill(s, c.Accent)
}

func drawNode(s surface.Surface, c Colors) {
	s.BeginPath()
	polygon(s, 0, 0, 11.5, 6, -math.Pi/2)
	fill(s, c.Primary)

	s.SetFillColor(c.Ink)
	s.FillText("JS", 0, 0.5, 9)
}

func drawTerraform(s surface.Surface, c Colors) {
	// 左侧向右下倾斜的平行四边形
	right := func(x, y float64) {
		s.MoveTo(x, y)
		s.LineTo(x+6.5, y+3.8)
		s.LineTo(x+6.5, y+11)
		s.LineTo(x, y+7.2)
		s.ClosePath()
	}
	// 右侧镜像
	left := func(x, y float64) {
		s.MoveTo(x+6.5, y)
		s.LineTo(x, y+3.8)
		s.LineTo(x, y+11)
		s.LineTo(x+6.5, y+7.2)
		s.ClosePath()
	}

	s.BeginPath()
	right(-10.5, -11.5)
	right(-3.25, -7.3)
	right(-3.25, 1.2)
	fill(s, c.Primary)

	s.BeginPath()
	left(4, -7.3)
	fill(s, c.Accent)
}

func drawPostgres(s surface.Surface, c Colors) {
	// 象头与耳朵
	s.BeginPath()
	ellipse(s, 0, -2, 8.5, 8)
	ellipse(s, -7.5, -3, 3.5, 5)
	fill(s, c.Primary)

	// 象鼻
	s.BeginPath()
	s.MoveTo(3, 3)
	s.BezierCurveTo(5, 8, 2, 11, 5.5, 11.5)
	stroke(s, c.Primary, 3)

	s.BeginPath()
	surface.Circle(s, 2.5, -4, 1.3)
	fill(s, c.Ink)

	s.BeginPath()
	ellipse(s, -7.5, -3, 3.5, 5)
	stroke(s, c.Accent, 0.8)
}

func drawRedis(s surface.Surface, c Colors) {
	layer := func(y float64) {
		s.MoveTo(-11.5, y)
		s.LineTo(0, y-4.5)
		s.LineTo(11.5, y)
		s.LineTo(0, y+4.5)
		s.ClosePath()
	}

	s.BeginPath()
	layer(6)
	fill(s, c.Accent)

	s.BeginPath()
	layer(1)
	fill(s, c.Primary)

	s.BeginPath()
	layer(-4)
	fill(s, c.Primary)

	s.BeginPath()
	ellipse(s, -3, -4, 2.6, 1.2)
	polygon(s, 4, -4.5, 1.8, 5, -math.Pi/2)
	fill(s, c.Ink)
}

func drawGraphQL(s surface.Surface, c Colors) {
	hex := vertices(0, 0, 10.5, 6, -math.Pi/2)

	s.BeginPath()
	polygon(s, 0, 0, 10.5, 6, -math.Pi/2)
	// 内接三角形（隔一个顶点相连）
	s.MoveTo(hex[0][0], hex[0][1])
	s.LineTo(hex[2][0], hex[2][1])
	s.LineTo(hex[4][0], hex[4][1])
	s.ClosePath()
	stroke(s, c.Primary, 1.3)

	s.BeginPath()
	for _, v := range hex {
		surface.Circle(s, v[0], v[1], 2)
	}
	fill(s, c.Primary)
}
