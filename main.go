// Command driftfield 在桌面窗口中运行漂浮背景粒子场。
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose          输出详细日志
//	--config <path>    外部引擎配置文件（默认使用嵌入的 data/field.yaml）
//	--pool <n>         覆盖槽位数
//	--theme <name>     初始主题 light/dark（默认使用保存的设置）
//	--labels           合并旧版文本标签池
//	--org <name>       拉取 GitHub 组织仓库与成员作为标签
//	--seed <n>         随机种子
//	--no-backdrop      关闭点阵背景
//
// Controls:
//
//	T       - 切换明暗主题（自动保存）
//	F11     - 切换全屏
//	Escape  - 退出
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/driftfield/pkg/app"
	"github.com/decker502/driftfield/pkg/embedded"
)

var (
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag     = flag.String("config", "", "Field config YAML (default: embedded data/field.yaml)")
	poolFlag       = flag.Int("pool", 0, "Override slot pool size")
	themeFlag      = flag.String("theme", "", "Initial theme: light or dark (default: saved setting)")
	labelsFlag     = flag.Bool("labels", false, "Include the legacy text label pool")
	orgFlag        = flag.String("org", "", "GitHub organisation whose repos and members become labels")
	seedFlag       = flag.Int64("seed", 0, "Random seed (0 = config value)")
	noBackdropFlag = flag.Bool("no-backdrop", false, "Disable the dot grid backdrop")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		PoolSize:   *poolFlag,
		Theme:      *themeFlag,
		Labels:     *labelsFlag,
		Org:        *orgFlag,
		Seed:       *seedFlag,
		NoBackdrop: *noBackdropFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "启动失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("driftfield")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(a.Fullscreen())

	err = ebiten.RunGame(a)
	a.Close()
	if err != nil && err != ebiten.Termination {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}
