// Package main renders the particle field headlessly and writes PNG frames.
//
// Usage:
//
//	go run ./cmd/fieldsnap [flags]
//
// Flags:
//
//	--frames <n>       Number of frames to simulate (default 600)
//	--every <k>        Write every k-th frame (default 60, 0 = only the last)
//	--out <dir>        Output directory (default "snapshots")
//	--width/--height   Viewport size (default 800x600)
//	--fps <n>          Simulated frame rate (default 60)
//	--theme <name>     light or dark
//	--pointer <x,y>    Hold the pointer at a fixed position
//	--labels           Include the legacy text label pool
//	--config <path>    Field config YAML
//	--seed <n>         Random seed (default 1)
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"

	"github.com/decker502/driftfield/pkg/config"
	"github.com/decker502/driftfield/pkg/embedded"
	"github.com/decker502/driftfield/pkg/field"
	"github.com/decker502/driftfield/pkg/render"
)

var (
	framesFlag  = flag.Int("frames", 600, "Number of frames to simulate")
	everyFlag   = flag.Int("every", 60, "Write every k-th frame (0 = only the last frame)")
	outFlag     = flag.String("out", "snapshots", "Output directory")
	widthFlag   = flag.Int("width", 800, "Viewport width")
	heightFlag  = flag.Int("height", 600, "Viewport height")
	fpsFlag     = flag.Int("fps", 60, "Simulated frame rate")
	themeFlag   = flag.String("theme", "light", "Theme: light or dark")
	pointerFlag = flag.String("pointer", "", "Fixed pointer position as x,y")
	labelsFlag  = flag.Bool("labels", false, "Include the legacy text label pool")
	configFlag  = flag.String("config", "", "Field config YAML (default: built-in)")
	seedFlag    = flag.Int64("seed", 1, "Random seed")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fieldsnap: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := embedded.FieldConfig()
	if *configFlag != "" {
		cfg, err = config.LoadFieldConfig(*configFlag)
	}
	if err != nil {
		return err
	}
	cfg.Seed = *seedFlag

	pool, err := embedded.ContentPool(*labelsFlag)
	if err != nil {
		return err
	}
	if *fpsFlag <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", *fpsFlag)
	}
	if err := os.MkdirAll(*outFlag, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	theme := config.ParseTheme(*themeFlag)
	canvas := render.NewCanvasSurface(*widthFlag, *heightFlag)
	queue := field.NewFrameQueue()
	engine := field.NewEngine(queue, nil, nil)
	engine.Start(canvas, pool, cfg)
	if engine.State() != field.Running {
		return fmt.Errorf("engine did not start (see --verbose log)")
	}
	defer engine.Stop()

	if *pointerFlag != "" {
		var x, y float64
		if _, err := fmt.Sscanf(*pointerFlag, "%f,%f", &x, &y); err != nil {
			return fmt.Errorf("invalid --pointer %q: %w", *pointerFlag, err)
		}
		engine.OnPointerMove(x, y)
	}

	step := time.Second / time.Duration(*fpsFlag)
	epoch := time.Unix(0, 0)
	written := 0
	for i := 1; i <= *framesFlag; i++ {
		queue.Tick(epoch.Add(time.Duration(i)*step), theme)

		last := i == *framesFlag
		if (*everyFlag > 0 && i%*everyFlag == 0) || last {
			path := filepath.Join(*outFlag, fmt.Sprintf("frame_%05d.png", i))
			if err := writeFrame(path, canvas, theme); err != nil {
				return err
			}
			written++
		}
	}

	st := engine.Stats()
	fmt.Printf("frames=%d skipped=%d recycles=%d drawn=%d pending=%d active=%d fading=%d unknown=%d png=%d\n",
		st.Frames, st.SkippedFrames, st.Recycles, st.Drawn, st.Pending, st.Active, st.Fading, st.UnknownGlyphs, written)
	return nil
}

// writeFrame 把透明粒子层合成到主题背景上并写出 PNG
func writeFrame(path string, canvas *render.CanvasSurface, theme config.Theme) error {
	layer := canvas.Image()
	if layer == nil {
		return fmt.Errorf("no pixels to write")
	}
	dst := image.NewRGBA(layer.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(config.PaletteFor(theme).Background), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), layer, layer.Bounds().Min, draw.Over)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return render.EncodePNG(f, dst)
}
