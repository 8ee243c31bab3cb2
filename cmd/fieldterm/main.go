// Package main previews the particle field in a terminal.
//
// Each character cell stands for an 8x16 pixel block; icons become small
// coloured blobs and labels are written as text.
//
// Usage:
//
//	go run ./cmd/fieldterm [flags]
//
// Controls:
//
//	Mouse move   - Pointer repulsion
//	t            - Toggle light/dark theme
//	q/Escape     - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/driftfield/pkg/config"
	"github.com/decker502/driftfield/pkg/embedded"
	"github.com/decker502/driftfield/pkg/event"
	"github.com/decker502/driftfield/pkg/field"
	"github.com/decker502/driftfield/pkg/render"
)

var (
	themeFlag   = flag.String("theme", "dark", "Theme: light or dark")
	labelsFlag  = flag.Bool("labels", true, "Include the legacy text label pool")
	poolFlag    = flag.Int("pool", 0, "Override slot pool size")
	fpsFlag     = flag.Int("fps", 30, "Frames per second")
	configFlag  = flag.String("config", "", "Field config YAML (default: built-in)")
	verboseFlag = flag.Bool("verbose", false, "Write logs to fieldterm.log")
)

type preview struct {
	screen tcell.Screen
	term   *render.TermSurface
	queue  *field.FrameQueue
	events *event.Dispatcher
	engine *field.Engine
	theme  config.Theme
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fieldterm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 终端被占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *verboseFlag {
		f, err := os.Create("fieldterm.log")
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := embedded.FieldConfig()
	if *configFlag != "" {
		cfg, err = config.LoadFieldConfig(*configFlag)
	}
	if err != nil {
		return err
	}
	if *poolFlag > 0 {
		cfg.PoolSize = *poolFlag
	}
	pool, err := embedded.ContentPool(*labelsFlag)
	if err != nil {
		return err
	}
	if *fpsFlag <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", *fpsFlag)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	p := &preview{
		screen: screen,
		queue:  field.NewFrameQueue(),
		events: event.NewDispatcher(),
		theme:  config.ParseTheme(*themeFlag),
	}
	cols, rows := screen.Size()
	p.term = render.NewTermSurface(cols, rows)
	p.term.SetBackground(config.PaletteFor(p.theme).Background)

	p.engine = field.NewEngine(p.queue, p.events, nil)
	p.engine.Start(p.term, pool, cfg)
	if p.engine.State() != field.Running {
		return fmt.Errorf("engine did not start (run with --verbose for details)")
	}
	defer p.engine.Stop()

	p.loop(time.Second / time.Duration(*fpsFlag))
	return nil
}

func (p *preview) loop(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(p.screen, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !p.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			p.queue.Tick(now, p.theme)
			p.term.Flush(p.screen)
			p.screen.Show()
		}
	}
}

// pumpEvents 把终端事件转发到 out，直到屏幕关闭或 done 关闭
func pumpEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent 把终端事件转换为引擎事件；返回 false 表示退出
func (p *preview) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 't':
				p.theme = p.theme.Toggle()
				p.term.SetBackground(config.PaletteFor(p.theme).Background)
				log.Printf("[FieldTerm] theme -> %s", p.theme)
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		p.events.Dispatch(event.Event{Type: event.PointerMoved, Data: event.Point{
			X: (float64(x) + 0.5) * render.TermCellWidth,
			Y: (float64(y) + 0.5) * render.TermCellHeight,
		}})

	case *tcell.EventResize:
		cols, rows := ev.Size()
		p.events.Dispatch(event.Event{Type: event.ViewportResized, Data: event.Size{
			W: cols * render.TermCellWidth,
			H: rows * render.TermCellHeight,
		}})
		p.screen.Sync()
	}
	return true
}
