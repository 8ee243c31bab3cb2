// Package render 提供 surface.Surface 的具体实现。
//
//   - EbitenSurface：Ebitengine 离屏图层，用于桌面窗口
//   - CanvasSurface：tfriedel6/canvas 软件光栅，用于无头快照
//   - TermSurface：tcell 终端字符画，用于 SSH/终端预览
package render

import (
	"bytes"
	"fmt"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	monoOnce   sync.Once
	monoSource *text.GoTextFaceSource
	monoErr    error
)

// MonoFaceSource 返回内置等宽字体（Go Mono）的字体源，只解析一次
func MonoFaceSource() (*text.GoTextFaceSource, error) {
	monoOnce.Do(func() {
		monoSource, monoErr = text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
		if monoErr != nil {
			monoErr = fmt.Errorf("failed to parse Go Mono font: %w", monoErr)
			log.Printf("[Render] %v", monoErr)
		}
	})
	return monoSource, monoErr
}

// faceCache 按字号缓存 GoTextFace
type faceCache struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

func newFaceCache() *faceCache {
	src, err := MonoFaceSource()
	if err != nil {
		return &faceCache{}
	}
	return &faceCache{source: src, faces: make(map[float64]*text.GoTextFace)}
}

// face 返回指定像素字号的字体；字体不可用时返回 nil
func (fc *faceCache) face(size float64) *text.GoTextFace {
	if fc.source == nil || size <= 0 {
		return nil
	}
	if f, ok := fc.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: fc.source, Size: size}
	fc.faces[size] = f
	return f
}
