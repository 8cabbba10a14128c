package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"github.com/decker502/svgdraw/internal/svgdoc"
	"github.com/decker502/svgdraw/pkg/config"
	"github.com/decker502/svgdraw/pkg/drawing"
	"github.com/decker502/svgdraw/pkg/game"
	"github.com/decker502/svgdraw/pkg/render"
)

// exportFrames 以步进时钟从进度 0 播放到 1，每帧保存一张 PNG，返回帧数
func exportFrames(doc *svgdoc.Document, cfg *config.ViewerConfig, outDir string) (int, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory '%s': %w", outDir, err)
	}

	width, height := cfg.Window.Width, cfg.Window.Height
	strokes := render.FromDocument(doc, cfg.Style(), render.Fit(doc, width, height))

	clock := game.NewSteppedClock(cfg.Playback.TPS)
	frames := game.NewFrameLoop(clock.Now)

	opts := cfg.DrawingOptions()
	opts.Auto = false
	d, err := drawing.New(opts, frames, frames)
	if err != nil {
		return 0, err
	}
	defer d.Close()
	if err := d.Load(render.AsStrokes(strokes)); err != nil {
		return 0, err
	}

	canvas := render.NewCanvas(width, height, gg.Hex(cfg.Window.Background))
	defer canvas.Close()

	count := 0
	save := func() error {
		if err := canvas.Render(strokes); err != nil {
			return err
		}
		name := filepath.Join(outDir, fmt.Sprintf("frame_%04d.png", count))
		if err := canvas.SavePNG(name); err != nil {
			return err
		}
		count++
		return nil
	}

	if err := d.SetProgress(0); err != nil {
		return 0, err
	}
	if err := d.Play(); err != nil {
		return 0, err
	}
	if err := save(); err != nil {
		return count, err
	}

	for d.Playing() {
		clock.Advance()
		if frames.Flush() == 0 {
			break
		}
		if err := save(); err != nil {
			return count, err
		}
	}

	log.Printf("[svgframes] %d 条路径, %d 帧, 最终进度 %.3f", len(strokes), count, d.Progress())
	return count, nil
}
