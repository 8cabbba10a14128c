package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"github.com/decker502/svgdraw/pkg/app"
	"github.com/decker502/svgdraw/pkg/embedded"
)

func main() {
	svgPath := pflag.StringP("svg", "s", "", "SVG file to draw (default: embedded sample)")
	configPath := pflag.StringP("config", "c", "", "viewer config, YAML or .toml (default: embedded data/viewer.yaml)")
	verbose := pflag.BoolP("verbose", "v", false, "enable verbose logging")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: svgdraw [flags] [file.svg]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() > 0 && *svgPath == "" {
		*svgPath = pflag.Arg(0)
	}

	embedded.Init(assetsFS, dataFS)

	viewer, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		SVGPath:    *svgPath,
		ConfigPath: *configPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	cfg := viewer.ViewerConfig()
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Playback.TPS)

	// RunGame 阻塞直到窗口关闭或 Update 返回 ebiten.Termination
	err = ebiten.RunGame(viewer)
	viewer.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
	log.Printf("[Main] 正常退出")
}
