// cmd/svgframes/main.go
// 离线渲染描绘动画，逐帧输出 PNG
//
// 用法：
//
//	go run ./cmd/svgframes -s assets/svg/sample.svg -o frames --fps 30
//
// 输出 frame_0000.png ... frame_NNNN.png，第一帧进度为 0，最后一帧进度为 1。
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/decker502/svgdraw/internal/svgdoc"
	"github.com/decker502/svgdraw/pkg/config"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

func main() {
	svgPath := pflag.StringP("svg", "s", "", "SVG file to draw (required)")
	configPath := pflag.StringP("config", "c", "", "viewer config, YAML or .toml (optional)")
	outDir := pflag.StringP("out", "o", "frames", "output directory")
	fps := pflag.Int("fps", 0, "frames per second (default: playback.tps from config)")
	verbose := pflag.BoolP("verbose", "v", false, "enable verbose logging")
	pflag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if *svgPath == "" && pflag.NArg() > 0 {
		*svgPath = pflag.Arg(0)
	}
	if *svgPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: svgframes -s file.svg [-o dir] [--fps n] [-c viewer.yaml]")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.LoadViewerConfig(*configPath)
	if err != nil {
		fail("配置加载失败", err)
	}
	if *fps > 0 {
		cfg.Playback.TPS = *fps
	}

	doc, err := svgdoc.ParseFile(*svgPath)
	if err != nil {
		fail("SVG 加载失败", err)
	}

	n, err := exportFrames(doc, cfg, *outDir)
	if err != nil {
		fail("导出失败", err)
	}

	fmt.Printf("%s 导出 %s 帧到 %s %s\n",
		okStyle.Render("✓"),
		valueStyle.Render(fmt.Sprint(n)),
		valueStyle.Render(*outDir),
		dimStyle.Render(fmt.Sprintf("(%d fps, %v, %d paths)", cfg.Playback.TPS, cfg.Duration(), len(doc.Paths))))
}

func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", errStyle.Render("✗"), msg, err)
	os.Exit(1)
}
