package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

// Canvas 把路径的当前描绘状态绘制到 gg.Context
// 每帧调用 Render 重绘整幅画面
type Canvas struct {
	dc         *gg.Context
	background gg.RGBA
}

// NewCanvas 创建 width×height 的画布
func NewCanvas(width, height int, background gg.RGBA) *Canvas {
	return &Canvas{
		dc:         gg.NewContext(width, height),
		background: background,
	}
}

// Width 返回画布宽度
func (c *Canvas) Width() int {
	return c.dc.Width()
}

// Height 返回画布高度
func (c *Canvas) Height() int {
	return c.dc.Height()
}

// Render 清屏并绘制所有可见路径
// 虚线模式为 (length, length)，偏移决定显示出的前缀长度
func (c *Canvas) Render(strokes []*PathStroke) error {
	c.dc.ClearWithColor(c.background)
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineJoin(gg.LineJoinRound)

	for _, s := range strokes {
		if !s.visible || s.Color.A == 0 || s.length == 0 {
			continue
		}

		c.dc.SetRGBA(s.Color.R, s.Color.G, s.Color.B, s.Color.A)
		c.dc.SetLineWidth(s.Width)
		if s.dash[0] > 0 {
			c.dc.SetDash(s.dash[0], s.dash[1])
			c.dc.SetDashOffset(s.offset)
		} else {
			c.dc.ClearDash()
		}

		appendPath(c.dc, s.Path)
		if err := c.dc.Stroke(); err != nil {
			return fmt.Errorf("failed to stroke path %q: %w", s.ID, err)
		}
	}
	return nil
}

// Image 返回当前画面
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG 保存当前画面为 PNG
func (c *Canvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save frame '%s': %w", path, err)
	}
	return nil
}

// Close 释放画布资源
func (c *Canvas) Close() error {
	return c.dc.Close()
}

// appendPath 把 gg.Path 的命令逐一写入当前路径
func appendPath(dc *gg.Context, p *gg.Path) {
	dc.ClearPath()
	p.Iterate(func(verb gg.PathVerb, coords []float64) {
		switch verb {
		case gg.MoveTo:
			dc.MoveTo(coords[0], coords[1])
		case gg.LineTo:
			dc.LineTo(coords[0], coords[1])
		case gg.QuadTo:
			dc.QuadraticTo(coords[0], coords[1], coords[2], coords[3])
		case gg.CubicTo:
			dc.CubicTo(coords[0], coords[1], coords[2], coords[3], coords[4], coords[5])
		case gg.Close:
			dc.ClosePath()
		}
	})
}
