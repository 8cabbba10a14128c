// Package render 使用 gg 矢量库把描绘状态栅格化
//
// PathStroke 实现 drawing.Stroke：长度由 gg.Path.Length 测量，
// 虚线模式与偏移在 Canvas.Render 时通过 gg.Context.SetDash/SetDashOffset 生效。
package render

import (
	"log"
	"strings"

	"github.com/gogpu/gg"

	"github.com/decker502/svgdraw/internal/svgdoc"
	"github.com/decker502/svgdraw/pkg/drawing"
)

// DefaultAccuracy 路径长度测量精度（像素）
const DefaultAccuracy = 0.01

// Style 路径描边的默认样式，SVG 未指定时使用
type Style struct {
	Color    string  // 描边颜色，如 "#222222"
	Width    float64 // 描边宽度（文档坐标）
	Accuracy float64 // 长度测量精度，<=0 使用 DefaultAccuracy
}

// DefaultStyle 返回默认描边样式
func DefaultStyle() Style {
	return Style{
		Color:    "#222222",
		Width:    2,
		Accuracy: DefaultAccuracy,
	}
}

// PathStroke 单条可描绘路径
type PathStroke struct {
	ID    string
	Path  *gg.Path // 已变换到画布坐标
	Color gg.RGBA
	Width float64 // 画布坐标下的描边宽度

	length  float64
	dash    [2]float64
	offset  float64
	visible bool
}

// NewPathStroke 创建路径并测量长度
func NewPathStroke(id string, path *gg.Path, color gg.RGBA, width, accuracy float64) *PathStroke {
	if accuracy <= 0 {
		accuracy = DefaultAccuracy
	}
	return &PathStroke{
		ID:      id,
		Path:    path,
		Color:   color,
		Width:   width,
		length:  path.Length(accuracy),
		visible: true,
	}
}

// TotalLength 返回路径长度
func (s *PathStroke) TotalLength() float64 {
	return s.length
}

// SetDashArray 设置虚线模式
func (s *PathStroke) SetDashArray(dash, gap float64) {
	s.dash = [2]float64{dash, gap}
}

// SetDashOffset 设置虚线偏移
func (s *PathStroke) SetDashOffset(offset float64) {
	s.offset = offset
}

// SetDisplay 切换是否渲染
func (s *PathStroke) SetDisplay(visible bool) {
	s.visible = visible
}

// Visible 返回是否渲染
func (s *PathStroke) Visible() bool {
	return s.visible
}

// DashOffset 返回当前虚线偏移
func (s *PathStroke) DashOffset() float64 {
	return s.offset
}

// DashArray 返回当前虚线模式
func (s *PathStroke) DashArray() (dash, gap float64) {
	return s.dash[0], s.dash[1]
}

// FromDocument 按文档顺序为每个 <path> 创建 PathStroke
// fit 把文档坐标映射到画布坐标（见 Fit），描边宽度按同一比例缩放
// 路径数据有误时保留出错前已解析的部分并记录警告，其余路径照常创建
func FromDocument(doc *svgdoc.Document, style Style, fit gg.Matrix) []*PathStroke {
	scale := fit.A
	strokes := make([]*PathStroke, 0, len(doc.Paths))
	for i, el := range doc.Paths {
		path, err := svgdoc.ParsePathData(el.Data)
		if err != nil {
			log.Printf("[Render] Warning: path #%d (id=%q): %v", i, el.ID, err)
		}

		width := el.StrokeWidth
		if width <= 0 {
			width = style.Width
		}

		strokes = append(strokes, NewPathStroke(
			el.ID,
			path.Transform(fit),
			resolveColor(el.Stroke, style.Color),
			width*scale,
			style.Accuracy,
		))
	}
	return strokes
}

// AsStrokes 转换为 drawing.Stroke 列表，顺序不变
func AsStrokes(strokes []*PathStroke) []drawing.Stroke {
	out := make([]drawing.Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = s
	}
	return out
}

// Fit 计算把文档等比缩放并居中到 width×height 画布的变换（xMidYMid meet）
func Fit(doc *svgdoc.Document, width, height int) gg.Matrix {
	minX, minY := 0.0, 0.0
	docW, docH := doc.Size()
	if doc.ViewBox != nil {
		minX, minY = doc.ViewBox.MinX, doc.ViewBox.MinY
		docW, docH = doc.ViewBox.Width, doc.ViewBox.Height
	}
	if docW <= 0 || docH <= 0 {
		return gg.Identity()
	}

	s := min(float64(width)/docW, float64(height)/docH)
	tx := (float64(width) - docW*s) / 2
	ty := (float64(height) - docH*s) / 2
	return gg.Matrix{
		A: s, B: 0, C: tx - s*minX,
		D: 0, E: s, F: ty - s*minY,
	}
}

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"gray":   "#808080",
	"grey":   "#808080",
	"orange": "#ffa500",
	"purple": "#800080",
	"yellow": "#ffff00",
}

// resolveColor 解析描边颜色；"none" 得到全透明，无法识别时使用默认颜色
func resolveColor(stroke, fallback string) gg.RGBA {
	stroke = strings.ToLower(strings.TrimSpace(stroke))
	switch {
	case stroke == "none":
		return gg.RGBA{}
	case strings.HasPrefix(stroke, "#"):
		return gg.Hex(stroke)
	}
	if hex, ok := namedColors[stroke]; ok {
		return gg.Hex(hex)
	}
	return gg.Hex(fallback)
}
