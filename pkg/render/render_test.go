package render

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/decker502/svgdraw/internal/svgdoc"
	"github.com/decker502/svgdraw/pkg/drawing"
)

var _ drawing.Stroke = (*PathStroke)(nil)

func mustParse(t *testing.T, src string) *svgdoc.Document {
	t.Helper()
	doc, err := svgdoc.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return doc
}

// TestFit 测试等比缩放与居中
func TestFit(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="10 10 100 50"/>`)
	m := Fit(doc, 400, 400)

	if m.A != 4 || m.E != 4 {
		t.Errorf("Scale: got (%v, %v), want (4, 4)", m.A, m.E)
	}
	// 视图左上角映射到 (0, 100)，纵向居中
	p := m.TransformPoint(gg.Pt(10, 10))
	if p.X != 0 || p.Y != 100 {
		t.Errorf("Top-left: got %v, want (0, 100)", p)
	}
	p = m.TransformPoint(gg.Pt(110, 60))
	if p.X != 400 || p.Y != 300 {
		t.Errorf("Bottom-right: got %v, want (400, 300)", p)
	}
}

// TestFit_NoSize 测试无尺寸文档保持原坐标
func TestFit_NoSize(t *testing.T) {
	doc := mustParse(t, `<svg/>`)
	if m := Fit(doc, 100, 100); !m.IsIdentity() {
		t.Errorf("Expected identity, got %+v", m)
	}
}

// TestFromDocument 测试长度与描边宽度随画布缩放
func TestFromDocument(t *testing.T) {
	doc := mustParse(t, `<svg viewBox="0 0 100 100">
		<path id="a" d="M0 0 L30 40" stroke="red" stroke-width="3"/>
		<path id="b" d="M0 0 H10"/>
		<path id="c" d="M0 0 V10" stroke="none"/>
	</svg>`)

	strokes := FromDocument(doc, DefaultStyle(), Fit(doc, 200, 200))
	if len(strokes) != 3 {
		t.Fatalf("Expected 3 strokes, got %d", len(strokes))
	}

	if math.Abs(strokes[0].TotalLength()-100) > 1e-6 {
		t.Errorf("Stroke a length: got %v, want 100", strokes[0].TotalLength())
	}
	if strokes[0].Width != 6 {
		t.Errorf("Stroke a width: got %v, want 6", strokes[0].Width)
	}
	if strokes[0].Color != gg.Hex("#ff0000") {
		t.Errorf("Stroke a color: got %+v", strokes[0].Color)
	}
	if strokes[1].Width != 4 || strokes[1].Color != gg.Hex("#222222") {
		t.Errorf("Stroke b should use the default style, got width=%v color=%+v", strokes[1].Width, strokes[1].Color)
	}
	if strokes[2].Color.A != 0 {
		t.Errorf("Stroke c should be transparent, got %+v", strokes[2].Color)
	}
}

// TestFromDocument_BadPath 测试错误路径数据保留出错前的部分，不影响其他路径
func TestFromDocument_BadPath(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		lengths []float64
	}{
		{
			name: "truncated middle path",
			src: `<svg>
				<path id="a" d="M0 0 H50"/>
				<path id="broken" d="M0 10 H50 L"/>
				<path id="c" d="M0 20 H50"/>
			</svg>`,
			lengths: []float64{50, 50, 50},
		},
		{
			name: "bad token after line",
			src: `<svg>
				<path id="a" d="M0 0 L30 40 X 1 1"/>
				<path id="b" d="M0 0 V10"/>
			</svg>`,
			lengths: []float64{50, 10},
		},
		{
			name:    "no moveto yields empty stroke",
			src:     `<svg><path id="broken" d="L1 1"/><path id="b" d="M0 0 H5"/></svg>`,
			lengths: []float64{0, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strokes := FromDocument(mustParse(t, tt.src), DefaultStyle(), gg.Identity())
			if len(strokes) != len(tt.lengths) {
				t.Fatalf("Strokes: got %d, want %d", len(strokes), len(tt.lengths))
			}
			for i, s := range strokes {
				if math.Abs(s.TotalLength()-tt.lengths[i]) > 1e-6 {
					t.Errorf("Stroke %d length: got %v, want %v", i, s.TotalLength(), tt.lengths[i])
				}
			}
		})
	}
}

// TestResolveColor 测试颜色解析
func TestResolveColor(t *testing.T) {
	tests := []struct {
		in   string
		want gg.RGBA
	}{
		{"#00ff00", gg.Hex("#00ff00")},
		{"Blue", gg.Hex("#0000ff")},
		{"none", gg.RGBA{}},
		{"", gg.Hex("#123456")},
		{"url(#grad)", gg.Hex("#123456")},
	}
	for _, tt := range tests {
		if got := resolveColor(tt.in, "#123456"); got != tt.want {
			t.Errorf("resolveColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

// TestCanvas_RenderPartialStroke 测试虚线偏移只显示路径前缀
func TestCanvas_RenderPartialStroke(t *testing.T) {
	path := gg.NewPath()
	path.MoveTo(10, 10)
	path.LineTo(90, 10)
	stroke := NewPathStroke("line", path, gg.Hex("#000000"), 4, 0)

	seq := drawing.NewSequencer(AsStrokes([]*PathStroke{stroke}))
	if dash, gap := stroke.DashArray(); dash != 80 || gap != 80 {
		t.Errorf("DashArray: got (%v, %v), want (80, 80)", dash, gap)
	}
	seq.SetProgress(0.5)
	if stroke.DashOffset() != 40 {
		t.Errorf("DashOffset: got %v, want 40", stroke.DashOffset())
	}

	canvas := NewCanvas(100, 20, gg.Hex("#ffffff"))
	defer canvas.Close()
	if err := canvas.Render([]*PathStroke{stroke}); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	img := canvas.Image()
	if !isDark(img.At(30, 10)) {
		t.Error("Expected drawn pixel at x=30")
	}
	if isDark(img.At(70, 10)) {
		t.Error("Expected background pixel at x=70")
	}

	// 进度 0：路径被隐藏
	seq.SetProgress(0)
	if stroke.Visible() {
		t.Fatal("Stroke should be hidden at progress 0")
	}
	if err := canvas.Render([]*PathStroke{stroke}); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if isDark(canvas.Image().At(30, 10)) {
		t.Error("Expected background pixel at x=30 when hidden")
	}
}

// TestCanvas_SavePNG 测试保存帧
func TestCanvas_SavePNG(t *testing.T) {
	canvas := NewCanvas(8, 8, gg.Hex("#ffffff"))
	defer canvas.Close()
	if err := canvas.Render(nil); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if err := canvas.SavePNG(filepath.Join(t.TempDir(), "frame.png")); err != nil {
		t.Errorf("SavePNG error: %v", err)
	}
}

func isDark(c interface{ RGBA() (r, g, b, a uint32) }) bool {
	r, g, b, _ := c.RGBA()
	return (r+g+b)/3 < 0x8000
}
