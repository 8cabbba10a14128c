//go:build !mobile

package scenes

import "testing"

// TestDrawingScene_HelpLine 测试桌面与触摸输入下的操作提示
func TestDrawingScene_HelpLine(t *testing.T) {
	tests := []struct {
		name      string
		emulate   string
		touchSeen bool
		want      string
	}{
		{"desktop mouse", "", false, helpText},
		{"touch seen on desktop", "", true, touchHelpText},
		{"emulated mobile", "1", false, touchHelpText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SVGDRAW_MOBILE_EMULATE", tt.emulate)
			scene, _, _ := newTestScene(t, 1)
			scene.touchSeen = tt.touchSeen

			if got := scene.helpLine(); got != tt.want {
				t.Errorf("helpLine: got %q, want %q", got, tt.want)
			}
		})
	}
}
