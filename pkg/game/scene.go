package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the viewer (e.g., the drawing playback scene).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是可选接口，场景被替换或程序退出时释放资源
type Closer interface {
	Close()
}
