package drawing

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady 在内容加载之前调用控制操作时返回
	ErrNotReady = errors.New("drawing: component not ready")

	// ErrInvalidDuration 动画时长必须为正数
	ErrInvalidDuration = errors.New("drawing: duration must be positive")
)

// PreconditionError 表示在 Load 之前调用了控制操作
type PreconditionError struct {
	Op string // 被调用的操作，如 "play"
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("drawing: %s called before content was loaded", e.Op)
}

// Is 使 errors.Is(err, ErrNotReady) 成立
func (e *PreconditionError) Is(target error) bool {
	return target == ErrNotReady
}
