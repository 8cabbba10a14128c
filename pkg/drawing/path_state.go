// Package drawing 实现 SVG 路径的逐笔描绘动画
//
// 核心由两部分组成：
//   - Sequencer：把全局进度 [0,1] 映射为每条路径的虚线偏移（stroke offset），
//     使路径按发现顺序依次被"画出"
//   - Scheduler：按固定时长把时钟时间换算为进度，通过注入的帧回调逐帧驱动 Sequencer
//
// Drawing 是宿主层的封装，负责组装两者并暴露 Play/Pause/Resume/Stop/SetProgress。
package drawing

// Stroke 是可被描绘的路径元素
// 由宿主提供（渲染层实现），Sequencer 只通过这四个能力操作路径
type Stroke interface {
	// TotalLength 返回路径总长度
	TotalLength() float64
	// SetDashArray 设置虚线模式 (dash, gap)
	SetDashArray(dash, gap float64)
	// SetDashOffset 设置虚线偏移
	SetDashOffset(offset float64)
	// SetDisplay 切换路径是否参与渲染
	SetDisplay(visible bool)
}

// PathState 管理单条路径的描绘状态
//
// 长度在创建时测量一次，之后不变。虚线模式固定为 (length, length)，
// 因此只需调整 offset 就能控制可见比例：offset=0 完全显示，offset=length 完全隐藏。
type PathState struct {
	stroke  Stroke
	length  float64
	offset  float64
	visible bool
}

// NewPathState 测量路径长度并设置虚线模式
// 长度为 0 的路径没有可显示的部分，创建时即关闭显示
func NewPathState(stroke Stroke) *PathState {
	ps := &PathState{
		stroke:  stroke,
		length:  stroke.TotalLength(),
		offset:  0,
		visible: true,
	}
	stroke.SetDashArray(ps.length, ps.length)
	ps.setVisible(ps.offset < ps.length)
	return ps
}

// Length 返回路径长度
func (ps *PathState) Length() float64 {
	return ps.length
}

// Offset 返回当前虚线偏移
func (ps *PathState) Offset() float64 {
	return ps.offset
}

// Visible 返回路径当前是否可见（offset < length）
func (ps *PathState) Visible() bool {
	return ps.visible
}

// Revealed 返回已显示的长度
func (ps *PathState) Revealed() float64 {
	return ps.length - ps.offset
}

// SetOffset 更新虚线偏移
// 偏移未变化时不产生任何样式写入
func (ps *PathState) SetOffset(offset float64) {
	if offset == ps.offset {
		return
	}
	ps.offset = offset
	ps.setVisible(ps.offset < ps.length)
	ps.stroke.SetDashOffset(ps.offset)
}

// setVisible 完全隐藏的路径直接关闭显示，避免渲染零长度虚线
func (ps *PathState) setVisible(visible bool) {
	if visible == ps.visible {
		return
	}
	ps.visible = visible
	ps.stroke.SetDisplay(visible)
}
