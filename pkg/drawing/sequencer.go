package drawing

// Sequencer 按固定顺序把全局进度分配到各条路径
//
// 路径顺序为发现顺序，生命周期内不变；总长度在创建时计算一次。
type Sequencer struct {
	paths  []*PathState
	length float64
}

// NewSequencer 为每个 Stroke 创建 PathState 并累计总长度
// strokes 为空时得到一个长度为 0 的序列，任何进度都不做处理
func NewSequencer(strokes []Stroke) *Sequencer {
	s := &Sequencer{
		paths: make([]*PathState, 0, len(strokes)),
	}
	for _, stroke := range strokes {
		ps := NewPathState(stroke)
		s.paths = append(s.paths, ps)
		s.length += ps.Length()
	}
	return s
}

// Length 返回所有路径的总长度
func (s *Sequencer) Length() float64 {
	return s.length
}

// Paths 返回按顺序排列的路径状态
func (s *Sequencer) Paths() []*PathState {
	return s.paths
}

// SetProgress 根据进度更新每条路径的偏移
//
// desired = 总长度 × progress。依次遍历路径，len 为之前路径的累计长度：
//   - len+L <= desired：完全画出，offset = 0
//   - len < desired < len+L：部分画出，offset = L - (desired - len)
//   - desired <= len：尚未开始，offset = L
//
// len == desired 时归入"尚未开始"。progress 不做截断：
// 大于 1 时全部画出，小于 0 时全部隐藏。
func (s *Sequencer) SetProgress(progress float64) {
	desired := s.length * progress
	var consumed float64
	for _, path := range s.paths {
		switch {
		case consumed+path.length <= desired:
			path.SetOffset(0)
		case consumed < desired:
			path.SetOffset(path.length - (desired - consumed))
		default:
			path.SetOffset(path.length)
		}
		consumed += path.length
	}
}
