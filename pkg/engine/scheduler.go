package engine

import "time"

// FrameFunc 帧回调，now 为触发时的挂钟时间
type FrameFunc func(now time.Time)

// TickSource 帧调度源
//
// 引擎每帧结束时请求下一帧；离开 playing 状态时取消挂起的请求。
type TickSource interface {
	RequestFrame(fn FrameFunc)
	CancelFrame()
}

// FrameScheduler 最多挂起一个帧回调的调度器
//
// 前端（ebiten Update、终端主循环）或测试在合适的时机调用 Fire 触发回调。
// 只在单个 goroutine 中使用。
type FrameScheduler struct {
	pending FrameFunc
}

// NewFrameScheduler 创建调度器
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// RequestFrame 挂起一个回调，覆盖之前未触发的回调
func (s *FrameScheduler) RequestFrame(fn FrameFunc) {
	s.pending = fn
}

// CancelFrame 取消挂起的回调
func (s *FrameScheduler) CancelFrame() {
	s.pending = nil
}

// Pending 是否有挂起的回调
func (s *FrameScheduler) Pending() bool {
	return s.pending != nil
}

// Fire 触发挂起的回调；回调执行前先清除挂起状态，回调内可以再次请求下一帧。
// 没有挂起回调时返回 false。
func (s *FrameScheduler) Fire(now time.Time) bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn(now)
	return true
}
