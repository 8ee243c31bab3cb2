package field

import (
	"time"

	"github.com/decker502/driftfield/pkg/config"
)

// FrameID 帧请求标识，0 表示无效
type FrameID uint64

// Frame 一次帧回调的输入
//
// Theme 由宿主每帧显式提供，引擎不读取任何全局主题状态。
type Frame struct {
	Now   time.Time
	Theme config.Theme
}

// FrameCallback 帧回调
type FrameCallback func(f Frame)

// Scheduler 一次性帧回调调度器（requestAnimationFrame 语义）
type Scheduler interface {
	RequestFrame(cb FrameCallback) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	cb FrameCallback
}

// FrameQueue 由宿主驱动的帧调度器
//
// 宿主在每次显示刷新时调用 Tick：Tick 只运行调用时已登记的回调，
// 回调内部新登记的请求留到下一次 Tick，因此帧之间严格串行、互不重叠。
// 只能在单个 goroutine 中使用。
type FrameQueue struct {
	nextID  FrameID
	pending []*frameRequest
	running []*frameRequest
	now     time.Time
	ticks   uint64
}

// NewFrameQueue 创建帧调度器
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{nextID: 1}
}

// RequestFrame 登记一次性回调，返回可用于取消的 ID
func (q *FrameQueue) RequestFrame(cb FrameCallback) FrameID {
	if cb == nil {
		return 0
	}
	id := q.nextID
	q.nextID++
	q.pending = append(q.pending, &frameRequest{id: id, cb: cb})
	return id
}

// CancelFrame 取消尚未运行的回调；对未知或已运行的 ID 无效果
func (q *FrameQueue) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// 同一批次中尚未轮到的回调
	for _, r := range q.running {
		if r.id == id {
			r.cb = nil
			return
		}
	}
}

// Tick 运行当前已登记的所有回调，返回实际运行的回调数
func (q *FrameQueue) Tick(now time.Time, theme config.Theme) int {
	q.now = now
	q.ticks++

	q.running, q.pending = q.pending, nil
	frame := Frame{Now: now, Theme: theme}
	ran := 0
	for _, r := range q.running {
		if r.cb == nil {
			continue
		}
		cb := r.cb
		r.cb = nil
		cb(frame)
		ran++
	}
	q.running = nil
	return ran
}

// Now 返回最近一次 Tick 的时间
func (q *FrameQueue) Now() time.Time {
	return q.now
}

// Pending 返回等待下一次 Tick 的回调数量
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Ticks 返回 Tick 被调用的次数
func (q *FrameQueue) Ticks() uint64 {
	return q.ticks
}
