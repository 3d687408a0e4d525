package batch

import (
	"fmt"
	"sync"
)

// State 进度快照
type State struct {
	Done  int    // 已完成任务数，单调递增
	Total int    // 批次任务总数
	Last  string // 最近完成的股票代码
}

// String 返回可读的进度描述
func (s State) String() string {
	if s.Last == "" {
		return fmt.Sprintf("%d/%d", s.Done, s.Total)
	}
	return fmt.Sprintf("%d/%d processing: %s", s.Done, s.Total, s.Last)
}

// Progress 线程安全的进度上报器
// 每个任务终态落账后调用一次 Advance，显示层并发读取 Current
// 或消费 Updates 通道；上报失败不影响任务结果
type Progress struct {
	mu      sync.Mutex
	state   State
	updates chan State
}

// NewProgress 创建进度上报器
// buffer > 0 时开启更新通道，通道写满则丢弃该次更新而不阻塞任务
func NewProgress(total int, buffer int) *Progress {
	p := &Progress{
		state: State{Total: total},
	}
	if buffer > 0 {
		p.updates = make(chan State, buffer)
	}
	return p
}

// Advance 原子地递增完成计数并记录最近完成的代码
func (p *Progress) Advance(code string) {
	p.mu.Lock()
	p.state.Done++
	p.state.Last = code
	state := p.state
	p.mu.Unlock()

	if p.updates != nil {
		select {
		case p.updates <- state:
		default:
			// 消费方跟不上时丢弃，进度以 Current 为准
		}
	}
}

// Current 返回当前进度快照
func (p *Progress) Current() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Updates 返回只读的进度更新通道
// 未开启通道时返回 nil
func (p *Progress) Updates() <-chan State {
	return p.updates
}

// Close 关闭更新通道，批次结束后由调度器调用
func (p *Progress) Close() {
	if p.updates != nil {
		close(p.updates)
	}
}
