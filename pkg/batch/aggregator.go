package batch

import "sync"

// Aggregator 线程安全的结果收集器
// 每个任务完成时写入一条终态结果，按代码去重，写入是原子的
type Aggregator struct {
	mu      sync.Mutex
	entries ResultMap
}

// NewAggregator 创建结果收集器
func NewAggregator() *Aggregator {
	return &Aggregator{
		entries: make(ResultMap),
	}
}

// Record 记录一条终态结果
// 同一代码只保留第一条，任务按构造保证每个代码只记录一次
func (a *Aggregator) Record(entry ResultEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.entries[entry.Code]; exists {
		return
	}
	a.entries[entry.Code] = entry
}

// Len 返回已记录的结果条数
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// Snapshot 返回当前结果的副本
// 批次被取消时返回的就是这里的部分快照
func (a *Aggregator) Snapshot() ResultMap {
	a.mu.Lock()
	defer a.mu.Unlock()

	snapshot := make(ResultMap, len(a.entries))
	for code, entry := range a.entries {
		snapshot[code] = entry
	}
	return snapshot
}
