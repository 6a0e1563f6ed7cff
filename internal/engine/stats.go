package engine

import (
	"sort"
	"sync"
	"time"
)

// JobStats 任务运行时状态
type JobStats struct {
	Name        string    `json:"name"`
	CronExpr    string    `json:"cron_expr"`
	Status      string    `json:"status"`      // Idle, Running, Error
	LastRunTime string    `json:"last_run"`    // 格式化后的时间
	NextRunTime string    `json:"next_run"`    // 格式化后的时间
	LastResult  string    `json:"last_result"` // 成功或错误信息
	RunCount    int64     `json:"run_count"`
	rawNext     time.Time // 用于内部计算
	Source      string    `json:"source"` // 任务来源 (例如: "SYSTEM", "YAML")
}

// StatManager 状态只通过这里读写
// 任务在 cron 协程里跑，状态接口在请求协程里读，字段更新必须持锁
type StatManager struct {
	stats map[string]*JobStats
	mu    sync.RWMutex
}

func NewStatManager() *StatManager {
	return &StatManager{
		stats: make(map[string]*JobStats),
	}
}

func (m *StatManager) Set(name string, stat *JobStats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[name] = stat
}

// Update 持锁修改一个任务的状态字段
func (m *StatManager) Update(name string, fn func(*JobStats)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stat, ok := m.stats[name]; ok {
		fn(stat)
	}
}

// Get 返回一份状态快照，查不到返回 nil
func (m *StatManager) Get(name string) *JobStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stat, ok := m.stats[name]
	if !ok {
		return nil
	}
	cp := *stat
	return &cp
}

// GetAll 返回全部状态的快照，按名称排序
// 返回副本，调用方序列化时不会和运行中的任务读写同一份数据
func (m *StatManager) GetAll() []*JobStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*JobStats, 0, len(m.stats))
	for _, s := range m.stats {
		cp := *s
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}
