package tasks

import (
	"fmt"
	"log"
	"sync"

	"github.com/iceymoss/wiki-fetcher/internal/core"
)

// 任务来源标识
const (
	SourceSystem = "SYSTEM" // 代码里 RegisterAuto 的
	SourceYAML   = "YAML"   // 配置文件声明的
)

type Scheduler interface {
	AddJob(cronExpr, taskName, uniqueJobName string, params map[string]any, source string) error
}

// ApplyAutoJobs 把代码注册的自动任务挂到调度器上
func ApplyAutoJobs(sched Scheduler) {
	mu.RLock()
	defer mu.RUnlock()

	for _, job := range autoJobs {
		err := sched.AddJob(job.Cron, job.Name, job.Name, job.Params, SourceSystem)
		if err != nil {
			log.Printf("❌ [AutoLoad] Failed to load %s: %v", job.Name, err)
		} else {
			log.Printf("✅ [AutoLoad] Loaded: %s [%s]", job.Name, job.Cron)
		}
	}
}

// AutoJob 定义一个自启动任务
type AutoJob struct {
	Name    string           // 任务唯一标识
	Cron    string           // Cron 表达式
	Creator core.TaskCreator // 构造函数
	Params  map[string]any   // 默认参数
}

var (
	registry = make(map[string]core.TaskCreator) // 普通任务注册（供配置文件引用）
	autoJobs = make([]*AutoJob, 0)               // 自动任务列表（代码直接启动）
	mu       sync.RWMutex
)

// Register 注册任务实现，配置文件里的 jobs 按名字引用
func Register(name string, creator core.TaskCreator) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = creator
}

// RegisterAuto 注册并自动启动，任务文件在 init 里调一次即可
func RegisterAuto(name string, cron string, creator core.TaskCreator, defaultParams map[string]any) {
	mu.Lock()
	defer mu.Unlock()

	// 先进普通池子，手动触发接口也能用
	registry[name] = creator

	autoJobs = append(autoJobs, &AutoJob{
		Name:    name,
		Cron:    cron,
		Creator: creator,
		Params:  defaultParams,
	})
}

func GetTask(name string) (core.Task, error) {
	mu.RLock()
	defer mu.RUnlock()
	creator, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("task implementation '%s' not found", name)
	}
	return creator(), nil
}
