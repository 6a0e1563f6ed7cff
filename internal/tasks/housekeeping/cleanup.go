package housekeeping

import (
	"context"
	"log"

	"github.com/iceymoss/wiki-fetcher/internal/core"
	"github.com/iceymoss/wiki-fetcher/internal/filegen"
	"github.com/iceymoss/wiki-fetcher/internal/tasks"
)

// CleanupTask 定期清理下载目录里过期的生成文件
// 只在配置文件里声明的 job 或手动触发时执行，请求路径不会触发清理
type CleanupTask struct{}

func init() {
	tasks.Register("housekeeping:downloads_cleanup", NewCleanupTask)
}

func NewCleanupTask() core.Task {
	return &CleanupTask{}
}

func (t *CleanupTask) Identifier() string {
	return "housekeeping:downloads_cleanup"
}

func (t *CleanupTask) Run(ctx context.Context, params map[string]any) error {
	dir := "downloads"
	if v, ok := params["dir"].(string); ok && v != "" {
		dir = v
	}
	days := 7
	// viper 解析出的数字可能是 int 或 float64
	switch v := params["days"].(type) {
	case int:
		if v > 0 {
			days = v
		}
	case float64:
		if v > 0 {
			days = int(v)
		}
	}

	gen := filegen.NewGenerator(dir)
	removed, err := gen.CleanupOldFiles(days)
	if err != nil {
		return err
	}

	log.Printf("🧹 [Cleanup] Removed %d file(s) older than %d day(s) from %s", removed, days, dir)
	return nil
}
