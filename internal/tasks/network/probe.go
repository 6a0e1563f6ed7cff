package network

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/iceymoss/wiki-fetcher/internal/core"
	"github.com/iceymoss/wiki-fetcher/internal/tasks"
	"github.com/iceymoss/wiki-fetcher/pkg/wikipedia"
)

// ProbeTask 周期性探测上游百科接口是否可达
type ProbeTask struct{}

func init() {
	defaultParams := map[string]any{
		"url":     wikipedia.DefaultAPIBase,
		"timeout": 5,
	}

	tasks.RegisterAuto("sys:wiki_probe", "@every 5m", NewProbeTask, defaultParams)
}

func NewProbeTask() core.Task {
	return &ProbeTask{}
}

func (t *ProbeTask) Identifier() string {
	return "sys:wiki_probe"
}

func (t *ProbeTask) Run(ctx context.Context, params map[string]any) error {
	url, _ := params["url"].(string)
	if url == "" {
		url = wikipedia.DefaultAPIBase
	}
	timeout := 5
	switch v := params["timeout"].(type) {
	case int:
		if v > 0 {
			timeout = v
		}
	case float64:
		if v > 0 {
			timeout = int(v)
		}
	}

	log.Printf("📡 [Probe] Checking %s ...", url)

	client := http.Client{Timeout: time.Duration(timeout) * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("status code %d", resp.StatusCode)
	}

	log.Printf("✅ [Probe] Reachable: %s", url)
	return nil
}
