package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrPageMissing 页面不存在（与网络/解析错误区分开）
var ErrPageMissing = errors.New("wikipedia: page missing")

const (
	// DefaultAPIBase MediaWiki Action API 入口
	DefaultAPIBase = "https://en.wikipedia.org/w/api.php"

	// 上游没有任何超时约束，客户端必须自带兜底
	DefaultTimeout = 10 * time.Second

	maxCategories = 20
	maxLinks      = 15
)

// Client 封装对 MediaWiki Action API 的只读访问
// 一次 query 请求拿全：正文纯文本、分类、出链、页面元信息
type Client struct {
	httpClient *http.Client
	apiBase    string
	userAgent  string
}

func NewClient(apiBase, userAgent string, timeout time.Duration) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiBase:    apiBase,
		userAgent:  userAgent,
	}
}

// APIBase 返回配置的 API 入口（探活任务用）
func (c *Client) APIBase() string {
	return c.apiBase
}

// Section 正文里的一个顶级章节
type Section struct {
	Title   string
	Content string
}

// Page 一次页面查询的归一化结果
type Page struct {
	Title      string
	Summary    string // 第一个章节之前的引言部分
	Text       string // 完整纯文本
	URL        string
	Sections   []Section
	Categories []string // 保持来源顺序
	Links      []string // 保持来源顺序
}

// queryResponse 只解出需要的字段，formatversion=2
type queryResponse struct {
	Query struct {
		Pages []struct {
			Title      string `json:"title"`
			Missing    bool   `json:"missing"`
			Extract    string `json:"extract"`
			FullURL    string `json:"fullurl"`
			Categories []struct {
				Title string `json:"title"`
			} `json:"categories"`
			Links []struct {
				Title string `json:"title"`
			} `json:"links"`
		} `json:"pages"`
	} `json:"query"`
}

// GetPage 查询一个页面并归一化
// 页面不存在返回 ErrPageMissing，网络和解析问题原样返回错误
func (c *Client) GetPage(ctx context.Context, title string) (*Page, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("redirects", "1")
	params.Set("prop", "extracts|categories|links|info")
	params.Set("explaintext", "1")
	params.Set("inprop", "url")
	params.Set("cllimit", fmt.Sprintf("%d", maxCategories))
	params.Set("pllimit", fmt.Sprintf("%d", maxLinks))
	params.Set("titles", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia: unexpected status %d", resp.StatusCode)
	}

	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("wikipedia: decode response: %w", err)
	}

	if len(decoded.Query.Pages) == 0 {
		return nil, ErrPageMissing
	}
	raw := decoded.Query.Pages[0]
	if raw.Missing {
		return nil, ErrPageMissing
	}

	page := &Page{
		Title: raw.Title,
		Text:  raw.Extract,
		URL:   raw.FullURL,
	}
	page.Summary, page.Sections = splitSections(raw.Extract)

	for i, cat := range raw.Categories {
		if i >= maxCategories {
			break
		}
		page.Categories = append(page.Categories, cat.Title)
	}
	for i, link := range raw.Links {
		if i >= maxLinks {
			break
		}
		page.Links = append(page.Links, link.Title)
	}

	return page, nil
}
