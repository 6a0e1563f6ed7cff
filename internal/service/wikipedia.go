package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iceymoss/wiki-fetcher/internal/repo"
	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"
	xerrors "github.com/iceymoss/wiki-fetcher/pkg/errors"
	"github.com/iceymoss/wiki-fetcher/pkg/logger"
	"github.com/iceymoss/wiki-fetcher/pkg/wikipedia"
	"github.com/iceymoss/wiki-fetcher/pkg/xerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 抓取结果里各段文本的截断长度，对齐缓存行的列容量
const (
	searchSummaryLimit = 300
	cachedSummaryLimit = 500
	sectionStoreLimit  = 1000
	sectionRenderLimit = 500
	overviewLimit      = 1000
	fullTextLimit      = 10000
	minArticleLen      = 100
	formattedSections  = 5
)

// WikipediaService 远端抓取 + 本地缓存
type WikipediaService struct {
	client *wikipedia.Client
	cache  *repo.WikiRepo
}

func NewWikipediaService(client *wikipedia.Client, cache *repo.WikiRepo) *WikipediaService {
	return &WikipediaService{client: client, cache: cache}
}

// SearchResult 轻量检索结果，镜像到响应体
type SearchResult struct {
	Success  bool   `json:"success"`
	IsExists bool   `json:"is_exists"`
	Title    string `json:"title,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Search 查询主题对应的页面是否存在
// 任何失败都转成结构化结果，绝不向上抛错误
func (s *WikipediaService) Search(ctx context.Context, topic string) *SearchResult {
	page, err := s.client.GetPage(ctx, topic)
	if err != nil {
		if errors.Is(err, wikipedia.ErrPageMissing) {
			return &SearchResult{
				Success: false,
				Message: fmt.Sprintf("No Wikipedia page found for %q", topic),
			}
		}
		return &SearchResult{
			Success: false,
			Message: "Error searching Wikipedia: " + err.Error(),
		}
	}
	return &SearchResult{
		Success:  true,
		IsExists: true,
		Title:    page.Title,
		Summary:  cutRunes(page.Summary, searchSummaryLimit),
	}
}

// FetchResult 完整抓取结果
type FetchResult struct {
	Success    bool     `json:"success"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Content    string   `json:"content"`
	Summary    string   `json:"summary"`
	Categories []string `json:"categories"`
	References []string `json:"references"`
	FullText   string   `json:"full_text"`
}

// Fetch 抓取完整页面、生成格式化正文并写入缓存
// 失败都是带错误码的错误值：页面缺失 / 正文过短 / 上游故障
// 缓存写失败只记日志，不影响抓取结果
func (s *WikipediaService) Fetch(ctx context.Context, topic string) (*FetchResult, error) {
	page, err := s.client.GetPage(ctx, topic)
	if err != nil {
		if errors.Is(err, wikipedia.ErrPageMissing) {
			return nil, xerrors.New(xerr.ErrNotFound,
				fmt.Sprintf("No Wikipedia page found for %q", topic))
		}
		return nil, xerrors.Wrap(xerr.ErrUpstream,
			"Error fetching Wikipedia content: "+err.Error(), err)
	}

	if utf8.RuneCountInString(strings.TrimSpace(page.Text)) < minArticleLen {
		return nil, xerrors.New(xerr.ErrInsufficientContent,
			fmt.Sprintf("Insufficient content for %q on Wikipedia", topic))
	}

	// 只收正文非空的顶级章节，单节截到 1000 字符
	var sections []wikipedia.Section
	for _, sec := range page.Sections {
		if strings.TrimSpace(sec.Content) == "" {
			continue
		}
		sections = append(sections, wikipedia.Section{
			Title:   sec.Title,
			Content: cutRunes(sec.Content, sectionStoreLimit),
		})
	}

	fullText := page.Text
	if len([]rune(fullText)) > fullTextLimit {
		fullText = cutRunes(fullText, fullTextLimit) + "..."
	}

	formatted := formatArticle(page, sections)

	// 写缓存：topic 原样入库，不做归一化；失败吞掉只留日志
	cached := &objects.WikiContent{
		TopicName:  topic,
		Title:      page.Title,
		Content:    formatted,
		URL:        page.URL,
		Summary:    cutRunes(page.Summary, cachedSummaryLimit),
		Categories: page.Categories,
		References: page.Links,
	}
	if err := s.cache.Create(ctx, cached); err != nil {
		logger.Error("wiki cache write failed", zap.String("topic", topic), zap.Error(err))
	}

	return &FetchResult{
		Success:    true,
		Title:      page.Title,
		URL:        page.URL,
		Content:    formatted,
		Summary:    page.Summary,
		Categories: page.Categories,
		References: page.Links,
		FullText:   fullText,
	}, nil
}

// formatArticle 组装格式化正文：标题、Summary、Overview、前 5 个章节
func formatArticle(page *wikipedia.Page, sections []wikipedia.Section) string {
	var b strings.Builder
	b.WriteString("\n# " + page.Title + "\n\n")
	b.WriteString("## Summary\n" + page.Summary + "\n\n")
	b.WriteString("## Overview\n" + cutRunes(page.Text, overviewLimit) + "...\n\n")
	b.WriteString("## Key Sections\n")

	for i, sec := range sections {
		if i >= formattedSections {
			break
		}
		b.WriteString("\n### " + sec.Title + "\n")
		b.WriteString(cutRunes(sec.Content, sectionRenderLimit) + "...\n")
	}
	return b.String()
}

// GetCached 按抓取时的主题名精确匹配，未命中返回 nil
func (s *WikipediaService) GetCached(ctx context.Context, topic string) (*objects.WikiContent, error) {
	wc, err := s.cache.FirstByTopicName(ctx, topic)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return wc, nil
}

// GetCachedByID 按 id 取缓存快照
func (s *WikipediaService) GetCachedByID(ctx context.Context, id uint) (*objects.WikiContent, error) {
	wc, err := s.cache.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerrors.New(xerr.ErrNotFound, "Content not found")
		}
		return nil, err
	}
	return wc, nil
}

// SearchCache 缓存标题模糊搜索
func (s *WikipediaService) SearchCache(ctx context.Context, query string) ([]*objects.WikiContent, error) {
	return s.cache.SearchByTitle(ctx, query)
}

// GetAllCached 全部缓存，按抓取时间倒序
func (s *WikipediaService) GetAllCached(ctx context.Context) ([]*objects.WikiContent, error) {
	return s.cache.ListAll(ctx)
}

// cutRunes 按字符数截断（入库和展示的限制都按字符算，不按字节）
func cutRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
