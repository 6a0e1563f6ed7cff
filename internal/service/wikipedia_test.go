package service_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iceymoss/wiki-fetcher/internal/repo"
	"github.com/iceymoss/wiki-fetcher/internal/service"
	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"
	xerrors "github.com/iceymoss/wiki-fetcher/pkg/errors"
	"github.com/iceymoss/wiki-fetcher/pkg/wikipedia"
	"github.com/iceymoss/wiki-fetcher/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubWiki 起一个返回固定响应的 MediaWiki 假后端
func stubWiki(t *testing.T, handler http.HandlerFunc) *wikipedia.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return wikipedia.NewClient(srv.URL, "wiki-fetcher-test/1.0", 2*time.Second)
}

func missingPageJSON() string {
	return `{"query":{"pages":[{"title":"Nope","missing":true}]}}`
}

func articleJSON(title, extract string) string {
	page := fmt.Sprintf(`{
		"title": %q,
		"extract": %q,
		"fullurl": "https://en.wikipedia.org/wiki/Go",
		"categories": [{"title": "Category:Programming languages"}, {"title": "Category:Google software"}],
		"links": [{"title": "Compiler"}, {"title": "Goroutine"}]
	}`, title, extract)
	return `{"query":{"pages":[` + page + `]}}`
}

func goArticleExtract() string {
	intro := strings.Repeat("Go is a statically typed, compiled language designed at Google. ", 4)
	return intro + "\n" +
		"== History ==\n" +
		"Development started in 2007 and the language was announced in 2009.\n" +
		"== Design ==\n" +
		"The language aims for simplicity and fast builds.\n" +
		"=== Syntax ===\n" +
		"Braces and no semicolons."
}

func newWikiService(t *testing.T, client *wikipedia.Client) (*service.WikipediaService, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	return service.NewWikipediaService(client, repo.NewWikiRepo(conn)), conn
}

func TestSearchMissingPage(t *testing.T) {
	client := stubWiki(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, missingPageJSON())
	})
	svc, conn := newWikiService(t, client)

	result := svc.Search(context.Background(), "NoSuchTopic")
	assert.False(t, result.Success)
	assert.Equal(t, `No Wikipedia page found for "NoSuchTopic"`, result.Message)

	// 查不到不写缓存
	var count int64
	require.NoError(t, conn.Model(&objects.WikiContent{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSearchFound(t *testing.T) {
	client := stubWiki(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articleJSON("Go (programming language)", goArticleExtract()))
	})
	svc, _ := newWikiService(t, client)

	result := svc.Search(context.Background(), "golang")
	assert.True(t, result.Success)
	assert.True(t, result.IsExists)
	assert.Equal(t, "Go (programming language)", result.Title)
	assert.LessOrEqual(t, len([]rune(result.Summary)), 300, "检索摘要截到 300 字符")
}

func TestSearchUpstreamError(t *testing.T) {
	client := stubWiki(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	svc, _ := newWikiService(t, client)

	result := svc.Search(context.Background(), "anything")
	assert.False(t, result.Success)
	assert.True(t, strings.HasPrefix(result.Message, "Error searching Wikipedia: "))
}

func TestFetchMissingPage(t *testing.T) {
	client := stubWiki(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, missingPageJSON())
	})
	svc, _ := newWikiService(t, client)

	_, err := svc.Fetch(context.Background(), "NoSuchTopic")
	require.Error(t, err)
	assert.Equal(t, xerr.ErrNotFound, xerrors.Code(err))
	assert.Equal(t, `No Wikipedia page found for "NoSuchTopic"`, xerrors.Message(err))
}

// 正文太短拒绝入库
func TestFetchInsufficientContent(t *testing.T) {
	client := stubWiki(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articleJSON("Stub", "Too short."))
	})
	svc, conn := newWikiService(t, client)

	_, err := svc.Fetch(context.Background(), "Stub")
	require.Error(t, err)
	assert.Equal(t, xerr.ErrInsufficientContent, xerrors.Code(err))
	assert.Equal(t, `Insufficient content for "Stub" on Wikipedia`, xerrors.Message(err))

	var count int64
	require.NoError(t, conn.Model(&objects.WikiContent{}).Count(&count).Error)
	assert.Zero(t, count)
}

// 长度门槛按字符算，不按字节：多字节正文不到 100 字符也要拒绝
func TestFetchInsufficientContentMultibyte(t *testing.T) {
	// 36 个汉字，UTF-8 下超过 100 字节
	extract := strings.Repeat("围棋是一种两人对弈的策略棋类。", 3)
	require.Less(t, len([]rune(extract)), 100)
	require.Greater(t, len(extract), 100)

	client := stubWiki(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articleJSON("围棋", extract))
	})
	svc, conn := newWikiService(t, client)

	_, err := svc.Fetch(context.Background(), "围棋")
	require.Error(t, err)
	assert.Equal(t, xerr.ErrInsufficientContent, xerrors.Code(err))

	var count int64
	require.NoError(t, conn.Model(&objects.WikiContent{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFetchStoresSnapshot(t *testing.T) {
	client := stubWiki(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articleJSON("Go (programming language)", goArticleExtract()))
	})
	svc, conn := newWikiService(t, client)

	result, err := svc.Fetch(context.Background(), "golang")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Go (programming language)", result.Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Go", result.URL)
	assert.Contains(t, result.Content, "# Go (programming language)")
	assert.Contains(t, result.Content, "## Summary")
	assert.Contains(t, result.Content, "### History", "顶级章节应出现在格式化正文里")
	assert.NotContains(t, result.Content, "### Syntax", "三级标题不单独成节")
	assert.Equal(t, []string{"Category:Programming languages", "Category:Google software"}, result.Categories)
	assert.Equal(t, []string{"Compiler", "Goroutine"}, result.References)

	// 抓取成功同时落一行缓存，topic 存请求原文
	cached, err := svc.GetCached(context.Background(), "golang")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "golang", cached.TopicName)
	assert.Equal(t, result.Title, cached.Title)
	assert.Equal(t, result.Content, cached.Content)
	assert.Equal(t, result.Categories, cached.Categories)

	var count int64
	require.NoError(t, conn.Model(&objects.WikiContent{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetCachedMiss(t *testing.T) {
	svc, _ := newWikiService(t, wikipedia.NewClient("http://127.0.0.1:0", "", time.Second))

	cached, err := svc.GetCached(context.Background(), "never-fetched")
	require.NoError(t, err)
	assert.Nil(t, cached, "未命中返回 nil 而不是错误")

	_, err = svc.GetCachedByID(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, "Content not found", xerrors.Message(err))
}

func TestSearchCache(t *testing.T) {
	svc, conn := newWikiService(t, wikipedia.NewClient("http://127.0.0.1:0", "", time.Second))

	rows := []*objects.WikiContent{
		{TopicName: "go", Title: "Go (programming language)", Content: "a"},
		{TopicName: "python", Title: "Python (programming language)", Content: "b"},
		{TopicName: "paris", Title: "Paris", Content: "c"},
	}
	for _, row := range rows {
		require.NoError(t, conn.Create(row).Error)
	}

	hits, err := svc.SearchCache(context.Background(), "programming")
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	all, err := svc.GetAllCached(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
