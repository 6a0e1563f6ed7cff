package service_test

import (
	"context"
	"testing"

	"github.com/iceymoss/wiki-fetcher/internal/repo"
	"github.com/iceymoss/wiki-fetcher/internal/service"
	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"
	xerrors "github.com/iceymoss/wiki-fetcher/pkg/errors"
	"github.com/iceymoss/wiki-fetcher/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContentService(t *testing.T) (*service.ContentService, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	return service.NewContentService(repo.NewTopicRepo(conn), repo.NewContentRepo(conn)), conn
}

func seedCatalog(t *testing.T, conn *gorm.DB) {
	t.Helper()
	topics := []*objects.Topic{
		{
			Name:        "Java Programming",
			Description: "Learn Java from basics to advanced",
			Contents: []objects.Content{
				{Title: "Java Basics", Explanation: "Classes and objects"},
				{Title: "Java Collections", Explanation: "Lists, maps and sets"},
			},
		},
		{
			Name:        "Algorithms",
			Description: "Sorting and searching",
			Contents: []objects.Content{
				{Title: "Quicksort", Explanation: "Divide and conquer sorting"},
			},
		},
	}
	for _, topic := range topics {
		require.NoError(t, conn.Create(topic).Error)
	}
}

// 主题列表按名称升序
func TestListTopicsOrder(t *testing.T) {
	svc, conn := newContentService(t)
	seedCatalog(t, conn)

	list, err := svc.ListTopics(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Algorithms", list[0].Name, "名称升序，Algorithms 应排第一")
	assert.Equal(t, "Java Programming", list[1].Name)
}

func TestGetTopicNotFound(t *testing.T) {
	svc, _ := newContentService(t)

	_, err := svc.GetTopic(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, xerr.ErrNotFound, xerrors.Code(err))
	assert.Equal(t, "Topic not found", xerrors.Message(err))
}

// 搜索词至少 2 个字符
func TestSearchTopicsQueryTooShort(t *testing.T) {
	svc, _ := newContentService(t)

	_, err := svc.SearchTopics(context.Background(), "j")
	require.Error(t, err)
	assert.Equal(t, xerr.ErrInvalidInput, xerrors.Code(err))
	assert.Equal(t, "Query must be at least 2 characters long", xerrors.Message(err))
}

// 名称和描述都参与匹配，大小写不敏感
func TestSearchTopics(t *testing.T) {
	svc, conn := newContentService(t)
	seedCatalog(t, conn)

	hits, err := svc.SearchTopics(context.Background(), "JAVA")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Java Programming", hits[0].Name)

	// 描述命中
	hits, err = svc.SearchTopics(context.Background(), "sorting")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Algorithms", hits[0].Name)

	hits, err = svc.SearchTopics(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.Empty(t, hits, "未命中应返回空列表而不是错误")
}

func TestGetTopicContent(t *testing.T) {
	svc, conn := newContentService(t)
	seedCatalog(t, conn)

	var topic objects.Topic
	require.NoError(t, conn.Where("name = ?", "Java Programming").First(&topic).Error)

	got, list, err := svc.GetTopicContent(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Equal(t, topic.Name, got.Name)
	require.Len(t, list, 2)
	// 创建时间升序，先插的在前
	assert.Equal(t, "Java Basics", list[0].Title)
	assert.Equal(t, "Java Collections", list[1].Title)

	_, _, err = svc.GetTopicContent(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, xerr.ErrNotFound, xerrors.Code(err))
}

func TestGetContent(t *testing.T) {
	svc, conn := newContentService(t)
	seedCatalog(t, conn)

	var stored objects.Content
	require.NoError(t, conn.Where("title = ?", "Quicksort").First(&stored).Error)

	content, topic, err := svc.GetContent(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quicksort", content.Title)
	assert.Equal(t, "Algorithms", topic.Name, "内容应连带所属主题返回")

	_, _, err = svc.GetContent(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, "Content not found", xerrors.Message(err))
}

// 跨主题和内容的联合搜索
func TestSearchAll(t *testing.T) {
	svc, conn := newContentService(t)
	seedCatalog(t, conn)

	result, err := svc.SearchAll(context.Background(), "java")
	require.NoError(t, err)
	assert.Len(t, result.Topics, 1)
	assert.Len(t, result.Content, 2, "标题里带 Java 的内容都应命中")

	_, err = svc.SearchAll(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, xerr.ErrInvalidInput, xerrors.Code(err))
}

func TestCounts(t *testing.T) {
	svc, conn := newContentService(t)
	seedCatalog(t, conn)

	topics, err := svc.CountTopics(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, topics)

	contents, err := svc.CountContent(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, contents)
}
