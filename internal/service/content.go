package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/iceymoss/wiki-fetcher/internal/repo"
	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"
	xerrors "github.com/iceymoss/wiki-fetcher/pkg/errors"
	"github.com/iceymoss/wiki-fetcher/pkg/xerr"

	"gorm.io/gorm"
)

// 搜索词最少字符数
const minQueryLen = 2

// ContentService 目录读侧查询：主题、内容、搜索、计数
type ContentService struct {
	topics   *repo.TopicRepo
	contents *repo.ContentRepo
}

func NewContentService(topics *repo.TopicRepo, contents *repo.ContentRepo) *ContentService {
	return &ContentService{topics: topics, contents: contents}
}

// ListTopics 全部主题，按名称升序
func (s *ContentService) ListTopics(ctx context.Context) ([]*objects.Topic, error) {
	return s.topics.List(ctx)
}

// GetTopic 按 id 查主题
func (s *ContentService) GetTopic(ctx context.Context, id uint) (*objects.Topic, error) {
	topic, err := s.topics.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerrors.New(xerr.ErrNotFound, "Topic not found")
		}
		return nil, err
	}
	return topic, nil
}

// SearchTopics 按名称或描述模糊搜索，搜索词至少 2 个字符
func (s *ContentService) SearchTopics(ctx context.Context, query string) ([]*objects.Topic, error) {
	if utf8.RuneCountInString(query) < minQueryLen {
		return nil, xerrors.New(xerr.ErrInvalidInput, "Query must be at least 2 characters long")
	}
	return s.topics.Search(ctx, query)
}

// GetTopicContent 某主题下全部内容（按创建时间升序）
// 主题不存在报 NotFound，主题存在但没有内容返回空列表
func (s *ContentService) GetTopicContent(ctx context.Context, topicID uint) (*objects.Topic, []*objects.Content, error) {
	topic, err := s.GetTopic(ctx, topicID)
	if err != nil {
		return nil, nil, err
	}
	list, err := s.contents.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, nil, err
	}
	return topic, list, nil
}

// GetContent 按 id 查内容，连带其所属主题
func (s *ContentService) GetContent(ctx context.Context, id uint) (*objects.Content, *objects.Topic, error) {
	content, err := s.contents.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, xerrors.New(xerr.ErrNotFound, "Content not found")
		}
		return nil, nil, err
	}
	topic, err := s.topics.Get(ctx, content.TopicID)
	if err != nil {
		return nil, nil, err
	}
	return content, topic, nil
}

// SearchAllResult 跨主题和内容的搜索结果
type SearchAllResult struct {
	Topics  []*objects.Topic   `json:"topics"`
	Content []*objects.Content `json:"content"`
}

// SearchAll 同时搜主题（名称/描述）和内容（标题/说明）
func (s *ContentService) SearchAll(ctx context.Context, query string) (*SearchAllResult, error) {
	if utf8.RuneCountInString(query) < minQueryLen {
		return nil, xerrors.New(xerr.ErrInvalidInput, "Query must be at least 2 characters long")
	}
	topics, err := s.topics.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	contents, err := s.contents.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return &SearchAllResult{Topics: topics, Content: contents}, nil
}

// CountTopics 主题总数
func (s *ContentService) CountTopics(ctx context.Context) (int64, error) {
	return s.topics.Count(ctx)
}

// CountContent 内容总数
func (s *ContentService) CountContent(ctx context.Context) (int64, error) {
	return s.contents.Count(ctx)
}
