package repo

import (
	"context"
	"strings"

	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"

	"gorm.io/gorm"
)

type WikiRepo struct {
	conn *gorm.DB
}

func NewWikiRepo(conn *gorm.DB) *WikiRepo { return &WikiRepo{conn: conn} }

// Create 新增一条抓取快照，重复抓取同一主题会追加新行
func (r *WikiRepo) Create(ctx context.Context, wc *objects.WikiContent) error {
	return r.conn.WithContext(ctx).Create(wc).Error
}

// Get 按 id 查询
func (r *WikiRepo) Get(ctx context.Context, id uint) (*objects.WikiContent, error) {
	var wc objects.WikiContent
	err := r.conn.WithContext(ctx).First(&wc, id).Error
	if err != nil {
		return nil, err
	}
	return &wc, nil
}

// FirstByTopicName 按抓取时的主题名精确匹配，取第一条
func (r *WikiRepo) FirstByTopicName(ctx context.Context, topicName string) (*objects.WikiContent, error) {
	var wc objects.WikiContent
	err := r.conn.WithContext(ctx).
		Where("topic_name = ?", topicName).
		First(&wc).Error
	if err != nil {
		return nil, err
	}
	return &wc, nil
}

// SearchByTitle 标题的大小写不敏感模糊匹配，新的在前
func (r *WikiRepo) SearchByTitle(ctx context.Context, query string) ([]*objects.WikiContent, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var list []*objects.WikiContent
	err := r.conn.WithContext(ctx).
		Where("LOWER(title) LIKE ?", pattern).
		Order("fetched_at DESC").
		Find(&list).Error
	return list, err
}

// ListAll 全部缓存快照，按抓取时间倒序
func (r *WikiRepo) ListAll(ctx context.Context) ([]*objects.WikiContent, error) {
	var list []*objects.WikiContent
	err := r.conn.WithContext(ctx).Order("fetched_at DESC").Find(&list).Error
	return list, err
}
