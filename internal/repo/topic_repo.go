package repo

import (
	"context"
	"strings"

	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"

	"gorm.io/gorm"
)

type TopicRepo struct {
	conn *gorm.DB
}

func NewTopicRepo(conn *gorm.DB) *TopicRepo { return &TopicRepo{conn: conn} }

// List 所有主题，按名称升序
func (r *TopicRepo) List(ctx context.Context) ([]*objects.Topic, error) {
	var list []*objects.Topic
	err := r.conn.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

// Get 按 id 查询，未命中返回 gorm.ErrRecordNotFound
func (r *TopicRepo) Get(ctx context.Context, id uint) (*objects.Topic, error) {
	var topic objects.Topic
	err := r.conn.WithContext(ctx).First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// Search 名称或描述的大小写不敏感模糊匹配，按名称升序
// 用 lower() 兜底，不依赖各引擎的默认排序规则
func (r *TopicRepo) Search(ctx context.Context, query string) ([]*objects.Topic, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var list []*objects.Topic
	err := r.conn.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("name ASC").
		Find(&list).Error
	return list, err
}

// Count 主题总数
func (r *TopicRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn.WithContext(ctx).Model(&objects.Topic{}).Count(&count).Error
	return count, err
}
