package repo

import (
	"context"
	"strings"

	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"

	"gorm.io/gorm"
)

type ContentRepo struct {
	conn *gorm.DB
}

func NewContentRepo(conn *gorm.DB) *ContentRepo { return &ContentRepo{conn: conn} }

// ListByTopic 某主题下全部内容，按创建时间升序
func (r *ContentRepo) ListByTopic(ctx context.Context, topicID uint) ([]*objects.Content, error) {
	var list []*objects.Content
	err := r.conn.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

// Get 按 id 查询内容
func (r *ContentRepo) Get(ctx context.Context, id uint) (*objects.Content, error) {
	var content objects.Content
	err := r.conn.WithContext(ctx).First(&content, id).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// Search 标题或说明文字的大小写不敏感模糊匹配
func (r *ContentRepo) Search(ctx context.Context, query string) ([]*objects.Content, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var list []*objects.Content
	err := r.conn.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(explanation) LIKE ?", pattern, pattern).
		Find(&list).Error
	return list, err
}

// Count 内容总数
func (r *ContentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn.WithContext(ctx).Model(&objects.Content{}).Count(&count).Error
	return count, err
}
