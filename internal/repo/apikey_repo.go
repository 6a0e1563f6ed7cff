package repo

import (
	"context"

	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"

	"gorm.io/gorm"
)

type APIKeyRepo struct {
	conn *gorm.DB
}

func NewAPIKeyRepo(conn *gorm.DB) *APIKeyRepo { return &APIKeyRepo{conn: conn} }

// Create 新建 key，key 列的唯一约束由数据库兜底
func (r *APIKeyRepo) Create(ctx context.Context, key *objects.APIKey) error {
	return r.conn.WithContext(ctx).Create(key).Error
}

// FindActive 按令牌精确匹配且 is_active 为真
func (r *APIKeyRepo) FindActive(ctx context.Context, token string) (*objects.APIKey, error) {
	var key objects.APIKey
	err := r.conn.WithContext(ctx).
		Where("`key` = ? AND is_active = ?", token, true).
		First(&key).Error
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// Save 回写整行（用于计数更新，有意不加事务，见 service 层说明）
func (r *APIKeyRepo) Save(ctx context.Context, key *objects.APIKey) error {
	return r.conn.WithContext(ctx).Save(key).Error
}

// List 全部 key
func (r *APIKeyRepo) List(ctx context.Context) ([]*objects.APIKey, error) {
	var list []*objects.APIKey
	err := r.conn.WithContext(ctx).Find(&list).Error
	return list, err
}

// SetActive 启用/停用某个 key
func (r *APIKeyRepo) SetActive(ctx context.Context, id uint, active bool) error {
	return r.conn.WithContext(ctx).Model(&objects.APIKey{}).
		Where("id = ?", id).Update("is_active", active).Error
}
