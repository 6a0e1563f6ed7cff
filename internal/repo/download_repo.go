package repo

import (
	"context"

	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"

	"gorm.io/gorm"
)

type DownloadRepo struct {
	conn *gorm.DB
}

func NewDownloadRepo(conn *gorm.DB) *DownloadRepo { return &DownloadRepo{conn: conn} }

// Create 记录一次成功的文件生成
func (r *DownloadRepo) Create(ctx context.Context, dl *objects.Download) error {
	return r.conn.WithContext(ctx).Create(dl).Error
}

// CountByContent 某内容的下载次数
func (r *DownloadRepo) CountByContent(ctx context.Context, contentID uint) (int64, error) {
	var count int64
	err := r.conn.WithContext(ctx).Model(&objects.Download{}).
		Where("content_id = ?", contentID).Count(&count).Error
	return count, err
}
