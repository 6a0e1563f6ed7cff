package objects

import (
	"time"
)

// 下载格式，Download.Format 只允许这三个规范值
const (
	FormatPDF      = "pdf"
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Download 对应数据库表 downloads
// 每次文件生成成功写一条记录，只增不删
type Download struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ContentID uint   `gorm:"not null;index" json:"content_id"`
	Format    string `gorm:"type:varchar(10);not null" json:"format"`
	FileName  string `gorm:"type:varchar(255);not null" json:"file_name"`

	DownloadedAt time.Time `gorm:"autoCreateTime" json:"downloaded_at"`
}

// TableName 指定表名
func (Download) TableName() string {
	return "downloads"
}
