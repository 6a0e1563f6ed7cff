package objects

import (
	"time"
)

// WikiContent 对应数据库表 wikipedia_content
// 每次成功抓取都会新增一行快照，topic_name 不唯一，也不会自动过期
type WikiContent struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TopicName string `gorm:"type:varchar(255);not null;index" json:"topic_name"`
	Title     string `gorm:"type:varchar(255);not null" json:"title"`

	// 格式化后的正文
	Content string `gorm:"type:text;not null" json:"content"`
	URL     string `gorm:"type:varchar(512)" json:"url"`
	Summary string `gorm:"type:text" json:"summary"`

	// 使用 GORM 的序列化功能，[]string 在存储边界自动转 JSON 字符串
	Categories []string `gorm:"serializer:json;type:text" json:"categories"`
	References []string `gorm:"serializer:json;type:text" json:"references"`

	FetchedAt time.Time `gorm:"autoCreateTime" json:"fetched_at"`
}

// TableName 指定表名
func (WikiContent) TableName() string {
	return "wikipedia_content"
}
