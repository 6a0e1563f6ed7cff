package objects

import (
	"time"
)

// Content 对应数据库表 content
// 一条教学内容：说明文字 + 可选代码示例，归属于一个主题
type Content struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	TopicID uint `gorm:"not null;index" json:"topic_id"`

	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Explanation string `gorm:"type:text;not null" json:"explanation"`

	// 代码示例可以为空
	CodeExamples string `gorm:"type:text" json:"code_examples"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Content) TableName() string {
	return "content"
}
