package objects

import (
	"time"
)

// Topic 对应数据库表 topics
// 一个主题是内容的容器，删除主题时级联删除其下所有内容
type Topic struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联内容，级联删除
	Contents []Content `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Topic) TableName() string {
	return "topics"
}
