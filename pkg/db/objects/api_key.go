package objects

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// KeyPrefix 本系统签发的 key 统一带 wk_ 前缀，便于识别
const KeyPrefix = "wk_"

// APIKey 对应数据库表 api_keys
// 访问 Wikipedia 相关接口的不透明令牌
type APIKey struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Key  string `gorm:"type:varchar(255);not null;uniqueIndex" json:"key"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	// 使用次数只增不减，并发校验下允许少计（见 service 层说明）
	RequestsCount int  `gorm:"default:0" json:"requests_count"`
	IsActive      bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastUsed  *time.Time `json:"last_used"`
}

// TableName 指定表名
func (APIKey) TableName() string {
	return "api_keys"
}

// GenerateKey 生成一个新令牌：wk_ 前缀 + 32 字节随机数的 URL 安全编码
func GenerateKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return KeyPrefix + base64.RawURLEncoding.EncodeToString(buf), nil
}
