package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iceymoss/wiki-fetcher/internal/repo"
	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"
	xerrors "github.com/iceymoss/wiki-fetcher/pkg/errors"
	"github.com/iceymoss/wiki-fetcher/pkg/logger"
	"github.com/iceymoss/wiki-fetcher/pkg/xerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 令牌碰撞重试上限，32 字节随机数撞唯一索引基本不可能发生
const maxGenerateRetries = 3

// APIKeyService 签发和校验访问令牌
type APIKeyService struct {
	keys *repo.APIKeyRepo
}

func NewAPIKeyService(keys *repo.APIKeyRepo) *APIKeyService {
	return &APIKeyService{keys: keys}
}

// Generate 签发一个新的激活状态 key
// 名称去空白后至少 2 个字符；唯一索引冲突时重新生成令牌
func (s *APIKeyService) Generate(ctx context.Context, name string) (*objects.APIKey, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, xerrors.New(xerr.ErrInvalidInput, "Key name must be at least 2 characters")
	}

	var lastErr error
	for i := 0; i < maxGenerateRetries; i++ {
		token, err := objects.GenerateKey()
		if err != nil {
			return nil, err
		}
		key := &objects.APIKey{
			Key:      token,
			Name:     name,
			IsActive: true,
		}
		err = s.keys.Create(ctx, key)
		if err == nil {
			return key, nil
		}
		if !isDuplicateKey(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// Validate 校验令牌并记一次使用
// 命中激活 key：使用次数 +1、刷新 last_used 后返回 true；未命中或已停用返回 false
// 读-改-写有意不加事务，同一 key 并发校验时计数允许少计（last-write-wins）
func (s *APIKeyService) Validate(ctx context.Context, token string) bool {
	key, err := s.keys.FindActive(ctx, token)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("api key lookup failed", zap.Error(err))
		}
		return false
	}

	now := time.Now().UTC()
	key.RequestsCount++
	key.LastUsed = &now
	if err := s.keys.Save(ctx, key); err != nil {
		// 计数写失败不影响本次放行
		logger.Error("api key usage update failed", zap.Uint("id", key.ID), zap.Error(err))
	}
	return true
}

// List 全部 key
func (s *APIKeyService) List(ctx context.Context) ([]*objects.APIKey, error) {
	return s.keys.List(ctx)
}

// SetActive 启停某个 key（暂无对应接口，供管理脚本调用）
func (s *APIKeyService) SetActive(ctx context.Context, id uint, active bool) error {
	return s.keys.SetActive(ctx, id, active)
}

// isDuplicateKey 识别唯一约束冲突
// gorm 对部分方言会翻译成 ErrDuplicatedKey，其余按错误文本兜底
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToUpper(err.Error())
	return strings.Contains(msg, "UNIQUE") || strings.Contains(msg, "DUPLICATE")
}
