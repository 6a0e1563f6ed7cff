package service_test

import (
	"path/filepath"
	"testing"

	"github.com/iceymoss/wiki-fetcher/pkg/db"
	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB 每个测试一个独立的 sqlite 文件库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.Open(db.Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err, "打开测试库不应失败")

	err = conn.AutoMigrate(
		&objects.Topic{},
		&objects.Content{},
		&objects.Download{},
		&objects.APIKey{},
		&objects.WikiContent{},
	)
	require.NoError(t, err, "建表不应失败")
	return conn
}
