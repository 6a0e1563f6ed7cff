package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Config 数据库连接配置
// sqlite 的 DSN 就是文件路径（或 :memory:），mysql 为标准 DSN
type Config struct {
	Driver   string
	DSN      string
	LogLevel string
}

// Open 按配置打开数据库连接
// 连接句柄由调用方持有并显式注入各 repo，不走全局变量
func Open(cfg Config) (*gorm.DB, error) {
	var gormlevel gormLogger.LogLevel
	switch cfg.LogLevel {
	case "debug":
		gormlevel = gormLogger.Info
	case "info":
		gormlevel = gormLogger.Info
	case "warning":
		gormlevel = gormLogger.Warn
	case "error", "fatal", "panic", "dpanic":
		gormlevel = gormLogger.Error
	default:
		gormlevel = gormLogger.Warn
	}

	gormCfg := &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormlevel),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	conn, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	if pool, poolErr := conn.DB(); poolErr == nil {
		pool.SetMaxOpenConns(30)
		pool.SetMaxIdleConns(15)
	}

	if cfg.LogLevel == "debug" {
		conn = conn.Debug()
	}
	return conn, nil
}
