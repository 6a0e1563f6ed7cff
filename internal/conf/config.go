package conf

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Wikipedia WikipediaConfig `mapstructure:"wikipedia"`
	Download  DownloadConfig  `mapstructure:"download"`
	Jobs      []JobConfig     `mapstructure:"jobs"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin 运行模式: debug/release
}

type DatabaseConfig struct {
	// driver: sqlite (默认) 或 mysql
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	LogLevel string `mapstructure:"logLevel"`
}

type WikipediaConfig struct {
	// api 地址，测试时指向本地 stub
	APIBase   string `mapstructure:"apiBase"`
	UserAgent string `mapstructure:"userAgent"`
	// 超时秒数，上游本身没有超时约束，这里必须给兜底
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type DownloadConfig struct {
	// 生成文件的落盘目录
	Dir string `mapstructure:"dir"`
}

type JobConfig struct {
	Name   string                 `mapstructure:"name"`
	Cron   string                 `mapstructure:"cron"`
	Enable bool                   `mapstructure:"enable"`
	Params map[string]interface{} `mapstructure:"params"`
}

// LoadConfig 加载配置
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv() // 自动读取环境变量

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	// 显式展开 YAML 中的 ${VAR}
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.Contains(val, "${") {
			v.Set(key, os.ExpandEnv(val))
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}

// ApplyDefaults 填充缺省值
func (c *Config) ApplyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "wiki.db"
	}
	if c.Wikipedia.APIBase == "" {
		c.Wikipedia.APIBase = "https://en.wikipedia.org/w/api.php"
	}
	if c.Wikipedia.UserAgent == "" {
		c.Wikipedia.UserAgent = "WikiContentFetcher/1.0 (Wikipedia Content Fetcher)"
	}
	if c.Wikipedia.TimeoutSeconds <= 0 {
		c.Wikipedia.TimeoutSeconds = 10
	}
	if c.Download.Dir == "" {
		c.Download.Dir = "downloads"
	}
}
