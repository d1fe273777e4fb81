// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/note-keeper-service/internal/dao"
	"github.com/haierkeys/note-keeper-service/pkg/logger"
	"github.com/haierkeys/note-keeper-service/pkg/util"
	"github.com/haierkeys/note-keeper-service/pkg/workerpool"
	"github.com/haierkeys/note-keeper-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// 环境变量名称
const (
	EnvEnvironment      = "ENVIRONMENT"
	EnvCorsAllowOrigins = "CORS_ALLOW_ORIGINS"
	EnvDBURL            = "NOTES_DB_URL"
	EnvDBUser           = "NOTES_DB_USER"
	EnvDBPassword       = "NOTES_DB_PASSWORD"
	EnvDBName           = "NOTES_DB_NAME"
	EnvDBPort           = "NOTES_DB_PORT"
)

// EnvironmentProduction 生产环境名称
const EnvironmentProduction = "production"

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Cors     CorsConfig     `yaml:"cors"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，为空时只输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":8000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址，为空时不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:":8001"`
}

// DatabaseConfig 数据库配置，URL 为空时使用内存存储
type DatabaseConfig struct {
	// URL 连接地址，如 sqlite://storage/database/notes.db、mysql://host:3306/notes、postgres://host/notes
	URL string `yaml:"url"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Name 数据库名
	Name string `yaml:"name"`
	// Port 端口
	Port string `yaml:"port"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// AppSettings 应用设置
type AppSettings struct {
	// Environment 运行环境，production 时强制 JSON 日志与 release 模式
	Environment string `yaml:"environment" default:"development"`
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// SlowStoreThreshold 存储慢调用告警阈值，0 表示关闭
	SlowStoreThreshold string `yaml:"slow-store-threshold" default:"500ms"`
	// NoteStatsInterval 笔记数量指标刷新周期（cron 表达式）
	NoteStatsInterval string `yaml:"note-stats-interval" default:"@every 1m"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"4"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"64"`

	// Write Queue 配置
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`

	// Rate limit 配置，写接口每秒令牌数与桶容量，默认 0 关闭
	// 令牌桶按路由共享，不区分客户端
	WriteRateLimit    int64 `yaml:"write-rate-limit"`
	WriteRateCapacity int64 `yaml:"write-rate-capacity"`
}

// CorsConfig 跨域配置
type CorsConfig struct {
	// AllowOrigins 允许的来源，默认全部
	AllowOrigins []string `yaml:"allow-origins" default:"[\"*\"]"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
	// AgentHost jaeger agent 地址，为空时不上报 span
	AgentHost string `yaml:"agent-host"`
	// ServiceName 上报的服务名
	ServiceName string `yaml:"service-name" default:"note-keeper"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 先设置默认值，YAML 中出现的键再覆盖默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	c.ApplyEnv(os.LookupEnv)

	return c, realpath, nil
}

// ApplyEnv 使用环境变量覆盖配置，lookup 一般为 os.LookupEnv
func (c *AppConfig) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	set(EnvEnvironment, &c.App.Environment)
	set(EnvDBURL, &c.Database.URL)
	set(EnvDBUser, &c.Database.UserName)
	set(EnvDBPassword, &c.Database.Password)
	set(EnvDBName, &c.Database.Name)
	set(EnvDBPort, &c.Database.Port)

	if v, ok := lookup(EnvCorsAllowOrigins); ok {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			c.Cors.AllowOrigins = origins
		}
	}

	if c.IsProduction() {
		c.Log.Production = true
		c.Server.RunMode = "release"
	}
}

// IsProduction 是否为生产环境
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, EnvironmentProduction)
}

// UseDatabase 是否配置了外部数据库
func (c *AppConfig) UseDatabase() bool {
	return strings.TrimSpace(c.Database.URL) != ""
}

// GetLoggerConfig 获取日志配置
func (c *AppConfig) GetLoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		Production: c.Log.Production,
	}
}

// GetDatabaseConfig 获取 DAO 层数据库配置
func (c *AppConfig) GetDatabaseConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		URL:             c.Database.URL,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Name:            c.Database.Name,
		Port:            c.Database.Port,
		TablePrefix:     c.Database.TablePrefix,
		AutoMigrate:     c.Database.AutoMigrate,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		RunMode:         c.Server.RunMode,
		Tracing:         c.Tracer.Enabled && c.Tracer.AgentHost != "",
	}
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}

	return cfg
}

// GetWriteQueueConfig 获取 Write Queue 配置
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()

	if c.App.WriteQueueCapacity > 0 {
		cfg.QueueCapacity = c.App.WriteQueueCapacity
	}
	if c.App.WriteQueueTimeout != "" {
		if timeout, err := util.ParseDuration(c.App.WriteQueueTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}

	return cfg
}

// GetSlowStoreThreshold 获取存储慢调用阈值
func (c *AppConfig) GetSlowStoreThreshold() time.Duration {
	if d, err := util.ParseDuration(c.App.SlowStoreThreshold); err == nil {
		return d
	}
	return 0
}

// GetContextTimeout 获取请求上下文超时时间
func (c *AppConfig) GetContextTimeout() time.Duration {
	if c.App.DefaultContextTimeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}
