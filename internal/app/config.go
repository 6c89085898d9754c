// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/note-capsule-service/internal/mailer"
	"github.com/haierkeys/note-capsule-service/pkg/util"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Mail     MailConfig     `yaml:"mail"`
	Capsule  CapsuleConfig  `yaml:"capsule"`
	App      AppSettings    `yaml:"app"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，默认为 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 存储类型: file / sqlite / mysql / postgres
	Type string `yaml:"type" default:"file"`
	// Path 存储文件路径, file 类型为笔记集合文件, sqlite 类型为数据库文件
	Path string `yaml:"path" default:"storage/database/notes.yaml"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，支持格式：10m（分钟）、1h（小时），默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// MailConfig 邮件投递配置
// Host 或 Port 为空视为未配置, 投递整体跳过
type MailConfig struct {
	// Host SMTP 主机
	Host string `yaml:"host"`
	// Port SMTP 端口
	Port int `yaml:"port"`
	// Username SMTP 用户名
	Username string `yaml:"username"`
	// Password SMTP 密码
	Password string `yaml:"password"`
	// From 发件人地址, 为空时退回 Username
	From string `yaml:"from"`
}

// CapsuleConfig 时间胶囊投递配置
type CapsuleConfig struct {
	// Schedule 投递检查的 cron 表达式
	Schedule string `yaml:"schedule" default:"0 8 * * *"`
	// SendAfter 投递等待时长，支持格式：365d（天）、24h（小时）
	SendAfter string `yaml:"send-after" default:"365d"`
	// SendTolerance 提前投递容差
	SendTolerance string `yaml:"send-tolerance" default:"1d"`
	// ProbeTimeout SMTP 探测超时
	ProbeTimeout string `yaml:"probe-timeout" default:"3s"`
	// SendTimeout 单封邮件发送超时
	SendTimeout string `yaml:"send-timeout" default:"30s"`
	// SendInterval 两次投递之间的间隔
	SendInterval string `yaml:"send-interval" default:"1s"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultPageSize 默认页面大小
	DefaultPageSize int `yaml:"default-page-size" default:"10"`
	// MaxPageSize 最大页面大小
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout 默认上下文超时时间
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
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

	// 设置默认值
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

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetMailerConfig 获取 Mailer 配置
func (c *AppConfig) GetMailerConfig() mailer.Config {
	return mailer.Config{
		Host:         c.Mail.Host,
		Port:         c.Mail.Port,
		Username:     c.Mail.Username,
		Password:     c.Mail.Password,
		From:         c.Mail.From,
		ProbeTimeout: c.durationOr(c.Capsule.ProbeTimeout, mailer.DefaultProbeTimeout),
		SendTimeout:  c.durationOr(c.Capsule.SendTimeout, mailer.DefaultSendTimeout),
	}
}

// GetSendAfter 获取投递等待时长
func (c *AppConfig) GetSendAfter() time.Duration {
	return c.durationOr(c.Capsule.SendAfter, 365*24*time.Hour)
}

// GetSendTolerance 获取提前投递容差
func (c *AppConfig) GetSendTolerance() time.Duration {
	return c.durationOr(c.Capsule.SendTolerance, 24*time.Hour)
}

// GetSendInterval 获取投递间隔
func (c *AppConfig) GetSendInterval() time.Duration {
	return c.durationOr(c.Capsule.SendInterval, time.Second)
}

func (c *AppConfig) durationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	if d, err := util.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}
