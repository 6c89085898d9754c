// Package mailer 封装 SMTP 邮件传输
// Dialer 在进程启动时创建一次，随进程存活，无需显式释放
package mailer

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// 默认超时
const (
	// DefaultProbeTimeout 连通性探测默认超时
	DefaultProbeTimeout = 3 * time.Second

	// DefaultSendTimeout 发送默认超时
	DefaultSendTimeout = 30 * time.Second
)

var (
	// ErrNotConfigured 邮件传输未配置
	ErrNotConfigured = errors.New("mail transport not configured")

	// ErrTimeout 网络调用超出时限
	ErrTimeout = errors.New("mail transport deadline exceeded")
)

// Config 邮件传输配置
type Config struct {
	Host         string
	Port         int
	Username     string
	Password     string
	From         string
	ProbeTimeout time.Duration
	SendTimeout  time.Duration
}

// IsConfigured 判断配置是否足以启用投递
// 缺少凭据只是关闭投递功能，不是错误
func (c Config) IsConfigured() bool {
	return c.Host != "" && c.Port > 0
}

// Message 单封待发邮件
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer SMTP 邮件传输
type Mailer struct {
	config Config
	dialer *gomail.Dialer
	logger *zap.Logger
}

// New 创建 Mailer 实例
// 未配置凭据时仍返回实例，IsConfigured 为 false，所有发送都会被跳过
func New(c Config, lg *zap.Logger) *Mailer {
	m := &Mailer{config: c, logger: lg}

	if c.ProbeTimeout <= 0 {
		m.config.ProbeTimeout = DefaultProbeTimeout
	}
	if c.SendTimeout <= 0 {
		m.config.SendTimeout = DefaultSendTimeout
	}

	if c.IsConfigured() {
		m.dialer = gomail.NewDialer(c.Host, c.Port, c.Username, c.Password)
	}
	return m
}

// IsConfigured 判断传输是否可用
func (m *Mailer) IsConfigured() bool {
	return m.dialer != nil
}

// From 发件人地址，未单独配置时回退到用户名
func (m *Mailer) From() string {
	if m.config.From != "" {
		return m.config.From
	}
	return m.config.Username
}

// Probe checks SMTP connectivity within a short deadline
// Probe 在短时限内探测 SMTP 连通性
// 许多服务商拒绝探测但接受投递，探测失败不应阻止后续发送
func (m *Mailer) Probe() error {
	if m.dialer == nil {
		return ErrNotConfigured
	}

	return runWithTimeout(m.config.ProbeTimeout, func() error {
		closer, err := m.dialer.Dial()
		if err != nil {
			return err
		}
		return closer.Close()
	})
}

// Send delivers one message within the send deadline
// Send 在发送时限内投出一封邮件
func (m *Mailer) Send(msg *Message) error {
	if m.dialer == nil {
		return ErrNotConfigured
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.From())
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	return runWithTimeout(m.config.SendTimeout, func() error {
		return m.dialer.DialAndSend(gm)
	})
}

// runWithTimeout races f against a deadline
// runWithTimeout 让 f 与时限赛跑
// 超时只是放弃等待并按失败处理，不中断底层连接
func runWithTimeout(d time.Duration, f func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- f()
	}()

	select {
	case err := <-errCh:
		return err
	case <-time.After(d):
		return ErrTimeout
	}
}
