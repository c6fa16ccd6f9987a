package pkg

import (
	"crypto/tls"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // 信头展示的发件人
}

// Mailer 验证码邮件的发送端，持有 SMTP 配置
type Mailer struct {
	cfg SMTPConfig
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendCode 发送一封验证码邮件，action 是操作名（注册验证/重置密码）
func (m *Mailer) SendCode(to, action, code string, ttl time.Duration) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", action+"验证码")
	msg.SetBody("text/html", codeBody(action, code, ttl))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: m.cfg.Host}
	return d.DialAndSend(msg)
}

func codeBody(action, code string, ttl time.Duration) string {
	return fmt.Sprintf(
		`<p>您好，</p>`+
			`<p>您正在进行 <b>%s</b> 操作，验证码：</p>`+
			`<p style="font-size:20px;letter-spacing:2px;"><b>%s</b></p>`+
			`<p>%d 分钟内有效，请勿转发给任何人。</p>`,
		action, code, int(ttl.Minutes()))
}
