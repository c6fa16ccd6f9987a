package service

import (
	"worknet/internal/pkg"
	"worknet/internal/repository/redis"
)

type EmailService struct {
	mailer *pkg.Mailer
	rds    *redis.EmailRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{mailer: pkg.NewMailer(cfg), rds: &redis.EmailRepository{}}
}

var codeActions = map[string]string{
	"register": "注册验证",
	"reset":    "重置密码",
}

// SendCode 发送验证码。邮件发出去之后才落 redis，发送失败不留码
func (s *EmailService) SendCode(scope, email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}

	if err = s.mailer.SendCode(email, codeActions[scope], code, redis.DefaultEmailCodeTTL); err != nil {
		return err
	}

	return s.rds.SetCode(scope, email, code)
}

// VerifyCode 校验验证码并一次性删除
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetCode(scope, email)
	if err != nil {
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteCode(scope, email); err != nil {
		return false, err
	}
	return true, nil
}
