package service

import (
	"errors"

	"worknet/internal/model"
	"worknet/internal/pkg"
	"worknet/internal/repository/mysql"
	"worknet/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo     *mysql.UserRepository
	rUser    *redis.UserRepository
	emailSvc *EmailService
}

func NewUserService(emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: mysql.DB},
		rUser:    &redis.UserRepository{},
		emailSvc: emailSvc,
	}
}

func (s *UserService) Register(username, password, email, code string) error {
	ok, err := s.emailSvc.VerifyCode("register", email, code)
	if err != nil || !ok {
		return errors.New("verification failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.Create(&model.User{
		Username: username,
		Password: string(hash),
		Email:    email,
	})
}

func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}

	token, err := pkg.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	// 单点登录：最新 token 顶掉旧的
	if err = s.rUser.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.rUser.DeleteUserToken(userID)
}

// ResetPassword 凭邮箱验证码重置密码
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode("reset", email, code)
	if err != nil || !ok {
		return errors.New("verification failed")
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

// ChangePassword 登录态修改密码，成功后强制重新登录
func (s *UserService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}
	return s.Logout(userID)
}
