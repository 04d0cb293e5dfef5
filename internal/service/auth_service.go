package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"magicwrites/internal/domain"
	"magicwrites/pkg/utils"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

type AuthService struct {
	users domain.UserRepository
}

func NewAuthService(users domain.UserRepository) *AuthService {
	return &AuthService{users: users}
}

type SignupInput struct {
	Name     string
	Email    string
	Username string
	Password string
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	if name == "" {
		return nil, BadRequest("Name is required")
	}
	if email == "" {
		return nil, BadRequest("Email is required")
	}
	if len(in.Password) < 8 {
		return nil, BadRequest("Password must be at least 8 characters")
	}
	if !usernameRe.MatchString(username) {
		return nil, BadRequest("Username must be 3-20 characters: letters, numbers, underscore")
	}

	// 先查一遍给出友好提示；并发窗口由唯一索引兜底
	if u, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, Internal("signup failed", err)
	} else if u != nil {
		return nil, BadRequest("Email is already registered")
	}
	if u, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, Internal("signup failed", err)
	} else if u != nil {
		return nil, BadRequest("Username is already taken")
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Username:     username,
		Name:         name,
		PasswordHash: utils.HashPassword(in.Password),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, BadRequest("Email or username is already taken")
		}
		return nil, Internal("signup failed", err)
	}
	return u, nil
}

// Login 查无此人和密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, Internal("login failed", err)
	}
	if u == nil {
		return nil, InvalidCredentials()
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, InvalidCredentials()
	}
	return u, nil
}

// CurrentUser 会话有效但用户不存在时返回 nil,nil，匿名浏览不报错
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, nil
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, Internal("load user failed", err)
	}
	return u, nil
}
