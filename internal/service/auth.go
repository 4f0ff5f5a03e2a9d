package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go-gin-gorm-blog/internal/core/auth"
	"go-gin-gorm-blog/internal/core/database"
	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/pkg/utils"
)

const (
	minLocalPartLen = 4
	minPasswordLen  = 8
)

type TokenManager interface {
	Issue(userID, email string) (string, error)
	Parse(token string) (*auth.Claims, error)
}

type AuthService struct {
	users  domain.UserRepository
	tokens TokenManager
}

func NewAuthService(users domain.UserRepository, tokens TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type AuthResult struct {
	Token string
	User  *domain.User
}

// NormalizeEmail 只做小写化
func NormalizeEmail(email string) string { return strings.ToLower(email) }

// ValidateEmail 仅检查 "@" 前至少 4 个字符且只有一个 "@"，不做完整地址校验
func ValidateEmail(email string) error {
	if email == "" {
		return domain.ErrInvalidEmail
	}
	parts := strings.Split(email, "@")
	if len(parts) < 2 {
		return domain.ErrInvalidEmail
	}
	local, host := parts[0], parts[1]
	n := utf8.RuneCountInString
	if n(local) < minLocalPartLen || n(local) != n(email)-n(host)-1 {
		return domain.ErrInvalidEmail
	}
	return nil
}

func ValidatePassword(pw string) error {
	if utf8.RuneCountInString(pw) < minPasswordLen {
		return domain.ErrWeakPassword
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if database.IsDuplicateKey(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.issue(u)
}

// Authenticate 校验令牌并重新加载用户；每个受保护请求都会调用
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *AuthService) issue(u *domain.User) (*AuthResult, error) {
	tok, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	if tok == "" {
		return nil, errors.New("issue token: empty token")
	}
	return &AuthResult{Token: tok, User: u}, nil
}
