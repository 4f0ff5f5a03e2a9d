package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore 令牌持久化；nil 表示只保存在内存
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Session 进程内唯一的登录态：Restore 初始化，Clear 注销
type Session struct {
	mu    sync.RWMutex
	token string
	user  *User
	store TokenStore
}

func NewSession(store TokenStore) *Session { return &Session{store: store} }

// Token nil 会话返回空串
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *User {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Authenticated() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

func (s *Session) Set(token string, u *User) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	s.token = token
	if u != nil {
		cp := *u
		s.user = &cp
	}
	s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *Session) Clear() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	s.token, s.user = "", nil
	s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Restore 读取已保存的令牌并通过 /current-user 校验；失败则清空会话
func (c *Client) Restore(ctx context.Context, s *Session) (bool, error) {
	if s == nil || s.store == nil {
		return false, nil
	}
	tok, err := s.store.Load()
	if err != nil {
		return false, fmt.Errorf("load token: %w", err)
	}
	if tok == "" {
		return false, nil
	}

	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()

	u, err := c.CurrentUser(ctx, s)
	if err != nil {
		if cerr := s.Clear(); cerr != nil {
			return false, errors.Join(err, cerr)
		}
		var ae *APIError
		if errors.As(err, &ae) {
			return false, nil
		}
		return false, err
	}

	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	return true, nil
}

func (c *Client) Logout(s *Session) error { return s.Clear() }

// FileTokenStore 把令牌保存在本地文件
type FileTokenStore struct {
	Path string
}

func (f FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (f FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.Path, []byte(token), 0o600)
}

func (f FileTokenStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
