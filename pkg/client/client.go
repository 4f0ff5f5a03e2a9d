// Package client 博客 API 的 Go 客户端；会话状态通过 *Session 显式传入
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "http://localhost:8000/api"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsDraft   bool      `json:"isDraft"`
	Author    *User     `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type message struct {
	Message string `json:"message"`
}

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("blog api: status %d", e.Status)
	}
	return fmt.Sprintf("blog api: status %d: %s", e.Status, e.Message)
}

// IsStatus 判断 err 是否为指定状态码的 APIError
func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == status
}

type Client struct {
	r *resty.Client
}

type Option func(*resty.Client)

func WithTimeout(d time.Duration) Option { return func(r *resty.Client) { r.SetTimeout(d) } }

// New baseURL 为空时使用 DefaultBaseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("Accept", "application/json")
	for _, o := range opts {
		o(r)
	}
	return &Client{r: r}
}

func (c *Client) req(ctx context.Context, s *Session) *resty.Request {
	r := c.r.R().SetContext(ctx).SetError(&message{})
	if tok := s.Token(); tok != "" {
		r.SetAuthToken(tok)
	}
	return r
}

func check(op string, res *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !res.IsError() {
		return nil
	}
	ae := &APIError{Status: res.StatusCode()}
	if m, ok := res.Error().(*message); ok && m != nil {
		ae.Message = m.Message
	}
	return fmt.Errorf("%s: %w", op, ae)
}

// Register 成功后把令牌写入会话
func (c *Client) Register(ctx context.Context, s *Session, name, email, password string) (*User, error) {
	var out authResponse
	res, err := c.req(ctx, s).
		SetBody(map[string]string{"name": name, "email": email, "password": password}).
		SetResult(&out).
		Post("/register")
	if err := check("register", res, err); err != nil {
		return nil, err
	}
	if err := s.Set(out.Token, &out.User); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login 成功后把令牌写入会话
func (c *Client) Login(ctx context.Context, s *Session, email, password string) (*User, error) {
	var out authResponse
	res, err := c.req(ctx, s).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post("/login")
	if err := check("login", res, err); err != nil {
		return nil, err
	}
	if err := s.Set(out.Token, &out.User); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) CurrentUser(ctx context.Context, s *Session) (*User, error) {
	var u User
	res, err := c.req(ctx, s).SetResult(&u).Get("/current-user")
	if err := check("current user", res, err); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListPosts s 可为 nil（公开接口）
func (c *Client) ListPosts(ctx context.Context, s *Session) ([]Post, error) {
	var ps []Post
	res, err := c.req(ctx, s).SetResult(&ps).Get("/posts")
	if err := check("list posts", res, err); err != nil {
		return nil, err
	}
	return ps, nil
}

func (c *Client) GetPost(ctx context.Context, s *Session, id string) (*Post, error) {
	var p Post
	res, err := c.req(ctx, s).SetPathParam("id", id).SetResult(&p).Get("/posts/{id}")
	if err := check("get post", res, err); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreatePost(ctx context.Context, s *Session, in PostInput) (*Post, error) {
	var p Post
	res, err := c.req(ctx, s).SetBody(in).SetResult(&p).Post("/posts")
	if err := check("create post", res, err); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdatePost(ctx context.Context, s *Session, id string, in PostInput) (*Post, error) {
	var p Post
	res, err := c.req(ctx, s).SetPathParam("id", id).SetBody(in).SetResult(&p).Put("/posts/{id}")
	if err := check("update post", res, err); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePost(ctx context.Context, s *Session, id string) error {
	res, err := c.req(ctx, s).SetPathParam("id", id).SetResult(&message{}).Delete("/posts/{id}")
	return check("delete post", res, err)
}
