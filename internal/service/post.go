package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/core/cache"
	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/pkg/utils"
)

const listKey = "posts:list"

func postKey(id string) string { return "post:" + id }

// PostCache 由 *cache.Cache 实现；为 nil 时不走缓存
type PostCache interface {
	cache.Loader
	Invalidate(ctx context.Context, keys ...string) error
}

type PostService struct {
	posts domain.PostRepository
	cache PostCache
	ttl   time.Duration
	log   *zap.Logger
	now   func() time.Time
}

func NewPostService(posts domain.PostRepository, c PostCache, ttl time.Duration, l *zap.Logger) *PostService {
	if l == nil {
		l = zap.NewNop()
	}
	return &PostService{
		posts: posts,
		cache: c,
		ttl:   ttl,
		log:   l,
		now:   time.Now,
	}
}

// 与 postgres 的微秒精度对齐，保证写入后的响应与读取一致
func (s *PostService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	load := func(ctx context.Context) (*[]domain.Post, error) {
		ps, err := s.posts.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		return &ps, nil
	}
	if s.cache == nil {
		ps, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return *ps, nil
	}
	ps, err := cache.GetOrLoadJSON(s.cache, ctx, listKey, s.ttl, load)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		return []domain.Post{}, nil
	}
	return *ps, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	// 不存在时返回错误，不写负缓存
	load := func(ctx context.Context) (*domain.Post, error) {
		p, err := s.posts.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find post: %w", err)
		}
		if p == nil {
			return nil, domain.ErrPostNotFound
		}
		return p, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	p, err := cache.GetOrLoadJSON(s.cache, ctx, postKey(id), s.ttl, load)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPostNotFound
	}
	return p, nil
}

// Create 作者一律取当前调用者
func (s *PostService) Create(ctx context.Context, caller *domain.User, title, content string) (*domain.Post, error) {
	if caller == nil {
		return nil, errors.New("create post: no caller")
	}
	if title == "" || content == "" {
		return nil, domain.ErrPostFields
	}
	now := s.timestamp()
	p := &domain.Post{
		ID:        utils.NewID(),
		Title:     title,
		Content:   content,
		AuthorID:  caller.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	p.Author = &domain.User{ID: caller.ID, Name: caller.Name, Email: caller.Email}
	s.invalidate(ctx, listKey)
	return p, nil
}

// Update 只改 title/content/updatedAt；不校验归属
func (s *PostService) Update(ctx context.Context, id, title, content string) (*domain.Post, error) {
	if title == "" || content == "" {
		return nil, domain.ErrPostFields
	}
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if p == nil {
		return nil, domain.ErrPostNotFound
	}
	now := s.timestamp()
	ok, err := s.posts.UpdateContent(ctx, id, title, content, now)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	// 查询与更新之间被删除
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.Title, p.Content, p.UpdatedAt = title, content, now
	s.invalidate(ctx, listKey, postKey(id))
	return p, nil
}

// Delete 不校验归属
func (s *PostService) Delete(ctx context.Context, id string) error {
	ok, err := s.posts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if !ok {
		return domain.ErrPostNotFound
	}
	s.invalidate(ctx, listKey, postKey(id))
	return nil
}

func (s *PostService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("post cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
