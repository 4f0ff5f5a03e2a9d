// Package repotest 提供内存版仓储，供各层测试使用
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
)

// ErrDuplicate 与 gorm 的唯一键冲突错误一致
var ErrDuplicate = gorm.ErrDuplicatedKey

type Store struct {
	mu    sync.RWMutex
	users map[string]domain.User
	posts map[string]domain.Post

	// Fail 非 nil 时所有操作返回该错误（模拟存储故障）
	Fail error
}

func NewStore() *Store {
	return &Store{users: map[string]domain.User{}, posts: map[string]domain.Post{}}
}

func (s *Store) Users() domain.UserRepository { return userRepo{s} }
func (s *Store) Posts() domain.PostRepository { return postRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return r.s.Fail
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// DeleteUser 仅测试用：模拟用户被移除
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

type postRepo struct{ s *Store }

func (r postRepo) withAuthor(p domain.Post) domain.Post {
	if u, ok := r.s.users[p.AuthorID]; ok {
		p.Author = &domain.User{ID: u.ID, Name: u.Name, Email: u.Email}
	} else {
		p.Author = nil
	}
	return p
}

func (r postRepo) List(_ context.Context) ([]domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}
	out := make([]domain.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, r.withAuthor(p))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r postRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}
	p, ok := r.s.posts[id]
	if !ok {
		return nil, nil
	}
	p = r.withAuthor(p)
	return &p, nil
}

func (r postRepo) Create(_ context.Context, p *domain.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return r.s.Fail
	}
	if _, ok := r.s.posts[p.ID]; ok {
		return ErrDuplicate
	}
	stored := *p
	stored.Author = nil
	r.s.posts[p.ID] = stored
	return nil
}

func (r postRepo) UpdateContent(_ context.Context, id, title, content string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return false, r.s.Fail
	}
	p, ok := r.s.posts[id]
	if !ok {
		return false, nil
	}
	p.Title, p.Content, p.UpdatedAt = title, content, at
	r.s.posts[id] = p
	return true, nil
}

func (r postRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return false, r.s.Fail
	}
	if _, ok := r.s.posts[id]; !ok {
		return false, nil
	}
	delete(r.s.posts, id)
	return true, nil
}
