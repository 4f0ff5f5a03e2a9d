package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-blog/internal/domain"
	httpez "go-gin-gorm-blog/internal/transport/http/ez"
	resp "go-gin-gorm-blog/internal/transport/http/response"
)

const msgPostDeleted = "Post deleted successfully"

type PostService interface {
	List(ctx context.Context) ([]domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	Create(ctx context.Context, caller *domain.User, title, content string) (*domain.Post, error)
	Update(ctx context.Context, id, title, content string) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

type PostHandler struct {
	svc PostService
}

func NewPostHandler(svc PostService) *PostHandler { return &PostHandler{svc: svc} }

// body 里的 author 等其他字段直接忽略
type postIn struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *PostHandler) Mount(rt Routes) {
	httpez.RegisterAction(rt.Public, httpez.Action[struct{}, []domain.Post]{
		Method: http.MethodGet,
		Path:   "/posts",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *domain.User, _ *struct{}) ([]domain.Post, error) {
			ps, err := h.svc.List(c.Request.Context())
			if err != nil {
				return nil, actionErr("list posts", err)
			}
			return ps, nil
		},
	})

	httpez.RegisterAction(rt.Public, httpez.Action[struct{}, *domain.Post]{
		Method: http.MethodGet,
		Path:   "/posts/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *domain.User, _ *struct{}) (*domain.Post, error) {
			p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, actionErr("get post", err)
			}
			return p, nil
		},
	})

	httpez.RegisterAction(rt.Authed, httpez.Action[postIn, *domain.Post]{
		Method: http.MethodPost,
		Path:   "/posts",
		Binder: httpez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, caller *domain.User, in *postIn) (*domain.Post, error) {
			p, err := h.svc.Create(c.Request.Context(), caller, in.Title, in.Content)
			if err != nil {
				return nil, actionErr("create post", err)
			}
			return p, nil
		},
	})

	httpez.RegisterAction(rt.Authed, httpez.Action[postIn, *domain.Post]{
		Method: http.MethodPut,
		Path:   "/posts/:id",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, _ *domain.User, in *postIn) (*domain.Post, error) {
			p, err := h.svc.Update(c.Request.Context(), c.Param("id"), in.Title, in.Content)
			if err != nil {
				return nil, actionErr("update post", err)
			}
			return p, nil
		},
	})

	httpez.RegisterAction(rt.Authed, httpez.Action[struct{}, resp.Msg]{
		Method: http.MethodDelete,
		Path:   "/posts/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *domain.User, _ *struct{}) (resp.Msg, error) {
			if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
				return resp.Msg{}, actionErr("delete post", err)
			}
			return resp.Message(msgPostDeleted), nil
		},
	})
}
