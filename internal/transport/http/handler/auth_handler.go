package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/service"
	httpez "go-gin-gorm-blog/internal/transport/http/ez"
)

const (
	msgRegistered = "User registered successfully"
	msgLoggedIn   = "Login successful"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

type registerIn struct {
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthOut struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    domain.PublicUser `json:"user"`
}

func (h *AuthHandler) Mount(rt Routes) {
	// --- POST /register ---
	httpez.RegisterAction(rt.Credentials, httpez.Action[registerIn, AuthOut]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *domain.User, in *registerIn) (AuthOut, error) {
			res, err := h.svc.Register(c.Request.Context(), in.Name, in.Email, in.Password)
			if err != nil {
				return AuthOut{}, actionErr("register", err)
			}
			return AuthOut{Message: msgRegistered, Token: res.Token, User: res.User.Public()}, nil
		},
	})

	// --- POST /login ---
	httpez.RegisterAction(rt.Credentials, httpez.Action[loginIn, AuthOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ *domain.User, in *loginIn) (AuthOut, error) {
			res, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return AuthOut{}, actionErr("login", err)
			}
			return AuthOut{Message: msgLoggedIn, Token: res.Token, User: res.User.Public()}, nil
		},
	})

	// --- GET /current-user ---
	httpez.RegisterAction(rt.Authed, httpez.Action[struct{}, domain.PublicUser]{
		Method: http.MethodGet,
		Path:   "/current-user",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(_ *gin.Context, caller *domain.User, _ *struct{}) (domain.PublicUser, error) {
			return caller.Public(), nil
		},
	})
}
