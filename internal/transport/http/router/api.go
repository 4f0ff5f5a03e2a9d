package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-gorm-blog/internal/core/config"
	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/service"
	httpez "go-gin-gorm-blog/internal/transport/http/ez"
	"go-gin-gorm-blog/internal/transport/http/handler"
	mdw "go-gin-gorm-blog/internal/transport/http/middleware"
	resp "go-gin-gorm-blog/internal/transport/http/response"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type Deps struct {
	HTTP  config.HTTP
	Auth  AuthService
	Posts handler.PostService
}

func NewAPIEngine(l *zap.Logger, d Deps) *gin.Engine {
	if l == nil {
		l = zap.NewNop()
	}
	hc := withDefaults(d.HTTP)
	r := gin.New()

	r.HandleMethodNotAllowed = true

	// 中间件：观测与 CORS 在限流之前，429/503 也会被记录并带上 CORS 头
	r.Use(
		mdw.RequestID(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.New(cors.Config{
			AllowOrigins:     hc.CorsOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders:     []string{"Content-Type", "Authorization", mdw.KeyRequestID},
			ExposeHeaders:    []string{mdw.KeyRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		mdw.Recovery(l),
		mdw.RateLimit(rate.Limit(hc.RateLimitRPS), hc.RateLimitBurst),
		mdw.ConcurrencyLimit(hc.MaxInFlight),
		mdw.MaxBodyBytes(hc.MaxBodyBytes),
		mdw.Timeout(time.Duration(hc.RequestTimeoutSec)*time.Second),
	)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error(http.StatusNotFound, ""))
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, resp.Error(http.StatusMethodNotAllowed, ""))
	})

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(mdw.MetricsHandler()))

	api := r.Group("/api")

	credentials := api.Group("")
	credentials.Use(mdw.PerIPPerMinute(hc.AuthRatePerMin))

	// 鉴权分组：每次请求校验令牌并重新加载用户
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(d.Auth, l))

	rt := handler.Routes{
		Public:      httpez.New(api, l),
		Credentials: httpez.New(credentials, l),
		Authed:      httpez.New(authed, l),
	}
	var mods Registry
	mods.Register(
		handler.NewAuthHandler(d.Auth),
		handler.NewPostHandler(d.Posts),
	)
	mods.MountAll(rt)

	return r
}

func withDefaults(h config.HTTP) config.HTTP {
	if h.RateLimitRPS <= 0 {
		h.RateLimitRPS = 200
	}
	if h.RateLimitBurst <= 0 {
		h.RateLimitBurst = 400
	}
	if h.MaxInFlight <= 0 {
		h.MaxInFlight = 300
	}
	if h.MaxBodyBytes <= 0 {
		h.MaxBodyBytes = 1 << 20
	}
	if h.RequestTimeoutSec <= 0 {
		h.RequestTimeoutSec = 10
	}
	if len(h.CorsOrigins) == 0 {
		h.CorsOrigins = []string{"http://localhost:3000"}
	}
	return h
}
