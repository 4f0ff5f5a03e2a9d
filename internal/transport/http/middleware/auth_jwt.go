package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/domain"
	resp "go-gin-gorm-blog/internal/transport/http/response"
)

const KeyCaller = "caller"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// BearerToken 取 "Authorization: Bearer <token>"，格式不符返回空串
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// AuthJWT 每次请求都校验令牌并重新加载用户
func AuthJWT(a Authenticator, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := a.Authenticate(c.Request.Context(), BearerToken(c.GetHeader("Authorization")))
		if err != nil {
			_ = c.Error(err)
			switch {
			case errors.Is(err, domain.ErrMissingToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, domain.ErrMissingToken.Error()))
			case errors.Is(err, domain.ErrInvalidToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, domain.ErrInvalidToken.Error()))
			case errors.Is(err, domain.ErrUserNotFound):
				c.AbortWithStatusJSON(http.StatusNotFound, resp.Error(http.StatusNotFound, domain.ErrUserNotFound.Error()))
			default:
				l.Error("authenticate failed", zap.String("request_id", c.GetString(KeyRequestID)), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Error(http.StatusInternalServerError, ""))
			}
			return
		}
		c.Set(KeyCaller, u)
		c.Next()
	}
}

// CurrentUser 取鉴权中间件放入的调用者，未登录返回 nil
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(KeyCaller)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
