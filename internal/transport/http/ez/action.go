package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-gin-gorm-blog/internal/domain"
	mdw "go-gin-gorm-blog/internal/transport/http/middleware"
	resp "go-gin-gorm-blog/internal/transport/http/response"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

// 绑定方式
type Binder string

const (
	BindJSON Binder = "json"
	BindNone Binder = "none" // 自己从 c.Param 取
)

// AErr 统一错误对象：Code 即 HTTP 状态码
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }

// Conflict 邮箱重复等冲突，按约定返回 400
func Conflict(msg string) error { return &AErr{Code: http.StatusBadRequest, Msg: msg} }

func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// Action 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method string // GET | POST | PUT | DELETE
	Path   string
	Binder Binder
	Auth   bool // 需要登录；caller 由鉴权中间件放入上下文
	Status int  // 成功状态码，默认 200
	// caller 在 Auth=false 时为 nil
	Handler func(c *gin.Context, caller *domain.User, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		// 1) 调用者
		var caller *domain.User
		if a.Auth {
			caller = mdw.CurrentUser(c)
			if caller == nil {
				c.JSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, domain.ErrMissingToken.Error()))
				return
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		}
		if bindErr != nil {
			_ = c.Error(bindErr)
			code, msg := bindFailure(bindErr)
			c.JSON(code, resp.Error(code, msg))
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, caller, &in)
		if err != nil {
			e.fail(c, err)
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// fail 500 只记录日志，不把内部错误返回给调用方
func (e EZ) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	var ae *AErr
	if errors.As(err, &ae) && ae.Code < http.StatusInternalServerError {
		c.JSON(ae.Code, resp.Error(ae.Code, ae.Msg))
		return
	}
	e.log.Error("request failed",
		zap.String("request_id", c.GetString(mdw.KeyRequestID)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, resp.Error(http.StatusInternalServerError, ""))
}

// bindFailure 绑定错误 -> 状态码 + 对外提示；不暴露结构体与校验细节
func bindFailure(err error) (int, string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge, ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, "Invalid request: missing required fields"
	}
	return http.StatusBadRequest, "Invalid request: malformed JSON body"
}
