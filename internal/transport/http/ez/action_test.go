package ez

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-gin-gorm-blog/internal/domain"
	mdw "go-gin-gorm-blog/internal/transport/http/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

func TestAErrError(t *testing.T) {
	cause := errors.New("timeout")
	assert.Equal(t, "list posts: timeout", Internal("list posts", cause).Error())
	assert.Equal(t, "Post not found", NotFound("Post not found").Error())
	assert.Equal(t, "timeout", (&AErr{Err: cause}).Error())
	assert.Equal(t, "action error", (&AErr{}).Error())
	assert.ErrorIs(t, Internal("x", cause), cause)
}

type echoIn struct {
	Name string `json:"name" binding:"required"`
}

func newEngine(l *zap.Logger, h func(*gin.Context, *domain.User, *echoIn) (gin.H, error), auth bool) *gin.Engine {
	r := gin.New()
	r.Use(mdw.RequestID())
	g := r.Group("")
	if auth {
		g.Use(func(c *gin.Context) {
			if c.GetHeader("X-User") != "" {
				c.Set(mdw.KeyCaller, &domain.User{ID: c.GetHeader("X-User")})
			}
		})
	}
	RegisterAction(New(g, l), Action[echoIn, gin.H]{
		Method:  http.MethodPost,
		Path:    "/echo",
		Binder:  BindJSON,
		Auth:    auth,
		Status:  http.StatusCreated,
		Handler: h,
	})
	return r
}

func post(r *gin.Engine, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterActionSuccessAndCaller(t *testing.T) {
	r := newEngine(nil, func(_ *gin.Context, caller *domain.User, in *echoIn) (gin.H, error) {
		return gin.H{"name": in.Name, "caller": caller.ID}, nil
	}, true)

	w := post(r, `{"name":"go"}`, map[string]string{"X-User": "u1"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"name":"go","caller":"u1"}`, w.Body.String())

	w = post(r, `{"name":"go"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Access denied, token missing!"}`, w.Body.String())
}

func TestRegisterActionBindError(t *testing.T) {
	called := false
	r := newEngine(nil, func(*gin.Context, *domain.User, *echoIn) (gin.H, error) {
		called = true
		return nil, nil
	}, false)

	w := post(r, `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid request: missing required fields"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "echoIn")

	w = post(r, `{"name":`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid request: malformed JSON body"}`, w.Body.String())

	big := gin.New()
	big.Use(mdw.MaxBodyBytes(8))
	RegisterAction(New(big.Group(""), nil), Action[echoIn, gin.H]{
		Method:  http.MethodPost,
		Path:    "/echo",
		Binder:  BindJSON,
		Handler: func(*gin.Context, *domain.User, *echoIn) (gin.H, error) { called = true; return nil, nil },
	})
	w = post(big, `{"name":"far too long for the limit"}`, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"message":"Request body too large"}`, w.Body.String())
	assert.False(t, called)
}

func TestRegisterActionErrorMapping(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	var ret error
	r := newEngine(zap.New(core), func(*gin.Context, *domain.User, *echoIn) (gin.H, error) {
		return nil, ret
	}, false)

	ret = NotFound("Post not found")
	w := post(r, `{"name":"go"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Post not found"}`, w.Body.String())

	ret = Conflict("Email already registered")
	w = post(r, `{"name":"go"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, logs.Len())

	for _, e := range []error{Internal("create post", errors.New("pq: relation missing")), errors.New("pq: relation missing")} {
		ret = e
		w = post(r, `{"name":"go"}`, map[string]string{mdw.KeyRequestID: "rid-7"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())
	}
	assert.Equal(t, 2, logs.Len())
	last := logs.All()[logs.Len()-1].ContextMap()
	assert.Equal(t, "rid-7", last["request_id"])
	assert.Contains(t, last["error"], "relation missing")
}
