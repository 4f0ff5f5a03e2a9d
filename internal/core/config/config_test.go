package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadFromFile(t *testing.T) {
	p := writeConfig(t, `
app:
  http:
    port: 9001
    corsOrigins: ["https://blog.example.com"]
jwt:
  secret: s3cret
  accessTokenTTLMin: 30
db:
  driver: mysql
  dsn: mysql://root:pw@127.0.0.1:3306/blog
redis:
  addr: 127.0.0.1:6379
`)
	c, err := load(p)
	require.NoError(t, err)

	assert.Equal(t, 9001, c.App.HTTP.Port)
	assert.Equal(t, []string{"https://blog.example.com"}, c.App.HTTP.CorsOrigins)
	assert.Equal(t, "s3cret", c.JWT.Secret)
	assert.Equal(t, 30, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, "mysql", c.DB.Driver)
	assert.Equal(t, "127.0.0.1:6379", c.Redis.Addr)

	// 未配置的项取默认值
	assert.Equal(t, "0.0.0.0", c.App.HTTP.Host)
	assert.Equal(t, "blog-api", c.JWT.Issuer)
	assert.Equal(t, 60, c.Redis.TTLSec)
	assert.Equal(t, 20, c.App.HTTP.AuthRatePerMin)
}

func TestLoadEnvOverride(t *testing.T) {
	p := writeConfig(t, "jwt:\n  secret: from-file\n")
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_DB_DSN", "host=db")

	c, err := load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.Equal(t, "host=db", c.DB.DSN)
}

func TestLoadRequiresSecret(t *testing.T) {
	p := writeConfig(t, "app:\n  name: x\n")
	_, err := load(p)
	assert.ErrorContains(t, err, "jwt.secret")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
