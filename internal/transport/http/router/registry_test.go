package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-gin-gorm-blog/internal/transport/http/handler"
)

type recordMod struct {
	name string
	got  *[]string
}

func (m recordMod) Mount(handler.Routes) { *m.got = append(*m.got, m.name) }

func TestRegistryMountsInOrder(t *testing.T) {
	var got []string
	var reg Registry
	reg.Register(recordMod{"auth", &got}, recordMod{"posts", &got})
	reg.Register(recordMod{"extra", &got})
	reg.MountAll(handler.Routes{})
	assert.Equal(t, []string{"auth", "posts", "extra"}, got)
}
