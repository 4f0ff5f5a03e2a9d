package router

import "go-gin-gorm-blog/internal/transport/http/handler"

// Module 业务模块自行挂载路由
type Module interface{ Mount(handler.Routes) }

type Registry struct {
	mods []Module
}

func (r *Registry) Register(mods ...Module) { r.mods = append(r.mods, mods...) }

// MountAll 按注册顺序挂载
func (r *Registry) MountAll(rt handler.Routes) {
	for _, m := range r.mods {
		m.Mount(rt)
	}
}
