package handler

import httpez "go-gin-gorm-blog/internal/transport/http/ez"

// Routes 各模块挂载时可用的分组
type Routes struct {
	Public      httpez.EZ // 无需登录
	Credentials httpez.EZ // 注册/登录，按 IP 限速
	Authed      httpez.EZ // 已过 AuthJWT
}
