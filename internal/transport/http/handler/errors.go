package handler

import (
	"errors"

	"go-gin-gorm-blog/internal/domain"
	httpez "go-gin-gorm-blog/internal/transport/http/ez"
)

// actionErr 领域错误 -> 动作错误；未识别的一律按 500 处理
func actionErr(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrPostFields):
		return httpez.BadRequest(err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		return httpez.Conflict(domain.ErrEmailTaken.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return httpez.Unauthorized(domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		return httpez.NotFound(domain.ErrUserNotFound.Error())
	case errors.Is(err, domain.ErrPostNotFound):
		return httpez.NotFound(domain.ErrPostNotFound.Error())
	}
	return httpez.Internal(op, err)
}
