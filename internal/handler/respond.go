package handler

import (
	"net/http"

	xerrors "github.com/iceymoss/wiki-fetcher/pkg/errors"
	"github.com/iceymoss/wiki-fetcher/pkg/xerr"

	"github.com/gin-gonic/gin"
)

// httpStatus 错误码到 HTTP 状态码的映射
func httpStatus(code int) int {
	switch code {
	case xerr.ErrBadRequest, xerr.ErrInvalidInput, xerr.ErrMissingParameter, xerr.ErrUnsupportedFormat:
		return http.StatusBadRequest
	case xerr.ErrUnauthenticated, xerr.ErrInvalidKey:
		return http.StatusUnauthorized
	case xerr.ErrNotFound, xerr.ErrResourceNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail 按错误码输出统一的失败信封
// 所有错误都在这里收口，不向框架层继续传播
func fail(c *gin.Context, err error) {
	c.JSON(httpStatus(xerrors.Code(err)), gin.H{
		"success": false,
		"error":   xerrors.Message(err),
	})
}

// failWith 直接给定状态码和消息
func failWith(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}

// ok 成功信封
func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
