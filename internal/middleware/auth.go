package middleware

import (
	"net/http"

	"github.com/iceymoss/wiki-fetcher/internal/service"

	"github.com/gin-gonic/gin"
)

// RequireAPIKey Wikipedia 相关接口的令牌校验
// 令牌取自 X-API-Key 请求头或 api_key 查询参数；校验通过会记一次使用
func RequireAPIKey(keys *service.APIKeyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-API-Key")
		if token == "" {
			token = c.Query("api_key")
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "API key required",
			})
			return
		}

		if !keys.Validate(c.Request.Context(), token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid API key",
			})
			return
		}

		c.Next()
	}
}
