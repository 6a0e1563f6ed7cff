package handler

import (
	"net/http"
	"strings"

	"github.com/iceymoss/wiki-fetcher/internal/service"

	"github.com/gin-gonic/gin"
)

// KeyHandler 令牌签发与查看（开发用接口，没有鉴权）
type KeyHandler struct {
	svc *service.APIKeyService
}

func NewKeyHandler(svc *service.APIKeyService) *KeyHandler {
	return &KeyHandler{svc: svc}
}

// Generate POST /api/keys/generate
func (h *KeyHandler) Generate(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	_ = c.ShouldBindJSON(&req)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Generated Key"
	}

	key, err := h.svc.Generate(c.Request.Context(), name)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "API key generated successfully",
		"data":    key,
	})
}

// List GET /api/keys/list
func (h *KeyHandler) List(c *gin.Context) {
	keys, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(keys),
		"data":    keys,
	})
}
