package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/iceymoss/wiki-fetcher/internal/service"

	"github.com/gin-gonic/gin"
)

// ContentHandler 目录读侧接口
type ContentHandler struct {
	svc *service.ContentService
}

func NewContentHandler(svc *service.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

// parseID 路径参数里的数字 id，解析失败按资源不存在处理
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		failWith(c, http.StatusNotFound, "Resource not found")
		return 0, false
	}
	return uint(id), true
}

// ListTopics GET /api/topics
func (h *ContentHandler) ListTopics(c *gin.Context) {
	topics, err := h.svc.ListTopics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, topics)
}

// SearchTopics GET /api/topics/search?q=
func (h *ContentHandler) SearchTopics(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		failWith(c, http.StatusBadRequest, "Query parameter required")
		return
	}

	topics, err := h.svc.SearchTopics(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, topics)
}

// GetTopic GET /api/topics/:id
func (h *ContentHandler) GetTopic(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}
	topic, err := h.svc.GetTopic(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, topic)
}

// GetTopicContent GET /api/topics/:id/content
func (h *ContentHandler) GetTopicContent(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}
	topic, contents, err := h.svc.GetTopicContent(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"topic":   topic,
		"content": contents,
	})
}

// GetContent GET /api/content/:id
func (h *ContentHandler) GetContent(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}
	content, topic, err := h.svc.GetContent(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"topic":   topic,
		"content": content,
	})
}

// SearchAll GET /api/search?q=
func (h *ContentHandler) SearchAll(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		failWith(c, http.StatusBadRequest, "Query parameter required")
		return
	}

	result, err := h.svc.SearchAll(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

// Stats GET /api/stats
func (h *ContentHandler) Stats(c *gin.Context) {
	topics, err := h.svc.CountTopics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	contents, err := h.svc.CountContent(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{
		"total_topics":  topics,
		"total_content": contents,
	})
}
