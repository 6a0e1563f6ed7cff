package handler

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/iceymoss/wiki-fetcher/internal/filegen"
	"github.com/iceymoss/wiki-fetcher/internal/service"
	xerrors "github.com/iceymoss/wiki-fetcher/pkg/errors"

	"github.com/gin-gonic/gin"
)

// WikipediaHandler 远端抓取与缓存接口，路由层统一挂令牌校验
type WikipediaHandler struct {
	svc *service.WikipediaService
	gen *filegen.Generator
}

func NewWikipediaHandler(svc *service.WikipediaService, gen *filegen.Generator) *WikipediaHandler {
	return &WikipediaHandler{svc: svc, gen: gen}
}

// topicRequest POST 接口的请求体
type topicRequest struct {
	Topic string `json:"topic"`
}

// bindTopic 解析请求体里的 topic，minLen 为最少字符数（0 表示只要非空）
func bindTopic(c *gin.Context, minLen int) (string, bool) {
	var req topicRequest
	// 请求体缺失或非法 JSON 都按缺参处理
	_ = c.ShouldBindJSON(&req)

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		failWith(c, http.StatusBadRequest, "Topic is required")
		return "", false
	}
	if minLen > 0 && utf8.RuneCountInString(topic) < minLen {
		failWith(c, http.StatusBadRequest, "Topic must be at least 2 characters")
		return "", false
	}
	return topic, true
}

// Search POST /api/wikipedia/search
func (h *WikipediaHandler) Search(c *gin.Context) {
	topic, valid := bindTopic(c, 2)
	if !valid {
		return
	}
	// 检索结果自带 success 标记，成功失败都返回 200
	c.JSON(http.StatusOK, h.svc.Search(c.Request.Context(), topic))
}

// Fetch POST /api/wikipedia/fetch
func (h *WikipediaHandler) Fetch(c *gin.Context) {
	topic, valid := bindTopic(c, 0)
	if !valid {
		return
	}

	result, err := h.svc.Fetch(c.Request.Context(), topic)
	if err != nil {
		// 抓取侧报告的失败统一 404，消息里带原因
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": xerrors.Message(err),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Cached GET /api/wikipedia/cached/:topic
func (h *WikipediaHandler) Cached(c *gin.Context) {
	topic := c.Param("topic")

	cached, err := h.svc.GetCached(c.Request.Context(), topic)
	if err != nil {
		fail(c, err)
		return
	}
	if cached == nil {
		failWith(c, http.StatusNotFound, "No cached content found")
		return
	}
	ok(c, cached)
}

// CacheSearch GET /api/wikipedia/cache/search?q=
// q 为空返回全部缓存
func (h *WikipediaHandler) CacheSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	var (
		list interface{}
		err  error
	)
	var count int
	if query == "" {
		all, listErr := h.svc.GetAllCached(c.Request.Context())
		list, err, count = all, listErr, len(all)
	} else {
		matched, searchErr := h.svc.SearchCache(c.Request.Context(), query)
		list, err, count = matched, searchErr, len(matched)
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"data":    list,
	})
}

// Download GET /api/wikipedia/download/:id?format=...
func (h *WikipediaHandler) Download(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	cached, err := h.svc.GetCachedByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	format, err := filegen.NormalizeFormat(c.DefaultQuery("format", "pdf"))
	if err != nil {
		fail(c, err)
		return
	}

	doc := filegen.Document{
		Topic:       cached.TopicName,
		Title:       cached.Title,
		Explanation: cached.Content,
		SourceURL:   cached.URL,
	}

	filename, path, err := h.gen.Generate(doc, format)
	if err != nil {
		failWith(c, http.StatusInternalServerError, "Error generating file: "+err.Error())
		return
	}

	c.FileAttachment(path, filename)
}
