package handler

import (
	"net/http"

	"github.com/iceymoss/wiki-fetcher/internal/filegen"
	"github.com/iceymoss/wiki-fetcher/internal/repo"
	"github.com/iceymoss/wiki-fetcher/internal/service"
	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"
	"github.com/iceymoss/wiki-fetcher/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DownloadHandler 目录内容的文件生成与下载
type DownloadHandler struct {
	contents  *service.ContentService
	downloads *repo.DownloadRepo
	gen       *filegen.Generator
}

func NewDownloadHandler(contents *service.ContentService, downloads *repo.DownloadRepo, gen *filegen.Generator) *DownloadHandler {
	return &DownloadHandler{contents: contents, downloads: downloads, gen: gen}
}

// Download POST /api/download/:id?format=pdf|text|txt|markdown|md
func (h *DownloadHandler) Download(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	content, topic, err := h.contents.GetContent(c.Request.Context(), id)
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
		Topic:        topic.Name,
		Title:        content.Title,
		Explanation:  content.Explanation,
		CodeExamples: content.CodeExamples,
	}

	filename, path, err := h.gen.Generate(doc, format)
	if err != nil {
		failWith(c, http.StatusInternalServerError, "Error generating file: "+err.Error())
		return
	}

	// 每次成功渲染必须落一条记录，记录写不进去就不发文件
	record := &objects.Download{
		ContentID: content.ID,
		Format:    format,
		FileName:  filename,
	}
	if err := h.downloads.Create(c.Request.Context(), record); err != nil {
		logger.Error("download record failed", zap.Uint("content_id", content.ID), zap.Error(err))
		h.gen.RemoveFile(filename)
		failWith(c, http.StatusInternalServerError, "Error recording download")
		return
	}

	c.FileAttachment(path, filename)
}
