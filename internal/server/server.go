package server

import (
	"log"
	"net/http"
	"time"

	"github.com/iceymoss/wiki-fetcher/internal/conf"
	"github.com/iceymoss/wiki-fetcher/internal/engine"
	"github.com/iceymoss/wiki-fetcher/internal/filegen"
	"github.com/iceymoss/wiki-fetcher/internal/handler"
	"github.com/iceymoss/wiki-fetcher/internal/middleware"
	"github.com/iceymoss/wiki-fetcher/internal/repo"
	"github.com/iceymoss/wiki-fetcher/internal/service"
	"github.com/iceymoss/wiki-fetcher/internal/tasks"
	"github.com/iceymoss/wiki-fetcher/pkg/wikipedia"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	engine    *gin.Engine
	scheduler *engine.Scheduler
}

// NewServer 组装整个服务：repo → service → handler，全部显式注入
func NewServer(cfg *conf.Config, conn *gorm.DB) *Server {
	// repo 层
	topicRepo := repo.NewTopicRepo(conn)
	contentRepo := repo.NewContentRepo(conn)
	downloadRepo := repo.NewDownloadRepo(conn)
	keyRepo := repo.NewAPIKeyRepo(conn)
	wikiRepo := repo.NewWikiRepo(conn)

	// service 层
	contentSvc := service.NewContentService(topicRepo, contentRepo)
	keySvc := service.NewAPIKeyService(keyRepo)

	wikiClient := wikipedia.NewClient(
		cfg.Wikipedia.APIBase,
		cfg.Wikipedia.UserAgent,
		time.Duration(cfg.Wikipedia.TimeoutSeconds)*time.Second,
	)
	wikiSvc := service.NewWikipediaService(wikiClient, wikiRepo)

	gen := filegen.NewGenerator(cfg.Download.Dir)

	// 调度器：先挂代码注册的自动任务，再挂配置文件声明的
	scheduler := engine.NewScheduler()
	tasks.ApplyAutoJobs(scheduler)
	for _, job := range cfg.Jobs {
		if !job.Enable {
			continue
		}
		err := scheduler.AddJob(job.Cron, job.Name, job.Name, job.Params, tasks.SourceYAML)
		if err != nil {
			log.Printf("⚠️ Failed to schedule %s: %v", job.Name, err)
		} else {
			log.Printf("✅ Job scheduled: %s [%s]", job.Name, job.Cron)
		}
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()

	contentHdl := handler.NewContentHandler(contentSvc)
	downloadHdl := handler.NewDownloadHandler(contentSvc, downloadRepo, gen)
	wikiHdl := handler.NewWikipediaHandler(wikiSvc, gen)
	keyHdl := handler.NewKeyHandler(keySvc)

	api := router.Group("/api")
	{
		api.GET("/topics", contentHdl.ListTopics)
		api.GET("/topics/search", contentHdl.SearchTopics)
		api.GET("/topics/:id", contentHdl.GetTopic)
		api.GET("/topics/:id/content", contentHdl.GetTopicContent)
		api.GET("/content/:id", contentHdl.GetContent)
		api.GET("/search", contentHdl.SearchAll)
		api.GET("/stats", contentHdl.Stats)

		api.POST("/download/:id", downloadHdl.Download)

		api.POST("/keys/generate", keyHdl.Generate)
		api.GET("/keys/list", keyHdl.List)

		// Wikipedia 相关接口统一挂令牌校验
		wiki := api.Group("/wikipedia", middleware.RequireAPIKey(keySvc))
		{
			wiki.POST("/search", wikiHdl.Search)
			wiki.POST("/fetch", wikiHdl.Fetch)
			wiki.GET("/cached/:topic", wikiHdl.Cached)
			wiki.GET("/cache/search", wikiHdl.CacheSearch)
			wiki.GET("/download/:id", wikiHdl.Download)
		}

		// 调度器状态与手动触发
		api.GET("/tasks", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": scheduler.Stats.GetAll()})
		})
		api.POST("/tasks/:name/run", func(c *gin.Context) {
			if err := scheduler.ManualRun(c.Param("name")); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Triggered"})
		})
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Resource not found"})
	})

	return &Server{engine: router, scheduler: scheduler}
}

func (s *Server) Run(addr string) error {
	// 启动任务调度器
	s.scheduler.Start()

	// 启动 web server
	return s.engine.Run(addr)
}
