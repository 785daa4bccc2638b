package router

import (
	"net/http"
	"time"

	"zenith/api"
	"zenith/config"
	"zenith/database"
	_ "zenith/docs"
	"zenith/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	// CORS 中间件
	r.Use(cors.New(CORSConfig(cfg.Server.CORSOrigins)))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Zenith API is running")
	})

	// 健康检查
	api.NewHealthHandler("zenith", config.Version, database.GetDB).RegisterRoutes(r)

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiGroup := r.Group("/api")
	if cfg.RateLimit.Enabled {
		apiGroup.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	apiGroup.Use(middleware.JWTAuth())
	{
		projectHandler := api.NewProjectHandler()
		projects := apiGroup.Group("/projects")
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.PUT("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)
		}

		aiModelHandler := api.NewAIModelHandler()
		aiModels := apiGroup.Group("/ai-models")
		{
			aiModels.POST("", aiModelHandler.CreateAIModel)
			aiModels.GET("", aiModelHandler.GetAllAIModels)
			aiModels.POST("/seed", aiModelHandler.SeedAIModels)
			aiModels.GET("/:id", aiModelHandler.GetAIModel)
			aiModels.PUT("/:id", aiModelHandler.UpdateAIModel)
			aiModels.DELETE("/:id", aiModelHandler.DeleteAIModel)
		}

		promptHandler := api.NewPromptHandler()
		exportHandler := api.NewExportHandler()
		prompts := apiGroup.Group("/prompts")
		{
			prompts.POST("", promptHandler.Create)
			prompts.GET("", promptHandler.List)
			prompts.GET("/export", exportHandler.ExportPrompts)
			prompts.GET("/:id", promptHandler.Get)
			prompts.PUT("/:id", promptHandler.Update)
			prompts.DELETE("/:id", promptHandler.Delete)
			prompts.PUT("/:id/use", promptHandler.Use)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		api.NotFound(c, "接口不存在")
	})

	return r
}

// CORSConfig 跨域配置，origins 为空或包含 * 时允许所有来源
func CORSConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
