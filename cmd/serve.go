package cmd

import (
	"context"
	"fmt"
	"log"

	"zenith/config"
	"zenith/database"
	"zenith/middleware"
	"zenith/router"
	"zenith/service"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 打印配置信息
	config.PrintConfig()

	// 初始化数据库
	if err := database.Init(cfg); err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}

	if cfg.Database.SeedOnStart {
		seeded, err := service.NewAIModelService(database.DB).Seed(context.Background())
		if err != nil {
			return fmt.Errorf("写入内置模型失败: %w", err)
		}
		log.Printf("已写入内置AI模型 %d 个", len(seeded))
	}

	// 初始化 JWT
	middleware.InitJWT(cfg)

	// 设置路由
	r := router.SetupRouter(cfg)

	log.Printf("==========================================")
	log.Printf("  Zenith API v%s 已启动", config.Version)
	log.Printf("==========================================")
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API接口:  http://localhost%s/api/", cfg.Server.Port)
	log.Printf("  健康检查: http://localhost%s/health", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("服务器启动失败: %w", err)
	}
	return nil
}
