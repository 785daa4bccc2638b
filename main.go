package main

import (
	"os"

	"zenith/cmd"
)

// @title Zenith API
// @version 1.0
// @description AI 提示词管理 API：按项目组织提示词，并关联 AI 模型定义
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
