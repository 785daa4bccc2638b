package cmd

import (
	"fmt"
	"log"
	"strings"

	"zenith/config"

	"github.com/spf13/cobra"
)

var (
	configFile string
	port       string
)

var rootCmd = &cobra.Command{
	Use:   "zenith",
	Short: "Zenith - AI 提示词管理服务",
	Long: `Zenith 是一个管理 AI 提示词的 REST API 服务，
按项目组织提示词，并关联 AI 模型定义。

不带子命令运行时等同于 'zenith serve'。`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute 执行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "外部配置文件路径（可选）")
	rootCmd.PersistentFlags().StringVarP(&port, "port", "p", "", "监听端口，如: 8080 或 :8080")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig 加载配置并应用命令行覆盖
func loadConfig() (*config.Config, error) {
	// 内置配置 + 可选的外部配置覆盖
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	if port != "" {
		cfg.Server.Port = normalizePort(port)
		log.Printf("命令行指定端口: %s", cfg.Server.Port)
	}
	return cfg, nil
}

// normalizePort 自动添加冒号前缀
func normalizePort(p string) string {
	if !strings.HasPrefix(p, ":") {
		return ":" + p
	}
	return p
}
