package cmd

import (
	"fmt"
	"log"

	"zenith/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据表迁移后退出",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// Init 内部会执行迁移
		if err := database.Init(cfg); err != nil {
			return fmt.Errorf("数据库初始化失败: %w", err)
		}
		log.Println("数据表迁移完成")
		return nil
	},
}
