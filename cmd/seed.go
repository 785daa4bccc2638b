package cmd

import (
	"fmt"

	"zenith/database"
	"zenith/service"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "写入内置 AI 模型目录",
	Long: `按名称幂等写入 GPT-4、GPT-3.5 Turbo、Claude 2、Llama 2，归属为系统。
同名的已有模型会被覆盖为目录中的定义。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := database.Init(cfg); err != nil {
			return fmt.Errorf("数据库初始化失败: %w", err)
		}

		seeded, err := service.NewAIModelService(database.DB).Seed(cmd.Context())
		if err != nil {
			return fmt.Errorf("写入内置模型失败: %w", err)
		}
		for _, m := range seeded {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-10s %d\n", m.Name, m.Provider, m.MaxTokens)
		}
		return nil
	},
}
