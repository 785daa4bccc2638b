package cmd

import (
	"fmt"
	"time"

	"zenith/middleware"

	"github.com/spf13/cobra"
)

var (
	tokenUser     string
	tokenUsername string
	tokenTTL      time.Duration
)

// tokenCmd 本地调试用，生产环境令牌由外部身份服务签发
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "用当前配置的密钥签发调试令牌",
	Example: `  zenith token --user 6f1c2d3e
  zenith token --user alice --ttl 2h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		middleware.InitJWT(cfg)

		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.JWT.ExpireTime
		}
		token, err := middleware.GenerateToken(tokenUser, tokenUsername, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", "", "用户ID")
	tokenCmd.Flags().StringVar(&tokenUsername, "username", "", "用户名（可选）")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "有效期，默认取 jwt.expire_hours")
	_ = tokenCmd.MarkFlagRequired("user")
}
