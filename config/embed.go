package config

import (
	_ "embed"
)

// DefaultConfigYAML 内置默认配置
//
//go:embed default.yaml
var DefaultConfigYAML []byte

// defaultJWTSecret 与 default.yaml 中的开发密钥保持一致，release 模式下禁止使用
const defaultJWTSecret = "zenith-dev-secret-change-me"

// Version 服务版本，构建时可通过 -ldflags "-X zenith/config.Version=..." 覆盖
var Version = "1.0.0"
