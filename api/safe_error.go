package api

import (
	"zenith/config"
)

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// bindError 请求体解析失败时的提示
func bindError(err error) string {
	return SafeErrorMessage(err, "请求参数错误")
}
