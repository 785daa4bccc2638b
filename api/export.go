package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"zenith/database"
	"zenith/middleware"
	"zenith/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// ExportPrompts 导出提示词
// @Summary 导出提示词
// @Description 按列表相同的筛选条件导出当前用户的全部提示词（不分页）
// @Tags 导出
// @Produce json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string false "导出格式 csv / json / xlsx" default(csv)
// @Param project query string false "项目ID"
// @Param aiModel query string false "AI模型ID"
// @Param tag query string false "标签"
// @Success 200 {file} file "导出文件"
// @Failure 400 {object} Response "不支持的导出格式"
// @Failure 401 {object} Response "未授权"
// @Router /api/prompts/export [get]
func (h *ExportHandler) ExportPrompts(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	switch format {
	case "csv", "json", "xlsx":
	default:
		BadRequest(c, "不支持的导出格式，可选: csv, json, xlsx")
		return
	}

	prompts, err := service.NewPromptService(database.DB).
		ListAll(c.Request.Context(), middleware.GetCurrentUserID(c), promptFilter(c))
	if err != nil {
		HandleError(c, err, "查询数据失败")
		return
	}

	if format == "json" {
		SuccessWithCount(c, prompts, len(prompts))
		return
	}

	buf := new(bytes.Buffer)
	var contentType string
	if format == "csv" {
		err = service.WritePromptsCSV(buf, prompts)
		contentType = "text/csv; charset=utf-8"
	} else {
		err = service.WritePromptsXLSX(buf, prompts)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		HandleError(c, err, "生成导出文件失败")
		return
	}

	filename := fmt.Sprintf("prompts_%s.%s", time.Now().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
