package api

import (
	"zenith/config"
	"zenith/database"
	"zenith/middleware"
	"zenith/service"

	"github.com/gin-gonic/gin"
)

// PromptHandler 提示词处理器
type PromptHandler struct{}

// NewPromptHandler 创建提示词处理器
func NewPromptHandler() *PromptHandler {
	return &PromptHandler{}
}

// PromptParametersRequest 模型调用参数，未提供的字段取默认值（更新时保持原值）
type PromptParametersRequest struct {
	Temperature      *float64 `json:"temperature" binding:"omitempty,min=0,max=2" example:"0.7"`
	MaxTokens        *int     `json:"maxTokens" binding:"omitempty,min=1" example:"256"`
	TopP             *float64 `json:"topP" binding:"omitempty,min=0,max=1" example:"1"`
	FrequencyPenalty *float64 `json:"frequencyPenalty" binding:"omitempty,min=0,max=2" example:"0"`
	PresencePenalty  *float64 `json:"presencePenalty" binding:"omitempty,min=0,max=2" example:"0"`
}

func (r *PromptParametersRequest) patch() *service.ParametersPatch {
	if r == nil {
		return nil
	}
	return &service.ParametersPatch{
		Temperature:      r.Temperature,
		MaxTokens:        r.MaxTokens,
		TopP:             r.TopP,
		FrequencyPenalty: r.FrequencyPenalty,
		PresencePenalty:  r.PresencePenalty,
	}
}

// CreatePromptRequest 创建提示词请求
type CreatePromptRequest struct {
	Title      string                   `json:"title" binding:"required,max=200" example:"Product launch email"`
	Content    string                   `json:"content" binding:"required" example:"Write a launch email for {{product}}"`
	Project    string                   `json:"project" example:"项目ID，可选"`
	AIModel    string                   `json:"aiModel" binding:"required" example:"AI模型ID"`
	Parameters *PromptParametersRequest `json:"parameters"`
	Tags       []string                 `json:"tags" example:"email,launch"`
}

// UpdatePromptRequest 更新提示词请求，project 传空字符串表示移出项目
type UpdatePromptRequest struct {
	Title      *string                  `json:"title" binding:"omitempty,max=200"`
	Content    *string                  `json:"content"`
	Project    *string                  `json:"project"`
	AIModel    *string                  `json:"aiModel"`
	Parameters *PromptParametersRequest `json:"parameters"`
	Tags       *[]string                `json:"tags"`
}

func (h *PromptHandler) svc() *service.PromptService {
	return service.NewPromptService(database.DB).WithPager(currentPager())
}

// currentPager 分页规则取自配置，未加载配置时使用默认值
func currentPager() service.Pager {
	if cfg := config.GlobalConfig; cfg != nil {
		return service.Pager{
			DefaultLimit: cfg.Pagination.DefaultLimit,
			MaxLimit:     cfg.Pagination.MaxLimit,
		}
	}
	return service.DefaultPager
}

func promptFilter(c *gin.Context) service.PromptFilter {
	return service.PromptFilter{
		ProjectID: c.Query("project"),
		AIModelID: c.Query("aiModel"),
		Tag:       c.Query("tag"),
	}
}

// Create 创建提示词
// @Summary 创建提示词
// @Description 创建提示词，项目必须属于当前用户，AI模型必须存在
// @Tags 提示词
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePromptRequest true "提示词信息"
// @Success 201 {object} Response{data=models.Prompt} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 403 {object} Response "无权使用该项目"
// @Failure 404 {object} Response "项目或AI模型不存在"
// @Router /api/prompts [post]
func (h *PromptHandler) Create(c *gin.Context) {
	var req CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, bindError(err))
		return
	}

	prompt, err := h.svc().Create(c.Request.Context(), middleware.GetCurrentUserID(c), service.PromptInput{
		Title:      req.Title,
		Content:    req.Content,
		ProjectID:  req.Project,
		AIModelID:  req.AIModel,
		Parameters: req.Parameters.patch(),
		Tags:       req.Tags,
	})
	if err != nil {
		HandleError(c, err, "创建提示词失败")
		return
	}

	Created(c, prompt)
}

// List 获取提示词列表
// @Summary 获取提示词列表
// @Description 当前用户的提示词，按创建时间倒序分页，可按项目、AI模型、标签筛选
// @Tags 提示词
// @Produce json
// @Security BearerAuth
// @Param project query string false "项目ID"
// @Param aiModel query string false "AI模型ID"
// @Param tag query string false "标签"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} Response{data=[]models.Prompt} "获取成功"
// @Router /api/prompts [get]
func (h *PromptHandler) List(c *gin.Context) {
	svc := h.svc()
	page := svc.Pager().Parse(c.Query("page"), c.Query("limit"))

	prompts, info, err := svc.List(c.Request.Context(), middleware.GetCurrentUserID(c), promptFilter(c), page)
	if err != nil {
		HandleError(c, err, "查询提示词失败")
		return
	}

	SuccessWithPage(c, prompts, len(prompts), info)
}

// Get 获取单个提示词
// @Summary 获取提示词详情
// @Tags 提示词
// @Produce json
// @Security BearerAuth
// @Param id path string true "提示词ID"
// @Success 200 {object} Response{data=models.Prompt} "获取成功"
// @Failure 403 {object} Response "无权访问"
// @Failure 404 {object} Response "提示词不存在"
// @Router /api/prompts/{id} [get]
func (h *PromptHandler) Get(c *gin.Context) {
	prompt, err := h.svc().Get(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"))
	if err != nil {
		HandleError(c, err, "查询提示词失败")
		return
	}

	Success(c, prompt)
}

// Update 更新提示词
// @Summary 更新提示词
// @Description 部分更新，修改项目或AI模型时重新校验引用
// @Tags 提示词
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "提示词ID"
// @Param request body UpdatePromptRequest true "更新内容"
// @Success 200 {object} Response{data=models.Prompt} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 403 {object} Response "无权修改"
// @Failure 404 {object} Response "提示词、项目或AI模型不存在"
// @Router /api/prompts/{id} [put]
func (h *PromptHandler) Update(c *gin.Context) {
	var req UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, bindError(err))
		return
	}

	prompt, err := h.svc().Update(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"), service.PromptPatch{
		Title:      req.Title,
		Content:    req.Content,
		ProjectID:  req.Project,
		AIModelID:  req.AIModel,
		Parameters: req.Parameters.patch(),
		Tags:       req.Tags,
	})
	if err != nil {
		HandleError(c, err, "更新提示词失败")
		return
	}

	Success(c, prompt)
}

// Delete 删除提示词
// @Summary 删除提示词
// @Tags 提示词
// @Produce json
// @Security BearerAuth
// @Param id path string true "提示词ID"
// @Success 200 {object} Response "删除成功"
// @Failure 403 {object} Response "无权删除"
// @Failure 404 {object} Response "提示词不存在"
// @Router /api/prompts/{id} [delete]
func (h *PromptHandler) Delete(c *gin.Context) {
	if err := h.svc().Delete(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id")); err != nil {
		HandleError(c, err, "删除提示词失败")
		return
	}

	SuccessWithMessage(c, "删除成功", gin.H{})
}

// Use 记录一次使用
// @Summary 使用提示词
// @Description 使用次数加一并刷新最后使用时间
// @Tags 提示词
// @Produce json
// @Security BearerAuth
// @Param id path string true "提示词ID"
// @Success 200 {object} Response{data=models.Prompt} "记录成功"
// @Failure 403 {object} Response "无权使用"
// @Failure 404 {object} Response "提示词不存在"
// @Router /api/prompts/{id}/use [put]
func (h *PromptHandler) Use(c *gin.Context) {
	prompt, err := h.svc().Use(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"))
	if err != nil {
		HandleError(c, err, "记录使用失败")
		return
	}

	Success(c, prompt)
}
