package api

import (
	"log"
	"net/http"

	"zenith/database"
	"zenith/middleware"
	"zenith/service"

	"github.com/gin-gonic/gin"
)

// AIModelHandler AI模型处理器
type AIModelHandler struct{}

// NewAIModelHandler 创建AI模型处理器
func NewAIModelHandler() *AIModelHandler {
	return &AIModelHandler{}
}

// CreateAIModelRequest 创建AI模型请求
type CreateAIModelRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Mistral 7B"`
	Provider    string `json:"provider" binding:"required,max=100" example:"Mistral"`
	Description string `json:"description" binding:"max=1000"`
	MaxTokens   int    `json:"maxTokens" binding:"omitempty,min=1" example:"8192"`
}

// UpdateAIModelRequest 更新AI模型请求
type UpdateAIModelRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Provider    *string `json:"provider" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	MaxTokens   *int    `json:"maxTokens" binding:"omitempty,min=1"`
}

func (h *AIModelHandler) svc() *service.AIModelService {
	return service.NewAIModelService(database.DB)
}

// CreateAIModel 创建AI模型
// @Summary 创建AI模型
// @Description 创建当前用户私有的AI模型定义，名称全局唯一
// @Tags AI模型
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAIModelRequest true "AI模型信息"
// @Success 201 {object} Response{data=models.AIModel} "创建成功"
// @Failure 400 {object} Response "参数错误或模型名称已存在"
// @Failure 401 {object} Response "未授权"
// @Router /api/ai-models [post]
func (h *AIModelHandler) CreateAIModel(c *gin.Context) {
	var req CreateAIModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, bindError(err))
		return
	}

	model, err := h.svc().Create(c.Request.Context(), middleware.GetCurrentUserID(c), service.AIModelInput{
		Name:        req.Name,
		Provider:    req.Provider,
		Description: req.Description,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		HandleError(c, err, "创建失败")
		return
	}

	Created(c, model)
}

// GetAllAIModels 获取AI模型列表
// @Summary 获取AI模型列表
// @Description 系统内置模型与当前用户的私有模型，内置模型在前
// @Tags AI模型
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.AIModel} "获取成功"
// @Router /api/ai-models [get]
func (h *AIModelHandler) GetAllAIModels(c *gin.Context) {
	list, err := h.svc().List(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		HandleError(c, err, "查询失败")
		return
	}

	SuccessWithCount(c, list, len(list))
}

// GetAIModel 获取单个AI模型
// @Summary 获取单个AI模型
// @Tags AI模型
// @Produce json
// @Security BearerAuth
// @Param id path string true "AI模型ID"
// @Success 200 {object} Response{data=models.AIModel} "获取成功"
// @Failure 403 {object} Response "无权访问"
// @Failure 404 {object} Response "模型不存在"
// @Router /api/ai-models/{id} [get]
func (h *AIModelHandler) GetAIModel(c *gin.Context) {
	model, err := h.svc().Get(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"))
	if err != nil {
		HandleError(c, err, "查询失败")
		return
	}

	Success(c, model)
}

// UpdateAIModel 更新AI模型
// @Summary 更新AI模型
// @Description 只能修改自己创建的模型，系统内置模型不可修改
// @Tags AI模型
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "AI模型ID"
// @Param request body UpdateAIModelRequest true "更新内容"
// @Success 200 {object} Response{data=models.AIModel} "更新成功"
// @Failure 400 {object} Response "参数错误或模型名称已存在"
// @Failure 403 {object} Response "系统内置模型或无权修改"
// @Failure 404 {object} Response "模型不存在"
// @Router /api/ai-models/{id} [put]
func (h *AIModelHandler) UpdateAIModel(c *gin.Context) {
	var req UpdateAIModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, bindError(err))
		return
	}

	model, err := h.svc().Update(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"), service.AIModelPatch{
		Name:        req.Name,
		Provider:    req.Provider,
		Description: req.Description,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		HandleError(c, err, "更新失败")
		return
	}

	Success(c, model)
}

// DeleteAIModel 删除AI模型
// @Summary 删除AI模型
// @Description 只能删除自己创建的模型，引用它的提示词保持不变
// @Tags AI模型
// @Produce json
// @Security BearerAuth
// @Param id path string true "AI模型ID"
// @Success 200 {object} Response "删除成功"
// @Failure 403 {object} Response "系统内置模型或无权删除"
// @Failure 404 {object} Response "模型不存在"
// @Router /api/ai-models/{id} [delete]
func (h *AIModelHandler) DeleteAIModel(c *gin.Context) {
	if err := h.svc().Delete(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id")); err != nil {
		HandleError(c, err, "删除失败")
		return
	}

	SuccessWithMessage(c, "删除成功", gin.H{})
}

// SeedAIModels 写入内置模型目录
// @Summary 初始化内置AI模型
// @Description 按名称幂等写入 GPT-4、GPT-3.5 Turbo、Claude 2、Llama 2，归属为系统
// @Tags AI模型
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.AIModel} "初始化成功"
// @Router /api/ai-models/seed [post]
func (h *AIModelHandler) SeedAIModels(c *gin.Context) {
	seeded, err := h.svc().Seed(c.Request.Context())
	if err != nil {
		HandleError(c, err, "初始化失败")
		return
	}

	log.Printf("[seed] 用户 %s 写入内置模型 %d 个", middleware.GetCurrentUserID(c), len(seeded))
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "System AI models seeded successfully",
		Count:   intRef(len(seeded)),
		Data:    seeded,
	})
}

func intRef(n int) *int {
	return &n
}
