package api

import (
	"zenith/database"
	"zenith/middleware"
	"zenith/service"

	"github.com/gin-gonic/gin"
)

// ProjectHandler 项目处理器
type ProjectHandler struct{}

// NewProjectHandler 创建项目处理器
func NewProjectHandler() *ProjectHandler {
	return &ProjectHandler{}
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Marketing"`
	Description string `json:"description" binding:"max=1000" example:"营销文案相关提示词"`
	Color       string `json:"color" binding:"max=20" example:"#4A90E2"`
}

// UpdateProjectRequest 更新项目请求，未提供的字段保持不变
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Color       *string `json:"color" binding:"omitempty,max=20"`
}

func (h *ProjectHandler) svc() *service.ProjectService {
	return service.NewProjectService(database.DB)
}

// Create 创建项目
// @Summary 创建项目
// @Description 为当前用户创建项目
// @Tags 项目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProjectRequest true "项目信息"
// @Success 201 {object} Response{data=models.Project} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, bindError(err))
		return
	}

	project, err := h.svc().Create(c.Request.Context(), middleware.GetCurrentUserID(c), service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		HandleError(c, err, "创建项目失败")
		return
	}

	Created(c, project)
}

// List 获取项目列表
// @Summary 获取项目列表
// @Description 获取当前用户的全部项目，按创建时间倒序
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Project} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc().List(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		HandleError(c, err, "查询项目失败")
		return
	}

	SuccessWithCount(c, projects, len(projects))
}

// Get 获取单个项目
// @Summary 获取项目详情
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Success 200 {object} Response{data=models.Project} "获取成功"
// @Failure 403 {object} Response "无权访问"
// @Failure 404 {object} Response "项目不存在"
// @Router /api/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.svc().Get(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"))
	if err != nil {
		HandleError(c, err, "查询项目失败")
		return
	}

	Success(c, project)
}

// Update 更新项目
// @Summary 更新项目
// @Description 部分更新项目，归属不可修改
// @Tags 项目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Param request body UpdateProjectRequest true "更新内容"
// @Success 200 {object} Response{data=models.Project} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 403 {object} Response "无权修改"
// @Failure 404 {object} Response "项目不存在"
// @Router /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, bindError(err))
		return
	}

	project, err := h.svc().Update(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id"), service.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		HandleError(c, err, "更新项目失败")
		return
	}

	Success(c, project)
}

// Delete 删除项目
// @Summary 删除项目
// @Description 删除项目，其下的提示词不受影响
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Param id path string true "项目ID"
// @Success 200 {object} Response "删除成功"
// @Failure 403 {object} Response "无权删除"
// @Failure 404 {object} Response "项目不存在"
// @Router /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.svc().Delete(c.Request.Context(), middleware.GetCurrentUserID(c), c.Param("id")); err != nil {
		HandleError(c, err, "删除项目失败")
		return
	}

	SuccessWithMessage(c, "删除成功", gin.H{})
}
