package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"zenith/models"

	"gorm.io/gorm"
)

// ProjectInput 创建项目参数
type ProjectInput struct {
	Name        string
	Description string
	Color       string
}

// ProjectPatch 更新项目参数，nil 表示不修改
type ProjectPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// ProjectService 项目的增删改查，所有操作限定在归属用户内
type ProjectService struct {
	store
}

// NewProjectService 创建项目服务
func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{store: newStore(db)}
}

// WithClock 替换时间来源
func (s *ProjectService) WithClock(now Clock) *ProjectService {
	s.now = now
	return s
}

// Create 创建项目，归属为当前用户
func (s *ProjectService) Create(ctx context.Context, identity string, in ProjectInput) (*models.Project, error) {
	now := s.stamp()
	project := &models.Project{
		ID:          newID(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		UserID:      identity,
		Color:       strings.TrimSpace(in.Color),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if project.Color == "" {
		project.Color = models.DefaultProjectColor
	}
	if err := validateProject(project); err != nil {
		return nil, err
	}

	if err := s.conn(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// List 当前用户的全部项目，按创建时间倒序
func (s *ProjectService) List(ctx context.Context, identity string) ([]models.Project, error) {
	projects := make([]models.Project, 0)
	if err := s.conn(ctx).
		Where("user_id = ?", identity).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Get 获取单个项目
func (s *ProjectService) Get(ctx context.Context, identity, id string) (*models.Project, error) {
	project, err := findByID[models.Project](ctx, s.store, id, ResourceProject)
	if err != nil {
		return nil, err
	}
	if err := authorize(project.Owner(), identity, PolicyOwned, OpRead, ResourceProject, "访问"); err != nil {
		return nil, err
	}
	return project, nil
}

// Update 部分更新项目，归属不可修改
func (s *ProjectService) Update(ctx context.Context, identity, id string, patch ProjectPatch) (*models.Project, error) {
	project, err := findByID[models.Project](ctx, s.store, id, ResourceProject)
	if err != nil {
		return nil, err
	}
	if err := authorize(project.Owner(), identity, PolicyOwned, OpMutate, ResourceProject, "修改"); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		project.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		project.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Color != nil {
		project.Color = strings.TrimSpace(*patch.Color)
		if project.Color == "" {
			project.Color = models.DefaultProjectColor
		}
	}
	if err := validateProject(project); err != nil {
		return nil, err
	}
	project.UpdatedAt = s.stamp()

	if err := updateByID(ctx, s.store, project, project.ID, ResourceProject, "user_id", "created_at"); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete 删除项目；引用它的提示词保持不变
func (s *ProjectService) Delete(ctx context.Context, identity, id string) error {
	project, err := findByID[models.Project](ctx, s.store, id, ResourceProject)
	if err != nil {
		return err
	}
	if err := authorize(project.Owner(), identity, PolicyOwned, OpMutate, ResourceProject, "删除"); err != nil {
		return err
	}
	return s.conn(ctx).Delete(project).Error
}

func validateProject(p *models.Project) error {
	if p.Name == "" {
		return invalid("name", "请填写项目名称")
	}
	if utf8.RuneCountInString(p.Name) > 100 {
		return invalid("name", "项目名称不能超过100个字符")
	}
	if utf8.RuneCountInString(p.Description) > 1000 {
		return invalid("description", "项目描述不能超过1000个字符")
	}
	if utf8.RuneCountInString(p.Color) > 20 {
		return invalid("color", "颜色值不能超过20个字符")
	}
	return nil
}
