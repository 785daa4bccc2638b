package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"zenith/models"

	"gorm.io/gorm"
)

// AIModelInput 创建模型参数，MaxTokens 为 0 时取默认值
type AIModelInput struct {
	Name        string
	Provider    string
	Description string
	MaxTokens   int
}

// AIModelPatch 更新模型参数，nil 表示不修改
type AIModelPatch struct {
	Name        *string
	Provider    *string
	Description *string
	MaxTokens   *int
}

// AIModelService AI模型的增删改查
// 系统内置模型对所有用户可读，但不可修改或删除
type AIModelService struct {
	store
}

// NewAIModelService 创建模型服务
func NewAIModelService(db *gorm.DB) *AIModelService {
	return &AIModelService{store: newStore(db)}
}

// WithClock 替换时间来源
func (s *AIModelService) WithClock(now Clock) *AIModelService {
	s.now = now
	return s
}

// Create 创建用户私有模型
func (s *AIModelService) Create(ctx context.Context, identity string, in AIModelInput) (*models.AIModel, error) {
	now := s.stamp()
	model := &models.AIModel{
		ID:          newID(),
		Name:        strings.TrimSpace(in.Name),
		Provider:    strings.TrimSpace(in.Provider),
		Description: strings.TrimSpace(in.Description),
		MaxTokens:   in.MaxTokens,
		CreatedBy:   models.UserOwner(identity),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if model.MaxTokens == 0 {
		model.MaxTokens = models.DefaultAIModelMaxTokens
	}
	if err := validateAIModel(model); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, model.Name, ""); err != nil {
		return nil, err
	}

	if err := s.conn(ctx).Create(model).Error; err != nil {
		return nil, duplicateName(err)
	}
	return model, nil
}

// List 系统内置模型与当前用户的私有模型，内置在前，其余按名称排序
func (s *AIModelService) List(ctx context.Context, identity string) ([]models.AIModel, error) {
	list := make([]models.AIModel, 0)
	if err := s.conn(ctx).
		Where("created_by IS NULL OR created_by = ?", identity).
		Order("CASE WHEN created_by IS NULL THEN 0 ELSE 1 END").
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Get 获取单个模型，他人的私有模型不可见
func (s *AIModelService) Get(ctx context.Context, identity, id string) (*models.AIModel, error) {
	model, err := findByID[models.AIModel](ctx, s.store, id, ResourceAIModel)
	if err != nil {
		return nil, err
	}
	if err := authorize(model.Owner(), identity, PolicyShared, OpRead, ResourceAIModel, "访问"); err != nil {
		return nil, err
	}
	return model, nil
}

// Update 部分更新用户私有模型
func (s *AIModelService) Update(ctx context.Context, identity, id string, patch AIModelPatch) (*models.AIModel, error) {
	model, err := findByID[models.AIModel](ctx, s.store, id, ResourceAIModel)
	if err != nil {
		return nil, err
	}
	if err := authorize(model.Owner(), identity, PolicyShared, OpMutate, ResourceAIModel, "修改"); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		model.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Provider != nil {
		model.Provider = strings.TrimSpace(*patch.Provider)
	}
	if patch.Description != nil {
		model.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.MaxTokens != nil {
		model.MaxTokens = *patch.MaxTokens
	}
	if err := validateAIModel(model); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if err := s.ensureNameFree(ctx, model.Name, model.ID); err != nil {
			return nil, err
		}
	}
	model.UpdatedAt = s.stamp()

	if err := updateByID(ctx, s.store, model, model.ID, ResourceAIModel, "created_by", "created_at"); err != nil {
		return nil, duplicateName(err)
	}
	return model, nil
}

// Delete 删除用户私有模型；引用它的提示词保持不变
func (s *AIModelService) Delete(ctx context.Context, identity, id string) error {
	model, err := findByID[models.AIModel](ctx, s.store, id, ResourceAIModel)
	if err != nil {
		return err
	}
	if err := authorize(model.Owner(), identity, PolicyShared, OpMutate, ResourceAIModel, "删除"); err != nil {
		return err
	}
	return s.conn(ctx).Delete(model).Error
}

// Seed 在同一事务中按名称写入内置模型目录，归属强制为系统
// 已存在的同名记录被覆盖为目录中的定义，重复执行结果不变
func (s *AIModelService) Seed(ctx context.Context) ([]models.AIModel, error) {
	now := s.stamp()
	seeded := make([]models.AIModel, 0, len(builtinModels))

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		for _, def := range builtinModels {
			var existing models.AIModel
			err := tx.Where("name = ?", def.Name).First(&existing).Error
			switch {
			case err == nil:
				existing.Provider = def.Provider
				existing.Description = def.Description
				existing.MaxTokens = def.MaxTokens
				existing.CreatedBy = models.SystemOwner()
				existing.UpdatedAt = now
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				seeded = append(seeded, existing)
			case errors.Is(err, gorm.ErrRecordNotFound):
				rec := def
				rec.ID = newID()
				rec.CreatedBy = models.SystemOwner()
				rec.CreatedAt = now
				rec.UpdatedAt = now
				if err := tx.Create(&rec).Error; err != nil {
					return err
				}
				seeded = append(seeded, rec)
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seeded, nil
}

// ensureNameFree 名称全局唯一；exceptID 为更新时的自身 ID
func (s *AIModelService) ensureNameFree(ctx context.Context, name, exceptID string) error {
	var count int64
	q := s.conn(ctx).Model(&models.AIModel{}).Where("name = ?", name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return invalid("name", "模型名称 %s 已存在", name)
	}
	return nil
}

// duplicateName 并发写入时唯一索引冲突同样视为参数错误
func duplicateName(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return invalid("name", "模型名称已存在")
	}
	return err
}

func validateAIModel(m *models.AIModel) error {
	if m.Name == "" {
		return invalid("name", "请填写模型名称")
	}
	if utf8.RuneCountInString(m.Name) > 100 {
		return invalid("name", "模型名称不能超过100个字符")
	}
	if m.Provider == "" {
		return invalid("provider", "请填写模型提供方")
	}
	if utf8.RuneCountInString(m.Provider) > 100 {
		return invalid("provider", "模型提供方不能超过100个字符")
	}
	if utf8.RuneCountInString(m.Description) > 1000 {
		return invalid("description", "模型描述不能超过1000个字符")
	}
	if m.MaxTokens < 1 {
		return invalid("maxTokens", "最大token数必须大于0")
	}
	return nil
}
