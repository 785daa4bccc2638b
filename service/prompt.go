package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"zenith/models"

	"gorm.io/gorm"
)

// ParametersPatch 提示词参数，nil 字段保持原值（创建时为默认值）
type ParametersPatch struct {
	Temperature      *float64
	MaxTokens        *int
	TopP             *float64
	FrequencyPenalty *float64
	PresencePenalty  *float64
}

func (p *ParametersPatch) apply(dst *models.PromptParameters) {
	if p == nil {
		return
	}
	if p.Temperature != nil {
		dst.Temperature = *p.Temperature
	}
	if p.MaxTokens != nil {
		dst.MaxTokens = *p.MaxTokens
	}
	if p.TopP != nil {
		dst.TopP = *p.TopP
	}
	if p.FrequencyPenalty != nil {
		dst.FrequencyPenalty = *p.FrequencyPenalty
	}
	if p.PresencePenalty != nil {
		dst.PresencePenalty = *p.PresencePenalty
	}
}

// PromptInput 创建提示词参数，ProjectID 为空表示不归入项目
type PromptInput struct {
	Title      string
	Content    string
	ProjectID  string
	AIModelID  string
	Parameters *ParametersPatch
	Tags       []string
}

// PromptPatch 更新提示词参数，nil 表示不修改
// ProjectID 指向空串表示移出项目
type PromptPatch struct {
	Title      *string
	Content    *string
	ProjectID  *string
	AIModelID  *string
	Parameters *ParametersPatch
	Tags       *[]string
}

// PromptFilter 列表筛选条件
type PromptFilter struct {
	ProjectID string
	AIModelID string
	Tag       string
}

// PromptService 提示词的增删改查与使用计数
type PromptService struct {
	store
	refs  *ReferenceValidator
	pager Pager
}

// NewPromptService 创建提示词服务
func NewPromptService(db *gorm.DB) *PromptService {
	return &PromptService{
		store: newStore(db),
		refs:  NewReferenceValidator(db),
		pager: DefaultPager,
	}
}

// WithClock 替换时间来源
func (s *PromptService) WithClock(now Clock) *PromptService {
	s.now = now
	return s
}

// WithPager 替换分页规则
func (s *PromptService) WithPager(p Pager) *PromptService {
	s.pager = p
	return s
}

// Pager 当前分页规则
func (s *PromptService) Pager() Pager {
	return s.pager
}

// Create 创建提示词，先校验引用再写入
func (s *PromptService) Create(ctx context.Context, identity string, in PromptInput) (*models.Prompt, error) {
	projectID := strings.TrimSpace(in.ProjectID)
	aiModelID := strings.TrimSpace(in.AIModelID)

	now := s.stamp()
	prompt := &models.Prompt{
		ID:         newID(),
		Title:      strings.TrimSpace(in.Title),
		Content:    strings.TrimSpace(in.Content),
		UserID:     identity,
		AIModelID:  aiModelID,
		Parameters: models.DefaultPromptParameters(),
		Tags:       models.NormalizeTags(in.Tags),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if projectID != "" {
		prompt.ProjectID = &projectID
	}
	in.Parameters.apply(&prompt.Parameters)
	if err := validatePrompt(prompt); err != nil {
		return nil, err
	}

	if err := s.refs.Validate(ctx, identity, projectID, aiModelID); err != nil {
		return nil, err
	}

	if err := s.conn(ctx).Create(prompt).Error; err != nil {
		return nil, err
	}
	if err := s.expand(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// List 当前用户的提示词，按创建时间倒序分页
func (s *PromptService) List(ctx context.Context, identity string, filter PromptFilter, page Pagination) ([]models.Prompt, PageInfo, error) {
	page = s.pager.normalize(page)

	var total int64
	if err := s.scope(ctx, identity, filter).Model(&models.Prompt{}).Count(&total).Error; err != nil {
		return nil, PageInfo{}, err
	}

	prompts := make([]models.Prompt, 0)
	if err := s.scope(ctx, identity, filter).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&prompts).Error; err != nil {
		return nil, PageInfo{}, err
	}
	if err := s.expand(ctx, pointers(prompts)...); err != nil {
		return nil, PageInfo{}, err
	}
	return prompts, page.Info(total), nil
}

// ListAll 不分页的完整列表，用于导出
func (s *PromptService) ListAll(ctx context.Context, identity string, filter PromptFilter) ([]models.Prompt, error) {
	prompts := make([]models.Prompt, 0)
	if err := s.scope(ctx, identity, filter).
		Order("created_at DESC").
		Find(&prompts).Error; err != nil {
		return nil, err
	}
	if err := s.expand(ctx, pointers(prompts)...); err != nil {
		return nil, err
	}
	return prompts, nil
}

// Get 获取单个提示词，附带项目与模型投影
func (s *PromptService) Get(ctx context.Context, identity, id string) (*models.Prompt, error) {
	prompt, err := s.owned(ctx, identity, id, OpRead, "访问")
	if err != nil {
		return nil, err
	}
	if err := s.expand(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// Update 部分更新提示词，引用发生变化时重新校验
func (s *PromptService) Update(ctx context.Context, identity, id string, patch PromptPatch) (*models.Prompt, error) {
	prompt, err := s.owned(ctx, identity, id, OpMutate, "修改")
	if err != nil {
		return nil, err
	}

	var checkProject, checkModel string
	if patch.ProjectID != nil {
		projectID := strings.TrimSpace(*patch.ProjectID)
		if projectID == "" {
			prompt.ProjectID = nil
		} else {
			if prompt.ProjectID == nil || *prompt.ProjectID != projectID {
				checkProject = projectID
			}
			prompt.ProjectID = &projectID
		}
	}
	if patch.AIModelID != nil {
		aiModelID := strings.TrimSpace(*patch.AIModelID)
		if aiModelID != prompt.AIModelID {
			checkModel = aiModelID
		}
		prompt.AIModelID = aiModelID
	}
	if patch.Title != nil {
		prompt.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		prompt.Content = strings.TrimSpace(*patch.Content)
	}
	patch.Parameters.apply(&prompt.Parameters)
	if patch.Tags != nil {
		prompt.Tags = models.NormalizeTags(*patch.Tags)
	}
	if err := validatePrompt(prompt); err != nil {
		return nil, err
	}

	if checkProject != "" || checkModel != "" {
		if err := s.refs.Validate(ctx, identity, checkProject, checkModel); err != nil {
			return nil, err
		}
	}

	prompt.UpdatedAt = s.stamp()
	// 使用计数只由 Use 原子更新
	if err := updateByID(ctx, s.store, prompt, prompt.ID, ResourcePrompt,
		"user_id", "usage_count", "last_used", "created_at"); err != nil {
		return nil, err
	}
	return s.Get(ctx, identity, prompt.ID)
}

// Delete 删除提示词
func (s *PromptService) Delete(ctx context.Context, identity, id string) error {
	prompt, err := s.owned(ctx, identity, id, OpMutate, "删除")
	if err != nil {
		return err
	}
	return s.conn(ctx).Delete(prompt).Error
}

// Use 记录一次使用：计数加一并刷新最后使用时间
// 自增在单条 UPDATE 中完成，并发调用不会丢失计数
func (s *PromptService) Use(ctx context.Context, identity, id string) (*models.Prompt, error) {
	prompt, err := s.owned(ctx, identity, id, OpMutate, "使用")
	if err != nil {
		return nil, err
	}

	now := s.stamp()
	result := s.conn(ctx).Model(&models.Prompt{}).
		Where("id = ?", prompt.ID).
		UpdateColumns(map[string]interface{}{
			"usage_count": gorm.Expr("usage_count + ?", 1),
			"last_used":   now,
			"updated_at":  now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: ResourcePrompt}
	}

	return s.Get(ctx, identity, prompt.ID)
}

func (s *PromptService) owned(ctx context.Context, identity, id string, op Operation, action string) (*models.Prompt, error) {
	prompt, err := findByID[models.Prompt](ctx, s.store, id, ResourcePrompt)
	if err != nil {
		return nil, err
	}
	if err := authorize(prompt.Owner(), identity, PolicyOwned, op, ResourcePrompt, action); err != nil {
		return nil, err
	}
	return prompt, nil
}

// scope 归属与筛选条件
func (s *PromptService) scope(ctx context.Context, identity string, filter PromptFilter) *gorm.DB {
	q := s.conn(ctx).Where("user_id = ?", identity)
	if v := strings.TrimSpace(filter.ProjectID); v != "" {
		q = q.Where("project_id = ?", v)
	}
	if v := strings.TrimSpace(filter.AIModelID); v != "" {
		q = q.Where("ai_model_id = ?", v)
	}
	if v := strings.TrimSpace(filter.Tag); v != "" {
		q = q.Where(tagCondition(v))
	}
	return q
}

// tagCondition 标签集合包含 tag：任一元素边界片段命中即可
func tagCondition(tag string) (string, []interface{}) {
	patterns := models.TagPatterns(tag)
	conds := make([]string, len(patterns))
	args := make([]interface{}, len(patterns))
	for i, p := range patterns {
		conds[i] = "tags LIKE ? ESCAPE '!'"
		args[i] = "%" + escapeLike(p) + "%"
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// expand 批量填充项目与模型投影，引用已被删除时保持为空
func (s *PromptService) expand(ctx context.Context, prompts ...*models.Prompt) error {
	if len(prompts) == 0 {
		return nil
	}

	projectIDs := make([]string, 0, len(prompts))
	modelIDs := make([]string, 0, len(prompts))
	for _, p := range prompts {
		if p.ProjectID != nil && *p.ProjectID != "" {
			projectIDs = append(projectIDs, *p.ProjectID)
		}
		if p.AIModelID != "" {
			modelIDs = append(modelIDs, p.AIModelID)
		}
	}

	projects := make(map[string]models.ProjectRef)
	if len(projectIDs) > 0 {
		var refs []models.ProjectRef
		if err := s.conn(ctx).Model(&models.Project{}).
			Select("id", "name").
			Where("id IN ?", projectIDs).
			Find(&refs).Error; err != nil {
			return err
		}
		for _, r := range refs {
			projects[r.ID] = r
		}
	}

	aiModels := make(map[string]models.AIModelRef)
	if len(modelIDs) > 0 {
		var refs []models.AIModelRef
		if err := s.conn(ctx).Model(&models.AIModel{}).
			Select("id", "name", "provider").
			Where("id IN ?", modelIDs).
			Find(&refs).Error; err != nil {
			return err
		}
		for _, r := range refs {
			aiModels[r.ID] = r
		}
	}

	for _, p := range prompts {
		p.Project = nil
		p.AIModel = nil
		if p.ProjectID != nil {
			if ref, ok := projects[*p.ProjectID]; ok {
				p.Project = &ref
			}
		}
		if ref, ok := aiModels[p.AIModelID]; ok {
			p.AIModel = &ref
		}
	}
	return nil
}

func pointers(prompts []models.Prompt) []*models.Prompt {
	out := make([]*models.Prompt, len(prompts))
	for i := range prompts {
		out[i] = &prompts[i]
	}
	return out
}

func validatePrompt(p *models.Prompt) error {
	if p.Title == "" {
		return invalid("title", "请填写提示词标题")
	}
	if utf8.RuneCountInString(p.Title) > 200 {
		return invalid("title", "提示词标题不能超过200个字符")
	}
	if p.Content == "" {
		return invalid("content", "请填写提示词内容")
	}
	if p.AIModelID == "" {
		return invalid("aiModel", "请选择AI模型")
	}

	params := p.Parameters
	if params.Temperature < 0 || params.Temperature > 2 {
		return invalid("parameters.temperature", "temperature 必须在 0 到 2 之间")
	}
	if params.MaxTokens < 1 {
		return invalid("parameters.maxTokens", "maxTokens 必须大于0")
	}
	if params.TopP < 0 || params.TopP > 1 {
		return invalid("parameters.topP", "topP 必须在 0 到 1 之间")
	}
	if params.FrequencyPenalty < 0 || params.FrequencyPenalty > 2 {
		return invalid("parameters.frequencyPenalty", "frequencyPenalty 必须在 0 到 2 之间")
	}
	if params.PresencePenalty < 0 || params.PresencePenalty > 2 {
		return invalid("parameters.presencePenalty", "presencePenalty 必须在 0 到 2 之间")
	}
	return nil
}
