package service

import (
	"context"
	"testing"

	"zenith/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIModelService_Create(t *testing.T) {
	svc := NewAIModelService(newTestDB(t))
	ctx := context.Background()

	m, err := svc.Create(ctx, "alice", AIModelInput{Name: " My Model ", Provider: " Local "})
	require.NoError(t, err)
	assert.Equal(t, "My Model", m.Name)
	assert.Equal(t, "Local", m.Provider)
	assert.Equal(t, models.DefaultAIModelMaxTokens, m.MaxTokens)
	id, ok := m.CreatedBy.UserID()
	assert.True(t, ok)
	assert.Equal(t, "alice", id)

	_, err = svc.Create(ctx, "bob", AIModelInput{Name: "My Model", Provider: "Other"})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, "alice", AIModelInput{Name: "No Provider"})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, "alice", AIModelInput{Name: "Bad", Provider: "x", MaxTokens: -1})
	assert.True(t, IsValidation(err))
}

func TestAIModelService_Seed_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAIModelService(db)
	ctx := context.Background()

	seeded, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Len(t, seeded, 4)

	_, err = svc.Seed(ctx)
	require.NoError(t, err)

	var count int64
	db.Model(&models.AIModel{}).Count(&count)
	assert.Equal(t, int64(4), count)

	var gpt4 models.AIModel
	require.NoError(t, db.Where("name = ?", "GPT-4").First(&gpt4).Error)
	assert.True(t, gpt4.IsSystem())
	assert.Equal(t, "OpenAI", gpt4.Provider)
	assert.Equal(t, 8192, gpt4.MaxTokens)
}

func TestAIModelService_Seed_ClaimsExistingName(t *testing.T) {
	db := newTestDB(t)
	svc := NewAIModelService(db)
	ctx := context.Background()

	mine, err := svc.Create(ctx, "alice", AIModelInput{Name: "Llama 2", Provider: "self-hosted", MaxTokens: 2048})
	require.NoError(t, err)

	_, err = svc.Seed(ctx)
	require.NoError(t, err)

	var llama models.AIModel
	require.NoError(t, db.Where("name = ?", "Llama 2").First(&llama).Error)
	assert.Equal(t, mine.ID, llama.ID)
	assert.True(t, llama.IsSystem())
	assert.Equal(t, "Meta", llama.Provider)
	assert.Equal(t, 4096, llama.MaxTokens)
}

func TestAIModelService_List_SystemFirst(t *testing.T) {
	svc := NewAIModelService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice", AIModelInput{Name: "Alpha", Provider: "Local"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", AIModelInput{Name: "Bob Private", Provider: "Local"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 5)

	names := make([]string, 0, len(list))
	for _, m := range list {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Claude 2", "GPT-3.5 Turbo", "GPT-4", "Llama 2", "Alpha"}, names)
	assert.NotContains(t, names, "Bob Private")
}

func TestAIModelService_PrivateIsolation(t *testing.T) {
	svc := NewAIModelService(newTestDB(t))
	ctx := context.Background()

	m, err := svc.Create(ctx, "alice", AIModelInput{Name: "Secret", Provider: "Local"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "bob", m.ID)
	assert.True(t, IsForbidden(err))

	list, err := svc.List(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, list, 0)

	_, err = svc.Update(ctx, "bob", m.ID, AIModelPatch{Name: strPtr("Stolen")})
	assert.True(t, IsForbidden(err))
	assert.True(t, IsForbidden(svc.Delete(ctx, "bob", m.ID)))

	got, err := svc.Get(ctx, "alice", m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Secret", got.Name)
}

func TestAIModelService_SystemProtected(t *testing.T) {
	db := newTestDB(t)
	svc := NewAIModelService(db)
	ctx := context.Background()

	seeded, err := svc.Seed(ctx)
	require.NoError(t, err)
	gpt4 := seeded[0]

	got, err := svc.Get(ctx, "anyone", gpt4.ID)
	require.NoError(t, err)
	assert.Equal(t, "GPT-4", got.Name)

	_, err = svc.Update(ctx, "anyone", gpt4.ID, AIModelPatch{MaxTokens: intPtr(1)})
	var fe *ForbiddenError
	require.ErrorAs(t, err, &fe)
	assert.True(t, fe.System)

	err = svc.Delete(ctx, "anyone", gpt4.ID)
	require.ErrorAs(t, err, &fe)
	assert.True(t, fe.System)

	var after models.AIModel
	require.NoError(t, db.Where("id = ?", gpt4.ID).First(&after).Error)
	assert.Equal(t, 8192, after.MaxTokens)
}

func TestAIModelService_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	clock := newTestClock()
	svc := NewAIModelService(db).WithClock(clock.Now)
	ctx := context.Background()

	m, err := svc.Create(ctx, "alice", AIModelInput{Name: "Mine", Provider: "Local"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice", AIModelInput{Name: "Taken", Provider: "Local"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "alice", m.ID, AIModelPatch{Description: strPtr("tuned"), MaxTokens: intPtr(2048)})
	require.NoError(t, err)
	assert.Equal(t, "tuned", updated.Description)
	assert.Equal(t, 2048, updated.MaxTokens)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	assert.False(t, updated.IsSystem())

	_, err = svc.Update(ctx, "alice", m.ID, AIModelPatch{Name: strPtr("Taken")})
	assert.True(t, IsValidation(err))

	// 保持原名不算冲突
	_, err = svc.Update(ctx, "alice", m.ID, AIModelPatch{Name: strPtr("Mine")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", m.ID))
	_, err = svc.Get(ctx, "alice", m.ID)
	assert.True(t, IsNotFound(err))

	// 删除后名称可再次使用
	_, err = svc.Create(ctx, "bob", AIModelInput{Name: "Mine", Provider: "Local"})
	assert.NoError(t, err)
}

func TestAIModelService_Update_DeletedConcurrently(t *testing.T) {
	db := newTestDB(t)
	svc := NewAIModelService(db)
	ctx := context.Background()

	m, err := svc.Create(ctx, "alice", AIModelInput{Name: "Local", Provider: "Ollama"})
	require.NoError(t, err)

	beforeNextUpdate(t, db, "ai_models", "DELETE FROM ai_models WHERE id = ?", m.ID)
	_, err = svc.Update(ctx, "alice", m.ID, AIModelPatch{Description: strPtr("gone")})
	assert.True(t, IsNotFound(err))

	var count int64
	require.NoError(t, db.Model(&models.AIModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
