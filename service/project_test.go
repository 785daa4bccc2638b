package service

import (
	"context"
	"strings"
	"testing"

	"zenith/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create(t *testing.T) {
	db := newTestDB(t)
	clock := newTestClock()
	svc := NewProjectService(db).WithClock(clock.Now)

	p, err := svc.Create(context.Background(), "alice", ProjectInput{Name: "  Marketing  ", Description: " q3 "})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Marketing", p.Name)
	assert.Equal(t, "q3", p.Description)
	assert.Equal(t, "alice", p.UserID)
	assert.Equal(t, models.DefaultProjectColor, p.Color)
	assert.True(t, p.CreatedAt.Equal(clock.Last()))
	assert.True(t, p.UpdatedAt.Equal(p.CreatedAt))

	var count int64
	db.Model(&models.Project{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestProjectService_Create_Validation(t *testing.T) {
	svc := NewProjectService(newTestDB(t))

	_, err := svc.Create(context.Background(), "alice", ProjectInput{Name: "   "})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(context.Background(), "alice", ProjectInput{Name: strings.Repeat("x", 101)})
	assert.True(t, IsValidation(err))
}

func TestProjectService_List_OwnedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db).WithClock(newTestClock().Now)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", ProjectInput{Name: "first"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", ProjectInput{Name: "bob's"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice", ProjectInput{Name: "second"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name)
	assert.Equal(t, "first", list[1].Name)
	for _, p := range list {
		assert.Equal(t, "alice", p.UserID)
	}

	empty, err := svc.List(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

func TestProjectService_Get(t *testing.T) {
	svc := NewProjectService(newTestDB(t))
	ctx := context.Background()

	p, err := svc.Create(ctx, "alice", ProjectInput{Name: "Marketing"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "alice", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.Get(ctx, "bob", p.ID)
	assert.True(t, IsForbidden(err))

	_, err = svc.Get(ctx, "alice", "missing-id")
	assert.True(t, IsNotFound(err))

	_, err = svc.Get(ctx, "alice", "  ")
	assert.True(t, IsNotFound(err))
}

func TestProjectService_Update(t *testing.T) {
	db := newTestDB(t)
	clock := newTestClock()
	svc := NewProjectService(db).WithClock(clock.Now)
	ctx := context.Background()

	p, err := svc.Create(ctx, "alice", ProjectInput{Name: "Marketing", Color: "#000000"})
	require.NoError(t, err)
	created := p.CreatedAt

	updated, err := svc.Update(ctx, "alice", p.ID, ProjectPatch{Name: strPtr(" Sales "), Color: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Sales", updated.Name)
	assert.Equal(t, models.DefaultProjectColor, updated.Color)
	assert.Equal(t, "alice", updated.UserID)
	assert.True(t, updated.CreatedAt.Equal(created))
	assert.True(t, updated.UpdatedAt.After(created))

	_, err = svc.Update(ctx, "alice", p.ID, ProjectPatch{Name: strPtr("")})
	assert.True(t, IsValidation(err))

	reloaded, err := svc.Get(ctx, "alice", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sales", reloaded.Name)
}

func TestProjectService_ForeignMutation(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, "alice", ProjectInput{Name: "Marketing"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "bob", p.ID, ProjectPatch{Name: strPtr("hijacked")})
	assert.True(t, IsForbidden(err))

	err = svc.Delete(ctx, "bob", p.ID)
	assert.True(t, IsForbidden(err))

	got, err := svc.Get(ctx, "alice", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marketing", got.Name)
}

func TestProjectService_Delete(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, "alice", ProjectInput{Name: "Marketing"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", p.ID))
	_, err = svc.Get(ctx, "alice", p.ID)
	assert.True(t, IsNotFound(err))

	assert.True(t, IsNotFound(svc.Delete(ctx, "alice", p.ID)))
}

func TestProjectService_Update_DeletedConcurrently(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	ctx := context.Background()

	p, err := svc.Create(ctx, "alice", ProjectInput{Name: "Marketing"})
	require.NoError(t, err)

	beforeNextUpdate(t, db, "projects", "DELETE FROM projects WHERE id = ?", p.ID)
	_, err = svc.Update(ctx, "alice", p.ID, ProjectPatch{Name: strPtr("Sales")})
	assert.True(t, IsNotFound(err))

	var count int64
	require.NoError(t, db.Model(&models.Project{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
