package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parlour.service/internal/core/model"
)

type fakeTaskRepo struct {
	byID map[string]*model.Task
}

func (f *fakeTaskRepo) List(ctx context.Context) ([]model.Task, error) {
	out := []model.Task{}
	for _, t := range f.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	return f.byID[id], nil
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *model.Task) error {
	t.ID = "generated-id"
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, t *model.Task) (bool, error) {
	if _, ok := f.byID[t.ID]; !ok {
		return false, nil
	}
	f.byID[t.ID] = t
	return true, nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func TestTaskCreate_Validation(t *testing.T) {
	svc := NewTaskService(&fakeTaskRepo{byID: map[string]*model.Task{}})
	ctx := context.Background()
	assignee := "emp-1"

	testCases := []struct {
		name    string
		in      TaskInput
		wantErr bool
	}{
		{name: "valid", in: TaskInput{Title: "Restock towels", Status: "in_progress"}},
		{name: "status defaults to pending", in: TaskInput{Title: "Sweep floor"}},
		{name: "assignee carried through", in: TaskInput{Title: "Open shop", AssignedTo: &assignee}},
		{name: "missing title", in: TaskInput{Description: "no title"}, wantErr: true},
		{name: "blank title", in: TaskInput{Title: "   "}, wantErr: true},
		{name: "unknown status", in: TaskInput{Title: "X", Status: "done"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			task, err := svc.Create(ctx, tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, task.ID)
			if tc.in.Status == "" {
				assert.Equal(t, model.TaskPending, task.Status)
			}
			if tc.in.AssignedTo != nil {
				require.NotNil(t, task.AssignedTo)
				assert.Equal(t, *tc.in.AssignedTo, *task.AssignedTo)
			}
		})
	}
}

func TestTaskUpdate_ReadsBack(t *testing.T) {
	repo := &fakeTaskRepo{byID: map[string]*model.Task{}}
	svc := NewTaskService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, TaskInput{Title: "Original"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, TaskInput{Title: "Renamed", Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, model.TaskCompleted, updated.Status)
}

func TestTaskUpdateDelete_NotFound(t *testing.T) {
	svc := NewTaskService(&fakeTaskRepo{byID: map[string]*model.Task{}})
	ctx := context.Background()

	_, err := svc.Update(ctx, "ghost", TaskInput{Title: "G"})
	assert.ErrorIs(t, err, model.ErrTaskNotFound)

	err = svc.Delete(ctx, "ghost")
	assert.ErrorIs(t, err, model.ErrTaskNotFound)
}
