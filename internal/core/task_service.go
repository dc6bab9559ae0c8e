package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parlour.service/internal/core/model"
	"parlour.service/internal/ports/repository"
)

// TaskService is plain CRUD over task assignments.
type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// TaskInput carries the caller-supplied fields for create and update.
type TaskInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	AssignedTo  *string `json:"assignedTo"`
	Status      string  `json:"status"`
}

func (in *TaskInput) validate() (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}

	status := model.TaskStatus(in.Status)
	if in.Status == "" {
		status = model.TaskPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", in.Status)
	}

	return &model.Task{
		Title:       title,
		Description: in.Description,
		AssignedTo:  in.AssignedTo,
		Status:      status,
	}, nil
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) Create(ctx context.Context, in TaskInput) (*model.Task, error) {
	t, err := in.validate()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, id string, in TaskInput) (*model.Task, error) {
	t, err := in.validate()
	if err != nil {
		return nil, err
	}
	t.ID = id

	ok, err := s.repo.Update(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if !ok {
		return nil, model.ErrTaskNotFound
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back task: %w", err)
	}
	if updated == nil {
		return nil, model.ErrTaskNotFound
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !ok {
		return model.ErrTaskNotFound
	}
	return nil
}
