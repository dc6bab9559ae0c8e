package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parlour.service/internal/core/model"
	"parlour.service/internal/ports/repository"
)

// EmployeeService is the employee directory: plain CRUD over directory
// records, with ingress validation at the service boundary.
type EmployeeService struct {
	repo repository.EmployeeRepository
}

func NewEmployeeService(repo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{repo: repo}
}

// EmployeeInput carries the caller-supplied fields for create and update.
type EmployeeInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (in *EmployeeInput) validate() (*model.Employee, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, errors.New("name and email are required")
	}

	role := model.Role(in.Role)
	if in.Role == "" {
		role = model.RoleEmployee
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", in.Role)
	}

	return &model.Employee{Name: name, Email: email, Role: role}, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	return s.repo.List(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*model.Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if e == nil {
		return nil, model.ErrEmployeeNotFound
	}
	return e, nil
}

func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*model.Employee, error) {
	e, err := in.validate()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, in EmployeeInput) (*model.Employee, error) {
	e, err := in.validate()
	if err != nil {
		return nil, err
	}
	e.ID = id

	ok, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	if !ok {
		return nil, model.ErrEmployeeNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes the directory record only. Attendance events keep their
// reference and drop out of enriched views instead.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if !ok {
		return model.ErrEmployeeNotFound
	}
	return nil
}
